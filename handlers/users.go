package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qaforum/qaforum/backend/api/internal/config"
	"github.com/qaforum/qaforum/backend/api/internal/models"
	"github.com/qaforum/qaforum/backend/api/internal/tokens"
	"github.com/qaforum/qaforum/backend/api/internal/users"
	"github.com/qaforum/qaforum/backend/api/pkg/middleware"
)

type signupRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserHandler serves /users.
type UserHandler struct {
	cfg *config.Config
	svc *users.Service
}

func NewUserHandler(cfg *config.Config, svc *users.Service) *UserHandler {
	return &UserHandler{cfg: cfg, svc: svc}
}

func (h *UserHandler) Register(rg *gin.RouterGroup, gs Guards) {
	g := rg.Group("/users")
	g.GET("", gs.Open(h.List)...)
	g.POST("/signup", gs.Open(h.Signup)...)
	g.POST("/login", gs.Open(h.Login)...)
	g.GET("/profile", gs.Authed(h.Profile)...)
}

func (h *UserHandler) List(c *gin.Context) {
	opts := parsePage(c)
	list, count, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newPage(list, opts, count))
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	u, err := h.svc.Signup(c.Request.Context(), users.SignupInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.respondWithToken(c, u)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	u, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.respondWithToken(c, u)
}

func (h *UserHandler) respondWithToken(c *gin.Context, u *models.User) {
	tok, err := tokens.GenerateAccessToken(h.cfg, u.ID.Hex(), h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{User: u, Token: tok})
}

// Profile returns the user named by the token subject.
func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.svc.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, u)
}
