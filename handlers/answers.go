package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qaforum/qaforum/backend/api/internal/answers"
	"github.com/qaforum/qaforum/backend/api/internal/models"
	"github.com/qaforum/qaforum/backend/api/pkg/middleware"
)

type createAnswerRequest struct {
	Text string  `json:"text" binding:"required"`
	User *string `json:"user" binding:"omitnil,mongodb"`
}

type updateAnswerRequest struct {
	Text *string `json:"text"`
	User *string `json:"user" binding:"omitnil,mongodb"`
}

// AnswerHandler serves /answers.
type AnswerHandler struct {
	svc *answers.Service
}

func NewAnswerHandler(svc *answers.Service) *AnswerHandler {
	return &AnswerHandler{svc: svc}
}

func (h *AnswerHandler) Register(rg *gin.RouterGroup, gs Guards) {
	g := rg.Group("/answers")
	load := resolver(h.svc.Get)
	g.GET("", gs.Open(h.List)...)
	g.POST("", gs.Authed(h.Create)...)
	g.GET("/:id", gs.Open(load, h.Get)...)
	g.PUT("/:id", gs.Authed(load, h.Update)...)
	g.DELETE("/:id", gs.Authed(load, h.Delete)...)
}

func (h *AnswerHandler) List(c *gin.Context) {
	opts := parsePage(c)
	list, count, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newPage(list, opts, count))
}

// Create stores an answer with the user reference supplied in the body.
func (h *AnswerHandler) Create(c *gin.Context) {
	var req createAnswerRequest
	if err := bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	user, err := parseRef("user", req.User)
	if err != nil {
		_ = c.Error(err)
		return
	}
	a, err := h.svc.Create(c.Request.Context(), req.Text, user)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AnswerHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.Document[*models.Answer](c))
}

func (h *AnswerHandler) Update(c *gin.Context) {
	var req updateAnswerRequest
	if err := bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	user, err := parseRef("user", req.User)
	if err != nil {
		_ = c.Error(err)
		return
	}
	patch := models.AnswerPatch{Text: req.Text, User: user}
	a, err := h.svc.Update(c.Request.Context(), middleware.Document[*models.Answer](c), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AnswerHandler) Delete(c *gin.Context) {
	a := middleware.Document[*models.Answer](c)
	if err := h.svc.Delete(c.Request.Context(), a); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, a)
}
