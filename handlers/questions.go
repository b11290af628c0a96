package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qaforum/qaforum/backend/api/internal/models"
	"github.com/qaforum/qaforum/backend/api/internal/questions"
	"github.com/qaforum/qaforum/backend/api/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createQuestionRequest struct {
	Text string `json:"text" binding:"required"`
}

type addAnswerRequest struct {
	Answer string `json:"answer" binding:"required,mongodb"`
}

type updateQuestionRequest struct {
	Text    *string   `json:"text"`
	User    *string   `json:"user" binding:"omitnil,mongodb"`
	Answers *[]string `json:"answer" binding:"omitnil,dive,mongodb"`
}

func (r updateQuestionRequest) patch() (models.QuestionPatch, error) {
	user, err := parseRef("user", r.User)
	if err != nil {
		return models.QuestionPatch{}, err
	}
	p := models.QuestionPatch{Text: r.Text, User: user}
	if r.Answers != nil {
		ids := make([]primitive.ObjectID, 0, len(*r.Answers))
		for _, s := range *r.Answers {
			id, err := parseRef("answer", &s)
			if err != nil {
				return models.QuestionPatch{}, err
			}
			ids = append(ids, *id)
		}
		p.Answers = &ids
	}
	return p, nil
}

// QuestionHandler serves /questions.
type QuestionHandler struct {
	svc *questions.Service
}

func NewQuestionHandler(svc *questions.Service) *QuestionHandler {
	return &QuestionHandler{svc: svc}
}

// Register mounts the question routes; every mutation is authenticated.
func (h *QuestionHandler) Register(rg *gin.RouterGroup, gs Guards) {
	g := rg.Group("/questions")
	load := resolver(h.svc.Get)
	g.GET("", gs.Open(h.List)...)
	g.POST("", gs.Authed(h.Create)...)
	g.GET("/:id", gs.Open(load, h.Get)...)
	g.PUT("/:id", gs.Authed(load, h.Update)...)
	g.DELETE("/:id", gs.Authed(load, h.Delete)...)
	g.POST("/:id/answer", gs.Authed(load, h.AddAnswer)...)
}

func (h *QuestionHandler) List(c *gin.Context) {
	opts := parsePage(c)
	list, count, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newPage(list, opts, count))
}

// Create stores a question owned by the authenticated user.
func (h *QuestionHandler) Create(c *gin.Context) {
	var req createQuestionRequest
	if err := bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	owner, err := models.ParseID(middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	q, err := h.svc.Create(c.Request.Context(), owner, req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuestionHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.Document[*models.Question](c).Normalize())
}

func (h *QuestionHandler) Update(c *gin.Context) {
	var req updateQuestionRequest
	if err := bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	patch, err := req.patch()
	if err != nil {
		_ = c.Error(err)
		return
	}
	q, err := h.svc.Update(c.Request.Context(), middleware.Document[*models.Question](c), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, q.Normalize())
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	q := middleware.Document[*models.Question](c)
	if err := h.svc.Delete(c.Request.Context(), q); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, q.Normalize())
}

// AddAnswer appends the answer id from the body to the resolved question.
func (h *QuestionHandler) AddAnswer(c *gin.Context) {
	var req addAnswerRequest
	if err := bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	answer, err := parseRef("answer", &req.Answer)
	if err != nil {
		_ = c.Error(err)
		return
	}
	q, err := h.svc.AddAnswer(c.Request.Context(), middleware.Document[*models.Question](c).ID, *answer)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, q.Normalize())
}
