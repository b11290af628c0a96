package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/qaforum/qaforum/backend/api/internal/answers"
	"github.com/qaforum/qaforum/backend/api/internal/config"
	"github.com/qaforum/qaforum/backend/api/internal/questions"
	"github.com/qaforum/qaforum/backend/api/internal/users"
	"github.com/qaforum/qaforum/backend/api/pkg/middleware"
)

// Deps are the services the API routes are built from.
type Deps struct {
	Config    *config.Config
	Questions *questions.Service
	Answers   *answers.Service
	Users     *users.Service
	Verifier  middleware.Verifier
	// RateLimit is optional. It runs after auth so signed-in callers are
	// limited per user.
	RateLimit gin.HandlerFunc
}

// Guards are the middleware chains placed in front of route handlers.
type Guards struct {
	Public  []gin.HandlerFunc
	Private []gin.HandlerFunc
}

// Open prefixes h with the public chain.
func (g Guards) Open(h ...gin.HandlerFunc) []gin.HandlerFunc {
	return chain(g.Public, h)
}

// Authed prefixes h with the authenticated chain.
func (g Guards) Authed(h ...gin.HandlerFunc) []gin.HandlerFunc {
	return chain(g.Private, h)
}

func chain(pre, h []gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(pre)+len(h))
	out = append(out, pre...)
	return append(out, h...)
}

// RegisterRoutes mounts every resource under rg.
func RegisterRoutes(rg *gin.RouterGroup, d Deps) {
	gs := Guards{Private: []gin.HandlerFunc{middleware.AuthMiddleware(d.Verifier)}}
	if d.RateLimit != nil {
		gs.Public = append(gs.Public, d.RateLimit)
		gs.Private = append(gs.Private, d.RateLimit)
	}
	NewQuestionHandler(d.Questions).Register(rg, gs)
	NewAnswerHandler(d.Answers).Register(rg, gs)
	NewUserHandler(d.Config, d.Users).Register(rg, gs)
}
