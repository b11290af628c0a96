package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qaforum/qaforum/backend/api/internal/answers"
	"github.com/qaforum/qaforum/backend/api/internal/config"
	"github.com/qaforum/qaforum/backend/api/internal/questions"
	"github.com/qaforum/qaforum/backend/api/internal/tokens"
	"github.com/qaforum/qaforum/backend/api/internal/users"
	"github.com/qaforum/qaforum/backend/api/pkg/middleware"
	"github.com/qaforum/qaforum/backend/api/pkg/validation"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const base = "/api/v1"

type testAPI struct {
	t         *testing.T
	router    *gin.Engine
	cfg       *config.Config
	questions *questions.MemoryRepository
	answers   *answers.MemoryRepository
	users     *users.MemoryUserRepository
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := &config.Config{}
	cfg.JWT.Secret = "handlers-test-secret-32-bytes-xxxxxx"
	cfg.JWT.AccessTokenTTL = time.Hour

	api := &testAPI{
		t:         t,
		cfg:       cfg,
		questions: questions.NewMemoryRepository(),
		answers:   answers.NewMemoryRepository(),
		users:     users.NewMemoryUserRepository(),
	}
	usersSvc := users.NewService(api.users, &users.BcryptHasher{Cost: bcrypt.MinCost})
	answersSvc := answers.NewService(api.answers, usersSvc)
	questionsSvc := questions.NewService(api.questions, answersSvc, usersSvc)

	r := gin.New()
	r.Use(middleware.ErrorHandler(MapError))
	RegisterRoutes(r.Group(base), Deps{
		Config:    cfg,
		Questions: questionsSvc,
		Answers:   answersSvc,
		Users:     usersSvc,
		Verifier:  tokens.NewVerifier(cfg),
	})
	api.router = r
	return api
}

// do sends a JSON request and returns the recorder. token may be empty.
func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, base+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type authResult struct {
	User  map[string]interface{} `json:"user"`
	Token string                 `json:"token"`
}

// signup registers a user and returns its id and token.
func (a *testAPI) signup(email string) (string, string) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/users/signup", "", gin.H{
		"firstname": "Grace",
		"lastname":  "Hopper",
		"email":     email,
		"password":  "cobol4ever",
	})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	res := decode[authResult](a.t, w)
	require.NotEmpty(a.t, res.Token)
	return res.User["_id"].(string), res.Token
}

type errorBody struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

type questionJSON struct {
	ID      string   `json:"_id"`
	Text    string   `json:"text"`
	User    string   `json:"user"`
	Answers []string `json:"answer"`
	Version int      `json:"__v"`
}

type answerJSON struct {
	ID   string `json:"_id"`
	Text string `json:"text"`
	User string `json:"user"`
}

func (a *testAPI) createQuestion(token, text string) questionJSON {
	a.t.Helper()
	w := a.do(http.MethodPost, "/questions", token, gin.H{"text": text})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode[questionJSON](a.t, w)
}

func (a *testAPI) createAnswer(token, text, user string) answerJSON {
	a.t.Helper()
	w := a.do(http.MethodPost, "/answers", token, gin.H{"text": text, "user": user})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode[answerJSON](a.t, w)
}
