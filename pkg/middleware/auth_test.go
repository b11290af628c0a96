package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeToken implements Token
type fakeToken struct {
	data map[string]interface{}
}

func (t *fakeToken) Claims(v interface{}) error {
	if mm, ok := v.(*map[string]interface{}); ok {
		*mm = t.data
		return nil
	}
	return fmt.Errorf("unsupported claims type")
}

// fakeVerifier implements Verifier
type fakeVerifier struct{}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	switch raw {
	case "goodtoken":
		return &fakeToken{data: map[string]interface{}{"sub": "user1"}}, nil
	case "nosub":
		return &fakeToken{data: map[string]interface{}{"exp": 1}}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func serveAuth(t *testing.T, header string) *httptest.ResponseRecorder {
	t.Helper()
	g := gin.New()
	g.GET("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) {
		claims, ok := c.Get(ClaimsKey)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"claims": claims, "user": UserID(c)})
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	return rw
}

func requireUnauthorized(t *testing.T, rw *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, http.StatusUnauthorized, rw.Code)
	require.JSONEq(t, `{"message":"Unauthorized"}`, rw.Body.String())
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	requireUnauthorized(t, serveAuth(t, ""))
}

func TestAuthMiddleware_InvalidHeader(t *testing.T) {
	requireUnauthorized(t, serveAuth(t, "BadHeader"))
	requireUnauthorized(t, serveAuth(t, "Basic goodtoken"))
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	requireUnauthorized(t, serveAuth(t, "Bearer badtoken"))
}

func TestAuthMiddleware_MissingSubject(t *testing.T) {
	requireUnauthorized(t, serveAuth(t, "Bearer nosub"))
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	rw := serveAuth(t, "Bearer goodtoken")
	require.Equal(t, http.StatusOK, rw.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Contains(t, got, "claims")
	require.Equal(t, "user1", got["user"])
}
