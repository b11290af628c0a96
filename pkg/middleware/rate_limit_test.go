package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/qaforum/qaforum/backend/api/pkg/metrics"
	"github.com/stretchr/testify/require"
)

func get(r http.Handler, path string) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w.Code
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	before := testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory"))

	r := gin.New()
	r.Use(RateLimitMiddleware(10, 2))
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, get(r, "/ok"))
	require.Equal(t, http.StatusOK, get(r, "/ok"))

	require.Equal(t, before+2, testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory")))
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, get(r, "/limited"))
	require.Equal(t, http.StatusTooManyRequests, get(r, "/limited"))

	// 0.5 rps refills one token after two seconds
	time.Sleep(2100 * time.Millisecond)
	require.Equal(t, http.StatusOK, get(r, "/limited"))
}

func TestRateLimitMiddleware_UsesUserWhenPresent(t *testing.T) {
	user := "user-123"
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(UserIDKey, user)
		c.Next()
	})
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/u", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, get(r, "/u"))
	require.Equal(t, http.StatusTooManyRequests, get(r, "/u"))

	// a different user from the same IP has its own bucket
	user = "user-456"
	require.Equal(t, http.StatusOK, get(r, "/u"))
}
