package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/qaforum/qaforum/backend/api/pkg/metrics"
	"golang.org/x/time/rate"
)

// limiterStore holds one token bucket per key.
type limiterStore struct {
	m     sync.Map // map[string]*rate.Limiter
	rps   float64
	burst int
}

// get returns (and lazily creates) a token-bucket limiter for the given key
func (s *limiterStore) get(key string) *rate.Limiter {
	v, _ := s.m.LoadOrStore(key, rate.NewLimiter(rate.Limit(s.rps), s.burst))
	return v.(*rate.Limiter)
}

// limitKey prefers the authenticated user id, falling back to the client IP.
func limitKey(c *gin.Context) string {
	if uid := UserID(c); uid != "" {
		return "user:" + uid
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

func tooManyRequests(c *gin.Context, retryAfter string) {
	c.Header("Retry-After", retryAfter)
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Rate limit exceeded"})
}

// RateLimitMiddleware returns a Gin middleware enforcing a token-bucket per-key limit.
// rps = allowed events per second, burst = maximum tokens in bucket.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	store := &limiterStore{rps: rps, burst: burst}
	return func(c *gin.Context) {
		if !store.get(limitKey(c)).Allow() {
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			tooManyRequests(c, "1")
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
