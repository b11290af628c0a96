package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ClaimsKey = "claims"
	UserIDKey = "userID"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier.
// On success the claims map and the subject (user id) are stored on the context.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			unauthorized(c)
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			unauthorized(c)
			return
		}

		verified, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			unauthorized(c)
			return
		}

		var claims map[string]interface{}
		if err := verified.Claims(&claims); err != nil {
			unauthorized(c)
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			unauthorized(c)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, sub)
		c.Next()
	}
}

// UserID returns the authenticated subject, or "" outside the auth gate.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
