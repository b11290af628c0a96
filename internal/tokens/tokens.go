package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/qaforum/qaforum/backend/api/internal/config"
)

// GenerateAccessToken creates a signed JWT access token whose subject is the user id
func GenerateAccessToken(cfg *config.Config, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}
