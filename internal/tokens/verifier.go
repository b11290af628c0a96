package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/qaforum/qaforum/backend/api/internal/config"
	"github.com/qaforum/qaforum/backend/api/pkg/middleware"
)

var ErrMissingSubject = errors.New("token has no subject")

// claimsToken exposes verified claims to the auth middleware.
type claimsToken struct {
	claims jwt.MapClaims
}

func (t *claimsToken) Claims(v interface{}) error {
	b, err := json.Marshal(t.claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Verifier checks HS256 access tokens issued by GenerateAccessToken.
type Verifier struct {
	secret []byte
}

func NewVerifier(cfg *config.Config) *Verifier {
	return &Verifier{secret: []byte(cfg.JWT.Secret)}
}

func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if sub, _ := claims.GetSubject(); sub == "" {
		return nil, ErrMissingSubject
	}
	return &claimsToken{claims: claims}, nil
}
