package users

import (
	"errors"
	"fmt"

	"github.com/qaforum/qaforum/backend/api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Compare reports whether plain matches hash. A mismatch is (false, nil);
	// an error means the comparison itself failed.
	Compare(hash, plain string) (bool, error)
}

// BcryptHasher is the production PasswordHasher.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: 10}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", passwordTooLong()
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Compare(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

func passwordTooLong() error {
	return models.FieldError("password", fmt.Sprintf("must be at most %d bytes long", MaxPasswordBytes))
}
