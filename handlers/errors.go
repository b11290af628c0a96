package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qaforum/qaforum/backend/api/internal/models"
	"github.com/qaforum/qaforum/backend/api/internal/users"
	"github.com/qaforum/qaforum/backend/api/pkg/middleware"
	"github.com/qaforum/qaforum/backend/api/pkg/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bindError wraps a request body that could not be decoded or failed binding rules.
type bindError struct{ err error }

func (e *bindError) Error() string        { return e.err.Error() }
func (e *bindError) Unwrap() error        { return e.err }
func (e *bindError) Is(target error) bool { return target == models.ErrValidation }

// bind decodes the JSON body into v. An empty body leaves v untouched.
func bind(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return &bindError{err: err}
	}
	return nil
}

// parseRef converts an optional id string from a request body. Binding tags
// reject malformed ids first; this keeps the conversion total.
func parseRef(field string, s *string) (*primitive.ObjectID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := models.ParseID(*s)
	if err != nil {
		return nil, models.FieldError(field, "must be a valid id")
	}
	return &id, nil
}

// MapError is the middleware.ErrorMapper for the API.
func MapError(err error) (int, gin.H) {
	var berr *bindError
	var verr *models.ValidationError
	switch {
	case errors.As(err, &berr):
		return http.StatusBadRequest, gin.H{"message": "validation failed", "details": validation.ToDetails(berr.err)}
	case errors.As(err, &verr):
		return http.StatusBadRequest, gin.H{"message": "validation failed", "details": verr.Fields}
	case errors.Is(err, models.ErrInvalidID):
		return http.StatusBadRequest, gin.H{"message": "invalid id"}
	case errors.Is(err, models.ErrDuplicateEmail):
		return http.StatusConflict, gin.H{"message": "email already registered"}
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, gin.H{"message": "Document not found"}
	case errors.Is(err, users.ErrInvalidCredentials):
		return http.StatusUnauthorized, gin.H{"message": "Unauthorized"}
	}
	return http.StatusInternalServerError, gin.H{"message": "internal server error"}
}

// resolver adapts a service lookup to middleware.LoadDocument.
func resolver[T any](get func(ctx context.Context, id string) (T, error)) gin.HandlerFunc {
	return middleware.LoadDocument("id", func(ctx context.Context, id string) (T, error) {
		doc, err := get(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			return doc, middleware.ErrDocumentNotFound
		}
		return doc, err
	})
}
