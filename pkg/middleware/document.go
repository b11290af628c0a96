package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const DocumentKey = "doc"

// ErrDocumentNotFound is matched by finders that cannot resolve the path id.
var ErrDocumentNotFound = errors.New("document not found")

// LoadDocument resolves the path parameter param with find and attaches the
// result to the context before the handler runs. A miss answers 404; any
// other failure is recorded for ErrorHandler.
func LoadDocument[T any](param string, find func(ctx context.Context, id string) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := find(c.Request.Context(), c.Param(param))
		if err != nil {
			if errors.Is(err, ErrDocumentNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Document not found"})
				return
			}
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(DocumentKey, doc)
		c.Next()
	}
}

// Document returns the value attached by LoadDocument.
func Document[T any](c *gin.Context) T {
	v, _ := c.Get(DocumentKey)
	doc, _ := v.(T)
	return doc
}
