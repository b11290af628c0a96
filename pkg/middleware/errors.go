package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qaforum/qaforum/backend/api/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ErrorMapper translates a handler error into a status and response body.
type ErrorMapper func(err error) (int, gin.H)

// ErrorHandler renders the last error recorded with c.Error when the handler
// chain did not write a response itself.
func ErrorHandler(mapErr ErrorMapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := mapErr(err)
		if status >= http.StatusInternalServerError {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString(RequestIDKey),
				"path":       c.FullPath(),
			}).Errorf("request failed: %v", err)
		}
		c.JSON(status, body)
	}
}
