// Package response renders the uniform JSON envelope returned by every
// endpoint.
package response

import (
	"net/http"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Result is the envelope around every payload.
type Result[T any] struct {
	StatusCode int    `json:"status_code"`
	Data       T      `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func New[T any](statusCode int, data T, message string) Result[T] {
	return Result[T]{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	}
}

// JSON writes data wrapped in a Result with the given status.
func JSON[T any](c *gin.Context, statusCode int, data T, message string) {
	c.JSON(statusCode, New(statusCode, data, message))
}

// Error writes err as a failed Result. Internal failures are logged and their
// cause is not sent to the client.
func Error(c *gin.Context, log *logger.Logger, err error) {
	kind := apperror.KindOf(err)
	status := apperror.HTTPStatus(kind)
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, New[any](status, nil, apperror.Message(err)))
}

// Abort writes the failure and stops the handler chain.
func Abort(c *gin.Context, err error) {
	status := apperror.HTTPStatus(apperror.KindOf(err))
	c.AbortWithStatusJSON(status, New[any](status, nil, apperror.Message(err)))
}
