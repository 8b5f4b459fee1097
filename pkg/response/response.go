package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the uniform envelope every endpoint returns, success or
// failure. The HTTP status code is mirrored in the body.
type APIResponse[T any] struct {
	StatusCode int         `json:"statusCode"`
	Timestamp  time.Time   `json:"timestamp"`
	RequestID  string      `json:"request_id,omitempty"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       T           `json:"data,omitempty"`
	Meta       interface{} `json:"meta,omitempty"`
	Errors     []any       `json:"errors,omitempty"`
}

// Success writes a success envelope to the client and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		StatusCode: status,
		Timestamp:  time.Now(),
		RequestID:  ctx.GetString("request_id"),
		Success:    true,
		Message:    message,
		Data:       data,
		Meta:       meta,
	}
	ctx.JSON(status, resp)
	return resp
}

// Error builds an error envelope. It does not write; the error boundary
// middleware is the single place that renders failures.
func Error(ctx *gin.Context, status int, message string, errs []any) APIResponse[any] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[any]{
		StatusCode: status,
		Timestamp:  time.Now(),
		RequestID:  ctx.GetString("request_id"),
		Success:    false,
		Message:    message,
		Errors:     errs,
	}
}
