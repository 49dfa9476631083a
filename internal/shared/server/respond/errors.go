package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"candidate-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object for non-validation errors.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// FieldErrors is the validation failure body: a per-field list of messages.
type FieldErrors map[string][]string

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Validation sends an HTTP 400 whose body maps each invalid field to its messages.
func Validation(c *gin.Context, fields FieldErrors) {
	telemetry.Error("http.validation_error", map[string]any{
		"status":     http.StatusBadRequest,
		"fields":     fields,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(http.StatusBadRequest, fields)
}

// FieldError is shorthand for a single-field validation failure.
func FieldError(c *gin.Context, field string, messages ...string) {
	Validation(c, FieldErrors{field: messages})
}
