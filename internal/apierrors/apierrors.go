package apierrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Translation keys, selected per HTTP status. Clients resolve them to
// localized messages; unmapped statuses fall back to KeyUnknown.
const (
	KeyBadRequest   = "error.badRequest"
	KeyUnauthorized = "error.unauthorized"
	KeyForbidden    = "error.forbidden"
	KeyNotFound     = "error.notFound"
	KeyConflict     = "error.conflict"
	KeyInternal     = "error.internal"
	KeyUnknown      = "error.unknown"
)

var statusKeys = map[int]string{
	http.StatusBadRequest:          KeyBadRequest,
	http.StatusUnauthorized:        KeyUnauthorized,
	http.StatusForbidden:           KeyForbidden,
	http.StatusNotFound:            KeyNotFound,
	http.StatusConflict:            KeyConflict,
	http.StatusInternalServerError: KeyInternal,
}

// APIError is the body of the error envelope.
type APIError struct {
	Code    int    `json:"code"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Envelope wraps every error response as {"error": {...}}.
type Envelope struct {
	Error APIError `json:"error"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// KeyForStatus returns the translation key mapped to an HTTP status.
func KeyForStatus(status int) string {
	if key, ok := statusKeys[status]; ok {
		return key
	}
	return KeyUnknown
}

// Respond sends the error envelope for the given status and detail message.
func Respond(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Error: APIError{
			Code:    status,
			Key:     KeyForStatus(status),
			Message: message,
		},
	})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	Respond(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	Respond(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	Respond(c, http.StatusForbidden, message)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Respond(c, http.StatusNotFound, message)
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	Respond(c, http.StatusConflict, message)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Respond(c, http.StatusInternalServerError, message)
}
