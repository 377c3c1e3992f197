package apierr

import (
	"fmt"
	"net/http"
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = New(http.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidRequest is returned when a request is malformed or fails validation.
	ErrInvalidRequest = New(http.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInternal hides storage failures from clients.
	ErrInternal = New(http.StatusInternalServerError, CodeInternalError, "internal error")
)

type Extras map[string]interface{}

// Error is an HTTP-facing error. Values are immutable: the With* helpers return copies.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	Extras     Extras
}

func New(statusCode int, code string, message string) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

func (e Error) WithMessage(format string, parts ...interface{}) *Error {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e Error) WithExtras(extras Extras) *Error {
	merged := make(Extras, len(e.Extras)+len(extras))
	for k, v := range e.Extras {
		merged[k] = v
	}
	for k, v := range extras {
		merged[k] = v
	}
	e.Extras = merged
	return &e
}

// NewInvalidViolations reports validation failures under the "violations" key.
func NewInvalidViolations(violations interface{}) *Error {
	return ErrInvalidRequest.WithExtras(Extras{"violations": violations})
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Body renders the JSON response body: {"error": ..., "code": ..., extras...}.
func (e *Error) Body() map[string]interface{} {
	body := make(map[string]interface{}, len(e.Extras)+2)
	for k, v := range e.Extras {
		body[k] = v
	}
	body["error"] = e.Message
	body["code"] = e.Code
	return body
}
