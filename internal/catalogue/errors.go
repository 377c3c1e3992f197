package catalogue

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/meur/cs2hub/internal/models"
)

var (
	// ErrTransport is returned when the endpoint could not be reached or the request timed out.
	ErrTransport = errors.New("catalogue: transport failure")

	// ErrDecode is returned when a response body is not the expected JSON.
	ErrDecode = errors.New("catalogue: malformed response body")

	// ErrInvalidDraft is returned when a draft fails validation before submission.
	ErrInvalidDraft = errors.New("catalogue: invalid draft")

	// ErrDeclined is returned by Delete when the user did not confirm.
	ErrDeclined = errors.New("catalogue: deletion declined")
)

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Message    string // the backend's "error" field, if any
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalogue: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("catalogue: unexpected status %d: %s", e.StatusCode, e.Message)
}

func invalidDraft(err error) error {
	msgs := make([]string, 0)
	for _, v := range models.Violations(err) {
		msgs = append(msgs, v.Message)
	}
	return errors.WithMessage(ErrInvalidDraft, strings.Join(msgs, "; "))
}
