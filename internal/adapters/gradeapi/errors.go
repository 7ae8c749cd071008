package gradeapi

import (
	"errors"
	"fmt"
)

// Sentinel kinds for grade service failures. Callers match with errors.Is.
var (
	ErrTransport         = errors.New("grade service unreachable")
	ErrServerRejection   = errors.New("grade service rejected request")
	ErrMalformedResponse = errors.New("malformed grade service response")
	ErrNotFound          = errors.New("grade not found")
	ErrNoToken           = errors.New("api token is not set")
)

// ServiceError is returned when the service answers with a non-success
// status_code. Message is the server's own text.
type ServiceError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Operation, e.Message, e.StatusCode)
}

// Is reports ServiceError as a server rejection.
func (e *ServiceError) Is(target error) bool {
	return target == ErrServerRejection
}

// errorType returns the metrics label for err.
func errorType(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrServerRejection):
		return "server_rejection"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrNoToken):
		return "no_token"
	default:
		return "unknown"
	}
}
