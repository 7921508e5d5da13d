package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned by Login when the backend rejects
	// the email/password pair.
	ErrInvalidCredentials = errors.New("apiclient: invalid credentials")

	// ErrUnauthorized is returned when the bearer token is missing,
	// expired or rejected.
	ErrUnauthorized = errors.New("apiclient: unauthorized")

	// ErrTransport covers network failures, request timeouts and non-2xx
	// answers other than authentication failures.
	ErrTransport = errors.New("apiclient: transport failure")

	// ErrMalformed is returned when a 2xx body does not have the
	// expected shape.
	ErrMalformed = errors.New("apiclient: malformed response")
)

// StatusError is a non-2xx answer. It unwraps to the sentinel matching the
// status class so callers can test with errors.Is.
type StatusError struct {
	Method string
	Path   string
	Status int
	kind   error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *StatusError) Unwrap() error { return e.kind }

// Retryable reports whether err is worth another attempt: network
// failures and 5xx answers. Authentication, 4xx and shape errors will not
// change on a second try.
func Retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status >= 500
	}
	return errors.Is(err, ErrTransport)
}
