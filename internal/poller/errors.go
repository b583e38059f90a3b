// internal/poller/errors.go
package poller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common poller errors
var (
	ErrInvalidHandle = errors.New("invalid job handle")
	ErrJobFailed     = errors.New("job failed")
	ErrTimeout       = errors.New("polling attempts exhausted")
)

// ErrorKind classifies a status-fetch failure
type ErrorKind string

const (
	KindRateLimited ErrorKind = "RATE_LIMITED"
	KindTransient   ErrorKind = "TRANSIENT"
)

// StatusCoder is an interface for errors that carry an HTTP status code
type StatusCoder interface {
	GetStatusCode() int
}

// FetchError wraps a status-fetch failure with its classification
type FetchError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Underlying
}

// IsRateLimited reports whether a fetch error is a rate-limit rejection.
// It recognizes a 429 status code carried via StatusCoder, an explicit
// FetchError classification, or rate-limit wording in the error message.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var fe *FetchError
	if errors.As(err, &fe) && fe.Kind == KindRateLimited {
		return true
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.GetStatusCode() == http.StatusTooManyRequests
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests")
}
