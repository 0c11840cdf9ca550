package reddit

import (
	"errors"
	"fmt"
)

// ErrRetryExhausted is returned when every configured attempt was consumed
// by rate limiting or transient server errors. Terminal for the run.
var ErrRetryExhausted = errors.New("retries exhausted (rate-limited or server errors)")

// StatusError is returned for any non-2xx status that is neither a 429 nor
// a 5xx. These are structural failures and are never retried.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d from %s", e.StatusCode, e.URL)
}

// ProtocolError is returned when a 2xx response does not declare a JSON
// content type. This guards against silent redirects off the JSON endpoint,
// e.g. onto an HTML login or consent page.
type ProtocolError struct {
	ContentType string
	URL         string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("expected JSON but got Content-Type %q from %s", e.ContentType, e.URL)
}

// IsRetryExhausted reports whether err is the retry-exhausted error.
func IsRetryExhausted(err error) bool {
	return errors.Is(err, ErrRetryExhausted)
}

// IsStatusError reports whether err is a non-retryable HTTP status error.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// IsProtocolError reports whether err is a content-type mismatch.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
