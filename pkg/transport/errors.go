package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBaseURL indicates the configured base URL cannot be parsed
	ErrInvalidBaseURL = errors.New("transport.invalid_base_url")
)

// APIError is the structured form of a non-2xx backend response. It is the
// only error type the transport produces for application-level failures;
// transport-level failures (DNS, timeouts) are wrapped standard errors.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsAPIError extracts an *APIError from an error chain.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
