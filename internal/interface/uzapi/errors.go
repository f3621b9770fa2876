package uzapi

import (
	"fmt"
)

// UpstreamError indicates the booking API answered with an unexpected
// non-200 status
type UpstreamError struct {
	Operation  string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("booking API returned status %d on %s", e.StatusCode, e.Operation)
}

// TransportError indicates the request never produced an HTTP response
// (connection refused, timeout)
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("booking API transport failure on %s: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
