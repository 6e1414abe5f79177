package audit

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid audit service configuration")
	// ErrNoFiles indicates an upload was requested with no files selected
	ErrNoFiles = errors.New("no files selected for upload")
)

// TransportError represents a failed exchange with the audit service.
// StatusCode is 0 for network-level failures (connection refused, timeout)
// where no HTTP response was received.
type TransportError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("audit service unreachable: %s", e.Message)
	}
	return fmt.Sprintf("audit service error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *TransportError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *TransportError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsNetwork reports whether the failure happened before any HTTP status
// was received.
func (e *TransportError) IsNetwork() bool {
	return e.StatusCode == 0
}

// ValidationError represents malformed local input that is rejected
// before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// DecodeError indicates the service returned a body that could not be
// decoded as the expected JSON shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying decode failure
func (e *DecodeError) Unwrap() error {
	return e.Err
}
