package client

import (
	"fmt"
	"strings"
)

// ErrorType categorizes analysis client failures.
type ErrorType string

const (
	// ErrTypeValidation indicates the request was rejected before any
	// network traffic (missing file, blank text).
	ErrTypeValidation ErrorType = "validation"

	// ErrTypeServer indicates the backend answered non-2xx with an error
	// message of its own.
	ErrTypeServer ErrorType = "server"

	// ErrTypeNetwork indicates the backend could not be reached.
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeDecode indicates the response body was not the expected JSON.
	ErrTypeDecode ErrorType = "decode"

	// ErrTypeInternal indicates a client-side failure building the request.
	ErrTypeInternal ErrorType = "internal"
)

// FallbackMessage is shown for every failure the backend did not explain
// itself: transport errors, malformed responses, and non-2xx responses
// without an error field.
const FallbackMessage = "Failed to reach the analysis service. Please check your connection and try again."

// ClientError is the error type returned by all Client operations.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("type=%s", e.Type))
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	parts = append(parts, e.Message)
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error.
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches on error type so callers can use errors.Is with a sentinel.
func (e *ClientError) Is(target error) bool {
	if ce, ok := target.(*ClientError); ok {
		return e.Type == ce.Type
	}
	return false
}

func newError(t ErrorType, message string) *ClientError {
	return &ClientError{Type: t, Message: message}
}

func newErrorWithCause(t ErrorType, message string, cause error) *ClientError {
	return &ClientError{Type: t, Message: message, Cause: cause}
}

// IsValidationError reports whether err is a local validation failure that
// never reached the network.
func IsValidationError(err error) bool {
	ce, ok := err.(*ClientError)
	return ok && ce.Type == ErrTypeValidation
}

// UserMessage maps any analysis error to the single human-readable string
// the view shows. Server-reported messages pass through verbatim; every
// other failure collapses to the generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if ce, ok := err.(*ClientError); ok {
		switch ce.Type {
		case ErrTypeServer, ErrTypeValidation:
			return ce.Message
		}
	}
	return FallbackMessage
}
