// Package domain defines the core domain models for the telemetry CLI.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
//
// Field names the offending parameter for field-level failures and is
// rendered between the message and the details.
type DomainError struct {
	Code    string // Error code (e.g., "TC-CMD-4003")
	Message string // Human-readable message
	Field   string // Offending parameter (if any)
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg += " " + e.Field
	}
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, msg, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := *e
	c.Details = details
	return &c
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := *e
	c.Cause = cause
	return &c
}

// Wrap is shorthand for WithCause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// ForField returns a copy of the error bound to a parameter name.
func (e *DomainError) ForField(field, details string) *DomainError {
	c := *e
	c.Field = field
	c.Details = details
	return &c
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// FieldOf extracts the offending parameter name from an error, if any.
func FieldOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}

// IsAuthError reports whether err is an authentication failure reported by
// the hub. A bad credential fails every later call, so callers abort on it.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrHubUnauthorized)
}

// ============================================================================
// Command Language Errors (CMD)
// ============================================================================

var (
	// ErrMalformedInvocation indicates unbalanced parentheses.
	ErrMalformedInvocation = NewDomainError("TC-CMD-4000", "malformed invocation")

	// ErrMissingParameterBlock indicates a parameter-requiring command was
	// invoked without any parentheses.
	ErrMissingParameterBlock = NewDomainError("TC-CMD-4001", "command requires parameters")

	// ErrMissingField indicates a required parameter is absent.
	ErrMissingField = NewDomainError("TC-CMD-4002", "missing")

	// ErrInvalidField indicates a parameter failed type, format or domain validation.
	ErrInvalidField = NewDomainError("TC-CMD-4003", "invalid")

	// ErrUnknownCommand indicates the command name is not recognised.
	ErrUnknownCommand = NewDomainError("TC-CMD-4040", "unknown command")

	// ErrNonTransportable indicates an attempt to serialize the quit sentinel.
	ErrNonTransportable = NewDomainError("TC-CMD-4050", "command cannot be sent to the hub")
)

// ============================================================================
// Hub Transport Errors (HUB)
// ============================================================================

var (
	// ErrHubClientError indicates the hub rejected the command (4xx other than 401).
	ErrHubClientError = NewDomainError("TC-HUB-4000", "command error")

	// ErrHubUnauthorized indicates the hub rejected the API key (401).
	ErrHubUnauthorized = NewDomainError("TC-HUB-4010", "command error: 401 Unauthorized - Invalid API key")

	// ErrHubServerError indicates the hub failed to process the command (5xx).
	ErrHubServerError = NewDomainError("TC-HUB-5000", "server error")

	// ErrHubUnexpectedStatus indicates a status outside the known contract.
	ErrHubUnexpectedStatus = NewDomainError("TC-HUB-5001", "unexpected response")

	// ErrHubUnreachable indicates the request never produced a response.
	ErrHubUnreachable = NewDomainError("TC-HUB-5030", "failed to send request to hub")
)

// ============================================================================
// Configuration Errors (CFG)
// ============================================================================

var (
	// ErrConfigInvalid indicates the configuration failed verification.
	ErrConfigInvalid = NewDomainError("TC-CFG-4000", "invalid configuration")
)
