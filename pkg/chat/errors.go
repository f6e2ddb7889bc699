package chat

import (
	"errors"
	"fmt"
)

// ErrNoAPIKey is returned when the API key is missing.
var ErrNoAPIKey = errors.New("chat: API key required")

// APIError represents an error response from the chat API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error message from the API.
	Message string

	// Code is the provider-specific error code, if any.
	Code string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("chat: API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("chat: API error %d: %s", e.StatusCode, e.Message)
}

// IsRateLimited returns true for HTTP 429.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsServerError returns true for HTTP 5xx.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// WrapError adds chat context to an error.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("chat: %w", err)
}
