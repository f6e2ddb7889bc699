// Package stt transcribes captured audio to text.
package stt

import (
	"context"
	"errors"
	"fmt"

	"github.com/emodesk/deskbot/pkg/audio"
)

// ErrNoAPIKey is returned when the API key is missing.
var ErrNoAPIKey = errors.New("stt: API key required")

// Transcriber converts one audio chunk to lower-cased text.
type Transcriber interface {
	Transcribe(ctx context.Context, chunk audio.Chunk) (string, error)
	Close() error
}

// APIError represents an error response from the transcription API.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("stt: API error %d: %s", e.StatusCode, e.Message)
}
