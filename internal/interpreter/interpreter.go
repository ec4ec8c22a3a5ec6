// Package interpreter defines the interfaces for text generation and speech
// recognition backends.
//
// GlobeMate ships with three generation backends (OpenAI-compatible chat,
// Gemini, local Ollama) and two transcription backends (OpenAI Whisper API,
// self-hosted whisper). Backends return plain Go errors; the assistant
// package turns them into typed results.
package interpreter

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by constructors when a backend lacks the
// settings it needs to start (e.g. an API key).
var ErrNotConfigured = errors.New("backend not configured")

// Generator produces a text continuation for a prompt.
type Generator interface {
	// Name returns the backend identifier (e.g., "openai", "gemini", "local").
	Name() string

	// Generate requests a single continuation capped at maxLength tokens.
	// An empty string is a valid result.
	Generate(ctx context.Context, prompt string, maxLength int) (string, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Transcriber converts one complete audio recording to text.
type Transcriber interface {
	// Name returns the backend identifier.
	Name() string

	// Transcribe recognizes speech in audio.
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)

	// Close releases any resources held by the backend.
	Close() error
}

// BackendError reports a failed call to a model backend.
type BackendError struct {
	Backend string
	Op      string // "generate" or "transcribe"
	Status  int    // HTTP status, 0 if the call never got a response
	Err     error
}

func (e *BackendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s failed (status %d): %v", e.Backend, e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }
