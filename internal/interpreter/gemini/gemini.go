// Package gemini implements the Generator interface using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/nadzzz/globemate/internal/config"
	"github.com/nadzzz/globemate/internal/interpreter"
)

// Generator calls the Gemini GenerateContent API.
type Generator struct {
	client *genai.Client
	model  string
}

// New creates a Gemini generator. Client construction happens here so that
// a bad key or backend setting is caught once at startup.
func New(ctx context.Context, cfg config.GeminiConfig, timeout time.Duration) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w: missing api key", interpreter.ErrNotConfigured)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	return &Generator{client: client, model: cfg.Model}, nil
}

// Name returns the backend identifier.
func (g *Generator) Name() string { return "gemini" }

// Generate requests one candidate capped at maxLength output tokens.
func (g *Generator) Generate(ctx context.Context, prompt string, maxLength int) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxLength),
		CandidateCount:  1,
	})
	if err != nil {
		return "", &interpreter.BackendError{Backend: "gemini", Op: "generate", Err: err}
	}
	if result == nil {
		return "", nil
	}

	text := result.Text()
	slog.Debug("gemini generation complete", "text_length", len(text), "model", g.model)
	return text, nil
}

// Close is a no-op; the genai client holds no long-lived connections.
func (g *Generator) Close() error { return nil }
