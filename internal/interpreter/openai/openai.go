// Package openai implements the Generator and Transcriber interfaces using
// the OpenAI API (or any OpenAI-compatible server via base_url).
//
// Generation uses Chat Completions with a single choice and a max-token cap;
// transcription uses the Audio Transcriptions (Whisper) endpoint.
package openai

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nadzzz/globemate/internal/config"
	"github.com/nadzzz/globemate/internal/interpreter"
)

const systemPrompt = "You are GlobeMate, a friendly travel companion. Answer travel questions briefly and concretely."

// Interpreter uses OpenAI APIs for generation and transcription.
type Interpreter struct {
	client             openai.Client
	transcriptionModel string
	completionModel    string
}

// New creates a new OpenAI interpreter from config. It fails when no API key
// is available, which marks the backend unavailable for the process.
func New(cfg config.OpenAIConfig, timeout time.Duration) (*Interpreter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w: missing api key", interpreter.ErrNotConfigured)
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		// Failures surface on first occurrence.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Interpreter{
		client:             openai.NewClient(opts...),
		transcriptionModel: cfg.TranscriptionModel,
		completionModel:    cfg.CompletionModel,
	}, nil
}

// Name returns the backend identifier.
func (i *Interpreter) Name() string { return "openai" }

// Generate sends the prompt to Chat Completions and returns the first choice.
func (i *Interpreter) Generate(ctx context.Context, prompt string, maxLength int) (string, error) {
	resp, err := i.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(i.completionModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(int64(maxLength)),
		N:         openai.Int(1),
	})
	if err != nil {
		return "", &interpreter.BackendError{Backend: "openai", Op: "generate", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	content := resp.Choices[0].Message.Content
	slog.Debug("openai generation complete", "text_length", len(content), "model", resp.Model)
	return content, nil
}

// Transcribe sends the recording to the Audio Transcriptions API.
func (i *Interpreter) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	resp, err := i.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(audio), "audio"+extFromContentType(contentType), contentType),
		Model: openai.AudioModel(i.transcriptionModel),
	})
	if err != nil {
		return "", &interpreter.BackendError{Backend: "openai", Op: "transcribe", Err: err}
	}

	slog.Debug("openai transcription complete", "text_length", len(resp.Text))
	return resp.Text, nil
}

// Close is a no-op for the OpenAI interpreter.
func (i *Interpreter) Close() error { return nil }

func extFromContentType(ct string) string {
	switch {
	case strings.Contains(ct, "ogg"):
		return ".ogg"
	case strings.Contains(ct, "mp3"), strings.Contains(ct, "mpeg"):
		return ".mp3"
	case strings.Contains(ct, "flac"):
		return ".flac"
	case strings.Contains(ct, "webm"):
		return ".webm"
	case strings.Contains(ct, "m4a"), strings.Contains(ct, "mp4"):
		return ".m4a"
	default:
		return ".wav"
	}
}
