// Package local implements the Generator and Transcriber interfaces using
// self-hosted models.
//
// It supports any Whisper-compatible transcription endpoint (e.g., whisper.cpp
// server, faster-whisper, whisper-asr-webservice) and either Ollama's
// /api/generate or any OpenAI-compatible chat endpoint (vLLM, llama.cpp server).
package local

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nadzzz/globemate/internal/config"
	"github.com/nadzzz/globemate/internal/interpreter"
)

// Interpreter uses self-hosted models for generation and transcription.
type Interpreter struct {
	whisperEndpoint string
	whisperType     string // "openai" or "asr"
	llmEndpoint     string
	llmModel        string
	language        string
	client          *http.Client
}

// New creates a new local interpreter from config.
func New(cfg config.LocalConfig, timeout time.Duration) (*Interpreter, error) {
	if cfg.LLMEndpoint == "" && cfg.WhisperEndpoint == "" {
		return nil, fmt.Errorf("local: %w: no llm or whisper endpoint", interpreter.ErrNotConfigured)
	}
	wt := cfg.WhisperType
	if wt == "" {
		wt = "openai"
	}
	model := cfg.LLMModel
	if model == "" {
		model = "llama3"
	}
	return &Interpreter{
		whisperEndpoint: cfg.WhisperEndpoint,
		whisperType:     wt,
		llmEndpoint:     cfg.LLMEndpoint,
		llmModel:        model,
		language:        cfg.Language,
		client:          &http.Client{Timeout: timeout},
	}, nil
}

// Name returns the backend identifier.
func (i *Interpreter) Name() string { return "local" }

// Transcribe sends audio to the local Whisper-compatible endpoint.
// Supports two flavors:
//   - "openai": OpenAI-compatible API (whisper.cpp server, faster-whisper)
//   - "asr":    ahmetoner/whisper-asr-webservice (POST /asr with query params)
func (i *Interpreter) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	if i.whisperEndpoint == "" {
		return "", &interpreter.BackendError{Backend: "local", Op: "transcribe", Err: interpreter.ErrNotConfigured}
	}
	var (
		text string
		err  error
	)
	switch i.whisperType {
	case "asr":
		text, err = i.transcribeASR(ctx, audio, contentType)
	default:
		text, err = i.transcribeOpenAI(ctx, audio, contentType)
	}
	if err != nil {
		return "", err
	}
	slog.Debug("local transcription complete", "text_length", len(text), "flavor", i.whisperType)
	return text, nil
}

// transcribeASR handles the whisper-asr-webservice format.
// API: POST /asr?task=transcribe&language=en&output=json
// Body: multipart/form-data with field "audio_file"
func (i *Interpreter) transcribeASR(ctx context.Context, audio []byte, contentType string) (string, error) {
	body, formType, err := audioForm("audio_file", audio, contentType, nil)
	if err != nil {
		return "", err
	}

	q := make(url.Values)
	q.Set("task", "transcribe")
	q.Set("output", "json")
	q.Set("encode", "true")
	if i.language != "" {
		q.Set("language", i.language)
	}

	return i.postTranscription(ctx, i.whisperEndpoint+"?"+q.Encode(), body, formType)
}

// transcribeOpenAI handles OpenAI-compatible whisper endpoints.
func (i *Interpreter) transcribeOpenAI(ctx context.Context, audio []byte, contentType string) (string, error) {
	fields := map[string]string{"response_format": "json"}
	if i.language != "" {
		fields["language"] = i.language
	}
	body, formType, err := audioForm("file", audio, contentType, fields)
	if err != nil {
		return "", err
	}
	return i.postTranscription(ctx, i.whisperEndpoint, body, formType)
}

func (i *Interpreter) postTranscription(ctx context.Context, endpoint string, body *bytes.Buffer, formType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", formType)

	resp, err := i.client.Do(req)
	if err != nil {
		return "", &interpreter.BackendError{Backend: "local", Op: "transcribe", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &interpreter.BackendError{
			Backend: "local", Op: "transcribe", Status: resp.StatusCode,
			Err: fmt.Errorf("%s", bytes.TrimSpace(respBody)),
		}
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding transcription: %w", err)
	}
	return strings.TrimSpace(result.Text), nil
}

// Generate sends the prompt to the local LLM endpoint.
// Supports Ollama's /api/generate and OpenAI-compatible /v1/chat/completions.
func (i *Interpreter) Generate(ctx context.Context, prompt string, maxLength int) (string, error) {
	if i.llmEndpoint == "" {
		return "", &interpreter.BackendError{Backend: "local", Op: "generate", Err: interpreter.ErrNotConfigured}
	}

	var reqBody map[string]any
	if strings.HasSuffix(i.llmEndpoint, "/api/generate") {
		reqBody = map[string]any{
			"model":   i.llmModel,
			"prompt":  prompt,
			"stream":  false,
			"options": map[string]any{"num_predict": maxLength},
		}
	} else {
		reqBody = map[string]any{
			"model": i.llmModel,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
			"max_tokens": maxLength,
			"n":          1,
			"stream":     false,
		}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.llmEndpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return "", &interpreter.BackendError{Backend: "local", Op: "generate", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &interpreter.BackendError{
			Backend: "local", Op: "generate", Status: resp.StatusCode,
			Err: fmt.Errorf("%s", bytes.TrimSpace(respBody)),
		}
	}

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading LLM response: %w", err)
	}

	content := extractContent(respData)
	slog.Debug("local generation complete", "text_length", len(content))
	return content, nil
}

// Close is a no-op for the local interpreter.
func (i *Interpreter) Close() error { return nil }

// --- Internal helpers ---

// extractContent reads the first continuation from either response shape.
// Anything unrecognized yields "", which callers treat as no response.
func extractContent(data []byte) string {
	// OpenAI-compatible format: {"choices": [{"message": {"content": "..."}}]}
	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &chatResp); err == nil && len(chatResp.Choices) > 0 {
		return chatResp.Choices[0].Message.Content
	}

	// Ollama format: {"response": "..."}
	var ollamaResp struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(data, &ollamaResp); err == nil {
		return ollamaResp.Response
	}
	return ""
}

func audioForm(field string, audio []byte, contentType string, fields map[string]string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(field, "audio"+extFromContentType(contentType))
	if err != nil {
		return nil, "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("writing audio: %w", err)
	}
	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

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
	default:
		return ".wav"
	}
}
