package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nadzzz/globemate/internal/interpreter"
	"github.com/nadzzz/globemate/internal/message"
	"github.com/nadzzz/globemate/internal/metrics"
	"github.com/nadzzz/globemate/internal/translate"
)

// Status tags an adapter result.
type Status int

const (
	StatusOK Status = iota
	StatusUnavailable
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "failed"
	}
}

// GenerationResult is Ok(Text), Unavailable, or Failed(Reason).
type GenerationResult struct {
	Status Status
	Text   string
	Reason string
}

// TranslationResult is Ok(Text) or Failed(Reason).
type TranslationResult struct {
	Status Status
	Text   string
	Reason string
}

// TranscriptionResult is Ok(Text), Unavailable (no backend), or Failed(Reason).
type TranscriptionResult struct {
	Status Status
	Text   string
	Reason string
}

// GenerationAdapter wraps a Generator. A nil generator means the backend
// failed to initialize at startup; that state never changes.
type GenerationAdapter struct {
	gen     interpreter.Generator
	timeout time.Duration
}

// NewGenerationAdapter wraps gen. Pass nil when the backend could not be
// constructed.
func NewGenerationAdapter(gen interpreter.Generator, timeout time.Duration) *GenerationAdapter {
	return &GenerationAdapter{gen: gen, timeout: timeout}
}

// Available reports whether a generation backend was initialized.
func (a *GenerationAdapter) Available() bool { return a.gen != nil }

// Generate requests one continuation capped at maxLength.
func (a *GenerationAdapter) Generate(ctx context.Context, prompt string, maxLength int) (res GenerationResult) {
	if a.gen == nil {
		return GenerationResult{Status: StatusUnavailable, Reason: "AI Model not loaded."}
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("generator panicked", "backend", a.gen.Name(), "panic", r)
			res = GenerationResult{Status: StatusFailed, Reason: fmt.Sprint(r)}
		}
	}()

	ctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	text, err := a.gen.Generate(ctx, prompt, maxLength)
	metrics.ObserveBackend(a.gen.Name(), "generate", start, err)
	if err != nil {
		return GenerationResult{Status: StatusFailed, Reason: err.Error()}
	}
	if strings.TrimSpace(text) == "" {
		text = message.NoResponse
	}
	return GenerationResult{Status: StatusOK, Text: text}
}

// TranslationAdapter wraps a Translator. Each call is independent: no
// retry, no caching.
type TranslationAdapter struct {
	tr      translate.Translator
	timeout time.Duration
}

// NewTranslationAdapter wraps tr.
func NewTranslationAdapter(tr translate.Translator, timeout time.Duration) *TranslationAdapter {
	return &TranslationAdapter{tr: tr, timeout: timeout}
}

// Translate converts text from source ("auto" or a language) to target.
// Language names are resolved to backend codes first.
func (a *TranslationAdapter) Translate(ctx context.Context, text, source, target string) (res TranslationResult) {
	if a.tr == nil {
		return TranslationResult{Status: StatusFailed, Reason: "translation backend not configured"}
	}
	src, err := translate.ResolveLanguage(source)
	if err != nil {
		return TranslationResult{Status: StatusFailed, Reason: err.Error()}
	}
	dst, err := translate.ResolveLanguage(target)
	if err != nil {
		return TranslationResult{Status: StatusFailed, Reason: err.Error()}
	}
	if dst == translate.AutoDetect {
		return TranslationResult{Status: StatusFailed, Reason: "target language cannot be auto"}
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("translator panicked", "backend", a.tr.Name(), "panic", r)
			res = TranslationResult{Status: StatusFailed, Reason: fmt.Sprint(r)}
		}
	}()

	ctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	out, err := a.tr.Translate(ctx, text, src, dst)
	metrics.ObserveBackend(a.tr.Name(), "translate", start, err)
	if err != nil {
		return TranslationResult{Status: StatusFailed, Reason: err.Error()}
	}
	return TranslationResult{Status: StatusOK, Text: out}
}

// TranscriptionAdapter wraps a Transcriber. A nil transcriber fails closed:
// every call reports Unavailable.
type TranscriptionAdapter struct {
	stt     interpreter.Transcriber
	timeout time.Duration
}

// NewTranscriptionAdapter wraps stt. Pass nil when speech recognition is
// not configured.
func NewTranscriptionAdapter(stt interpreter.Transcriber, timeout time.Duration) *TranscriptionAdapter {
	return &TranscriptionAdapter{stt: stt, timeout: timeout}
}

// Available reports whether a transcription backend was initialized.
func (a *TranscriptionAdapter) Available() bool { return a.stt != nil }

// Transcribe recognizes the whole recording in one call.
func (a *TranscriptionAdapter) Transcribe(ctx context.Context, audio []byte, contentType string) (res TranscriptionResult) {
	if a.stt == nil {
		return TranscriptionResult{Status: StatusUnavailable, Reason: "speech recognition not available"}
	}
	if len(audio) == 0 {
		return TranscriptionResult{Status: StatusFailed, Reason: "no audio recorded"}
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("transcriber panicked", "backend", a.stt.Name(), "panic", r)
			res = TranscriptionResult{Status: StatusFailed, Reason: fmt.Sprint(r)}
		}
	}()

	ctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	text, err := a.stt.Transcribe(ctx, audio, contentType)
	metrics.ObserveBackend(a.stt.Name(), "transcribe", start, err)
	if err != nil {
		if errors.Is(err, interpreter.ErrNotConfigured) {
			return TranscriptionResult{Status: StatusUnavailable, Reason: "speech recognition not available"}
		}
		return TranscriptionResult{Status: StatusFailed, Reason: err.Error()}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return TranscriptionResult{Status: StatusFailed, Reason: "could not understand audio"}
	}
	return TranscriptionResult{Status: StatusOK, Text: text}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
