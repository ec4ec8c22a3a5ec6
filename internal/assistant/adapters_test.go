package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nadzzz/globemate/internal/interpreter"
	"github.com/nadzzz/globemate/internal/message"
)

func TestGenerationAdapter(t *testing.T) {
	t.Run("unavailable never calls", func(t *testing.T) {
		a := NewGenerationAdapter(nil, time.Second)
		res := a.Generate(context.Background(), "hi", 80)
		assert.False(t, a.Available())
		assert.Equal(t, StatusUnavailable, res.Status)
	})

	t.Run("ok", func(t *testing.T) {
		gen := &stubGenerator{text: "Try Bali."}
		res := NewGenerationAdapter(gen, time.Second).Generate(context.Background(), "best beaches", 80)
		assert.Equal(t, GenerationResult{Status: StatusOK, Text: "Try Bali."}, res)
		assert.Equal(t, 80, gen.maxLen)
		assert.Equal(t, "best beaches", gen.prompt)
	})

	t.Run("empty continuation", func(t *testing.T) {
		res := NewGenerationAdapter(&stubGenerator{text: "  "}, time.Second).Generate(context.Background(), "x", 80)
		assert.Equal(t, StatusOK, res.Status)
		assert.Equal(t, message.NoResponse, res.Text)
	})

	t.Run("error becomes failed", func(t *testing.T) {
		res := NewGenerationAdapter(&stubGenerator{err: errors.New("quota exceeded")}, time.Second).Generate(context.Background(), "x", 80)
		assert.Equal(t, StatusFailed, res.Status)
		assert.Equal(t, "quota exceeded", res.Reason)
	})

	t.Run("panic becomes failed", func(t *testing.T) {
		res := NewGenerationAdapter(&stubGenerator{panics: true}, time.Second).Generate(context.Background(), "x", 80)
		assert.Equal(t, StatusFailed, res.Status)
		assert.Equal(t, "model exploded", res.Reason)
	})
}

func TestTranslationAdapter(t *testing.T) {
	t.Run("resolves names to codes", func(t *testing.T) {
		tr := &stubTranslator{text: "Hola"}
		res := NewTranslationAdapter(tr, time.Second).Translate(context.Background(), "Hello", "en", "spanish")
		assert.Equal(t, TranslationResult{Status: StatusOK, Text: "Hola"}, res)
		assert.Equal(t, "en", tr.source)
		assert.Equal(t, "es", tr.target)
	})

	t.Run("unknown target fails without a call", func(t *testing.T) {
		tr := &stubTranslator{text: "x"}
		res := NewTranslationAdapter(tr, time.Second).Translate(context.Background(), "Hello", "en", "!!")
		assert.Equal(t, StatusFailed, res.Status)
		assert.Zero(t, tr.calls.Load())
	})

	t.Run("backend error", func(t *testing.T) {
		tr := &stubTranslator{err: errors.New("429 too many requests")}
		res := NewTranslationAdapter(tr, time.Second).Translate(context.Background(), "Hello", "auto", "fr")
		assert.Equal(t, StatusFailed, res.Status)
		assert.Equal(t, "429 too many requests", res.Reason)
		assert.EqualValues(t, 1, tr.calls.Load(), "no retry")
	})

	t.Run("no backend", func(t *testing.T) {
		res := NewTranslationAdapter(nil, time.Second).Translate(context.Background(), "Hello", "en", "fr")
		assert.Equal(t, StatusFailed, res.Status)
	})
}

func TestTranscriptionAdapter(t *testing.T) {
	audio := []byte("RIFF")

	tests := []struct {
		name       string
		stt        *stubTranscriber
		audio      []byte
		wantStatus Status
		wantText   string
	}{
		{name: "ok", stt: &stubTranscriber{text: " best beaches "}, audio: audio, wantStatus: StatusOK, wantText: "best beaches"},
		{name: "not configured", stt: nil, audio: audio, wantStatus: StatusUnavailable},
		{name: "empty audio", stt: &stubTranscriber{text: "x"}, audio: nil, wantStatus: StatusFailed},
		{name: "silence", stt: &stubTranscriber{text: ""}, audio: audio, wantStatus: StatusFailed},
		{name: "backend error", stt: &stubTranscriber{err: errors.New("unsupported format")}, audio: audio, wantStatus: StatusFailed},
		{
			name:       "backend missing endpoint",
			stt:        &stubTranscriber{err: fmt.Errorf("local: %w", interpreter.ErrNotConfigured)},
			audio:      audio,
			wantStatus: StatusUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewTranscriptionAdapter(nil, time.Second)
			if tt.stt != nil {
				a = NewTranscriptionAdapter(tt.stt, time.Second)
			}
			res := a.Transcribe(context.Background(), tt.audio, "audio/wav")
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantText, res.Text)
			if tt.wantStatus != StatusOK {
				assert.NotEmpty(t, res.Reason)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "unavailable", StatusUnavailable.String())
	assert.Equal(t, "failed", StatusFailed.String())
}
