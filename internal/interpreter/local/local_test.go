package local

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/globemate/internal/config"
	"github.com/nadzzz/globemate/internal/interpreter"
)

func TestNewRequiresAnEndpoint(t *testing.T) {
	_, err := New(config.LocalConfig{}, time.Second)
	assert.ErrorIs(t, err, interpreter.ErrNotConfigured)
}

func TestGenerateOllama(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"response": "Try Bali.", "done": true}`)
	}))
	defer srv.Close()

	i, err := New(config.LocalConfig{LLMEndpoint: srv.URL + "/api/generate", LLMModel: "llama3.2:1b"}, time.Second)
	require.NoError(t, err)

	text, err := i.Generate(context.Background(), "best beaches", 80)
	require.NoError(t, err)
	assert.Equal(t, "Try Bali.", text)
	assert.Equal(t, "llama3.2:1b", got["model"])
	assert.Equal(t, map[string]any{"num_predict": float64(80)}, got["options"])
}

func TestGenerateChatCompatible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices": [{"message": {"content": "Visit the Colosseum."}}]}`)
	}))
	defer srv.Close()

	i, err := New(config.LocalConfig{LLMEndpoint: srv.URL + "/v1/chat/completions"}, time.Second)
	require.NoError(t, err)

	text, err := i.Generate(context.Background(), "Plan a trip to Rome", 80)
	require.NoError(t, err)
	assert.Equal(t, "Visit the Colosseum.", text)
}

func TestGenerateStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	i, err := New(config.LocalConfig{LLMEndpoint: srv.URL + "/api/generate"}, time.Second)
	require.NoError(t, err)

	_, err = i.Generate(context.Background(), "hi", 80)
	var be *interpreter.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusNotFound, be.Status)
	assert.Contains(t, err.Error(), "model not found")
}

func TestTranscribeFlavors(t *testing.T) {
	tests := []struct {
		name      string
		flavor    string
		field     string
		wantQuery string
	}{
		{name: "openai compatible", flavor: "openai", field: "file"},
		{name: "whisper-asr-webservice", flavor: "asr", field: "audio_file", wantQuery: "transcribe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NoError(t, r.ParseMultipartForm(1<<20))
				_, _, err := r.FormFile(tt.field)
				assert.NoError(t, err)
				assert.Equal(t, tt.wantQuery, r.URL.Query().Get("task"))
				_, _ = io.WriteString(w, `{"text": " best beaches "}`)
			}))
			defer srv.Close()

			i, err := New(config.LocalConfig{WhisperEndpoint: srv.URL, WhisperType: tt.flavor, Language: "en"}, time.Second)
			require.NoError(t, err)

			text, err := i.Transcribe(context.Background(), []byte("RIFF"), "audio/wav")
			require.NoError(t, err)
			assert.Equal(t, "best beaches", text)
		})
	}
}

func TestTranscribeWithoutWhisperEndpoint(t *testing.T) {
	i, err := New(config.LocalConfig{LLMEndpoint: "http://localhost:11434/api/generate"}, time.Second)
	require.NoError(t, err)

	_, err = i.Transcribe(context.Background(), []byte("RIFF"), "audio/wav")
	assert.ErrorIs(t, err, interpreter.ErrNotConfigured)
}

func TestExtractContent(t *testing.T) {
	assert.Equal(t, "a", extractContent([]byte(`{"choices":[{"message":{"content":"a"}}]}`)))
	assert.Equal(t, "b", extractContent([]byte(`{"response":"b"}`)))
	assert.Equal(t, "", extractContent([]byte(`not json`)))
}
