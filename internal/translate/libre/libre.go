// Package libre implements translate.Translator against a LibreTranslate server.
package libre

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Translator calls POST /translate on a LibreTranslate instance.
type Translator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// New creates a LibreTranslate translator.
func New(endpoint, apiKey string, timeout time.Duration) *Translator {
	return &Translator{endpoint: endpoint, apiKey: apiKey, client: &http.Client{Timeout: timeout}}
}

// Name returns the backend identifier.
func (t *Translator) Name() string { return "libre" }

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Translate performs one translation request.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: t.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("libretranslate request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading libretranslate response: %w", err)
	}

	var out translateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("libretranslate failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return "", fmt.Errorf("decoding libretranslate response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("libretranslate: %s", out.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("libretranslate failed (status %d)", resp.StatusCode)
	}
	return out.TranslatedText, nil
}
