// Package google implements translate.Translator against the keyless Google
// web translation endpoint (translate_a/single, client=gtx).
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Translator calls the Google web endpoint.
type Translator struct {
	endpoint string
	client   *http.Client
}

// New creates a Google translator.
func New(endpoint string, timeout time.Duration) *Translator {
	return &Translator{endpoint: endpoint, client: &http.Client{Timeout: timeout}}
}

// Name returns the backend identifier.
func (t *Translator) Name() string { return "google" }

// Translate performs one GET against the endpoint.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	q := make(url.Values)
	q.Set("client", "gtx")
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("google translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("google translate failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decoding google translate response: %w", err)
	}

	translated, err := joinSegments(raw)
	if err != nil {
		return "", err
	}
	slog.Debug("google translation complete", "target", target, "text_length", len(translated))
	return translated, nil
}

// joinSegments concatenates the translated sentence segments found at
// raw[0][i][0].
func joinSegments(raw []any) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("empty google translate response")
	}
	segments, ok := raw[0].([]any)
	if !ok || len(segments) == 0 {
		return "", fmt.Errorf("unexpected google translate response shape")
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			sb.WriteString(s)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no translated text in google translate response")
	}
	return sb.String(), nil
}
