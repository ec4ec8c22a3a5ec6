// Package travel implements the stateless travel utilities: currency
// conversion, emergency numbers, scam screening, passport help, carbon
// estimates and eco-hotel listings.
//
// Every function returns a single user-facing line. Failures are reported
// in-band with the warning marker, never as Go errors.
package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nadzzz/globemate/internal/message"
	"github.com/nadzzz/globemate/internal/metrics"
)

// RateCache stores exchange-rate tables keyed by base currency.
type RateCache interface {
	Get(ctx context.Context, base string) (map[string]float64, bool)
	Set(ctx context.Context, base string, rates map[string]float64)
}

// Converter looks up exchange rates from an open.er-api.com compatible service.
type Converter struct {
	endpoint string
	client   *http.Client
	cache    RateCache // nil disables caching
}

// NewConverter creates a converter. endpoint is the base path to which the
// upper-cased base currency is appended.
func NewConverter(endpoint string, timeout time.Duration, cache RateCache) *Converter {
	return &Converter{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		cache:    cache,
	}
}

type ratesResponse struct {
	Result    string             `json:"result"`
	Rates     map[string]float64 `json:"rates"`
	ErrorType string             `json:"error-type"`
}

// Convert converts amount from one currency to another.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) string {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	rates, problem := c.rates(ctx, from)
	if problem != "" {
		return message.Warning(problem)
	}

	rate, ok := rates[to]
	if !ok {
		return message.Warning(fmt.Sprintf("Currency %s not supported.", to))
	}
	converted := round2(amount * rate)
	return fmt.Sprintf("%s %s = %s %s", formatNumber(amount), from, formatNumber(converted), to)
}

// rates returns the rate table for base, or a user-facing problem
// description when the lookup fails.
func (c *Converter) rates(ctx context.Context, base string) (map[string]float64, string) {
	if c.cache != nil {
		if rates, ok := c.cache.Get(ctx, base); ok {
			return rates, ""
		}
	}

	start := time.Now()
	body, err := c.fetch(ctx, base)
	metrics.ObserveBackend("currency", "rates", start, err)
	if err != nil {
		slog.Warn("exchange rate lookup failed", "base", base, "error", err)
		return nil, "Error: " + err.Error()
	}
	if body.Result != "success" {
		errType := body.ErrorType
		if errType == "" {
			errType = "Unknown error"
		}
		return nil, "API Error: " + errType
	}

	if c.cache != nil {
		c.cache.Set(ctx, base, body.Rates)
	}
	return body.Rates, ""
}

func (c *Converter) fetch(ctx context.Context, base string) (*ratesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/"+base, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// The service reports failures in the JSON body, sometimes with a
	// non-200 status, so the body is decoded either way.
	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding rates (status %d): %w", resp.StatusCode, err)
	}
	slog.Debug("exchange rates fetched", "base", base, "rates", len(body.Rates))
	return &body, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatNumber prints v the way travellers read amounts: shortest decimal
// form, always with at least one fractional digit ("1.0", "278.53").
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
