package travel

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usdRates = `{"result": "success", "base_code": "USD", "rates": {"USD": 1, "PKR": 278.5312, "EUR": 0.92}}`

func newRatesServer(t *testing.T, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		assert.Equal(t, "/v6/latest/USD", r.URL.Path)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestConvert(t *testing.T) {
	srv := newRatesServer(t, usdRates, nil)
	c := NewConverter(srv.URL+"/v6/latest/", time.Second, nil)

	assert.Equal(t, "1.0 USD = 278.53 PKR", c.Convert(context.Background(), 1, "usd", "pkr"))
	assert.Equal(t, "12.5 USD = 11.5 EUR", c.Convert(context.Background(), 12.5, "USD", " eur "))
}

func TestConvertUnsupportedTarget(t *testing.T) {
	srv := newRatesServer(t, usdRates, nil)
	c := NewConverter(srv.URL+"/v6/latest", time.Second, nil)

	assert.Equal(t, "⚠️ Currency XYZ not supported.", c.Convert(context.Background(), 1, "USD", "xyz"))
}

func TestConvertAPIError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "labelled", body: `{"result": "error", "error-type": "unsupported-code"}`, want: "⚠️ API Error: unsupported-code"},
		{name: "unlabelled", body: `{"result": "error"}`, want: "⚠️ API Error: Unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newRatesServer(t, tt.body, nil)
			c := NewConverter(srv.URL+"/v6/latest", time.Second, nil)
			assert.Equal(t, tt.want, c.Convert(context.Background(), 1, "USD", "PKR"))
		})
	}
}

func TestConvertTransportError(t *testing.T) {
	c := NewConverter("http://127.0.0.1:1/v6/latest", 200*time.Millisecond, nil)

	got := c.Convert(context.Background(), 1, "USD", "PKR")
	assert.Contains(t, got, "⚠️ Error: ")
}

func TestConvertUsesRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	var hits atomic.Int32
	srv := newRatesServer(t, usdRates, &hits)
	c := NewConverter(srv.URL+"/v6/latest", time.Second, NewRedisRateCache(client, time.Hour))

	first := c.Convert(context.Background(), 2, "USD", "PKR")
	second := c.Convert(context.Background(), 2, "USD", "PKR")

	assert.Equal(t, "2.0 USD = 557.06 PKR", first)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, hits.Load())
	assert.True(t, mr.Exists(rateKeyPrefix+"USD"))

	mr.FastForward(2 * time.Hour)
	c.Convert(context.Background(), 2, "USD", "PKR")
	assert.EqualValues(t, 2, hits.Load())
}

func TestRedisRateCacheIgnoresCorruptEntries(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	require.NoError(t, mr.Set(rateKeyPrefix+"EUR", "not json"))
	_, ok := NewRedisRateCache(client, time.Minute).Get(context.Background(), "EUR")
	assert.False(t, ok)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.0", formatNumber(1))
	assert.Equal(t, "0.12", formatNumber(0.12))
	assert.Equal(t, "1000.0", formatNumber(1000))
}
