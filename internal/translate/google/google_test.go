package google

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "gtx", q.Get("client"))
		assert.Equal(t, "en", q.Get("sl"))
		assert.Equal(t, "es", q.Get("tl"))
		assert.Equal(t, "Visit Rome. Eat pasta.", q.Get("q"))
		_, _ = io.WriteString(w, `[[["Visita Roma. ","Visit Rome. ",null,null,10],["Come pasta.","Eat pasta.",null,null,10]],null,"en"]`)
	}))
	defer srv.Close()

	got, err := New(srv.URL, time.Second).Translate(context.Background(), "Visit Rome. Eat pasta.", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "Visita Roma. Come pasta.", got)
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "status", status: http.StatusTooManyRequests, body: "slow down", wantErr: "status 429"},
		{name: "not json", status: http.StatusOK, body: "<html>", wantErr: "decoding"},
		{name: "empty", status: http.StatusOK, body: `[]`, wantErr: "empty"},
		{name: "no segments", status: http.StatusOK, body: `[null]`, wantErr: "unexpected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL, time.Second).Translate(context.Background(), "hi", "auto", "fr")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
