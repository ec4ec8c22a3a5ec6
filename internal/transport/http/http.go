// Package http implements the HTTP JSON transport for globemate.
//
// This transport exposes the assistant, the community feed and the travel
// utilities as a REST API, plus the Swagger UI. It is the surface a web or
// mobile front-end calls.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/time/rate"

	_ "github.com/nadzzz/globemate/docs" // registers the OpenAPI document
	"github.com/nadzzz/globemate/internal/config"
	"github.com/nadzzz/globemate/internal/message"
	"github.com/nadzzz/globemate/internal/metrics"
	"github.com/nadzzz/globemate/internal/transport"
)

// maxAudioBytes caps a voice upload.
const maxAudioBytes = 25 << 20

// Transport implements transport.Transport over HTTP.
type Transport struct {
	cfg    config.HTTPConfig
	server *http.Server
}

// New creates a new HTTP transport.
func New(cfg config.HTTPConfig) *Transport {
	return &Transport{cfg: cfg}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Listen starts the HTTP server and routes incoming requests to svc.
func (t *Transport) Listen(ctx context.Context, svc transport.Service) error {
	t.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", t.cfg.Port),
		Handler:           t.Handler(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "port", t.cfg.Port)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// Handler builds the routed, middleware-wrapped API handler.
func (t *Transport) Handler(svc transport.Service) http.Handler {
	h := &handlers{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/ask", h.ask)
	mux.HandleFunc("POST /v1/voice", h.voice)
	mux.HandleFunc("GET /v1/tips", h.recentTips)
	mux.HandleFunc("POST /v1/tips", h.shareTip)
	mux.HandleFunc("GET /v1/currency/convert", h.convertCurrency)
	mux.HandleFunc("POST /v1/translate", h.translate)
	mux.HandleFunc("GET /v1/safety/emergency", h.emergency)
	mux.HandleFunc("POST /v1/safety/scam", h.scam)
	mux.HandleFunc("GET /v1/safety/passport", h.passport)
	mux.HandleFunc("GET /v1/eco/carbon", h.carbon)
	mux.HandleFunc("GET /v1/eco/hotels", h.hotels)

	// Swagger UI, backed by the registered OpenAPI document.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var handler http.Handler = mux
	if t.cfg.RateLimit > 0 {
		handler = rateLimit(rate.NewLimiter(rate.Limit(t.cfg.RateLimit), max(t.cfg.RateBurst, 1)), handler)
	}
	handler = requestID(handler)
	handler = metrics.Middleware(handler)
	if len(t.cfg.AllowedOrigins) > 0 {
		handler = cors.Handler(cors.Options{
			AllowedOrigins: t.cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		})(handler)
	}
	return handler
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}

// rateLimit rejects requests beyond the process-wide budget with 429.
func rateLimit(l *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestID echoes or assigns X-Request-ID and tags the request log line.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		slog.Debug("http request", "request_id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

type handlers struct {
	svc transport.Service
}

// ask answers a typed question.
//
// @Summary     Ask a travel question
// @Description Generates a short answer and, for non-English languages, translates it.
// @Description Backend failures are reported in the text behind the ⚠️ marker, never as HTTP errors.
// @Tags        assistant
// @Accept      json
// @Produce     json
// @Param       query  body      message.Query     true  "Question and reply language"
// @Success     200    {object}  message.Response  "Answer"
// @Failure     400    {string}  string            "Invalid request body"
// @Router      /v1/ask [post]
func (h *handlers) ask(w http.ResponseWriter, r *http.Request) {
	var q message.Query
	if !decodeJSON(w, r, &q) {
		return
	}
	writeJSON(w, h.svc.Ask(r.Context(), q))
}

// voice answers a recorded question.
//
// @Summary     Ask by voice
// @Description Accepts raw audio bytes with their Content-Type, or a JSON VoiceQuery with base64 audio.
// @Description The recording is transcribed and answered in English.
// @Tags        assistant
// @Accept      json
// @Accept      audio/wav
// @Accept      audio/ogg
// @Accept      audio/mpeg
// @Produce     json
// @Param       query  body      message.VoiceQuery  true  "Voice query (JSON). For raw audio, POST the bytes directly."
// @Success     200    {object}  message.Response    "Transcript and answer"
// @Failure     400    {string}  string              "Invalid request body"
// @Router      /v1/voice [post]
func (h *handlers) voice(w http.ResponseWriter, r *http.Request) {
	var v message.VoiceQuery

	if isJSON(r) {
		if !decodeJSON(w, r, &v) {
			return
		}
	} else {
		audio, err := io.ReadAll(io.LimitReader(r.Body, maxAudioBytes))
		if err != nil {
			http.Error(w, "reading audio: "+err.Error(), http.StatusBadRequest)
			return
		}
		v.Audio = audio
		v.ContentType = r.Header.Get("Content-Type")
	}

	writeJSON(w, h.svc.AskVoice(r.Context(), v))
}

// recentTips returns the visible feed.
//
// @Summary     List community tips
// @Tags        community
// @Produce     json
// @Success     200  {object}  message.FeedView  "Ten most recent tips, oldest first"
// @Router      /v1/tips [get]
func (h *handlers) recentTips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.RecentTips(r.Context()))
}

// shareTip submits a tip.
//
// @Summary     Share a community tip
// @Description Blank tips are ignored; the current feed is returned either way.
// @Tags        community
// @Accept      json
// @Produce     json
// @Param       tip  body      message.TipRequest  true  "Tip"
// @Success     200  {object}  message.FeedView    "Updated feed"
// @Failure     400  {string}  string              "Invalid request body"
// @Router      /v1/tips [post]
func (h *handlers) shareTip(w http.ResponseWriter, r *http.Request) {
	var req message.TipRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, h.svc.ShareTip(r.Context(), req.Tip))
}

// convertCurrency converts an amount between currencies.
//
// @Summary     Convert currency
// @Tags        travel
// @Produce     json
// @Param       amount  query     number  true  "Amount"
// @Param       from    query     string  true  "Source currency code"  example(USD)
// @Param       to      query     string  true  "Target currency code"  example(PKR)
// @Success     200     {object}  message.TextResult
// @Failure     400     {string}  string  "Missing or invalid parameters"
// @Router      /v1/currency/convert [get]
func (h *handlers) convertCurrency(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, ok := floatParam(w, q.Get("amount"), "amount")
	if !ok {
		return
	}
	from, to := q.Get("from"), q.Get("to")
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		http.Error(w, "from and to are required", http.StatusBadRequest)
		return
	}
	writeJSON(w, message.TextResult{Result: h.svc.ConvertCurrency(r.Context(), amount, from, to)})
}

// translate translates free text.
//
// @Summary     Translate text
// @Tags        travel
// @Accept      json
// @Produce     json
// @Param       request  body      message.TranslateRequest  true  "Text and target language"
// @Success     200      {object}  message.TextResult
// @Failure     400      {string}  string  "Invalid request body"
// @Router      /v1/translate [post]
func (h *handlers) translate(w http.ResponseWriter, r *http.Request) {
	var req message.TranslateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Target) == "" {
		http.Error(w, "target is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, message.TextResult{Result: h.svc.Translate(r.Context(), req.Text, req.Target)})
}

// emergency looks up emergency numbers.
//
// @Summary     Emergency numbers
// @Tags        safety
// @Produce     json
// @Param       country  query     string  true  "Country name"
// @Success     200      {object}  message.TextResult
// @Router      /v1/safety/emergency [get]
func (h *handlers) emergency(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, message.TextResult{Result: h.svc.EmergencyNumber(r.URL.Query().Get("country"))})
}

// scam screens a message for scam phrases.
//
// @Summary     Scam check
// @Tags        safety
// @Accept      json
// @Produce     json
// @Param       request  body      message.ScamRequest  true  "Message to screen"
// @Success     200      {object}  message.TextResult
// @Failure     400      {string}  string  "Invalid request body"
// @Router      /v1/safety/scam [post]
func (h *handlers) scam(w http.ResponseWriter, r *http.Request) {
	var req message.ScamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, message.TextResult{Result: h.svc.ScamCheck(req.Text)})
}

// passport explains lost-passport steps.
//
// @Summary     Lost passport help
// @Tags        safety
// @Produce     json
// @Param       country  query     string  true  "Country where the passport was lost"
// @Success     200      {object}  message.TextResult
// @Router      /v1/safety/passport [get]
func (h *handlers) passport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, message.TextResult{Result: h.svc.PassportHelp(r.URL.Query().Get("country"))})
}

// carbon estimates flight emissions.
//
// @Summary     Flight carbon footprint
// @Tags        eco
// @Produce     json
// @Param       distance    query     number  true   "Flight distance in km"
// @Param       passengers  query     number  false  "Passenger count (default 1)"
// @Success     200         {object}  message.TextResult
// @Failure     400         {string}  string  "Missing or invalid parameters"
// @Router      /v1/eco/carbon [get]
func (h *handlers) carbon(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	distance, ok := floatParam(w, q.Get("distance"), "distance")
	if !ok {
		return
	}
	passengers := 1.0
	if p := q.Get("passengers"); p != "" {
		if passengers, ok = floatParam(w, p, "passengers"); !ok {
			return
		}
	}
	writeJSON(w, message.TextResult{Result: h.svc.CarbonFootprint(distance, passengers)})
}

// hotels lists eco-friendly hotels.
//
// @Summary     Eco-friendly hotels
// @Tags        eco
// @Produce     json
// @Param       city  query     string  true  "City"
// @Success     200   {object}  message.TextResult
// @Router      /v1/eco/hotels [get]
func (h *handlers) hotels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, message.TextResult{Result: h.svc.EcoHotels(r.URL.Query().Get("city"))})
}

func isJSON(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == "application/json"
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxAudioBytes))
	if err := dec.Decode(v); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func floatParam(w http.ResponseWriter, raw, name string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid %s: %q", name, raw), http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
