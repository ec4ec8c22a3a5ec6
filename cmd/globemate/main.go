// GlobeMate is a multilingual travel assistant daemon. It answers typed and
// spoken travel questions, keeps a shared feed of community tips, and serves
// small travel utilities over HTTP and gRPC.
//
// Usage:
//
//	globemate [flags]
//	globemate --config /path/to/globemate.yaml
//
//	@title			GlobeMate API
//	@version		1.0
//	@description	Multilingual travel assistant: questions, voice queries, community tips and travel utilities.
//	@BasePath		/
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	_ "go.uber.org/automaxprocs"

	"github.com/nadzzz/globemate/internal/assistant"
	"github.com/nadzzz/globemate/internal/config"
	"github.com/nadzzz/globemate/internal/feed"
	"github.com/nadzzz/globemate/internal/health"
	"github.com/nadzzz/globemate/internal/interpreter"
	geminiinterp "github.com/nadzzz/globemate/internal/interpreter/gemini"
	localinterp "github.com/nadzzz/globemate/internal/interpreter/local"
	openaiinterp "github.com/nadzzz/globemate/internal/interpreter/openai"
	"github.com/nadzzz/globemate/internal/translate"
	"github.com/nadzzz/globemate/internal/translate/google"
	"github.com/nadzzz/globemate/internal/translate/libre"
	"github.com/nadzzz/globemate/internal/transport"
	grpctransport "github.com/nadzzz/globemate/internal/transport/grpc"
	httptransport "github.com/nadzzz/globemate/internal/transport/http"
	"github.com/nadzzz/globemate/internal/travel"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/globemate.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("globemate %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("globemate starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Backends that fail to initialize stay nil: the adapters then report
	// the model as not loaded instead of the daemon refusing to start.
	gen := newGenerator(ctx, cfg.Interpreter)
	if gen != nil {
		defer gen.Close()
	}
	stt := newTranscriber(cfg.Interpreter)
	if stt != nil {
		defer stt.Close()
	}
	tr := newTranslator(cfg.Translate)

	pipeline := assistant.NewPipeline(
		assistant.NewGenerationAdapter(gen, cfg.Interpreter.Timeout),
		assistant.NewTranslationAdapter(tr, cfg.Translate.Timeout),
		assistant.NewTranscriptionAdapter(stt, cfg.Interpreter.Timeout),
		cfg.Interpreter.MaxLength,
	)

	var cache travel.RateCache
	if addr := cfg.Currency.Cache.RedisAddr; addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		defer rdb.Close()
		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			slog.Warn("redis rate cache unreachable, lookups will miss until it recovers", "addr", addr, "error", err)
		}
		pingCancel()
		cache = travel.NewRedisRateCache(rdb, cfg.Currency.Cache.TTL)
		slog.Info("using redis rate cache", "addr", addr, "ttl", cfg.Currency.Cache.TTL)
	}
	converter := travel.NewConverter(cfg.Currency.Endpoint, cfg.Currency.Timeout, cache)

	svc := assistant.NewService(pipeline, feed.New(), converter)

	// Initialize enabled transports.
	var transports []transport.Transport

	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Transports.GRPC.Port))
	}
	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP))
	}

	if len(transports) == 0 {
		slog.Error("no transports enabled, enable at least one in config")
		os.Exit(1)
	}

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort, svc.Ready)
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	// Start all transports.
	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, svc); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
			}
		}(t)
	}

	healthServer.SetStarted(true)
	slog.Info("globemate ready",
		"transports", len(transports),
		"model_loaded", svc.Ready(),
		"health_port", cfg.Server.HealthPort)

	// Block until shutdown signal.
	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")

	// Close all transports gracefully.
	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("globemate stopped")
}

func newGenerator(ctx context.Context, cfg config.InterpreterConfig) interpreter.Generator {
	var (
		gen interpreter.Generator
		err error
	)
	switch cfg.Generator {
	case "openai":
		var i *openaiinterp.Interpreter
		if i, err = openaiinterp.New(cfg.OpenAI, cfg.Timeout); err == nil {
			gen = i
		}
	case "gemini":
		var g *geminiinterp.Generator
		if g, err = geminiinterp.New(ctx, cfg.Gemini, cfg.Timeout); err == nil {
			gen = g
		}
	case "local":
		var i *localinterp.Interpreter
		if i, err = localinterp.New(cfg.Local, cfg.Timeout); err == nil {
			gen = i
		}
	default:
		slog.Warn("text generation disabled", "generator", cfg.Generator)
		return nil
	}
	if err != nil {
		slog.Error("AI model not loaded", "generator", cfg.Generator, "error", err)
		return nil
	}
	slog.Info("text generation backend ready", "generator", gen.Name())
	return gen
}

func newTranscriber(cfg config.InterpreterConfig) interpreter.Transcriber {
	var (
		stt interpreter.Transcriber
		err error
	)
	switch cfg.Transcriber {
	case "openai":
		var i *openaiinterp.Interpreter
		if i, err = openaiinterp.New(cfg.OpenAI, cfg.Timeout); err == nil {
			stt = i
		}
	case "local":
		var i *localinterp.Interpreter
		if i, err = localinterp.New(cfg.Local, cfg.Timeout); err == nil {
			stt = i
		}
	default:
		slog.Warn("speech recognition disabled", "transcriber", cfg.Transcriber)
		return nil
	}
	if err != nil {
		slog.Error("speech recognition not loaded", "transcriber", cfg.Transcriber, "error", err)
		return nil
	}
	slog.Info("speech recognition backend ready", "transcriber", stt.Name())
	return stt
}

func newTranslator(cfg config.TranslateConfig) translate.Translator {
	switch cfg.Backend {
	case "libre":
		slog.Info("using LibreTranslate", "endpoint", cfg.Libre.Endpoint)
		return libre.New(cfg.Libre.Endpoint, cfg.Libre.APIKey, cfg.Timeout)
	default:
		slog.Info("using Google web translation", "endpoint", cfg.Google.Endpoint)
		return google.New(cfg.Google.Endpoint, cfg.Timeout)
	}
}
