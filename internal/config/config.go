// Package config handles loading and validating the globemate configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the globemate daemon.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Transports  TransportsConfig  `mapstructure:"transports"`
	Interpreter InterpreterConfig `mapstructure:"interpreter"`
	Translate   TranslateConfig   `mapstructure:"translate"`
	Currency    CurrencyConfig    `mapstructure:"currency"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds the ops server (health + metrics) settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	GRPC GRPCConfig `mapstructure:"grpc"`
	HTTP HTTPConfig `mapstructure:"http"`
}

// GRPCConfig configures the gRPC transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HTTPConfig configures the HTTP API transport.
type HTTPConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RateLimit      float64  `mapstructure:"rate_limit"` // requests per second, 0 disables
	RateBurst      int      `mapstructure:"rate_burst"`
}

// InterpreterConfig selects and configures the generation and speech backends.
type InterpreterConfig struct {
	Generator   string        `mapstructure:"generator"`   // "openai", "gemini", "local" or "none"
	Transcriber string        `mapstructure:"transcriber"` // "openai", "local" or "none"
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxLength   int           `mapstructure:"max_length"`
	OpenAI      OpenAIConfig  `mapstructure:"openai"`
	Gemini      GeminiConfig  `mapstructure:"gemini"`
	Local       LocalConfig   `mapstructure:"local"`
}

// OpenAIConfig holds OpenAI (or OpenAI-compatible) API settings.
type OpenAIConfig struct {
	APIKey             string `mapstructure:"api_key"`
	BaseURL            string `mapstructure:"base_url"`
	TranscriptionModel string `mapstructure:"transcription_model"`
	CompletionModel    string `mapstructure:"completion_model"`
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// LocalConfig holds self-hosted model settings.
type LocalConfig struct {
	WhisperEndpoint string `mapstructure:"whisper_endpoint"`
	WhisperType     string `mapstructure:"whisper_type"` // "openai" (default) or "asr" (ahmetoner/whisper-asr-webservice)
	LLMEndpoint     string `mapstructure:"llm_endpoint"`
	LLMModel        string `mapstructure:"llm_model"` // Ollama model name (e.g., "llama3.2:1b")
	Language        string `mapstructure:"language"`  // ISO-639-1 hint for transcription
}

// TranslateConfig selects and configures the translation backend.
type TranslateConfig struct {
	Backend string        `mapstructure:"backend"` // "google" or "libre"
	Timeout time.Duration `mapstructure:"timeout"`
	Google  GoogleConfig  `mapstructure:"google"`
	Libre   LibreConfig   `mapstructure:"libre"`
}

// GoogleConfig configures the keyless Google web translation endpoint.
type GoogleConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

// LibreConfig configures a LibreTranslate server.
type LibreConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
}

// CurrencyConfig configures the exchange-rate lookup.
type CurrencyConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Cache    CacheConfig   `mapstructure:"cache"`
}

// CacheConfig configures the optional Redis rate cache.
type CacheConfig struct {
	RedisAddr string        `mapstructure:"redis_addr"` // empty disables caching
	TTL       time.Duration `mapstructure:"ttl"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./globemate.yaml, ./configs/globemate.yaml, /etc/globemate/globemate.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.grpc.enabled", true)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 8080)
	v.SetDefault("transports.http.allowed_origins", []string{"*"})
	v.SetDefault("transports.http.rate_limit", 20)
	v.SetDefault("transports.http.rate_burst", 40)
	v.SetDefault("interpreter.generator", "openai")
	v.SetDefault("interpreter.transcriber", "openai")
	v.SetDefault("interpreter.timeout", 30*time.Second)
	v.SetDefault("interpreter.max_length", 80)
	v.SetDefault("interpreter.openai.api_key", "${OPENAI_API_KEY}")
	v.SetDefault("interpreter.openai.transcription_model", "whisper-1")
	v.SetDefault("interpreter.openai.completion_model", "gpt-4o-mini")
	v.SetDefault("interpreter.gemini.api_key", "${GEMINI_API_KEY}")
	v.SetDefault("interpreter.gemini.model", "gemini-2.0-flash")
	v.SetDefault("interpreter.local.whisper_endpoint", "http://localhost:8000/v1/audio/transcriptions")
	v.SetDefault("interpreter.local.whisper_type", "openai")
	v.SetDefault("interpreter.local.llm_endpoint", "http://localhost:11434/api/generate")
	v.SetDefault("interpreter.local.llm_model", "llama3")
	v.SetDefault("interpreter.local.language", "en")
	v.SetDefault("translate.backend", "google")
	v.SetDefault("translate.timeout", 10*time.Second)
	v.SetDefault("translate.google.endpoint", "https://translate.googleapis.com/translate_a/single")
	v.SetDefault("translate.libre.endpoint", "http://localhost:5000/translate")
	v.SetDefault("currency.endpoint", "https://open.er-api.com/v6/latest")
	v.SetDefault("currency.timeout", 10*time.Second)
	v.SetDefault("currency.cache.redis_addr", "")
	v.SetDefault("currency.cache.ttl", time.Hour)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("globemate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/globemate")
	}

	// Environment variables: GLOBEMATE_SERVER_HEALTH_PORT, GLOBEMATE_INTERPRETER_GENERATOR, etc.
	v.SetEnvPrefix("GLOBEMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional; env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${OPENAI_API_KEY}")
	cfg.Interpreter.OpenAI.APIKey = resolveEnvRef(cfg.Interpreter.OpenAI.APIKey)
	cfg.Interpreter.Gemini.APIKey = resolveEnvRef(cfg.Interpreter.Gemini.APIKey)
	cfg.Translate.Libre.APIKey = resolveEnvRef(cfg.Translate.Libre.APIKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks backend selections and limits.
func (c *Config) Validate() error {
	switch c.Interpreter.Generator {
	case "openai", "gemini", "local", "none":
	default:
		return fmt.Errorf("unknown generator backend %q", c.Interpreter.Generator)
	}
	switch c.Interpreter.Transcriber {
	case "openai", "local", "none":
	default:
		return fmt.Errorf("unknown transcriber backend %q", c.Interpreter.Transcriber)
	}
	switch c.Translate.Backend {
	case "google", "libre":
	default:
		return fmt.Errorf("unknown translate backend %q", c.Translate.Backend)
	}
	if c.Interpreter.MaxLength <= 0 {
		return fmt.Errorf("interpreter.max_length must be positive, got %d", c.Interpreter.MaxLength)
	}
	return nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
// An unset variable resolves to the empty string so that a missing secret
// reads as "not configured".
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		return os.Getenv(val[2 : len(val)-1])
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
