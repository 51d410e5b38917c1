package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	PDFEngineNative  = "native"
	PDFEngineDocconv = "docconv"
)

type Config struct {
	Port            string
	SuggestProvider string
	AIAPIKey        string
	GenModel        string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	PDFEngine       string
	OCRLanguage     string
	MaxUploadBytes  int64
	MaxSuggestChars int
	AllowedOrigins  []string
	RequestTimeout  time.Duration
	LogLevel        slog.Level
}

// LoadConfig loads the environment variables (and a .env file, if present) and returns config
func LoadConfig() *Config {

	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "5000"),
		SuggestProvider: strings.ToLower(getEnv("SUGGEST_PROVIDER", ProviderGemini)),
		AIAPIKey:        getEnv("GEMINI_API_KEY", ""),
		GenModel:        getEnv("GEN_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		PDFEngine:       strings.ToLower(getEnv("PDF_ENGINE", PDFEngineNative)),
		OCRLanguage:     getEnv("OCR_LANGUAGE", "eng"),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", 32<<20)),
		MaxSuggestChars: getEnvInt("MAX_SUGGEST_CHARS", 30000),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		RequestTimeout:  time.Duration(getEnvInt("REQUEST_TIMEOUT", 120)) * time.Second,
		LogLevel:        getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.SuggestProvider {
	case ProviderGemini:
		if c.AIAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY not set"))
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("SUGGEST_PROVIDER %q must be %q or %q", c.SuggestProvider, ProviderGemini, ProviderOpenAI))
	}

	if c.PDFEngine != PDFEngineNative && c.PDFEngine != PDFEngineDocconv {
		errs = append(errs, fmt.Errorf("PDF_ENGINE %q must be %q or %q", c.PDFEngine, PDFEngineNative, PDFEngineDocconv))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("env value is not an int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func getEnvList(key string, def []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getEnvLevel(key string, def slog.Level) slog.Level {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("env value is not a log level, using default", "key", key, "value", v, "default", def.String())
		return def
	}
	return lvl
}
