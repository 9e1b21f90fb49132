package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"coverletter-backend/internal/shared/telemetry"
)

const (
	defaultMaxUploadBytes = 10 << 20
	defaultPDFTimeout     = 60 * time.Second
	defaultLLMTimeout     = 120 * time.Second
	defaultLLMModel       = "gpt-4o-mini"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	LLMModel        string
	LLMTimeout      time.Duration
	TemplatesDir    string
	ChromePath      string
	PDFTimeout      time.Duration
	MaxUploadBytes  int64
}

// AIEnabled reports whether a completion-service credential is present.
func (c Config) AIEnabled() bool {
	return strings.TrimSpace(c.OpenAIAPIKey) != ""
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		OpenAIAPIKey:    strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
		LLMModel:        getEnv("LLM_MODEL", defaultLLMModel),
		LLMTimeout:      getSeconds("LLM_TIMEOUT_SECONDS", defaultLLMTimeout),
		TemplatesDir:    getEnv("TEMPLATES_DIR", ""),
		ChromePath:      getEnv("CHROME_PATH", ""),
		PDFTimeout:      getSeconds("PDF_TIMEOUT_SECONDS", defaultPDFTimeout),
		MaxUploadBytes:  getInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
	}

	if !cfg.AIEnabled() {
		telemetry.Warn("config.openai_key_missing", map[string]any{
			"message": "OPENAI_API_KEY environment variable not set. AI generation will not work.",
		})
	}
	return cfg
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return time.Duration(parsed) * time.Second
}

func getInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
