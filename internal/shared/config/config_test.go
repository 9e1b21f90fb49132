package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "OPENAI_API_KEY", "LLM_MODEL", "LLM_TIMEOUT_SECONDS", "PDF_TIMEOUT_SECONDS", "MAX_UPLOAD_BYTES", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected dev env, got %q", cfg.Env)
	}
	if cfg.LLMModel != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", cfg.LLMModel)
	}
	if cfg.PDFTimeout != 60*time.Second {
		t.Fatalf("unexpected pdf timeout: %s", cfg.PDFTimeout)
	}
	if cfg.LLMTimeout != 120*time.Second {
		t.Fatalf("unexpected llm timeout: %s", cfg.LLMTimeout)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("unexpected max upload: %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowOrigin)
	}
	if cfg.AIEnabled() {
		t.Fatalf("expected AI to be disabled without a key")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", ":9000")
	t.Setenv("ENV", "prod")
	t.Setenv("OPENAI_API_KEY", "  sk-test  ")
	t.Setenv("PDF_TIMEOUT_SECONDS", "15")
	t.Setenv("LLM_TIMEOUT_SECONDS", "30")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()
	if cfg.Port != ":9000" {
		t.Fatalf("unexpected port: %q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("unexpected env: %q", cfg.Env)
	}
	if cfg.OpenAIAPIKey != "sk-test" || !cfg.AIEnabled() {
		t.Fatalf("expected trimmed key and AI enabled, got %q", cfg.OpenAIAPIKey)
	}
	if cfg.PDFTimeout != 15*time.Second {
		t.Fatalf("unexpected pdf timeout: %s", cfg.PDFTimeout)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Fatalf("unexpected llm timeout: %s", cfg.LLMTimeout)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected default on invalid MAX_UPLOAD_BYTES, got %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSAllowOrigin) != 2 {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadEnvFilesKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("CL_TEST_FROM_FILE=file\nCL_TEST_EXISTING=file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("CL_TEST_EXISTING", "process")
	t.Cleanup(func() { _ = os.Unsetenv("CL_TEST_FROM_FILE") })

	loadEnvFiles(filepath.Join(dir, "missing.env"), path)

	if got := os.Getenv("CL_TEST_FROM_FILE"); got != "file" {
		t.Fatalf("expected value from file, got %q", got)
	}
	if got := os.Getenv("CL_TEST_EXISTING"); got != "process" {
		t.Fatalf("expected process value to win, got %q", got)
	}
}
