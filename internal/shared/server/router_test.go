package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coverletter-backend/internal/coverletter"
	"coverletter-backend/internal/shared/config"
)

type stubPDF struct{}

func (stubPDF) Generate(ctx context.Context, html string) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func testRouter(cfg config.Config) http.Handler {
	svc := &coverletter.Service{
		Resolver: &coverletter.Resolver{},
		Renderer: coverletter.DefaultRenderer(),
		PDF:      stubPDF{},
	}
	return NewRouter(RouterDeps{
		Config:             cfg,
		CoverLetterHandler: coverletter.NewHandler(svc, 0),
	})
}

func TestHealthReportsAIEnabled(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"sk-test", true},
	}
	for _, tc := range cases {
		r := testRouter(config.Config{OpenAIAPIKey: tc.key})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var body map[string]bool
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !body["ok"] || body["ai_enabled"] != tc.want {
			t.Fatalf("unexpected health body %v for key %q", body, tc.key)
		}
	}
}

func TestGenerateMountedOnBothPaths(t *testing.T) {
	r := testRouter(config.Config{})
	for _, path := range []string{"/generate", "/api/v1/generate"} {
		form := "name=Jane&email=j%40x.io&phone=1&employer=Acme&job_title=Dev&use_ai=false&custom_content=Hello"
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", path, rec.Code, rec.Body.String())
		}
		if rec.Header().Get("X-Request-Id") == "" {
			t.Fatalf("%s: expected request id header", path)
		}
	}
}

func TestDiagnosticAndMetricsRoutes(t *testing.T) {
	r := testRouter(config.Config{})
	for _, path := range []string{"/test-pdf", "/download-test-pdf", "/metrics"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9090": ":9090", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
