package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"coverletter-backend/internal/coverletter"
	"coverletter-backend/internal/extract"
	"coverletter-backend/internal/llm"
	openai "coverletter-backend/internal/llm/openai"
	"coverletter-backend/internal/pdfgen"
	"coverletter-backend/internal/services/health"
	"coverletter-backend/internal/shared/config"
	"coverletter-backend/internal/shared/server"
	"coverletter-backend/internal/shared/telemetry"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	Extractor          extract.Extractor
	Completer          llm.Completer
	PDF                pdfgen.Generator
	Renderer           *coverletter.Renderer
	CoverLetterService *coverletter.Service
	CoverLetterHandler *coverletter.Handler
	Health             *health.Service
}

// Deps overrides the external collaborators. Nil fields get the
// production implementation.
type Deps struct {
	Extractor extract.Extractor
	Completer llm.Completer
	PDF       pdfgen.Generator
}

// Build prepares the production dependencies and router.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(cfg, Deps{})
}

// BuildWith prepares dependencies, substituting any provided in deps.
func BuildWith(cfg config.Config, deps Deps) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	renderer, err := buildRenderer(cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Extractor: deps.Extractor,
		Completer: deps.Completer,
		PDF:       deps.PDF,
		Renderer:  renderer,
		Health:    health.NewService(cfg.AIEnabled()),
	}
	if app.Extractor == nil {
		app.Extractor = extract.PDFExtractor{}
	}
	if app.Completer == nil {
		app.Completer = openai.NewClient(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.LLMModel,
			Timeout: cfg.LLMTimeout,
		})
	}
	if app.PDF == nil {
		app.PDF = pdfgen.NewChromeRenderer(cfg.ChromePath, cfg.PDFTimeout)
	}

	app.CoverLetterService = &coverletter.Service{
		Resolver: &coverletter.Resolver{Extractor: app.Extractor, Completer: app.Completer},
		Renderer: app.Renderer,
		PDF:      app.PDF,
	}
	app.CoverLetterHandler = coverletter.NewHandler(app.CoverLetterService, cfg.MaxUploadBytes)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		CoverLetterHandler: app.CoverLetterHandler,
		Health:             app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":        cfg.Env,
		"ai_enabled": cfg.AIEnabled(),
		"templates":  templateSource(cfg.TemplatesDir),
	})
	return app, nil
}

func buildRenderer(dir string) (*coverletter.Renderer, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return coverletter.DefaultRenderer(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("templates dir %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("templates dir %q is not a directory", dir)
	}
	return coverletter.NewRenderer(os.DirFS(dir), coverletter.DefaultTemplate), nil
}

func templateSource(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return "embedded"
	}
	return dir
}
