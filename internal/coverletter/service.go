package coverletter

import (
	"context"
	"time"

	"coverletter-backend/internal/pdfgen"
	"coverletter-backend/internal/shared/metrics"
	"coverletter-backend/internal/shared/telemetry"
)

// Service runs the cover letter pipeline: resolve body, split paragraphs,
// render markup, print PDF.
type Service struct {
	Resolver *Resolver
	Renderer *Renderer
	PDF      pdfgen.Generator
	Now      func() time.Time
}

// Generate returns the PDF bytes for sub.
func (s *Service) Generate(ctx context.Context, sub Submission) ([]byte, error) {
	start := time.Now()
	metrics.IncGenerationStarted()

	out, stage, err := s.generate(ctx, sub)
	metrics.ObserveGenerationDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncGenerationFailed(stage)
		fields := map[string]any{
			"stage": stage,
			"error": err.Error(),
		}
		if sub.Content != nil {
			fields["content_mode"] = string(sub.Content.Mode())
		}
		telemetry.Error("coverletter.generate_failed", fields)
		return nil, err
	}
	metrics.IncGenerationCompleted()
	return out, nil
}

func (s *Service) generate(ctx context.Context, sub Submission) ([]byte, string, error) {
	if err := sub.Validate(); err != nil {
		return nil, "validate", err
	}

	body, err := s.Resolver.Resolve(ctx, sub.Content)
	if err != nil {
		return nil, "resolve", err
	}

	paragraphs := SplitParagraphs(body)
	rc := NewRenderContext(sub.Applicant, paragraphs, s.now())

	html, err := s.Renderer.Render(rc)
	if err != nil {
		return nil, "render", err
	}

	out, err := s.PDF.Generate(ctx, html)
	if err != nil {
		return nil, "pdf", err
	}
	return out, "", nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
