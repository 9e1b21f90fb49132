package coverletter

import (
	"context"
	"fmt"
	"strings"

	"coverletter-backend/internal/extract"
	"coverletter-backend/internal/llm"
	"coverletter-backend/internal/shared/telemetry"
	"coverletter-backend/internal/shared/util"
)

// Resolver turns a Content variant into the letter body.
type Resolver struct {
	Extractor extract.Extractor
	Completer llm.Completer
}

// Resolve validates the mode-specific fields and produces the body text.
// Validation runs before any extractor or completion call.
func (r *Resolver) Resolve(ctx context.Context, content Content) (string, error) {
	switch c := content.(type) {
	case AIContent:
		return r.resolveAI(ctx, c)
	case ManualContent:
		return resolveManual(c)
	default:
		return "", fmt.Errorf("unsupported content source %T", content)
	}
}

func (r *Resolver) resolveAI(ctx context.Context, c AIContent) (string, error) {
	if c.Resume == nil {
		return "", invalid("resume", "Resume PDF is required when using AI generation.")
	}
	if strings.TrimSpace(c.JobDescription) == "" {
		return "", invalid("job_description", "Job description is required when using AI generation.")
	}

	telemetry.Info("coverletter.resume_received", map[string]any{
		"file_name":   c.Resume.FileName,
		"bytes":       len(c.Resume.Data),
		"fingerprint": util.Fingerprint(c.Resume.Data),
	})

	resumeText, err := r.Extractor.ExtractText(ctx, c.Resume.Data)
	if err != nil {
		return "", err
	}
	return r.Completer.CoverLetter(ctx, resumeText, c.JobDescription)
}

func resolveManual(c ManualContent) (string, error) {
	if strings.TrimSpace(c.Body) == "" {
		return "", invalid("custom_content", "Custom cover letter content is required when AI is disabled.")
	}
	return c.Body, nil
}
