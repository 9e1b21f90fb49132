package llm

import (
	"context"
	"errors"
)

// Completer produces cover letter body text from resume and job description.
type Completer interface {
	CoverLetter(ctx context.Context, resumeText, jobDescription string) (string, error)
}

var (
	// ErrUnavailable indicates the completion service has no credential configured.
	ErrUnavailable = errors.New("completion service not configured")

	// ErrService indicates the remote completion call failed.
	ErrService = errors.New("completion service error")
)

// Sampling parameters for cover letter completions.
const (
	DefaultModel = "gpt-4o-mini"
	MaxTokens    = 700
	Temperature  = float32(0.7)
)
