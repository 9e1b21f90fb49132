package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"coverletter-backend/internal/llm"
	"coverletter-backend/internal/shared/metrics"
	"coverletter-backend/internal/shared/telemetry"
)

const defaultTimeout = 120 * time.Second

// Config holds the settings injected into the client at construction.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client implements llm.Completer using OpenAI Chat Completions.
type Client struct {
	api   *goopenai.Client
	model string
}

// NewClient constructs a client. An empty API key yields a client whose
// calls fail with llm.ErrUnavailable without touching the network.
func NewClient(cfg Config) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = llm.DefaultModel
	}
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return &Client{model: model}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	apiCfg := goopenai.DefaultConfig(key)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		apiCfg.BaseURL = strings.TrimRight(base, "/")
	}
	apiCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		api:   goopenai.NewClientWithConfig(apiCfg),
		model: model,
	}
}

// Configured reports whether a credential was supplied.
func (c *Client) Configured() bool {
	return c != nil && c.api != nil
}

// CoverLetter sends a single chat completion request and returns the trimmed
// content of the first choice.
func (c *Client) CoverLetter(ctx context.Context, resumeText, jobDescription string) (string, error) {
	if !c.Configured() {
		return "", llm.ErrUnavailable
	}

	messages := llm.BuildCoverLetterMessages(resumeText, jobDescription)
	reqMessages := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, goopenai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	metrics.IncCompletionCalls()
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    reqMessages,
		MaxTokens:   llm.MaxTokens,
		Temperature: llm.Temperature,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("%w: openai request timeout: %v", llm.ErrService, err)
		}
		return "", fmt.Errorf("%w: %v", llm.ErrService, err)
	}
	logUsage(c.model, resp.Usage)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai response missing choices", llm.ErrService)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func logUsage(model string, usage goopenai.Usage) {
	telemetry.Info("llm.response", map[string]any{
		"model":             model,
		"prompt_tokens":     usage.PromptTokens,
		"completion_tokens": usage.CompletionTokens,
		"total_tokens":      usage.TotalTokens,
	})
}

var _ llm.Completer = (*Client)(nil)
