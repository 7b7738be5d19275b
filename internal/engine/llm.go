package engine

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// SummarizeRequest is everything the summarizer needs for one item.
type SummarizeRequest struct {
	Text       string
	SourceType SourceType
	FocusHint  string // optional
	Model      string // optional; "" selects the configured default
	SourceURL  string // optional
	Mode       OutputMode
}

// Summarizer turns extracted text into the requested output format.
// Provider errors are returned verbatim.
type Summarizer interface {
	Summarize(ctx context.Context, req SummarizeRequest) (string, error)
}

type completeFunc func(ctx context.Context, system, prompt string) (string, error)

// LLMSummarizer implements Summarizer over an OpenAI-compatible endpoint.
type LLMSummarizer struct {
	cfg       Config
	completer func(model string) completeFunc
}

// NewLLMSummarizer builds a summarizer from cfg. A missing API key is
// reported per call as ErrConfig, not at construction.
func NewLLMSummarizer(cfg Config) *LLMSummarizer {
	httpClient := &http.Client{Timeout: 120 * time.Second}
	return &LLMSummarizer{
		cfg: cfg,
		completer: func(model string) completeFunc {
			client := llm.NewClient(cfg.LLMAPIBase, cfg.LLMAPIKey, model,
				llm.WithFallbackKeys(cfg.LLMAPIKeys),
				llm.WithMaxTokens(cfg.LLMMaxTokens),
				llm.WithTemperature(cfg.LLMTemperature),
				llm.WithHTTPClient(httpClient),
			)
			return func(ctx context.Context, system, prompt string) (string, error) {
				return client.Complete(ctx, system, prompt)
			}
		},
	}
}

// Summarize builds the mode-specific prompt and calls the model.
func (s *LLMSummarizer) Summarize(ctx context.Context, req SummarizeRequest) (string, error) {
	if s.cfg.LLMAPIKey == "" {
		return "", fmt.Errorf("%w: LLM_API_KEY is not configured", ErrConfig)
	}
	if strings.TrimSpace(req.Text) == "" {
		return "", ErrNoContent
	}

	model := req.Model
	if model == "" {
		model = s.cfg.LLMModel
	}

	metrics.LLMCalls.Add(1)
	out, err := s.completer(model)(ctx, systemPrompt, BuildPrompt(req, s.cfg.MaxContentChars))
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	return stripFences(out), nil
}

// stripFences removes a wrapping markdown code fence from LLM output.
// Mermaid blocks inside the body are left alone.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```markdown") || strings.HasPrefix(s, "```md\n") {
		s = s[strings.Index(s, "\n")+1:]
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
