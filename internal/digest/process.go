package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

// ProcessRequest asks for one URL to be extracted and summarized.
type ProcessRequest struct {
	URL       string
	FocusHint string
	Model     string
	Mode      engine.OutputMode
}

// ProcessResult is the summarized item.
type ProcessResult struct {
	Content           string            `json:"content"`
	Title             string            `json:"title"`
	Thumbnail         string            `json:"thumbnail"`
	SourceType        engine.SourceType `json:"source_type"`
	IsFallbackContent bool              `json:"is_fallback_content"`
}

const emptyContentHint = "If it is YouTube, try checking if the video exists and is public."

// Process extracts req.URL and summarizes it in req.Mode.
func (s *Service) Process(ctx context.Context, req ProcessRequest) (ProcessResult, error) {
	item, err := s.Extract(ctx, req.URL)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("extract %s: %w", req.URL, err)
	}
	if strings.TrimSpace(item.Content) == "" {
		return ProcessResult{}, fmt.Errorf("%w: content is empty. %s", engine.ErrNoContent, emptyContentHint)
	}

	slog.Info("process: summarizing",
		slog.String("url", req.URL),
		slog.String("mode", string(req.Mode)),
		slog.Bool("fallback", item.IsFallbackContent))

	var out string
	err = engine.TrackOperation(ctx, "summarize", func(ctx context.Context) error {
		var serr error
		out, serr = s.summarizer.Summarize(ctx, engine.SummarizeRequest{
			Text:       item.Content,
			SourceType: item.SourceType,
			FocusHint:  req.FocusHint,
			Model:      s.model(req.Model),
			SourceURL:  req.URL,
			Mode:       req.Mode,
		})
		return serr
	})
	if err != nil {
		return ProcessResult{}, fmt.Errorf("summarize: %w", err)
	}
	return ProcessResult{
		Content:           out,
		Title:             item.Title,
		Thumbnail:         item.Thumbnail,
		SourceType:        item.SourceType,
		IsFallbackContent: item.IsFallbackContent,
	}, nil
}

// model maps a requested model onto a configured one. "pro" or the pro
// model name selects the pro model; anything else selects the default.
func (s *Service) model(requested string) string {
	requested = strings.TrimSpace(requested)
	if s.cfg.LLMProModel != "" && (requested == "pro" || requested == s.cfg.LLMProModel) {
		return s.cfg.LLMProModel
	}
	return s.cfg.LLMModel
}
