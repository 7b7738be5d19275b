package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

const (
	batchHeader    = "# NotebookLM Source Collection\nGenerated at: %s\n\n---\n\n"
	batchSeparator = "\n\n---\n\n"
	errorPrefix    = "## [Error]"
)

// ProcessBatch summarizes every URL concurrently with the fast model.
// Failures become inline error blocks; output order follows input order.
func (s *Service) ProcessBatch(ctx context.Context, urls []string, mode engine.OutputMode) engine.BatchResult {
	results := make([]string, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			results[i] = s.batchItem(ctx, u, mode)
		}(i, u)
	}
	wg.Wait()

	success := 0
	for _, r := range results {
		if !strings.HasPrefix(r, errorPrefix) {
			success++
		}
	}

	header := fmt.Sprintf(batchHeader, s.now().Format("2006-01-02 15:04:05"))
	return engine.BatchResult{
		CombinedText: header + strings.Join(results, batchSeparator),
		Count:        len(urls),
		SuccessCount: success,
	}
}

// batchItem never panics across the goroutine boundary: every failure is
// rendered as an error block.
func (s *Service) batchItem(ctx context.Context, rawURL string, mode engine.OutputMode) (out string) {
	engine.IncrBatchItem()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("batch: item panicked", slog.String("url", rawURL), slog.Any("panic", r))
			out = errorBlock(rawURL, fmt.Sprintf("Failed to process: %v", r))
		}
		if strings.HasPrefix(out, errorPrefix) {
			engine.IncrBatchError()
		}
	}()

	item, err := s.Extract(ctx, rawURL)
	if err != nil {
		slog.Warn("batch: extraction failed",
			slog.String("url", rawURL),
			slog.Bool("upstream", engine.IsUpstream(err)),
			slog.Any("error", err))
		return errorBlock(rawURL, "Failed to process: "+err.Error())
	}
	if strings.TrimSpace(item.Content) == "" {
		return errorBlock(rawURL, "Transcript not found or empty.")
	}

	summary, err := s.summarizer.Summarize(ctx, engine.SummarizeRequest{
		Text:       item.Content,
		SourceType: item.SourceType,
		FocusHint:  engine.BatchFocusHint(mode),
		Model:      s.cfg.LLMModel,
		SourceURL:  rawURL,
		Mode:       mode,
	})
	if err != nil {
		slog.Warn("batch: summarize failed",
			slog.String("url", rawURL),
			slog.Bool("upstream", engine.IsUpstream(err)),
			slog.Any("error", err))
		return errorBlock(rawURL, "Failed to process: "+err.Error())
	}
	return summary
}

func errorBlock(rawURL, msg string) string {
	return errorPrefix + " " + rawURL + "\n" + msg
}
