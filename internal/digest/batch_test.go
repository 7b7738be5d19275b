package digest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

func TestProcessBatchAllFail(t *testing.T) {
	s := newTestService(nil, fakePages{}, nil, nil)

	res := s.ProcessBatch(context.Background(), []string{"bad-url-1", "bad-url-2"}, engine.ModeNotebookSource)

	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 0, res.SuccessCount)
	assert.True(t, strings.HasPrefix(res.CombinedText,
		"# NotebookLM Source Collection\nGenerated at: 2024-05-03 12:00:00\n\n---\n\n"))

	first := strings.Index(res.CombinedText, "## [Error] bad-url-1\nFailed to process:")
	second := strings.Index(res.CombinedText, "## [Error] bad-url-2\nFailed to process:")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first, "blocks follow input order")
}

func TestProcessBatchMixed(t *testing.T) {
	pages := fakePages{
		"https://example.com/ok":    {Content: "body", SourceType: engine.SourceWeb},
		"https://example.com/empty": {Content: " "},
		"https://example.com/ok2":   {Content: "body2", SourceType: engine.SourceWeb},
	}
	sum := &fakeSummarizer{}
	s := newTestService(nil, pages, nil, sum)

	urls := []string{"https://example.com/ok", "https://example.com/empty", "https://example.com/ok2"}
	res := s.ProcessBatch(context.Background(), urls, engine.ModeReport)

	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 2, res.SuccessCount)

	body := strings.TrimPrefix(res.CombinedText, "# NotebookLM Source Collection\nGenerated at: 2024-05-03 12:00:00\n\n---\n\n")
	parts := strings.Split(body, "\n\n---\n\n")
	require.Len(t, parts, 3)
	assert.Equal(t, "summary of https://example.com/ok", parts[0])
	assert.Equal(t, "## [Error] https://example.com/empty\nTranscript not found or empty.", parts[1])
	assert.Equal(t, "summary of https://example.com/ok2", parts[2])

	require.Len(t, sum.reqs, 2)
	for _, req := range sum.reqs {
		assert.Equal(t, "fast-model", req.Model, "batch always uses the fast model")
		assert.Equal(t, engine.BatchFocusHint(engine.ModeReport), req.FocusHint)
		assert.Equal(t, engine.ModeReport, req.Mode)
	}
}

func TestProcessBatchSummarizerFailure(t *testing.T) {
	s := newTestService(nil, fakePages{"https://example.com/a": {Content: "x"}}, nil,
		&fakeSummarizer{err: errors.New("rate limited")})

	res := s.ProcessBatch(context.Background(), []string{"https://example.com/a"}, engine.ModeNotebookSource)
	assert.Equal(t, 0, res.SuccessCount)
	assert.Contains(t, res.CombinedText, "## [Error] https://example.com/a\nFailed to process: rate limited")
}

type panickyPages struct{}

func (panickyPages) ExtractWeb(context.Context, string) (engine.ContentItem, error) {
	panic("boom")
}

func TestProcessBatchRecoversPanics(t *testing.T) {
	s := NewService(testConfig(), &fakeVideo{}, panickyPages{}, &fakeFeeds{}, &fakeSummarizer{})

	res := s.ProcessBatch(context.Background(), []string{"https://example.com/a"}, engine.ModeNotebookSource)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 0, res.SuccessCount)
	assert.Contains(t, res.CombinedText, "## [Error] https://example.com/a\nFailed to process: boom")
}

func TestProcessBatchEmpty(t *testing.T) {
	s := newTestService(nil, fakePages{}, nil, nil)

	res := s.ProcessBatch(context.Background(), nil, engine.ModeNotebookSource)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, 0, res.SuccessCount)
	assert.True(t, strings.HasPrefix(res.CombinedText, "# NotebookLM Source Collection"))
}

type failingPages struct{ err error }

func (f failingPages) ExtractWeb(context.Context, string) (engine.ContentItem, error) {
	return engine.ContentItem{}, f.err
}

func TestProcessBatchUpstreamFailure(t *testing.T) {
	upstream := &engine.UpstreamFetchError{URL: "https://example.com/gone", StatusCode: 404}
	s := NewService(testConfig(), &fakeVideo{}, failingPages{err: upstream}, &fakeFeeds{}, &fakeSummarizer{})

	res := s.ProcessBatch(context.Background(), []string{"https://example.com/gone"}, engine.ModeNotebookSource)
	assert.Equal(t, 0, res.SuccessCount)
	assert.Contains(t, res.CombinedText, "## [Error] https://example.com/gone\nFailed to process: fetch https://example.com/gone: HTTP 404 Not Found")
}
