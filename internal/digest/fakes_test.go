package digest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anatolykoptev/go_distill/internal/engine"
	"github.com/anatolykoptev/go_distill/internal/engine/sources"
)

var errUnknownURL = errors.New("unknown url")

type fakeVideo struct {
	items     map[string]engine.ContentItem
	search    []engine.ListingItem
	searchErr error

	mu         sync.Mutex
	lastSearch sources.VideoSearch
}

func (f *fakeVideo) ExtractVideo(_ context.Context, rawURL string) (engine.ContentItem, error) {
	if it, ok := f.items[rawURL]; ok {
		return it, nil
	}
	return engine.ContentItem{}, &engine.ExtractionError{Reason: engine.ReasonInvalidReference}
}

func (f *fakeVideo) ListChannelVideos(_ context.Context, raw string, _ engine.SortBy) (string, []engine.ListingItem, error) {
	return raw, f.search, nil
}

func (f *fakeVideo) SearchVideos(_ context.Context, s sources.VideoSearch) ([]engine.ListingItem, error) {
	f.mu.Lock()
	f.lastSearch = s
	f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	out := make([]engine.ListingItem, len(f.search))
	copy(out, f.search)
	return out, nil
}

type fakePages map[string]engine.ContentItem

func (f fakePages) ExtractWeb(_ context.Context, rawURL string) (engine.ContentItem, error) {
	if it, ok := f[rawURL]; ok {
		return it, nil
	}
	return engine.ContentItem{}, errUnknownURL
}

type fakeFeeds struct {
	posts []engine.ListingItem

	mu       sync.Mutex
	lastTag  string
	tagCalls int
}

func (f *fakeFeeds) ListUserFeed(_ context.Context, identifier string) (string, []engine.ListingItem) {
	return identifier, f.posts
}

func (f *fakeFeeds) ListHashtagFeed(_ context.Context, query string) []engine.ListingItem {
	f.mu.Lock()
	f.lastTag = query
	f.tagCalls++
	f.mu.Unlock()
	out := make([]engine.ListingItem, len(f.posts))
	copy(out, f.posts)
	return out
}

// fakeSummarizer echoes its input and records every request.
type fakeSummarizer struct {
	err error

	mu   sync.Mutex
	reqs []engine.SummarizeRequest
}

func (f *fakeSummarizer) Summarize(_ context.Context, req engine.SummarizeRequest) (string, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return "summary of " + req.SourceURL, nil
}

var fixedNow = time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC)

func testConfig() engine.Config {
	return engine.Config{LLMModel: "fast-model", LLMProModel: "pro-model"}
}

func newTestService(video *fakeVideo, pages fakePages, feeds *fakeFeeds, sum *fakeSummarizer) *Service {
	if video == nil {
		video = &fakeVideo{}
	}
	if feeds == nil {
		feeds = &fakeFeeds{}
	}
	if sum == nil {
		sum = &fakeSummarizer{}
	}
	s := NewService(testConfig(), video, pages, feeds, sum)
	s.now = func() time.Time { return fixedNow }
	return s
}
