// Package digest composes the source extractors and the summarizer into the
// user-facing operations: extract, process, search and batch.
package digest

import (
	"context"
	"strings"
	"time"

	"github.com/anatolykoptev/go_distill/internal/engine"
	"github.com/anatolykoptev/go_distill/internal/engine/sources"
)

// VideoSource is the video platform extractor.
type VideoSource interface {
	ExtractVideo(ctx context.Context, rawURL string) (engine.ContentItem, error)
	ListChannelVideos(ctx context.Context, raw string, sortBy engine.SortBy) (string, []engine.ListingItem, error)
	SearchVideos(ctx context.Context, s sources.VideoSearch) ([]engine.ListingItem, error)
}

// PageSource extracts arbitrary web pages.
type PageSource interface {
	ExtractWeb(ctx context.Context, rawURL string) (engine.ContentItem, error)
}

// FeedSource lists note.com feeds.
type FeedSource interface {
	ListUserFeed(ctx context.Context, identifier string) (string, []engine.ListingItem)
	ListHashtagFeed(ctx context.Context, query string) []engine.ListingItem
}

// Service wires extractors to the summarizer.
type Service struct {
	cfg        engine.Config
	video      VideoSource
	pages      PageSource
	feeds      FeedSource
	summarizer engine.Summarizer
	now        func() time.Time
}

// NewService returns a Service over the given components.
func NewService(cfg engine.Config, video VideoSource, pages PageSource, feeds FeedSource, summarizer engine.Summarizer) *Service {
	return &Service{
		cfg:        cfg,
		video:      video,
		pages:      pages,
		feeds:      feeds,
		summarizer: summarizer,
		now:        time.Now,
	}
}

// Channel lists a channel's videos. It exists so callers need only the Service.
func (s *Service) Channel(ctx context.Context, raw string, sortBy engine.SortBy) (string, []engine.ListingItem, error) {
	return s.video.ListChannelVideos(ctx, raw, sortBy)
}

// NoteFeed lists a note.com creator's posts.
func (s *Service) NoteFeed(ctx context.Context, identifier string) (string, []engine.ListingItem) {
	return s.feeds.ListUserFeed(ctx, identifier)
}

// Extract routes rawURL to the video or page extractor by URL shape.
// note.com posts go through the page extractor and are tagged as note.
func (s *Service) Extract(ctx context.Context, rawURL string) (engine.ContentItem, error) {
	if engine.IsYouTubeURL(rawURL) {
		return s.video.ExtractVideo(ctx, rawURL)
	}
	item, err := s.pages.ExtractWeb(ctx, rawURL)
	if err != nil {
		return engine.ContentItem{}, err
	}
	if isNoteURL(rawURL) {
		item.SourceType = engine.SourceNote
	}
	return item, nil
}

func isNoteURL(raw string) bool {
	return strings.Contains(raw, "://note.com/") || strings.Contains(raw, "://www.note.com/")
}
