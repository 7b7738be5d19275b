package digest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/anatolykoptev/go_distill/internal/engine"
	"github.com/anatolykoptev/go_distill/internal/engine/sources"
)

const (
	defaultQuery      = "AI副業"
	defaultMaxResults = 10
)

// SearchRequest describes one trend search.
type SearchRequest struct {
	Query      string
	TimeWindow engine.TimeWindow
	IsGlobal   bool
	Source     engine.SearchSource
	MaxResults int
}

// SearchResult is the merged, truncated listing.
type SearchResult struct {
	Query  string               `json:"query"`
	Videos []engine.ListingItem `json:"videos"`
	Count  int                  `json:"count"`
}

// Search queries the selected sources. In mixed mode both run concurrently
// and the merged list is ordered newest first. Every item carries a source tag.
func (s *Service) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		query = defaultQuery
	}
	limit := req.MaxResults
	if limit <= 0 {
		limit = defaultMaxResults
	}
	window := req.TimeWindow
	if window == "" {
		window = engine.Window24h
	}
	source := req.Source
	if source == "" {
		source = engine.SearchYouTube
	}

	var videos, posts []engine.ListingItem
	g, gctx := errgroup.WithContext(ctx)
	if source.IncludesYouTube() {
		g.Go(func() error {
			items, err := s.video.SearchVideos(gctx, sources.VideoSearch{
				Query:          query,
				PublishedAfter: window.Since(s.now()),
				MaxResults:     limit,
				IsGlobal:       req.IsGlobal,
			})
			if err != nil {
				return err
			}
			videos = tag(items, engine.SourceYouTube)
			return nil
		})
	}
	if source.IncludesNote() {
		g.Go(func() error {
			posts = tag(s.feeds.ListHashtagFeed(gctx, query), engine.SourceNote)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SearchResult{}, fmt.Errorf("search %q: %w", query, err)
	}

	merged := make([]engine.ListingItem, 0, len(videos)+len(posts))
	merged = append(merged, videos...)
	merged = append(merged, posts...)
	if source == engine.SearchMixed {
		sortNewestFirst(merged)
	}
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return SearchResult{Query: query, Videos: merged, Count: len(merged)}, nil
}

func tag(items []engine.ListingItem, src engine.SourceType) []engine.ListingItem {
	for i := range items {
		items[i].SourceTag = src
	}
	return items
}

// sortNewestFirst orders by publish time descending. Unparseable times sort last.
func sortNewestFirst(items []engine.ListingItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedTime().After(items[j].PublishedTime())
	})
}
