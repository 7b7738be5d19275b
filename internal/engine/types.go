package engine

import (
	"strings"
	"time"
)

// SourceType identifies where a piece of content came from.
type SourceType string

const (
	SourceYouTube SourceType = "youtube"
	SourceWeb     SourceType = "web"
	SourceNote    SourceType = "note"
)

// ContentItem is the normalized result of extracting one piece of content.
type ContentItem struct {
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	Thumbnail         string     `json:"thumbnail"`
	SourceType        SourceType `json:"source_type"`
	IsFallbackContent bool       `json:"is_fallback_content"`
}

// ListingItem references content discoverable via a channel, search or feed.
// ID is unique only within one source; mixed listings carry SourceTag.
type ListingItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Thumbnail   string     `json:"thumbnail"`
	PublishedAt string     `json:"published_at"`
	URL         string     `json:"url"`
	SourceTag   SourceType `json:"source,omitempty"`
}

// PublishedTime parses PublishedAt; unparseable values sort as the zero time.
func (l ListingItem) PublishedTime() time.Time {
	return ParseTimestamp(l.PublishedAt)
}

// IdentityKind selects which Data API parameter resolves a channel.
type IdentityKind string

const (
	IdentityHandle IdentityKind = "handle"
	IdentityID     IdentityKind = "id"
)

// ChannelIdentity is the resolved form of a user-supplied channel reference.
type ChannelIdentity struct {
	Kind  IdentityKind `json:"kind"`
	Value string       `json:"value"`
}

// BatchResult aggregates a batch run. Failed items stay inline as error blocks.
type BatchResult struct {
	CombinedText string `json:"result"`
	Count        int    `json:"count"`
	SuccessCount int    `json:"success_count"`
}

// OutputMode selects the summarizer's output format.
type OutputMode string

const (
	ModeReport         OutputMode = "report"
	ModeArticle        OutputMode = "article"
	ModeNotebookSource OutputMode = "notebook-source"
)

// ParseOutputMode maps free-form input to an OutputMode; unknown values yield def.
func ParseOutputMode(s string, def OutputMode) OutputMode {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeReport:
		return ModeReport
	case ModeArticle:
		return ModeArticle
	case ModeNotebookSource, "notebook", "source":
		return ModeNotebookSource
	}
	return def
}

// SortBy orders channel listings.
type SortBy string

const (
	SortDate       SortBy = "date"
	SortPopularity SortBy = "popularity"
)

// ParseSortBy accepts "popularity" and the Data API spelling "viewCount".
func ParseSortBy(s string) SortBy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "popularity", "viewcount", "popular", "views":
		return SortPopularity
	}
	return SortDate
}

// TimeWindow bounds search results by publish time.
type TimeWindow string

const (
	Window24h TimeWindow = "24h"
	Window7d  TimeWindow = "7d"
)

// ParseTimeWindow defaults to 24h for anything other than 7d.
func ParseTimeWindow(s string) TimeWindow {
	if strings.EqualFold(strings.TrimSpace(s), string(Window7d)) {
		return Window7d
	}
	return Window24h
}

// Since returns the lower publish bound relative to now.
func (w TimeWindow) Since(now time.Time) time.Time {
	if w == Window7d {
		return now.AddDate(0, 0, -7)
	}
	return now.Add(-24 * time.Hour)
}

// SearchSource selects which upstreams a search queries.
type SearchSource string

const (
	SearchYouTube SearchSource = "youtube"
	SearchNote    SearchSource = "note"
	SearchMixed   SearchSource = "mixed"
)

// ParseSearchSource defaults to youtube.
func ParseSearchSource(s string) SearchSource {
	switch SearchSource(strings.ToLower(strings.TrimSpace(s))) {
	case SearchNote:
		return SearchNote
	case SearchMixed, "all":
		return SearchMixed
	}
	return SearchYouTube
}

// IncludesYouTube reports whether the youtube branch runs.
func (s SearchSource) IncludesYouTube() bool { return s != SearchNote }

// IncludesNote reports whether the note branch runs.
func (s SearchSource) IncludesNote() bool { return s == SearchNote || s == SearchMixed }
