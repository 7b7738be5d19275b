package sources

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

const (
	channelListSize     = 10
	popularCandidateMax = 50
)

// IsShortForm reports whether an ISO-8601 duration has neither an hour nor a
// minute component. Empty durations count as short form. A one-minute video
// ("PT1M") is kept as long form.
func IsShortForm(duration string) bool {
	return !strings.Contains(duration, "H") && !strings.Contains(duration, "M")
}

// ListChannelVideos returns the channel display name and up to ten videos,
// newest first for SortDate or most viewed long-form first for SortPopularity.
func (y *YouTube) ListChannelVideos(ctx context.Context, raw string, sortBy engine.SortBy) (string, []engine.ListingItem, error) {
	api, err := y.dataAPI()
	if err != nil {
		return "", nil, err
	}
	engine.IncrChannelListing()

	ident := engine.ResolveChannel(raw)
	ch, err := api.Channel(ctx, ident)
	if err != nil {
		if isNotFound(err) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("fetch channel info: %w", err)
	}
	if ch.UploadsPlaylistID == "" {
		return "", nil, fmt.Errorf("channel %q has no uploads playlist: %w", ident.Value, engine.ErrNotFound)
	}
	name := ch.Title
	if name == "" {
		name = raw
	}

	if sortBy == engine.SortPopularity {
		videos, err := y.popularVideos(ctx, api, ch.ID)
		return name, videos, err
	}

	videos, err := api.PlaylistItems(ctx, ch.UploadsPlaylistID, channelListSize)
	if err != nil {
		return "", nil, fmt.Errorf("fetch uploads: %w", err)
	}
	return name, videos, nil
}

// popularVideos ranks by view count and drops short-form videos. When the
// duration lookup fails the unfiltered ranking is returned.
func (y *YouTube) popularVideos(ctx context.Context, api DataAPI, channelID string) ([]engine.ListingItem, error) {
	cands, err := api.Search(ctx, SearchParams{
		ChannelID:  channelID,
		Order:      "viewCount",
		MaxResults: popularCandidateMax,
	})
	if err != nil {
		return nil, fmt.Errorf("search channel videos: %w", err)
	}
	if len(cands) == 0 {
		return []engine.ListingItem{}, nil
	}

	ids := make([]string, len(cands))
	for i, c := range cands {
		ids[i] = c.Item.ID
	}
	durations, err := api.VideoDurations(ctx, ids)
	if err != nil {
		slog.Warn("youtube: duration lookup failed, skipping short-form filter",
			slog.String("channel", channelID), slog.Any("error", err))
		return firstItems(cands, channelListSize), nil
	}

	long := make([]engine.SearchCandidate, 0, len(cands))
	for _, c := range cands {
		d, ok := durations[c.Item.ID]
		if !ok || IsShortForm(d) {
			continue
		}
		long = append(long, c)
	}
	return firstItems(long, channelListSize), nil
}

func firstItems(cands []engine.SearchCandidate, n int) []engine.ListingItem {
	if len(cands) > n {
		cands = cands[:n]
	}
	out := make([]engine.ListingItem, len(cands))
	for i, c := range cands {
		out[i] = c.Item
	}
	return out
}
