package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

// domesticFetchWidth is how many hits a domestic search pulls before the
// locale filter thins them out.
const domesticFetchWidth = 50

// VideoSearch parameterizes SearchVideos.
type VideoSearch struct {
	Query          string
	PublishedAfter time.Time
	MaxResults     int
	IsGlobal       bool
}

// SearchVideos runs a keyword search ordered by view count. Domestic searches
// bias the query toward the locale and drop foreign results.
func (y *YouTube) SearchVideos(ctx context.Context, s VideoSearch) ([]engine.ListingItem, error) {
	api, err := y.dataAPI()
	if err != nil {
		return nil, err
	}
	engine.IncrSearch()

	loc := y.cfg.Locale
	p := SearchParams{
		Query:      s.Query,
		Order:      "viewCount",
		MaxResults: int64(clampResults(s.MaxResults)),
	}
	if !s.PublishedAfter.IsZero() {
		p.PublishedAfter = s.PublishedAfter.UTC().Format(time.RFC3339)
	}
	if !s.IsGlobal {
		p.Query = loc.BiasQuery(s.Query)
		p.RelevanceLanguage = loc.Language
		p.MaxResults = domesticFetchWidth
	}

	cands, err := api.Search(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}
	if !s.IsGlobal {
		cands = engine.FilterDomestic(ctx, cands, loc, api.ChannelCountries)
	}
	return firstItems(cands, clampResults(s.MaxResults)), nil
}

// clampResults keeps n inside the Data API page limits; 0 means 10.
func clampResults(n int) int {
	switch {
	case n <= 0:
		return channelListSize
	case n > domesticFetchWidth:
		return domesticFetchWidth
	}
	return n
}
