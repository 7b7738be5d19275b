package sources

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

// fakeAPI is an in-memory DataAPI.
type fakeAPI struct {
	channel     ChannelInfo
	channelErr  error
	uploads     []engine.ListingItem
	search      []engine.SearchCandidate
	searchErr   error
	durations   map[string]string
	durationErr error
	videos      map[string]VideoMeta
	videoErr    error
	countries   map[string]string
	countryErr  error

	lastIdent    engine.ChannelIdentity
	lastSearch   SearchParams
	lastPlaylist string
	lastMax      int64
}

func (f *fakeAPI) Channel(_ context.Context, id engine.ChannelIdentity) (ChannelInfo, error) {
	f.lastIdent = id
	return f.channel, f.channelErr
}

func (f *fakeAPI) PlaylistItems(_ context.Context, playlistID string, max int64) ([]engine.ListingItem, error) {
	f.lastPlaylist, f.lastMax = playlistID, max
	return f.uploads, nil
}

func (f *fakeAPI) Search(_ context.Context, p SearchParams) ([]engine.SearchCandidate, error) {
	f.lastSearch = p
	return f.search, f.searchErr
}

func (f *fakeAPI) VideoDurations(_ context.Context, _ []string) (map[string]string, error) {
	return f.durations, f.durationErr
}

func (f *fakeAPI) Video(_ context.Context, id string) (VideoMeta, error) {
	if f.videoErr != nil {
		return VideoMeta{}, f.videoErr
	}
	m, ok := f.videos[id]
	if !ok {
		return VideoMeta{}, fmt.Errorf("video %q: %w", id, engine.ErrNotFound)
	}
	return m, nil
}

func (f *fakeAPI) ChannelCountries(_ context.Context, _ []string) (map[string]string, error) {
	return f.countries, f.countryErr
}

func candidate(id, title, channelID, channelTitle string) engine.SearchCandidate {
	return engine.SearchCandidate{
		Item:         engine.ListingItem{ID: id, Title: title, URL: engine.VideoURL(id)},
		ChannelID:    channelID,
		ChannelTitle: channelTitle,
	}
}
