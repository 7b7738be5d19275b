package digest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

func listing(id, published string) engine.ListingItem {
	return engine.ListingItem{ID: id, Title: "t" + id, PublishedAt: published, URL: "https://x/" + id}
}

func ids(items []engine.ListingItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestSearchDefaults(t *testing.T) {
	video := &fakeVideo{search: []engine.ListingItem{listing("v1", "2024-05-03T10:00:00Z")}}
	feeds := &fakeFeeds{}
	s := newTestService(video, nil, feeds, nil)

	res, err := s.Search(context.Background(), SearchRequest{})
	require.NoError(t, err)

	assert.Equal(t, "AI副業", res.Query)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, engine.SourceYouTube, res.Videos[0].SourceTag)
	assert.Equal(t, 10, video.lastSearch.MaxResults)
	assert.Equal(t, fixedNow.Add(-24*time.Hour), video.lastSearch.PublishedAfter)
	assert.False(t, video.lastSearch.IsGlobal)
	assert.Zero(t, feeds.tagCalls, "youtube-only search skips note")
}

func TestSearchWeekWindowGlobal(t *testing.T) {
	video := &fakeVideo{}
	s := newTestService(video, nil, nil, nil)

	_, err := s.Search(context.Background(), SearchRequest{Query: "chatgpt", TimeWindow: engine.Window7d, IsGlobal: true, MaxResults: 5})
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), video.lastSearch.PublishedAfter)
	assert.True(t, video.lastSearch.IsGlobal)
	assert.Equal(t, 5, video.lastSearch.MaxResults)
}

func TestSearchMixedNewestFirst(t *testing.T) {
	video := &fakeVideo{search: []engine.ListingItem{
		listing("v1", "2024-05-03T10:00:00Z"),
		listing("v2", "2024-05-01T10:00:00Z"),
	}}
	feeds := &fakeFeeds{posts: []engine.ListingItem{
		listing("n1", "Fri, 03 May 2024 20:00:00 +0900"),
		listing("n2", "garbage"),
		listing("n3", "2024-05-02T10:00:00Z"),
	}}
	s := newTestService(video, nil, feeds, nil)

	res, err := s.Search(context.Background(), SearchRequest{Query: "AI副業 稼ぐ", Source: engine.SearchMixed})
	require.NoError(t, err)

	assert.Equal(t, []string{"n1", "v1", "n3", "v2", "n2"}, ids(res.Videos))
	assert.Equal(t, 5, res.Count)
	assert.Equal(t, "AI副業 稼ぐ", feeds.lastTag)
	for _, it := range res.Videos {
		want := engine.SourceYouTube
		if it.ID[0] == 'n' {
			want = engine.SourceNote
		}
		assert.Equal(t, want, it.SourceTag, it.ID)
	}
}

func TestSearchTruncatesToLimit(t *testing.T) {
	video := &fakeVideo{search: []engine.ListingItem{
		listing("v1", "2024-05-03T10:00:00Z"),
		listing("v2", "2024-05-02T10:00:00Z"),
	}}
	feeds := &fakeFeeds{posts: []engine.ListingItem{
		listing("n1", "2024-05-03T11:00:00Z"),
		listing("n2", "2024-05-01T10:00:00Z"),
	}}
	s := newTestService(video, nil, feeds, nil)

	res, err := s.Search(context.Background(), SearchRequest{Source: engine.SearchMixed, MaxResults: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "v1", "v2"}, ids(res.Videos))
	assert.Equal(t, 3, res.Count)
}

func TestSearchNoteOnly(t *testing.T) {
	video := &fakeVideo{searchErr: &engine.UpstreamFetchError{URL: "must not be called"}}
	feeds := &fakeFeeds{posts: []engine.ListingItem{listing("n1", "2024-05-01T10:00:00Z"), listing("n2", "2024-05-03T10:00:00Z")}}
	s := newTestService(video, nil, feeds, nil)

	res, err := s.Search(context.Background(), SearchRequest{Query: "note", Source: engine.SearchNote})
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "n2"}, ids(res.Videos), "single-source results keep upstream order")
	assert.Equal(t, engine.SourceNote, res.Videos[0].SourceTag)
}

func TestSearchYouTubeErrorPropagates(t *testing.T) {
	video := &fakeVideo{searchErr: engine.ErrConfig}
	feeds := &fakeFeeds{posts: []engine.ListingItem{listing("n1", "2024-05-01T10:00:00Z")}}
	s := newTestService(video, nil, feeds, nil)

	_, err := s.Search(context.Background(), SearchRequest{Source: engine.SearchMixed})
	assert.ErrorIs(t, err, engine.ErrConfig)
}
