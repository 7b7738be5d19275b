package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

// ChannelInfo is the subset of channel metadata the listing needs.
type ChannelInfo struct {
	ID                string
	Title             string
	UploadsPlaylistID string
}

// SearchParams maps onto search.list. Empty fields are not sent.
type SearchParams struct {
	Query             string
	ChannelID         string
	Order             string // "date", "viewCount", ...
	PublishedAfter    string // RFC 3339
	RelevanceLanguage string
	MaxResults        int64
}

// VideoMeta is title and description from videos.list.
type VideoMeta struct {
	Title       string
	Description string
}

// DataAPI is the YouTube Data API surface used by the extractor.
// Lookups that resolve to nothing return an error wrapping engine.ErrNotFound.
type DataAPI interface {
	Channel(ctx context.Context, id engine.ChannelIdentity) (ChannelInfo, error)
	PlaylistItems(ctx context.Context, playlistID string, max int64) ([]engine.ListingItem, error)
	Search(ctx context.Context, p SearchParams) ([]engine.SearchCandidate, error)
	VideoDurations(ctx context.Context, ids []string) (map[string]string, error)
	Video(ctx context.Context, id string) (VideoMeta, error)
	ChannelCountries(ctx context.Context, ids []string) (map[string]string, error)
}

type googleDataAPI struct {
	svc *youtube.Service
}

// NewDataAPI builds a DataAPI backed by google.golang.org/api.
// Extra options are appended after the key (endpoint overrides in tests).
func NewDataAPI(ctx context.Context, apiKey string, opts ...option.ClientOption) (DataAPI, error) {
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	return &googleDataAPI{svc: svc}, nil
}

func (g *googleDataAPI) Channel(ctx context.Context, id engine.ChannelIdentity) (ChannelInfo, error) {
	call := g.svc.Channels.List([]string{"snippet", "contentDetails"})
	if id.Kind == engine.IdentityHandle {
		call = call.ForHandle(id.Value)
	} else {
		call = call.Id(id.Value)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return ChannelInfo{}, classifyAPIError(err)
	}
	if len(resp.Items) == 0 {
		return ChannelInfo{}, fmt.Errorf("channel %q: %w", id.Value, engine.ErrNotFound)
	}
	ch := resp.Items[0]
	info := ChannelInfo{ID: ch.Id}
	if ch.Snippet != nil {
		info.Title = ch.Snippet.Title
	}
	if ch.ContentDetails != nil && ch.ContentDetails.RelatedPlaylists != nil {
		info.UploadsPlaylistID = ch.ContentDetails.RelatedPlaylists.Uploads
	}
	return info, nil
}

func (g *googleDataAPI) PlaylistItems(ctx context.Context, playlistID string, max int64) ([]engine.ListingItem, error) {
	resp, err := g.svc.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(max).
		Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err)
	}
	items := make([]engine.ListingItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it.Snippet == nil || it.Snippet.ResourceId == nil || it.Snippet.ResourceId.VideoId == "" {
			continue
		}
		id := it.Snippet.ResourceId.VideoId
		items = append(items, engine.ListingItem{
			ID:          id,
			Title:       it.Snippet.Title,
			Thumbnail:   thumbnailURL(it.Snippet.Thumbnails),
			PublishedAt: it.Snippet.PublishedAt,
			URL:         engine.VideoURL(id),
		})
	}
	return items, nil
}

func (g *googleDataAPI) Search(ctx context.Context, p SearchParams) ([]engine.SearchCandidate, error) {
	call := g.svc.Search.List([]string{"snippet"}).Type("video").MaxResults(p.MaxResults)
	if p.Query != "" {
		call = call.Q(p.Query)
	}
	if p.ChannelID != "" {
		call = call.ChannelId(p.ChannelID)
	}
	if p.Order != "" {
		call = call.Order(p.Order)
	}
	if p.PublishedAfter != "" {
		call = call.PublishedAfter(p.PublishedAfter)
	}
	if p.RelevanceLanguage != "" {
		call = call.RelevanceLanguage(p.RelevanceLanguage)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err)
	}

	out := make([]engine.SearchCandidate, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it.Id == nil || it.Id.VideoId == "" || it.Snippet == nil {
			continue
		}
		id := it.Id.VideoId
		out = append(out, engine.SearchCandidate{
			Item: engine.ListingItem{
				ID:          id,
				Title:       it.Snippet.Title,
				Thumbnail:   thumbnailURL(it.Snippet.Thumbnails),
				PublishedAt: it.Snippet.PublishedAt,
				URL:         engine.VideoURL(id),
			},
			ChannelID:    it.Snippet.ChannelId,
			ChannelTitle: it.Snippet.ChannelTitle,
		})
	}
	return out, nil
}

func (g *googleDataAPI) VideoDurations(ctx context.Context, ids []string) (map[string]string, error) {
	resp, err := g.svc.Videos.List([]string{"contentDetails"}).Id(ids...).Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err)
	}
	out := make(map[string]string, len(resp.Items))
	for _, v := range resp.Items {
		if v.ContentDetails != nil {
			out[v.Id] = v.ContentDetails.Duration
		}
	}
	return out, nil
}

func (g *googleDataAPI) Video(ctx context.Context, id string) (VideoMeta, error) {
	resp, err := g.svc.Videos.List([]string{"snippet"}).Id(id).Context(ctx).Do()
	if err != nil {
		return VideoMeta{}, classifyAPIError(err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return VideoMeta{}, fmt.Errorf("video %q: %w", id, engine.ErrNotFound)
	}
	sn := resp.Items[0].Snippet
	return VideoMeta{Title: sn.Title, Description: sn.Description}, nil
}

func (g *googleDataAPI) ChannelCountries(ctx context.Context, ids []string) (map[string]string, error) {
	resp, err := g.svc.Channels.List([]string{"snippet"}).Id(ids...).Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err)
	}
	out := make(map[string]string, len(resp.Items))
	for _, ch := range resp.Items {
		if ch.Snippet != nil {
			out[ch.Id] = ch.Snippet.Country
		}
	}
	return out, nil
}

// thumbnailURL prefers the medium rendition, then default.
func thumbnailURL(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.Medium != nil && t.Medium.Url != "" {
		return t.Medium.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	return ""
}

// classifyAPIError maps googleapi errors onto the engine taxonomy.
func classifyAPIError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &engine.UpstreamFetchError{URL: "youtube data api", Err: err}
	}
	if gerr.Code == http.StatusNotFound {
		return fmt.Errorf("%s: %w", gerr.Message, engine.ErrNotFound)
	}
	return &engine.UpstreamFetchError{URL: "youtube data api", StatusCode: gerr.Code, Err: err}
}
