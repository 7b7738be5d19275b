package sources

// YouTube implementation is split across files by responsibility:
//   youtube_innertube.go  Innertube/timedtext wire types and constants
//   youtube_transcript.go caption fetching (watch page, then ANDROID player)
//   youtube_data.go       Data API v3 adapter
//   youtube_channel.go    channel listings
//   youtube_search.go     keyword search with the domestic filter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"google.golang.org/api/option"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

const (
	defaultVideoTitle = "YouTube Video"
	noDescription     = "(No description)"
	fallbackNotice    = "※字幕データがないため、概要欄から要約しました。"
)

// Endpoints overrides the scraped YouTube hosts.
type Endpoints struct {
	WatchURL  string
	PlayerURL string
	OEmbedURL string
}

// YouTube extracts transcripts, channel listings and search results.
type YouTube struct {
	cfg         engine.Config
	client      *http.Client
	api         DataAPI // nil without a credential
	transcripts *TranscriptFetcher
	oembedURL   string
	apiOpts     []option.ClientOption
}

// YouTubeOption customizes a YouTube extractor.
type YouTubeOption func(*YouTube)

// WithDataAPI replaces the Data API client.
func WithDataAPI(api DataAPI) YouTubeOption {
	return func(y *YouTube) { y.api = api }
}

// WithAPIOptions passes extra client options to the Data API service.
func WithAPIOptions(opts ...option.ClientOption) YouTubeOption {
	return func(y *YouTube) { y.apiOpts = append(y.apiOpts, opts...) }
}

// WithEndpoints points the scrapers at other hosts. Empty fields keep the default.
func WithEndpoints(e Endpoints) YouTubeOption {
	return func(y *YouTube) {
		if e.WatchURL != "" {
			y.transcripts.watchURL = e.WatchURL
		}
		if e.PlayerURL != "" {
			y.transcripts.playerURL = e.PlayerURL
		}
		if e.OEmbedURL != "" {
			y.oembedURL = e.OEmbedURL
		}
	}
}

// NewYouTube builds the extractor. The Data API client is created only when
// cfg carries a key; operations needing it report engine.ErrConfig otherwise.
func NewYouTube(ctx context.Context, cfg engine.Config, opts ...YouTubeOption) (*YouTube, error) {
	if cfg.Locale.Script == nil {
		cfg.Locale = engine.JapanLocale()
	}
	client := cfg.Client()
	y := &YouTube{
		cfg:         cfg,
		client:      client,
		transcripts: NewTranscriptFetcher(client, []string{cfg.Locale.Language, "en"}),
		oembedURL:   ytOEmbedURL,
	}
	for _, o := range opts {
		o(y)
	}
	if y.api == nil && cfg.YouTubeAPIKey != "" {
		api, err := NewDataAPI(ctx, cfg.YouTubeAPIKey, y.apiOpts...)
		if err != nil {
			return nil, err
		}
		y.api = api
	}
	return y, nil
}

func (y *YouTube) dataAPI() (DataAPI, error) {
	if y.api == nil {
		return nil, y.cfg.RequireYouTubeKey()
	}
	return y.api, nil
}

// ExtractVideo returns the transcript of a video, or its description when no
// transcript exists. Channel references resolve to the newest upload.
func (y *YouTube) ExtractVideo(ctx context.Context, rawURL string) (engine.ContentItem, error) {
	id := engine.ExtractVideoID(rawURL)
	if id == "" && engine.LooksLikeChannelRef(rawURL) {
		id = y.latestVideoID(ctx, rawURL)
	}
	if id == "" {
		return engine.ContentItem{}, &engine.ExtractionError{
			Reason: engine.ReasonInvalidReference,
			Err:    fmt.Errorf("no video id in %q", rawURL),
		}
	}

	res := y.transcriptAttempt(ctx, id).Or(func() engine.Attempt[engine.ContentItem] {
		return y.descriptionAttempt(ctx, id)
	})
	if !res.IsOK() {
		return engine.ContentItem{}, res.Err
	}
	item := res.Value
	if item.Title == "" {
		item.Title = defaultVideoTitle
	}
	return item, nil
}

// latestVideoID resolves a channel reference to its newest upload.
// Failures are logged and yield "".
func (y *YouTube) latestVideoID(ctx context.Context, raw string) string {
	_, videos, err := y.ListChannelVideos(ctx, raw, engine.SortDate)
	if err != nil {
		slog.Warn("youtube: channel reference did not resolve",
			slog.String("input", raw), slog.Any("error", err))
		return ""
	}
	if len(videos) == 0 {
		return ""
	}
	return videos[0].ID
}

func (y *YouTube) transcriptAttempt(ctx context.Context, id string) engine.Attempt[engine.ContentItem] {
	tr := y.transcripts.Fetch(ctx, id)
	switch tr.State {
	case engine.AttemptOK:
		return engine.Ok(engine.ContentItem{
			Title:      y.oEmbedTitle(ctx, id),
			Content:    tr.Value,
			Thumbnail:  engine.VideoThumbnail(id),
			SourceType: engine.SourceYouTube,
		})
	case engine.AttemptNeedsFallback:
		return engine.NeedsFallback[engine.ContentItem](tr.Reason, tr.Err)
	default:
		return engine.Failed[engine.ContentItem](tr.Err)
	}
}

// descriptionAttempt builds the metadata fallback. It never asks for a further fallback.
func (y *YouTube) descriptionAttempt(ctx context.Context, id string) engine.Attempt[engine.ContentItem] {
	noContent := func(err error) engine.Attempt[engine.ContentItem] {
		return engine.Failed[engine.ContentItem](&engine.ExtractionError{Reason: engine.ReasonNoContent, Err: err})
	}

	api, err := y.dataAPI()
	if err != nil {
		return noContent(err)
	}
	meta, err := api.Video(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return engine.Failed[engine.ContentItem](ctx.Err())
		}
		return noContent(err)
	}

	engine.IncrFallback()
	slog.Info("youtube: no transcript, using description", slog.String("id", id))
	return engine.Ok(engine.ContentItem{
		Title:             meta.Title,
		Content:           fallbackContent(meta),
		Thumbnail:         engine.VideoThumbnail(id),
		SourceType:        engine.SourceYouTube,
		IsFallbackContent: true,
	})
}

func fallbackContent(meta VideoMeta) string {
	desc := meta.Description
	if desc == "" {
		desc = noDescription
	}
	return fallbackNotice + "\n\n【動画タイトル】\n" + meta.Title + "\n\n【概要欄】\n" + desc
}

// oEmbedTitle looks the title up without credentials. Best effort: "" on any failure.
func (y *YouTube) oEmbedTitle(ctx context.Context, id string) string {
	u := y.oembedURL + "?url=" + url.QueryEscape(engine.VideoURL(id)) + "&format=json"
	data, _, err := engine.Get(ctx, y.client, u, map[string]string{"User-Agent": engine.UserAgentBot}, engine.MaxAPIBytes)
	if err != nil {
		slog.Debug("youtube: oembed lookup failed", slog.String("id", id), slog.Any("error", err))
		return ""
	}
	var resp struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return ""
	}
	return resp.Title
}

// isNotFound reports whether err means the resource does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, engine.ErrNotFound)
}
