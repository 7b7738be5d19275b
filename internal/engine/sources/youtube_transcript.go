package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

// YouTube transcript fetching.
// Primary:  watch page ytInitialPlayerResponse → captionTracks → timedtext XML
// Fallback: ANDROID Innertube /player → captionTracks → timedtext XML
// Each strategy is attempted once; any failure moves on to the next.

var errNoTracks = errors.New("no caption tracks")

// TranscriptFetcher retrieves caption text for a video.
type TranscriptFetcher struct {
	client    *http.Client
	watchURL  string
	playerURL string
	langs     []string
}

// NewTranscriptFetcher returns a fetcher preferring the given caption languages.
func NewTranscriptFetcher(client *http.Client, langs []string) *TranscriptFetcher {
	return &TranscriptFetcher{
		client:    client,
		watchURL:  ytWatchURL,
		playerURL: ytInnertubeURL,
		langs:     langs,
	}
}

// Fetch returns the transcript as a single space-joined string.
// A missing or empty transcript is NeedsFallback so callers can degrade to
// metadata. Only a cancelled context is Failed.
func (f *TranscriptFetcher) Fetch(ctx context.Context, videoID string) engine.Attempt[string] {
	engine.IncrTranscript()

	text, err := f.viaPageScrape(ctx, videoID)
	if err == nil && text != "" {
		return engine.Ok(text)
	}
	if ctx.Err() != nil {
		return engine.Failed[string](ctx.Err())
	}
	slog.Debug("youtube: page scrape gave no transcript, trying player",
		slog.String("id", videoID), slog.Any("err", err))

	text, err = f.viaPlayer(ctx, videoID)
	if err == nil && text != "" {
		return engine.Ok(text)
	}
	if ctx.Err() != nil {
		return engine.Failed[string](ctx.Err())
	}

	engine.IncrTranscriptMiss()
	if err == nil {
		err = errors.New("empty transcript")
	}
	return engine.NeedsFallback[string]("transcript unavailable", err)
}

// viaPageScrape reads captionTracks out of the watch page HTML.
func (f *TranscriptFetcher) viaPageScrape(ctx context.Context, videoID string) (string, error) {
	watch := f.watchURL + "?v=" + url.QueryEscape(videoID)
	body, _, err := engine.Get(ctx, f.client, watch, engine.BrowserHeaders(), engine.MaxPageBytes)
	if err != nil {
		return "", fmt.Errorf("watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return "", errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return "", errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return "", fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return f.fromTracks(ctx, playerResp.tracks())
}

// viaPlayer asks the ANDROID Innertube client for captionTracks.
func (f *TranscriptFetcher) viaPlayer(ctx context.Context, videoID string) (string, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "ja",
				Gl:                "JP",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return "", err
	}

	data, err := engine.Post(ctx, f.client, f.playerURL+"?prettyPrint=false", map[string]string{
		"Content-Type":             "application/json",
		"User-Agent":               ytAndroidUA,
		"X-Youtube-Client-Name":    "3",
		"X-Youtube-Client-Version": ytAndroidVersion,
	}, reqBody, engine.MaxAPIBytes)
	if err != nil {
		return "", fmt.Errorf("android innertube: %w", err)
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(data, &playerResp); err != nil {
		return "", fmt.Errorf("decode player: %w", err)
	}
	if reason := playerResp.unplayableReason(); reason != "" && len(playerResp.tracks()) == 0 {
		return "", fmt.Errorf("captions unavailable: %s", reason)
	}
	return f.fromTracks(ctx, playerResp.tracks())
}

func (f *TranscriptFetcher) fromTracks(ctx context.Context, tracks []captionTrack) (string, error) {
	if len(tracks) == 0 {
		return "", errNoTracks
	}
	track, ok := pickBestTrack(tracks, f.langs)
	if !ok {
		return "", errors.New("all caption tracks require PoToken")
	}
	body, _, err := engine.Get(ctx, f.client, track.BaseURL,
		map[string]string{"User-Agent": engine.UserAgentBot}, engine.MaxAPIBytes)
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	text, err := parseTimedText(body)
	if err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}
	return text, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language preferences.
// Manual tracks beat auto-generated ones in the same language.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	return usable[0], true
}
