package sources

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

const noteBaseURL = "https://note.com"

// Note reads note.com RSS feeds. Feed failures never surface as errors:
// they log and yield an empty listing.
type Note struct {
	client  *http.Client
	baseURL string
}

// NewNote returns a feed extractor. baseURL overrides https://note.com when non-empty.
func NewNote(cfg engine.Config, baseURL string) *Note {
	if baseURL == "" {
		baseURL = noteBaseURL
	}
	return &Note{client: cfg.Client(), baseURL: strings.TrimSuffix(baseURL, "/")}
}

// NoteUser extracts the user name from a profile URL or @handle.
func NoteUser(identifier string) string {
	user := strings.TrimSpace(identifier)
	if strings.HasPrefix(user, "http") {
		if u, err := url.Parse(user); err == nil {
			user = strings.Split(strings.Trim(u.Path, "/"), "/")[0]
		}
	}
	return strings.TrimPrefix(user, "@")
}

// ListUserFeed returns the creator's display name and latest posts.
// On failure the name is the identifier and the list is empty.
func (n *Note) ListUserFeed(ctx context.Context, identifier string) (string, []engine.ListingItem) {
	user := NoteUser(identifier)
	if user == "" {
		return identifier, []engine.ListingItem{}
	}
	name, items, err := n.read(ctx, n.baseURL+"/"+url.PathEscape(user)+"/rss")
	if err != nil {
		slog.Warn("note: user feed failed", slog.String("user", user), slog.Any("error", err))
		return identifier, []engine.ListingItem{}
	}
	if name == "" {
		name = identifier
	}
	return name, items
}

// ListHashtagFeed returns posts for the first word of query used as a hashtag.
func (n *Note) ListHashtagFeed(ctx context.Context, query string) []engine.ListingItem {
	tag := engine.FirstWord(query)
	if tag == "" {
		return []engine.ListingItem{}
	}
	_, items, err := n.read(ctx, n.baseURL+"/hashtag/"+url.PathEscape(tag)+"/rss")
	if err != nil {
		slog.Warn("note: hashtag feed failed", slog.String("tag", tag), slog.Any("error", err))
		return []engine.ListingItem{}
	}
	return items
}

func (n *Note) read(ctx context.Context, feedURL string) (string, []engine.ListingItem, error) {
	engine.IncrFeedFetch()
	body, _, err := engine.Get(ctx, n.client, feedURL, map[string]string{
		"User-Agent": engine.UserAgentBot,
		"Accept":     "application/rss+xml, application/xml;q=0.9, */*;q=0.8",
	}, engine.MaxPageBytes)
	if err != nil {
		engine.IncrFeedError()
		return "", nil, err
	}
	name, items, err := parseNoteFeed(body)
	if err != nil {
		engine.IncrFeedError()
		return "", nil, err
	}
	return name, items, nil
}

// parseNoteFeed maps RSS items to listings. Items without a link are skipped.
func parseNoteFeed(body []byte) (string, []engine.ListingItem, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return "", nil, err
	}

	items := make([]engine.ListingItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it.Link == "" {
			continue
		}
		items = append(items, engine.ListingItem{
			ID:          it.Link,
			Title:       it.Title,
			Thumbnail:   noteThumbnail(it),
			PublishedAt: notePublished(it),
			URL:         it.Link,
		})
	}
	return strings.TrimSpace(strings.Replace(feed.Title, " - note", "", 1)), items, nil
}

func noteThumbnail(it *gofeed.Item) string {
	if thumbs := it.Extensions["media"]["thumbnail"]; len(thumbs) > 0 {
		if u := thumbs[0].Attrs["url"]; u != "" {
			return u
		}
		if thumbs[0].Value != "" {
			return strings.TrimSpace(thumbs[0].Value)
		}
	}
	if it.Image != nil {
		return it.Image.URL
	}
	return ""
}

// notePublished normalizes pubDate to RFC 3339, keeping the raw value when unparseable.
func notePublished(it *gofeed.Item) string {
	if it.PublishedParsed != nil {
		return it.PublishedParsed.Format(time.RFC3339)
	}
	return it.Published
}
