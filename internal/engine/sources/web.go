package sources

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

const defaultPageTitle = "No Title"

// pageNoise is removed before any text is read.
const pageNoise = `script, style, nav, header, footer, aside, .ads, [class*="ad-"]`

// bodyCandidates are tried in order after article and main; the first
// selector with any match wins and all of its matches are used.
var bodyCandidates = []string{".post-content", ".entry-content", "#content", ".content", ".article-body"}

// Web extracts readable text from arbitrary pages.
type Web struct {
	client *http.Client
}

// NewWeb returns a page extractor using cfg's HTTP client.
func NewWeb(cfg engine.Config) *Web {
	return &Web{client: cfg.Client()}
}

// ExtractWeb fetches rawURL and returns its main text. Pages with no text
// yield an item with empty Content, not an error.
func (w *Web) ExtractWeb(ctx context.Context, rawURL string) (engine.ContentItem, error) {
	body, header, err := w.fetch(ctx, rawURL)
	if err != nil {
		return engine.ContentItem{}, err
	}
	return ParsePage(body, header.Get("Content-Type"))
}

func (w *Web) fetch(ctx context.Context, rawURL string) ([]byte, http.Header, error) {
	engine.IncrWebFetch()
	body, header, err := engine.Get(ctx, w.client, rawURL, engine.BrowserHeaders(), engine.MaxPageBytes)
	if err != nil {
		engine.IncrWebFetchError()
		return nil, nil, err
	}
	return body, header, nil
}

// utf8Reader decodes body from its declared or sniffed charset.
func utf8Reader(body []byte, contentType string) io.Reader {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return bytes.NewReader(body)
	}
	return r
}

// ParsePage runs the selector chain over an HTML document.
func ParsePage(body []byte, contentType string) (engine.ContentItem, error) {
	doc, err := goquery.NewDocumentFromReader(utf8Reader(body, contentType))
	if err != nil {
		return engine.ContentItem{}, err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = defaultPageTitle
	}
	thumb, _ := doc.Find(`meta[property="og:image"]`).First().Attr("content")

	doc.Find(pageNoise).Remove()

	return engine.ContentItem{
		Title:      title,
		Content:    engine.CollapseWhitespace(mainText(doc)),
		Thumbnail:  thumb,
		SourceType: engine.SourceWeb,
	}, nil
}

// mainText picks the first container present: article, main, a known
// content class, and finally the whole body.
func mainText(doc *goquery.Document) string {
	var text string
	switch {
	case doc.Find("article").Length() > 0:
		text = doc.Find("article").Text()
	case doc.Find("main").Length() > 0:
		text = doc.Find("main").Text()
	default:
		for _, sel := range bodyCandidates {
			if found := doc.Find(sel); found.Length() > 0 {
				text = found.Text()
				break
			}
		}
	}
	if text == "" {
		text = doc.Find("body").Text()
	}
	return text
}
