package sources

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	readability "github.com/go-shiori/go-readability"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

// ReadMarkdown fetches rawURL and returns its reader-view title and body as
// Markdown, capped at maxChars runes. When readability finds no article
// the selector-chain text is used instead.
func (w *Web) ReadMarkdown(ctx context.Context, rawURL string, maxChars int) (title, content string, err error) {
	body, header, err := w.fetch(ctx, rawURL)
	if err != nil {
		return "", "", err
	}
	ct := header.Get("Content-Type")

	pageURL, perr := url.Parse(rawURL)
	if perr != nil {
		pageURL = &url.URL{}
	}
	title, content = readArticle(utf8Reader(body, ct), pageURL)
	if content == "" {
		item, err := ParsePage(body, ct)
		if err != nil {
			return "", "", err
		}
		if title == "" {
			title = item.Title
		}
		content = item.Content
	}
	if title == "" {
		title = defaultPageTitle
	}
	return title, engine.TruncateRunes(content, maxChars, "..."), nil
}

// readArticle returns "" content when readability cannot isolate an article.
func readArticle(r io.Reader, pageURL *url.URL) (title, content string) {
	article, err := readability.FromReader(r, pageURL)
	if err != nil {
		slog.Debug("web: readability failed", slog.Any("error", err))
		return "", ""
	}
	title = strings.TrimSpace(article.Title)

	md, err := htmltomarkdown.ConvertString(article.Content)
	if err != nil {
		return title, strings.TrimSpace(article.TextContent)
	}
	return title, strings.TrimSpace(md)
}
