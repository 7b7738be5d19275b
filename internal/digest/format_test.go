package digest

import (
	"strings"
	"testing"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

func TestFormatSearchDigest(t *testing.T) {
	items := []engine.ListingItem{
		{Title: "First", URL: "https://www.youtube.com/watch?v=a", PublishedAt: "2024-05-01T10:00:00Z", SourceTag: engine.SourceYouTube},
		{Title: "Second", URL: "https://note.com/u/n/n1", PublishedAt: "yesterday"},
	}

	got := FormatSearchDigest("AI副業", engine.Window7d, false, items)
	want := "## 最新の「AI副業」トレンド動画 (1週間以内 / 国内のみ)\n\n" +
		"1. [First](https://www.youtube.com/watch?v=a)\n" +
		"   - youtube / Published: 2024-05-01 10:00\n" +
		"2. [Second](https://note.com/u/n/n1)\n" +
		"   - Published: yesterday\n" +
		"\n### URLリスト (NotebookLM用)\n" +
		"https://www.youtube.com/watch?v=a\n" +
		"https://note.com/u/n/n1\n"
	if got != want {
		t.Errorf("FormatSearchDigest mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatSearchDigestEmpty(t *testing.T) {
	got := FormatSearchDigest("x", engine.Window24h, true, nil)
	if !strings.HasPrefix(got, "## 最新の「x」トレンド動画 (24時間以内 / 全世界)") {
		t.Errorf("unexpected heading: %q", got)
	}
	if !strings.Contains(got, "※ 24時間以内で該当する動画は見つかりませんでした。") {
		t.Errorf("missing empty notice: %q", got)
	}
	if strings.Contains(got, "URLリスト") {
		t.Errorf("empty digest must not list URLs: %q", got)
	}
}
