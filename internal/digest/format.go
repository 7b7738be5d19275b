package digest

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_distill/internal/engine"
)

// FormatSearchDigest renders search results as a numbered Markdown list
// followed by a bare URL list for pasting into a notebook.
func FormatSearchDigest(query string, window engine.TimeWindow, isGlobal bool, items []engine.ListingItem) string {
	timeLabel := "24時間以内"
	if window == engine.Window7d {
		timeLabel = "1週間以内"
	}
	regionLabel := "国内のみ"
	if isGlobal {
		regionLabel = "全世界"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## 最新の「%s」トレンド動画 (%s / %s)\n\n", query, timeLabel, regionLabel)
	if len(items) == 0 {
		fmt.Fprintf(&sb, "※ %sで該当する動画は見つかりませんでした。\n", timeLabel)
		return sb.String()
	}

	for i, it := range items {
		fmt.Fprintf(&sb, "%d. [%s](%s)\n", i+1, it.Title, it.URL)
		published := it.PublishedAt
		if t := it.PublishedTime(); !t.IsZero() {
			published = t.Format("2006-01-02 15:04")
		}
		if it.SourceTag != "" {
			fmt.Fprintf(&sb, "   - %s / Published: %s\n", it.SourceTag, published)
		} else {
			fmt.Fprintf(&sb, "   - Published: %s\n", published)
		}
	}

	sb.WriteString("\n### URLリスト (NotebookLM用)\n")
	for _, it := range items {
		sb.WriteString(it.URL)
		sb.WriteByte('\n')
	}
	return sb.String()
}
