package engine

// --- Extraction tools ---

type ContentExtractInput struct {
	URL string `json:"url" jsonschema:"YouTube video or channel URL, @handle, or any web page URL"`
}

type ContentProcessInput struct {
	URL       string `json:"url" jsonschema:"YouTube video or channel URL, @handle, or any web page URL"`
	Mode      string `json:"mode,omitempty" jsonschema:"Output format: report (default), article, notebook-source"`
	FocusHint string `json:"focus_hint,omitempty" jsonschema:"What the summary should concentrate on"`
	Model     string `json:"model,omitempty" jsonschema:"LLM model: fast (default) or pro"`
}

// ContentProcessOutput is the structured output for content_process.
type ContentProcessOutput struct {
	Content           string     `json:"content"`
	Title             string     `json:"title"`
	Thumbnail         string     `json:"thumbnail"`
	SourceType        SourceType `json:"source_type"`
	IsFallbackContent bool       `json:"is_fallback_content"`
}

type WebReadInput struct {
	URL      string `json:"url" jsonschema:"Web page URL"`
	MaxChars int    `json:"max_chars,omitempty" jsonschema:"Maximum characters of markdown to return (default: MAX_CONTENT_CHARS)"`
}

// WebReadOutput is the reader-view rendering of a page.
type WebReadOutput struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// --- Listing tools ---

type ChannelVideosInput struct {
	Channel string `json:"channel" jsonschema:"Channel URL, @handle, or channel id (UC...)"`
	SortBy  string `json:"sort_by,omitempty" jsonschema:"Order: date (default) or popularity (long-form videos by view count)"`
}

// ListingOutput is shared by channel_videos and note_feed.
type ListingOutput struct {
	ChannelName string        `json:"channel_name"`
	Videos      []ListingItem `json:"videos"`
}

type NoteFeedInput struct {
	User string `json:"user" jsonschema:"note.com profile URL or user name (with or without @)"`
}

type VideoSearchInput struct {
	Query      string `json:"query,omitempty" jsonschema:"Search keywords (default: AI副業)"`
	TimeRange  string `json:"time_range,omitempty" jsonschema:"Publish window: 24h (default) or 7d"`
	IsGlobal   bool   `json:"is_global,omitempty" jsonschema:"Search worldwide instead of Japanese-only results"`
	Source     string `json:"source,omitempty" jsonschema:"Sources: youtube (default), note, mixed"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum results (default 10, max 50)"`
}

// VideoSearchOutput is the structured output for video_search.
type VideoSearchOutput struct {
	Query    string        `json:"query"`
	Videos   []ListingItem `json:"videos"`
	Count    int           `json:"count"`
	Markdown string        `json:"markdown"`
}

// --- Batch tool ---

type BatchProcessInput struct {
	URLs []string `json:"urls" jsonschema:"URLs to summarize (YouTube or web)"`
	Mode string   `json:"mode,omitempty" jsonschema:"Output format: notebook-source (default), report, article"`
}
