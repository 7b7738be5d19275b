package distillserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_distill/internal/digest"
	"github.com/anatolykoptev/go_distill/internal/engine"
	"github.com/anatolykoptev/go_distill/internal/toolutil"
)

func registerChannelVideos(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "channel_videos",
		Description: "List up to 10 videos of a YouTube channel given its URL, @handle or id. sort_by=date returns the newest uploads; sort_by=popularity returns the most viewed long-form videos (Shorts excluded). Requires YOUTUBE_API_KEY.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ChannelVideosInput) (*mcp.CallToolResult, engine.ListingOutput, error) {
		if err := toolutil.Require("channel", input.Channel); err != nil {
			return nil, engine.ListingOutput{}, err
		}
		name, videos, err := d.Service.Channel(ctx, input.Channel, engine.ParseSortBy(input.SortBy))
		if err != nil {
			return nil, engine.ListingOutput{}, err
		}
		return nil, engine.ListingOutput{ChannelName: name, Videos: videos}, nil
	})
}

func registerNoteFeed(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "note_feed",
		Description: "List the latest posts of a note.com creator from their RSS feed. Accepts a profile URL or user name. Returns an empty list when the feed is unavailable.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.NoteFeedInput) (*mcp.CallToolResult, engine.ListingOutput, error) {
		if err := toolutil.Require("user", input.User); err != nil {
			return nil, engine.ListingOutput{}, err
		}
		name, posts := d.Service.NoteFeed(ctx, input.User)
		return nil, engine.ListingOutput{ChannelName: name, Videos: posts}, nil
	})
}

func registerVideoSearch(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_search",
		Description: "Find trending content for a keyword: YouTube videos by view count within the last 24h or 7d, note.com hashtag posts, or both merged newest first. Domestic mode (default) keeps Japanese-language, Japan-based channels only. Returns the list plus a Markdown digest with a URL list for NotebookLM.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoSearchInput) (*mcp.CallToolResult, engine.VideoSearchOutput, error) {
		window := engine.ParseTimeWindow(input.TimeRange)
		res, err := d.Service.Search(ctx, digest.SearchRequest{
			Query:      input.Query,
			TimeWindow: window,
			IsGlobal:   input.IsGlobal,
			Source:     engine.ParseSearchSource(input.Source),
			MaxResults: toolutil.ClampInt(input.MaxResults, 10, 50),
		})
		if err != nil {
			return nil, engine.VideoSearchOutput{}, err
		}
		slog.Info("video_search: done", slog.String("query", res.Query), slog.Int("count", res.Count))
		return nil, engine.VideoSearchOutput{
			Query:    res.Query,
			Videos:   res.Videos,
			Count:    res.Count,
			Markdown: digest.FormatSearchDigest(res.Query, window, input.IsGlobal, res.Videos),
		}, nil
	})
}
