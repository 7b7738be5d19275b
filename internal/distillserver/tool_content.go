package distillserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_distill/internal/digest"
	"github.com/anatolykoptev/go_distill/internal/engine"
	"github.com/anatolykoptev/go_distill/internal/toolutil"
)

// Reader renders a page as Markdown.
type Reader interface {
	ReadMarkdown(ctx context.Context, rawURL string, maxChars int) (title, content string, err error)
}

func registerContentExtract(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "content_extract",
		Description: "Extract the raw text of a YouTube video (transcript, or title and description when no captions exist) or a web page. Channel URLs and @handles resolve to the channel's newest video. Returns title, content, thumbnail, source_type and is_fallback_content.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ContentExtractInput) (*mcp.CallToolResult, engine.ContentItem, error) {
		if err := toolutil.Require("url", input.URL); err != nil {
			return nil, engine.ContentItem{}, err
		}
		item, err := d.Service.Extract(ctx, input.URL)
		if err != nil {
			return nil, engine.ContentItem{}, err
		}
		return nil, item, nil
	})
}

func registerContentProcess(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "content_process",
		Description: "Extract a YouTube video or web page and turn it into a Japanese Markdown knowledge asset. Modes: report (monetization report with Mermaid diagram), article (long-form paid-note draft), notebook-source (fact-focused source for NotebookLM/RAG).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ContentProcessInput) (*mcp.CallToolResult, engine.ContentProcessOutput, error) {
		if err := toolutil.Require("url", input.URL); err != nil {
			return nil, engine.ContentProcessOutput{}, err
		}
		res, err := d.Service.Process(ctx, digest.ProcessRequest{
			URL:       input.URL,
			FocusHint: input.FocusHint,
			Model:     input.Model,
			Mode:      engine.ParseOutputMode(input.Mode, engine.ModeReport),
		})
		if err != nil {
			return nil, engine.ContentProcessOutput{}, err
		}
		return nil, engine.ContentProcessOutput{
			Content:           res.Content,
			Title:             res.Title,
			Thumbnail:         res.Thumbnail,
			SourceType:        res.SourceType,
			IsFallbackContent: res.IsFallbackContent,
		}, nil
	})
}

func registerWebRead(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "web_read",
		Description: "Fetch a web page and return its main article as clean Markdown (reader view). Falls back to the page's main text when no article is detected.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.WebReadInput) (*mcp.CallToolResult, engine.WebReadOutput, error) {
		if err := toolutil.Require("url", input.URL); err != nil {
			return nil, engine.WebReadOutput{}, err
		}
		limit := toolutil.ClampInt(input.MaxChars, d.Config.MaxContentChars, d.Config.MaxContentChars)
		title, content, err := d.Reader.ReadMarkdown(ctx, input.URL, limit)
		if err != nil {
			return nil, engine.WebReadOutput{}, err
		}
		return nil, engine.WebReadOutput{URL: input.URL, Title: title, Content: content}, nil
	})
}
