package distillserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_distill/internal/engine"
	"github.com/anatolykoptev/go_distill/internal/toolutil"
)

// maxBatchURLs bounds one batch_process call.
const maxBatchURLs = 20

func registerBatchProcess(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "batch_process",
		Description: "Summarize many YouTube videos or web pages at once with the fast model and combine them into one Markdown document for NotebookLM. Failed URLs appear inline as error blocks; output order follows input order.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.BatchProcessInput) (*mcp.CallToolResult, engine.BatchResult, error) {
		urls := toolutil.CleanURLs(input.URLs)
		if len(urls) == 0 {
			return nil, engine.BatchResult{}, fmt.Errorf("urls is required")
		}
		if len(urls) > maxBatchURLs {
			return nil, engine.BatchResult{}, fmt.Errorf("too many urls: %d (max %d)", len(urls), maxBatchURLs)
		}
		mode := engine.ParseOutputMode(input.Mode, engine.ModeNotebookSource)
		return nil, d.Service.ProcessBatch(ctx, urls, mode), nil
	})
}
