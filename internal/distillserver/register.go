package distillserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_distill/internal/digest"
	"github.com/anatolykoptev/go_distill/internal/engine"
)

// Deps are the components tool handlers call into.
type Deps struct {
	Service *digest.Service
	Reader  Reader
	Config  engine.Config
}

// RegisterTools registers all content tools on the given MCP server:
// content_extract, content_process, web_read, channel_videos, note_feed,
// video_search, batch_process.
func RegisterTools(server *mcp.Server, d Deps) {
	registerContentExtract(server, d)
	registerContentProcess(server, d)
	registerWebRead(server, d)
	registerChannelVideos(server, d)
	registerNoteFeed(server, d)
	registerVideoSearch(server, d)
	registerBatchProcess(server, d)
}

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 7
