// go_distill is a video, web and note.com content distillation MCP server.
//
// Extracts transcripts, page text and feeds, then turns them into Japanese
// Markdown knowledge assets through an OpenAI-compatible LLM.
// Runs as HTTP MCP server.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_distill/internal/digest"
	"github.com/anatolykoptev/go_distill/internal/distillserver"
	"github.com/anatolykoptev/go_distill/internal/engine"
	"github.com/anatolykoptev/go_distill/internal/engine/sources"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8892")
)

func main() {
	cfg := loadConfig()

	slog.Info("starting go_distill",
		slog.String("port", mcpPort),
		slog.Bool("youtube_api", cfg.YouTubeAPIKey != ""),
		slog.Bool("llm", cfg.LLMAPIKey != ""),
	)

	yt, err := sources.NewYouTube(context.Background(), cfg)
	if err != nil {
		slog.Error("youtube init failed", slog.Any("error", err))
		os.Exit(1)
	}
	web := sources.NewWeb(cfg)
	note := sources.NewNote(cfg, "")
	svc := digest.NewService(cfg, yt, web, note, engine.NewLLMSummarizer(cfg))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_distill",
		Version: version,
	}, nil)

	distillserver.RegisterTools(server, distillserver.Deps{
		Service: svc,
		Reader:  web,
		Config:  cfg,
	})
	slog.Info("tools registered", slog.Int("count", distillserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_distill",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func loadConfig() engine.Config {
	fetchTimeout := env.Duration("FETCH_TIMEOUT", 30*time.Second)
	return engine.Config{
		YouTubeAPIKey:   env.Str("YOUTUBE_API_KEY", ""),
		LLMAPIKey:       env.Str("LLM_API_KEY", ""),
		LLMAPIKeys:      env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:      env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:        env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMProModel:     env.Str("LLM_PRO_MODEL", "gemini-2.5-pro"),
		LLMTemperature:  env.Float("LLM_TEMPERATURE", 0.2),
		LLMMaxTokens:    env.Int("LLM_MAX_TOKENS", 16384),
		MaxContentChars: env.Int("MAX_CONTENT_CHARS", 100000),
		FetchTimeout:    fetchTimeout,
		Locale:          engine.JapanLocale(),
		HTTPClient:      engine.NewHTTPClient(fetchTimeout),
	}
}
