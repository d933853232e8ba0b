// go_tube is a YouTube analysis MCP server.
//
// Exposes six MCP tools: youtube/get-transcript, youtube/summarize,
// youtube/query, youtube/search, youtube/get-comments, youtube/get-likes,
// plus transcript/metadata resources and prompt templates.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/ytserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8892")
)

func main() {
	initEngine()

	slog.Info("starting go_tube",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_tube",
		Version: version,
	}, nil)

	ytserver.RegisterTools(server)
	ytserver.RegisterResources(server)
	ytserver.RegisterPrompts(server)
	slog.Info("tools registered", slog.Int("count", 6))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_tube",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 300 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		GeminiAPIKey:          env.Str("GEMINI_API_KEY", ""),
		GeminiAPIKeyFallbacks: env.List("GEMINI_API_KEY_FALLBACKS", ""),
		GeminiModel:           env.Str("LLM_MODEL", "gemini-2.0-flash"),
		LLMAPIBase:            env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMTemperature:        env.Float("LLM_TEMPERATURE", 0.2),
		LLMMaxTokens:          env.Int("LLM_MAX_TOKENS", 8192),
		YouTubeAPIKey:         env.Str("YOUTUBE_API_KEY", ""),
		YouTubeAPIKeyFallback: env.Str("YOUTUBE_API_KEY_FALLBACK", ""),
		DataAPIBase:           env.Str("YOUTUBE_API_BASE", "https://www.googleapis.com/youtube/v3"),
		DataAPIRate:           env.Float("YOUTUBE_API_RATE", 0),
		WatchBase:             env.Str("YOUTUBE_WATCH_BASE", "https://www.youtube.com"),
		CacheMaxEntries:       env.Int("CACHE_MAX_ENTRIES", 500),
		CacheCleanupInterval:  env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	if c.GeminiAPIKey != "" {
		c.Generator = engine.NewGenerator(c)
		slog.Info("gemini client initialized", slog.String("model", c.GeminiModel))
	} else {
		slog.Warn("GEMINI_API_KEY not set, summarize/query tools will fail")
	}
	if c.YouTubeAPIKey == "" {
		slog.Warn("YOUTUBE_API_KEY not set, search/comments/likes tools will fail")
	}

	if bc, err := engine.NewBrowserClient(); err == nil {
		c.Browser = bc
	} else {
		slog.Warn("browser TLS client unavailable, watch page retry disabled", slog.Any("error", err))
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
