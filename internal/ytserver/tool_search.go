package ytserver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/anatolykoptev/go_tube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerSearch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube/search",
		Description: "Search YouTube for videos matching a query. Returns up to 50 results with full metadata: title, description, channel, views, likes, comment count, and duration. Each search costs 100 Data API quota units.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.SearchInput) (*mcp.CallToolResult, engine.Envelope[engine.SearchResultsData], error) {
		var zero engine.Envelope[engine.SearchResultsData]
		if input.Query == "" {
			return nil, zero, fmt.Errorf("query is required")
		}

		cacheKey := engine.CacheKey("youtube_search", input.Query, strconv.Itoa(input.MaxResults))
		if out, ok := toolutil.CacheLoadJSON[engine.Envelope[engine.SearchResultsData]](ctx, cacheKey); ok {
			return nil, out, nil
		}

		videos, err := youtube.Search(ctx, input.Query, input.MaxResults)
		if err != nil {
			return nil, zero, fmt.Errorf("Search error: %w", err)
		}

		out := engine.Wrap(engine.TypeSearchResults, engine.SearchResultsData{
			Query:        input.Query,
			Videos:       videos,
			TotalResults: len(videos),
		})
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
