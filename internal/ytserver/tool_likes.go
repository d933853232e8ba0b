package ytserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerGetLikes(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube/get-likes",
		Description: "Fetch the like count for a YouTube video.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.LikesInput) (*mcp.CallToolResult, engine.Envelope[engine.StatsData], error) {
		var zero engine.Envelope[engine.StatsData]
		if input.VideoID == "" {
			return nil, zero, fmt.Errorf("video_id is required")
		}

		video, err := youtube.VideoDetail(ctx, input.VideoID, "statistics")
		if err != nil {
			return nil, zero, fmt.Errorf("Likes error: %w", err)
		}

		return nil, engine.Wrap(engine.TypeStats, engine.StatsData{
			VideoID: input.VideoID,
			Likes:   video.Likes,
		}), nil
	})
}
