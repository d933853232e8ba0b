package ytserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerGetComments(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube/get-comments",
		Description: "Fetch top-level comments for a YouTube video (first page, up to 100). Each comment carries author, text, like count, and timestamps.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.CommentsInput) (*mcp.CallToolResult, engine.Envelope[engine.CommentsData], error) {
		var zero engine.Envelope[engine.CommentsData]
		if input.VideoID == "" {
			return nil, zero, fmt.Errorf("video_id is required")
		}

		comments, err := youtube.Comments(ctx, input.VideoID, input.MaxComments)
		if err != nil {
			return nil, zero, fmt.Errorf("Comments error: %w", err)
		}

		return nil, engine.Wrap(engine.TypeComments, engine.CommentsData{
			VideoID:    input.VideoID,
			Comments:   comments,
			TotalCount: len(comments),
		}), nil
	})
}
