package ytserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerQuery(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube/query",
		Description: "Ask a natural-language question about a YouTube video. Gemini answers using only the video's transcript and says so when the transcript doesn't cover the question.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.QueryInput) (*mcp.CallToolResult, engine.Envelope[engine.QueryResponseData], error) {
		var zero engine.Envelope[engine.QueryResponseData]
		if input.VideoID == "" {
			return nil, zero, fmt.Errorf("video_id is required")
		}
		if input.Query == "" {
			return nil, zero, fmt.Errorf("query is required")
		}

		response, err := queryVideo(ctx, input.VideoID, input.Query)
		if err != nil {
			return nil, zero, fmt.Errorf("Query error: %w", err)
		}

		return nil, engine.Wrap(engine.TypeQueryResponse, engine.QueryResponseData{
			VideoID:  input.VideoID,
			Query:    input.Query,
			Response: response,
			Model:    engine.Cfg.GeminiModel,
		}), nil
	})
}

// queryVideo answers a question from the video's transcript alone.
func queryVideo(ctx context.Context, videoID, question string) (string, error) {
	if err := engine.CheckGeneration(); err != nil {
		return "", err
	}
	segments, err := youtube.FetchTranscript(ctx, videoID, nil)
	if err != nil {
		return "", err
	}
	transcript := engine.JoinSegmentText(segments)
	return engine.Generate(ctx, engine.BuildQueryPrompt(transcript, question))
}
