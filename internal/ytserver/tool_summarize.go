package ytserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerSummarize(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube/summarize",
		Description: "Summarize a YouTube video from its transcript. Returns 3-5 bullet points generated by Gemini.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.SummarizeInput) (*mcp.CallToolResult, engine.Envelope[engine.SummaryData], error) {
		var zero engine.Envelope[engine.SummaryData]
		if input.VideoID == "" {
			return nil, zero, fmt.Errorf("video_id is required")
		}

		summary, err := summarizeVideo(ctx, input.VideoID)
		if err != nil {
			return nil, zero, fmt.Errorf("Summarization error: %w", err)
		}

		return nil, engine.Wrap(engine.TypeSummary, engine.SummaryData{
			VideoID: input.VideoID,
			Summary: summary,
			Model:   engine.Cfg.GeminiModel,
		}), nil
	})
}

// summarizeVideo fetches the transcript and asks the model for a bullet-point
// summary. The credential check runs first so a missing key costs nothing.
func summarizeVideo(ctx context.Context, videoID string) (string, error) {
	if err := engine.CheckGeneration(); err != nil {
		return "", err
	}
	segments, err := youtube.FetchTranscript(ctx, videoID, nil)
	if err != nil {
		return "", err
	}
	transcript := engine.JoinSegmentText(segments)
	return engine.Generate(ctx, engine.BuildSummarizePrompt(transcript))
}
