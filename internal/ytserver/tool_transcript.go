package ytserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/anatolykoptev/go_tube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerGetTranscript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube/get-transcript",
		Description: "Retrieve the transcript/subtitles for a YouTube video as timed segments. Supports a language preference list; manually created captions are preferred over auto-generated ones.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, engine.Envelope[engine.TranscriptData], error) {
		var zero engine.Envelope[engine.TranscriptData]
		if input.VideoID == "" {
			return nil, zero, fmt.Errorf("video_id is required")
		}

		segments, err := youtube.FetchTranscript(ctx, input.VideoID, toolutil.NormLangs(input.Languages))
		if err != nil {
			return nil, zero, fmt.Errorf("Transcript error: %w", err)
		}

		// The payload echoes the request as the caller phrased it; only the
		// fetch uses the normalized list.
		echo := input.Languages
		if len(echo) == 0 {
			echo = []string{"en"}
		}
		return nil, engine.Wrap(engine.TypeTranscript, engine.TranscriptData{
			VideoID:   input.VideoID,
			Segments:  segments,
			Languages: echo,
		}), nil
	})
}
