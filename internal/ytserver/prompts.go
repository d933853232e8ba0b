package ytserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterPrompts registers the summarize and query prompt templates on the
// given MCP server. Unlike the tools, these return a filled-in prompt for the
// host's own model instead of calling Gemini.
func RegisterPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "youtube/summarize",
		Description: "Build a summarization prompt for a YouTube video from its metadata and timestamped transcript.",
		Arguments: []*mcp.PromptArgument{
			{Name: "video_id", Description: "YouTube video ID", Required: true},
		},
	}, handleSummarizePrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "youtube/query",
		Description: "Build a question-answering prompt for a YouTube video, constrained to its transcript.",
		Arguments: []*mcp.PromptArgument{
			{Name: "video_id", Description: "YouTube video ID", Required: true},
			{Name: "query", Description: "Question to ask about the video", Required: true},
		},
	}, handleQueryPrompt)
}

func handleSummarizePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	videoID := req.Params.Arguments["video_id"]
	if videoID == "" {
		return nil, fmt.Errorf("video_id argument is required")
	}

	metadata, transcript, err := videoPromptContext(ctx, videoID)
	if err != nil {
		return nil, err
	}

	return &mcp.GetPromptResult{
		Description: "Summarize YouTube video " + videoID,
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: engine.BuildSummaryTemplate(metadata, transcript)},
		}},
	}, nil
}

func handleQueryPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	videoID := req.Params.Arguments["video_id"]
	query := req.Params.Arguments["query"]
	if videoID == "" {
		return nil, fmt.Errorf("video_id argument is required")
	}
	if query == "" {
		return nil, fmt.Errorf("query argument is required")
	}

	metadata, transcript, err := videoPromptContext(ctx, videoID)
	if err != nil {
		return nil, err
	}

	return &mcp.GetPromptResult{
		Description: "Answer a question about YouTube video " + videoID,
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: engine.BuildQuestionTemplate(metadata, transcript, query)},
		}},
	}, nil
}

// videoPromptContext gathers the metadata block and timestamped transcript a
// prompt template embeds. The transcript is required; metadata degrades to a
// note when the Data API is unavailable (no key configured, say).
func videoPromptContext(ctx context.Context, videoID string) (metadata, transcript string, err error) {
	segments, err := youtube.FetchTranscript(ctx, videoID, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to retrieve transcript: %w", err)
	}

	video, err := youtube.VideoDetail(ctx, videoID)
	if err != nil {
		metadata = "Video metadata unavailable: " + err.Error()
	} else {
		metadata = formatVideoBlock(video)
	}
	return metadata, engine.FormatSegments(segments), nil
}
