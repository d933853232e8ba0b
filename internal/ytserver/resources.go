package ytserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	transcriptURITemplate = "youtube://transcripts/{video_id}"
	videoURITemplate      = "youtube://videos/{video_id}"
)

// RegisterResources registers the transcript and video metadata resource
// templates on the given MCP server.
func RegisterResources(server *mcp.Server) {
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "youtube-transcript",
		Description: "Timestamped plain-text transcript of a YouTube video, one \"[start-end] text\" line per caption segment.",
		MIMEType:    "text/plain",
		URITemplate: transcriptURITemplate,
	}, handleTranscriptResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "youtube-video",
		Description: "Formatted metadata block for a YouTube video: title, channel, description, duration, and engagement counts.",
		MIMEType:    "text/plain",
		URITemplate: videoURITemplate,
	}, handleVideoResource)
}

func handleTranscriptResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	videoID := resourceVideoID(req.Params.URI)
	if videoID == "" {
		return nil, fmt.Errorf("invalid transcript resource URI: %s", req.Params.URI)
	}

	segments, err := youtube.FetchTranscript(ctx, videoID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transcript: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     engine.FormatSegments(segments),
		}},
	}, nil
}

func handleVideoResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	videoID := resourceVideoID(req.Params.URI)
	if videoID == "" {
		return nil, fmt.Errorf("invalid video resource URI: %s", req.Params.URI)
	}

	video, err := youtube.VideoDetail(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve video metadata: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     formatVideoBlock(video),
		}},
	}, nil
}

// resourceVideoID extracts the trailing path element of a youtube:// URI.
func resourceVideoID(uri string) string {
	idx := strings.LastIndexByte(uri, '/')
	if idx < 0 || idx == len(uri)-1 {
		return ""
	}
	return uri[idx+1:]
}

// formatVideoBlock renders video metadata as a readable text block, shared by
// the video resource and the prompt surfaces.
func formatVideoBlock(v engine.Video) string {
	return fmt.Sprintf(`Title: %s
Channel: %s
Published: %s
Duration: %s
Views: %s
Likes: %s
Comments: %s
Description: %s`,
		v.Title, v.ChannelTitle, v.PublishedAt, v.Duration,
		v.Views, v.Likes, v.Comments, v.Description)
}
