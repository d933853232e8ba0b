package engine

import (
	"errors"
	"fmt"
)

// Configuration errors. Credential checks run before the first dependent
// outbound call, so a missing key never costs a network round trip.
var (
	ErrNoGeminiKey  = errors.New("GEMINI_API_KEY environment variable is not set")
	ErrNoYouTubeKey = errors.New("YOUTUBE_API_KEY environment variable is not set")
)

// ErrEmptyGeneration reports a model response with no text payload.
var ErrEmptyGeneration = errors.New("empty response from Gemini")

// UpstreamError is an explicit error payload returned by the YouTube Data API
// (quota exhausted, invalid key, comments disabled, and so on).
type UpstreamError struct {
	Code    int
	Message string
}

func (e *UpstreamError) Error() string {
	return "YouTube API error: " + e.Message
}

// NotFoundError reports a video ID the Data API returned no items for.
type NotFoundError struct {
	VideoID string
}

func (e *NotFoundError) Error() string {
	return "Video not found: " + e.VideoID
}

// TranscriptError reports that no transcript could be produced for a video.
// Reason carries the upstream message verbatim when the provider supplied one.
type TranscriptError struct {
	VideoID string
	Reason  string
}

func (e *TranscriptError) Error() string {
	return fmt.Sprintf("transcript unavailable for %s: %s", e.VideoID, e.Reason)
}
