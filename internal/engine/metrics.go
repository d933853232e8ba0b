package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests     atomic.Int64
	VideoRequests      atomic.Int64
	CommentRequests    atomic.Int64
	TranscriptRequests atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"search_requests":     metrics.SearchRequests.Load(),
		"video_requests":      metrics.VideoRequests.Load(),
		"comment_requests":    metrics.CommentRequests.Load(),
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"search_requests", "video_requests", "comment_requests",
		"transcript_requests",
		"llm_calls", "llm_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the youtube sub-package.
func IncrSearch()     { metrics.SearchRequests.Add(1) }
func IncrVideo()      { metrics.VideoRequests.Add(1) }
func IncrComments()   { metrics.CommentRequests.Add(1) }
func IncrTranscript() { metrics.TranscriptRequests.Add(1) }

func incrLLMCalls()  { metrics.LLMCalls.Add(1) }
func incrLLMErrors() { metrics.LLMErrors.Add(1) }
