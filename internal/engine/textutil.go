package engine

import (
	"fmt"
	"math/rand"
	"strings"
)

// User-Agent strings used across HTTP clients.
const (
	UserAgentBot    = "GoTube/1.0"
	UserAgentChrome = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// browserUserAgents is a small rotation pool for watch page requests.
var browserUserAgents = []string{
	UserAgentChrome,
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Safari/605.1.15",
}

// RandomUserAgent returns a browser User-Agent from the rotation pool.
func RandomUserAgent() string {
	return browserUserAgents[rand.Intn(len(browserUserAgents))] //nolint:gosec // non-cryptographic use
}

// JoinSegmentText concatenates caption segments with single spaces. The
// result is the transcript string handed to the model.
func JoinSegmentText(segs []Segment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}

// FormatSegments renders segments one per line as "[start-end] text" with
// two-decimal timestamps, for resources and prompt surfaces.
func FormatSegments(segs []Segment) string {
	var sb strings.Builder
	for i, s := range segs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "[%.2f-%.2f] %s", s.Start, s.Start+s.Duration, s.Text)
	}
	return sb.String()
}
