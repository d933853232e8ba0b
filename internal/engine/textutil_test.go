package engine

import (
	"strings"
	"testing"
)

func TestJoinSegmentText(t *testing.T) {
	tests := []struct {
		name string
		segs []Segment
		want string
	}{
		{"empty", nil, ""},
		{"single", []Segment{{Text: "Hello"}}, "Hello"},
		{"multiple", []Segment{{Text: "Hello"}, {Text: "world"}}, "Hello world"},
		{"keeps inner newlines", []Segment{{Text: "line\nbreak"}, {Text: "next"}}, "line\nbreak next"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinSegmentText(tt.segs); got != tt.want {
				t.Errorf("JoinSegmentText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatSegments(t *testing.T) {
	segs := []Segment{
		{Text: "Hello", Start: 0, Duration: 2.5},
		{Text: "world", Start: 2.5, Duration: 1.25},
	}
	want := "[0.00-2.50] Hello\n[2.50-3.75] world"
	if got := FormatSegments(segs); got != want {
		t.Errorf("FormatSegments() = %q, want %q", got, want)
	}

	if got := FormatSegments(nil); got != "" {
		t.Errorf("FormatSegments(nil) = %q, want empty", got)
	}
}

func TestRandomUserAgent(t *testing.T) {
	for i := 0; i < 20; i++ {
		ua := RandomUserAgent()
		if !strings.HasPrefix(ua, "Mozilla/5.0") {
			t.Fatalf("unexpected user agent: %q", ua)
		}
	}
}
