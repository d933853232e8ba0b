package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

func TestNeedsPoToken(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/api/timedtext?v=abc&lang=en", false},
		{"https://www.youtube.com/api/timedtext?v=abc&exp=xpe&lang=en", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := needsPoToken(tt.url); got != tt.want {
			t.Errorf("needsPoToken(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestPickTrack(t *testing.T) {
	manualEN := captionTrack{BaseURL: "http://x/en", LanguageCode: "en"}
	asrEN := captionTrack{BaseURL: "http://x/en-asr", LanguageCode: "en", Kind: "asr"}
	manualDE := captionTrack{BaseURL: "http://x/de", LanguageCode: "de"}
	enGB := captionTrack{BaseURL: "http://x/en-GB", LanguageCode: "en-GB"}
	poEN := captionTrack{BaseURL: "http://x/en?a=b&exp=xpe", LanguageCode: "en"}

	tests := []struct {
		name    string
		tracks  []captionTrack
		langs   []string
		want    string // BaseURL of the expected pick
		wantErr string
	}{
		{"manual beats asr", []captionTrack{asrEN, manualEN}, []string{"en"}, "http://x/en", ""},
		{"asr when nothing else", []captionTrack{asrEN}, []string{"en"}, "http://x/en-asr", ""},
		{"preference order wins", []captionTrack{manualEN, manualDE}, []string{"de", "en"}, "http://x/de", ""},
		{"first lang asr beats later lang manual", []captionTrack{asrEN, manualDE}, []string{"en", "de"}, "http://x/en-asr", ""},
		{"lang without tracks falls through", []captionTrack{manualDE}, []string{"en", "de"}, "http://x/de", ""},
		{"exact code only", []captionTrack{enGB}, []string{"en"}, "", "no transcript found for any of the requested language codes [en]"},
		{"potoken track skipped", []captionTrack{poEN, manualDE}, []string{"en", "de"}, "http://x/de", ""},
		{"all potoken", []captionTrack{poEN}, []string{"en"}, "", "all caption tracks require PoToken"},
		{"no match", []captionTrack{manualDE}, []string{"fr", "es"}, "", "no transcript found for any of the requested language codes [fr es]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, err := pickTrack(tt.tracks, tt.langs)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("pickTrack() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("pickTrack() error: %v", err)
			}
			if track.BaseURL != tt.want {
				t.Errorf("pickTrack() = %q, want %q", track.BaseURL, tt.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", `{"a":1};var x`, `{"a":1}`},
		{"nested", `{"a":{"b":{}}} trailing`, `{"a":{"b":{}}}`},
		{"braces in strings", `{"a":"}{"}rest`, `{"a":"}{"}`},
		{"escaped quote", `{"a":"say \"hi\" {"}tail`, `{"a":"say \"hi\" {"}`},
		{"string ends in escaped backslash", `{"a":"c:\\"}tail`, `{"a":"c:\\"}`},
		{"escaped backslash then brace in string", `{"a":"\\}","b":1}rest`, `{"a":"\\}","b":1}`},
		{"not an object", `[1,2]`, ""},
		{"truncated", `{"a":`, ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON([]byte(tt.in))
			if string(got) != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// watchHTML wraps a player response JSON the way the watch page embeds it.
func watchHTML(playerJSON string) string {
	return `<!DOCTYPE html><html><head><script>var ytInitialPlayerResponse = ` +
		playerJSON + `;var ytcfg = {};</script></head><body></body></html>`
}

func playerWithTrack(baseURL, lang, kind string) string {
	track := map[string]string{"baseUrl": baseURL, "languageCode": lang}
	if kind != "" {
		track["kind"] = kind
	}
	b, _ := json.Marshal(map[string]any{
		"playabilityStatus": map[string]string{"status": "OK"},
		"captions": map[string]any{
			"playerCaptionsTracklistRenderer": map[string]any{
				"captionTracks": []any{track},
			},
		},
	})
	return string(b)
}

const timedtextXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0" dur="2.5">Hello everyone</text>` +
	`<text start="2.5" dur="1.5">Don&amp;#39;t stop</text>` +
	`<text start="4" dur="1">   </text>` +
	`<text start="5" dur="2">&lt;i&gt;music&lt;/i&gt;</text>` +
	`</transcript>`

func TestFetchTranscriptWatchPage(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("v"); got != "abc123" {
			t.Errorf("watch page v param = %q", got)
		}
		fmt.Fprint(w, watchHTML(playerWithTrack(srv.URL+"/api/timedtext?lang=en", "en", "asr")))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, timedtextXML)
	})
	engine.Init(engine.Config{WatchBase: srv.URL, HTTPClient: srv.Client()})

	segs, err := FetchTranscript(context.Background(), "abc123", []string{"en"})
	if err != nil {
		t.Fatalf("FetchTranscript error: %v", err)
	}
	want := []engine.Segment{
		{Text: "Hello everyone", Start: 0, Duration: 2.5},
		{Text: "Don't stop", Start: 2.5, Duration: 1.5},
		{Text: "<i>music</i>", Start: 5, Duration: 2},
	}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d: %+v", len(segs), len(want), segs)
	}
	for i, w := range want {
		if segs[i] != w {
			t.Errorf("segment[%d] = %+v, want %+v", i, segs[i], w)
		}
	}
}

func TestFetchTranscriptLanguagePreference(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		player, _ := json.Marshal(map[string]any{
			"captions": map[string]any{
				"playerCaptionsTracklistRenderer": map[string]any{
					"captionTracks": []any{
						map[string]string{"baseUrl": srv.URL + "/tt/de", "languageCode": "de"},
						map[string]string{"baseUrl": srv.URL + "/tt/en", "languageCode": "en"},
					},
				},
			},
		})
		fmt.Fprint(w, watchHTML(string(player)))
	})
	mux.HandleFunc("/tt/de", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<transcript><text start="0" dur="1">Hallo</text></transcript>`)
	})
	mux.HandleFunc("/tt/en", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<transcript><text start="0" dur="1">Hello</text></transcript>`)
	})
	engine.Init(engine.Config{WatchBase: srv.URL, HTTPClient: srv.Client()})

	// Empty preference defaults to English.
	segs, err := FetchTranscript(context.Background(), "abc123", nil)
	if err != nil {
		t.Fatalf("FetchTranscript error: %v", err)
	}
	if len(segs) != 1 || segs[0].Text != "Hello" {
		t.Errorf("default language segments = %+v, want Hello", segs)
	}

	segs, err = FetchTranscript(context.Background(), "abc123", []string{"de", "en"})
	if err != nil {
		t.Fatalf("FetchTranscript error: %v", err)
	}
	if len(segs) != 1 || segs[0].Text != "Hallo" {
		t.Errorf("de-preference segments = %+v, want Hallo", segs)
	}
}

func TestFetchTranscriptPlayerFallback(t *testing.T) {
	var playerCalls int
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		// Consent wall: no embedded player response.
		fmt.Fprint(w, `<html><body>Before you continue to YouTube</body></html>`)
	})
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		playerCalls++
		if r.Method != http.MethodPost {
			t.Errorf("player request method = %s", r.Method)
		}
		if got := r.Header.Get("X-Youtube-Client-Name"); got != "3" {
			t.Errorf("X-Youtube-Client-Name = %q, want 3", got)
		}
		var req innertubeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode player request: %v", err)
		}
		if req.VideoID != "abc123" || req.Context.Client.ClientName != "ANDROID" {
			t.Errorf("unexpected player request: %+v", req)
		}
		fmt.Fprint(w, playerWithTrack(srv.URL+"/api/timedtext", "en", ""))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<transcript><text start="1" dur="2">From player</text></transcript>`)
	})
	engine.Init(engine.Config{WatchBase: srv.URL, HTTPClient: srv.Client()})

	segs, err := FetchTranscript(context.Background(), "abc123", []string{"en"})
	if err != nil {
		t.Fatalf("FetchTranscript error: %v", err)
	}
	if playerCalls != 1 {
		t.Errorf("player endpoint called %d times, want 1", playerCalls)
	}
	if len(segs) != 1 || segs[0].Text != "From player" {
		t.Errorf("segments = %+v", segs)
	}
}

func TestFetchTranscriptUnavailable(t *testing.T) {
	unavailable := `{"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}}`
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, watchHTML(unavailable))
	})
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, unavailable)
	})
	engine.Init(engine.Config{WatchBase: srv.URL, HTTPClient: srv.Client()})

	_, err := FetchTranscript(context.Background(), "gone12345", []string{"en"})
	var te *engine.TranscriptError
	if !errors.As(err, &te) {
		t.Fatalf("got %v, want TranscriptError", err)
	}
	if te.VideoID != "gone12345" {
		t.Errorf("VideoID = %q", te.VideoID)
	}
	if !strings.Contains(te.Reason, "Video unavailable") {
		t.Errorf("Reason = %q, want upstream reason preserved", te.Reason)
	}
	want := "transcript unavailable for gone12345: captions unavailable: Video unavailable"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestFetchTranscriptEmptyTrack(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, watchHTML(playerWithTrack(srv.URL+"/api/timedtext", "en", "")))
	})
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, playerWithTrack(srv.URL+"/api/timedtext", "en", ""))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<transcript><text start="0" dur="1">   </text></transcript>`)
	})
	engine.Init(engine.Config{WatchBase: srv.URL, HTTPClient: srv.Client()})

	_, err := FetchTranscript(context.Background(), "abc123", []string{"en"})
	var te *engine.TranscriptError
	if !errors.As(err, &te) {
		t.Fatalf("got %v, want TranscriptError", err)
	}
	if !strings.Contains(te.Reason, "empty timedtext track") {
		t.Errorf("Reason = %q", te.Reason)
	}
}
