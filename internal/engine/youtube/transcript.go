package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// Transcript fetching.
// Primary:  scrape watch page ytInitialPlayerResponse → caption timedtext XML
// Fallback: ANDROID Innertube /player → captionTracks (works when the watch
//           page serves a consent wall or bot check)

// playerResponseMarker marks the start of the player response JSON in watch page HTML.
const playerResponseMarker = "ytInitialPlayerResponse = "

// FetchTranscript fetches the timed transcript for a video. langs is the
// preference order of language codes; empty means English.
func FetchTranscript(ctx context.Context, videoID string, langs []string) ([]engine.Segment, error) {
	engine.IncrTranscript()
	if len(langs) == 0 {
		langs = []string{"en"}
	}

	segs, err := fetchViaWatchPage(ctx, videoID, langs)
	if err == nil {
		return segs, nil
	}
	slog.Warn("youtube: watch page transcript failed, trying player",
		slog.String("id", videoID), slog.Any("err", err))

	segs, err = fetchViaPlayer(ctx, videoID, langs)
	if err != nil {
		return nil, &engine.TranscriptError{VideoID: videoID, Reason: err.Error()}
	}
	return segs, nil
}

// fetchViaWatchPage scrapes the watch page HTML and extracts caption tracks
// from the embedded ytInitialPlayerResponse.
func fetchViaWatchPage(ctx context.Context, videoID string, langs []string) ([]engine.Segment, error) {
	watchURL := engine.Cfg.WatchBase + ytWatchPath + "?v=" + url.QueryEscape(videoID)

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(playerResponseMarker))
	if idx < 0 && engine.Cfg.Browser != nil {
		// Plain clients get a consent wall or bot check with no player JSON.
		// Retry once with the Chrome TLS fingerprint before giving up on the page.
		data, status, berr := engine.Cfg.Browser.Get(ctx, watchURL)
		if berr != nil {
			slog.Debug("youtube: browser watch page fetch failed", slog.Any("err", berr))
		} else if status == http.StatusOK {
			body = data
			idx = bytes.Index(body, []byte(playerResponseMarker))
		}
	}
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(playerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var player playerResponse
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return transcriptFromPlayer(ctx, player, langs)
}

// fetchViaPlayer uses the ANDROID Innertube /player endpoint.
func fetchViaPlayer(ctx context.Context, videoID string, langs []string) ([]engine.Segment, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	playerURL := engine.Cfg.WatchBase + ytPlayerPath + "?prettyPrint=false"
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, playerURL, bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return transcriptFromPlayer(ctx, player, langs)
}

// transcriptFromPlayer turns a player response into timed segments: pick the
// caption track for the requested languages, then fetch its timedtext XML.
func transcriptFromPlayer(ctx context.Context, player playerResponse, langs []string) ([]engine.Segment, error) {
	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", player.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no captions in player response")
	}
	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks")
	}
	track, err := pickTrack(tracks, langs)
	if err != nil {
		return nil, err
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack selects a usable caption track. The first requested language
// with any track wins; within that language a manually created track beats
// an auto-generated ("asr") one. Language codes must match exactly.
func pickTrack(tracks []captionTrack, langs []string) (captionTrack, error) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, errors.New("all caption tracks require PoToken")
	}

	for _, lang := range langs {
		var asr *captionTrack
		for i, t := range usable {
			if t.LanguageCode != lang {
				continue
			}
			if t.Kind != "asr" {
				return t, nil
			}
			if asr == nil {
				asr = &usable[i]
			}
		}
		if asr != nil {
			return *asr, nil
		}
	}
	return captionTrack{}, fmt.Errorf("no transcript found for any of the requested language codes %v", langs)
}

// fetchTimedText fetches and parses a timedtext XML caption URL into segments.
// Caption text keeps its formatting tags; only HTML entities are decoded.
func fetchTimedText(ctx context.Context, baseURL string) ([]engine.Segment, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, err
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segs := make([]engine.Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := html.UnescapeString(line.Text)
		if strings.TrimSpace(text) == "" {
			continue
		}
		segs = append(segs, engine.Segment{Text: text, Start: line.Start, Duration: line.Dur})
	}
	if len(segs) == 0 {
		return nil, errors.New("empty timedtext track")
	}
	return segs, nil
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by
// tracking brace depth. Escapes are consumed in pairs so a string ending in
// an escaped backslash can't keep the scanner stuck in-string.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	esc := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		if inStr {
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
