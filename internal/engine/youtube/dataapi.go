// Package youtube talks to YouTube: the Data API v3 for search, video
// metadata, and comments, plus the unofficial caption endpoints for
// transcripts.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

const (
	defaultSearchResults = 5
	maxSearchResults     = 50
	defaultMaxComments   = 100
	maxCommentsPerPage   = 100

	maxAPIResponse = 4 * 1024 * 1024
)

// --- Data API v3 response types ---

// apiError is the provider's explicit error payload.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type searchResponse struct {
	Error *apiError `json:"error"`
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type videosResponse struct {
	Error *apiError   `json:"error"`
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ChannelID    string `json:"channelId"`
		ChannelTitle string `json:"channelTitle"`
		PublishedAt  string `json:"publishedAt"`
		Thumbnails   struct {
			High struct {
				URL string `json:"url"`
			} `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type commentThreadsResponse struct {
	Error *apiError `json:"error"`
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet commentSnippet `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

type commentSnippet struct {
	AuthorDisplayName     string `json:"authorDisplayName"`
	AuthorProfileImageURL string `json:"authorProfileImageUrl"`
	AuthorChannelURL      string `json:"authorChannelUrl"`
	TextDisplay           string `json:"textDisplay"`
	TextOriginal          string `json:"textOriginal"`
	LikeCount             int64  `json:"likeCount"`
	PublishedAt           string `json:"publishedAt"`
	UpdatedAt             string `json:"updatedAt"`
}

// getJSON performs a rate-limited GET against a Data API endpoint and decodes
// the body into v. Error payloads arrive with non-200 statuses but are still
// JSON, so the body is decoded regardless of status.
func getJSON(ctx context.Context, endpoint string, params url.Values, v any) error {
	if err := engine.WaitDataAPI(ctx); err != nil {
		return err
	}

	apiURL := engine.Cfg.DataAPIBase + endpoint + "?" + params.Encode()
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return fmt.Errorf("youtube data API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponse))
	if err != nil {
		return fmt.Errorf("read youtube data API response: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &engine.UpstreamError{Code: resp.StatusCode, Message: "HTTP " + strconv.Itoa(resp.StatusCode)}
		}
		return fmt.Errorf("decode youtube data API response: %w", err)
	}
	return nil
}

// withKeyFallback runs fn with the primary API key, then once more with the
// fallback key when the provider reported an error (quota exhaustion being
// the usual case). Transport and not-found errors are returned as-is.
func withKeyFallback[T any](fn func(key string) (T, error)) (T, error) {
	var zero T
	if engine.Cfg.YouTubeAPIKey == "" {
		return zero, engine.ErrNoYouTubeKey
	}
	keys := []string{engine.Cfg.YouTubeAPIKey}
	if engine.Cfg.YouTubeAPIKeyFallback != "" {
		keys = append(keys, engine.Cfg.YouTubeAPIKeyFallback)
	}

	var lastErr error
	for _, key := range keys {
		out, err := fn(key)
		if err == nil {
			return out, nil
		}
		lastErr = err
		var upstream *engine.UpstreamError
		if !errors.As(err, &upstream) {
			return zero, err
		}
		slog.Debug("youtube: data API key failed, trying fallback", slog.Any("err", err))
	}
	return zero, lastErr
}

// Search runs the two-stage video search: /search for candidate IDs, then one
// batched /videos call enriching them with snippet, statistics, and duration.
// maxResults is clamped to [1, 50]; non-positive values use the default of 5.
func Search(ctx context.Context, query string, maxResults int) ([]engine.Video, error) {
	engine.IncrSearch()
	if maxResults <= 0 {
		maxResults = defaultSearchResults
	}
	if maxResults > maxSearchResults {
		maxResults = maxSearchResults
	}
	return withKeyFallback(func(key string) ([]engine.Video, error) {
		return searchWithKey(ctx, query, maxResults, key)
	})
}

func searchWithKey(ctx context.Context, query string, maxResults int, key string) ([]engine.Video, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", key)

	var stage1 searchResponse
	if err := getJSON(ctx, "/search", params, &stage1); err != nil {
		return nil, err
	}
	if stage1.Error != nil {
		return nil, &engine.UpstreamError{Code: stage1.Error.Code, Message: stage1.Error.Message}
	}

	ids := make([]string, 0, len(stage1.Items))
	for _, item := range stage1.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		// The /videos endpoint rejects an empty id list; skip stage 2 entirely.
		return []engine.Video{}, nil
	}
	return listVideos(ctx, strings.Join(ids, ","), "snippet,statistics,contentDetails", key)
}

// listVideos fetches /videos for a comma-separated id list, preserving the
// response order.
func listVideos(ctx context.Context, ids, part, key string) ([]engine.Video, error) {
	engine.IncrVideo()
	params := url.Values{}
	params.Set("part", part)
	params.Set("id", ids)
	params.Set("key", key)

	var resp videosResponse
	if err := getJSON(ctx, "/videos", params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &engine.UpstreamError{Code: resp.Error.Code, Message: resp.Error.Message}
	}

	videos := make([]engine.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, item.toVideo())
	}
	return videos, nil
}

// VideoDetail fetches one video's record. With no parts given it requests
// snippet, statistics, and contentDetails; get-likes asks for statistics only.
func VideoDetail(ctx context.Context, videoID string, parts ...string) (engine.Video, error) {
	part := "snippet,statistics,contentDetails"
	if len(parts) > 0 {
		part = strings.Join(parts, ",")
	}
	return withKeyFallback(func(key string) (engine.Video, error) {
		videos, err := listVideos(ctx, videoID, part, key)
		if err != nil {
			return engine.Video{}, err
		}
		if len(videos) == 0 {
			return engine.Video{}, &engine.NotFoundError{VideoID: videoID}
		}
		return videos[0], nil
	})
}

// Comments lists top-level comment threads for a video, first page only.
// maxComments is clamped to [1, 100]; non-positive values use the default of 100.
// A video with comments but none returned yields an empty slice, not an error.
func Comments(ctx context.Context, videoID string, maxComments int) ([]engine.Comment, error) {
	engine.IncrComments()
	if maxComments <= 0 {
		maxComments = defaultMaxComments
	}
	if maxComments > maxCommentsPerPage {
		maxComments = maxCommentsPerPage
	}
	return withKeyFallback(func(key string) ([]engine.Comment, error) {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("videoId", videoID)
		params.Set("maxResults", strconv.Itoa(maxComments))
		params.Set("key", key)

		var resp commentThreadsResponse
		if err := getJSON(ctx, "/commentThreads", params, &resp); err != nil {
			return nil, err
		}
		if resp.Error != nil {
			return nil, &engine.UpstreamError{Code: resp.Error.Code, Message: resp.Error.Message}
		}

		comments := make([]engine.Comment, 0, len(resp.Items))
		for _, item := range resp.Items {
			s := item.Snippet.TopLevelComment.Snippet
			comments = append(comments, engine.Comment{
				AuthorDisplayName:     s.AuthorDisplayName,
				AuthorProfileImageURL: s.AuthorProfileImageURL,
				AuthorChannelURL:      s.AuthorChannelURL,
				TextDisplay:           s.TextDisplay,
				TextOriginal:          s.TextOriginal,
				LikeCount:             s.LikeCount,
				PublishedAt:           s.PublishedAt,
				UpdatedAt:             s.UpdatedAt,
			})
		}
		return comments, nil
	})
}

func (v videoItem) toVideo() engine.Video {
	return engine.Video{
		ID:           v.ID,
		Title:        v.Snippet.Title,
		Description:  v.Snippet.Description,
		Thumbnail:    v.Snippet.Thumbnails.High.URL,
		ChannelTitle: v.Snippet.ChannelTitle,
		ChannelID:    v.Snippet.ChannelID,
		PublishedAt:  v.Snippet.PublishedAt,
		Views:        orZero(v.Statistics.ViewCount),
		Likes:        orZero(v.Statistics.LikeCount),
		Comments:     orZero(v.Statistics.CommentCount),
		Duration:     v.ContentDetails.Duration,
	}
}

// orZero substitutes the provider's implicit zero for an omitted count.
// Statistics sub-fields disappear when a video hides them.
func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
