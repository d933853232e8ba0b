package engine

// --- Tool inputs ---

// TranscriptInput is the input for the youtube/get-transcript tool.
type TranscriptInput struct {
	VideoID   string   `json:"video_id" jsonschema:"YouTube video ID (the 11-character string from the video URL)"`
	Languages []string `json:"languages,omitempty" jsonschema:"Preferred transcript language codes in priority order (default: en)"`
}

// SummarizeInput is the input for the youtube/summarize tool.
type SummarizeInput struct {
	VideoID string `json:"video_id" jsonschema:"YouTube video ID to summarize"`
}

// QueryInput is the input for the youtube/query tool.
type QueryInput struct {
	VideoID string `json:"video_id" jsonschema:"YouTube video ID to ask about"`
	Query   string `json:"query" jsonschema:"Natural-language question about the video content"`
}

// SearchInput is the input for the youtube/search tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"Search terms to find videos"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (default 5, capped at 50)"`
}

// CommentsInput is the input for the youtube/get-comments tool.
type CommentsInput struct {
	VideoID     string `json:"video_id" jsonschema:"YouTube video ID to fetch comments for"`
	MaxComments int    `json:"max_comments,omitempty" jsonschema:"Maximum number of comments (default 100, capped at 100)"`
}

// LikesInput is the input for the youtube/get-likes tool.
type LikesInput struct {
	VideoID string `json:"video_id" jsonschema:"YouTube video ID to fetch the like count for"`
}

// --- Tool outputs ---

// Envelope is the uniform {type, data} wrapper every tool result is returned in.
type Envelope[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Envelope type tags, one per operation.
const (
	TypeTranscript    = "transcript"
	TypeSummary       = "summary"
	TypeQueryResponse = "query-response"
	TypeSearchResults = "search-results"
	TypeComments      = "comments"
	TypeStats         = "stats"
)

// Wrap builds the tagged result envelope for one operation.
func Wrap[T any](typ string, data T) Envelope[T] {
	return Envelope[T]{Type: typ, Data: data}
}

// TranscriptData is the youtube/get-transcript payload.
type TranscriptData struct {
	VideoID   string    `json:"video_id"`
	Segments  []Segment `json:"segments"`
	Languages []string  `json:"languages"`
}

// SummaryData is the youtube/summarize payload.
type SummaryData struct {
	VideoID string `json:"video_id"`
	Summary string `json:"summary"`
	Model   string `json:"model"`
}

// QueryResponseData is the youtube/query payload.
type QueryResponseData struct {
	VideoID  string `json:"video_id"`
	Query    string `json:"query"`
	Response string `json:"response"`
	Model    string `json:"model"`
}

// SearchResultsData is the youtube/search payload.
type SearchResultsData struct {
	Query        string  `json:"query"`
	Videos       []Video `json:"videos"`
	TotalResults int     `json:"total_results"`
}

// CommentsData is the youtube/get-comments payload.
type CommentsData struct {
	VideoID    string    `json:"video_id"`
	Comments   []Comment `json:"comments"`
	TotalCount int       `json:"total_count"`
}

// StatsData is the youtube/get-likes payload.
type StatsData struct {
	VideoID string `json:"video_id"`
	Likes   string `json:"likes"`
}

// --- Shared data types ---

// Segment is one timed caption unit.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Video is the enriched metadata record for one video. Count fields stay
// strings because the Data API serves them that way; absent counts are "0".
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channel_title"`
	ChannelID    string `json:"channel_id"`
	PublishedAt  string `json:"published_at"`
	Views        string `json:"views"`
	Likes        string `json:"likes"`
	Comments     string `json:"comments"`
	Duration     string `json:"duration"` // ISO 8601, e.g. PT1H2M3S
}

// Comment is one top-level comment thread entry. Field names keep the Data
// API's camelCase keys so clients can match them against the provider's docs.
type Comment struct {
	AuthorDisplayName     string `json:"authorDisplayName"`
	AuthorProfileImageURL string `json:"authorProfileImageUrl,omitempty"`
	AuthorChannelURL      string `json:"authorChannelUrl,omitempty"`
	TextDisplay           string `json:"textDisplay"`
	TextOriginal          string `json:"textOriginal"`
	LikeCount             int64  `json:"likeCount"`
	PublishedAt           string `json:"publishedAt"`
	UpdatedAt             string `json:"updatedAt,omitempty"`
}
