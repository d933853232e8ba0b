package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	GeminiAPIKey          string
	GeminiAPIKeyFallbacks []string
	GeminiModel           string
	LLMAPIBase            string
	LLMTemperature        float64
	LLMMaxTokens          int
	YouTubeAPIKey         string
	YouTubeAPIKeyFallback string
	DataAPIBase           string
	DataAPIRate           float64 // Data API requests/sec; 0 = unlimited
	WatchBase             string  // base URL for watch pages and Innertube endpoints
	CacheMaxEntries       int
	CacheCleanupInterval  time.Duration
	HTTPClient            *http.Client
	Generator             TextGenerator  // nil = summarize/query disabled
	Browser               *BrowserClient // nil = no TLS-fingerprint retry on watch pages
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (youtube).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
	initDataLimiter(c.DataAPIRate)
}
