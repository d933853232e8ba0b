package engine

import (
	"context"
	"fmt"
	"io"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// BrowserClient fetches pages with a Chrome 131 TLS fingerprint. YouTube
// serves consent walls and bot checks to clients whose JA3 hash looks
// automated; the watch page scrape falls back to this client when a plain
// fetch comes back without the embedded player JSON.
type BrowserClient struct {
	client tls_client.HttpClient
}

// NewBrowserClient builds the Chrome-impersonating client. Construction can
// fail when the TLS profile is unavailable; callers treat a nil client as
// "no browser retry".
func NewBrowserClient() (*BrowserClient, error) {
	client, err := tls_client.NewHttpClient(nil,
		tls_client.WithTimeoutSeconds(15),
		tls_client.WithClientProfile(profiles.Chrome_131),
		tls_client.WithNotFollowRedirects(),
		tls_client.WithCookieJar(tls_client.NewCookieJar()),
		tls_client.WithInsecureSkipVerify(),
	)
	if err != nil {
		return nil, fmt.Errorf("tls-client init: %w", err)
	}
	return &BrowserClient{client: client}, nil
}

// Get fetches url as Chrome would: fingerprinted TLS, browser headers, and
// Chrome's header order. Returns the body, the status code, and any
// transport error.
func (bc *BrowserClient) Get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("accept-language", "en-US,en;q=0.9")
	req.Header.Set("accept-encoding", "gzip, deflate, br")
	req.Header.Set("user-agent", RandomUserAgent())
	// The header order is part of the fingerprint.
	req.Header[fhttp.HeaderOrderKey] = []string{
		"accept",
		"accept-language",
		"accept-encoding",
		"referer",
		"cookie",
		"user-agent",
	}

	resp, err := bc.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("tls request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
