package engine

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"
)

// RetryConfig controls transient-failure retries on outbound HTTP calls.
// Attempts counts total tries including the first one.
type RetryConfig struct {
	Attempts int
	BaseWait time.Duration
	MaxWait  time.Duration
}

// DefaultRetryConfig suits both the Data API and the caption endpoints.
var DefaultRetryConfig = RetryConfig{
	Attempts: 4,
	BaseWait: 500 * time.Millisecond,
	MaxWait:  10 * time.Second,
}

// wait returns the backoff before try number attempt (1-based), doubling
// from BaseWait and capped at MaxWait.
func (rc RetryConfig) wait(attempt int) time.Duration {
	w := rc.BaseWait << (attempt - 1)
	if w > rc.MaxWait || w <= 0 {
		return rc.MaxWait
	}
	return w
}

// RetryDo runs fn until it succeeds, fails permanently, or the tries run
// out. Only transient errors are retried; context cancellation always wins.
func RetryDo[T any](ctx context.Context, rc RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	attempts := rc.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !transient(err) || attempt == attempts {
			break
		}

		wait := rc.wait(attempt)
		// Quota responses say when to come back; believe them up to MaxWait.
		var se *httpStatusError
		if errors.As(err, &se) && se.hasRetryAfter && se.RetryAfter <= rc.MaxWait {
			wait = se.RetryAfter
		}
		slog.Debug("retrying request",
			slog.Int("attempt", attempt), slog.Duration("wait", wait), slog.Any("error", err))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
	return zero, lastErr
}

// RetryHTTP wraps RetryDo for calls returning *http.Response: 429 and 5xx
// responses are drained and retried, anything else is handed back as-is.
func RetryHTTP(ctx context.Context, rc RetryConfig, fn func() (*http.Response, error)) (*http.Response, error) {
	return RetryDo(ctx, rc, func() (*http.Response, error) {
		resp, err := fn()
		if err != nil {
			return nil, err
		}
		switch resp.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			se := &httpStatusError{StatusCode: resp.StatusCode}
			if s := resp.Header.Get("Retry-After"); s != "" {
				if secs, aerr := strconv.Atoi(s); aerr == nil && secs >= 0 {
					se.RetryAfter = time.Duration(secs) * time.Second
					se.hasRetryAfter = true
				}
			}
			resp.Body.Close()
			return nil, se
		}
		return resp, nil
	})
}

// httpStatusError marks a retryable HTTP status, with the server's
// Retry-After delay when it sent one.
type httpStatusError struct {
	StatusCode    int
	RetryAfter    time.Duration
	hasRetryAfter bool
}

func (e *httpStatusError) Error() string {
	return "HTTP " + strconv.Itoa(e.StatusCode) + " " + http.StatusText(e.StatusCode)
}

// transient reports whether err is worth another try: retryable statuses,
// connection and DNS failures, and network timeouts. Everything else,
// decode errors and provider error payloads included, fails immediately.
func transient(err error) bool {
	var se *httpStatusError
	if errors.As(err, &se) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
