package infra

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

// Yahoo blocks default Go user agents, so requests present a desktop
// browser identity.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	httpClient  = &http.Client{Timeout: 30 * time.Second}
	userAgent   = defaultUserAgent
	maxAttempts = 4
	baseBackoff = 2 * time.Second
)

// SetHTTPTimeout overrides the shared client timeout. Call once at startup.
func SetHTTPTimeout(d time.Duration) {
	httpClient = &http.Client{Timeout: d}
}

// SetHTTPRetries overrides how many attempts DoGet makes per request.
func SetHTTPRetries(n int) {
	if n > 0 {
		maxAttempts = n
	}
}

// SetUserAgent overrides the User-Agent presented to upstream vendors.
func SetUserAgent(ua string) {
	if ua != "" {
		userAgent = ua
	}
}

// retryStatus reports whether a status code is worth retrying: upstream
// throttling and transient gateway errors.
func retryStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// DoGet performs a GET request with browser headers and exponential
// backoff on throttling or transient server errors. It returns the
// response body (caller closes) and the final status code. Status codes
// outside 2xx after all retries are an error.
func DoGet(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, int, error) {
	backoff := baseBackoff

	var lastStatus int
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			// Jitter spreads retries from parallel workers apart.
			sleep := backoff + time.Duration(rand.Int63n(int64(backoff)))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(sleep):
			}
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, 0, ctx.Err()
			}
			lastStatus = 0
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp.Body, resp.StatusCode, nil
		}

		lastStatus = resp.StatusCode
		resp.Body.Close()
		if !retryStatus(resp.StatusCode) {
			return nil, resp.StatusCode, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
		}
	}

	return nil, lastStatus, fmt.Errorf("GET %s: giving up after %d attempts (last status %d)",
		url, maxAttempts, lastStatus)
}
