package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxBodyBytes       = 8 << 20
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPConfig controls how the HTTP feed reaches upstream.
type HTTPConfig struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPFeed reads a JSON array of player objects from a URL.
type HTTPFeed struct {
	url        string
	apiKey     string
	httpClient httpDoer
}

// NewHTTPFeed constructs an HTTP feed.
func NewHTTPFeed(cfg HTTPConfig) *HTTPFeed {
	var client httpDoer = cfg.HTTPClient
	if cfg.HTTPClient == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPFeed{
		url:        strings.TrimSpace(cfg.URL),
		apiKey:     cfg.APIKey,
		httpClient: client,
	}
}

// FetchPlayers downloads and parses the feed.
func (f *HTTPFeed) FetchPlayers(ctx context.Context) (Batch, error) {
	if f == nil || f.url == "" {
		return Batch{}, ErrFeedUnavailable
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return Batch{}, err
	}
	req.Header.Set("Accept", "application/json")
	if f.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Batch{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return Batch{}, &RateLimitError{
			Feed:       "http",
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Batch{}, fmt.Errorf("player feed: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return Batch{}, err
	}
	if len(data) > maxBodyBytes {
		return Batch{}, fmt.Errorf("player feed: body exceeds %d bytes", maxBodyBytes)
	}
	return ParseBatch(data)
}

func parseRetryAfter(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
