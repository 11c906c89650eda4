// Package fetch downloads listing pages and hands back UTF-8 text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

const defaultUserAgent = "uninews-crawler/1.0"

// Fetcher downloads listing pages with a bounded timeout.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a Fetcher. An empty userAgent falls back to the default.
func New(timeout time.Duration, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get fetches url and returns the response body decoded to UTF-8. Many
// university sites still serve GBK/GB2312, so the body is run through a
// charset-aware reader. Any transport error or non-200 status is an error;
// callers treat it as "no data for this site" and move on.
func (f *Fetcher) Get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(body), nil
}
