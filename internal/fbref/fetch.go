package fbref

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

const ua = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/127.0.0.0 Safari/537.36"

// browserHeaders is sent on every request; fbref blocks the Go default UA.
var browserHeaders = map[string]string{
	"User-Agent":                ua,
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Referer":                   "https://www.google.com/",
	"DNT":                       "1",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// Page is one fetched squad page. Non-200 pages are returned as-is; the caller decides.
type Page struct {
	URL        string
	StatusCode int
	Body       string
}

// OK reports whether the page came back with 200.
func (p *Page) OK() bool { return p.StatusCode == http.StatusOK }

// NetworkError is a transport failure: DNS, connect, timeout, truncated body.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Fetcher issues a single GET per call. There is no retry.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher whose client uses the given timeout (DefaultTimeout if <= 0).
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch GETs url with the browser header set.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	return &Page{URL: url, StatusCode: resp.StatusCode, Body: string(b)}, nil
}
