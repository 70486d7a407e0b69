package httpclient

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout         = 30 * time.Second
	DefaultIdleConnTimeout = 90 * time.Second
	MaxIdleConnsPerHost    = 4

	UserAgent = "TVMix/1.0 (+playlist-generator)"
)

var defaultClient *http.Client

// limiter spaces out consecutive requests against the iptv-org CDN and the
// catalog hosts. The pipeline is strictly sequential, so this only inserts a
// short pause between fetches; it never queues concurrent work.
var limiter = rate.NewLimiter(rate.Every(250*time.Millisecond), 1)

func init() {
	defaultClient = &http.Client{
		Timeout: DefaultTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        16,
			MaxIdleConnsPerHost: MaxIdleConnsPerHost,
			IdleConnTimeout:     DefaultIdleConnTimeout,
		},
	}
}

// Default returns the shared tuned HTTP client used by the feed and catalog fetchers.
func Default() *http.Client {
	return defaultClient
}

// WithTimeout returns a client with the given timeout and the same transport as Default (or a copy).
func WithTimeout(timeout time.Duration) *http.Client {
	t, ok := defaultClient.Transport.(*http.Transport)
	if !ok {
		return &http.Client{Timeout: timeout}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: t.Clone(),
	}
}

// GetBody issues a GET for url and returns the decoded response body.
// Accept-Encoding is negotiated explicitly (gzip, br) and reversed here, so
// callers always see plain bytes. A non-2xx status is an error.
func GetBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = defaultClient
	}
	if err := limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get %s: build request: %w", url, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept-Encoding", "gzip, br")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: HTTP %d", url, resp.StatusCode)
	}
	body, err := DecodeBody(resp)
	if err != nil {
		return nil, fmt.Errorf("get %s: decode body: %w", url, err)
	}
	return body, nil
}

// DecodeBody reads resp.Body, reversing gzip or brotli content encoding.
// Setting Accept-Encoding ourselves disables the transport's transparent
// decompression, so both encodings must be handled here.
func DecodeBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case "br":
		r = brotli.NewReader(resp.Body)
	}
	return io.ReadAll(r)
}
