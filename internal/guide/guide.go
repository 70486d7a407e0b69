// Package guide sends the enriched channel list to the external
// guide-generation service and normalizes the response into the gzip guide
// artifact. The service aggregates multiple upstream schedules per request,
// so the call uses a generous timeout.
package guide

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tvmix/tv-mix/internal/enrich"
	"github.com/tvmix/tv-mix/internal/httpclient"
)

// DefaultTimeout covers the service's own multi-source aggregation work.
const DefaultTimeout = 2 * time.Minute

// Request is the body POSTed to the guide-generation service.
type Request struct {
	Channels []enrich.Channel `json:"channels"`
	Country  string           `json:"country"`
	Lang     string           `json:"lang"`
}

// Fetch sends req to endpoint and returns the guide artifact as gzip bytes.
// A response that already declares gzip (Content-Encoding or Content-Type) is
// returned verbatim; anything else is compressed here, so the artifact on
// disk is always valid gzip data.
func Fetch(ctx context.Context, client *http.Client, endpoint string, req Request) ([]byte, error) {
	if client == nil {
		client = httpclient.WithTimeout(DefaultTimeout)
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("guide: encode request: %w", err)
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("guide: build request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("User-Agent", httpclient.UserAgent)
	// Explicit Accept-Encoding keeps the transport from transparently
	// decompressing; a pre-compressed response must arrive verbatim.
	hreq.Header.Set("Accept-Encoding", "gzip")

	resp, err := client.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("guide: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("guide: HTTP %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("guide: read response: %w", err)
	}
	if declaresGzip(resp.Header) {
		return raw, nil
	}
	return gzipBytes(raw)
}

func declaresGzip(h http.Header) bool {
	return strings.Contains(strings.ToLower(h.Get("Content-Encoding")), "gzip") ||
		strings.Contains(strings.ToLower(h.Get("Content-Type")), "gzip")
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("guide: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("guide: compress: %w", err)
	}
	return buf.Bytes(), nil
}
