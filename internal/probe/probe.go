// Package probe checks the remote endpoints the pipeline depends on: the
// category feeds, the two reference catalogs, and optionally the guide
// service. Useful when a scheduled run produced a thin playlist and the
// question is which upstream was down.
package probe

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tvmix/tv-mix/internal/httpclient"
)

// Result is the outcome of probing one endpoint.
type Result struct {
	Name       string
	URL        string
	Status     Status
	StatusCode int
	LatencyMs  int64
}

type Status string

const (
	StatusOK        Status = "ok"
	StatusBadStatus Status = "bad_status"
	StatusTimeout   Status = "timeout"
	StatusError     Status = "error"
)

// Endpoint names one URL to check.
type Endpoint struct {
	Name string
	URL  string
}

// One fetches the endpoint with a short timeout and classifies the result.
// The body is discarded; only reachability and status matter.
func One(ctx context.Context, ep Endpoint, client *http.Client) Result {
	if client == nil {
		client = httpclient.WithTimeout(15 * time.Second)
	}
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL, nil)
	if err != nil {
		return Result{Name: ep.Name, URL: ep.URL, Status: StatusError, LatencyMs: time.Since(start).Milliseconds()}
	}
	req.Header.Set("User-Agent", httpclient.UserAgent)
	resp, err := client.Do(req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		if strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "deadline") {
			return Result{Name: ep.Name, URL: ep.URL, Status: StatusTimeout, LatencyMs: latency}
		}
		return Result{Name: ep.Name, URL: ep.URL, Status: StatusError, LatencyMs: latency}
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{Name: ep.Name, URL: ep.URL, Status: StatusBadStatus, StatusCode: resp.StatusCode, LatencyMs: latency}
	}
	return Result{Name: ep.Name, URL: ep.URL, Status: StatusOK, StatusCode: resp.StatusCode, LatencyMs: latency}
}

// All probes each endpoint in order and returns the results.
func All(ctx context.Context, eps []Endpoint, client *http.Client) []Result {
	out := make([]Result, 0, len(eps))
	for _, ep := range eps {
		if ep.URL == "" {
			continue
		}
		out = append(out, One(ctx, ep, client))
	}
	return out
}
