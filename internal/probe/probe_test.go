package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOne(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	res := One(context.Background(), Endpoint{Name: "feed", URL: srv.URL + "/up"}, srv.Client())
	if res.Status != StatusOK || res.StatusCode != http.StatusOK {
		t.Errorf("up = %+v", res)
	}

	res = One(context.Background(), Endpoint{Name: "feed", URL: srv.URL + "/down"}, srv.Client())
	if res.Status != StatusBadStatus || res.StatusCode != http.StatusBadGateway {
		t.Errorf("down = %+v", res)
	}
}

func TestOne_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := One(context.Background(), Endpoint{Name: "gone", URL: url}, nil)
	if res.Status != StatusError && res.Status != StatusTimeout {
		t.Errorf("unreachable = %+v", res)
	}
}

func TestAll_UsesSuppliedClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := &http.Client{Timeout: 20 * time.Millisecond}
	results := All(context.Background(), []Endpoint{{Name: "slow", URL: srv.URL}}, client)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Status != StatusTimeout {
		t.Errorf("slow endpoint = %+v, want status %s", results[0], StatusTimeout)
	}
}

func TestAll_SkipsEmptyURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	eps := []Endpoint{
		{Name: "a", URL: srv.URL},
		{Name: "guide", URL: ""},
		{Name: "b", URL: srv.URL},
	}
	results := All(context.Background(), eps, srv.Client())
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Status != StatusOK {
			t.Errorf("result = %+v", r)
		}
	}
}
