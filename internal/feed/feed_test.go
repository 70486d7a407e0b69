package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleBody = `#EXTM3U
#EXTINF:-1 tvg-id="cnn.us" tvg-logo="http://x/cnn.png",CNN
http://example.com/cnn.m3u8
#EXTINF:-1 tvg-id="bbc.uk",BBC
http://example.com/bbc.m3u8
`

func TestSources(t *testing.T) {
	s := Sources("https://iptv-org.github.io/iptv/", "CA")
	if got, want := s[CategoryCountry], "https://iptv-org.github.io/iptv/countries/ca.m3u"; got != want {
		t.Errorf("country URL = %q, want %q", got, want)
	}
	if got, want := s[CategorySports], "https://iptv-org.github.io/iptv/categories/sports.m3u"; got != want {
		t.Errorf("sports URL = %q, want %q", got, want)
	}
	if len(s) != len(Order) {
		t.Errorf("Sources returned %d entries, want %d", len(s), len(Order))
	}
}

func TestCountEntries(t *testing.T) {
	cases := []struct {
		body string
		want int
	}{
		{"", 0},
		{sampleBody, 2},
		{"#EXTM3U\n", 0},
	}
	for _, c := range cases {
		if got := CountEntries(c.body); got != c.want {
			t.Errorf("CountEntries(%q) = %d, want %d", c.body, got, c.want)
		}
	}
}

func TestExtractIDs_DedupeAcrossCategories(t *testing.T) {
	feeds := map[Category]Feed{
		CategoryCountry: {Body: `#EXTINF:-1 tvg-id="a.us",A` + "\n" + `#EXTINF:-1 tvg-id="b.us",B`},
		CategoryNews:    {Body: `#EXTINF:-1 tvg-id="b.us",B again`},
	}
	ids := ExtractIDs(feeds)
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2 unique", ids)
	}
	if ids[0] != "a.us" || ids[1] != "b.us" {
		t.Errorf("ids = %v, want [a.us b.us]", ids)
	}
}

func TestExtractIDs_TrimAndDropEmpty(t *testing.T) {
	feeds := map[Category]Feed{
		CategoryCountry: {Body: `#EXTINF:-1 tvg-id=" cnn.us " tvg-name="x",CNN` + "\n" + `#EXTINF:-1 tvg-id="",NoID`},
	}
	ids := ExtractIDs(feeds)
	if len(ids) != 1 || ids[0] != "cnn.us" {
		t.Errorf("ids = %v, want [cnn.us]", ids)
	}
}

func TestFetchAll_FailedCategoryContinues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "movies") {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	sources := map[Category]string{
		CategoryCountry: srv.URL + "/countries/us.m3u",
		CategoryNews:    srv.URL + "/categories/news.m3u",
		CategoryMovies:  srv.URL + "/categories/movies.m3u",
		CategorySports:  srv.URL + "/categories/sports.m3u",
	}
	f := &Fetcher{Client: srv.Client()}
	feeds := f.FetchAll(context.Background(), sources)

	if len(feeds) != 4 {
		t.Fatalf("got %d feeds, want 4", len(feeds))
	}
	if fd := feeds[CategoryMovies]; fd.Body != "" || fd.Entries != 0 || !fd.Failed {
		t.Errorf("movies = %+v, want empty body, zero entries, Failed", fd)
	}
	for _, cat := range []Category{CategoryCountry, CategoryNews, CategorySports} {
		if fd := feeds[cat]; fd.Entries != 2 || fd.Failed {
			t.Errorf("%s = %+v, want 2 entries and not Failed", cat, fd)
		}
	}
}

func TestFetchAll_EmptyFeedIsNotFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "movies") {
			return // 200 with no entries
		}
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	sources := map[Category]string{
		CategoryCountry: srv.URL + "/countries/us.m3u",
		CategoryMovies:  srv.URL + "/categories/movies.m3u",
	}
	f := &Fetcher{Client: srv.Client()}
	feeds := f.FetchAll(context.Background(), sources)

	if fd := feeds[CategoryMovies]; fd.Failed || fd.Entries != 0 {
		t.Errorf("movies = %+v, want zero entries and not Failed", fd)
	}
}
