// Package feed retrieves the raw iptv-org category playlists and extracts the
// channel identifiers (tvg-id) embedded in them.
//
// The category set is fixed: one country feed plus the news/movies/sports
// topical feeds. A failed category contributes an empty body and zero entries;
// it never aborts the run.
package feed

import (
	"context"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/tvmix/tv-mix/internal/httpclient"
)

// Category is one of the fixed feed partitions merged into the playlist.
type Category string

const (
	CategoryCountry Category = "country"
	CategoryNews    Category = "news"
	CategoryMovies  Category = "movies"
	CategorySports  Category = "sports"
)

// Order is the fixed category order for merging and fetching.
var Order = []Category{CategoryCountry, CategoryNews, CategoryMovies, CategorySports}

// Sources maps each category to its feed URL on the given CDN base.
// The country feed is region-specific; the rest are global topical feeds.
func Sources(base, country string) map[Category]string {
	base = strings.TrimSuffix(base, "/")
	return map[Category]string{
		CategoryCountry: base + "/countries/" + strings.ToLower(country) + ".m3u",
		CategoryNews:    base + "/categories/news.m3u",
		CategoryMovies:  base + "/categories/movies.m3u",
		CategorySports:  base + "/categories/sports.m3u",
	}
}

// Feed is one fetched category body. Entries counts #EXTINF markers, not
// fully parsed entries. Failed is set when the fetch itself errored; an
// empty body with Failed unset means the feed really was empty.
type Feed struct {
	Category Category
	Body     string
	Entries  int
	Failed   bool
}

// Fetcher retrieves category feeds sequentially with a per-call timeout.
type Fetcher struct {
	Client  *http.Client
	Timeout time.Duration // per category; 0 = rely on Client timeout
}

// FetchAll retrieves every category in Order. A failed category is logged and
// recorded with an empty body and zero entries; the remaining categories are
// still fetched.
func (f *Fetcher) FetchAll(ctx context.Context, sources map[Category]string) map[Category]Feed {
	out := make(map[Category]Feed, len(sources))
	for _, cat := range Order {
		u, ok := sources[cat]
		if !ok {
			continue
		}
		body, err := f.fetchOne(ctx, u)
		if err != nil {
			log.Printf("feed: WARNING: %s failed: %v", cat, err)
			out[cat] = Feed{Category: cat, Failed: true}
			continue
		}
		fd := Feed{Category: cat, Body: body, Entries: CountEntries(body)}
		out[cat] = fd
		log.Printf("feed: %s: %d channels", cat, fd.Entries)
	}
	return out
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) (string, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	body, err := httpclient.GetBody(ctx, f.Client, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// CountEntries counts the #EXTINF metadata markers in a raw body.
func CountEntries(body string) int {
	return strings.Count(body, "#EXTINF")
}

// ExtractIDs collects every tvg-id attribute value across the given feeds,
// trims whitespace, drops empties, and returns the unique values sorted.
// Which category referenced an identifier is not tracked past this point.
func ExtractIDs(feeds map[Category]Feed) []string {
	seen := make(map[string]struct{})
	for _, fd := range feeds {
		scanIDs(fd.Body, seen)
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func scanIDs(body string, seen map[string]struct{}) {
	const attr = `tvg-id="`
	for {
		i := strings.Index(body, attr)
		if i < 0 {
			return
		}
		body = body[i+len(attr):]
		j := strings.IndexByte(body, '"')
		if j < 0 {
			return
		}
		id := strings.TrimSpace(body[:j])
		body = body[j+1:]
		if id == "" {
			continue
		}
		seen[id] = struct{}{}
	}
}
