// Package epgsrc loads the iptv-org EPG channel catalog
// (https://iptv-org.github.io/epg/channels.json) into an in-memory lookup
// keyed by xmltv id. Each record names the guide site that carries the
// channel and the channel's id on that site.
package epgsrc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tvmix/tv-mix/internal/httpclient"
)

// Record binds an xmltv id to its guide source.
type Record struct {
	Site   string
	SiteID string
}

// DB maps xmltv id to its guide-source record. Built once per run.
type DB map[string]Record

type channelRaw struct {
	XMLTVID string      `json:"xmltv_id"`
	Site    string      `json:"site"`
	SiteID  interface{} `json:"site_id"` // string on most sites, numeric on a few
}

// Fetch downloads and parses the channel catalog from url.
func Fetch(ctx context.Context, client *http.Client, url string) (DB, error) {
	body, err := httpclient.GetBody(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return Parse(body)
}

// Parse decodes the JSON channel list. Entries without an xmltv_id are
// skipped; later entries for the same id win (the catalog lists one entry per
// site, any of them is a usable source).
func Parse(data []byte) (DB, error) {
	var raw []channelRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("epg channels.json parse: %w", err)
	}
	db := make(DB, len(raw))
	for _, ch := range raw {
		id := strings.TrimSpace(ch.XMLTVID)
		if id == "" {
			continue
		}
		db[id] = Record{
			Site:   strings.TrimSpace(ch.Site),
			SiteID: stringNum(ch.SiteID),
		}
	}
	return db, nil
}

func stringNum(v interface{}) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return ""
	}
}
