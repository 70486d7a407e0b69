// Package chandb loads the iptv-org database channels.csv snapshot
// (https://github.com/iptv-org/database) into an in-memory lookup keyed by
// channel id. The snapshot is a few tens of thousands of rows; it is loaded
// fully per run and discarded afterwards.
package chandb

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/tvmix/tv-mix/internal/httpclient"
)

// Fixed column layout of channels.csv. Rows with fewer fields are skipped.
const (
	colID    = 0
	colName  = 1
	colLangs = 6

	minFields = 7
)

// Record is one channel row: display name and primary language.
type Record struct {
	Name string
	Lang string
}

// DB maps channel id (tvg-id / xmltv id) to its record. Built once per run,
// never mutated after load.
type DB map[string]Record

// Fetch downloads and parses the channels.csv snapshot from url.
func Fetch(ctx context.Context, client *http.Client, url string) (DB, error) {
	body, err := httpclient.GetBody(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(body))
}

// Parse reads the CSV snapshot. The first row is a header. Fields may be
// quoted to embed commas. The languages field is a semicolon-delimited list;
// only the first entry is kept. Malformed or short rows are skipped, not
// fatal.
func Parse(r io.Reader) (DB, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	db := make(DB)
	header := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			return nil, err
		}
		if header {
			header = false
			continue
		}
		if len(rec) < minFields {
			continue
		}
		id := strings.TrimSpace(rec[colID])
		if id == "" {
			continue
		}
		lang := rec[colLangs]
		if i := strings.IndexByte(lang, ';'); i >= 0 {
			lang = lang[:i]
		}
		db[id] = Record{
			Name: strings.TrimSpace(rec[colName]),
			Lang: strings.TrimSpace(lang),
		}
	}
	return db, nil
}
