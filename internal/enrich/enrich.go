// Package enrich left-joins the deduplicated channel identifiers against the
// two catalog lookups to build the records sent to the guide service.
package enrich

import (
	"fmt"

	"github.com/tvmix/tv-mix/internal/chandb"
	"github.com/tvmix/tv-mix/internal/epgsrc"
)

// Channel is one enriched record. The identifier is always set; the optional
// field pairs are populated independently, each only on an exact catalog hit.
type Channel struct {
	XMLTVID string `json:"xmltv_id"`
	Name    string `json:"name,omitempty"`
	Lang    string `json:"lang,omitempty"`
	Site    string `json:"site,omitempty"`
	SiteID  string `json:"site_id,omitempty"`
}

// Report counts identifiers matched against the EPG-source catalog. It feeds
// user-facing reporting only; it never affects control flow.
type Report struct {
	Total     int
	Matched   int
	Unmatched int
}

func (r Report) String() string {
	return fmt.Sprintf("%d channels, %d with guide source, %d without", r.Total, r.Matched, r.Unmatched)
}

// Build constructs one Channel per identifier. Record order follows the input
// order of ids.
func Build(ids []string, db chandb.DB, epg epgsrc.DB) ([]Channel, Report) {
	out := make([]Channel, 0, len(ids))
	rep := Report{Total: len(ids)}
	for _, id := range ids {
		ch := Channel{XMLTVID: id}
		if rec, ok := db[id]; ok {
			ch.Name = rec.Name
			ch.Lang = rec.Lang
		}
		if rec, ok := epg[id]; ok {
			ch.Site = rec.Site
			ch.SiteID = rec.SiteID
			rep.Matched++
		}
		out = append(out, ch)
	}
	rep.Unmatched = rep.Total - rep.Matched
	return out, rep
}
