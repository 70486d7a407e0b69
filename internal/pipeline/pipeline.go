// Package pipeline runs the whole playlist + guide build as one sequential
// pass: fetch category feeds, merge the playlist, dedupe identifiers, load
// the two reference catalogs, enrich, request the guide artifact, publish.
//
// Every remote failure is recovered locally (warn and continue with whatever
// that step could contribute); only a publish-directory failure is fatal.
// The CLI and the tests invoke the identical code path.
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/tvmix/tv-mix/internal/chandb"
	"github.com/tvmix/tv-mix/internal/config"
	"github.com/tvmix/tv-mix/internal/enrich"
	"github.com/tvmix/tv-mix/internal/epgsrc"
	"github.com/tvmix/tv-mix/internal/feed"
	"github.com/tvmix/tv-mix/internal/guide"
	"github.com/tvmix/tv-mix/internal/httpclient"
	"github.com/tvmix/tv-mix/internal/metrics"
	"github.com/tvmix/tv-mix/internal/playlist"
	"github.com/tvmix/tv-mix/internal/publish"
)

// Result summarizes a run for logging and tests.
type Result struct {
	Feeds        map[feed.Category]feed.Feed
	TotalEntries int
	UniqueIDs    []string
	Playlist     string
	Report       enrich.Report
	GuideWritten bool
}

// Run executes one full pipeline pass. The returned error is non-nil only
// when writing into the publish directory fails; every upstream failure
// degrades the output instead.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	start := time.Now()
	m := metrics.New()
	res := &Result{}

	// 1. Category feeds.
	fetcher := &feed.Fetcher{Client: httpclient.WithTimeout(cfg.FeedTimeout), Timeout: cfg.FeedTimeout}
	res.Feeds = fetcher.FetchAll(ctx, feed.Sources(cfg.IPTVBase, cfg.CountryCode))
	for cat, fd := range res.Feeds {
		res.TotalEntries += fd.Entries
		m.FeedEntries.WithLabelValues(string(cat)).Set(float64(fd.Entries))
		failed := 0.0
		if fd.Failed {
			failed = 1.0
		}
		m.FeedFailures.WithLabelValues(string(cat)).Set(failed)
	}

	// 2/3. Merge playlist, dedupe identifiers.
	res.Playlist = playlist.Merge(res.Feeds, cfg.CountryLabel())
	res.UniqueIDs = feed.ExtractIDs(res.Feeds)
	m.UniqueIDs.Set(float64(len(res.UniqueIDs)))
	log.Printf("playlist: %d channels, %d unique IDs", res.TotalEntries, len(res.UniqueIDs))

	// 4. Reference catalogs. A failed load degrades to an empty lookup.
	catClient := httpclient.WithTimeout(cfg.CatalogTimeout)
	db, err := chandb.Fetch(ctx, catClient, cfg.ChannelsCSVURL)
	if err != nil {
		log.Printf("chandb: WARNING: channel database failed: %v", err)
		db = chandb.DB{}
	} else {
		log.Printf("chandb: %d entries", len(db))
	}
	epg, err := epgsrc.Fetch(ctx, catClient, cfg.EPGChannelsURL)
	if err != nil {
		log.Printf("epgsrc: WARNING: EPG channel catalog failed: %v", err)
		epg = epgsrc.DB{}
	} else {
		log.Printf("epgsrc: %d entries", len(epg))
	}
	m.CatalogRows.WithLabelValues("database").Set(float64(len(db)))
	m.CatalogRows.WithLabelValues("epg").Set(float64(len(epg)))

	channels, rep := enrich.Build(res.UniqueIDs, db, epg)
	res.Report = rep
	m.EPGMatched.Set(float64(rep.Matched))
	m.EPGUnmatched.Set(float64(rep.Unmatched))

	// 5. Guide artifact.
	var artifact []byte
	switch {
	case cfg.EPGFetcherURL == "":
		log.Print("guide: no endpoint configured, skipping")
	case len(res.UniqueIDs) == 0:
		log.Print("guide: no channel IDs found, skipping")
	default:
		log.Printf("guide: sending %s to %s", rep, cfg.EPGFetcherURL)
		artifact, err = guide.Fetch(ctx, httpclient.WithTimeout(cfg.EPGTimeout), cfg.EPGFetcherURL, guide.Request{
			Channels: channels,
			Country:  cfg.CountryCode,
			Lang:     cfg.Lang,
		})
		if err != nil {
			log.Printf("guide: WARNING: fetch failed: %v", err)
			artifact = nil
		} else {
			log.Printf("guide: artifact %d KB", len(artifact)/1024)
		}
	}

	// 6. Publish. The only fatal path.
	w := &publish.Writer{Dir: cfg.PublishDir, PlaylistFile: cfg.PlaylistFile, GuideFile: cfg.GuideFile}
	if err := w.EnsureDir(); err != nil {
		return nil, err
	}
	if err := w.WritePlaylist(res.Playlist); err != nil {
		return nil, err
	}
	m.ArtifactSize.WithLabelValues("playlist").Set(float64(len(res.Playlist)))
	if artifact != nil {
		if err := w.WriteGuide(artifact); err != nil {
			return nil, err
		}
		res.GuideWritten = true
		m.ArtifactSize.WithLabelValues("guide").Set(float64(len(artifact)))
	}

	page := publish.Page{
		CountryLabel: cfg.CountryLabel(),
		Channels:     res.TotalEntries,
		UniqueIDs:    len(res.UniqueIDs),
		GuideMatched: rep.Matched,
		PlaylistURL:  cfg.PlaylistFile,
		GuideURL:     cfg.GuideFile,
		HasGuide:     res.GuideWritten,
		GeneratedAt:  time.Now(),
	}
	if cfg.PublicBaseURL != "" {
		page.PlaylistURL = cfg.PublicBaseURL + "/" + cfg.PlaylistFile
		page.GuideURL = cfg.PublicBaseURL + "/" + cfg.GuideFile
	}
	if err := w.WriteLandingPage(page); err != nil {
		log.Printf("publish: WARNING: landing page failed: %v", err)
	}

	m.RunDuration.Set(time.Since(start).Seconds())
	if err := m.Write(w.Path(cfg.MetricsFile)); err != nil {
		log.Printf("metrics: WARNING: write failed: %v", err)
	}

	return res, nil
}
