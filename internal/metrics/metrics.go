// Package metrics records per-run counters on a private Prometheus registry
// and serializes them in text exposition format. A one-shot pipeline has no
// scrape endpoint; the file in the publish dir is meant for a node_exporter
// textfile collector.
package metrics

import (
	"bytes"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Set is the metric set for one pipeline run.
type Set struct {
	reg *prometheus.Registry

	FeedEntries  *prometheus.GaugeVec // per category
	FeedFailures *prometheus.GaugeVec // per category, 0 or 1
	UniqueIDs    prometheus.Gauge
	CatalogRows  *prometheus.GaugeVec // catalog="database"|"epg"
	EPGMatched   prometheus.Gauge
	EPGUnmatched prometheus.Gauge
	ArtifactSize *prometheus.GaugeVec // artifact="playlist"|"guide", bytes
	RunDuration  prometheus.Gauge
}

func New() *Set {
	s := &Set{reg: prometheus.NewRegistry()}
	s.FeedEntries = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tvmix_feed_entries",
		Help: "Channel entries fetched per category feed.",
	}, []string{"category"})
	s.FeedFailures = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tvmix_feed_failed",
		Help: "Whether the category feed fetch failed this run (0 or 1).",
	}, []string{"category"})
	s.UniqueIDs = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tvmix_unique_channel_ids",
		Help: "Unique tvg-id values across all fetched feeds.",
	})
	s.CatalogRows = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tvmix_catalog_rows",
		Help: "Rows loaded per reference catalog.",
	}, []string{"catalog"})
	s.EPGMatched = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tvmix_epg_source_matched",
		Help: "Identifiers with a guide-source catalog match.",
	})
	s.EPGUnmatched = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tvmix_epg_source_unmatched",
		Help: "Identifiers without a guide-source catalog match.",
	})
	s.ArtifactSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tvmix_artifact_bytes",
		Help: "Size of each published artifact in bytes.",
	}, []string{"artifact"})
	s.RunDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tvmix_run_duration_seconds",
		Help: "Wall-clock duration of the pipeline run.",
	})
	s.reg.MustRegister(
		s.FeedEntries, s.FeedFailures, s.UniqueIDs, s.CatalogRows,
		s.EPGMatched, s.EPGUnmatched, s.ArtifactSize, s.RunDuration,
	)
	return s
}

// Write serializes the set to path in Prometheus text exposition format.
func (s *Set) Write(path string) error {
	mfs, err := s.reg.Gather()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
