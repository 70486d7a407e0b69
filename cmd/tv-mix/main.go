// Command tv-mix: build an IPTV playlist and program guide for one region.
//
//	run    One-shot: fetch feeds, merge playlist, enrich channels, request
//	       guide, publish. For cron / scheduled runners.
//	probe  Check every remote endpoint the pipeline depends on and report
//	       status + latency.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tvmix/tv-mix/internal/config"
	"github.com/tvmix/tv-mix/internal/feed"
	"github.com/tvmix/tv-mix/internal/httpclient"
	"github.com/tvmix/tv-mix/internal/pipeline"
	"github.com/tvmix/tv-mix/internal/probe"
)

func loadConfig(path string) *config.Config {
	if path != "" {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			log.Printf("Config file %s: %v", path, err)
			os.Exit(1)
		}
		return cfg
	}
	return config.Load()
}

func main() {
	_ = config.LoadEnvFile("")
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("[tv-mix] ")

	runCmd := flag.NewFlagSet("run", flag.ExitOnError)
	runConfig := runCmd.String("config", "", "YAML config file (default: environment / .env)")
	runCountry := runCmd.String("country", "", "Country code override (default: TV_MIX_COUNTRY)")
	runPublish := runCmd.String("publish-dir", "", "Publish directory override (default: TV_MIX_PUBLISH_DIR)")
	runEPGURL := runCmd.String("epg-url", "", "Guide service URL override (default: TV_MIX_EPG_FETCHER_URL)")

	probeCmd := flag.NewFlagSet("probe", flag.ExitOnError)
	probeConfig := probeCmd.String("config", "", "YAML config file (default: environment / .env)")
	probeTimeout := probeCmd.Duration("timeout", 15*time.Second, "Timeout per endpoint")

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <run|probe> [flags]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  run    Build and publish the playlist and guide once\n")
		fmt.Fprintf(os.Stderr, "  probe  Check feed/catalog/guide endpoints, report status and latency\n")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		_ = runCmd.Parse(os.Args[2:])
		cfg := loadConfig(*runConfig)
		if *runCountry != "" {
			cfg.CountryCode = *runCountry
		}
		if *runPublish != "" {
			cfg.PublishDir = *runPublish
		}
		if *runEPGURL != "" {
			cfg.EPGFetcherURL = *runEPGURL
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Printf("Run: country=%s publish=%s", cfg.CountryCode, cfg.PublishDir)
		res, err := pipeline.Run(ctx, cfg)
		if err != nil {
			log.Printf("Publish failed: %v", err)
			os.Exit(1)
		}
		guideNote := "no guide artifact"
		if res.GuideWritten {
			guideNote = "guide artifact written"
		}
		log.Printf("Done: %d channels, %d unique IDs (%d with guide source), %s",
			res.TotalEntries, len(res.UniqueIDs), res.Report.Matched, guideNote)

	case "probe":
		_ = probeCmd.Parse(os.Args[2:])
		cfg := loadConfig(*probeConfig)

		eps := make([]probe.Endpoint, 0, 7)
		sources := feed.Sources(cfg.IPTVBase, cfg.CountryCode)
		for _, cat := range feed.Order {
			eps = append(eps, probe.Endpoint{Name: "feed/" + string(cat), URL: sources[cat]})
		}
		eps = append(eps,
			probe.Endpoint{Name: "catalog/database", URL: cfg.ChannelsCSVURL},
			probe.Endpoint{Name: "catalog/epg", URL: cfg.EPGChannelsURL},
		)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(len(eps))*(*probeTimeout))
		defer cancel()
		log.Printf("Probing %d endpoint(s) (timeout %v each)...", len(eps), *probeTimeout)
		results := probe.All(ctx, eps, httpclient.WithTimeout(*probeTimeout))
		failed := 0
		for _, r := range results {
			if r.Status != probe.StatusOK {
				failed++
			}
			log.Printf("  %-18s %-10s HTTP %-3d %5dms  %s", r.Name, r.Status, r.StatusCode, r.LatencyMs, r.URL)
		}
		if cfg.EPGFetcherURL == "" {
			log.Print("Guide service: not configured (EPG step will be skipped on run)")
		}
		log.Printf("--- %d/%d endpoints OK ---", len(results)-failed, len(results))

	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		os.Exit(1)
	}
}
