package config

import (
	"os"
	"strings"
	"time"
)

// Defaults for the public iptv-org endpoints. All of them can be overridden
// from the environment so the pipeline can run against mirrors.
const (
	DefaultIPTVBase       = "https://iptv-org.github.io/iptv"
	DefaultChannelsCSVURL = "https://raw.githubusercontent.com/iptv-org/database/master/data/channels.csv"
	DefaultEPGChannelsURL = "https://iptv-org.github.io/epg/channels.json"
)

// Config holds everything one pipeline run needs. Load from env and/or a YAML
// file; flags in cmd/tv-mix may override individual fields afterwards.
type Config struct {
	// Region
	CountryCode string // ISO 3166-1 alpha-2, lower-case (e.g. "ca")
	CountryName string // label for the LOCAL playlist banner; default: upper-case code

	// Remote sources
	IPTVBase       string // feed CDN base; country/category feeds hang off it
	ChannelsCSVURL string // iptv-org database channels.csv snapshot
	EPGChannelsURL string // iptv-org EPG channels.json catalog
	EPGFetcherURL  string // guide-generation service; empty disables the EPG step

	// Publishing
	PublishDir    string // output directory, created if missing
	PublicBaseURL string // public URL prefix for the landing page links; empty = relative links
	PlaylistFile  string // playlist file name inside PublishDir
	GuideFile     string // guide artifact file name inside PublishDir
	MetricsFile   string // run-metrics file name inside PublishDir

	// Timeouts (per HTTP call, independent of each other)
	FeedTimeout    time.Duration
	CatalogTimeout time.Duration
	EPGTimeout     time.Duration

	// Lang is the default language tag sent with the EPG request.
	Lang string
}

// Load reads config from environment. Call LoadEnvFile(".env") before Load()
// to use a .env file.
func Load() *Config {
	c := &Config{
		CountryCode:    getEnv("TV_MIX_COUNTRY", "us"),
		CountryName:    os.Getenv("TV_MIX_COUNTRY_NAME"),
		IPTVBase:       getEnv("TV_MIX_IPTV_BASE", DefaultIPTVBase),
		ChannelsCSVURL: getEnv("TV_MIX_CHANNELS_CSV_URL", DefaultChannelsCSVURL),
		EPGChannelsURL: getEnv("TV_MIX_EPG_CHANNELS_URL", DefaultEPGChannelsURL),
		EPGFetcherURL:  os.Getenv("TV_MIX_EPG_FETCHER_URL"),
		PublishDir:     getEnv("TV_MIX_PUBLISH_DIR", "docs"),
		PublicBaseURL:  os.Getenv("TV_MIX_PUBLIC_BASE_URL"),
		PlaylistFile:   getEnv("TV_MIX_PLAYLIST_FILE", "playlist.m3u8"),
		GuideFile:      getEnv("TV_MIX_GUIDE_FILE", "epg.xml.gz"),
		MetricsFile:    getEnv("TV_MIX_METRICS_FILE", "tv-mix.prom"),
		FeedTimeout:    getEnvDuration("TV_MIX_FEED_TIMEOUT", 30*time.Second),
		CatalogTimeout: getEnvDuration("TV_MIX_CATALOG_TIMEOUT", 30*time.Second),
		EPGTimeout:     getEnvDuration("TV_MIX_EPG_TIMEOUT", 2*time.Minute),
		Lang:           getEnv("TV_MIX_LANG", "en"),
	}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	c.CountryCode = strings.ToLower(strings.TrimSpace(c.CountryCode))
	if c.CountryCode == "" {
		c.CountryCode = "us"
	}
	if c.IPTVBase == "" {
		c.IPTVBase = DefaultIPTVBase
	}
	c.IPTVBase = strings.TrimSuffix(c.IPTVBase, "/")
	if c.ChannelsCSVURL == "" {
		c.ChannelsCSVURL = DefaultChannelsCSVURL
	}
	if c.EPGChannelsURL == "" {
		c.EPGChannelsURL = DefaultEPGChannelsURL
	}
	if c.PublishDir == "" {
		c.PublishDir = "docs"
	}
	if c.PlaylistFile == "" {
		c.PlaylistFile = "playlist.m3u8"
	}
	if c.GuideFile == "" {
		c.GuideFile = "epg.xml.gz"
	}
	if c.MetricsFile == "" {
		c.MetricsFile = "tv-mix.prom"
	}
	if c.FeedTimeout <= 0 {
		c.FeedTimeout = 30 * time.Second
	}
	if c.CatalogTimeout <= 0 {
		c.CatalogTimeout = 30 * time.Second
	}
	if c.EPGTimeout <= 0 {
		c.EPGTimeout = 2 * time.Minute
	}
	if c.Lang == "" {
		c.Lang = "en"
	}
	c.PublicBaseURL = strings.TrimSuffix(c.PublicBaseURL, "/")
}

// CountryLabel returns the human-readable region label used in the LOCAL
// playlist banner: the configured display name, or the upper-cased code.
func (c *Config) CountryLabel() string {
	if c.CountryName != "" {
		return c.CountryName
	}
	return strings.ToUpper(c.CountryCode)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
