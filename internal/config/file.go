package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Country        string `yaml:"country"`
	CountryName    string `yaml:"country_name"`
	IPTVBase       string `yaml:"iptv_base"`
	ChannelsCSVURL string `yaml:"channels_csv_url"`
	EPGChannelsURL string `yaml:"epg_channels_url"`
	EPGFetcherURL  string `yaml:"epg_fetcher_url"`
	PublishDir     string `yaml:"publish_dir"`
	PublicBaseURL  string `yaml:"public_base_url"`
	PlaylistFile   string `yaml:"playlist_file"`
	GuideFile      string `yaml:"guide_file"`
	MetricsFile    string `yaml:"metrics_file"`
	FeedTimeout    string `yaml:"feed_timeout"`
	CatalogTimeout string `yaml:"catalog_timeout"`
	EPGTimeout     string `yaml:"epg_timeout"`
	Lang           string `yaml:"lang"`
}

// LoadFromFile loads config from a YAML file. Unset fields fall back to the
// same defaults Load uses; the environment is not consulted.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	c := &Config{
		CountryCode:    f.Country,
		CountryName:    f.CountryName,
		IPTVBase:       f.IPTVBase,
		ChannelsCSVURL: f.ChannelsCSVURL,
		EPGChannelsURL: f.EPGChannelsURL,
		EPGFetcherURL:  f.EPGFetcherURL,
		PublishDir:     f.PublishDir,
		PublicBaseURL:  f.PublicBaseURL,
		PlaylistFile:   f.PlaylistFile,
		GuideFile:      f.GuideFile,
		MetricsFile:    f.MetricsFile,
		Lang:           f.Lang,
	}
	c.FeedTimeout = parseDuration(f.FeedTimeout)
	c.CatalogTimeout = parseDuration(f.CatalogTimeout)
	c.EPGTimeout = parseDuration(f.EPGTimeout)
	c.applyDefaults()
	return c, nil
}

func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
