// Package config loads the crawler configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Site is one configured university listing page.
type Site struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type FetchConfig struct {
	TimeoutSec int    `yaml:"timeout_sec"`
	UserAgent  string `yaml:"user_agent"`
}

type ProbeConfig struct {
	TimeoutSec int `yaml:"timeout_sec"`
	Workers    int `yaml:"workers"`
}

type CrawlConfig struct {
	SiteWorkers int `yaml:"site_workers"`
}

// Config is the full crawler configuration.
type Config struct {
	DB    DBConfig    `yaml:"db"`
	Fetch FetchConfig `yaml:"fetch"`
	Probe ProbeConfig `yaml:"probe"`
	Crawl CrawlConfig `yaml:"crawl"`
	Sites []Site      `yaml:"sites"`
}

// Load reads and parses the configuration at path, applying defaults for
// unset values. The site list keeps its file order.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DB.Path == "" {
		c.DB.Path = "news.db"
	}
	if c.Fetch.TimeoutSec <= 0 {
		c.Fetch.TimeoutSec = 10
	}
	if c.Probe.TimeoutSec <= 0 {
		c.Probe.TimeoutSec = 5
	}
	if c.Probe.Workers <= 0 {
		c.Probe.Workers = 8
	}
	if c.Crawl.SiteWorkers <= 0 {
		c.Crawl.SiteWorkers = 4
	}
}
