package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
db:
  path: /tmp/test-news.db
fetch:
  timeout_sec: 15
  user_agent: test-agent/1.0
probe:
  timeout_sec: 3
  workers: 2
crawl:
  site_workers: 1
sites:
  - name: 上海大学
    url: https://news.shu.edu.cn/index/zyxw.htm
  - name: 复旦大学
    url: https://www.fudan.edu.cn/
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DB.Path != "/tmp/test-news.db" {
		t.Errorf("db path = %q", cfg.DB.Path)
	}
	if cfg.Fetch.TimeoutSec != 15 || cfg.Fetch.UserAgent != "test-agent/1.0" {
		t.Errorf("fetch config = %+v", cfg.Fetch)
	}
	if cfg.Probe.TimeoutSec != 3 || cfg.Probe.Workers != 2 {
		t.Errorf("probe config = %+v", cfg.Probe)
	}
	if cfg.Crawl.SiteWorkers != 1 {
		t.Errorf("crawl config = %+v", cfg.Crawl)
	}

	// Site order follows the file.
	if len(cfg.Sites) != 2 {
		t.Fatalf("got %d sites, expected 2", len(cfg.Sites))
	}
	if cfg.Sites[0].Name != "上海大学" || cfg.Sites[1].Name != "复旦大学" {
		t.Errorf("sites out of order: %+v", cfg.Sites)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
sites:
  - name: 上海大学
    url: https://news.shu.edu.cn/
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DB.Path != "news.db" {
		t.Errorf("default db path = %q", cfg.DB.Path)
	}
	if cfg.Fetch.TimeoutSec != 10 || cfg.Probe.TimeoutSec != 5 {
		t.Errorf("default timeouts = %+v / %+v", cfg.Fetch, cfg.Probe)
	}
	if cfg.Probe.Workers != 8 || cfg.Crawl.SiteWorkers != 4 {
		t.Errorf("default workers = %+v / %+v", cfg.Probe, cfg.Crawl)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "sites: [unclosed")
		if _, err := Load(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}
