package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 800 {
		t.Errorf("window = %dx%d, want 1280x800", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Feed.Refresh != time.Minute {
		t.Errorf("refresh = %v, want 1m", cfg.Feed.Refresh)
	}
	if cfg.Map.Theme != "system" {
		t.Errorf("theme = %q, want system", cfg.Map.Theme)
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popmap.yaml")
	body := "feed:\n  base_url: https://feed.example/api\nmap:\n  theme: dark\n  zoom: 9\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Feed.BaseURL != "https://feed.example/api" {
		t.Errorf("base url = %q", cfg.Feed.BaseURL)
	}
	if cfg.Map.Theme != "dark" || cfg.Map.Zoom != 9 {
		t.Errorf("map = %+v", cfg.Map)
	}
	// Untouched sections keep their defaults.
	if cfg.Window.Title != "popmap" {
		t.Errorf("title = %q, want the default", cfg.Window.Title)
	}
}

func TestLoadConfigEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popmap.yaml")
	if err := os.WriteFile(path, []byte("map:\n  theme: dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("POPMAP_MAP_THEME", "light")
	t.Setenv("POPMAP_FEED_BASE_URL", "https://env.example/api")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Map.Theme != "light" {
		t.Errorf("theme = %q, want the environment to win", cfg.Map.Theme)
	}
	if cfg.Feed.BaseURL != "https://env.example/api" {
		t.Errorf("base url = %q", cfg.Feed.BaseURL)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("no error for a missing explicit config file")
	}
}
