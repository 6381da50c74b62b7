package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config is the popmap client configuration. Loaded in layers: built-in
// defaults, then an optional YAML file, then POPMAP_-prefixed environment
// variables (POPMAP_FEED_BASE_URL, POPMAP_MAP_THEME, ...), later layers
// winning.
type Config struct {
	Window WindowConfig `koanf:"window"`
	Map    MapConfig    `koanf:"map"`
	Feed   FeedConfig   `koanf:"feed"`
	Locate LocateConfig `koanf:"locate"`
	Log    LogConfig    `koanf:"log"`
}

// WindowConfig sizes and titles the desktop window.
type WindowConfig struct {
	Title  string `koanf:"title"`
	Width  int    `koanf:"width"`
	Height int    `koanf:"height"`
}

// MapConfig is the initial camera pose and theme.
type MapConfig struct {
	CenterLng float64 `koanf:"center_lng"`
	CenterLat float64 `koanf:"center_lat"`
	Zoom      float64 `koanf:"zoom"`
	// Theme is "light", "dark", or "system".
	Theme string `koanf:"theme"`
}

// FeedConfig points at the popmap REST API.
type FeedConfig struct {
	BaseURL string        `koanf:"base_url"`
	Refresh time.Duration `koanf:"refresh"`
}

// LocateConfig configures the IP geolocation lookup behind the locate
// control.
type LocateConfig struct {
	// Endpoint is the IP-geolocation service URL. Empty uses the default.
	Endpoint    string  `koanf:"endpoint"`
	FallbackLng float64 `koanf:"fallback_lng"`
	FallbackLat float64 `koanf:"fallback_lat"`
	FlyZoom     float64 `koanf:"fly_zoom"`
}

// LogConfig configures zerolog output.
type LogConfig struct {
	// Level is a zerolog level name ("debug", "info", ...).
	Level string `koanf:"level"`
	// Format is "json" or "console".
	Format string `koanf:"format"`
}

const defaultConfigFile = "popmap.yaml"

func defaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "popmap",
			Width:  1280,
			Height: 800,
		},
		Map: MapConfig{
			CenterLng: -77.0369,
			CenterLat: 38.9072,
			Zoom:      12,
			Theme:     "system",
		},
		Feed: FeedConfig{
			BaseURL: "http://localhost:8000/api",
			Refresh: time.Minute,
		},
		Locate: LocateConfig{
			FallbackLng: -77.0369,
			FallbackLat: 38.9072,
			FlyZoom:     14,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// loadConfig builds the layered configuration. An explicit path must exist;
// the default file is optional.
func loadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	// POPMAP_FEED_BASE_URL -> feed.base_url: only the first underscore
	// separates the section from the key.
	if err := k.Load(env.Provider("POPMAP_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "POPMAP_"))
		return strings.Replace(s, "_", ".", 1)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Feed.BaseURL == "" {
		return Config{}, fmt.Errorf("feed.base_url must not be empty")
	}
	return cfg, nil
}
