// popmap is the desktop event-discovery client: an interactive map of
// popup events fetched from the popmap REST API.
//
// Keys: T toggles the theme, D enables the debug HUD, F12 captures a
// screenshot. The control stack carries zoom, compass, locate, and
// fullscreen buttons.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default popmap.yaml if present)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("configuration")
	}
	log := newLogger(cfg.Log)
	log.Info().
		Str("feed", cfg.Feed.BaseURL).
		Str("theme", cfg.Map.Theme).
		Msg("starting popmap")

	app := newApp(cfg, log)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal().Err(err).Msg("game loop")
	}
}

func newLogger(cfg LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var out io.Writer = os.Stderr
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
