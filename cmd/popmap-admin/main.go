// popmap-admin is a read-only terminal browser for the popmap API: a
// dashboard of event and business counts, the event list with a status
// filter, and the businesses table.
package main

import (
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/phanxgames/meridian/feed"
)

func main() {
	baseURL := flag.String("api", "http://localhost:8000/api", "popmap API root")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *baseURL == "" {
		log.Fatal().Msg("-api must not be empty")
	}

	client := &feed.Client{BaseURL: *baseURL}
	p := tea.NewProgram(newModel(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal().Err(err).Msg("terminal UI")
	}
}
