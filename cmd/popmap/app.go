package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/phanxgames/meridian"
	"github.com/phanxgames/meridian/compose"
	"github.com/phanxgames/meridian/feed"
	"github.com/phanxgames/meridian/geolocate"
)

const fetchTimeout = 10 * time.Second

// pin is one event pinned to the map, with its coordinate already parsed
// and its dot color resolved from the category palette.
type pin struct {
	event feed.Event
	pos   meridian.LngLat
	color meridian.Color
}

// app is the ebiten.Game driving the popmap client: it re-renders the
// widget tree every tick from the current feed snapshot and selection, and
// owns the background feed poller.
type app struct {
	cfg     Config
	log     zerolog.Logger
	client  *feed.Client
	locator geolocate.Locator
	host    *compose.Host

	m        *meridian.Map // set by the MapView ref
	theme    compose.Theme
	pins     []pin
	selected *pin

	polling bool
}

func newApp(cfg Config, log zerolog.Logger) *app {
	return &app{
		cfg:    cfg,
		log:    log,
		client: &feed.Client{BaseURL: cfg.Feed.BaseURL},
		locator: &geolocate.IPLocator{
			URL: cfg.Locate.Endpoint,
			Fallback: meridian.LngLat{
				Lng: cfg.Locate.FallbackLng,
				Lat: cfg.Locate.FallbackLat,
			},
		},
		host:  compose.NewHost(),
		theme: themeFromConfig(cfg.Map.Theme),
	}
}

func themeFromConfig(name string) compose.Theme {
	switch name {
	case "light":
		return compose.Theme{Mode: compose.ModeLight}
	case "dark":
		return compose.Theme{Mode: compose.ModeDark}
	default:
		return compose.Theme{Mode: compose.ModeSystem}
	}
}

func (a *app) Update() error {
	a.handleKeys()
	a.host.Render(a.tree())
	a.host.Update()
	if a.m != nil && !a.polling {
		a.polling = true
		go a.poll()
	}
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	a.host.Draw(screen)
}

func (a *app) Layout(int, int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

func (a *app) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		if a.theme.Resolve() == compose.SchemeDark {
			a.theme = compose.Theme{Mode: compose.ModeLight}
		} else {
			a.theme = compose.Theme{Mode: compose.ModeDark}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) && a.m != nil {
		a.m.Screenshot("popmap")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) && a.m != nil {
		a.m.SetDebugMode(true)
	}
}

// tree describes the whole UI for the current state.
func (a *app) tree() compose.Widget {
	children := []compose.Widget{
		compose.Controls{
			Position:   meridian.ControlTopRight,
			Zoom:       true,
			Compass:    true,
			Fullscreen: true,
			Locator:    a.locator,
			FlyZoom:    a.cfg.Locate.FlyZoom,
			OnLocate: func(res geolocate.Result) {
				if res.Err != "" {
					a.log.Warn().Str("reason", res.Err).Msg("locate fell back to the default position")
					return
				}
				a.log.Info().
					Float64("lng", res.LngLat.Lng).
					Float64("lat", res.LngLat.Lat).
					Msg("located")
			},
		},
	}

	for i := range a.pins {
		p := &a.pins[i]
		children = append(children, compose.Marker{
			Key:      strconv.Itoa(p.event.ID),
			Position: p.pos,
			Color:    &p.color,
			OnClick:  func(meridian.Event) { a.selected = p },
			Children: []compose.Widget{
				compose.Tooltip{Text: p.event.Title},
			},
		})
	}

	if sel := a.selected; sel != nil {
		children = append(children, compose.FloatingPopup{
			Position:     sel.pos,
			Text:         popupText(sel.event),
			CloseButton:  true,
			CloseOnClick: true,
			OnClose:      func() { a.selected = nil },
		})
	}

	return compose.MapView{
		Center: meridian.LngLat{Lng: a.cfg.Map.CenterLng, Lat: a.cfg.Map.CenterLat},
		Zoom:   a.cfg.Map.Zoom,
		Theme:  a.theme,
		Width:  a.cfg.Window.Width,
		Height: a.cfg.Window.Height,
		Ref:    func(m *meridian.Map) { a.m = m },
		Children: children,
	}
}

func popupText(e feed.Event) string {
	return fmt.Sprintf("%s\n%s\n%s – %s",
		e.Title, e.BusinessName,
		e.StartDatetime.Local().Format("Jan 2 15:04"),
		e.EndDatetime.Local().Format("15:04"))
}

// poll refreshes the feed snapshot on the configured interval and hands the
// result to the UI tick through the map's dispatch queue.
func (a *app) poll() {
	m := a.m
	a.fetch(m)
	ticker := time.NewTicker(a.cfg.Feed.Refresh)
	defer ticker.Stop()
	for range ticker.C {
		if m.Destroyed() {
			return
		}
		a.fetch(m)
	}
}

func (a *app) fetch(m *meridian.Map) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	events, err := a.client.MapData(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("feed refresh failed")
		return
	}
	pins := buildPins(events, a.log)
	m.Dispatch(func() {
		a.pins = pins
		a.log.Debug().Int("events", len(pins)).Msg("feed refreshed")
	})
}

// buildPins parses coordinates and drops records the backend serialized
// with unparsable positions.
func buildPins(events []feed.Event, log zerolog.Logger) []pin {
	pins := make([]pin, 0, len(events))
	for _, e := range events {
		pos, err := e.LngLat()
		if err != nil {
			log.Warn().Err(err).Int("event", e.ID).Msg("skipping event")
			continue
		}
		color, _ := meridian.CategoryPalette.Color(e.Category)
		pins = append(pins, pin{event: e, pos: pos, color: color})
	}
	return pins
}
