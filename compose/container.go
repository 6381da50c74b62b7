package compose

import "github.com/phanxgames/meridian"

// MapView creates and exclusively owns one engine instance per mounted
// tree. It resolves the theme to a style, tracks the engine's load and
// style readiness, and mounts its children once both have arrived (the
// engine draws its loading veil until then). Unmounting destroys the engine
// and everything attached to it.
//
// Camera props set the initial pose only; once created, camera state
// belongs to the engine and later prop changes do not move it. Theme
// changes whose resolved style differs from the staged one swap the style
// in place on the next tick — rapid toggles within one frame coalesce so
// only the final style is applied.
type MapView struct {
	Key string

	// Center, Zoom, Bearing, Pitch are the initial camera pose.
	Center  meridian.LngLat
	Zoom    float64
	Bearing float64
	Pitch   float64

	// Theme picks the active style.
	Theme Theme

	// Width and Height size the viewport in pixels. Zero keeps the engine
	// default. Changes resize the existing viewport.
	Width  int
	Height int

	// Ref receives the engine instance right after creation and nil on
	// teardown, for advanced imperative use. Captured at mount.
	Ref func(*meridian.Map)

	// Children mount once the engine is ready and stay mounted through
	// later style swaps.
	Children []Widget
}

func (w MapView) widgetKey() string { return w.Key }
func (w MapView) newState() state   { return &mapViewState{} }

type mapViewState struct {
	host *Host
	m    *meridian.Map
	ref  func(*meridian.Map)

	// staged is the style last handed to the engine; comparing against it
	// (not the applied style, which lags a tick) makes re-staging the same
	// style a no-op.
	staged *meridian.Style

	loaded   bool
	styleOK  bool
	mounted  bool // children gate, sticky across later style swaps
	width    int
	height   int
	listeners []meridian.ListenerHandle
}

func (s *mapViewState) mount(ctx *Context, w Widget) {
	v := w.(MapView)
	s.host = ctx.host
	s.staged = v.Theme.Style()
	s.width, s.height = v.Width, v.Height
	s.m = meridian.NewMap(meridian.MapOptions{
		Center:  v.Center,
		Zoom:    v.Zoom,
		Bearing: v.Bearing,
		Pitch:   v.Pitch,
		Style:   s.staged,
		Width:   v.Width,
		Height:  v.Height,
	})
	s.listeners = append(s.listeners,
		s.m.On(meridian.EventLoad, func(meridian.Event) {
			s.loaded = true
			s.host.invalidate()
		}),
		s.m.On(meridian.EventStyleData, func(meridian.Event) {
			s.styleOK = true
			s.host.invalidate()
		}),
	)
	s.host.addView(s)
	s.ref = v.Ref
	if s.ref != nil {
		s.ref(s.m)
	}
}

func (s *mapViewState) update(_ *Context, w Widget) {
	v := w.(MapView)
	if style := v.Theme.Style(); style != s.staged {
		s.staged = style
		s.styleOK = false
		// SetStyle stages the swap for the next tick; several swaps within
		// one frame collapse into the last.
		s.m.SetStyle(style)
	}
	if v.Width != s.width || v.Height != s.height {
		s.width, s.height = v.Width, v.Height
		if v.Width > 0 && v.Height > 0 {
			s.m.Resize(v.Width, v.Height)
		}
	}
}

func (s *mapViewState) unmount() {
	for _, h := range s.listeners {
		h.Remove()
	}
	s.listeners = nil
	s.loaded = false
	s.styleOK = false
	s.mounted = false
	if s.ref != nil {
		s.ref(nil)
	}
	s.host.dropView(s)
	s.m.Destroy()
}

func (s *mapViewState) children(ctx *Context, w Widget) (*Context, []Widget) {
	v := w.(MapView)
	if !s.mounted {
		if !s.loaded || !s.styleOK {
			return nil, nil
		}
		s.mounted = true
	}
	return ctx.withMap(s.m, true), v.Children
}
