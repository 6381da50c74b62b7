package compose

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/meridian"
	"github.com/phanxgames/meridian/geolocate"
)

// controlEase is the fixed duration of control-issued camera moves.
const controlEase = 0.3

// locateFlyDuration paces the flight to a geolocation result.
const locateFlyDuration = 1.2

// Controls mounts the standard camera control stack: zoom in/out, a
// compass that resets bearing and pitch, locate, and fullscreen. Buttons
// are stateless command dispatchers; the compass is the only control with a
// continuous listener, keeping its needle synced to camera rotate and pitch
// events until unmount.
//
// Each locate click issues one independent request — concurrent clicks
// resolve independently, and the busy spinner shows until the last one
// lands. Results are marshalled back onto the engine tick and dropped after
// unmount.
type Controls struct {
	Key string

	// Position is the viewport corner the stack grows from.
	Position meridian.ControlPosition

	Zoom       bool
	Compass    bool
	Fullscreen bool

	// Locator enables the locate button. Nil omits it.
	Locator geolocate.Locator
	// FlyZoom is the zoom level locate flies to. Zero means 14.
	FlyZoom float64

	// OnLocate receives every locate result, including fallbacks carrying a
	// non-empty Err.
	OnLocate func(geolocate.Result)
}

func (w Controls) widgetKey() string { return w.Key }
func (w Controls) newState() state   { return &controlsState{} }

type controlsState struct {
	m     *meridian.Map
	props Controls

	buttons []*meridian.Button
	locate  *meridian.Button
	compass *meridian.Button

	rotate meridian.ListenerHandle
	pitch  meridian.ListenerHandle

	attached bool
	pending  int // in-flight locate requests
	disposed bool
}

func (s *controlsState) mount(ctx *Context, w Widget) {
	s.props = w.(Controls)
	s.m = ctx.Map() // fail fast outside a MapView
	s.attach(ctx)
}

func (s *controlsState) attach(ctx *Context) {
	if s.attached || !ctx.Ready() {
		return
	}
	s.build()
	s.attached = true
}

// build creates the configured buttons and registers them on the map.
func (s *controlsState) build() {
	v := s.props
	if v.Zoom {
		s.add(&meridian.Button{Glyph: meridian.GlyphPlus, OnPress: func() {
			s.m.Camera().ZoomBy(1, controlEase)
		}})
		s.add(&meridian.Button{Glyph: meridian.GlyphMinus, OnPress: func() {
			s.m.Camera().ZoomBy(-1, controlEase)
		}})
	}
	if v.Compass {
		s.compass = &meridian.Button{Glyph: meridian.GlyphCompass, OnPress: func() {
			s.m.Camera().ResetNorth(controlEase)
		}}
		s.syncCompass()
		s.add(s.compass)
		sync := func(meridian.Event) { s.syncCompass() }
		s.rotate = s.m.On(meridian.EventRotate, sync)
		s.pitch = s.m.On(meridian.EventPitch, sync)
	}
	if v.Locator != nil {
		s.locate = &meridian.Button{Glyph: meridian.GlyphLocate, OnPress: s.requestLocation}
		s.add(s.locate)
	}
	if v.Fullscreen {
		s.add(&meridian.Button{Glyph: meridian.GlyphFullscreen, OnPress: func() {
			ebiten.SetFullscreen(!ebiten.IsFullscreen())
		}})
	}
}

func (s *controlsState) add(b *meridian.Button) {
	s.buttons = append(s.buttons, b)
	s.m.AddControl(b, s.props.Position)
}

// syncCompass points the needle at geographic north for the current pose.
func (s *controlsState) syncCompass() {
	s.compass.Angle = -s.m.Camera().Bearing()
}

// requestLocation fires one geolocation request. No coalescing: every click
// gets its own request and its own OnLocate call.
func (s *controlsState) requestLocation() {
	s.pending++
	s.locate.Busy = true
	locator := s.props.Locator
	go func() {
		res := locator.Locate(context.Background())
		s.m.Dispatch(func() {
			s.pending--
			if s.disposed {
				return
			}
			if s.pending == 0 {
				s.locate.Busy = false
			}
			if res.Err == "" {
				zoom := s.props.FlyZoom
				if zoom <= 0 {
					zoom = 14
				}
				pose := s.m.Camera().Pose()
				pose.Center = res.LngLat
				pose.Zoom = zoom
				s.m.Camera().FlyTo(pose, locateFlyDuration)
			}
			if s.props.OnLocate != nil {
				s.props.OnLocate(res)
			}
		})
	}()
}

func (s *controlsState) update(ctx *Context, w Widget) {
	v := w.(Controls)
	prev := s.props
	s.props = v
	s.attach(ctx)
	if !s.attached {
		return
	}
	// A config change rebuilds the stack; the common steady-state render
	// changes nothing and issues no engine calls.
	if v.Position != prev.Position || v.Zoom != prev.Zoom || v.Compass != prev.Compass ||
		v.Fullscreen != prev.Fullscreen || (v.Locator == nil) != (prev.Locator == nil) {
		s.teardown()
		s.build()
	}
}

// teardown removes the buttons and compass listeners, leaving in-flight
// locate requests to resolve against the state's disposed flag.
func (s *controlsState) teardown() {
	if s.compass != nil {
		s.rotate.Remove()
		s.pitch.Remove()
		s.compass = nil
	}
	for _, b := range s.buttons {
		s.m.RemoveControl(b)
	}
	s.buttons = nil
	s.locate = nil
}

func (s *controlsState) unmount() {
	s.disposed = true
	if s.attached && !s.m.Destroyed() {
		s.teardown()
	}
}

func (s *controlsState) children(*Context, Widget) (*Context, []Widget) {
	return nil, nil
}
