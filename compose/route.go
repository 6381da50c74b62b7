package compose

import (
	"fmt"

	"github.com/phanxgames/meridian"
)

// routeIDCounter generates ids for routes without an explicit one. Plain
// counter; compose runs on the engine tick.
var routeIDCounter uint32

func nextRouteID() string {
	routeIDCounter++
	return fmt.Sprintf("route-%d", routeIDCounter)
}

// RouteLine draws an ordered coordinate path as a styled line. The engine
// source and layer pair is created exactly once per component identity,
// keyed by ID (or a generated id when empty — set ID when other code needs
// to find the layer, and keep it unique per map).
//
// Coordinate changes replace the source data in place; fewer than two
// coordinates clear the geometry without tearing anything down. Paint
// changes go through independent setters. Teardown removes the layer, then
// the source, tolerating either already being gone.
type RouteLine struct {
	// ID keys the source and layer. Duplicate explicit IDs on one map are a
	// programming error.
	ID string

	Coordinates []meridian.LngLat

	// Color strokes the line. Nil uses the style's marker color.
	Color *meridian.Color
	// Width is the stroke width in pixels. Zero keeps the engine default.
	Width float64
	// Opacity multiplies the stroke alpha. Zero means opaque.
	Opacity float64
	// Dash alternates drawn and skipped lengths in pixels. Empty is solid.
	Dash []float64

	// Interactive makes the line a pointer target: click and hover
	// callbacks fire and hovering shows the pointer cursor.
	Interactive bool

	OnClick func(meridian.Event)
	OnEnter func(meridian.Event)
	OnLeave func(meridian.Event)
}

func (w RouteLine) widgetKey() string { return w.ID }
func (w RouteLine) newState() state   { return &routeState{} }

type routeState struct {
	m     *meridian.Map
	props RouteLine

	id       string
	src      *meridian.Source
	layer    *meridian.LineLayer
	attached bool
}

func (s *routeState) mount(ctx *Context, w Widget) {
	v := w.(RouteLine)
	s.m = ctx.Map() // fail fast outside a MapView
	s.id = v.ID
	if s.id == "" {
		s.id = nextRouteID()
	}
	s.src = meridian.NewSource(s.id)
	s.layer = meridian.NewLineLayer(s.id, s.id, meridian.LineLayerOptions{
		Color:       v.Color,
		Width:       v.Width,
		Opacity:     v.Opacity,
		Dash:        v.Dash,
		Interactive: v.Interactive,
	})
	s.layer.OnClick = func(ev meridian.Event) {
		if s.props.OnClick != nil {
			s.props.OnClick(ev)
		}
	}
	s.layer.OnEnter = func(ev meridian.Event) {
		if s.props.OnEnter != nil {
			s.props.OnEnter(ev)
		}
	}
	s.layer.OnLeave = func(ev meridian.Event) {
		if s.props.OnLeave != nil {
			s.props.OnLeave(ev)
		}
	}
	s.props = v
	s.attach(ctx)
}

func (s *routeState) attach(ctx *Context) {
	if s.attached || !ctx.Ready() {
		return
	}
	if err := s.m.AddSource(s.src); err != nil {
		panic("compose: " + err.Error())
	}
	if err := s.m.AddLayer(s.layer); err != nil {
		panic("compose: " + err.Error())
	}
	s.setData(s.props.Coordinates)
	s.attached = true
}

// setData replaces the source geometry; fewer than two coordinates clear it.
func (s *routeState) setData(coords []meridian.LngLat) {
	if len(coords) < 2 {
		s.src.SetData(nil)
		return
	}
	s.src.SetData(coords)
}

func (s *routeState) update(ctx *Context, w Widget) {
	v := w.(RouteLine)
	prev := s.props
	s.props = v
	s.attach(ctx)

	if !coordsEqual(v.Coordinates, prev.Coordinates) {
		s.setData(v.Coordinates)
	}
	// Paint properties are independent setters, never a layer rebuild.
	if v.Color != nil && (prev.Color == nil || *v.Color != *prev.Color) {
		s.layer.SetColor(v.Color)
	}
	if v.Width != prev.Width {
		s.layer.SetWidth(v.Width)
	}
	if v.Opacity != prev.Opacity {
		o := v.Opacity
		if o <= 0 {
			o = 1
		}
		s.layer.SetOpacity(o)
	}
	if !dashEqual(v.Dash, prev.Dash) {
		s.layer.SetDash(v.Dash)
	}
}

func (s *routeState) unmount() {
	if !s.attached || s.m.Destroyed() {
		return
	}
	// Layer before source; "not found" is discarded so fast remounts and
	// partial teardowns stay idempotent.
	_ = s.m.RemoveLayer(s.id)
	_ = s.m.RemoveSource(s.id)
	s.attached = false
}

func (s *routeState) children(*Context, Widget) (*Context, []Widget) {
	return nil, nil
}

func coordsEqual(a, b []meridian.LngLat) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dashEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
