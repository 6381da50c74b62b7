package compose

import "github.com/phanxgames/meridian"

// Marker pins a marker proxy to a coordinate. The proxy is created once per
// component identity and kept across render passes; each pass diffs the
// props against the last applied set and calls only the setters that
// changed, in a fixed order: position, draggable, offset, rotation,
// rotation alignment, pitch alignment.
//
// Content is projected into the engine-owned element, so dragging a
// draggable marker never recreates its visual. With no content the marker
// renders as the style's dot indicator.
type Marker struct {
	Key string

	Position  meridian.LngLat
	Draggable bool
	Offset    meridian.Point
	Rotation  float64

	RotationAlignment meridian.Alignment
	PitchAlignment    meridian.Alignment
	Anchor            meridian.Anchor

	// Color overrides the style's dot color. Nil keeps the style's.
	Color *meridian.Color

	// Content receives the engine-owned element once, when the proxy is
	// created. Configure it there (SetText, SetDraw, SetSize) and call
	// MarkDirty after later mutations.
	Content func(*meridian.Element)

	OnClick func(meridian.Event)
	OnEnter func(meridian.Event)
	OnLeave func(meridian.Event)

	// Drag callbacks report the marker's coordinate at each stage.
	OnDragStart func(meridian.LngLat)
	OnDrag      func(meridian.LngLat)
	OnDragEnd   func(meridian.LngLat)

	// Children mount in this marker's scope: Popup, Tooltip, Label.
	Children []Widget
}

func (w Marker) widgetKey() string { return w.Key }
func (w Marker) newState() state   { return &markerState{} }

type markerState struct {
	m        *meridian.Map
	mk       *meridian.Marker
	props    Marker // last applied props
	attached bool
}

func (s *markerState) mount(ctx *Context, w Widget) {
	v := w.(Marker)
	s.m = ctx.Map() // fail fast outside a MapView
	s.mk = meridian.NewMarker(meridian.MarkerOptions{
		Draggable:         v.Draggable,
		Offset:            v.Offset,
		Rotation:          v.Rotation,
		RotationAlignment: v.RotationAlignment,
		PitchAlignment:    v.PitchAlignment,
		Anchor:            v.Anchor,
		Color:             v.Color,
	})
	s.mk.SetLngLat(v.Position)
	if v.Content != nil {
		v.Content(s.mk.Element())
	}

	// Engine callbacks read the latest props through the state, so callback
	// props can change without rewiring.
	s.mk.OnClick = func(ev meridian.Event) {
		if s.props.OnClick != nil {
			s.props.OnClick(ev)
		}
	}
	s.mk.OnEnter = func(ev meridian.Event) {
		if s.props.OnEnter != nil {
			s.props.OnEnter(ev)
		}
	}
	s.mk.OnLeave = func(ev meridian.Event) {
		if s.props.OnLeave != nil {
			s.props.OnLeave(ev)
		}
	}
	s.mk.OnDragStart = func(meridian.Event) {
		if s.props.OnDragStart != nil {
			s.props.OnDragStart(s.mk.LngLat())
		}
	}
	s.mk.OnDrag = func(meridian.Event) {
		if s.props.OnDrag != nil {
			s.props.OnDrag(s.mk.LngLat())
		}
	}
	s.mk.OnDragEnd = func(meridian.Event) {
		if s.props.OnDragEnd != nil {
			s.props.OnDragEnd(s.mk.LngLat())
		}
	}

	s.props = v
	s.attach(ctx)
}

// attach adds the proxy to the map once the engine is ready. Until then the
// state stays in the attaching phase and retries on the next pass.
func (s *markerState) attach(ctx *Context) {
	if s.attached || !ctx.Ready() {
		return
	}
	s.mk.AddTo(s.m)
	s.attached = true
}

func (s *markerState) update(ctx *Context, w Widget) {
	v := w.(Marker)
	prev := s.props
	s.props = v
	s.attach(ctx)

	// Fixed diff order; unchanged props issue no engine calls. Position is
	// compared against the previous prop, not the proxy, so a user drag is
	// not snapped back by a re-render with a stale position prop.
	if v.Position != prev.Position {
		s.mk.SetLngLat(v.Position)
	}
	if v.Draggable != prev.Draggable {
		s.mk.SetDraggable(v.Draggable)
	}
	if v.Offset != prev.Offset {
		s.mk.SetOffset(v.Offset)
	}
	if v.Rotation != prev.Rotation {
		s.mk.SetRotation(v.Rotation)
	}
	if v.RotationAlignment != prev.RotationAlignment {
		s.mk.SetRotationAlignment(v.RotationAlignment)
	}
	if v.PitchAlignment != prev.PitchAlignment {
		s.mk.SetPitchAlignment(v.PitchAlignment)
	}
	if v.Color != nil && (prev.Color == nil || *v.Color != *prev.Color) {
		s.mk.SetColor(*v.Color)
	}
}

func (s *markerState) unmount() {
	s.mk.Dispose()
	s.attached = false
}

func (s *markerState) children(ctx *Context, w Widget) (*Context, []Widget) {
	v := w.(Marker)
	if !s.attached {
		return nil, nil
	}
	return ctx.withMarker(s.mk), v.Children
}
