package compose

import "github.com/phanxgames/meridian"

// Tooltip shows while its enclosing Marker is hovered. The engine popup is
// added to and removed from the map on hover enter/leave — not merely
// hidden — so an unshown tooltip holds no place in the engine's overlay
// registry. The popup object and content element themselves persist across
// show cycles.
//
// Offset and MaxWidth follow the same open-only update rule as Popup.
type Tooltip struct {
	Key string

	Offset   meridian.Point
	MaxWidth float64
	Anchor   meridian.Anchor

	Text    string
	Content func(*meridian.Element)
}

func (w Tooltip) widgetKey() string { return w.Key }
func (w Tooltip) newState() state   { return &tooltipState{} }

type tooltipState struct {
	p     *meridian.Popup
	mk    *meridian.Marker
	m     *meridian.Map
	props Tooltip

	enter meridian.ListenerHandle
	leave meridian.ListenerHandle
}

func (s *tooltipState) mount(ctx *Context, w Widget) {
	v := w.(Tooltip)
	s.mk = ctx.Marker()
	s.m = ctx.Map()
	s.p = meridian.NewPopup(meridian.PopupOptions{
		Offset:   v.Offset,
		MaxWidth: v.MaxWidth,
		Anchor:   v.Anchor,
	})
	if v.Text != "" {
		s.p.SetText(v.Text)
	}
	if v.Content != nil {
		v.Content(s.p.Element())
	}
	s.p.AnchorTo(s.mk)
	s.props = v

	// Map-level hover listeners, filtered to this marker, leave the
	// marker's own OnEnter/OnLeave props untouched.
	s.enter = s.m.On(meridian.EventPointerEnter, func(ev meridian.Event) {
		if ev.Marker == s.mk {
			s.p.AddTo(s.m)
		}
	})
	s.leave = s.m.On(meridian.EventPointerLeave, func(ev meridian.Event) {
		if ev.Marker == s.mk {
			s.p.Remove()
		}
	})
}

func (s *tooltipState) update(_ *Context, w Widget) {
	v := w.(Tooltip)
	prev := s.props
	s.props = v

	if v.Text != prev.Text {
		s.p.SetText(v.Text)
	}
	if s.p.IsOpen() {
		if v.Offset != prev.Offset {
			s.p.SetOffset(v.Offset)
		}
		if v.MaxWidth != prev.MaxWidth {
			s.p.SetMaxWidth(v.MaxWidth)
		}
	}
}

func (s *tooltipState) unmount() {
	s.enter.Remove()
	s.leave.Remove()
	s.p.Dispose()
}

func (s *tooltipState) children(*Context, Widget) (*Context, []Widget) {
	return nil, nil
}
