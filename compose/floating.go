package compose

import "github.com/phanxgames/meridian"

// FloatingPopup is a selection-driven overlay whose lifetime is its own
// mount/unmount rather than a marker's click cycle: mount it when something
// is selected, unmount it when the selection clears. The engine popup is
// created once per mount and opened as soon as the engine is ready;
// position-prop changes reposition it in place.
//
// Offset and MaxWidth follow the same open-only update rule as Popup.
// OnClose fires exactly once per open cycle whether the popup is closed by
// its button, a background click, or unmount.
type FloatingPopup struct {
	Key string

	Position meridian.LngLat

	Offset   meridian.Point
	MaxWidth float64

	CloseButton  bool
	CloseOnClick bool
	Anchor       meridian.Anchor

	Text    string
	Content func(*meridian.Element)

	OnClose func()
}

func (w FloatingPopup) widgetKey() string { return w.Key }
func (w FloatingPopup) newState() state   { return &floatingState{} }

type floatingState struct {
	m     *meridian.Map
	p     *meridian.Popup
	props FloatingPopup
	open  bool
}

func (s *floatingState) mount(ctx *Context, w Widget) {
	v := w.(FloatingPopup)
	s.m = ctx.Map() // fail fast outside a MapView
	s.p = meridian.NewPopup(meridian.PopupOptions{
		Offset:       v.Offset,
		MaxWidth:     v.MaxWidth,
		CloseButton:  v.CloseButton,
		CloseOnClick: v.CloseOnClick,
		Anchor:       v.Anchor,
	})
	s.p.SetLngLat(v.Position)
	if v.Text != "" {
		s.p.SetText(v.Text)
	}
	if v.Content != nil {
		v.Content(s.p.Element())
	}
	s.p.OnClose = func() {
		if s.props.OnClose != nil {
			s.props.OnClose()
		}
	}
	s.props = v
	s.attach(ctx)
}

func (s *floatingState) attach(ctx *Context) {
	if s.open || !ctx.Ready() {
		return
	}
	s.p.AddTo(s.m)
	s.open = true
}

func (s *floatingState) update(ctx *Context, w Widget) {
	v := w.(FloatingPopup)
	prev := s.props
	s.props = v
	s.attach(ctx)

	if v.Position != prev.Position {
		s.p.SetLngLat(v.Position)
	}
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

func (s *floatingState) unmount() {
	// Dispose closes through Remove, so an engine-triggered close earlier
	// in the cycle leaves nothing to fire: one OnClose per open cycle.
	s.p.Dispose()
	s.open = false
}

func (s *floatingState) children(*Context, Widget) (*Context, []Widget) {
	return nil, nil
}
