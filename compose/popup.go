package compose

import "github.com/phanxgames/meridian"

// Popup is a click-opened overlay anchored to its enclosing Marker:
// clicking the marker toggles it. The engine popup and its content element
// are created once and reused across open/close cycles.
//
// Offset and MaxWidth changes apply only while the popup is open; changes
// made while closed are dropped, so the popup reopens with the attributes
// it last opened with. Text changes apply regardless (the content element
// persists either way).
//
// OnClose fires exactly once per open cycle, whether the close button, a
// background click (with CloseOnClick), the anchor toggle, or unmount
// closed it.
type Popup struct {
	Key string

	Offset   meridian.Point
	MaxWidth float64

	// CloseButton and CloseOnClick are fixed at proxy creation.
	CloseButton  bool
	CloseOnClick bool
	Anchor       meridian.Anchor

	Text    string
	Content func(*meridian.Element)

	OnOpen  func()
	OnClose func()
}

func (w Popup) widgetKey() string { return w.Key }
func (w Popup) newState() state   { return &popupState{} }

type popupState struct {
	p     *meridian.Popup
	mk    *meridian.Marker
	props Popup
}

func (s *popupState) mount(ctx *Context, w Widget) {
	v := w.(Popup)
	s.mk = ctx.Marker()
	s.p = meridian.NewPopup(meridian.PopupOptions{
		Offset:       v.Offset,
		MaxWidth:     v.MaxWidth,
		CloseButton:  v.CloseButton,
		CloseOnClick: v.CloseOnClick,
		Anchor:       v.Anchor,
	})
	if v.Text != "" {
		s.p.SetText(v.Text)
	}
	if v.Content != nil {
		v.Content(s.p.Element())
	}
	s.p.OnOpen = func() {
		if s.props.OnOpen != nil {
			s.props.OnOpen()
		}
	}
	s.p.OnClose = func() {
		if s.props.OnClose != nil {
			s.props.OnClose()
		}
	}
	s.props = v
	s.mk.SetPopup(s.p)
}

func (s *popupState) update(_ *Context, w Widget) {
	v := w.(Popup)
	prev := s.props
	s.props = v

	if v.Text != prev.Text {
		s.p.SetText(v.Text)
	}
	// Open-only rule: geometry attributes are not applied while closed.
	if s.p.IsOpen() {
		if v.Offset != prev.Offset {
			s.p.SetOffset(v.Offset)
		}
		if v.MaxWidth != prev.MaxWidth {
			s.p.SetMaxWidth(v.MaxWidth)
		}
	}
}

func (s *popupState) unmount() {
	// Unbinding closes an open popup, firing OnClose through the engine's
	// once-per-cycle guard.
	s.mk.SetPopup(nil)
	s.p.Dispose()
}

func (s *popupState) children(*Context, Widget) (*Context, []Widget) {
	return nil, nil
}
