package compose

import "github.com/phanxgames/meridian"

// Label renders always-visible, non-interactive text through the enclosing
// marker's content element. It replaces the marker's dot indicator; the
// marker's hit area follows the text bounds.
type Label struct {
	Key string

	Text string
	// Color overrides the style's text color. Nil keeps the style's.
	Color *meridian.Color
}

func (w Label) widgetKey() string { return w.Key }
func (w Label) newState() state   { return &labelState{} }

type labelState struct {
	el    *meridian.Element
	props Label
}

func (s *labelState) mount(ctx *Context, w Widget) {
	v := w.(Label)
	s.el = ctx.Marker().Element()
	s.el.SetText(v.Text)
	if v.Color != nil {
		s.el.SetTextColor(*v.Color)
	}
	s.props = v
}

func (s *labelState) update(_ *Context, w Widget) {
	v := w.(Label)
	prev := s.props
	s.props = v

	if v.Text != prev.Text {
		s.el.SetText(v.Text)
	}
	if v.Color != nil && (prev.Color == nil || *v.Color != *prev.Color) {
		s.el.SetTextColor(*v.Color)
	}
}

func (s *labelState) unmount() {
	// Clearing the text returns the marker to its dot indicator.
	s.el.SetText("")
}

func (s *labelState) children(*Context, Widget) (*Context, []Widget) {
	return nil, nil
}
