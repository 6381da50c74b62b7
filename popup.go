package meridian

// PopupOptions configures a popup at construction. The zero value gives an
// anchored bubble with no close button that only closes programmatically.
type PopupOptions struct {
	// Offset shifts the bubble from its anchor point, in screen pixels.
	Offset Point
	// MaxWidth caps the bubble width in pixels. 0 means defaultPopupMaxWidth.
	MaxWidth float64
	// CloseButton shows an in-bubble close button that dismisses the popup.
	CloseButton bool
	// CloseOnClick dismisses the popup when the map background is clicked.
	CloseOnClick bool
	// Anchor positions the bubble relative to the anchor point.
	// Defaults to AnchorBottom (bubble above the point).
	Anchor Anchor
}

const (
	defaultPopupMaxWidth = 240.0
	popupPad             = 8.0
	popupStem            = 10.0
	popupCloseSize       = 16.0
)

// Popup is a transient overlay bubble anchored to a coordinate or a marker.
// The popup object and its content element are created once and reused
// across open/close cycles; opening and closing only toggles attachment to
// the map.
type Popup struct {
	offset       Point
	maxWidth     float64
	closeButton  bool
	closeOnClick bool
	anchor       Anchor

	lngLat  LngLat
	marker  *Marker // anchor marker, nil for standalone popups
	element *Element
	m       *Map // non-nil while open

	// OnOpen fires when the popup is added to the map.
	OnOpen func()
	// OnClose fires when the popup is removed from the map, whatever the
	// cause: the close button, a background click, Remove, or map teardown.
	// Fires exactly once per open cycle.
	OnClose func()
}

// NewPopup creates a closed popup with an empty content element.
func NewPopup(opts PopupOptions) *Popup {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = defaultPopupMaxWidth
	}
	if opts.Anchor == AnchorAuto {
		opts.Anchor = AnchorBottom
	}
	return &Popup{
		offset:       opts.Offset,
		maxWidth:     opts.MaxWidth,
		closeButton:  opts.CloseButton,
		closeOnClick: opts.CloseOnClick,
		anchor:       opts.Anchor,
		element:      newElement(),
	}
}

// SetLngLat positions a standalone popup. While open, the popup follows the
// new coordinate in place; it is never closed and reopened to move.
func (p *Popup) SetLngLat(ll LngLat) *Popup {
	p.lngLat = LngLat{Lng: wrapLng(ll.Lng), Lat: clampLat(ll.Lat)}
	return p
}

// LngLat returns the popup's coordinate. For marker-bound popups this is
// the marker's coordinate while open.
func (p *Popup) LngLat() LngLat {
	if p.marker != nil {
		return p.marker.LngLat()
	}
	return p.lngLat
}

// AnchorTo pins the popup's position to a marker without binding it to the
// marker's click toggle (see [Marker.SetPopup] for that). Used for hover
// tooltips that are added and removed explicitly. Pass nil to unpin.
func (p *Popup) AnchorTo(mk *Marker) *Popup {
	p.marker = mk
	return p
}

// AddTo opens the popup on the map at its coordinate. Used for standalone
// popups; marker-bound popups open through [Marker.TogglePopup]. No-op when
// already open on m.
func (p *Popup) AddTo(m *Map) *Popup {
	if m == nil {
		panic("meridian: cannot add popup to nil map")
	}
	m.checkUsable("Popup.AddTo")
	p.openOn(m)
	return p
}

// openOn attaches the popup to a map and fires open notifications.
func (p *Popup) openOn(m *Map) {
	if p.m == m {
		return
	}
	if p.m != nil {
		p.Remove()
	}
	p.m = m
	m.popups = append(m.popups, p)
	if p.OnOpen != nil {
		p.OnOpen()
	}
	m.events.fire(Event{Type: EventPopupOpen, Popup: p, LngLat: p.LngLat()})
}

// Remove closes the popup. Safe to call when already closed; the close
// notifications fire exactly once per open cycle.
func (p *Popup) Remove() {
	if p.m == nil {
		return
	}
	m := p.m
	p.m = nil
	for i, other := range m.popups {
		if other == p {
			copy(m.popups[i:], m.popups[i+1:])
			m.popups[len(m.popups)-1] = nil
			m.popups = m.popups[:len(m.popups)-1]
			break
		}
	}
	if p.OnClose != nil {
		p.OnClose()
	}
	m.events.fire(Event{Type: EventPopupClose, Popup: p, LngLat: p.LngLat()})
}

// Dispose closes the popup and releases its content element. Unlike Remove,
// a disposed popup cannot be reopened. Idempotent.
func (p *Popup) Dispose() {
	p.Remove()
	p.element.dispose()
}

// IsOpen reports whether the popup is currently on a map.
func (p *Popup) IsOpen() bool { return p.m != nil }

// SetOffset sets the screen-pixel offset from the anchor point.
func (p *Popup) SetOffset(off Point) { p.offset = off }

// Offset returns the current screen-pixel offset.
func (p *Popup) Offset() Point { return p.offset }

// SetMaxWidth caps the bubble width in pixels.
func (p *Popup) SetMaxWidth(w float64) {
	if w > 0 {
		p.maxWidth = w
	}
}

// MaxWidth returns the current width cap.
func (p *Popup) MaxWidth() float64 { return p.maxWidth }

// CloseButton reports whether the popup shows a close button.
func (p *Popup) CloseButton() bool { return p.closeButton }

// Element returns the popup's content element. The element is created with
// the popup and persists across open/close cycles.
func (p *Popup) Element() *Element { return p.element }

// SetText is shorthand for Element().SetText.
func (p *Popup) SetText(s string) *Popup {
	p.element.SetText(s)
	return p
}

// Bounds returns the bubble rectangle in screen pixels under the given
// camera pose, excluding the stem. Useful for positioning UI around an open
// popup or driving synthetic input at it.
func (p *Popup) Bounds(cam *Camera) Rect { return p.bounds(cam) }

// CloseRect returns the close button's hit rectangle in screen pixels, or a
// zero Rect when the popup has no close button.
func (p *Popup) CloseRect(cam *Camera) Rect { return p.closeRect(cam) }

// anchorPoint returns the screen position the bubble is anchored to.
func (p *Popup) anchorPoint(cam *Camera) Point {
	var pos Point
	if p.marker != nil {
		pos = p.marker.screenPos(cam)
	} else {
		pos = cam.Project(p.lngLat)
	}
	pos.X += p.offset.X
	pos.Y += p.offset.Y
	return pos
}

// contentSize returns the bubble's content size, width-capped by MaxWidth.
func (p *Popup) contentSize() (w, h float64) {
	ew, eh := p.element.Size()
	w = float64(ew)
	h = float64(eh)
	if w < popupCloseSize*2 {
		w = popupCloseSize * 2
	}
	if h < popupCloseSize {
		h = popupCloseSize
	}
	if w > p.maxWidth {
		w = p.maxWidth
	}
	return w, h
}

// bounds returns the bubble rectangle in screen pixels, excluding the stem.
func (p *Popup) bounds(cam *Camera) Rect {
	pos := p.anchorPoint(cam)
	w, h := p.contentSize()
	w += 2 * popupPad
	h += 2 * popupPad

	// Leave room for the stem between the bubble and the anchor.
	stemmed := pos
	switch p.anchor {
	case AnchorBottom, AnchorBottomLeft, AnchorBottomRight:
		stemmed.Y -= popupStem
	case AnchorTop, AnchorTopLeft, AnchorTopRight:
		stemmed.Y += popupStem
	case AnchorLeft:
		stemmed.X += popupStem
	case AnchorRight:
		stemmed.X -= popupStem
	}
	return anchorRect(stemmed, w, h, p.anchor)
}

// closeRect returns the close button's hit rectangle, or a zero Rect when
// the popup has no close button.
func (p *Popup) closeRect(cam *Camera) Rect {
	if !p.closeButton {
		return Rect{}
	}
	b := p.bounds(cam)
	return Rect{
		X:      b.X + b.Width - popupCloseSize - 2,
		Y:      b.Y + 2,
		Width:  popupCloseSize,
		Height: popupCloseSize,
	}
}
