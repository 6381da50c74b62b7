package meridian

import "math"

// MarkerOptions configures a marker at construction. The zero value gives a
// non-draggable, viewport-aligned marker drawn as the style's default dot.
type MarkerOptions struct {
	Draggable bool
	// Offset shifts the marker's visual from its geographic anchor, in
	// screen pixels.
	Offset Point
	// Rotation is the marker's rotation in degrees clockwise.
	Rotation float64
	// RotationAlignment controls whether Rotation is relative to the
	// viewport (default) or the map.
	RotationAlignment Alignment
	// PitchAlignment controls whether the marker stays flat on the screen
	// (default) or tilts with the map.
	PitchAlignment Alignment
	// Anchor positions the content relative to the geographic point.
	// Defaults to AnchorCenter.
	Anchor Anchor
	// Color overrides the style's default dot color.
	Color *Color
}

// Marker is a point proxy pinned to a geographic coordinate. Create one with
// [NewMarker], place it with [Marker.SetLngLat], and attach it with
// [Marker.AddTo]. A marker is created once and mutated through targeted
// setters; it is never recreated to change a property.
type Marker struct {
	lngLat            LngLat
	draggable         bool
	offset            Point
	rotation          float64
	rotationAlignment Alignment
	pitchAlignment    Alignment
	anchor            Anchor
	color             *Color

	element *Element
	popup   *Popup
	m       *Map

	dragging bool
	hovered  bool

	// Per-marker callbacks (nil by default; zero cost when unused).
	OnClick     func(Event)
	OnEnter     func(Event)
	OnLeave     func(Event)
	OnDragStart func(Event)
	OnDrag      func(Event)
	OnDragEnd   func(Event)
}

// defaultDotRadius is the hit and render radius of the default marker dot.
const defaultDotRadius = 8.0

// NewMarker creates a detached marker with an empty content element.
func NewMarker(opts MarkerOptions) *Marker {
	if opts.Anchor == AnchorAuto {
		opts.Anchor = AnchorCenter
	}
	return &Marker{
		draggable:         opts.Draggable,
		offset:            opts.Offset,
		rotation:          opts.Rotation,
		rotationAlignment: opts.RotationAlignment,
		pitchAlignment:    opts.PitchAlignment,
		anchor:            opts.Anchor,
		color:             opts.Color,
		element:           newElement(),
	}
}

// AddTo attaches the marker to a map. If the marker is attached to another
// map it is removed from that map first. No-op when already attached to m.
func (mk *Marker) AddTo(m *Map) *Marker {
	if m == nil {
		panic("meridian: cannot add marker to nil map")
	}
	m.checkUsable("Marker.AddTo")
	if mk.m == m {
		return mk
	}
	if mk.m != nil {
		mk.Remove()
	}
	mk.m = m
	m.markers = append(m.markers, mk)
	return mk
}

// Remove detaches the marker from its map, closing its popup if open.
// No-op when unattached. The marker keeps its element and can be re-added.
func (mk *Marker) Remove() {
	if mk.m == nil {
		return
	}
	if mk.popup != nil && mk.popup.IsOpen() {
		mk.popup.Remove()
	}
	m := mk.m
	mk.m = nil
	mk.dragging = false
	mk.hovered = false
	for i, other := range m.markers {
		if other == mk {
			copy(m.markers[i:], m.markers[i+1:])
			m.markers[len(m.markers)-1] = nil
			m.markers = m.markers[:len(m.markers)-1]
			break
		}
	}
	m.input.forget(mk)
}

// Dispose removes the marker and releases its content element. Unlike
// Remove, a disposed marker cannot be re-added. Idempotent.
func (mk *Marker) Dispose() {
	mk.Remove()
	mk.element.dispose()
}

// SetLngLat moves the marker to the given coordinate.
func (mk *Marker) SetLngLat(ll LngLat) *Marker {
	mk.lngLat = LngLat{Lng: wrapLng(ll.Lng), Lat: clampLat(ll.Lat)}
	return mk
}

// LngLat returns the marker's coordinate.
func (mk *Marker) LngLat() LngLat { return mk.lngLat }

// SetDraggable enables or disables dragging. Disabling mid-drag cancels the
// drag without firing a drag end event.
func (mk *Marker) SetDraggable(d bool) {
	mk.draggable = d
	if !d {
		mk.dragging = false
	}
}

// Draggable reports whether the marker can be dragged.
func (mk *Marker) Draggable() bool { return mk.draggable }

// SetOffset sets the screen-pixel offset from the geographic anchor.
func (mk *Marker) SetOffset(off Point) { mk.offset = off }

// Offset returns the current screen-pixel offset.
func (mk *Marker) Offset() Point { return mk.offset }

// SetRotation sets the marker's rotation in degrees clockwise.
func (mk *Marker) SetRotation(deg float64) { mk.rotation = deg }

// Rotation returns the marker's rotation in degrees.
func (mk *Marker) Rotation() float64 { return mk.rotation }

// SetRotationAlignment controls whether the rotation is viewport- or
// map-relative.
func (mk *Marker) SetRotationAlignment(a Alignment) { mk.rotationAlignment = a }

// RotationAlignment returns the current rotation alignment.
func (mk *Marker) RotationAlignment() Alignment { return mk.rotationAlignment }

// SetPitchAlignment controls whether the marker tilts with the map.
func (mk *Marker) SetPitchAlignment(a Alignment) { mk.pitchAlignment = a }

// PitchAlignment returns the current pitch alignment.
func (mk *Marker) PitchAlignment() Alignment { return mk.pitchAlignment }

// SetColor overrides the style's default dot color.
func (mk *Marker) SetColor(c Color) { mk.color = &c }

// Element returns the marker's content element. The element is created with
// the marker and survives for its whole life; project content into it and
// call [Element.MarkDirty] on change.
func (mk *Marker) Element() *Element { return mk.element }

// SetPopup binds a popup to this marker. Clicking the marker toggles it.
// A previously bound popup is closed and unbound. Pass nil to unbind.
func (mk *Marker) SetPopup(p *Popup) *Marker {
	if mk.popup == p {
		return mk
	}
	if mk.popup != nil {
		if mk.popup.IsOpen() {
			mk.popup.Remove()
		}
		mk.popup.marker = nil
	}
	mk.popup = p
	if p != nil {
		p.marker = mk
	}
	return mk
}

// Popup returns the popup bound to this marker, or nil.
func (mk *Marker) Popup() *Popup { return mk.popup }

// TogglePopup opens the bound popup if closed and closes it if open.
// No-op when no popup is bound or the marker is unattached.
func (mk *Marker) TogglePopup() {
	if mk.popup == nil || mk.m == nil {
		return
	}
	if mk.popup.IsOpen() {
		mk.popup.Remove()
	} else {
		mk.popup.openOn(mk.m)
	}
}

// screenPos returns the marker's anchor position in screen pixels,
// including the configured offset.
func (mk *Marker) screenPos(cam *Camera) Point {
	p := cam.Project(mk.lngLat)
	p.X += mk.offset.X
	p.Y += mk.offset.Y
	return p
}

// screenRotation returns the render rotation in radians for the current
// camera pose.
func (mk *Marker) screenRotation(cam *Camera) float64 {
	deg := mk.rotation
	if mk.rotationAlignment == AlignMap {
		deg -= cam.bearing
	}
	return deg * math.Pi / 180
}

// screenPitchScale returns the vertical squash factor for the current pose.
func (mk *Marker) screenPitchScale(cam *Camera) float64 {
	if mk.pitchAlignment == AlignMap {
		return cam.pitchScale()
	}
	return 1
}

// bounds returns the marker's hit rectangle in screen pixels. Rotation is
// ignored for hit testing.
func (mk *Marker) bounds(cam *Camera) Rect {
	pos := mk.screenPos(cam)
	if mk.element.Empty() {
		return Rect{
			X:      pos.X - defaultDotRadius,
			Y:      pos.Y - defaultDotRadius,
			Width:  defaultDotRadius * 2,
			Height: defaultDotRadius * 2,
		}
	}
	w, h := mk.element.Size()
	return anchorRect(pos, float64(w), float64(h)*mk.screenPitchScale(cam), mk.anchor)
}

// dotColor returns the fill for the default dot under the given style.
func (mk *Marker) dotColor(style *Style) Color {
	if mk.color != nil {
		return *mk.color
	}
	return style.Marker
}

// anchorRect places a w x h rectangle relative to pos per the anchor.
func anchorRect(pos Point, w, h float64, anchor Anchor) Rect {
	r := Rect{Width: w, Height: h}
	switch anchor {
	case AnchorCenter:
		r.X = pos.X - w/2
		r.Y = pos.Y - h/2
	case AnchorTop:
		r.X = pos.X - w/2
		r.Y = pos.Y
	case AnchorBottom:
		r.X = pos.X - w/2
		r.Y = pos.Y - h
	case AnchorLeft:
		r.X = pos.X
		r.Y = pos.Y - h/2
	case AnchorRight:
		r.X = pos.X - w
		r.Y = pos.Y - h/2
	case AnchorTopLeft:
		r.X = pos.X
		r.Y = pos.Y
	case AnchorTopRight:
		r.X = pos.X - w
		r.Y = pos.Y
	case AnchorBottomLeft:
		r.X = pos.X
		r.Y = pos.Y - h
	case AnchorBottomRight:
		r.X = pos.X - w
		r.Y = pos.Y - h
	}
	return r
}
