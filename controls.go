package meridian

// --- Buttons ---

// Glyph selects the icon drawn on a control button.
type Glyph uint8

const (
	GlyphPlus Glyph = iota
	GlyphMinus
	GlyphCompass
	GlyphLocate
	GlyphFullscreen
)

const (
	controlSize   = 28.0 // button edge in pixels
	controlMargin = 8.0  // distance from the viewport edge
	controlGap    = 4.0  // distance between stacked buttons
)

// Button is a square control drawn over the map. Buttons are dumb: they
// render a glyph and report presses, all behavior lives in OnPress.
type Button struct {
	Glyph Glyph
	// OnPress fires on a completed click on the button.
	OnPress func()
	// Busy overlays a spinner on the glyph while a request is in flight.
	Busy bool
	// Angle rotates the glyph in degrees. The compass needle tracks the
	// camera bearing through it.
	Angle float64
}

// controlSlot pairs a button with its corner and laid-out rectangle.
type controlSlot struct {
	button *Button
	pos    ControlPosition
	rect   Rect
}

// --- Map registration ---

// AddControl places a button in the given viewport corner. Buttons stack
// outward from the corner in the order they are added.
func (m *Map) AddControl(b *Button, pos ControlPosition) {
	if b == nil {
		panic("meridian: cannot add nil control")
	}
	m.checkUsable("Map.AddControl")
	for _, s := range m.controls {
		if s.button == b {
			return
		}
	}
	m.controls = append(m.controls, &controlSlot{button: b, pos: pos})
	m.layoutControls()
}

// RemoveControl removes a button from the map. No-op if the button was
// never added.
func (m *Map) RemoveControl(b *Button) {
	for i, s := range m.controls {
		if s.button == b {
			copy(m.controls[i:], m.controls[i+1:])
			m.controls[len(m.controls)-1] = nil
			m.controls = m.controls[:len(m.controls)-1]
			m.layoutControls()
			return
		}
	}
}

// layoutControls recomputes button rectangles. Called when the control set
// or the viewport changes.
func (m *Map) layoutControls() {
	vp := m.camera.viewport
	var counts [4]int
	for _, s := range m.controls {
		i := int(s.pos)
		step := float64(counts[i]) * (controlSize + controlGap)
		counts[i]++

		switch s.pos {
		case ControlTopLeft:
			s.rect = Rect{X: vp.X + controlMargin, Y: vp.Y + controlMargin + step, Width: controlSize, Height: controlSize}
		case ControlTopRight:
			s.rect = Rect{X: vp.X + vp.Width - controlMargin - controlSize, Y: vp.Y + controlMargin + step, Width: controlSize, Height: controlSize}
		case ControlBottomLeft:
			s.rect = Rect{X: vp.X + controlMargin, Y: vp.Y + vp.Height - controlMargin - controlSize - step, Width: controlSize, Height: controlSize}
		case ControlBottomRight:
			s.rect = Rect{X: vp.X + vp.Width - controlMargin - controlSize, Y: vp.Y + vp.Height - controlMargin - controlSize - step, Width: controlSize, Height: controlSize}
		}
	}
}
