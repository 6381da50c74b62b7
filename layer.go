package meridian

// LineLayerOptions configures how a line layer paints its source.
type LineLayerOptions struct {
	// Color strokes the line. Nil uses the style's marker color.
	Color *Color
	// Width is the stroke width in screen pixels. 0 means defaultLineWidth.
	Width float64
	// Opacity multiplies the stroke alpha. 0 means opaque.
	Opacity float64
	// Dash alternates drawn and skipped run lengths in screen pixels.
	// Empty means a solid line.
	Dash []float64
	// Interactive makes the layer a pointer target for click and hover.
	Interactive bool
}

const defaultLineWidth = 4.0

// LineLayer strokes a source's geometry on the map. Like sources, a layer
// is created once per id; paint changes go through the setters and take
// effect on the next frame.
type LineLayer struct {
	id       string
	sourceID string

	color       *Color
	width       float64
	opacity     float64
	dash        []float64
	interactive bool

	m       *Map
	hovered bool

	// OnClick fires when an interactive layer's line is clicked.
	OnClick func(Event)
	// OnEnter fires when the pointer moves onto an interactive layer's line.
	OnEnter func(Event)
	// OnLeave fires when the pointer moves off the line.
	OnLeave func(Event)
}

// NewLineLayer creates a detached line layer over the named source.
func NewLineLayer(id, sourceID string, opts LineLayerOptions) *LineLayer {
	if opts.Width <= 0 {
		opts.Width = defaultLineWidth
	}
	if opts.Opacity <= 0 || opts.Opacity > 1 {
		opts.Opacity = 1
	}
	return &LineLayer{
		id:          id,
		sourceID:    sourceID,
		color:       opts.Color,
		width:       opts.Width,
		opacity:     opts.Opacity,
		dash:        opts.Dash,
		interactive: opts.Interactive,
	}
}

// ID returns the layer id.
func (l *LineLayer) ID() string { return l.id }

// SourceID returns the id of the source the layer strokes.
func (l *LineLayer) SourceID() string { return l.sourceID }

// SetColor sets the stroke color. Nil falls back to the style's marker
// color.
func (l *LineLayer) SetColor(c *Color) { l.color = c }

// SetWidth sets the stroke width in screen pixels. Non-positive widths are
// ignored.
func (l *LineLayer) SetWidth(w float64) {
	if w > 0 {
		l.width = w
	}
}

// Width returns the stroke width in screen pixels.
func (l *LineLayer) Width() float64 { return l.width }

// SetOpacity sets the stroke alpha multiplier, clamped to [0, 1].
func (l *LineLayer) SetOpacity(o float64) {
	if o < 0 {
		o = 0
	}
	if o > 1 {
		o = 1
	}
	l.opacity = o
}

// Opacity returns the stroke alpha multiplier.
func (l *LineLayer) Opacity() float64 { return l.opacity }

// SetDash sets the dash pattern in screen pixels. Empty means solid.
func (l *LineLayer) SetDash(dash []float64) {
	l.dash = append(l.dash[:0:0], dash...)
}

// Interactive reports whether the layer is a pointer target.
func (l *LineLayer) Interactive() bool { return l.interactive }

// strokeColor resolves the paint color against the active style.
func (l *LineLayer) strokeColor(style *Style) Color {
	c := style.Marker
	if l.color != nil {
		c = *l.color
	}
	if l.opacity < 1 {
		c = c.withAlpha(c.A * l.opacity)
	}
	return c
}

// source resolves the layer's source on its map, nil when detached or the
// source was removed.
func (l *LineLayer) source() *Source {
	if l.m == nil {
		return nil
	}
	return l.m.sources[l.sourceID]
}
