package meridian

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Everything is drawn from the shared 1x1 white pixel: filled shapes as
// triangle fans and strips, rectangles as scaled DrawImage calls. Paint
// order is background, graticule, layers, markers, popups, controls, veil.

const (
	graticuleWidth  = 1.0
	markerRingWidth = 2.0
	popupBorder     = 1.0
	circleSegments  = 24
)

// --- Entry point ---

func (m *Map) draw(screen *ebiten.Image) {
	style := m.style
	screen.Fill(style.Background.toRGBA())

	m.drawGraticule(screen)
	m.drawLayers(screen)
	for _, mk := range m.markers {
		m.drawMarker(screen, mk)
	}
	for _, p := range m.popups {
		m.drawPopup(screen, p)
	}
	for _, s := range m.controls {
		m.drawControl(screen, s)
	}

	if !m.loaded || !m.styleLoaded {
		m.drawVeil(screen)
	}
	if m.debug {
		m.drawDebugHUD(screen)
	}
}

// --- Primitives ---

// fillRect draws a filled axis-aligned rectangle from the white pixel.
func fillRect(dst *ebiten.Image, r Rect, c Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(c.toRGBA())
	dst.DrawImage(WhitePixel, &op)
}

// strokeRect outlines a rectangle with four thin fills.
func strokeRect(dst *ebiten.Image, r Rect, w float64, c Color) {
	fillRect(dst, Rect{X: r.X, Y: r.Y, Width: r.Width, Height: w}, c)
	fillRect(dst, Rect{X: r.X, Y: r.Y + r.Height - w, Width: r.Width, Height: w}, c)
	fillRect(dst, Rect{X: r.X, Y: r.Y + w, Width: w, Height: r.Height - 2*w}, c)
	fillRect(dst, Rect{X: r.X + r.Width - w, Y: r.Y + w, Width: w, Height: r.Height - 2*w}, c)
}

// appendCircleFan appends a filled circle as a triangle fan.
func appendCircleFan(vs []ebiten.Vertex, is []uint16, center Point, radius float64, c Color) ([]ebiten.Vertex, []uint16) {
	cr := float32(c.R * c.A)
	cg := float32(c.G * c.A)
	cb := float32(c.B * c.A)
	ca := float32(c.A)

	base := uint16(len(vs))
	vs = append(vs, ebiten.Vertex{
		DstX: float32(center.X), DstY: float32(center.Y),
		SrcX: 0.5, SrcY: 0.5,
		ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
	})
	for i := 0; i <= circleSegments; i++ {
		a := float64(i) / circleSegments * 2 * math.Pi
		vs = append(vs, ebiten.Vertex{
			DstX: float32(center.X + math.Cos(a)*radius),
			DstY: float32(center.Y + math.Sin(a)*radius),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	for i := 0; i < circleSegments; i++ {
		is = append(is, base, base+1+uint16(i), base+2+uint16(i))
	}
	return vs, is
}

// circlePoints appends the perimeter of a circle as a closed polyline.
func circlePoints(buf []Point, center Point, radius float64) []Point {
	for i := 0; i <= circleSegments; i++ {
		a := float64(i) / circleSegments * 2 * math.Pi
		buf = append(buf, Point{
			X: center.X + math.Cos(a)*radius,
			Y: center.Y + math.Sin(a)*radius,
		})
	}
	return buf
}

// flush submits the accumulated vertices and resets the buffers.
func (m *Map) flush(dst *ebiten.Image) {
	if len(m.isBuf) == 0 {
		m.vsBuf = m.vsBuf[:0]
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(m.vsBuf, m.isBuf, WhitePixel, op)
	m.vsBuf = m.vsBuf[:0]
	m.isBuf = m.isBuf[:0]
}

// --- Graticule ---

// graticuleStep picks a grid spacing in degrees that keeps lines a sane
// distance apart at the given zoom.
func graticuleStep(zoom float64) float64 {
	switch {
	case zoom < 2:
		return 30
	case zoom < 3.5:
		return 15
	case zoom < 5:
		return 5
	case zoom < 7:
		return 2
	case zoom < 9:
		return 0.5
	case zoom < 11:
		return 0.1
	case zoom < 13:
		return 0.025
	default:
		return 0.005
	}
}

// drawGraticule draws meridians and parallels over the visible area. Both
// families are straight lines on the projected plane, so two points per
// line suffice even under rotation and pitch.
func (m *Map) drawGraticule(screen *ebiten.Image) {
	cam := m.camera
	vp := cam.viewport

	// Geographic bounds of the viewport, from its corners.
	corners := [4]LngLat{
		cam.Unproject(Point{X: vp.X, Y: vp.Y}),
		cam.Unproject(Point{X: vp.X + vp.Width, Y: vp.Y}),
		cam.Unproject(Point{X: vp.X, Y: vp.Y + vp.Height}),
		cam.Unproject(Point{X: vp.X + vp.Width, Y: vp.Y + vp.Height}),
	}
	minLng, maxLng := corners[0].Lng, corners[0].Lng
	minLat, maxLat := corners[0].Lat, corners[0].Lat
	for _, c := range corners[1:] {
		lng := c.Lng
		// Unwrap so a viewport across the antimeridian stays contiguous.
		for lng < minLng-180 {
			lng += 360
		}
		for lng > minLng+180 {
			lng -= 360
		}
		minLng = math.Min(minLng, lng)
		maxLng = math.Max(maxLng, lng)
		minLat = math.Min(minLat, c.Lat)
		maxLat = math.Max(maxLat, c.Lat)
	}
	minLat = clampLat(minLat)
	maxLat = clampLat(maxLat)

	step := graticuleStep(cam.zoom)
	col := m.style.Grid
	line := [2]Point{}

	for lng := math.Floor(minLng/step) * step; lng <= maxLng; lng += step {
		line[0] = cam.Project(LngLat{Lng: lng, Lat: minLat})
		line[1] = cam.Project(LngLat{Lng: lng, Lat: maxLat})
		m.vsBuf, m.isBuf = appendLineStrip(m.vsBuf, m.isBuf, line[:], graticuleWidth, col)
	}
	for lat := math.Floor(minLat/step) * step; lat <= maxLat; lat += step {
		if lat < -maxLatitude || lat > maxLatitude {
			continue
		}
		line[0] = cam.Project(LngLat{Lng: minLng, Lat: lat})
		line[1] = cam.Project(LngLat{Lng: maxLng, Lat: lat})
		m.vsBuf, m.isBuf = appendLineStrip(m.vsBuf, m.isBuf, line[:], graticuleWidth, col)
	}
	m.flush(screen)
}

// --- Layers ---

func (m *Map) drawLayers(screen *ebiten.Image) {
	for _, l := range m.layers {
		src := l.source()
		if src == nil || len(src.data) < 2 {
			continue
		}
		pts := m.projectBuf[:0]
		for _, ll := range src.data {
			pts = append(pts, m.camera.Project(ll))
		}
		m.projectBuf = pts

		col := l.strokeColor(m.style)
		if len(l.dash) > 0 {
			m.runsBuf = dashRuns(pts, l.dash, m.runsBuf)
			for _, run := range m.runsBuf {
				m.vsBuf, m.isBuf = appendLineStrip(m.vsBuf, m.isBuf, run, l.width, col)
			}
		} else {
			m.vsBuf, m.isBuf = appendLineStrip(m.vsBuf, m.isBuf, pts, l.width, col)
		}
		m.flush(screen)
	}
}

// --- Markers ---

func (m *Map) drawMarker(screen *ebiten.Image, mk *Marker) {
	cam := m.camera
	pos := mk.screenPos(cam)

	img := mk.element.render(m.style)
	if img == nil {
		// Default dot: filled circle with a ring, slightly enlarged on
		// hover.
		r := defaultDotRadius
		if mk.hovered {
			r += 1
		}
		if mk.pitchAlignment == AlignMap {
			// Squash the dot with the map plane.
			sy := mk.screenPitchScale(cam)
			m.vsBuf, m.isBuf = appendEllipseFan(m.vsBuf, m.isBuf, pos, r, r*sy, mk.dotColor(m.style))
		} else {
			m.vsBuf, m.isBuf = appendCircleFan(m.vsBuf, m.isBuf, pos, r, mk.dotColor(m.style))
		}
		ring := circlePoints(m.projectBuf[:0], pos, r)
		m.projectBuf = ring
		m.vsBuf, m.isBuf = appendLineStrip(m.vsBuf, m.isBuf, ring, markerRingWidth, m.style.Background)
		m.flush(screen)
		return
	}

	w, h := mk.element.Size()
	r := anchorRect(Point{}, float64(w), float64(h), mk.anchor)

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(r.X, r.Y)
	if rot := mk.screenRotation(cam); rot != 0 {
		op.GeoM.Rotate(rot)
	}
	if mk.pitchAlignment == AlignMap {
		op.GeoM.Scale(1, mk.screenPitchScale(cam))
	}
	op.GeoM.Translate(pos.X, pos.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, &op)
}

// appendEllipseFan is appendCircleFan with independent radii.
func appendEllipseFan(vs []ebiten.Vertex, is []uint16, center Point, rx, ry float64, c Color) ([]ebiten.Vertex, []uint16) {
	cr := float32(c.R * c.A)
	cg := float32(c.G * c.A)
	cb := float32(c.B * c.A)
	ca := float32(c.A)

	base := uint16(len(vs))
	vs = append(vs, ebiten.Vertex{
		DstX: float32(center.X), DstY: float32(center.Y),
		SrcX: 0.5, SrcY: 0.5,
		ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
	})
	for i := 0; i <= circleSegments; i++ {
		a := float64(i) / circleSegments * 2 * math.Pi
		vs = append(vs, ebiten.Vertex{
			DstX: float32(center.X + math.Cos(a)*rx),
			DstY: float32(center.Y + math.Sin(a)*ry),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	for i := 0; i < circleSegments; i++ {
		is = append(is, base, base+1+uint16(i), base+2+uint16(i))
	}
	return vs, is
}

// --- Popups ---

func (m *Map) drawPopup(screen *ebiten.Image, p *Popup) {
	style := m.style
	b := p.bounds(m.camera)

	// Stem: a small triangle from the bubble edge toward the anchor.
	tip := p.anchorPoint(m.camera)
	var baseA, baseB Point
	switch p.anchor {
	case AnchorTop, AnchorTopLeft, AnchorTopRight:
		baseA = Point{X: tip.X - popupStem, Y: b.Y}
		baseB = Point{X: tip.X + popupStem, Y: b.Y}
	case AnchorLeft:
		baseA = Point{X: b.X, Y: tip.Y - popupStem}
		baseB = Point{X: b.X, Y: tip.Y + popupStem}
	case AnchorRight:
		baseA = Point{X: b.X + b.Width, Y: tip.Y - popupStem}
		baseB = Point{X: b.X + b.Width, Y: tip.Y + popupStem}
	default:
		baseA = Point{X: tip.X - popupStem, Y: b.Y + b.Height}
		baseB = Point{X: tip.X + popupStem, Y: b.Y + b.Height}
	}
	m.vsBuf, m.isBuf = appendTriangle(m.vsBuf, m.isBuf, tip, baseA, baseB, style.PopupBackground)
	m.flush(screen)

	fillRect(screen, b, style.PopupBackground)
	strokeRect(screen, b, popupBorder, style.PopupBorder)

	// Content, clipped to the bubble interior.
	if img := p.element.render(style); img != nil {
		iw, ih := p.element.Size()
		cw, ch := p.contentSize()
		srcW := math.Min(float64(iw), cw)
		srcH := math.Min(float64(ih), ch)
		sub := img.SubImage(image.Rect(0, 0, int(srcW), int(srcH))).(*ebiten.Image)

		var op ebiten.DrawImageOptions
		op.GeoM.Translate(b.X+popupPad, b.Y+popupPad)
		screen.DrawImage(sub, &op)
	}

	// Close button: a small x.
	if p.closeButton {
		cr := p.closeRect(m.camera)
		cx := cr.X + cr.Width/2
		cy := cr.Y + cr.Height/2
		arm := cr.Width/2 - 5
		line := [2]Point{}
		line[0] = Point{X: cx - arm, Y: cy - arm}
		line[1] = Point{X: cx + arm, Y: cy + arm}
		m.vsBuf, m.isBuf = appendLineStrip(m.vsBuf, m.isBuf, line[:], 1.5, style.PopupText)
		line[0] = Point{X: cx - arm, Y: cy + arm}
		line[1] = Point{X: cx + arm, Y: cy - arm}
		m.vsBuf, m.isBuf = appendLineStrip(m.vsBuf, m.isBuf, line[:], 1.5, style.PopupText)
		m.flush(screen)
	}
}

func appendTriangle(vs []ebiten.Vertex, is []uint16, a, b, c Point, col Color) ([]ebiten.Vertex, []uint16) {
	cr := float32(col.R * col.A)
	cg := float32(col.G * col.A)
	cb := float32(col.B * col.A)
	ca := float32(col.A)
	base := uint16(len(vs))
	for _, p := range [3]Point{a, b, c} {
		vs = append(vs, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	return vs, append(is, base, base+1, base+2)
}

// --- Controls ---

func (m *Map) drawControl(screen *ebiten.Image, s *controlSlot) {
	style := m.style
	r := s.rect
	fillRect(screen, r, style.ControlBackground)
	strokeRect(screen, r, 1, style.Grid)

	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	col := style.ControlIcon

	if s.button.Busy {
		m.drawSpinner(screen, Point{X: cx, Y: cy}, col)
		return
	}

	switch s.button.Glyph {
	case GlyphPlus:
		fillRect(screen, Rect{X: cx - 6, Y: cy - 1, Width: 12, Height: 2}, col)
		fillRect(screen, Rect{X: cx - 1, Y: cy - 6, Width: 2, Height: 12}, col)

	case GlyphMinus:
		fillRect(screen, Rect{X: cx - 6, Y: cy - 1, Width: 12, Height: 2}, col)

	case GlyphCompass:
		// Diamond needle rotated with the camera bearing; the north half
		// is solid, the south half faded.
		rad := -s.button.Angle * math.Pi / 180
		sin, cos := math.Sin(rad), math.Cos(rad)
		rot := func(x, y float64) Point {
			return Point{X: cx + x*cos - y*sin, Y: cy + x*sin + y*cos}
		}
		north := rot(0, -9)
		south := rot(0, 9)
		east := rot(3.5, 0)
		west := rot(-3.5, 0)
		m.vsBuf, m.isBuf = appendTriangle(m.vsBuf, m.isBuf, north, west, east, col)
		m.vsBuf, m.isBuf = appendTriangle(m.vsBuf, m.isBuf, south, west, east, col.withAlpha(col.A*0.35))
		m.flush(screen)

	case GlyphLocate:
		center := Point{X: cx, Y: cy}
		ring := circlePoints(m.projectBuf[:0], center, 7)
		m.projectBuf = ring
		m.vsBuf, m.isBuf = appendLineStrip(m.vsBuf, m.isBuf, ring, 1.5, col)
		m.vsBuf, m.isBuf = appendCircleFan(m.vsBuf, m.isBuf, center, 2.5, col)
		m.flush(screen)

	case GlyphFullscreen:
		const a, t = 7.0, 2.0 // arm length and thickness
		fillRect(screen, Rect{X: cx - a, Y: cy - a, Width: a - 2, Height: t}, col)
		fillRect(screen, Rect{X: cx - a, Y: cy - a, Width: t, Height: a - 2}, col)
		fillRect(screen, Rect{X: cx + 2, Y: cy - a, Width: a - 2, Height: t}, col)
		fillRect(screen, Rect{X: cx + a - t, Y: cy - a, Width: t, Height: a - 2}, col)
		fillRect(screen, Rect{X: cx - a, Y: cy + a - t, Width: a - 2, Height: t}, col)
		fillRect(screen, Rect{X: cx - a, Y: cy + 2, Width: t, Height: a - 2}, col)
		fillRect(screen, Rect{X: cx + 2, Y: cy + a - t, Width: a - 2, Height: t}, col)
		fillRect(screen, Rect{X: cx + a - t, Y: cy + 2, Width: t, Height: a - 2}, col)
	}
}

// drawSpinner draws eight dots of decaying alpha, rotating with the frame
// counter.
func (m *Map) drawSpinner(screen *ebiten.Image, center Point, col Color) {
	phase := int(m.frame / 4 % 8)
	for i := 0; i < 8; i++ {
		a := float64(i) / 8 * 2 * math.Pi
		p := Point{X: center.X + math.Cos(a)*7, Y: center.Y + math.Sin(a)*7}
		age := (i - phase + 8) % 8
		alpha := 1.0 - float64(age)/8
		m.vsBuf, m.isBuf = appendCircleFan(m.vsBuf, m.isBuf, p, 1.8, col.withAlpha(col.A*alpha))
	}
	m.flush(screen)
}

// --- Loading veil ---

func (m *Map) drawVeil(screen *ebiten.Image) {
	vp := m.camera.viewport
	fillRect(screen, vp, m.style.Veil)
	drawLabel(screen, "Loading...", Point{X: vp.X + vp.Width/2 - 30, Y: vp.Y + vp.Height/2 - 8}, m.style.Text)
}

// drawLabel draws a single line of text at pos using the shared face.
func drawLabel(dst *ebiten.Image, s string, pos Point, c Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleWithColor(c.toRGBA())
	text.Draw(dst, s, elementFace, op)
}
