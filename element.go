package meridian

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// elementIDCounter is a plain counter (no atomic, meridian is single-threaded).
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// elementFace is the shared face for element text content.
var elementFace = text.NewGoXFace(basicfont.Face7x13)

const (
	elementLineHeight = 16.0
	elementTextPad    = 6.0
)

// Element is an engine-owned content container attached to a marker or
// popup. The engine creates it once per proxy and keeps it alive across
// open/close cycles; callers project content into it and invalidate it
// explicitly when the content changes.
//
// Content comes from one of two paths: SetText renders wrapped text with
// the style's text color, and SetDraw hands the caller a surface to draw on.
// SetDraw wins when both are set. An element with neither stays empty and
// its owner falls back to the default visual (the marker dot).
type Element struct {
	id     uint32
	width  int
	height int

	draw      func(*ebiten.Image)
	textLines []string
	textColor *Color // nil = style text color

	surface  *ebiten.Image
	dirty    bool
	disposed bool
}

func newElement() *Element {
	return &Element{id: nextElementID(), dirty: true}
}

// ID returns the element's unique id. 0 after disposal.
func (e *Element) ID() uint32 { return e.id }

// SetSize sets the surface size in pixels for the SetDraw content path and
// invalidates the content. Text content sizes itself and ignores this.
func (e *Element) SetSize(w, h int) {
	if e.disposed {
		return
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if e.width == w && e.height == h {
		return
	}
	e.width = w
	e.height = h
	e.releaseSurface()
	e.dirty = true
}

// Size returns the current content size in pixels.
func (e *Element) Size() (w, h int) {
	if len(e.textLines) > 0 && e.draw == nil {
		return e.textSize()
	}
	return e.width, e.height
}

// SetDraw sets the content render callback. The callback receives a cleared
// surface of the size given to SetSize and is invoked once now and again
// after each MarkDirty.
func (e *Element) SetDraw(fn func(*ebiten.Image)) {
	if e.disposed {
		return
	}
	e.draw = fn
	e.dirty = true
}

// SetText replaces the content with wrapped text. Lines are split on '\n'.
func (e *Element) SetText(s string) {
	if e.disposed {
		return
	}
	if s == "" {
		e.textLines = nil
	} else {
		e.textLines = strings.Split(s, "\n")
	}
	e.releaseSurface()
	e.dirty = true
}

// Text returns the current text content.
func (e *Element) Text() string {
	return strings.Join(e.textLines, "\n")
}

// SetTextColor overrides the style's text color for this element.
func (e *Element) SetTextColor(c Color) {
	if e.disposed {
		return
	}
	e.textColor = &c
	e.dirty = true
}

// MarkDirty schedules a content re-render on the next frame. Call after
// mutating state the SetDraw callback reads.
func (e *Element) MarkDirty() {
	e.dirty = true
}

// Empty reports whether the element has no content.
func (e *Element) Empty() bool {
	return e.draw == nil && len(e.textLines) == 0
}

// IsDisposed reports whether this element has been disposed.
func (e *Element) IsDisposed() bool { return e.disposed }

// dispose releases the surface and detaches callbacks. Idempotent.
func (e *Element) dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.id = 0
	e.draw = nil
	e.textLines = nil
	e.textColor = nil
	e.releaseSurface()
}

func (e *Element) releaseSurface() {
	if e.surface != nil {
		surfaces.Release(e.surface)
		e.surface = nil
	}
}

// textSize measures the text content including padding.
func (e *Element) textSize() (w, h int) {
	maxW := 0.0
	for _, line := range e.textLines {
		lw, _ := text.Measure(line, elementFace, elementLineHeight)
		if lw > maxW {
			maxW = lw
		}
	}
	w = int(maxW + 2*elementTextPad)
	h = int(float64(len(e.textLines))*elementLineHeight + 2*elementTextPad)
	return w, h
}

// render returns the element's surface, re-rendering content if dirty.
// Returns nil for empty elements. The style supplies the text color.
func (e *Element) render(style *Style) *ebiten.Image {
	if e.disposed || e.Empty() {
		return nil
	}
	w, h := e.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	if e.surface != nil {
		b := e.surface.Bounds()
		if b.Dx() != w || b.Dy() != h {
			e.releaseSurface()
		}
	}
	if e.surface == nil {
		e.surface = surfaces.Get(w, h)
		e.dirty = true
	}
	if !e.dirty {
		return e.surface
	}
	e.dirty = false
	e.surface.Clear()

	if e.draw != nil {
		e.draw(e.surface)
		return e.surface
	}

	col := style.Text
	if e.textColor != nil {
		col = *e.textColor
	}
	for i, line := range e.textLines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(elementTextPad, elementTextPad+float64(i)*elementLineHeight)
		op.ColorScale.ScaleWithColor(col.toRGBA())
		text.Draw(e.surface, line, elementFace, op)
	}
	return e.surface
}

// --- Surface pool ---

// surfacePool recycles element surfaces to avoid reallocating GPU images on
// every content size change. Surfaces are matched by exact size.
type surfacePool struct {
	free []*ebiten.Image
}

var surfaces surfacePool

const surfacePoolCap = 32

// Get returns a cleared surface of exactly (w, h), reusing a pooled one
// when available.
func (p *surfacePool) Get(w, h int) *ebiten.Image {
	for i := len(p.free) - 1; i >= 0; i-- {
		img := p.free[i]
		b := img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			copy(p.free[i:], p.free[i+1:])
			p.free[len(p.free)-1] = nil
			p.free = p.free[:len(p.free)-1]
			img.Clear()
			return img
		}
	}
	return ebiten.NewImage(w, h)
}

// Release returns a surface to the pool. Beyond the pool cap the surface is
// deallocated instead.
func (p *surfacePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	if len(p.free) >= surfacePoolCap {
		img.Deallocate()
		return
	}
	p.free = append(p.free, img)
}
