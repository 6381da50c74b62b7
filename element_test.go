package meridian

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestElementStartsEmpty(t *testing.T) {
	e := newElement()
	if !e.Empty() {
		t.Error("new element is not empty")
	}
	if e.ID() == 0 {
		t.Error("new element has id 0")
	}
}

func TestElementTextContent(t *testing.T) {
	e := newElement()
	e.SetText("hello")
	if e.Empty() {
		t.Error("element with text reports empty")
	}
	if e.Text() != "hello" {
		t.Errorf("Text() = %q, want %q", e.Text(), "hello")
	}

	w1, h1 := e.Size()
	if w1 <= 0 || h1 <= 0 {
		t.Fatalf("text size = %d x %d, want positive", w1, h1)
	}

	e.SetText("hello\nworld")
	if e.Text() != "hello\nworld" {
		t.Errorf("Text() = %q", e.Text())
	}
	_, h2 := e.Size()
	if h2 <= h1 {
		t.Errorf("two-line height %d not taller than one-line %d", h2, h1)
	}

	e.SetText("")
	if !e.Empty() {
		t.Error("element not empty after clearing text")
	}
}

func TestElementSetSizeClampsNegative(t *testing.T) {
	e := newElement()
	e.SetSize(-10, -20)
	w, h := e.Size()
	if w != 0 || h != 0 {
		t.Errorf("Size = %d x %d, want 0 x 0", w, h)
	}
}

func TestElementDrawPathUsesSetSize(t *testing.T) {
	e := newElement()
	e.SetSize(120, 40)
	e.SetDraw(func(*ebiten.Image) {})
	w, h := e.Size()
	if w != 120 || h != 40 {
		t.Errorf("Size = %d x %d, want 120 x 40", w, h)
	}
	// SetDraw wins over text for sizing.
	e.SetText("some text")
	w, h = e.Size()
	if w != 120 || h != 40 {
		t.Errorf("Size with both paths = %d x %d, want the draw surface size", w, h)
	}
}

func TestElementRenderCachesSurface(t *testing.T) {
	e := newElement()
	calls := 0
	e.SetSize(32, 32)
	e.SetDraw(func(*ebiten.Image) { calls++ })

	s1 := e.render(StyleLight)
	s2 := e.render(StyleLight)
	if s1 == nil || s1 != s2 {
		t.Error("clean element re-rendered or returned a new surface")
	}
	if calls != 1 {
		t.Errorf("draw callback ran %d times, want 1", calls)
	}

	e.MarkDirty()
	e.render(StyleLight)
	if calls != 2 {
		t.Errorf("draw callback ran %d times after MarkDirty, want 2", calls)
	}
}

func TestElementRenderEmptyReturnsNil(t *testing.T) {
	e := newElement()
	if e.render(StyleLight) != nil {
		t.Error("empty element rendered a surface")
	}
}

func TestElementDispose(t *testing.T) {
	e := newElement()
	e.SetText("gone")
	e.dispose()
	e.dispose() // idempotent

	if !e.IsDisposed() {
		t.Error("IsDisposed() = false")
	}
	if e.ID() != 0 {
		t.Errorf("ID() = %d after dispose, want 0", e.ID())
	}
	// Setters are no-ops afterwards.
	e.SetText("back")
	if e.Text() != "" {
		t.Error("SetText worked on a disposed element")
	}
	e.SetSize(10, 10)
	if w, _ := e.Size(); w != 0 {
		t.Error("SetSize worked on a disposed element")
	}
	if e.render(StyleLight) != nil {
		t.Error("disposed element rendered a surface")
	}
}

func TestElementIDsAreUnique(t *testing.T) {
	a, b := newElement(), newElement()
	if a.ID() == b.ID() {
		t.Errorf("two elements share id %d", a.ID())
	}
}

func TestSurfacePoolReusesExactSize(t *testing.T) {
	img := surfaces.Get(24, 24)
	surfaces.Release(img)
	again := surfaces.Get(24, 24)
	if again != img {
		t.Error("pool did not reuse a same-size surface")
	}
	other := surfaces.Get(25, 24)
	if other == img {
		t.Error("pool returned a surface of the wrong size")
	}
	surfaces.Release(again)
	surfaces.Release(other)
}

func TestSurfacePoolReleaseNil(t *testing.T) {
	surfaces.Release(nil) // must not panic
}
