package meridian

import (
	"math"
	"testing"
)

func TestMarkerAddToAndRemove(t *testing.T) {
	m := newLoadedMap()
	mk := NewMarker(MarkerOptions{}).SetLngLat(LngLat{1, 2})

	mk.AddTo(m)
	mk.AddTo(m) // no-op, no duplicate
	if got := m.Stats().Markers; got != 1 {
		t.Errorf("Markers = %d, want 1", got)
	}

	mk.Remove()
	mk.Remove() // no-op
	if got := m.Stats().Markers; got != 0 {
		t.Errorf("Markers after Remove = %d, want 0", got)
	}

	// A removed marker can be re-added.
	mk.AddTo(m)
	if got := m.Stats().Markers; got != 1 {
		t.Errorf("Markers after re-add = %d, want 1", got)
	}
}

func TestMarkerAddToOtherMapMoves(t *testing.T) {
	m1 := newLoadedMap()
	m2 := newLoadedMap()
	mk := NewMarker(MarkerOptions{}).AddTo(m1)

	mk.AddTo(m2)

	if got := m1.Stats().Markers; got != 0 {
		t.Errorf("first map Markers = %d, want 0", got)
	}
	if got := m2.Stats().Markers; got != 1 {
		t.Errorf("second map Markers = %d, want 1", got)
	}
}

func TestMarkerSetLngLatNormalizes(t *testing.T) {
	mk := NewMarker(MarkerOptions{})
	mk.SetLngLat(LngLat{Lng: 190, Lat: 90})
	got := mk.LngLat()
	assertNear(t, "Lng", got.Lng, -170, 1e-9)
	assertNear(t, "Lat", got.Lat, maxLatitude, 1e-9)
}

func TestSetDraggableCancelsActiveDrag(t *testing.T) {
	mk := NewMarker(MarkerOptions{Draggable: true})
	mk.dragging = true
	mk.SetDraggable(false)
	if mk.dragging {
		t.Error("dragging survived SetDraggable(false)")
	}
	if mk.Draggable() {
		t.Error("Draggable() = true")
	}
}

func TestMarkerSetters(t *testing.T) {
	mk := NewMarker(MarkerOptions{})
	mk.SetOffset(Point{3, -4})
	mk.SetRotation(45)
	mk.SetRotationAlignment(AlignMap)
	mk.SetPitchAlignment(AlignMap)

	if mk.Offset() != (Point{3, -4}) {
		t.Errorf("Offset = %v", mk.Offset())
	}
	if mk.Rotation() != 45 {
		t.Errorf("Rotation = %v", mk.Rotation())
	}
	if mk.RotationAlignment() != AlignMap || mk.PitchAlignment() != AlignMap {
		t.Error("alignment setters did not apply")
	}
}

func TestTogglePopup(t *testing.T) {
	m := newLoadedMap()
	mk := NewMarker(MarkerOptions{}).SetLngLat(LngLat{1, 1}).AddTo(m)

	mk.TogglePopup() // no popup bound: no-op
	opens, closes := 0, 0
	p := NewPopup(PopupOptions{})
	p.OnOpen = func() { opens++ }
	p.OnClose = func() { closes++ }
	mk.SetPopup(p)

	mk.TogglePopup()
	if !p.IsOpen() || opens != 1 {
		t.Errorf("IsOpen, opens = %v, %d after first toggle", p.IsOpen(), opens)
	}
	mk.TogglePopup()
	if p.IsOpen() || closes != 1 {
		t.Errorf("IsOpen, closes = %v, %d after second toggle", p.IsOpen(), closes)
	}
}

func TestTogglePopupOnDetachedMarkerIsNoop(t *testing.T) {
	mk := NewMarker(MarkerOptions{})
	p := NewPopup(PopupOptions{})
	mk.SetPopup(p)
	mk.TogglePopup()
	if p.IsOpen() {
		t.Error("popup opened on a detached marker")
	}
}

func TestSetPopupRebindClosesPrevious(t *testing.T) {
	m := newLoadedMap()
	mk := NewMarker(MarkerOptions{}).AddTo(m)
	p1 := NewPopup(PopupOptions{})
	p2 := NewPopup(PopupOptions{})
	mk.SetPopup(p1)
	mk.TogglePopup()
	if !p1.IsOpen() {
		t.Fatal("first popup did not open")
	}

	mk.SetPopup(p2)

	if p1.IsOpen() {
		t.Error("first popup still open after rebind")
	}
	if p1.marker != nil {
		t.Error("first popup still bound after rebind")
	}
	if mk.Popup() != p2 || p2.marker != mk {
		t.Error("second popup not bound")
	}

	mk.SetPopup(nil)
	if mk.Popup() != nil || p2.marker != nil {
		t.Error("unbinding did not clear the binding")
	}
}

func TestMarkerRemoveClosesOpenPopup(t *testing.T) {
	m := newLoadedMap()
	mk := NewMarker(MarkerOptions{}).AddTo(m)
	closes := 0
	p := NewPopup(PopupOptions{})
	p.OnClose = func() { closes++ }
	mk.SetPopup(p)
	mk.TogglePopup()

	mk.Remove()

	if p.IsOpen() || closes != 1 {
		t.Errorf("IsOpen, closes = %v, %d after marker removal, want false, 1", p.IsOpen(), closes)
	}
}

func TestMarkerBoundsDefaultDot(t *testing.T) {
	m := newLoadedMap()
	mk := NewMarker(MarkerOptions{}).SetLngLat(m.Camera().Center()).AddTo(m)

	got := mk.bounds(m.camera)
	want := Rect{X: 400 - defaultDotRadius, Y: 300 - defaultDotRadius, Width: 16, Height: 16}
	if got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
}

func TestMarkerBoundsFollowOffset(t *testing.T) {
	m := newLoadedMap()
	mk := NewMarker(MarkerOptions{Offset: Point{10, -20}}).SetLngLat(m.Camera().Center()).AddTo(m)

	got := mk.bounds(m.camera)
	if got.X != 410-defaultDotRadius || got.Y != 280-defaultDotRadius {
		t.Errorf("bounds = %v, want centered on (410, 280)", got)
	}
}

func TestAnchorRect(t *testing.T) {
	pos := Point{100, 100}
	tests := []struct {
		name   string
		anchor Anchor
		want   Rect
	}{
		{"center", AnchorCenter, Rect{80, 90, 40, 20}},
		{"top", AnchorTop, Rect{80, 100, 40, 20}},
		{"bottom", AnchorBottom, Rect{80, 80, 40, 20}},
		{"left", AnchorLeft, Rect{100, 90, 40, 20}},
		{"right", AnchorRight, Rect{60, 90, 40, 20}},
		{"topleft", AnchorTopLeft, Rect{100, 100, 40, 20}},
		{"topright", AnchorTopRight, Rect{60, 100, 40, 20}},
		{"bottomleft", AnchorBottomLeft, Rect{100, 80, 40, 20}},
		{"bottomright", AnchorBottomRight, Rect{60, 80, 40, 20}},
	}
	for _, tt := range tests {
		if got := anchorRect(pos, 40, 20, tt.anchor); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMarkerDotColor(t *testing.T) {
	mk := NewMarker(MarkerOptions{})
	if got := mk.dotColor(StyleLight); got != StyleLight.Marker {
		t.Errorf("default dot color = %v, want the style's", got)
	}
	mk.SetColor(Color{1, 0, 0, 1})
	if got := mk.dotColor(StyleLight); got != (Color{1, 0, 0, 1}) {
		t.Errorf("dot color after SetColor = %v", got)
	}
}

func TestMarkerDisposeReleasesElement(t *testing.T) {
	m := newLoadedMap()
	mk := NewMarker(MarkerOptions{}).AddTo(m)
	el := mk.Element()

	mk.Dispose()
	mk.Dispose() // idempotent

	if !el.IsDisposed() {
		t.Error("element not disposed")
	}
	if got := m.Stats().Markers; got != 0 {
		t.Errorf("Markers = %d after Dispose, want 0", got)
	}
}

func TestScreenRotationFollowsAlignment(t *testing.T) {
	m := newLoadedMap()
	m.Camera().JumpTo(CameraPose{Bearing: 90})
	mk := NewMarker(MarkerOptions{Rotation: 45}).AddTo(m)

	// Viewport-aligned: bearing does not affect the glyph.
	assertNear(t, "viewport", mk.screenRotation(m.camera), 45*math.Pi/180, 1e-9)

	mk.SetRotationAlignment(AlignMap)
	assertNear(t, "map", mk.screenRotation(m.camera), -45*math.Pi/180, 1e-9)
}
