package meridian

import (
	"math"
	"testing"
)

func newTestCamera(pose CameraPose) *Camera {
	return newCamera(Rect{Width: 800, Height: 600}, pose)
}

// stepCamera advances animations as the map would at 60 ticks per second.
func stepCamera(c *Camera, ticks int) {
	for i := 0; i < ticks; i++ {
		c.update(1.0 / 60.0)
	}
}

func TestProjectCenterIsViewportCenter(t *testing.T) {
	c := newTestCamera(CameraPose{Center: LngLat{-122.4194, 37.7749}, Zoom: 12})
	got := c.Project(c.Center())
	assertNearPoint(t, "Project(center)", got, Point{400, 300}, 1e-9)
}

func TestProjectUnprojectRoundTripWithPose(t *testing.T) {
	c := newTestCamera(CameraPose{Center: LngLat{10, 48}, Zoom: 9, Bearing: 37, Pitch: 30})
	points := []Point{{400, 300}, {0, 0}, {799, 599}, {123, 456}}
	for _, p := range points {
		got := c.Project(c.Unproject(p))
		assertNearPoint(t, "project(unproject)", got, p, 1e-6)
	}
}

func TestJumpToNormalizesPose(t *testing.T) {
	c := newTestCamera(CameraPose{})
	c.JumpTo(CameraPose{Center: LngLat{190, 90}, Zoom: 30, Bearing: 270, Pitch: 80})
	assertNear(t, "Lng", c.Center().Lng, -170, 1e-9)
	assertNear(t, "Lat", c.Center().Lat, maxLatitude, 1e-9)
	assertNear(t, "Zoom", c.Zoom(), maxZoom, 1e-9)
	assertNear(t, "Bearing", c.Bearing(), -90, 1e-9)
	assertNear(t, "Pitch", c.Pitch(), maxPitch, 1e-9)
}

func TestPanByFollowsContent(t *testing.T) {
	c := newTestCamera(CameraPose{Center: LngLat{0, 0}, Zoom: 4})
	old := c.Center()
	c.panBy(100, 50)
	// The point that was at the viewport center is now 100px right, 50px down.
	assertNearPoint(t, "old center", c.Project(old), Point{500, 350}, 1e-6)
}

func TestPanByWithBearing(t *testing.T) {
	c := newTestCamera(CameraPose{Center: LngLat{0, 0}, Zoom: 4, Bearing: 90})
	old := c.Center()
	c.panBy(-80, 60)
	assertNearPoint(t, "old center", c.Project(old), Point{320, 360}, 1e-6)
}

func TestZoomAboutKeepsAnchor(t *testing.T) {
	c := newTestCamera(CameraPose{Center: LngLat{0, 0}, Zoom: 5})
	focus := Point{600, 200}
	anchor := c.Unproject(focus)
	c.zoomAbout(1, focus)
	assertNear(t, "zoom", c.Zoom(), 6, 1e-9)
	assertNearPoint(t, "anchor", c.Project(anchor), focus, 1e-6)
}

func TestRotateByNormalizes(t *testing.T) {
	c := newTestCamera(CameraPose{Bearing: 170})
	c.rotateBy(20)
	assertNear(t, "bearing", c.Bearing(), -170, 1e-9)
}

func TestPitchByClamps(t *testing.T) {
	c := newTestCamera(CameraPose{})
	c.pitchBy(100)
	assertNear(t, "pitch", c.Pitch(), maxPitch, 1e-9)
	c.pitchBy(-200)
	assertNear(t, "pitch", c.Pitch(), 0, 1e-9)
}

func TestNormalizeBearing(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{179, 179},
		{180, -180},
		{360, 0},
		{-181, 179},
		{540, -180},
	}
	for _, tt := range tests {
		assertNear(t, "normalizeBearing", normalizeBearing(tt.in), tt.want, 1e-9)
	}
}

func TestEaseToCompletes(t *testing.T) {
	c := newTestCamera(CameraPose{Center: LngLat{0, 0}, Zoom: 2})
	target := CameraPose{Center: LngLat{10, 20}, Zoom: 6, Bearing: 45, Pitch: 30}
	c.EaseTo(target, 0.5)
	if !c.Moving() {
		t.Fatal("Moving() = false right after EaseTo")
	}
	stepCamera(c, 40) // > 0.5s at 60 TPS
	if c.Moving() {
		t.Error("Moving() = true after the ease finished")
	}
	// Tween values are float32; allow their precision.
	assertNearLngLat(t, "center", c.Center(), target.Center, 1e-4)
	assertNear(t, "zoom", c.Zoom(), target.Zoom, 1e-4)
	assertNear(t, "bearing", c.Bearing(), target.Bearing, 1e-4)
	assertNear(t, "pitch", c.Pitch(), target.Pitch, 1e-4)
}

func TestEaseToZeroDurationJumps(t *testing.T) {
	c := newTestCamera(CameraPose{})
	c.EaseTo(CameraPose{Zoom: 8}, 0)
	if c.Moving() {
		t.Error("Moving() = true after a zero-duration ease")
	}
	assertNear(t, "zoom", c.Zoom(), 8, 1e-9)
}

func TestEaseToBearingShortestPath(t *testing.T) {
	c := newTestCamera(CameraPose{Bearing: 170})
	c.EaseTo(CameraPose{Bearing: -170}, 1)
	// The 20-degree rotation goes through the wrap point, never back
	// through north.
	for i := 0; i < 60; i++ {
		c.update(1.0 / 60.0)
		if math.Abs(c.Bearing()) < 169 {
			t.Fatalf("bearing %v left the short path at tick %d", c.Bearing(), i)
		}
	}
	assertNear(t, "bearing", c.Bearing(), -170, 1e-4)
}

func TestEaseToLngShortestPath(t *testing.T) {
	c := newTestCamera(CameraPose{Center: LngLat{175, 0}, Zoom: 3})
	c.EaseTo(CameraPose{Center: LngLat{-175, 0}, Zoom: 3}, 1)
	for i := 0; i < 60; i++ {
		c.update(1.0 / 60.0)
		if math.Abs(c.Center().Lng) < 170 {
			t.Fatalf("lng %v crossed the long way at tick %d", c.Center().Lng, i)
		}
	}
	assertNear(t, "lng", c.Center().Lng, -175, 1e-4)
}

func TestJumpToCancelsAnimation(t *testing.T) {
	c := newTestCamera(CameraPose{})
	c.EaseTo(CameraPose{Zoom: 10}, 5)
	stepCamera(c, 5)
	c.JumpTo(CameraPose{Zoom: 3})
	if c.Moving() {
		t.Error("Moving() = true after JumpTo")
	}
	stepCamera(c, 10)
	assertNear(t, "zoom", c.Zoom(), 3, 1e-9)
}

func TestZoomByClampsTarget(t *testing.T) {
	c := newTestCamera(CameraPose{Zoom: 21.5})
	c.ZoomBy(2, 0)
	assertNear(t, "zoom", c.Zoom(), maxZoom, 1e-9)
}

func TestResetNorthKeepsCenterAndZoom(t *testing.T) {
	c := newTestCamera(CameraPose{Center: LngLat{5, 5}, Zoom: 7, Bearing: 123, Pitch: 40})
	c.ResetNorth(0.3)
	stepCamera(c, 30)
	assertNear(t, "bearing", c.Bearing(), 0, 1e-4)
	assertNear(t, "pitch", c.Pitch(), 0, 1e-4)
	assertNearLngLat(t, "center", c.Center(), LngLat{5, 5}, 1e-4)
	assertNear(t, "zoom", c.Zoom(), 7, 1e-4)
}

func TestFlyToCompletes(t *testing.T) {
	c := newTestCamera(CameraPose{Center: LngLat{0, 0}, Zoom: 10})
	target := CameraPose{Center: LngLat{90, 30}, Zoom: 10}
	c.FlyTo(target, 1)
	stepCamera(c, 70)
	if c.Moving() {
		t.Error("Moving() = true after the flight finished")
	}
	assertNearLngLat(t, "center", c.Center(), target.Center, 1e-6)
	assertNear(t, "zoom", c.Zoom(), target.Zoom, 1e-6)
}

func TestFlyToDipsZoomOnLongMoves(t *testing.T) {
	c := newTestCamera(CameraPose{Center: LngLat{0, 0}, Zoom: 10})
	c.FlyTo(CameraPose{Center: LngLat{90, 0}, Zoom: 10}, 1)
	minZoomSeen := c.Zoom()
	for i := 0; i < 70; i++ {
		c.update(1.0 / 60.0)
		if z := c.Zoom(); z < minZoomSeen {
			minZoomSeen = z
		}
	}
	if minZoomSeen >= 10 {
		t.Errorf("min zoom during flight = %v, want a dip below 10", minZoomSeen)
	}
}

func TestStopLeavesCurrentPose(t *testing.T) {
	c := newTestCamera(CameraPose{Zoom: 2})
	c.EaseTo(CameraPose{Zoom: 10}, 1)
	stepCamera(c, 30)
	mid := c.Zoom()
	c.Stop()
	stepCamera(c, 30)
	assertNear(t, "zoom", c.Zoom(), mid, 1e-9)
	if c.Moving() {
		t.Error("Moving() = true after Stop")
	}
}
