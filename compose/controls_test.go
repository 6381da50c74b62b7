package compose

import (
	"math"
	"testing"

	"github.com/phanxgames/meridian"
	"github.com/phanxgames/meridian/geolocate"
)

func TestControlsButtonCounts(t *testing.T) {
	h := NewHost()
	m := renderMap(t, h, Controls{Zoom: true, Compass: true, Locator: geolocate.Fixed{}})
	if got := m.Stats().Controls; got != 4 {
		t.Errorf("controls = %d, want 4 (zoom in/out, compass, locate)", got)
	}
}

func TestZoomControlEasesZoom(t *testing.T) {
	h := NewHost()
	m := renderMap(t, h, Controls{Zoom: true})

	// Default position is top-left; the zoom-in button is first in the stack.
	m.InjectClick(22, 22)
	pumpHost(h, 25)

	if got := m.Camera().Zoom(); math.Abs(got-1) > 1e-4 {
		t.Errorf("zoom = %v after the zoom-in button, want 1", got)
	}
}

func TestCompassResetsNorth(t *testing.T) {
	h := NewHost()
	m := renderMap(t, h, Controls{Compass: true})
	pose := m.Camera().Pose()
	pose.Bearing = 45
	pose.Pitch = 30
	m.Camera().JumpTo(pose)

	m.InjectClick(22, 22)
	pumpHost(h, 25)

	got := m.Camera().Pose()
	if math.Abs(got.Bearing) > 1e-4 || math.Abs(got.Pitch) > 1e-4 {
		t.Errorf("bearing, pitch = %v, %v after compass press, want 0, 0", got.Bearing, got.Pitch)
	}
}

func TestLocateFliesToResult(t *testing.T) {
	h := NewHost()
	var results []geolocate.Result
	m := renderMap(t, h, Controls{
		Locator:  geolocate.Fixed{Result: geolocate.Result{LngLat: meridian.LngLat{Lng: 10, Lat: 20}}},
		FlyZoom:  5,
		OnLocate: func(r geolocate.Result) { results = append(results, r) },
	})

	m.InjectClick(22, 22)
	pumpHost(h, 2)
	waitFor(t, h, func() bool { return len(results) == 1 })
	if results[0].Err != "" {
		t.Fatalf("unexpected locate error %q", results[0].Err)
	}

	pumpHost(h, 90) // flight duration plus slack
	c := m.Camera().Center()
	if math.Abs(c.Lng-10) > 1e-3 || math.Abs(c.Lat-20) > 1e-3 {
		t.Errorf("center = %v after locate, want {10 20}", c)
	}
	if got := m.Camera().Zoom(); math.Abs(got-5) > 1e-3 {
		t.Errorf("zoom = %v after locate, want 5", got)
	}
}

func TestLocateFailureKeepsCamera(t *testing.T) {
	h := NewHost()
	var results []geolocate.Result
	m := renderMap(t, h, Controls{
		Locator: geolocate.Fixed{Result: geolocate.Result{
			LngLat: meridian.LngLat{Lng: 99, Lat: 0},
			Err:    "offline",
		}},
		OnLocate: func(r geolocate.Result) { results = append(results, r) },
	})

	m.InjectClick(22, 22)
	pumpHost(h, 2)
	waitFor(t, h, func() bool { return len(results) == 1 })
	pumpHost(h, 10)

	if results[0].Err != "offline" {
		t.Errorf("result err = %q, want %q", results[0].Err, "offline")
	}
	if c := m.Camera().Center(); c != (meridian.LngLat{Lng: 0, Lat: 0}) {
		t.Errorf("center = %v after a failed locate, want unchanged", c)
	}
	if got := m.Camera().Zoom(); got != 0 {
		t.Errorf("zoom = %v after a failed locate, want unchanged", got)
	}
}

func TestControlsConfigChangeRebuilds(t *testing.T) {
	h := NewHost()
	m := renderMap(t, h, Controls{Zoom: true})
	base := m.Stats()
	if base.Controls != 2 {
		t.Fatalf("controls = %d, want 2", base.Controls)
	}

	// Adding the compass rebuilds the stack and hooks its pose listeners.
	h.Render(MapView{Children: []Widget{Controls{Zoom: true, Compass: true}}})
	h.Update()
	st := m.Stats()
	if st.Controls != 3 {
		t.Errorf("controls = %d after adding the compass, want 3", st.Controls)
	}
	if st.Listeners != base.Listeners+2 {
		t.Errorf("listeners = %d, want %d (compass rotate and pitch)", st.Listeners, base.Listeners+2)
	}

	h.Render(MapView{Children: []Widget{Controls{Zoom: true}}})
	h.Update()
	st = m.Stats()
	if st.Controls != 2 || st.Listeners != base.Listeners {
		t.Errorf("controls, listeners = %d, %d after dropping the compass, want %d, %d",
			st.Controls, st.Listeners, 2, base.Listeners)
	}
}

func TestControlsUnmount(t *testing.T) {
	h := NewHost()
	m := renderMap(t, h)
	base := m.Stats().Listeners

	h.Render(MapView{Children: []Widget{Controls{Zoom: true, Compass: true}}})
	h.Update()
	if got := m.Stats().Controls; got != 3 {
		t.Fatalf("controls = %d, want 3", got)
	}

	h.Render(MapView{})
	h.Update()
	st := m.Stats()
	if st.Controls != 0 {
		t.Errorf("controls = %d after unmount, want 0", st.Controls)
	}
	if st.Listeners != base {
		t.Errorf("listeners = %d after unmount, want %d", st.Listeners, base)
	}
}
