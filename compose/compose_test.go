package compose

import (
	"testing"
	"time"

	"github.com/phanxgames/meridian"
)

// renderMap mounts a MapView with the given children, pumps the host until
// the engine is ready, and returns the host and engine.
func renderMap(t *testing.T, h *Host, children ...Widget) *meridian.Map {
	t.Helper()
	var m *meridian.Map
	h.Render(MapView{
		Ref:      func(got *meridian.Map) { m = got },
		Children: children,
	})
	h.Update() // load + styledata fire, then children mount
	if m == nil {
		t.Fatal("MapView did not hand out its engine instance")
	}
	if !m.Loaded() || !m.StyleLoaded() {
		t.Fatal("engine not ready after the first update")
	}
	return m
}

func pumpHost(h *Host, ticks int) {
	for i := 0; i < ticks; i++ {
		h.Update()
	}
}

// waitFor pumps the host until cond holds or the deadline passes. Used for
// results that arrive from a background goroutine through Map.Dispatch.
func waitFor(t *testing.T, h *Host, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met within deadline")
		}
		h.Update()
		time.Sleep(time.Millisecond)
	}
}
