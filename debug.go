package meridian

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// MapStats is a snapshot of everything attached to a map. The current
// counts go to zero on teardown; the Added counters are cumulative, so a
// test can tell "created once, updated in place" from "recreated".
type MapStats struct {
	Markers   int
	Popups    int
	Sources   int
	Layers    int
	Controls  int
	Listeners int

	SourcesAdded int
	LayersAdded  int
}

// Stats counts what is currently attached to the map.
func (m *Map) Stats() MapStats {
	return MapStats{
		Markers:      len(m.markers),
		Popups:       len(m.popups),
		Sources:      len(m.sources),
		Layers:       len(m.layers),
		Controls:     len(m.controls),
		Listeners:    m.events.count(),
		SourcesAdded: m.sourcesAdded,
		LayersAdded:  m.layersAdded,
	}
}

// SetDebugMode toggles the on-screen HUD and a one-line stderr report.
func (m *Map) SetDebugMode(enabled bool) {
	m.debug = enabled
	if enabled {
		st := m.Stats()
		_, _ = fmt.Fprintf(os.Stderr,
			"[meridian] debug on | markers: %d | popups: %d | sources: %d | layers: %d | listeners: %d\n",
			st.Markers, st.Popups, st.Sources, st.Layers, st.Listeners)
	}
}

// drawDebugHUD prints pose and attachment counts in the bottom-left corner.
func (m *Map) drawDebugHUD(screen *ebiten.Image) {
	pose := m.camera.Pose()
	st := m.Stats()
	msg := fmt.Sprintf(
		"FPS %.1f TPS %.1f\n%.5f, %.5f  z%.2f  b%.1f  p%.1f\nmk %d  pop %d  src %d  lyr %d  lis %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		pose.Center.Lat, pose.Center.Lng, pose.Zoom, pose.Bearing, pose.Pitch,
		st.Markers, st.Popups, st.Sources, st.Layers, st.Listeners,
	)
	vp := m.camera.viewport
	ebitenutil.DebugPrintAt(screen, msg, int(vp.X)+8, int(vp.Y+vp.Height)-56)
}
