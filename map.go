package meridian

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Options ---

// MapOptions configures a map at construction.
type MapOptions struct {
	// Center is the initial camera center.
	Center LngLat
	// Zoom is the initial zoom level, clamped to [minZoom, maxZoom].
	Zoom float64
	// Bearing is the initial compass direction in degrees.
	Bearing float64
	// Pitch is the initial tilt in degrees, clamped to [0, maxPitch].
	Pitch float64
	// Style is the initial style. Nil means StyleLight.
	Style *Style
	// Width and Height set the viewport in pixels. Zero means 800x600.
	Width  int
	Height int
}

// --- Map ---

// Map is the engine instance: it owns the camera, the active style, and the
// registries of markers, popups, sources, layers, and controls. One map is
// created per view and destroyed exactly once; everything else attaches to
// and detaches from it.
//
// All methods must be called from the game loop goroutine. [Map.Dispatch]
// is the one exception and is how other goroutines hand work back.
type Map struct {
	camera *Camera
	style  *Style
	events eventRegistry
	input  *input

	markers  []*Marker
	popups   []*Popup
	sources  map[string]*Source
	layers   []*LineLayer
	controls []*controlSlot

	// pendingStyle is staged by SetStyle and applied at the start of the
	// next Update tick, so several swaps within one frame collapse into
	// the last one.
	pendingStyle *Style

	dispatchMu sync.Mutex
	dispatched []func()
	drainBuf   []func()

	nextFrame   []frameFunc
	frameBuf    []frameFunc
	nextFrameID uint32

	loaded      bool
	styleLoaded bool
	destroyed   bool

	frame    uint64
	lastPose CameraPose
	moving   bool

	sourcesAdded int
	layersAdded  int

	// Render scratch buffers, reused across frames.
	projectBuf []Point
	vsBuf      []ebiten.Vertex
	isBuf      []uint16
	runsBuf    [][]Point

	// ScreenshotDir is where Screenshot writes its PNGs.
	ScreenshotDir   string
	screenshotQueue []string
	debug           bool
}

// NewMap creates a detached map. The first Update tick fires EventLoad and
// then EventStyleData for the initial style; nothing is rendered or
// dispatched before then.
func NewMap(opts MapOptions) *Map {
	if opts.Style == nil {
		opts.Style = StyleLight
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}

	m := &Map{
		style:         opts.Style,
		pendingStyle:  opts.Style,
		sources:       make(map[string]*Source),
		ScreenshotDir: "screenshots",
	}
	m.camera = newCamera(
		Rect{Width: float64(opts.Width), Height: float64(opts.Height)},
		CameraPose{Center: opts.Center, Zoom: opts.Zoom, Bearing: opts.Bearing, Pitch: opts.Pitch},
	)
	m.input = newInput(m)
	m.lastPose = m.camera.Pose()
	return m
}

// checkUsable panics when the map has been destroyed. Mutating a destroyed
// map is a programming error, not a recoverable condition.
func (m *Map) checkUsable(op string) {
	if m.destroyed {
		panic("meridian: " + op + " called on destroyed map")
	}
}

// --- Accessors ---

// Camera returns the map's camera.
func (m *Map) Camera() *Camera { return m.camera }

// Style returns the active style.
func (m *Map) Style() *Style { return m.style }

// Loaded reports whether the first Update tick has run.
func (m *Map) Loaded() bool { return m.loaded }

// StyleLoaded reports whether the most recently set style has been applied.
// False between a SetStyle call and the tick that applies it.
func (m *Map) StyleLoaded() bool { return m.styleLoaded }

// Destroyed reports whether Destroy has run.
func (m *Map) Destroyed() bool { return m.destroyed }

// --- Style ---

// SetStyle stages a style swap. The swap is applied at the start of the
// next Update tick and fires EventStyleData; calling SetStyle again before
// then replaces the staged style, so only the last swap of a frame takes
// effect. The map and everything attached to it survive the swap in place.
func (m *Map) SetStyle(s *Style) {
	m.checkUsable("Map.SetStyle")
	if s == nil {
		panic("meridian: Map.SetStyle called with nil style")
	}
	m.pendingStyle = s
	m.styleLoaded = false
}

// --- Scheduling ---

// Dispatch queues fn to run at the start of the next Update tick. It is the
// only method safe to call from other goroutines; background work such as a
// geolocation lookup hands its result back through it. Dispatching to a
// destroyed map is a no-op (the queue is never drained again).
func (m *Map) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	m.dispatchMu.Lock()
	m.dispatched = append(m.dispatched, fn)
	m.dispatchMu.Unlock()
}

type frameFunc struct {
	id uint32
	fn func()
}

// FrameHandle cancels a callback scheduled with OnNextFrame.
type FrameHandle struct {
	id uint32
	m  *Map
}

// Cancel drops the scheduled callback if it has not run yet. Safe to call
// more than once.
func (h FrameHandle) Cancel() {
	if h.m == nil {
		return
	}
	s := h.m.nextFrame
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = frameFunc{}
			h.m.nextFrame = s[:len(s)-1]
			return
		}
	}
}

// OnNextFrame schedules fn to run once at the start of the next Update
// tick, after dispatched work. Callbacks scheduled from within a callback
// run on the tick after that.
func (m *Map) OnNextFrame(fn func()) FrameHandle {
	m.checkUsable("Map.OnNextFrame")
	if fn == nil {
		return FrameHandle{}
	}
	m.nextFrameID++
	m.nextFrame = append(m.nextFrame, frameFunc{id: m.nextFrameID, fn: fn})
	return FrameHandle{id: m.nextFrameID, m: m}
}

// --- Lifecycle ---

// Update advances the map one tick: dispatched work, next-frame callbacks,
// staged style swap, camera animation, then input. Call it from the game
// loop's Update. No-op after Destroy.
func (m *Map) Update() {
	if m.destroyed {
		return
	}
	dt := float32(1.0 / float64(ebiten.TPS()))
	m.frame++

	m.drainDispatch()
	m.runNextFrame()
	if m.destroyed {
		// A dispatched or scheduled callback tore the map down.
		return
	}

	if !m.loaded {
		m.loaded = true
		m.events.fire(Event{Type: EventLoad})
	}
	if m.pendingStyle != nil {
		m.style = m.pendingStyle
		m.pendingStyle = nil
		m.styleLoaded = true
		m.events.fire(Event{Type: EventStyleData})
	}

	m.camera.update(dt)
	m.layoutControls()
	m.input.process()
	m.fireCameraEvents()
}

func (m *Map) drainDispatch() {
	m.dispatchMu.Lock()
	m.drainBuf = append(m.drainBuf[:0], m.dispatched...)
	m.dispatched = m.dispatched[:0]
	m.dispatchMu.Unlock()
	for _, fn := range m.drainBuf {
		fn()
	}
}

func (m *Map) runNextFrame() {
	if len(m.nextFrame) == 0 {
		return
	}
	// Swap the slices so callbacks scheduling new callbacks land on the
	// fresh list for the following tick.
	m.frameBuf, m.nextFrame = m.nextFrame, m.frameBuf[:0]
	for _, f := range m.frameBuf {
		f.fn()
	}
}

// fireCameraEvents compares the camera pose against the previous tick and
// fires move, zoom, rotate, and pitch events for whatever changed, then
// moveend once the camera comes to rest.
func (m *Map) fireCameraEvents() {
	cur := m.camera.Pose()
	if cur != m.lastPose {
		prev := m.lastPose
		m.lastPose = cur
		m.moving = true
		ev := Event{Type: EventMove, LngLat: cur.Center}
		m.events.fire(ev)
		if cur.Zoom != prev.Zoom {
			ev.Type = EventZoom
			m.events.fire(ev)
		}
		if cur.Bearing != prev.Bearing {
			ev.Type = EventRotate
			m.events.fire(ev)
		}
		if cur.Pitch != prev.Pitch {
			ev.Type = EventPitch
			m.events.fire(ev)
		}
		return
	}
	if m.moving && !m.camera.Moving() && !m.input.cameraGesture() {
		m.moving = false
		m.events.fire(Event{Type: EventMoveEnd, LngLat: cur.Center})
	}
}

// Draw renders the map to the screen. Call it from the game loop's Draw.
// No-op after Destroy.
func (m *Map) Draw(screen *ebiten.Image) {
	if m.destroyed {
		return
	}
	m.draw(screen)
	m.flushScreenshots(screen)
}

// Resize sets the viewport size in pixels.
func (m *Map) Resize(width, height int) {
	m.checkUsable("Map.Resize")
	m.camera.setViewport(Rect{Width: float64(width), Height: float64(height)})
	m.layoutControls()
}

// Destroy tears the map down: open popups close (firing their close
// callbacks), markers detach, sources, layers, and controls drop, and
// finally EventDestroy fires before every listener is released. Destroy is
// idempotent; any other mutating call after it panics.
func (m *Map) Destroy() {
	if m.destroyed {
		return
	}

	for len(m.popups) > 0 {
		m.popups[len(m.popups)-1].Remove()
	}
	for len(m.markers) > 0 {
		m.markers[len(m.markers)-1].Remove()
	}
	for _, l := range m.layers {
		l.m = nil
	}
	m.layers = nil
	for _, s := range m.sources {
		s.m = nil
	}
	m.sources = nil
	m.controls = nil

	m.events.fire(Event{Type: EventDestroy})
	m.events.clear()
	m.nextFrame = nil
	m.destroyed = true
}

// --- Sources and layers ---

// AddSource registers a source under its id. Adding a second source with
// the same id is an error; replace route data with SetData instead.
func (m *Map) AddSource(s *Source) error {
	m.checkUsable("Map.AddSource")
	if s == nil {
		return fmt.Errorf("meridian: nil source")
	}
	if _, ok := m.sources[s.id]; ok {
		return fmt.Errorf("meridian: source %q already exists", s.id)
	}
	s.m = m
	m.sources[s.id] = s
	m.sourcesAdded++
	return nil
}

// RemoveSource removes a source by id. It is an error to remove a source a
// layer still references, or one that does not exist.
func (m *Map) RemoveSource(id string) error {
	m.checkUsable("Map.RemoveSource")
	s, ok := m.sources[id]
	if !ok {
		return fmt.Errorf("meridian: no source %q", id)
	}
	for _, l := range m.layers {
		if l.sourceID == id {
			return fmt.Errorf("meridian: source %q is in use by layer %q", id, l.id)
		}
	}
	s.m = nil
	delete(m.sources, id)
	return nil
}

// HasSource reports whether a source with the given id exists.
func (m *Map) HasSource(id string) bool {
	_, ok := m.sources[id]
	return ok
}

// Source returns the source with the given id, or nil.
func (m *Map) Source(id string) *Source { return m.sources[id] }

// AddLayer registers a line layer. The layer's source must already exist,
// and the layer id must be unused. Layers draw in the order they are added.
func (m *Map) AddLayer(l *LineLayer) error {
	m.checkUsable("Map.AddLayer")
	if l == nil {
		return fmt.Errorf("meridian: nil layer")
	}
	if _, ok := m.sources[l.sourceID]; !ok {
		return fmt.Errorf("meridian: layer %q references unknown source %q", l.id, l.sourceID)
	}
	for _, other := range m.layers {
		if other.id == l.id {
			return fmt.Errorf("meridian: layer %q already exists", l.id)
		}
	}
	l.m = m
	m.layers = append(m.layers, l)
	m.layersAdded++
	return nil
}

// RemoveLayer removes a layer by id. It is an error to remove a layer that
// does not exist.
func (m *Map) RemoveLayer(id string) error {
	m.checkUsable("Map.RemoveLayer")
	for i, l := range m.layers {
		if l.id == id {
			l.m = nil
			l.hovered = false
			copy(m.layers[i:], m.layers[i+1:])
			m.layers[len(m.layers)-1] = nil
			m.layers = m.layers[:len(m.layers)-1]
			return nil
		}
	}
	return fmt.Errorf("meridian: no layer %q", id)
}

// HasLayer reports whether a layer with the given id exists.
func (m *Map) HasLayer(id string) bool {
	for _, l := range m.layers {
		if l.id == id {
			return true
		}
	}
	return false
}

// Layer returns the layer with the given id, or nil.
func (m *Map) Layer(id string) *LineLayer {
	for _, l := range m.layers {
		if l.id == id {
			return l
		}
	}
	return nil
}

// Markers returns the markers currently on the map, in draw order. The
// returned slice is shared; do not mutate it.
func (m *Map) Markers() []*Marker { return m.markers }

// Popups returns the popups currently open on the map, in draw order. The
// returned slice is shared; do not mutate it.
func (m *Map) Popups() []*Popup { return m.popups }
