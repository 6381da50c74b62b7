package meridian

// syntheticEvent is a single injected input sample. Injected samples use
// screen coordinates and run through the same state machine as the real
// mouse, one sample per Update tick, so scripted interactions behave
// exactly like a user's.
type syntheticEvent struct {
	pos     Point
	pressed bool
	button  MouseButton
	wheel   bool
	wheelY  float64
}

// InjectPress queues a left-button press at the given screen coordinates.
// The sample is consumed on the next Update tick.
func (m *Map) InjectPress(x, y float64) {
	m.input.queue = append(m.input.queue, syntheticEvent{
		pos: Point{X: x, Y: y}, pressed: true, button: MouseButtonLeft,
	})
}

// InjectMove queues a move with the button held down. Use between
// InjectPress and InjectRelease to simulate a drag.
func (m *Map) InjectMove(x, y float64) {
	m.input.queue = append(m.input.queue, syntheticEvent{
		pos: Point{X: x, Y: y}, pressed: true, button: MouseButtonLeft,
	})
}

// InjectHover queues a move with no button held. Use to drive hover
// enter/leave without clicking.
func (m *Map) InjectHover(x, y float64) {
	m.input.queue = append(m.input.queue, syntheticEvent{
		pos: Point{X: x, Y: y},
	})
}

// InjectRelease queues a button release at the given screen coordinates.
func (m *Map) InjectRelease(x, y float64) {
	m.input.queue = append(m.input.queue, syntheticEvent{
		pos: Point{X: x, Y: y}, button: MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two ticks.
func (m *Map) InjectClick(x, y float64) {
	m.InjectPress(x, y)
	m.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves ending exactly on (toX, toY), and release there. The
// sequence consumes `frames` ticks; minimum is 3 (press, move, release).
func (m *Map) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	m.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		m.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	m.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel notch at the given screen coordinates.
// Positive dy zooms in about that point.
func (m *Map) InjectWheel(x, y, dy float64) {
	m.input.queue = append(m.input.queue, syntheticEvent{
		pos: Point{X: x, Y: y}, wheel: true, wheelY: dy,
	})
}

// processInjected pops one sample from the inject queue and feeds it to the
// state machine. Returns true if a sample was consumed, in which case real
// mouse input is skipped this tick.
func (in *input) processInjected(mods KeyModifiers) bool {
	if len(in.queue) == 0 {
		return false
	}
	evt := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue = in.queue[:len(in.queue)-1]

	if evt.wheel {
		in.wheel(evt.pos, evt.wheelY)
		return true
	}
	in.pointer(evt.pos, evt.pressed, evt.button, mods)
	return true
}
