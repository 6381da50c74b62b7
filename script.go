package meridian

import (
	"fmt"

	"github.com/goccy/go-json"
)

// scriptStep is a single action in an interaction script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Dy     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure of an interaction script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Runner sequences injected input and screenshots across ticks for headless
// interaction tests. Load one with [LoadScript] and call [Runner.Step] from
// the game loop's Update before [Map.Update] each tick.
//
// Supported actions: "click", "hover", "drag", "wheel", "wait",
// "screenshot".
type Runner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON interaction script.
func LoadScript(data []byte) (*Runner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	return &Runner{steps: sc.Steps}, nil
}

// Done reports whether every step has run and all injected input drained.
func (r *Runner) Done() bool { return r.done }

// Step advances the script by one tick: it waits for pending injected input
// to drain, counts down wait frames, and otherwise executes the next step.
func (r *Runner) Step(m *Map) {
	if r.done {
		return
	}
	if len(m.input.queue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		m.InjectClick(st.X, st.Y)
	case "hover":
		m.InjectHover(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 3 {
			frames = 3
		}
		m.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wheel":
		m.InjectWheel(st.X, st.Y, st.Dy)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "screenshot":
		m.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(m.input.queue) == 0 {
		r.done = true
	}
}
