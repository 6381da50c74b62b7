package compose

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/meridian"
)

// Host owns a mounted widget tree and drives it from the game loop. Call
// [Host.Render] whenever the description changes (typically every Update),
// then [Host.Update] to tick the engine, and [Host.Draw] from the game's
// Draw.
type Host struct {
	tree  Widget
	root  *node
	views []*mapViewState
	dirty bool
}

// NewHost creates an empty host.
func NewHost() *Host { return &Host{} }

// Render reconciles the tree against the previous render pass: matching
// widgets keep their proxies and receive minimal prop-diff updates, new
// widgets mount, vanished widgets unmount.
func (h *Host) Render(w Widget) {
	h.dirty = false
	h.tree = w
	h.root = h.reconcile(h.root, w, &Context{host: h})
}

// Update ticks every mounted engine instance, then re-reconciles the last
// rendered tree if an engine event invalidated it (readiness flips, style
// data arriving).
func (h *Host) Update() {
	for _, v := range h.views {
		v.m.Update()
	}
	if h.dirty && h.tree != nil {
		h.dirty = false
		h.root = h.reconcile(h.root, h.tree, &Context{host: h})
	}
}

// Draw renders every mounted engine instance to the screen.
func (h *Host) Draw(screen *ebiten.Image) {
	for _, v := range h.views {
		v.m.Draw(screen)
	}
}

// Unmount tears the whole tree down: proxies detach, listeners unregister,
// and every engine instance is destroyed. The host can render a new tree
// afterwards.
func (h *Host) Unmount() {
	unmountNode(h.root)
	h.root = nil
	h.tree = nil
	h.dirty = false
}

func (h *Host) invalidate() { h.dirty = true }

func (h *Host) addView(v *mapViewState) {
	h.views = append(h.views, v)
}

func (h *Host) dropView(v *mapViewState) {
	for i, other := range h.views {
		if other == v {
			copy(h.views[i:], h.views[i+1:])
			h.views[len(h.views)-1] = nil
			h.views = h.views[:len(h.views)-1]
			return
		}
	}
}

// Map returns the engine instance of the first mounted MapView, or nil.
// Prefer the MapView Ref prop; this exists for tests and debug overlays.
func (h *Host) Map() *meridian.Map {
	if len(h.views) == 0 {
		return nil
	}
	return h.views[0].m
}
