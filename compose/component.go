// Package compose is a declarative component layer over a meridian map.
//
// A compose tree describes what should be on the map — a [MapView] with
// [Marker], [Popup], [RouteLine], and [Controls] children — as plain prop
// structs. A [Host] reconciles the tree on every render pass: widgets that
// match their previous description by type and key keep their engine
// proxies and receive only the imperative calls for the props that changed;
// widgets that disappear tear their proxies down.
//
// The engine instance and the enclosing marker are resolved through the
// ambient [Context] rather than passed explicitly. Resolving either outside
// its providing component is a programming error and panics.
package compose

import "reflect"

// Widget describes one piece of map UI as plain props. Widgets are compared
// by concrete type and key across render passes; while both match, the
// widget's engine proxy survives and is mutated in place.
//
// All widgets live in this package; the interface is sealed.
type Widget interface {
	widgetKey() string
	newState() state
}

// state is the long-lived counterpart of a widget. The Host creates one per
// mounted widget and keeps it alive across render passes until the widget
// disappears or stops matching.
//
// Every state moves through: created (unattached) -> attaching while the
// engine is not ready -> attached, synced on every pass -> detached on
// unmount. No state returns to unattached while mounted.
type state interface {
	// mount runs once when the widget first appears.
	mount(ctx *Context, w Widget)
	// update runs on every later pass with the next props. Implementations
	// diff against their cached applied props and issue minimal calls.
	update(ctx *Context, w Widget)
	// unmount tears the proxy down. Children are unmounted first.
	unmount()
	// children returns the widgets mounted under this one and the context
	// they resolve against. A nil context keeps children unmounted until a
	// later pass (scope not ready yet).
	children(ctx *Context, w Widget) (*Context, []Widget)
}

// node is one mounted position in the tree.
type node struct {
	widget Widget
	st     state
	kids   []*node
}

// canUpdate reports whether a mounted widget can absorb the next one
// without remounting: same concrete type and same key.
func canUpdate(old, next Widget) bool {
	return reflect.TypeOf(old) == reflect.TypeOf(next) &&
		old.widgetKey() == next.widgetKey()
}

// reconcile mounts, updates, or replaces one node to match the widget.
func (h *Host) reconcile(n *node, w Widget, ctx *Context) *node {
	if w == nil {
		unmountNode(n)
		return nil
	}
	if n == nil || !canUpdate(n.widget, w) {
		unmountNode(n)
		n = &node{widget: w, st: w.newState()}
		n.st.mount(ctx, w)
	} else {
		n.widget = w
		n.st.update(ctx, w)
	}

	childCtx, kids := n.st.children(ctx, n.widget)
	if childCtx == nil {
		for _, k := range n.kids {
			unmountNode(k)
		}
		n.kids = n.kids[:0]
		return n
	}
	n.kids = h.reconcileChildren(n.kids, kids, childCtx)
	return n
}

// reconcileChildren matches old nodes to next widgets. Keyed widgets match
// the old node with the same type and key wherever it sits; unkeyed widgets
// match positionally. Unmatched old nodes unmount.
func (h *Host) reconcileChildren(old []*node, next []Widget, ctx *Context) []*node {
	out := make([]*node, 0, len(next))
	used := make([]bool, len(old))

	take := func(w Widget, pos int) *node {
		if w.widgetKey() != "" {
			for i, n := range old {
				if !used[i] && canUpdate(n.widget, w) {
					used[i] = true
					return n
				}
			}
			return nil
		}
		if pos < len(old) && !used[pos] && old[pos].widget.widgetKey() == "" && canUpdate(old[pos].widget, w) {
			used[pos] = true
			return old[pos]
		}
		return nil
	}

	for i, w := range next {
		if w == nil {
			continue
		}
		out = append(out, h.reconcile(take(w, i), w, ctx))
	}
	for i, n := range old {
		if !used[i] {
			unmountNode(n)
		}
	}
	return out
}

// unmountNode tears a subtree down, dependents before owners.
func unmountNode(n *node) {
	if n == nil {
		return
	}
	for _, k := range n.kids {
		unmountNode(k)
	}
	n.kids = nil
	n.st.unmount()
}
