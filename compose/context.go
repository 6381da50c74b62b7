package compose

import "github.com/phanxgames/meridian"

// Context is the ambient scope threaded through the component tree. It
// resolves the nearest enclosing engine instance and marker proxy by scope
// rather than by explicit prop passing.
//
// Contexts are created by the Host and extended by container widgets;
// application code only reads them inside content callbacks.
type Context struct {
	host   *Host
	m      *meridian.Map
	ready  bool
	marker *meridian.Marker
}

// Map returns the enclosing MapView's engine instance. Calling it from a
// widget mounted outside a MapView is a programming error and panics.
func (c *Context) Map() *meridian.Map {
	if c.m == nil {
		panic("compose: Map() resolved outside a MapView")
	}
	return c.m
}

// Ready reports whether the enclosing engine has loaded and applied its
// first style. Proxies stay in the attaching state until it is true.
func (c *Context) Ready() bool { return c.ready }

// Marker returns the enclosing Marker's engine proxy. Calling it from a
// widget mounted outside a Marker is a programming error and panics.
func (c *Context) Marker() *meridian.Marker {
	if c.marker == nil {
		panic("compose: Marker() resolved outside a Marker")
	}
	return c.marker
}

// Invalidate schedules another reconcile pass on the next Host.Update tick.
func (c *Context) Invalidate() { c.host.invalidate() }

// withMap returns a child scope providing the engine instance.
func (c *Context) withMap(m *meridian.Map, ready bool) *Context {
	child := *c
	child.m = m
	child.ready = ready
	return &child
}

// withMarker returns a child scope providing the enclosing marker.
func (c *Context) withMarker(mk *meridian.Marker) *Context {
	child := *c
	child.marker = mk
	return &child
}
