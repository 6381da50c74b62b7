// Package meridian is an interactive slippy-map engine for [Ebitengine].
//
// Meridian owns the camera, the active style, and the registries of
// markers, popups, line layers, and controls that make up a map view. It
// renders a styled vector canvas (background, graticule, routes, markers,
// overlays) and routes pointer input to whatever sits under the cursor.
//
// # Quick start
//
// Create a [Map], then drive it from an [ebiten.Game]:
//
//	m := meridian.NewMap(meridian.MapOptions{
//		Center: meridian.LngLat{Lng: -77.03, Lat: 38.93},
//		Zoom:   13,
//	})
//
//	type Game struct{ m *meridian.Map }
//
//	func (g *Game) Update() error              { g.m.Update(); return nil }
//	func (g *Game) Draw(screen *ebiten.Image)  { g.m.Draw(screen) }
//	func (g *Game) Layout(w, h int) (int, int) { g.m.Resize(w, h); return w, h }
//
// # Proxies
//
// Everything visible on a map is a proxy object attached to it: a [Marker]
// pinned to a coordinate, a [Popup] bubble, a [Source]+[LineLayer] pair for
// routes, a [Button] control. Proxies are created once and mutated through
// targeted setters; removing a proxy never touches the map itself, and
// destroying the map releases every proxy at once.
//
// The first [Map.Update] tick fires [EventLoad], then [EventStyleData] once
// the initial style applies. Style swaps via [Map.SetStyle] are staged and
// applied on the next tick, so several swaps within one frame collapse into
// the last.
//
// # Events
//
// Map-level listeners are registered with [Map.On] and [Map.Once] and
// removed through the returned [ListenerHandle]. Markers and layers also
// carry per-object callback fields (OnClick, OnEnter, OnDrag, ...) that
// fire before the map-level event.
//
// # Declarative layer
//
// The compose subpackage layers a declarative component tree over a Map:
// prop structs are diffed every render pass and translated into the minimal
// imperative calls described above.
//
// [Ebitengine]: https://ebitengine.org
package meridian
