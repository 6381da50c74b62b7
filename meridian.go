package meridian

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// WhitePixel is a 1x1 white image used for solid color fills and untextured
// line geometry.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// LngLat is a geographic coordinate in degrees. Longitude comes first,
// matching GeoJSON ordering.
type LngLat struct {
	Lng, Lat float64
}

// Point is a 2D point or offset in screen pixels. The coordinate system has
// its origin at the top-left, with Y increasing downward.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in screen pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether p lies inside the rectangle. Points on the edge
// are considered inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Anchor positions an overlay or element relative to its geographic point.
type Anchor uint8

const (
	// AnchorAuto resolves to the owner's default: center for markers,
	// bottom for popups.
	AnchorAuto        Anchor = iota
	AnchorBottom             // content sits above the point
	AnchorTop                // content sits below the point
	AnchorLeft               // content sits to the right of the point
	AnchorRight              // content sits to the left of the point
	AnchorCenter             // content is centered on the point
	AnchorBottomLeft
	AnchorBottomRight
	AnchorTopLeft
	AnchorTopRight
)

// Alignment controls whether a marker property tracks the viewport or the map.
type Alignment uint8

const (
	// AlignViewport keeps the property fixed relative to the screen.
	AlignViewport Alignment = iota
	// AlignMap rotates or tilts the property with the camera.
	AlignMap
)

// EventType identifies a kind of map event.
type EventType uint8

const (
	EventLoad         EventType = iota // fires once when the map finishes initial setup
	EventStyleData                     // fires when a style finishes applying
	EventMove                          // fires when the camera center changes
	EventMoveEnd                       // fires when a camera movement settles
	EventZoom                          // fires when the zoom level changes
	EventRotate                        // fires when the bearing changes
	EventPitch                         // fires when the pitch changes
	EventClick                         // fires on press then release over the same target
	EventPointerMove                   // fires when the pointer moves (hover, no button)
	EventPointerEnter                  // fires when the pointer enters a marker or layer
	EventPointerLeave                  // fires when the pointer leaves a marker or layer
	EventDragStart                     // fires when movement exceeds the drag dead zone
	EventDrag                          // fires each frame while dragging
	EventDragEnd                       // fires when the pointer is released after dragging
	EventPopupOpen                     // fires when a popup is added to the map
	EventPopupClose                    // fires when a popup is removed from the map
	EventDestroy                       // fires once when the map is torn down
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Event carries the payload delivered to map, marker, and layer listeners.
// Fields beyond Type are populated when they apply: pointer events carry
// Point/LngLat/Button, marker events carry Marker, layer events carry Layer.
type Event struct {
	Type      EventType
	Point     Point  // screen position of the pointer
	LngLat    LngLat // geographic position under the pointer (or the marker's position for drags)
	Button    MouseButton
	Modifiers KeyModifiers
	Marker    *Marker
	Popup     *Popup
	Layer     string // layer id for layer-scoped events
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	Start Point
	Delta Point
}

// ControlPosition selects the screen corner a control stack is laid out in.
type ControlPosition uint8

const (
	ControlTopLeft     ControlPosition = iota // stack grows downward from the top-left corner
	ControlTopRight                           // stack grows downward from the top-right corner
	ControlBottomLeft                         // stack grows upward from the bottom-left corner
	ControlBottomRight                        // stack grows upward from the bottom-right corner
)
