package meridian

import (
	"math"

	"github.com/tanema/gween/ease"
)

// CameraPose is a complete camera state: where the camera looks and how it
// is oriented. Zoom is a Web Mercator zoom level, Bearing and Pitch are in
// degrees.
type CameraPose struct {
	Center  LngLat
	Zoom    float64
	Bearing float64
	Pitch   float64
}

// Camera controls the view into the map: center coordinate, zoom level,
// bearing, and pitch. All movement methods take effect on the next
// [Map.Update] tick; animated moves advance one step per tick.
type Camera struct {
	center  LngLat
	zoom    float64
	bearing float64 // degrees, normalized to [-180, 180)
	pitch   float64 // degrees, clamped to [0, maxPitch]

	viewport Rect

	ease   *poseTween
	flight *flightTween
}

const maxPitch = 60.0

// newCamera creates a camera over the given viewport with the given pose.
func newCamera(viewport Rect, pose CameraPose) *Camera {
	c := &Camera{viewport: viewport}
	c.apply(pose)
	return c
}

// Center returns the coordinate the camera is centered on.
func (c *Camera) Center() LngLat { return c.center }

// Zoom returns the current zoom level.
func (c *Camera) Zoom() float64 { return c.zoom }

// Bearing returns the current bearing in degrees. 0 is north-up; positive
// values rotate the map clockwise.
func (c *Camera) Bearing() float64 { return c.bearing }

// Pitch returns the current pitch in degrees. 0 is top-down.
func (c *Camera) Pitch() float64 { return c.pitch }

// Pose returns the current camera state. Mutate the copy and pass it to
// JumpTo, EaseTo, or FlyTo.
func (c *Camera) Pose() CameraPose {
	return CameraPose{Center: c.center, Zoom: c.zoom, Bearing: c.bearing, Pitch: c.pitch}
}

// Moving reports whether an animated camera move is in progress.
func (c *Camera) Moving() bool {
	return c.ease != nil || c.flight != nil
}

// JumpTo snaps the camera to the given pose immediately, cancelling any
// animation in progress.
func (c *Camera) JumpTo(pose CameraPose) {
	c.Stop()
	c.apply(pose)
}

// EaseTo animates the camera to the given pose over duration seconds with a
// smooth in-out curve. Bearing takes the shortest rotation path.
func (c *Camera) EaseTo(pose CameraPose, duration float32) {
	if duration <= 0 {
		c.JumpTo(pose)
		return
	}
	c.Stop()
	c.ease = newPoseTween(c, pose, duration, ease.InOutQuad)
}

// FlyTo animates the camera along a flight path to the given pose: the zoom
// dips on the way for long moves, evoking the zoom-out-then-in gesture of a
// map flight. Duration is in seconds.
func (c *Camera) FlyTo(pose CameraPose, duration float32) {
	if duration <= 0 {
		c.JumpTo(pose)
		return
	}
	c.Stop()
	c.flight = newFlightTween(c, pose, duration)
}

// ResetNorth eases bearing and pitch back to zero, leaving center and zoom
// unchanged.
func (c *Camera) ResetNorth(duration float32) {
	pose := c.Pose()
	pose.Bearing = 0
	pose.Pitch = 0
	c.EaseTo(pose, duration)
}

// ZoomBy eases the zoom level by delta (positive zooms in), leaving the
// center fixed.
func (c *Camera) ZoomBy(delta float64, duration float32) {
	pose := c.Pose()
	pose.Zoom = clampZoom(pose.Zoom + delta)
	c.EaseTo(pose, duration)
}

// Stop cancels any animated move, leaving the camera at its current pose.
func (c *Camera) Stop() {
	c.ease = nil
	c.flight = nil
}

// apply writes a pose with normalization and clamping.
func (c *Camera) apply(pose CameraPose) {
	c.center = LngLat{Lng: wrapLng(pose.Center.Lng), Lat: clampLat(pose.Center.Lat)}
	c.zoom = clampZoom(pose.Zoom)
	c.bearing = normalizeBearing(pose.Bearing)
	c.pitch = clampPitch(pose.Pitch)
}

// update advances camera animations. Called from Map.Update.
func (c *Camera) update(dt float32) {
	if c.ease != nil {
		c.ease.update(dt)
		if c.ease.done {
			c.ease = nil
		}
	}
	if c.flight != nil {
		c.flight.update(dt)
		if c.flight.done {
			c.flight = nil
		}
	}
}

// setViewport resizes the camera's screen rectangle.
func (c *Camera) setViewport(viewport Rect) {
	c.viewport = viewport
}

// --- Screen transforms ---

// pitchScale returns the vertical compression factor for the current pitch.
func (c *Camera) pitchScale() float64 {
	return math.Cos(c.pitch * math.Pi / 180)
}

// Project converts a geographic coordinate to screen pixels under the
// current pose.
func (c *Camera) Project(ll LngLat) Point {
	w := project(ll, c.zoom)
	cw := project(c.center, c.zoom)
	dx := w.X - cw.X
	dy := w.Y - cw.Y

	// Take the short way around the antimeridian.
	ws := worldSize(c.zoom)
	if dx > ws/2 {
		dx -= ws
	} else if dx < -ws/2 {
		dx += ws
	}

	// Rotate by the bearing, then compress vertically for pitch.
	rad := -c.bearing * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	sx := dx*cos - dy*sin
	sy := (dx*sin + dy*cos) * c.pitchScale()

	return Point{
		X: c.viewport.X + c.viewport.Width/2 + sx,
		Y: c.viewport.Y + c.viewport.Height/2 + sy,
	}
}

// Unproject converts screen pixels back to a geographic coordinate under
// the current pose.
func (c *Camera) Unproject(p Point) LngLat {
	sx := p.X - c.viewport.X - c.viewport.Width/2
	sy := p.Y - c.viewport.Y - c.viewport.Height/2

	scale := c.pitchScale()
	if scale > 1e-9 {
		sy /= scale
	}
	rad := c.bearing * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	dx := sx*cos - sy*sin
	dy := sx*sin + sy*cos

	cw := project(c.center, c.zoom)
	return unproject(Point{X: cw.X + dx, Y: cw.Y + dy}, c.zoom)
}

// panBy moves the center so the map content follows a screen-space drag of
// (dx, dy) pixels. Cancels any animation in progress.
func (c *Camera) panBy(dx, dy float64) {
	c.Stop()
	scale := c.pitchScale()
	if scale > 1e-9 {
		dy /= scale
	}
	rad := c.bearing * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	wx := -dx*cos + dy*sin
	wy := -dx*sin - dy*cos

	cw := project(c.center, c.zoom)
	c.center = unproject(Point{X: cw.X + wx, Y: cw.Y + wy}, c.zoom)
	c.center.Lng = wrapLng(c.center.Lng)
}

// zoomAbout changes the zoom by delta while keeping the geographic point
// under the given screen position fixed. Used by wheel zoom.
func (c *Camera) zoomAbout(delta float64, focus Point) {
	c.Stop()
	anchor := c.Unproject(focus)
	c.zoom = clampZoom(c.zoom + delta)

	// Re-center so the anchor projects back to the focus position.
	after := c.Project(anchor)
	c.panBy(focus.X-after.X, focus.Y-after.Y)
}

// rotateBy adds degrees to the bearing. Cancels any animation in progress.
func (c *Camera) rotateBy(deg float64) {
	c.Stop()
	c.bearing = normalizeBearing(c.bearing + deg)
}

// pitchBy adds degrees to the pitch. Cancels any animation in progress.
func (c *Camera) pitchBy(deg float64) {
	c.Stop()
	c.pitch = clampPitch(c.pitch + deg)
}

// normalizeBearing wraps a bearing into [-180, 180).
func normalizeBearing(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg - 180
}

// clampPitch restricts pitch to [0, maxPitch].
func clampPitch(deg float64) float64 {
	if deg < 0 {
		return 0
	}
	if deg > maxPitch {
		return maxPitch
	}
	return deg
}
