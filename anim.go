package meridian

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// poseTween animates up to 5 camera fields simultaneously. Bearing and
// longitude targets are rewritten so the animation takes the shortest path
// around their wrap points; the final values are normalized on completion.
//
// There is no global animation manager; Camera.update advances the tween.
type poseTween struct {
	tweens [5]*gween.Tween
	fields [5]*float64
	count  int
	cam    *Camera
	done   bool
}

// newPoseTween creates a tween from the camera's current pose to the target.
func newPoseTween(cam *Camera, to CameraPose, duration float32, fn ease.TweenFunc) *poseTween {
	g := &poseTween{cam: cam, count: 5}

	lngTarget := cam.center.Lng + wrapLng(to.Center.Lng-cam.center.Lng)
	bearingTarget := cam.bearing + bearingDelta(cam.bearing, to.Bearing)

	g.tweens[0] = gween.New(float32(cam.center.Lng), float32(lngTarget), duration, fn)
	g.tweens[1] = gween.New(float32(cam.center.Lat), float32(clampLat(to.Center.Lat)), duration, fn)
	g.tweens[2] = gween.New(float32(cam.zoom), float32(clampZoom(to.Zoom)), duration, fn)
	g.tweens[3] = gween.New(float32(cam.bearing), float32(bearingTarget), duration, fn)
	g.tweens[4] = gween.New(float32(cam.pitch), float32(clampPitch(to.Pitch)), duration, fn)
	g.fields[0] = &cam.center.Lng
	g.fields[1] = &cam.center.Lat
	g.fields[2] = &cam.zoom
	g.fields[3] = &cam.bearing
	g.fields[4] = &cam.pitch
	return g
}

// update advances all tweens by dt seconds and writes values to the camera.
func (g *poseTween) update(dt float32) {
	if g.done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if allDone {
		g.done = true
		g.cam.center.Lng = wrapLng(g.cam.center.Lng)
		g.cam.bearing = normalizeBearing(g.cam.bearing)
	}
}

// flightTween animates the camera along a flight path: center moves linearly
// on the world plane while the zoom dips below the endpoints for long moves.
type flightTween struct {
	t         *gween.Tween // progress from 0 to 1, eased
	cam       *Camera
	from, to  CameraPose
	fromWorld Point // projected at the target zoom
	toWorld   Point
	dip       float64 // zoom levels subtracted at the midpoint
	done      bool
}

// newFlightTween creates a flight from the camera's current pose. The dip
// grows with the world-plane distance and is capped at two zoom levels.
func newFlightTween(cam *Camera, to CameraPose, duration float32) *flightTween {
	to.Zoom = clampZoom(to.Zoom)
	to.Pitch = clampPitch(to.Pitch)
	f := &flightTween{
		t:         gween.New(0, 1, duration, ease.InOutQuad),
		cam:       cam,
		from:      cam.Pose(),
		to:        to,
		fromWorld: project(cam.center, to.Zoom),
		toWorld:   project(to.Center, to.Zoom),
	}
	// Fly the short way around the antimeridian.
	ws := worldSize(to.Zoom)
	if f.toWorld.X-f.fromWorld.X > ws/2 {
		f.toWorld.X -= ws
	} else if f.toWorld.X-f.fromWorld.X < -ws/2 {
		f.toWorld.X += ws
	}
	dx := f.toWorld.X - f.fromWorld.X
	dy := f.toWorld.Y - f.fromWorld.Y
	f.dip = math.Min(2.0, math.Hypot(dx, dy)/(2*tileSize))
	return f
}

// update advances the flight by dt seconds and writes the interpolated pose.
func (f *flightTween) update(dt float32) {
	if f.done {
		return
	}
	val, finished := f.t.Update(dt)
	if finished {
		f.cam.apply(f.to)
		f.done = true
		return
	}
	t := float64(val)

	w := Point{
		X: f.fromWorld.X + (f.toWorld.X-f.fromWorld.X)*t,
		Y: f.fromWorld.Y + (f.toWorld.Y-f.fromWorld.Y)*t,
	}
	pose := CameraPose{
		Center:  unproject(w, f.to.Zoom),
		Zoom:    f.from.Zoom + (f.to.Zoom-f.from.Zoom)*t - f.dip*math.Sin(math.Pi*t),
		Bearing: f.from.Bearing + bearingDelta(f.from.Bearing, f.to.Bearing)*t,
		Pitch:   f.from.Pitch + (f.to.Pitch-f.from.Pitch)*t,
	}
	f.cam.apply(pose)
}

// bearingDelta returns the shortest signed rotation from one bearing to
// another, in [-180, 180).
func bearingDelta(from, to float64) float64 {
	return normalizeBearing(to - from)
}
