package meridian

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Line strips ---

// appendLineStrip tessellates a polyline into a triangle strip of the given
// stroke width and appends it to vs/is. For N points it adds 2N vertices and
// 6(N-1) indices. Interior joins use averaged segment normals scaled to keep
// the stroke width through the corner, clamped to 2x to avoid spikes.
func appendLineStrip(vs []ebiten.Vertex, is []uint16, points []Point, width float64, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 2 {
		return vs, is
	}

	halfW := width / 2
	base := uint16(len(vs))

	// Vertex colors are premultiplied.
	cr := float32(c.R * c.A)
	cg := float32(c.G * c.A)
	cb := float32(c.B * c.A)
	ca := float32(c.A)

	for i := 0; i < n; i++ {
		var nx, ny float64
		switch {
		case i == 0:
			nx, ny = perpendicular(points[0], points[1])
		case i == n-1:
			nx, ny = perpendicular(points[n-2], points[n-1])
		default:
			nx0, ny0 := perpendicular(points[i-1], points[i])
			nx1, ny1 := perpendicular(points[i], points[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			ln := math.Sqrt(nx*nx + ny*ny)
			if ln > 1e-10 {
				nx /= ln
				ny /= ln
			}
			// Miter: scale the averaged normal to maintain width at the
			// corner, clamped to avoid exaggerated spikes.
			dot := nx0*nx + ny0*ny
			if dot > 0.1 {
				scale := 1.0 / dot
				if scale > 2.0 {
					scale = 2.0
				}
				nx *= scale
				ny *= scale
			}
		}

		vs = append(vs,
			ebiten.Vertex{
				DstX:   float32(points[i].X + nx*halfW),
				DstY:   float32(points[i].Y + ny*halfW),
				SrcX:   0.5,
				SrcY:   0.5,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			},
			ebiten.Vertex{
				DstX:   float32(points[i].X - nx*halfW),
				DstY:   float32(points[i].Y - ny*halfW),
				SrcX:   0.5,
				SrcY:   0.5,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			},
		)
	}

	for i := 0; i < n-1; i++ {
		v := base + uint16(i*2)
		is = append(is, v, v+1, v+2, v+1, v+3, v+2)
	}
	return vs, is
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Point) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// --- Dashing ---

// dashRuns splits a polyline into the drawn runs of a dash pattern. The
// pattern alternates drawn and skipped lengths in pixels and repeats along
// the path. Each run is returned as its own sub-polyline; buf is reused
// between calls.
func dashRuns(points []Point, dash []float64, buf [][]Point) [][]Point {
	runs := buf[:0]
	if len(points) < 2 || len(dash) == 0 {
		return append(runs, points)
	}

	total := 0.0
	for _, d := range dash {
		if d > 0 {
			total += d
		}
	}
	if total <= 0 {
		return append(runs, points)
	}

	var run []Point
	drawing := true // even dash entries are drawn
	di := 0
	rem := dash[0] // length left in the current dash entry
	if rem <= 0 {
		rem = total
	}
	advance := func() {
		drawing = !drawing
		di = (di + 1) % len(dash)
		rem = dash[di]
		if rem <= 0 {
			rem = total
		}
	}

	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		if segLen < 1e-10 {
			continue
		}
		if drawing && len(run) == 0 {
			run = append(run, a)
		}
		pos := 0.0 // distance consumed along this segment
		for segLen-pos > rem {
			pos += rem
			p := Point{X: a.X + (b.X-a.X)*pos/segLen, Y: a.Y + (b.Y-a.Y)*pos/segLen}
			if drawing {
				run = append(run, p)
				if len(run) >= 2 {
					runs = append(runs, run)
				}
				run = nil
			} else {
				run = append(run, p)
			}
			advance()
		}
		rem -= segLen - pos
		if drawing {
			run = append(run, b)
		}
	}
	if len(run) >= 2 {
		runs = append(runs, run)
	}
	return runs
}

// --- Hit testing ---

// pointNearPolyline reports whether p lies within dist of any segment of the
// polyline.
func pointNearPolyline(p Point, points []Point, dist float64) bool {
	if len(points) < 2 {
		return false
	}
	d2 := dist * dist
	for i := 0; i+1 < len(points); i++ {
		if pointSegmentDist2(p, points[i], points[i+1]) <= d2 {
			return true
		}
	}
	return false
}

// pointSegmentDist2 returns the squared distance from p to the segment ab.
func pointSegmentDist2(p, a, b Point) float64 {
	abx := b.X - a.X
	aby := b.Y - a.Y
	apx := p.X - a.X
	apy := p.Y - a.Y
	len2 := abx*abx + aby*aby
	t := 0.0
	if len2 > 1e-10 {
		t = (apx*abx + apy*aby) / len2
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	dx := apx - abx*t
	dy := apy - aby*t
	return dx*dx + dy*dy
}
