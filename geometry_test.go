package meridian

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestAppendLineStripCounts(t *testing.T) {
	points := []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	vs, is := appendLineStrip(nil, nil, points, 4, ColorWhite)

	if len(vs) != 2*len(points) {
		t.Errorf("vertices = %d, want %d", len(vs), 2*len(points))
	}
	if len(is) != 6*(len(points)-1) {
		t.Errorf("indices = %d, want %d", len(is), 6*(len(points)-1))
	}
}

func TestAppendLineStripDegenerate(t *testing.T) {
	vs, is := appendLineStrip(nil, nil, []Point{{1, 2}}, 4, ColorWhite)
	if len(vs) != 0 || len(is) != 0 {
		t.Errorf("single point produced %d vertices, %d indices", len(vs), len(is))
	}
	vs, is = appendLineStrip(nil, nil, nil, 4, ColorWhite)
	if len(vs) != 0 || len(is) != 0 {
		t.Error("empty polyline produced geometry")
	}
}

func TestAppendLineStripWidth(t *testing.T) {
	// A horizontal segment extrudes straight up and down by half the width.
	vs, _ := appendLineStrip(nil, nil, []Point{{0, 0}, {100, 0}}, 10, ColorWhite)
	if got := math.Abs(float64(vs[0].DstY - vs[1].DstY)); got != 10 {
		t.Errorf("extruded width = %v, want 10", got)
	}
}

func TestAppendLineStripPremultipliesColor(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}
	vs, _ := appendLineStrip(nil, nil, []Point{{0, 0}, {10, 0}}, 2, c)
	v := vs[0]
	if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorB != 0 || v.ColorA != 0.5 {
		t.Errorf("vertex color = (%v, %v, %v, %v), want premultiplied (0.5, 0.25, 0, 0.5)",
			v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
}

func TestAppendLineStripAppends(t *testing.T) {
	vs := make([]ebiten.Vertex, 0, 16)
	var is []uint16
	vs, is = appendLineStrip(vs, is, []Point{{0, 0}, {10, 0}}, 2, ColorWhite)
	vs, is = appendLineStrip(vs, is, []Point{{0, 10}, {10, 10}}, 2, ColorWhite)

	if len(vs) != 8 || len(is) != 12 {
		t.Fatalf("vertices, indices = %d, %d, want 8, 12", len(vs), len(is))
	}
	// Indices of the second strip must be offset past the first.
	if is[6] != 4 {
		t.Errorf("second strip base index = %d, want 4", is[6])
	}
}

func TestPerpendicularIsUnit(t *testing.T) {
	nx, ny := perpendicular(Point{0, 0}, Point{3, 4})
	assertNear(t, "length", math.Hypot(nx, ny), 1, 1e-9)
	// Left perpendicular of (3,4)/5 is (-4,3)/5.
	assertNear(t, "nx", nx, -0.8, 1e-9)
	assertNear(t, "ny", ny, 0.6, 1e-9)
}

func TestDashRunsSolidWhenNoPattern(t *testing.T) {
	points := []Point{{0, 0}, {100, 0}}
	runs := dashRuns(points, nil, nil)
	if len(runs) != 1 || len(runs[0]) != 2 {
		t.Errorf("runs = %v, want the polyline itself", runs)
	}
}

func TestDashRunsEvenPattern(t *testing.T) {
	points := []Point{{0, 0}, {100, 0}}
	runs := dashRuns(points, []float64{10, 10}, nil)

	if len(runs) != 5 {
		t.Fatalf("runs = %d, want 5", len(runs))
	}
	first := runs[0]
	if first[0] != (Point{0, 0}) || first[len(first)-1] != (Point{10, 0}) {
		t.Errorf("first run = %v, want 0..10", first)
	}
	last := runs[4]
	if last[0] != (Point{80, 0}) || last[len(last)-1] != (Point{90, 0}) {
		t.Errorf("last run = %v, want 80..90", last)
	}
}

func TestDashRunsCrossSegments(t *testing.T) {
	// A 15px dash spans the corner of two 10px segments.
	points := []Point{{0, 0}, {10, 0}, {10, 10}}
	runs := dashRuns(points, []float64{15, 5}, nil)

	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	run := runs[0]
	if run[0] != (Point{0, 0}) || run[len(run)-1] != (Point{10, 5}) {
		t.Errorf("run = %v, want to end at (10, 5)", run)
	}
}

func TestDashRunsReusesBuffer(t *testing.T) {
	points := []Point{{0, 0}, {100, 0}}
	buf := dashRuns(points, []float64{10, 10}, nil)
	again := dashRuns(points, []float64{10, 10}, buf)
	if len(again) != len(buf) {
		t.Errorf("reused-buffer runs = %d, want %d", len(again), len(buf))
	}
}

func TestDashRunsDegeneratePattern(t *testing.T) {
	points := []Point{{0, 0}, {100, 0}}
	runs := dashRuns(points, []float64{0, 0}, nil)
	if len(runs) != 1 {
		t.Errorf("all-zero pattern runs = %d, want 1 solid run", len(runs))
	}
}

func TestPointNearPolyline(t *testing.T) {
	line := []Point{{0, 0}, {100, 0}, {100, 100}}
	tests := []struct {
		name string
		p    Point
		dist float64
		want bool
	}{
		{"on segment", Point{50, 0}, 1, true},
		{"near segment", Point{50, 3}, 4, true},
		{"too far", Point{50, 10}, 4, false},
		{"near corner", Point{102, -2}, 4, true},
		{"past endpoint", Point{100, 110}, 4, false},
		{"near second segment", Point{97, 50}, 4, true},
	}
	for _, tt := range tests {
		if got := pointNearPolyline(tt.p, line, tt.dist); got != tt.want {
			t.Errorf("%s: pointNearPolyline = %v, want %v", tt.name, got, tt.want)
		}
	}
	if pointNearPolyline(Point{0, 0}, []Point{{0, 0}}, 10) {
		t.Error("single point polyline reported a hit")
	}
}

func BenchmarkAppendLineStrip(b *testing.B) {
	points := make([]Point, 256)
	for i := range points {
		points[i] = Point{X: float64(i) * 4, Y: math.Sin(float64(i)/10) * 50}
	}
	var vs []ebiten.Vertex
	var is []uint16
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vs, is = appendLineStrip(vs[:0], is[:0], points, 4, ColorWhite)
	}
}
