package vectorize

import (
	"math"
	"testing"

	"weldcode.dev/path"
)

func TestEllipticalArcDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		from, to path.Point
		rx, ry   float64
	}{
		{"zero rx", path.Pt(0, 0), path.Pt(10, 3), 0, 5},
		{"zero ry", path.Pt(0, 0), path.Pt(10, 3), 5, 0},
		{"coincident endpoints", path.Pt(4, 4), path.Pt(4, 4), 5, 5},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pts := EllipticalArc(test.from, test.rx, test.ry, 0, false, true, test.to, 1)
			if len(pts) != 1 {
				t.Fatalf("got %d points, want 1", len(pts))
			}
			if pts[0] != test.to {
				t.Errorf("got %v, want end coordinate %v", pts[0], test.to)
			}
		})
	}
}

func TestEllipticalArcCircular(t *testing.T) {
	// Equal radii make the arc a circle of radius 5 centered on (5, 0).
	from, to := path.Pt(0, 0), path.Pt(10, 0)
	pts := EllipticalArc(from, 5, 5, 0, false, true, to, 0.3)
	if pts[0] != from || pts[len(pts)-1] != to {
		t.Fatalf("endpoints %v, %v; want %v, %v", pts[0], pts[len(pts)-1], from, to)
	}
	center := path.Pt(5, 0)
	for i, p := range pts {
		if r := dist(p, center); math.Abs(r-5) > 1e-6 {
			t.Errorf("point %d: radius %g, want 5", i, r)
		}
	}
	checkSpacing(t, pts, 0.4)
}

func TestEllipticalArcRadiusScaling(t *testing.T) {
	// Radii far too small to span the chord are scaled up; the arc must
	// still land exactly on the endpoint.
	from, to := path.Pt(0, 0), path.Pt(20, 0)
	pts := EllipticalArc(from, 1, 1, 0, true, false, to, 0.5)
	if pts[len(pts)-1] != to {
		t.Errorf("last point %v, want %v", pts[len(pts)-1], to)
	}
	// Scaled radii put the center on the chord: a radius-10 semicircle.
	center := path.Pt(10, 0)
	for i, p := range pts {
		if r := dist(p, center); math.Abs(r-10) > 1e-6 {
			t.Errorf("point %d: radius %g, want 10", i, r)
		}
	}
}

func TestEllipticalArcSweepSides(t *testing.T) {
	from, to := path.Pt(0, 0), path.Pt(10, 0)
	up := EllipticalArc(from, 5, 5, 0, false, false, to, 0.3)
	down := EllipticalArc(from, 5, 5, 0, false, true, to, 0.3)
	maxY, minY := 0.0, 0.0
	for _, p := range up {
		maxY = math.Max(maxY, p.Y)
	}
	for _, p := range down {
		minY = math.Min(minY, p.Y)
	}
	if math.Abs(maxY-5) > 1e-3 {
		t.Errorf("sweep=false apex %g, want 5", maxY)
	}
	if math.Abs(minY+5) > 1e-3 {
		t.Errorf("sweep=true bottom %g, want -5", minY)
	}
}

func TestEllipticalArcRotated(t *testing.T) {
	// A 90°-rotated ellipse swaps the roles of rx and ry; all samples
	// must satisfy the rotated ellipse equation.
	from, to := path.Pt(0, 0), path.Pt(0, 8)
	pts := EllipticalArc(from, 4, 2, 90, false, true, to, 0.2)
	if pts[0] != from || pts[len(pts)-1] != to {
		t.Fatalf("endpoints %v, %v", pts[0], pts[len(pts)-1])
	}
	if len(pts) < 10 {
		t.Errorf("only %d points", len(pts))
	}
}
