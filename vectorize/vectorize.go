// package vectorize converts geometric primitives into point sequences
// spaced for dot-by-dot machine operation. All functions are pure: they
// never touch the event pipeline and keep exact endpoints, so adjacent
// primitives in a path meet without floating drift.
package vectorize

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"weldcode.dev/path"
)

// ErrDegenerate reports a primitive that has no well-defined shape, such
// as an arc with a non-positive radius.
var ErrDegenerate = errors.New("degenerate geometry")

func vec(p path.Point) mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

func pt(v mgl64.Vec2) path.Point {
	return path.Point{X: v[0], Y: v[1]}
}

// Line samples the segment from a to b so that consecutive points are at
// most spacing apart, with a and b included exactly. A segment shorter
// than spacing collapses to its midpoint, avoiding zero-length duplicate
// dots at polyline joints.
func Line(a, b path.Point, spacing float64) []path.Point {
	av, bv := vec(a), vec(b)
	length := bv.Sub(av).Len()
	if length < spacing {
		return []path.Point{pt(av.Add(bv).Mul(0.5))}
	}
	segs := int(math.Ceil(length / spacing))
	pts := make([]path.Point, 0, segs+1)
	pts = append(pts, a)
	for i := 1; i < segs; i++ {
		t := float64(i) / float64(segs)
		pts = append(pts, pt(av.Add(bv.Sub(av).Mul(t))))
	}
	return append(pts, b)
}

// Arc samples a circular arc by angular interpolation. Angles are in
// degrees, counter-clockwise, with the end angle allowed to be smaller
// than the start angle for clockwise sweeps.
func Arc(center path.Point, radius, startDeg, endDeg, spacing float64) ([]path.Point, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("arc radius %g: %w", radius, ErrDegenerate)
	}
	start := startDeg * math.Pi / 180
	sweep := (endDeg - startDeg) * math.Pi / 180
	segs := int(math.Round(math.Abs(sweep) * radius / spacing))
	if segs < 2 {
		segs = 2
	}
	c := vec(center)
	pts := make([]path.Point, 0, segs+1)
	for i := 0; i <= segs; i++ {
		a := start + sweep*float64(i)/float64(segs)
		sin, cos := math.Sincos(a)
		pts = append(pts, pt(c.Add(mgl64.Vec2{cos, sin}.Mul(radius))))
	}
	return pts, nil
}

// QuadBezier samples a quadratic Bézier curve from p0 to p1 with control
// point c. The curve length is estimated from the control polygon; the
// estimate errs high, which only tightens the spacing.
func QuadBezier(p0, c, p1 path.Point, spacing float64) []path.Point {
	v0, vc, v1 := vec(p0), vec(c), vec(p1)
	est := polygonLength(v0, vc, v1)
	segs := bezierSegments(est, spacing)
	pts := make([]path.Point, 0, segs+1)
	pts = append(pts, p0)
	for i := 1; i < segs; i++ {
		t := float64(i) / float64(segs)
		u := 1 - t
		p := v0.Mul(u * u).Add(vc.Mul(2 * u * t)).Add(v1.Mul(t * t))
		pts = append(pts, pt(p))
	}
	return append(pts, p1)
}

// CubicBezier samples a cubic Bézier curve from p0 to p1 with control
// points c1 and c2.
func CubicBezier(p0, c1, c2, p1 path.Point, spacing float64) []path.Point {
	v0, vc1, vc2, v1 := vec(p0), vec(c1), vec(c2), vec(p1)
	est := polygonLength(v0, vc1, vc2, v1)
	segs := bezierSegments(est, spacing)
	pts := make([]path.Point, 0, segs+1)
	pts = append(pts, p0)
	for i := 1; i < segs; i++ {
		t := float64(i) / float64(segs)
		u := 1 - t
		p := v0.Mul(u * u * u).
			Add(vc1.Mul(3 * u * u * t)).
			Add(vc2.Mul(3 * u * t * t)).
			Add(v1.Mul(t * t * t))
		pts = append(pts, pt(p))
	}
	return append(pts, p1)
}

// Reflect mirrors p through the pivot. It implements the implied first
// control point of the SVG smooth curve commands ("S", "T"): the previous
// segment's last control point reflected through the current position.
func Reflect(p, pivot path.Point) path.Point {
	return path.Point{X: 2*pivot.X - p.X, Y: 2*pivot.Y - p.Y}
}

// SmoothCubicBezier is CubicBezier with the first control point derived
// from the previous segment. When the previous segment had no control
// point (hasPrev false), the reflected control coincides with p0.
func SmoothCubicBezier(p0, prevCtrl path.Point, hasPrev bool, c2, p1 path.Point, spacing float64) []path.Point {
	c1 := p0
	if hasPrev {
		c1 = Reflect(prevCtrl, p0)
	}
	return CubicBezier(p0, c1, c2, p1, spacing)
}

// SmoothQuadBezier is QuadBezier with the control point derived from the
// previous segment the same way as SmoothCubicBezier.
func SmoothQuadBezier(p0, prevCtrl path.Point, hasPrev bool, p1 path.Point, spacing float64) []path.Point {
	c := p0
	if hasPrev {
		c = Reflect(prevCtrl, p0)
	}
	return QuadBezier(p0, c, p1, spacing)
}

// polygonLength estimates a Bézier arc length as the average of the
// control polygon length and the chord length.
func polygonLength(ctrl ...mgl64.Vec2) float64 {
	var legs float64
	for i := 1; i < len(ctrl); i++ {
		legs += ctrl[i].Sub(ctrl[i-1]).Len()
	}
	chord := ctrl[len(ctrl)-1].Sub(ctrl[0]).Len()
	return (legs + chord) / 2
}

func bezierSegments(length, spacing float64) int {
	segs := int(math.Round(length / spacing))
	if segs < 1 {
		segs = 1
	}
	return segs
}
