package vectorize

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"weldcode.dev/path"
)

// ellipseMinSamples is the lower bound on integration samples for the
// elliptical speed function.
const ellipseMinSamples = 10

// EllipticalArc samples an SVG-style elliptical arc from "from" to "to".
// The endpoint parameterization (radii, x-axis rotation in degrees and the
// large-arc/sweep flags) is converted to a center parameterization first;
// radii too small to span the chord are scaled up uniformly, as the SVG
// conversion rules prescribe. Degenerate input (a zero radius or
// coincident endpoints) falls back to the end coordinate alone.
func EllipticalArc(from path.Point, rx, ry, rotationDeg float64, largeArc, sweep bool, to path.Point, spacing float64) []path.Point {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 || (from.X == to.X && from.Y == to.Y) {
		return []path.Point{to}
	}

	phi := rotationDeg * math.Pi / 180
	rot := mgl64.Rotate2D(phi)
	inv := mgl64.Rotate2D(-phi)

	// Conversion from endpoint to center parameterization, following the
	// conic-section derivation in the SVG implementation notes (F.6.5).
	half := vec(from).Sub(vec(to)).Mul(0.5)
	p1 := inv.Mul2x1(half)

	// Scale radii up if the endpoints are out of reach.
	if lambda := p1[0]*p1[0]/(rx*rx) + p1[1]*p1[1]/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*p1[1]*p1[1] - ry*ry*p1[0]*p1[0]
	den := rx*rx*p1[1]*p1[1] + ry*ry*p1[0]*p1[0]
	co := math.Sqrt(math.Max(0, num/den))
	if largeArc == sweep {
		co = -co
	}
	cp := mgl64.Vec2{co * rx * p1[1] / ry, -co * ry * p1[0] / rx}

	mid := vec(from).Add(vec(to)).Mul(0.5)
	center := rot.Mul2x1(cp).Add(mid)

	theta1 := math.Atan2((p1[1]-cp[1])/ry, (p1[0]-cp[0])/rx)
	theta2 := math.Atan2((-p1[1]-cp[1])/ry, (-p1[0]-cp[0])/rx)
	sweepAng := theta2 - theta1
	if !sweep && sweepAng > 0 {
		sweepAng -= 2 * math.Pi
	} else if sweep && sweepAng < 0 {
		sweepAng += 2 * math.Pi
	}

	length := ellipseArcLength(rx, ry, theta1, sweepAng)
	segs := int(math.Round(length / spacing))
	if segs < 2 {
		segs = 2
	}
	pts := make([]path.Point, 0, segs+1)
	pts = append(pts, from)
	for i := 1; i < segs; i++ {
		t := theta1 + sweepAng*float64(i)/float64(segs)
		sin, cos := math.Sincos(t)
		p := rot.Mul2x1(mgl64.Vec2{rx * cos, ry * sin}).Add(center)
		pts = append(pts, pt(p))
	}
	return append(pts, to)
}

// ellipseArcLength integrates the elliptical speed function
// sqrt(rx²sin²t + ry²cos²t) over the swept angle with the midpoint rule.
// The sample count grows with the sweep magnitude.
func ellipseArcLength(rx, ry, start, sweep float64) float64 {
	n := int(math.Ceil(math.Abs(sweep) / (2 * math.Pi) * 64))
	if n < ellipseMinSamples {
		n = ellipseMinSamples
	}
	h := sweep / float64(n)
	var sum float64
	for i := 0; i < n; i++ {
		t := start + h*(float64(i)+0.5)
		sin, cos := math.Sincos(t)
		sum += math.Sqrt(rx*rx*sin*sin + ry*ry*cos*cos)
	}
	return math.Abs(h) * sum
}
