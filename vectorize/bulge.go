package vectorize

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"weldcode.dev/path"
)

// BulgeArc samples a CAD polyline arc encoded as a bulge factor,
// tan(included_angle/4), positive for arcs bulging to the left of the
// chord. Points are generated directly along the arc rather than through
// intermediate line segments, so polyline joints never receive duplicate
// dots. A zero bulge degrades to a straight line, a zero-length chord to
// the end point alone.
func BulgeArc(start, end path.Point, bulge, spacing float64) []path.Point {
	if bulge == 0 {
		return Line(start, end, spacing)
	}
	sv, ev := vec(start), vec(end)
	chordVec := ev.Sub(sv)
	chord := chordVec.Len()
	if chord == 0 {
		return []path.Point{end}
	}

	theta := 4 * math.Atan(bulge)
	radius := chord / (2 * math.Sin(math.Abs(theta)/2))

	// The center sits radius·cos(θ/2) from the chord midpoint along the
	// chord perpendicular, on the side selected by the bulge sign. For
	// |bulge| > 1 the cosine goes negative and flips the center to the
	// far side, which is exactly the major-arc case.
	mid := sv.Add(ev).Mul(0.5)
	norm := mgl64.Vec2{-chordVec[1], chordVec[0]}.Mul(1 / chord)
	d := radius * math.Cos(theta/2)
	if bulge > 0 {
		d = -d
	}
	center := mid.Add(norm.Mul(d))

	startAng := math.Atan2(sv[1]-center[1], sv[0]-center[0])
	segs := int(math.Round(math.Abs(theta) * radius / spacing))
	if segs < 2 {
		segs = 2
	}
	pts := make([]path.Point, 0, segs+1)
	pts = append(pts, start)
	for i := 1; i < segs; i++ {
		a := startAng - theta*float64(i)/float64(segs)
		sin, cos := math.Sincos(a)
		pts = append(pts, pt(center.Add(mgl64.Vec2{cos, sin}.Mul(radius))))
	}
	return append(pts, end)
}
