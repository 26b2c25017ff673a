package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"weldcode.dev/path"
	"weldcode.dev/vectorize"
)

// job is the native input format: an ordered list of primitive paths.
// Container formats (SVG, DXF) are converted to this form by other tools;
// weldcode itself never parses them.
type job struct {
	Paths []jobPath `json:"paths"`
}

type jobPath struct {
	ID       string       `json:"id"`
	Class    string       `json:"class"`
	Message  string       `json:"message,omitempty"`
	Segments []jobSegment `json:"segments"`
}

type jobSegment struct {
	Type string `json:"type"`

	From   []float64 `json:"from,omitempty"`
	To     []float64 `json:"to,omitempty"`
	Center []float64 `json:"center,omitempty"`
	Ctrl   []float64 `json:"ctrl,omitempty"`
	Ctrl1  []float64 `json:"ctrl1,omitempty"`
	Ctrl2  []float64 `json:"ctrl2,omitempty"`

	Radius   float64 `json:"radius,omitempty"`
	Start    float64 `json:"start,omitempty"`
	End      float64 `json:"end,omitempty"`
	Rx       float64 `json:"rx,omitempty"`
	Ry       float64 `json:"ry,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
	LargeArc bool    `json:"large_arc,omitempty"`
	Sweep    bool    `json:"sweep,omitempty"`
	Bulge    float64 `json:"bulge,omitempty"`

	Points [][]float64 `json:"points,omitempty"`
}

func readJob(r io.Reader) (job, error) {
	var j job
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&j); err != nil {
		return job{}, fmt.Errorf("job: %w", err)
	}
	return j, nil
}

func classOf(s string) (path.Class, error) {
	switch s {
	case "", "normal":
		return path.Normal, nil
	case "frangible":
		return path.Frangible, nil
	case "stop":
		return path.Stop, nil
	case "pipette":
		return path.Pipette, nil
	}
	return 0, fmt.Errorf("job: unknown class %q", s)
}

// buildPaths vectorizes every job path at the given spacing. Segment
// joints share a coordinate; the duplicate point is dropped so no dot is
// welded twice.
func buildPaths(j job, spacing float64) ([]path.Path, error) {
	paths := make([]path.Path, 0, len(j.Paths))
	for _, jp := range j.Paths {
		class, err := classOf(jp.Class)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", jp.ID, err)
		}
		pts, err := vectorizeSegments(jp.Segments, spacing)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", jp.ID, err)
		}
		paths = append(paths, path.Path{
			ID:      jp.ID,
			Class:   class,
			Message: jp.Message,
			Points:  pts,
		})
	}
	return paths, nil
}

func vectorizeSegments(segs []jobSegment, spacing float64) ([]path.Point, error) {
	var (
		pts      []path.Point
		cur      path.Point
		haveCur  bool
		prevCtrl path.Point
		havePrev bool
	)
	from := func(s jobSegment) (path.Point, error) {
		if len(s.From) == 2 {
			return path.Pt(s.From[0], s.From[1]), nil
		}
		if !haveCur {
			return path.Point{}, fmt.Errorf("job: first segment needs an explicit from")
		}
		return cur, nil
	}
	for _, s := range segs {
		var (
			seg []path.Point
			err error
		)
		smooth := false
		switch s.Type {
		case "line":
			var p0 path.Point
			if p0, err = from(s); err == nil {
				seg = vectorize.Line(p0, coord(s.To), spacing)
			}
		case "arc":
			seg, err = vectorize.Arc(coord(s.Center), s.Radius, s.Start, s.End, spacing)
		case "quad":
			var p0 path.Point
			if p0, err = from(s); err == nil {
				seg = vectorize.QuadBezier(p0, coord(s.Ctrl), coord(s.To), spacing)
				prevCtrl, havePrev, smooth = coord(s.Ctrl), true, true
			}
		case "cubic":
			var p0 path.Point
			if p0, err = from(s); err == nil {
				seg = vectorize.CubicBezier(p0, coord(s.Ctrl1), coord(s.Ctrl2), coord(s.To), spacing)
				prevCtrl, havePrev, smooth = coord(s.Ctrl2), true, true
			}
		case "smooth_quad":
			var p0 path.Point
			if p0, err = from(s); err == nil {
				c := p0
				if havePrev {
					c = vectorize.Reflect(prevCtrl, p0)
				}
				seg = vectorize.QuadBezier(p0, c, coord(s.To), spacing)
				prevCtrl, havePrev, smooth = c, true, true
			}
		case "smooth_cubic":
			var p0 path.Point
			if p0, err = from(s); err == nil {
				c1 := p0
				if havePrev {
					c1 = vectorize.Reflect(prevCtrl, p0)
				}
				seg = vectorize.CubicBezier(p0, c1, coord(s.Ctrl2), coord(s.To), spacing)
				prevCtrl, havePrev, smooth = coord(s.Ctrl2), true, true
			}
		case "ellipse":
			var p0 path.Point
			if p0, err = from(s); err == nil {
				seg = vectorize.EllipticalArc(p0, s.Rx, s.Ry, s.Rotation, s.LargeArc, s.Sweep, coord(s.To), spacing)
			}
		case "bulge":
			var p0 path.Point
			if p0, err = from(s); err == nil {
				seg = vectorize.BulgeArc(p0, coord(s.To), s.Bulge, spacing)
			}
		case "points":
			for _, p := range s.Points {
				seg = append(seg, path.Pt(p[0], p[1]))
			}
		default:
			err = fmt.Errorf("job: unknown segment type %q", s.Type)
		}
		if err != nil {
			return nil, err
		}
		if !smooth {
			havePrev = false
		}
		pts = appendJoined(pts, seg)
		if len(seg) > 0 {
			cur = seg[len(seg)-1]
			haveCur = true
		}
	}
	return pts, nil
}

func coord(v []float64) path.Point {
	if len(v) != 2 {
		return path.Point{}
	}
	return path.Pt(v[0], v[1])
}

// appendJoined appends seg to pts, dropping seg's first point when it
// coincides with the previous segment's endpoint.
func appendJoined(pts, seg []path.Point) []path.Point {
	if len(pts) > 0 && len(seg) > 0 && samePoint(pts[len(pts)-1], seg[0]) {
		seg = seg[1:]
	}
	return append(pts, seg...)
}

func samePoint(a, b path.Point) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}
