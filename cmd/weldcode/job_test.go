package main

import (
	"math"
	"strings"
	"testing"

	"weldcode.dev/path"
)

func TestReadJob(t *testing.T) {
	const src = `{
		"paths": [
			{
				"id": "outline",
				"class": "frangible",
				"segments": [
					{"type": "line", "from": [0, 0], "to": [10, 0]},
					{"type": "line", "to": [10, 10]}
				]
			}
		]
	}`
	j, err := readJob(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(j.Paths) != 1 || len(j.Paths[0].Segments) != 2 {
		t.Fatalf("parsed %+v", j)
	}
	if j.Paths[0].ID != "outline" || j.Paths[0].Class != "frangible" {
		t.Errorf("path header %+v", j.Paths[0])
	}
}

func TestReadJobRejectsUnknownFields(t *testing.T) {
	const src = `{"paths": [{"id": "a", "segmentz": []}]}`
	if _, err := readJob(strings.NewReader(src)); err == nil {
		t.Fatal("unknown field accepted")
	}
}

func TestBuildPathsJointDedupe(t *testing.T) {
	j := job{Paths: []jobPath{{
		ID: "corner",
		Segments: []jobSegment{
			{Type: "line", From: []float64{0, 0}, To: []float64{10, 0}},
			{Type: "line", To: []float64{10, 10}},
		},
	}}}
	paths, err := buildPaths(j, 2)
	if err != nil {
		t.Fatal(err)
	}
	pts := paths[0].Points
	for i := 1; i < len(pts); i++ {
		if samePoint(pts[i-1], pts[i]) {
			t.Fatalf("duplicate joint point %v at %d", pts[i], i)
		}
	}
	// Two 10 mm legs at 2 mm spacing share the corner point.
	if len(pts) != 11 {
		t.Errorf("%d points, want 11", len(pts))
	}
	if last := pts[len(pts)-1]; !samePoint(last, path.Pt(10, 10)) {
		t.Errorf("last point %v, want (10, 10)", last)
	}
}

func TestBuildPathsErrors(t *testing.T) {
	tests := []struct {
		name string
		jp   jobPath
	}{
		{
			"unknown class",
			jobPath{ID: "a", Class: "welded"},
		},
		{
			"unknown segment type",
			jobPath{ID: "a", Segments: []jobSegment{{Type: "spiral"}}},
		},
		{
			"missing initial from",
			jobPath{ID: "a", Segments: []jobSegment{{Type: "line", To: []float64{1, 1}}}},
		},
		{
			"degenerate arc",
			jobPath{ID: "a", Segments: []jobSegment{{Type: "arc", Center: []float64{0, 0}, Radius: 0, Start: 0, End: 1}}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := buildPaths(job{Paths: []jobPath{test.jp}}, 1)
			if err == nil {
				t.Fatal("no error")
			}
			if !strings.Contains(err.Error(), `"a"`) {
				t.Errorf("error %q does not name the path", err)
			}
		})
	}
}

func TestSmoothChainReflection(t *testing.T) {
	j := job{Paths: []jobPath{{
		ID: "wave",
		Segments: []jobSegment{
			{Type: "quad", From: []float64{0, 0}, Ctrl: []float64{5, 10}, To: []float64{10, 0}},
			{Type: "smooth_quad", To: []float64{20, 0}},
		},
	}}}
	paths, err := buildPaths(j, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	// The reflected control point (15, -10) pulls the second hump below
	// the axis, mirroring the first.
	minY := math.Inf(1)
	for _, p := range paths[0].Points {
		if p.X > 10 && p.Y < minY {
			minY = p.Y
		}
	}
	if math.Abs(minY-(-5)) > 0.1 {
		t.Errorf("second hump bottoms out at %g, want about -5", minY)
	}
}

func TestSmoothAfterNonCurveFlattens(t *testing.T) {
	j := job{Paths: []jobPath{{
		ID: "flat",
		Segments: []jobSegment{
			{Type: "line", From: []float64{0, 0}, To: []float64{10, 0}},
			{Type: "smooth_quad", To: []float64{20, 0}},
		},
	}}}
	paths, err := buildPaths(j, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	// Without a previous control point the smooth control collapses onto
	// the start, so the curve degenerates to the chord.
	for _, p := range paths[0].Points {
		if math.Abs(p.Y) > 1e-9 {
			t.Fatalf("point %v is off the axis", p)
		}
	}
}

func TestPointsSegment(t *testing.T) {
	j := job{Paths: []jobPath{{
		ID:    "manual",
		Class: "pipette",
		Segments: []jobSegment{
			{Type: "points", Points: [][]float64{{1, 2}, {3, 4}}},
		},
	}}}
	paths, err := buildPaths(j, 1)
	if err != nil {
		t.Fatal(err)
	}
	p := paths[0]
	if p.Class != path.Pipette {
		t.Errorf("class %v, want pipette", p.Class)
	}
	want := []path.Point{path.Pt(1, 2), path.Pt(3, 4)}
	if len(p.Points) != 2 || !samePoint(p.Points[0], want[0]) || !samePoint(p.Points[1], want[1]) {
		t.Errorf("points %v, want %v", p.Points, want)
	}
}
