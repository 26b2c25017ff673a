package preview

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"weldcode.dev/path"
	"weldcode.dev/pipeline"
)

// darkAt reports whether any pixel in a small window around (x, y) is
// darker than mid gray. Stroking is antialiased, so exact pixel values
// are not stable.
func darkAt(r *Renderer, x, y int) bool {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			c := color.GrayModel.Convert(r.Image().At(x+dx, y+dy)).(color.Gray)
			if c.Y < 128 {
				return true
			}
		}
	}
	return false
}

func TestRendererStrokesPath(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 100, 100, 2, 1)

	p := pipeline.New(nil)
	err := p.Record(path.Path{
		ID:     "l",
		Points: []path.Point{path.Pt(-10, 0), path.Pt(10, 0)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Emit(100, 100, r); err != nil {
		t.Fatal(err)
	}

	// A 20 mm horizontal line centered on a 100 mm bed runs from
	// (40, 50) to (60, 50) in bed space; at 2 px/mm with Y flipped that
	// is the image row y=100 from x=80 to x=120.
	for _, x := range []int{80, 100, 120} {
		if !darkAt(r, x, 100) {
			t.Errorf("no stroke at image x=%d", x)
		}
	}
	if darkAt(r, 100, 40) {
		t.Error("stroke found far from the path")
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding the emitted PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("PNG is %dx%d, want 200x200", b.Dx(), b.Dy())
	}
}

func TestRendererSingleDot(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 100, 100, 2, 1)

	p := pipeline.New(nil)
	if err := p.Record(path.Path{ID: "dot", Points: []path.Point{path.Pt(0, 0)}}); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Emit(100, 100, r); err != nil {
		t.Fatal(err)
	}
	// The dot is centered at (50, 50) in bed space.
	if !darkAt(r, 100, 100) {
		t.Error("lone dot left no mark")
	}
}

func TestRendererCompleteIdempotent(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 10, 10, 1, 1)
	if err := r.Complete(); err != nil {
		t.Fatal(err)
	}
	n := buf.Len()
	if err := r.Complete(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != n {
		t.Error("second Complete wrote again")
	}
}
