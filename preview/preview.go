// package preview renders the offset-corrected point stream to a PNG so a
// run can be inspected before the machine sees it. It is an alternative
// pass-2 consumer: plug a Renderer into the pipeline next to (or instead
// of) the G-code emitter.
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"weldcode.dev/pipeline"
)

// Renderer strokes each path's polyline onto a white canvas, one pixel
// grid mapped from bed millimeters. Renderer implements pipeline.Sink.
type Renderer struct {
	img      *image.RGBA
	dasher   *rasterx.Dasher
	out      io.Writer
	closer   io.Closer
	scale    float64
	heightPx int

	started bool
	count   int
	last    fixed.Point26_6
	done    bool
}

// New renders a surfaceW×surfaceH millimeter bed at pxPerMM resolution,
// stroking strokeWidth millimeters wide. The PNG is written to out on
// Complete; out is closed then if it implements io.Closer.
func New(out io.Writer, surfaceW, surfaceH, pxPerMM, strokeWidth float64) *Renderer {
	wpx := int(math.Ceil(surfaceW * pxPerMM))
	hpx := int(math.Ceil(surfaceH * pxPerMM))
	img := image.NewRGBA(image.Rect(0, 0, wpx, hpx))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(wpx, hpx, img, img.Bounds())
	dasher := rasterx.NewDasher(wpx, hpx, scanner)
	stroke := strokeWidth * pxPerMM * 64
	dasher.SetStroke(fixed.Int26_6(stroke), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	dasher.SetColor(color.Black)
	r := &Renderer{
		img:      img,
		dasher:   dasher,
		out:      out,
		scale:    pxPerMM,
		heightPx: hpx,
	}
	if c, ok := out.(io.Closer); ok {
		r.closer = c
	}
	return r
}

func (r *Renderer) Kinds() pipeline.KindSet {
	return pipeline.AllKinds
}

func (r *Renderer) Begin() error {
	return nil
}

func (r *Renderer) Handle(ev pipeline.Event) error {
	switch ev := ev.(type) {
	case pipeline.PathStart:
		r.started = false
		r.count = 0
	case pipeline.PointAdded:
		// Bed Y points up, image Y down.
		p := rasterx.ToFixedP(ev.X*r.scale, float64(r.heightPx)-ev.Y*r.scale)
		if !r.started {
			r.dasher.Start(p)
			r.started = true
		} else {
			r.dasher.Line(p)
		}
		r.last = p
		r.count++
	case pipeline.PathComplete:
		if r.started {
			if r.count == 1 {
				// A lone dot has no chord to stroke; nudge it by a
				// hair so the round caps show.
				r.dasher.Line(fixed.Point26_6{X: r.last.X + 1, Y: r.last.Y})
			}
			r.dasher.Stop(false)
			r.started = false
		}
	}
	return nil
}

// Complete draws the accumulated strokes and writes the PNG. Calling it
// again is a no-op.
func (r *Renderer) Complete() error {
	if r.done {
		return nil
	}
	r.done = true
	if r.started {
		r.dasher.Stop(false)
		r.started = false
	}
	r.dasher.Draw()
	err := png.Encode(r.out, r.img)
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Image exposes the canvas, for tests.
func (r *Renderer) Image() *image.RGBA {
	return r.img
}
