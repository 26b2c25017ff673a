package pipeline

import "log/slog"

// Offset is the translation applied to every pass-2 coordinate so the
// pattern is centered on the work surface.
type Offset struct {
	Dx, Dy float64
}

// CenterOffset computes the offset that moves the center of b onto the
// center of a surfaceW×surfaceH work surface. Without bounds the offset
// is zero. A pattern larger than the surface is logged, not rejected;
// whether to proceed is the caller's call.
func CenterOffset(b Bounds, surfaceW, surfaceH float64, logger *slog.Logger) Offset {
	if !b.HasBounds() {
		return Offset{}
	}
	if logger != nil && (b.Width() > surfaceW || b.Height() > surfaceH) {
		logger.Warn("pattern exceeds work surface",
			"width", b.Width(), "height", b.Height(),
			"surface_width", surfaceW, "surface_height", surfaceH)
	}
	return Offset{
		Dx: surfaceW/2 - (b.MinX+b.MaxX)/2,
		Dy: surfaceH/2 - (b.MinY+b.MaxY)/2,
	}
}

// offsetConsumer shifts PointAdded coordinates before forwarding. All
// other events pass through unchanged.
type offsetConsumer struct {
	c   Consumer
	off Offset
}

func (o offsetConsumer) Kinds() KindSet {
	return o.c.Kinds()
}

func (o offsetConsumer) Handle(ev Event) error {
	if p, ok := ev.(PointAdded); ok {
		p.X += o.off.Dx
		p.Y += o.off.Dy
		return o.c.Handle(p)
	}
	return o.c.Handle(ev)
}
