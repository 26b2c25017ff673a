package pipeline

// Bounds is the axis-aligned bounding box of all observed points. The
// zero Bounds reports HasBounds false; callers must check it before
// trusting the coordinates.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64

	seen bool
}

func (b Bounds) HasBounds() bool {
	return b.seen
}

func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// Extents folds PointAdded events into a running bounding box. It is the
// pass-1 consumer of a run. NaN or infinite coordinates pass through
// untouched; input validation belongs to the geometry producer.
type Extents struct {
	bounds Bounds
}

func (e *Extents) Kinds() KindSet {
	return Kinds(KindPointAdded)
}

func (e *Extents) Handle(ev Event) error {
	p := ev.(PointAdded)
	if !e.bounds.seen {
		e.bounds = Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y, seen: true}
		return nil
	}
	if p.X < e.bounds.MinX {
		e.bounds.MinX = p.X
	}
	if p.X > e.bounds.MaxX {
		e.bounds.MaxX = p.X
	}
	if p.Y < e.bounds.MinY {
		e.bounds.MinY = p.Y
	}
	if p.Y > e.bounds.MaxY {
		e.bounds.MaxY = p.Y
	}
	return nil
}

// Finalize returns the collected bounds. It is idempotent and may be
// called at any time.
func (e *Extents) Finalize() Bounds {
	return e.bounds
}
