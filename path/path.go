// package path defines the geometry and operation model shared by the
// vectorizer, the event pipeline and the G-code emitter.
package path

// Point is a position on the work surface, in millimeters.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Class selects the operation performed at each point of a path.
type Class uint8

const (
	// Normal is a regular weld dot.
	Normal Class = iota
	// Frangible is a weakened weld, meant to be broken later.
	Frangible
	// Stop pauses the machine until the operator confirms.
	Stop
	// Pipette is a short, shallow dispense dot.
	Pipette
)

func (c Class) String() string {
	switch c {
	case Normal:
		return "normal"
	case Frangible:
		return "frangible"
	case Stop:
		return "stop"
	case Pipette:
		return "pipette"
	}
	return "unknown"
}

// Path is an ordered, non-empty point sequence operated on with a single
// class. ID must be unique within a run; the pipeline deduplicates
// collisions by suffixing. Message is shown to the operator for Stop and
// Pipette paths and ignored otherwise.
type Path struct {
	ID      string
	Class   Class
	Message string
	Points  []Point
}
