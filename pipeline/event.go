// package pipeline records vectorized paths as an ordered event log,
// measures their extents, and replays the log through offset-correcting
// consumers. One Pipeline is constructed per conversion run; there is no
// process-wide publisher state.
package pipeline

import (
	"fmt"

	"weldcode.dev/path"
)

// Event is the closed set of path events. Every path produces the
// sequence PathStart, PointAdded*, PathComplete; the Log rejects
// anything else at record time.
type Event interface {
	event()
}

// PathStart opens a path. Message carries the operator pause text for
// Stop and Pipette paths.
type PathStart struct {
	ID      string
	Class   path.Class
	Message string
}

// PointAdded adds one operation point to the open path.
type PointAdded struct {
	X, Y  float64
	Class path.Class
}

// PathComplete closes the path opened under the same ID.
type PathComplete struct {
	ID string
}

func (PathStart) event()    {}
func (PointAdded) event()   {}
func (PathComplete) event() {}

// Kind identifies an event variant for consumer subscriptions.
type Kind uint8

const (
	KindPathStart Kind = iota
	KindPointAdded
	KindPathComplete
)

// KindSet is a subscription bit set over event kinds.
type KindSet uint8

func Kinds(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// AllKinds subscribes to every event variant.
var AllKinds = Kinds(KindPathStart, KindPointAdded, KindPathComplete)

func (s KindSet) Has(k Kind) bool {
	return s&(1<<k) != 0
}

func kindOf(ev Event) Kind {
	switch ev.(type) {
	case PathStart:
		return KindPathStart
	case PointAdded:
		return KindPointAdded
	case PathComplete:
		return KindPathComplete
	}
	panic(fmt.Sprintf("unknown event %T", ev))
}

// Consumer receives replayed events. Handle is only invoked for kinds in
// the consumer's subscription set.
type Consumer interface {
	Kinds() KindSet
	Handle(ev Event) error
}
