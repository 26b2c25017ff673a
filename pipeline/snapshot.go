package pipeline

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"weldcode.dev/path"
)

// eventRecord is the CBOR envelope for one event. The sealed Event union
// cannot be encoded directly, so each event is flattened into a tagged
// record.
type eventRecord struct {
	Kind    Kind    `cbor:"k"`
	ID      string  `cbor:"id,omitempty"`
	Class   uint8   `cbor:"c,omitempty"`
	Message string  `cbor:"m,omitempty"`
	X       float64 `cbor:"x,omitempty"`
	Y       float64 `cbor:"y,omitempty"`
}

// MarshalBinary encodes the recorded events as CBOR, for diagnostics and
// for replaying a run elsewhere.
func (l *Log) MarshalBinary() ([]byte, error) {
	recs := make([]eventRecord, 0, len(l.events))
	for _, ev := range l.events {
		switch ev := ev.(type) {
		case PathStart:
			recs = append(recs, eventRecord{Kind: KindPathStart, ID: ev.ID, Class: uint8(ev.Class), Message: ev.Message})
		case PointAdded:
			recs = append(recs, eventRecord{Kind: KindPointAdded, X: ev.X, Y: ev.Y, Class: uint8(ev.Class)})
		case PathComplete:
			recs = append(recs, eventRecord{Kind: KindPathComplete, ID: ev.ID})
		}
	}
	return cbor.Marshal(recs)
}

// UnmarshalBinary decodes a snapshot into the log. The events run through
// Record, so a snapshot with a broken sequence is rejected the same way a
// live producer would be.
func (l *Log) UnmarshalBinary(data []byte) error {
	var recs []eventRecord
	if err := cbor.Unmarshal(data, &recs); err != nil {
		return fmt.Errorf("event snapshot: %w", err)
	}
	l.Clear()
	for _, r := range recs {
		var ev Event
		switch r.Kind {
		case KindPathStart:
			ev = PathStart{ID: r.ID, Class: path.Class(r.Class), Message: r.Message}
		case KindPointAdded:
			ev = PointAdded{X: r.X, Y: r.Y, Class: path.Class(r.Class)}
		case KindPathComplete:
			ev = PathComplete{ID: r.ID}
		default:
			return fmt.Errorf("event snapshot: unknown kind %d", r.Kind)
		}
		if err := l.Record(ev); err != nil {
			return err
		}
	}
	return nil
}
