package pipeline

import "fmt"

// SequenceError reports an event stream that violates the
// PathStart → PointAdded* → PathComplete ordering. It signals a broken
// event producer, not bad user input.
type SequenceError struct {
	ID     string
	Reason string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("event sequence: path %q: %s", e.ID, e.Reason)
}

// Log is an in-memory, ordered event log. It is owned by one pipeline
// run: Record validates and appends, Replay delivers the events in
// recorded order, Clear discards them. Recording while a replay is in
// progress is a programmer error and panics.
type Log struct {
	events    []Event
	open      string
	inPath    bool
	replaying bool
}

func (l *Log) Record(ev Event) error {
	if l.replaying {
		panic("pipeline: Record during Replay")
	}
	switch ev := ev.(type) {
	case PathStart:
		if l.inPath {
			return &SequenceError{ID: ev.ID, Reason: fmt.Sprintf("started while %q is open", l.open)}
		}
		l.open = ev.ID
		l.inPath = true
	case PointAdded:
		if !l.inPath {
			return &SequenceError{Reason: "point added outside an open path"}
		}
	case PathComplete:
		if !l.inPath {
			return &SequenceError{ID: ev.ID, Reason: "completed but never started"}
		}
		if ev.ID != l.open {
			return &SequenceError{ID: ev.ID, Reason: fmt.Sprintf("completed while %q is open", l.open)}
		}
		l.open = ""
		l.inPath = false
	}
	l.events = append(l.events, ev)
	return nil
}

// Replay delivers every recorded event, in order, to each consumer whose
// subscription set contains the event's kind. Delivery order across
// consumers for one event is unspecified; order per consumer matches the
// recording exactly.
func (l *Log) Replay(consumers ...Consumer) error {
	l.replaying = true
	defer func() { l.replaying = false }()
	for _, ev := range l.events {
		k := kindOf(ev)
		for _, c := range consumers {
			if !c.Kinds().Has(k) {
				continue
			}
			if err := c.Handle(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Log) Clear() {
	l.events = nil
	l.open = ""
	l.inPath = false
}

func (l *Log) Len() int {
	return len(l.events)
}
