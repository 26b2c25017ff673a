package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"weldcode.dev/path"
)

// Sink is a pass-2 consumer with a lifecycle: Begin is called once before
// the replay, Complete once after the last event.
type Sink interface {
	Consumer
	Begin() error
	Complete() error
}

// Pipeline drives the two-pass conversion of a run: Record folds paths
// into the event log and the extent collector, Emit centers the pattern
// and replays the log into the sinks. Construct one Pipeline per run.
type Pipeline struct {
	log     Log
	extents Extents
	logger  *slog.Logger
	used    map[string]bool
}

func New(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(nopHandler{})
	}
	return &Pipeline{
		logger: logger,
		used:   map[string]bool{},
	}
}

// Record is pass 1. Each path becomes a PathStart, one PointAdded per
// point and a PathComplete; the log and the extent collector consume the
// stream as it is produced. Duplicate path IDs are renamed by suffixing
// the first free ordinal. Empty paths are skipped and logged.
func (p *Pipeline) Record(paths ...path.Path) error {
	for _, pth := range paths {
		if len(pth.Points) == 0 {
			p.logger.Warn("skipping empty path", "id", pth.ID)
			continue
		}
		id := p.dedupe(pth.ID)
		events := make([]Event, 0, len(pth.Points)+2)
		events = append(events, PathStart{ID: id, Class: pth.Class, Message: pth.Message})
		for _, pt := range pth.Points {
			events = append(events, PointAdded{X: pt.X, Y: pt.Y, Class: pth.Class})
		}
		events = append(events, PathComplete{ID: id})
		for _, ev := range events {
			if err := p.log.Record(ev); err != nil {
				return err
			}
			if p.extents.Kinds().Has(kindOf(ev)) {
				if err := p.extents.Handle(ev); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Emit is pass 2: compute the centering offset for a surfaceW×surfaceH
// work surface and replay the recorded events, offset-corrected, into
// every sink. The log is discarded afterwards; the returned offset is the
// one the sinks saw applied.
func (p *Pipeline) Emit(surfaceW, surfaceH float64, sinks ...Sink) (Offset, error) {
	off := CenterOffset(p.extents.Finalize(), surfaceW, surfaceH, p.logger)
	p.logger.Debug("centering offset", "dx", off.Dx, "dy", off.Dy, "events", p.log.Len())

	// Sinks own output handles; Complete must run on every exit path so
	// no handle is left open after a failed replay.
	completed := false
	defer func() {
		if !completed {
			for _, s := range sinks {
				s.Complete()
			}
		}
	}()

	consumers := make([]Consumer, len(sinks))
	for i, s := range sinks {
		if err := s.Begin(); err != nil {
			return off, err
		}
		consumers[i] = offsetConsumer{c: s, off: off}
	}
	if err := p.log.Replay(consumers...); err != nil {
		return off, err
	}
	completed = true
	for _, s := range sinks {
		if err := s.Complete(); err != nil {
			return off, err
		}
	}
	p.log.Clear()
	return off, nil
}

// Log exposes the event log, valid between Record and Emit. Emit clears
// it.
func (p *Pipeline) Log() *Log {
	return &p.log
}

// dedupe returns id, suffixed with the first free ordinal when it was
// already used this run.
func (p *Pipeline) dedupe(id string) string {
	if !p.used[id] {
		p.used[id] = true
		return id
	}
	for n := 2; ; n++ {
		cand := fmt.Sprintf("%s-%d", id, n)
		if !p.used[cand] {
			p.used[cand] = true
			p.logger.Debug("duplicate path id", "id", id, "renamed", cand)
			return cand
		}
	}
}

// nopHandler discards all log records. Enabled returns false so disabled
// logging skips message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
