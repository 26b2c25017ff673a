// package gcode emits the motion-command artifact for a replayed event
// stream. The Emitter is a single-use state machine: header, one
// operation block per point, a boundary marker per path, footer. It owns
// the output handle for the lifetime of a run and closes it exactly once.
package gcode

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"weldcode.dev/path"
	"weldcode.dev/pipeline"
)

// Pipette dots ignore the configuration: always a shallow touch with a
// short dwell.
const (
	pipetteHeight  = 0.05
	pipetteDwellMS = 500
)

type state uint8

const (
	stateUninitialized state = iota
	stateIdle
	stateInPath
	stateFinalized
)

// Stats summarizes one emitted artifact.
type Stats struct {
	Paths  uint32
	Points uint32
}

// Emitter translates the offset-corrected event stream into G-code. It
// implements pipeline.Sink. Mutable emission state (current class, first
// point flags, counters) is owned here exclusively.
type Emitter struct {
	cfg    Config
	logger *slog.Logger
	bufw   *bufio.Writer
	closer io.Closer
	err    error

	state       state
	class       path.Class
	pause       string
	firstInPath bool
	firstEver   bool
	stats       Stats
}

// NewEmitter writes to w, which the emitter closes on Complete when it
// implements io.Closer.
func NewEmitter(w io.Writer, cfg Config, logger *slog.Logger) *Emitter {
	e := &Emitter{
		cfg:       cfg,
		logger:    logger,
		bufw:      bufio.NewWriter(w),
		firstEver: true,
	}
	if c, ok := w.(io.Closer); ok {
		e.closer = c
	}
	return e
}

// Create validates the artifact's base filename against MaxNameLen and
// opens the file. The check happens before the file exists, so a
// too-long name never leaves a partial artifact.
func Create(name string, cfg Config, logger *slog.Logger) (*Emitter, error) {
	if err := CheckName(filepath.Base(name)); err != nil {
		return nil, err
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return NewEmitter(f, cfg, logger), nil
}

func (e *Emitter) Kinds() pipeline.KindSet {
	return pipeline.AllKinds
}

// Begin writes the header: positioning modes, homing, heating and the
// optional leveling probe and operator pause.
func (e *Emitter) Begin() error {
	if e.state != stateUninitialized {
		panic("gcode: Begin on a started emitter")
	}
	cfg := &e.cfg
	e.wr("; weldcode")
	e.wr("G90 ; absolute positioning")
	e.wr("M83 ; relative extrusion")
	e.wr("G28 ; home all axes")
	if cfg.HeatBeforeRun {
		e.wrf("M190 S%.0f ; heat bed and wait", cfg.BedTemperature)
		e.wrf("M109 S%.0f ; heat nozzle and wait", cfg.NozzleTemperature)
		if cfg.ChamberEnabled {
			e.wrf("M191 S%.0f ; heat chamber and wait", cfg.ChamberTemperature)
		}
	}
	if cfg.LevelBed {
		e.wr("G29 ; level bed")
	}
	if cfg.StartMessage != "" {
		e.wrf("M0 %s", cfg.StartMessage)
	}
	e.state = stateIdle
	return e.err
}

func (e *Emitter) Handle(ev pipeline.Event) error {
	switch e.state {
	case stateUninitialized:
		panic("gcode: Handle before Begin")
	case stateFinalized:
		panic("gcode: Handle after Complete")
	}
	switch ev := ev.(type) {
	case pipeline.PathStart:
		e.class = ev.Class
		e.pause = ev.Message
		e.firstInPath = true
		e.state = stateInPath
		e.wrf("; path %s (%s)", ev.ID, ev.Class)
	case pipeline.PointAdded:
		e.point(ev)
	case pipeline.PathComplete:
		e.wrf("; end path %s", ev.ID)
		e.stats.Paths++
		e.state = stateIdle
	}
	return e.err
}

func (e *Emitter) point(ev pipeline.PointAdded) {
	cfg := &e.cfg
	if e.firstEver {
		// One-time Z-origin shift: the tool is preloaded against the
		// substrate, then raised to the high travel clearance before
		// any lateral motion.
		e.wrf("G92 Z%.3f ; compression offset", cfg.WeldCompressionOffset)
		e.wrf("G0 Z%.3f F%.0f", cfg.MoveHeight, cfg.ZSpeed)
		e.firstEver = false
	}
	e.firstInPath = false
	e.wrf("G0 X%.3f Y%.3f F%.0f", ev.X, ev.Y, cfg.XYSpeed)

	switch ev.Class {
	case path.Stop:
		msg := e.pause
		if msg == "" {
			msg = "operator action required"
		}
		e.wrf("M0 %s", msg)
	case path.Pipette:
		e.wrf("G1 Z%.3f F%.0f", pipetteHeight, cfg.ZSpeed)
		e.wrf("G4 P%d", pipetteDwellMS)
		e.wrf("G0 Z%.3f F%.0f", cfg.LowTravelHeight, cfg.ZSpeed)
	default:
		op := cfg.Normal
		if ev.Class == path.Frangible {
			op = cfg.Frangible
		}
		e.wrf("G1 Z%.3f F%.0f", op.Height, cfg.ZSpeed)
		e.wrf("G4 P%d", op.DwellMS)
		e.wrf("G0 Z%.3f F%.0f", cfg.LowTravelHeight, cfg.ZSpeed)
	}
	e.stats.Points++
}

// Complete writes the footer and flushes and closes the output. Calling
// it again after it has run is a no-op; the footer is never duplicated.
func (e *Emitter) Complete() error {
	if e.state == stateFinalized {
		return nil
	}
	if e.state != stateUninitialized {
		cfg := &e.cfg
		e.wrf("G0 Z%.3f F%.0f ; raise tool", cfg.MoveHeight, cfg.ZSpeed)
		e.wr("G28 X Y ; home")
		if cfg.CooldownEnabled {
			e.wrf("M190 R%.0f ; cool bed and wait", cfg.CooldownTemperature)
		}
		e.wr("M84 ; disable motors")
	}
	if err := e.bufw.Flush(); e.err == nil {
		e.err = err
	}
	if e.closer != nil {
		if err := e.closer.Close(); e.err == nil {
			e.err = err
		}
	}
	e.state = stateFinalized
	if e.logger != nil {
		e.logger.Info("artifact complete", "paths", e.stats.Paths, "points", e.stats.Points)
	}
	return e.err
}

// Stats reports the paths and points processed so far.
func (e *Emitter) Stats() Stats {
	return e.stats
}

func (e *Emitter) wr(line string) {
	if e.err != nil {
		return
	}
	_, e.err = e.bufw.WriteString(line)
	if e.err == nil {
		e.err = e.bufw.WriteByte('\n')
	}
}

func (e *Emitter) wrf(format string, args ...any) {
	if e.err != nil {
		return
	}
	e.wr(fmt.Sprintf(format, args...))
}
