// command weldcode converts a job of vector primitives into a centered,
// dot-by-dot G-code artifact, with optional PNG preview and event-log
// snapshot.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"weldcode.dev/gcode"
	"weldcode.dev/pipeline"
	"weldcode.dev/preview"
)

var (
	output      = pflag.StringP("output", "o", "out.gcode", "output G-code file")
	spacing     = pflag.Float64("spacing", 1.0, "dot spacing (mm)")
	previewOut  = pflag.String("preview", "", "write a PNG preview of the centered pattern")
	previewRes  = pflag.Float64("preview-res", 4, "preview resolution (px/mm)")
	eventsOut   = pflag.String("dump-events", "", "write the recorded event log (CBOR)")
	startPause  = pflag.String("start-message", "", "pause with this operator message before the first path")
	noHeat      = pflag.Bool("no-heat", false, "skip heating in the header")
	levelBed    = pflag.Bool("level-bed", false, "probe the bed in the header")
	verbose     = pflag.BoolP("verbose", "v", false, "debug logging")
)

func main() {
	cfg := gcode.DefaultConfig()
	pflag.Float64Var(&cfg.BedSizeX, "bed-x", cfg.BedSizeX, "bed width (mm)")
	pflag.Float64Var(&cfg.BedSizeY, "bed-y", cfg.BedSizeY, "bed depth (mm)")
	pflag.Float64Var(&cfg.BedTemperature, "bed-temp", cfg.BedTemperature, "bed temperature (°C)")
	pflag.Float64Var(&cfg.NozzleTemperature, "nozzle-temp", cfg.NozzleTemperature, "nozzle temperature (°C)")
	pflag.Float64Var(&cfg.MoveHeight, "move-height", cfg.MoveHeight, "high travel clearance (mm)")
	pflag.Float64Var(&cfg.LowTravelHeight, "travel-height", cfg.LowTravelHeight, "travel clearance between dots (mm)")
	pflag.Float64Var(&cfg.WeldCompressionOffset, "compression-offset", cfg.WeldCompressionOffset, "one-time Z origin shift (mm)")
	pflag.Float64Var(&cfg.Frangible.Height, "frangible-height", cfg.Frangible.Height, "frangible weld height (mm)")
	pflag.IntVar(&cfg.Frangible.DwellMS, "frangible-dwell", cfg.Frangible.DwellMS, "frangible weld dwell (ms)")
	pflag.Parse()

	cfg.HeatBeforeRun = !*noHeat
	cfg.LevelBed = *levelBed
	cfg.StartMessage = *startPause

	if err := run(cfg); err != nil {
		var nameErr *gcode.NameError
		if errors.As(err, &nameErr) {
			fmt.Fprintf(os.Stderr, "weldcode: %v; pick a shorter -o name\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "weldcode: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(cfg gcode.Config) error {
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var in io.Reader = os.Stdin
	if pflag.NArg() > 0 && pflag.Arg(0) != "-" {
		f, err := os.Open(pflag.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	j, err := readJob(in)
	if err != nil {
		return err
	}
	paths, err := buildPaths(j, *spacing)
	if err != nil {
		return err
	}

	p := pipeline.New(logger)
	if err := p.Record(paths...); err != nil {
		return err
	}
	if *eventsOut != "" {
		snap, err := p.Log().MarshalBinary()
		if err != nil {
			return err
		}
		if err := os.WriteFile(*eventsOut, snap, 0o640); err != nil {
			return err
		}
	}

	emitter, err := gcode.Create(*output, cfg, logger)
	if err != nil {
		return err
	}
	sinks := []pipeline.Sink{emitter}
	if *previewOut != "" {
		f, err := os.Create(*previewOut)
		if err != nil {
			return err
		}
		sinks = append(sinks, preview.New(f, cfg.BedSizeX, cfg.BedSizeY, *previewRes, 0.4))
	}

	off, err := p.Emit(cfg.BedSizeX, cfg.BedSizeY, sinks...)
	if err != nil {
		return err
	}
	stats := emitter.Stats()
	logger.Info("run complete", "output", *output,
		"paths", stats.Paths, "points", stats.Points,
		"dx", off.Dx, "dy", off.Dy)
	return nil
}
