package gcode

// Operation holds the per-class emission parameters: the height the tool
// is lowered to and the dwell duration spent there.
type Operation struct {
	// Height in millimeters.
	Height float64
	// DwellMS in milliseconds.
	DwellMS int
}

// Config is the read-only machine configuration consumed by the Emitter.
// The Frangible parameters live here and nowhere else; earlier tooling
// carried conflicting literals for them in several places.
type Config struct {
	BedTemperature      float64
	NozzleTemperature   float64
	ChamberTemperature  float64
	ChamberEnabled      bool
	CooldownTemperature float64
	CooldownEnabled     bool

	// BedSize in millimeters; the pattern is centered on it.
	BedSizeX float64
	BedSizeY float64

	// MoveHeight is the high travel clearance used before the first
	// point; LowTravelHeight the clearance between weld dots.
	MoveHeight      float64
	LowTravelHeight float64

	// Speeds in mm/min.
	XYSpeed float64
	ZSpeed  float64

	// WeldCompressionOffset shifts the Z origin once, before the first
	// motion of a run, to preload the tool against the substrate.
	WeldCompressionOffset float64

	Normal    Operation
	Frangible Operation

	// HeatBeforeRun emits set-and-wait temperature commands in the
	// header.
	HeatBeforeRun bool
	// LevelBed emits a bed-leveling probe in the header.
	LevelBed bool
	// StartMessage, when set, pauses the machine with this operator
	// message before the first path.
	StartMessage string
}

func DefaultConfig() Config {
	return Config{
		BedTemperature:        60,
		NozzleTemperature:     210,
		ChamberTemperature:    40,
		CooldownTemperature:   30,
		BedSizeX:              250,
		BedSizeY:              220,
		MoveHeight:            5,
		LowTravelHeight:       1,
		XYSpeed:               3000,
		ZSpeed:                600,
		WeldCompressionOffset: 0.1,
		Normal:                Operation{Height: 0.1, DwellMS: 800},
		Frangible:             Operation{Height: 0.15, DwellMS: 1200},
		HeatBeforeRun:         true,
	}
}
