package configuration

import (
	"time"
)

type LoadSweepConfiguration struct {
	Simulator SimulatorConfig
	Sweep     SweepConfig
	Extract   ExtractConfig
}

// SimulatorConfig describes how the external simulator is invoked.
type SimulatorConfig struct {
	// Path to the simulator executable. Looked up on $PATH if it contains no separator.
	Path string `validate:"required"`
	// Experiment duration forwarded as --duration. Omitted if zero.
	Duration float64 `validate:"gte=0"`
	// Bounded buffer size forwarded as --buffersize. Omitted if zero.
	BufferSize int `validate:"gte=0"`
	// Upper bound on a single invocation. Zero means wait forever.
	Timeout time.Duration `validate:"gte=0"`
}

type SweepConfig struct {
	// File the simulator output is written to. Truncated at the start of every sweep.
	ResultFile string `validate:"required"`
	// Load levels, as fractions of total capacity, in invocation order.
	LoadLevels []float64 `validate:"required,min=1,dive,gt=0,lt=1"`
	// If set, sweep metrics are written here in the Prometheus text format once the sweep completes.
	MetricsFile string
}

type ExtractConfig struct {
	// Simulator output to read.
	ResultFile string `validate:"required"`
	// Where the reduced CSV is written.
	CsvFile string `validate:"required"`
	// Names given to the fields of a metrics row, in column order.
	Metrics []string `validate:"required,min=1,unique,dive,required"`
	// Metrics projected into the CSV, in output column order.
	Columns []string `validate:"required,min=1,dive,required"`
	// How the results table is printed before the CSV is written: litter or yaml.
	DumpFormat string `validate:"oneof=litter yaml"`
}
