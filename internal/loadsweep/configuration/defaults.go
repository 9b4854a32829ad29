package configuration

import (
	"github.com/spf13/viper"
)

const (
	DefaultSimulatorPath = "schedsim"
	DefaultResultFile    = "out.txt"
	DefaultCsvFile       = "out.csv"
	DefaultDumpFormat    = "litter"
)

// DefaultLoadLevels returns the load levels swept when none are configured.
func DefaultLoadLevels() []float64 {
	return []float64{0.01, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 0.99}
}

// DefaultMetrics returns the names of the fields of a simulator metrics row.
func DefaultMetrics() []string {
	return []string{"Count", "Stolen", "AVG", "STDDev", "50th", "90th", "95th", "99th", "Reqs/time_unit"}
}

// DefaultColumns returns the metrics written to the CSV when none are configured.
func DefaultColumns() []string {
	return []string{"50th", "99th"}
}

func Default() LoadSweepConfiguration {
	return LoadSweepConfiguration{
		Simulator: SimulatorConfig{
			Path: DefaultSimulatorPath,
		},
		Sweep: SweepConfig{
			ResultFile: DefaultResultFile,
			LoadLevels: DefaultLoadLevels(),
		},
		Extract: ExtractConfig{
			ResultFile: DefaultResultFile,
			CsvFile:    DefaultCsvFile,
			Metrics:    DefaultMetrics(),
			Columns:    DefaultColumns(),
			DumpFormat: DefaultDumpFormat,
		},
	}
}

// SetDefaults registers every key of Default() with v, so that environment variables are picked up
// by Unmarshal even when no config file mentions the key.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("simulator.path", d.Simulator.Path)
	v.SetDefault("simulator.duration", d.Simulator.Duration)
	v.SetDefault("simulator.bufferSize", d.Simulator.BufferSize)
	v.SetDefault("simulator.timeout", d.Simulator.Timeout)
	v.SetDefault("sweep.resultFile", d.Sweep.ResultFile)
	v.SetDefault("sweep.loadLevels", d.Sweep.LoadLevels)
	v.SetDefault("sweep.metricsFile", d.Sweep.MetricsFile)
	v.SetDefault("extract.resultFile", d.Extract.ResultFile)
	v.SetDefault("extract.csvFile", d.Extract.CsvFile)
	v.SetDefault("extract.metrics", d.Extract.Metrics)
	v.SetDefault("extract.columns", d.Extract.Columns)
	v.SetDefault("extract.dumpFormat", d.Extract.DumpFormat)
}
