package loadsweep

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/G-Research/loadsweep/internal/common/logging"
	"github.com/G-Research/loadsweep/internal/loadsweep/configuration"
	"github.com/G-Research/loadsweep/internal/loadsweep/extract"
	"github.com/G-Research/loadsweep/internal/loadsweep/metrics"
	"github.com/G-Research/loadsweep/internal/loadsweep/sweep"
)

type App struct {
	// Parameters passed to the CLI by the user.
	Params *Params
	// Out is used to write the output. Defaults to standard out,
	// but can be overridden in tests to make assertions on the applications's output.
	Out io.Writer
	// Filesystem holding the result and CSV files.
	Fs afero.Fs
	// Simulator used by Sweep. If nil, the executable at Params.Config.Simulator.Path is run.
	Simulator sweep.Simulator
	// Metrics recorded by Sweep. If nil, each sweep gets a fresh registry.
	Metrics *metrics.Metrics
}

// Params struct holds all user-customizable parameters.
// Using a single struct for all CLI commands ensures that all flags are distinct
// and that they can be provided either dynamically on a command line, or
// statically in a config file that's reused between command runs.
type Params struct {
	Config configuration.LoadSweepConfiguration
}

// New instantiates an App with default parameters, writing to standard out and the OS filesystem.
func New() *App {
	return &App{
		Params: &Params{Config: configuration.Default()},
		Out:    os.Stdout,
		Fs:     afero.NewOsFs(),
	}
}

// Sweep runs the simulator once per configured load level and prints a summary of the sweep.
// Failed points are reported but are not an error.
func (a *App) Sweep(ctx context.Context, req sweep.Request) (*sweep.Report, error) {
	config := a.Params.Config
	simulator := a.Simulator
	if simulator == nil {
		simulator = sweep.NewExecSimulator(config.Simulator.Path)
	}
	report, err := sweep.NewDriver(simulator, a.Fs, config, a.Metrics).Run(ctx, req)
	if report != nil {
		report.Print(a.Out)
	}
	return report, err
}

// Csv reads the result file, prints the parsed results table and writes the selected columns to the CSV file.
// The CSV file is only written if every rate has all the selected columns. If the result file can't be parsed
// or projected, any CSV file left over from an earlier run is removed so it isn't mistaken for this run's output.
func (a *App) Csv() error {
	config := a.Params.Config.Extract
	formatter, err := extract.FormatterByName(config.DumpFormat)
	if err != nil {
		return err
	}

	f, err := a.Fs.Open(config.ResultFile)
	if err != nil {
		return errors.Wrapf(err, "error opening result file %s", config.ResultFile)
	}
	defer f.Close()

	table, err := extract.Extract(f, config.Metrics)
	if err != nil {
		return a.removeStaleCsv(errors.WithMessagef(err, "error reading %s", config.ResultFile))
	}

	dump, err := formatter(table)
	if err != nil {
		return err
	}
	if _, err := a.Out.Write(dump); err != nil {
		return errors.WithStack(err)
	}

	records, err := table.Project(config.Columns)
	if err != nil {
		return a.removeStaleCsv(errors.WithMessagef(err, "error building %s", config.CsvFile))
	}
	var buf bytes.Buffer
	if err := extract.WriteCSV(&buf, records); err != nil {
		return err
	}
	if err := afero.WriteFile(a.Fs, config.CsvFile, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "error writing %s", config.CsvFile)
	}
	fmt.Fprintf(a.Out, "%d rate(s) written to %s\n", len(records), config.CsvFile)
	return nil
}

// removeStaleCsv removes the configured CSV file, if any, and returns cause.
func (a *App) removeStaleCsv(cause error) error {
	csvFile := a.Params.Config.Extract.CsvFile
	err := a.Fs.Remove(csvFile)
	switch {
	case err == nil:
		log.Warnf("Removed %s as it no longer matches the result file", csvFile)
	case !os.IsNotExist(err):
		logging.WithStacktrace(log.WithField("csvFile", csvFile), err).Warn("Failed to remove stale CSV file")
	}
	return cause
}
