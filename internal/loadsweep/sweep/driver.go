package sweep

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/G-Research/loadsweep/internal/common/logging"
	"github.com/G-Research/loadsweep/internal/loadsweep/configuration"
	"github.com/G-Research/loadsweep/internal/loadsweep/metrics"
)

// Driver invokes the simulator once per configured load level, one invocation at a time,
// and collects the output of every invocation in a single result file.
type Driver struct {
	simulator Simulator
	fs        afero.Fs
	config    configuration.LoadSweepConfiguration
	metrics   *metrics.Metrics
}

func NewDriver(simulator Simulator, fs afero.Fs, config configuration.LoadSweepConfiguration, m *metrics.Metrics) *Driver {
	if m == nil {
		m = metrics.New()
	}
	return &Driver{
		simulator: simulator,
		fs:        fs,
		config:    config,
		metrics:   m,
	}
}

// Run performs a sweep. The result file is truncated first.
//
// A failed simulator invocation does not stop the sweep: it is logged, recorded in the returned report
// and the next load level is run. Whatever the failed invocation wrote stays in the result file.
// An error is returned only if the request is invalid, the result file can't be written,
// or ctx is cancelled; in the last case the report covers the points run so far.
func (d *Driver) Run(ctx context.Context, req Request) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	levels := d.config.Sweep.LoadLevels
	rates := InjectedRates(levels, req.MeanServiceTimeUs, req.Cores)
	resultFile := d.config.Sweep.ResultFile

	report := &Report{
		SweepId:    uuid.NewString(),
		ResultFile: resultFile,
		Request:    req,
		Points:     make([]PointResult, 0, len(rates)),
	}
	logger := log.WithFields(log.Fields{"sweepId": report.SweepId, "topology": req.Topology})
	logger.Infof(
		"Sweeping %d load levels at %s req/s total capacity (%d cores, %sus mean service time)",
		len(levels), formatFloat(TotalCapacity(req.MeanServiceTimeUs, req.Cores)), req.Cores, formatFloat(req.MeanServiceTimeUs),
	)

	f, err := d.fs.OpenFile(resultFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening result file %s", resultFile)
	}
	defer f.Close()

	for i, rate := range rates {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrapf(err, "sweep %s interrupted after %d of %d points", report.SweepId, i, len(rates))
		}
		pointLogger := logger.WithFields(log.Fields{
			"point": fmt.Sprintf("%d/%d", i+1, len(rates)),
			"rate":  formatFloat(rate),
		})
		report.Points = append(report.Points, d.runPoint(ctx, pointLogger, report.SweepId, req, levels[i], rate, f))
	}

	if err := f.Close(); err != nil {
		return report, errors.Wrapf(err, "error closing result file %s", resultFile)
	}
	if d.config.Sweep.MetricsFile != "" {
		if err := d.metrics.WriteToTextfile(d.fs, d.config.Sweep.MetricsFile); err != nil {
			logging.WithStacktrace(logger, err).Warn("Failed to write sweep metrics")
		}
	}
	if n := report.NumFailed(); n > 0 {
		logger.Warnf("%d of %d sweep points failed; their result blocks in %s are incomplete", n, len(rates), resultFile)
	} else {
		logger.Infof("All %d sweep points succeeded; results in %s", len(rates), resultFile)
	}
	return report, nil
}

func (d *Driver) runPoint(ctx context.Context, logger *log.Entry, sweepId string, req Request, level, rate float64, out io.Writer) PointResult {
	opts := SimulatorOptions{
		Duration:   d.config.Simulator.Duration,
		BufferSize: d.config.Simulator.BufferSize,
	}
	args := req.SimulatorArgs(rate, opts)
	logger.Infof("Running... %s %s", d.config.Simulator.Path, strings.Join(args, " "))

	simCtx := ctx
	if d.config.Simulator.Timeout > 0 {
		var cancel context.CancelFunc
		simCtx, cancel = context.WithTimeout(ctx, d.config.Simulator.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := d.simulator.Simulate(simCtx, args, out)
	duration := time.Since(start)
	d.metrics.RecordPoint(sweepId, req.Topology, level, rate, duration, err)

	logger = logger.WithField("duration", duration.Round(time.Millisecond))
	if err != nil {
		logging.WithStacktrace(logger, err).WithField("outcome", metrics.OutcomeFailed).Warn("Sweep point failed; continuing with the next load level")
	} else {
		logger.WithField("outcome", metrics.OutcomeSucceeded).Info("Sweep point done")
	}
	return PointResult{
		LoadLevel: level,
		Rate:      rate,
		Args:      args,
		Duration:  duration,
		Err:       err,
	}
}
