package metrics

import (
	"bytes"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/afero"
)

// Metrics records the outcome of every point of a sweep in its own registry.
// The registry is written out as a Prometheus textfile once the sweep completes,
// as there is no long-running process to scrape.
type Metrics struct {
	registry          *prometheus.Registry
	sweepPoints       *prometheus.CounterVec
	invocationSeconds *prometheus.HistogramVec
	injectedRate      *prometheus.GaugeVec
}

func New() *Metrics {
	sweepPoints := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "sweep_points_total",
			Help: "Number of simulator invocations, by outcome",
		},
		[]string{sweepIdLabel, topologyLabel, outcomeLabel},
	)
	invocationSeconds := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "simulator_invocation_seconds",
			Help:    "Wall-clock time of a single simulator invocation",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 16),
		},
		[]string{sweepIdLabel, topologyLabel},
	)
	injectedRate := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "injected_rate_per_us",
			Help: "Arrival rate passed to the simulator for each load level, in requests per microsecond",
		},
		[]string{sweepIdLabel, topologyLabel, loadLevelLabel},
	)
	registry := prometheus.NewRegistry()
	registry.MustRegister(sweepPoints, invocationSeconds, injectedRate)
	return &Metrics{
		registry:          registry,
		sweepPoints:       sweepPoints,
		invocationSeconds: invocationSeconds,
		injectedRate:      injectedRate,
	}
}

// RecordPoint records a single simulator invocation. err is the invocation error, if any.
func (m *Metrics) RecordPoint(sweepId, topology string, loadLevel, rate float64, duration time.Duration, err error) {
	outcome := OutcomeSucceeded
	if err != nil {
		outcome = OutcomeFailed
	}
	m.sweepPoints.WithLabelValues(sweepId, topology, outcome).Inc()
	m.invocationSeconds.WithLabelValues(sweepId, topology).Observe(duration.Seconds())
	m.injectedRate.WithLabelValues(sweepId, topology, strconv.FormatFloat(loadLevel, 'f', -1, 64)).Set(rate)
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteToTextfile writes all recorded metrics to path on fs in the Prometheus text format.
// The file is written under a temporary name and renamed, so a textfile collector never reads a partial file.
func (m *Metrics) WriteToTextfile(fs afero.Fs, path string) error {
	families, err := m.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "error gathering sweep metrics")
	}
	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return errors.Wrap(err, "error encoding sweep metrics")
		}
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "error writing sweep metrics to %s", path)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return errors.Wrapf(err, "error writing sweep metrics to %s", path)
	}
	return nil
}
