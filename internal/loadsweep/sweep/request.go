package sweep

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/G-Research/loadsweep/internal/common/sweeperrors"
)

// Request holds the parameters of a single sweep.
// Topology, GeneratorType and ProcessorType are passed to the simulator unchanged.
type Request struct {
	Topology          string
	MeanServiceTimeUs float64
	GeneratorType     string
	ProcessorType     string
	Cores             int
}

func (r Request) Validate() error {
	// Written as !(x > 0) so that NaN is rejected too.
	if !(r.MeanServiceTimeUs > 0) {
		return errors.WithStack(&sweeperrors.ErrInvalidArgument{
			Name:    "meanServiceTimeUs",
			Value:   r.MeanServiceTimeUs,
			Message: "mean service time must be positive",
		})
	}
	if r.Cores <= 0 {
		return errors.WithStack(&sweeperrors.ErrInvalidArgument{
			Name:    "cores",
			Value:   r.Cores,
			Message: "core count must be positive",
		})
	}
	return nil
}

// SimulatorOptions are optional simulator flags that stay fixed across a sweep.
type SimulatorOptions struct {
	Duration   float64
	BufferSize int
}

// SimulatorArgs returns the command-line arguments for the invocation at the given rate.
func (r Request) SimulatorArgs(rate float64, opts SimulatorOptions) []string {
	args := []string{
		"--topo=" + r.Topology,
		"--mu=" + formatFloat(r.MeanServiceTimeUs),
		"--genType=" + r.GeneratorType,
		"--procType=" + r.ProcessorType,
		"--lambda=" + formatFloat(rate),
	}
	if opts.Duration > 0 {
		args = append(args, "--duration="+formatFloat(opts.Duration))
	}
	if opts.BufferSize > 0 {
		args = append(args, "--buffersize="+strconv.Itoa(opts.BufferSize))
	}
	return args
}

// formatFloat renders f with the fewest digits that round-trip and never in exponent form.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
