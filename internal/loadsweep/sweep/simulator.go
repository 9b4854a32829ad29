package sweep

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Simulator runs one simulation with the given arguments, writing its report to out.
// Implementations must not return before the simulation has finished writing to out.
type Simulator interface {
	Simulate(ctx context.Context, args []string, out io.Writer) error
}

// ExecSimulator runs the simulator as a child process.
type ExecSimulator struct {
	// Path to the simulator executable.
	Path string
	// Receives the simulator's standard error. Defaults to os.Stderr.
	Stderr io.Writer
}

func NewExecSimulator(path string) *ExecSimulator {
	return &ExecSimulator{
		Path:   path,
		Stderr: os.Stderr,
	}
}

func (s *ExecSimulator) Simulate(ctx context.Context, args []string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, s.Path, args...)
	cmd.Stdout = out
	cmd.Stderr = s.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "error running %s %s", s.Path, strings.Join(args, " "))
	}
	return nil
}

func (s *ExecSimulator) String() string {
	return s.Path
}
