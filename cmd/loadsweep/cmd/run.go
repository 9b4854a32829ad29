package cmd

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/G-Research/loadsweep/internal/common/sweeperrors"
	"github.com/G-Research/loadsweep/internal/loadsweep"
	"github.com/G-Research/loadsweep/internal/loadsweep/configuration"
	"github.com/G-Research/loadsweep/internal/loadsweep/sweep"
)

// Run the simulator once per load level.
// Exits zero if the sweep completed, even if some of the invocations failed.
func runCmd(app *loadsweep.App, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <topology> <meanServiceTimeUs> <genType> <procType> <cores>",
		Short: "Run the simulator once per load level, writing all output to the result file.",
		Long: `Run the simulator once per load level, writing all output to the result file.

The injected rate for each load level is level * cores * 1e6 / meanServiceTimeUs requests per second,
passed to the simulator in requests per microsecond, e.g.,

  loadsweep run 2 10 0 1 4

runs "schedsim --topo=2 --mu=10 --genType=0 --procType=1 --lambda=0.2" for load level 0.5.
A failed invocation is logged and the sweep continues with the next load level.

Arguments starting with "-" are read as flags unless they follow "--", e.g.,

  loadsweep run --result-file=mesh.txt -- mesh 10 poisson fifo 4

Negative service times and core counts are rejected either way.`,
		Args: cobra.ExactArgs(5),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, app, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseRequest(args)
			if err != nil {
				return err
			}

			// Create a context that is cancelled on SIGINT/SIGTERM.
			// Ensures the running simulator is killed on ctrl-C.
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			stopSignal := make(chan os.Signal, 1)
			signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(stopSignal)
			go func() {
				select {
				case <-ctx.Done():
					return
				case <-stopSignal:
					cancel()
				}
			}()

			_, err = app.Sweep(ctx, req)
			return err
		},
	}

	cmd.SetFlagErrorFunc(negativeNumberFlagError)

	d := configuration.Default()
	cmd.Flags().String("simulator", d.Simulator.Path, "Simulator executable.")
	cmd.Flags().Float64("duration", d.Simulator.Duration, "Experiment duration passed to the simulator. Omitted if zero.")
	cmd.Flags().Int("buffer-size", d.Simulator.BufferSize, "Buffer size passed to the simulator. Omitted if zero.")
	cmd.Flags().Duration("timeout", d.Simulator.Timeout, "Kill an invocation that runs for longer than this. Zero waits forever.")
	cmd.Flags().String("result-file", d.Sweep.ResultFile, "File the simulator output is written to.")
	cmd.Flags().StringSlice("load-levels", nil, "Comma-separated load levels to sweep (default 0.01,0.2,...,0.99).")
	cmd.Flags().String("metrics-file", d.Sweep.MetricsFile, "Write sweep metrics in the Prometheus text format to this file.")

	bindFlag(v, cmd.Flags(), "simulator.path", "simulator")
	bindFlag(v, cmd.Flags(), "simulator.duration", "duration")
	bindFlag(v, cmd.Flags(), "simulator.bufferSize", "buffer-size")
	bindFlag(v, cmd.Flags(), "simulator.timeout", "timeout")
	bindFlag(v, cmd.Flags(), "sweep.resultFile", "result-file")
	bindFlag(v, cmd.Flags(), "sweep.loadLevels", "load-levels")
	bindFlag(v, cmd.Flags(), "sweep.metricsFile", "metrics-file")

	return cmd
}

func parseRequest(args []string) (sweep.Request, error) {
	meanServiceTimeUs, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return sweep.Request{}, errors.WithStack(&sweeperrors.ErrInvalidArgument{
			Name:    "meanServiceTimeUs",
			Value:   args[1],
			Message: "not a number",
		})
	}
	cores, err := strconv.Atoi(args[4])
	if err != nil {
		return sweep.Request{}, errors.WithStack(&sweeperrors.ErrInvalidArgument{
			Name:    "cores",
			Value:   args[4],
			Message: "not an integer",
		})
	}
	return sweep.Request{
		Topology:          args[0],
		MeanServiceTimeUs: meanServiceTimeUs,
		GeneratorType:     args[2],
		ProcessorType:     args[3],
		Cores:             cores,
	}, nil
}

// negativeNumberFlagError turns a negative number that pflag mistook for a shorthand flag,
// e.g., the -1 of "run mesh 10 poisson fifo -1", into an ErrInvalidArgument.
func negativeNumberFlagError(_ *cobra.Command, err error) error {
	_, shorthands, found := strings.Cut(err.Error(), " in -")
	if !found {
		return err
	}
	value := "-" + shorthands
	if _, parseErr := strconv.ParseFloat(value, 64); parseErr != nil {
		return err
	}
	return errors.WithStack(&sweeperrors.ErrInvalidArgument{
		Name:    "meanServiceTimeUs/cores",
		Value:   value,
		Message: "service time and core count must be positive",
	})
}
