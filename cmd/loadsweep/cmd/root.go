package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/G-Research/loadsweep/internal/common"
	"github.com/G-Research/loadsweep/internal/common/config"
	"github.com/G-Research/loadsweep/internal/loadsweep"
	"github.com/G-Research/loadsweep/internal/loadsweep/configuration"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	return rootCmd(loadsweep.New())
}

func rootCmd(app *loadsweep.App) *cobra.Command {
	v := viper.New()
	configuration.SetDefaults(v)

	cmd := &cobra.Command{
		Use:   "loadsweep",
		Short: "loadsweep runs a queueing simulator across a range of offered loads and summarises the results.",
		Long: `loadsweep runs a queueing simulator across a range of offered loads and summarises the results.

"loadsweep run" invokes the simulator once per load level and collects its output in a result file.
"loadsweep csv" extracts the selected percentiles for every rate in that file into a CSV.

Persistent config can be saved in a config file so it doesn't have to be specified every command.

Example structure:
simulator:
  path: /opt/schedsim/bin/schedsim
  timeout: 10m
sweep:
  loadLevels: [0.1, 0.5, 0.9]
extract:
  columns: [50th, 99th]

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.loadsweep.yaml is used.
Any key can also be set with an environment variable, e.g., LOADSWEEP_SIMULATOR_PATH.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Config file (default is $HOME/.loadsweep.yaml).")
	cmd.PersistentFlags().String("log-format", "", "Log format: text or json. Defaults to plain messages.")
	cmd.PersistentFlags().String("log-level", "", "Log level, e.g., debug or warn. Defaults to info.")

	cmd.AddCommand(
		versionCmd(app),
		runCmd(app, v),
		csvCmd(app, v),
	)

	return cmd
}

func initParams(cmd *cobra.Command, app *loadsweep.App, v *viper.Viper) error {
	logFormat, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return err
	}
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return err
	}
	if err := common.ConfigureLogging(logFormat, logLevel); err != nil {
		return err
	}

	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	var c configuration.LoadSweepConfiguration
	if err := common.LoadConfig(v, cfgFile, &c); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		config.LogValidationErrors(err)
		return err
	}
	app.Params.Config = c
	return nil
}

// bindFlag makes the named flag override key.
func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, name string) {
	if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(err)
	}
}
