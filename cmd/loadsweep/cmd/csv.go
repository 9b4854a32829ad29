package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/G-Research/loadsweep/internal/loadsweep"
	"github.com/G-Research/loadsweep/internal/loadsweep/configuration"
)

// Extract percentiles from the result file of a sweep.
func csvCmd(app *loadsweep.App, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Extract the selected metrics for every rate in the result file into a tab-separated CSV.",
		Long: `Extract the selected metrics for every rate in the result file into a tab-separated CSV.

The parsed results are printed before the CSV is written.
No CSV is written if the metrics of any rate are missing, e.g., because the simulator failed at that rate.
In that case, and if the result file is malformed, a CSV file left over from an earlier run is removed.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, app, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Csv()
		},
	}

	d := configuration.Default()
	cmd.Flags().String("result-file", d.Extract.ResultFile, "Simulator output to read.")
	cmd.Flags().String("csv-file", d.Extract.CsvFile, "CSV file to write.")
	cmd.Flags().StringSlice("columns", d.Extract.Columns, "Metrics to write, in column order.")
	cmd.Flags().String("dump-format", d.Extract.DumpFormat, "How the parsed results are printed: litter or yaml.")

	bindFlag(v, cmd.Flags(), "extract.resultFile", "result-file")
	bindFlag(v, cmd.Flags(), "extract.csvFile", "csv-file")
	bindFlag(v, cmd.Flags(), "extract.columns", "columns")
	bindFlag(v, cmd.Flags(), "extract.dumpFormat", "dump-format")

	return cmd
}
