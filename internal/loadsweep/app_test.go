package loadsweep

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/G-Research/loadsweep/internal/common/sweeperrors"
	"github.com/G-Research/loadsweep/internal/loadsweep/configuration"
	"github.com/G-Research/loadsweep/internal/loadsweep/sweep"
)

// cannedSimulator prints a report whose percentiles are derived from the invocation number.
// Invocations listed in truncated stop after the rate marker and fail.
type cannedSimulator struct {
	calls     int
	truncated map[int]bool
}

func (s *cannedSimulator) Simulate(_ context.Context, args []string, out io.Writer) error {
	call := s.calls
	s.calls++
	var lambda string
	for _, arg := range args {
		if strings.HasPrefix(arg, "--lambda=") {
			lambda = strings.TrimPrefix(arg, "--lambda=")
		}
	}
	fmt.Fprintf(out, "Selected topology: 0\nCores:4\tservice_rate:10\tinterarrival_rate:%s\n", lambda)
	if s.truncated[call] {
		return errors.New("exit status 1")
	}
	fmt.Fprintf(out, "Count\tStolen\tAVG\tSTDDev\t50th\t90th\t95th\t99th\tReqs/time_unit\n")
	fmt.Fprintf(out, "100\t0\t5.0\t1.2\t%d.0\t9.0\t9.5\t%d.9\t50000\n", call, call)
	return nil
}

func testApp(sim sweep.Simulator) (*App, *bytes.Buffer) {
	out := new(bytes.Buffer)
	app := New()
	app.Out = out
	app.Fs = afero.NewMemMapFs()
	app.Simulator = sim
	return app, out
}

func testRequest() sweep.Request {
	return sweep.Request{
		Topology:          "mesh",
		MeanServiceTimeUs: 10,
		GeneratorType:     "poisson",
		ProcessorType:     "fifo",
		Cores:             4,
	}
}

func TestApp_SweepThenCsv(t *testing.T) {
	app, out := testApp(&cannedSimulator{})

	report, err := app.Sweep(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Len(t, report.Points, 11)
	assert.Zero(t, report.NumFailed())
	assert.Contains(t, out.String(), "Ran 11 point(s); 0 failed. Results in out.txt")

	out.Reset()
	require.NoError(t, app.Csv())

	csv, err := afero.ReadFile(app.Fs, configuration.DefaultCsvFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(csv), "\n"), "\n")
	require.Len(t, lines, 11)
	for i, line := range lines {
		assert.Equal(t, fmt.Sprintf("%d.0\t%d.9", i, i), line)
	}
	assert.Contains(t, out.String(), `Rate: "0.004"`)
	assert.Contains(t, out.String(), `Rate: "0.396"`)
	assert.Contains(t, out.String(), "11 rate(s) written to out.csv")
}

func TestApp_CsvYamlDumpAndColumns(t *testing.T) {
	app, out := testApp(&cannedSimulator{})
	app.Params.Config.Sweep.LoadLevels = []float64{0.5}
	app.Params.Config.Extract.Columns = []string{"AVG", "99th", "Count"}
	app.Params.Config.Extract.DumpFormat = "yaml"

	_, err := app.Sweep(context.Background(), testRequest())
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, app.Csv())

	assert.True(t, strings.HasPrefix(out.String(), "\"0.2\":\n  Count: \"100\"\n"), out.String())
	csv, err := afero.ReadFile(app.Fs, configuration.DefaultCsvFile)
	require.NoError(t, err)
	assert.Equal(t, "5.0\t0.9\t100\n", string(csv))
}

func TestApp_FailedPointBreaksCsv(t *testing.T) {
	app, _ := testApp(&cannedSimulator{truncated: map[int]bool{3: true}})
	require.NoError(t, afero.WriteFile(app.Fs, configuration.DefaultCsvFile, []byte("1.0\t2.0\n"), 0o644))

	report, err := app.Sweep(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, report.NumFailed())

	err = app.Csv()
	var notFound *sweeperrors.ErrNotFound
	require.True(t, errors.As(err, &notFound), "%v", err)
	assert.Equal(t, "50th", notFound.Value)

	exists, err := afero.Exists(app.Fs, configuration.DefaultCsvFile)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApp_MalformedReportRemovesStaleCsv(t *testing.T) {
	app, _ := testApp(&cannedSimulator{})
	require.NoError(t, afero.WriteFile(app.Fs, configuration.DefaultResultFile, []byte("Count\tStolen\n100\t0\t5.0\n"), 0o644))
	require.NoError(t, afero.WriteFile(app.Fs, configuration.DefaultCsvFile, []byte("1.0\t2.0\n"), 0o644))

	err := app.Csv()
	var malformed *sweeperrors.ErrMalformedReport
	require.True(t, errors.As(err, &malformed), "%v", err)

	exists, err := afero.Exists(app.Fs, configuration.DefaultCsvFile)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApp_CsvMissingResultFile(t *testing.T) {
	app, _ := testApp(&cannedSimulator{})
	assert.Error(t, app.Csv())
}

func TestApp_SweepInvalidRequest(t *testing.T) {
	sim := &cannedSimulator{}
	app, out := testApp(sim)
	req := testRequest()
	req.Cores = 0

	report, err := app.Sweep(context.Background(), req)
	var invalidArgument *sweeperrors.ErrInvalidArgument
	assert.True(t, errors.As(err, &invalidArgument))
	assert.Nil(t, report)
	assert.Zero(t, sim.calls)
	assert.Empty(t, out.String())
}

func TestApp_Version(t *testing.T) {
	app, out := testApp(nil)
	require.NoError(t, app.Version())
	assert.Contains(t, out.String(), "Version:")
	assert.Contains(t, out.String(), "Go version:")
}
