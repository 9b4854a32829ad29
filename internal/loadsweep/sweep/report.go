package sweep

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// PointResult is the outcome of one simulator invocation.
type PointResult struct {
	LoadLevel float64
	Rate      float64
	Args      []string
	Duration  time.Duration
	// Err is nil if the simulator exited successfully.
	Err error
}

func (p PointResult) Succeeded() bool {
	return p.Err == nil
}

// Report summarises a sweep. Points are in invocation order.
type Report struct {
	SweepId    string
	ResultFile string
	Request    Request
	Points     []PointResult
}

func (r *Report) NumFailed() int {
	n := 0
	for _, p := range r.Points {
		if !p.Succeeded() {
			n++
		}
	}
	return n
}

// Failures returns a multierror with one entry per failed point, or nil if every point succeeded.
func (r *Report) Failures() error {
	var result *multierror.Error
	for _, p := range r.Points {
		if p.Succeeded() {
			continue
		}
		result = multierror.Append(result, errors.WithMessagef(p.Err, "load level %s (rate %s)", formatFloat(p.LoadLevel), formatFloat(p.Rate)))
	}
	return result.ErrorOrNil()
}

// Print writes a per-point summary table to out.
func (r *Report) Print(out io.Writer) {
	w := tabwriter.NewWriter(out, 1, 1, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "\n======= SWEEP %s =======\n", r.SweepId)
	_, _ = fmt.Fprintf(w, "LOAD LEVEL\tRATE (req/us)\tDURATION\tOUTCOME\n")
	for _, p := range r.Points {
		outcome := "succeeded"
		if !p.Succeeded() {
			outcome = "failed: " + p.Err.Error()
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", formatFloat(p.LoadLevel), formatFloat(p.Rate), p.Duration.Round(time.Millisecond), outcome)
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "Ran %d point(s); %d failed. Results in %s\n", len(r.Points), r.NumFailed(), r.ResultFile)
}
