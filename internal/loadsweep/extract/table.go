package extract

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/G-Research/loadsweep/internal/common/sweeperrors"
)

// MetricsRow maps metric names to their values, exactly as printed by the simulator.
type MetricsRow map[string]string

// Entry is one result block: the rate it was run with and its metrics.
type Entry struct {
	Rate    string
	Metrics MetricsRow
}

// ResultsTable maps rates to metrics rows, keeping rates in the order they were first seen.
// Rates are compared as text; "0.2" and "0.20" are different rates.
type ResultsTable struct {
	metrics []string
	rates   []string
	rows    map[string]MetricsRow
}

// NewResultsTable returns an empty table whose rows are made of the given metrics.
func NewResultsTable(metrics []string) *ResultsTable {
	return &ResultsTable{
		metrics: metrics,
		rows:    make(map[string]MetricsRow),
	}
}

// Open starts a new, empty entry for rate. If rate already has an entry, that entry is emptied
// but keeps its position. Returns true in that case.
func (t *ResultsTable) Open(rate string) bool {
	_, exists := t.rows[rate]
	if !exists {
		t.rates = append(t.rates, rate)
	}
	t.rows[rate] = make(MetricsRow, len(t.metrics))
	return exists
}

func (t *ResultsTable) Set(rate, metric, value string) {
	t.rows[rate][metric] = value
}

func (t *ResultsTable) Get(rate string) (MetricsRow, bool) {
	row, ok := t.rows[rate]
	return row, ok
}

func (t *ResultsTable) Len() int {
	return len(t.rates)
}

// Metrics returns the names of the fields of a metrics row, in column order.
func (t *ResultsTable) Metrics() []string {
	return t.metrics
}

// Rates returns every rate in the order it was first seen.
func (t *ResultsTable) Rates() []string {
	return append([]string(nil), t.rates...)
}

// Entries returns every entry, in the order of Rates.
func (t *ResultsTable) Entries() []Entry {
	entries := make([]Entry, 0, len(t.rates))
	for _, rate := range t.rates {
		entries = append(entries, Entry{Rate: rate, Metrics: t.rows[rate]})
	}
	return entries
}

// Project returns, for each rate in order, the values of the given columns.
// If any entry lacks one of the columns, e.g. because the simulator printed no metrics for that rate,
// an ErrNotFound is returned and no rows at all.
func (t *ResultsTable) Project(columns []string) ([][]string, error) {
	records := make([][]string, 0, len(t.rates))
	for _, rate := range t.rates {
		row := t.rows[rate]
		record := make([]string, len(columns))
		for i, column := range columns {
			value, ok := row[column]
			if !ok {
				return nil, errors.WithStack(&sweeperrors.ErrNotFound{
					Type:    "metric",
					Value:   column,
					Message: fmt.Sprintf("no metrics row was found for rate %s", rate),
				})
			}
			record[i] = value
		}
		records = append(records, record)
	}
	return records, nil
}
