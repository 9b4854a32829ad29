package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/G-Research/loadsweep/internal/common/sweeperrors"
)

// Extractor rebuilds result blocks from the rows of a simulator report, one row at a time.
//
// A block is opened by a row whose third field contains RateLabel. The metrics of the block are the
// first row following a row whose first field is exactly HeaderLabel. A block without such a header
// stays empty.
type Extractor struct {
	metrics []string
	state   State
	rate    string
	table   *ResultsTable
}

// NewExtractor returns an extractor that names the fields of each metrics row after metrics.
func NewExtractor(metrics []string) *Extractor {
	return &Extractor{
		metrics: metrics,
		state:   SeekRate,
		table:   NewResultsTable(metrics),
	}
}

func (e *Extractor) State() State {
	return e.state
}

func (e *Extractor) Table() *ResultsTable {
	return e.table
}

// Feed processes the tab-separated fields of row number line.
func (e *Extractor) Feed(line int, fields []string) error {
	rate, isMarker, err := parseRateMarker(line, fields)
	if err != nil {
		return err
	}
	if isMarker {
		if e.table.Open(rate) {
			log.WithField("rate", rate).Warnf("Rate seen again at row %d; discarding earlier metrics", line)
		}
		e.rate = rate
		e.state = SeekHeader
	} else if e.state == ConsumeMetrics {
		if err := e.consume(line, fields); err != nil {
			return err
		}
	}
	e.state = e.next(fields)
	return nil
}

func (e *Extractor) next(fields []string) State {
	switch {
	case len(fields) > 0 && fields[0] == HeaderLabel:
		return ConsumeMetrics
	case e.table.Len() > 0:
		return SeekHeader
	default:
		return SeekRate
	}
}

func (e *Extractor) consume(line int, fields []string) error {
	if e.table.Len() == 0 {
		return errors.WithStack(&sweeperrors.ErrMalformedReport{
			Line:    line,
			Message: fmt.Sprintf("metrics row found before any %s marker", RateLabel),
		})
	}
	if len(fields) < len(e.metrics) {
		return errors.WithStack(&sweeperrors.ErrMalformedReport{
			Line:    line,
			Message: fmt.Sprintf("expected %d metrics for rate %s but got %d fields", len(e.metrics), e.rate, len(fields)),
		})
	}
	if row, _ := e.table.Get(e.rate); len(row) > 0 {
		log.WithField("rate", e.rate).Warnf("Second metrics row at row %d replaces the first", line)
	}
	for i, metric := range e.metrics {
		e.table.Set(e.rate, metric, fields[i])
	}
	return nil
}

// parseRateMarker reports whether fields open a result block and, if so, the rate they carry:
// the text after the first colon of the third field.
func parseRateMarker(line int, fields []string) (string, bool, error) {
	if len(fields) <= rateField || !strings.Contains(fields[rateField], RateLabel) {
		return "", false, nil
	}
	_, rate, found := strings.Cut(fields[rateField], ":")
	if !found {
		return "", false, errors.WithStack(&sweeperrors.ErrMalformedReport{
			Line:    line,
			Message: fmt.Sprintf("%q has no rate value", fields[rateField]),
		})
	}
	return rate, true, nil
}

// Extract reads a simulator report and returns its result blocks.
func Extract(r io.Reader, metrics []string) (*ResultsTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	e := NewExtractor(metrics)
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "error reading simulator report")
		}
		line, _ := reader.FieldPos(0)
		if err := e.Feed(line, fields); err != nil {
			return nil, err
		}
	}
	return e.Table(), nil
}
