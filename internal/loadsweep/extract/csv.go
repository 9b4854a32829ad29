package extract

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
)

// WriteCSV writes records to w as tab-separated rows.
func WriteCSV(w io.Writer, records [][]string) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'
	if err := writer.WriteAll(records); err != nil {
		return errors.Wrap(err, "error writing csv")
	}
	return nil
}
