package tables

import (
	"encoding/csv"
	"io"

	"git.unix.lgbt/diamondburned/hillchart"
	"github.com/pkg/errors"
)

// ReadCSV reads a CSV table. Rows may have any number of fields.
func ReadCSV(r io.Reader) (*hillchart.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}

	return headerTable(rows), nil
}
