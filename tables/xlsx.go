package tables

import (
	"io"

	"git.unix.lgbt/diamondburned/hillchart"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a table from a workbook sheet. If sheet is empty, then the
// first sheet is read.
func ReadXLSX(r io.Reader, sheet string) (*hillchart.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return &hillchart.Table{}, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheet)
	}

	return headerTable(rows), nil
}
