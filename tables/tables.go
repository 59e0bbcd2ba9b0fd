// Package tables reads hill chart input tables from CSV, JSON and XLSX
// sources. The first row of CSV and XLSX sources is the header row.
package tables

import (
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"git.unix.lgbt/diamondburned/hillchart"
	"github.com/pkg/errors"
)

// Format is the encoding of a table source.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned when a table source has an unknown format.
var ErrUnknownFormat = errors.New("unknown table format")

// Options is the options for reading a table.
type Options struct {
	// Roles maps roles to header names. If nil, then columns are matched by
	// their role names. JSON tables keep the roles they declare.
	Roles hillchart.RoleMap
	// Sheet is the XLSX sheet to read. The first sheet is read by default.
	Sheet string
}

var contentTypes = map[string]Format{
	"text/csv":         FormatCSV,
	"application/csv":  FormatCSV,
	"application/json": FormatJSON,

	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FormatXLSX,
}

// FormatFromContentType returns the table format of the given MIME content
// type.
func FormatFromContentType(contentType string) (Format, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errors.Wrapf(ErrUnknownFormat, "content type %q", contentType)
	}

	f, ok := contentTypes[mediaType]
	if !ok {
		return "", errors.Wrapf(ErrUnknownFormat, "content type %q", mediaType)
	}

	return f, nil
}

// FormatFromPath returns the table format of the given file name.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "extension %q", ext)
	}
}

// Read reads a table in the given format and assigns its roles.
func Read(r io.Reader, format Format, opts Options) (*hillchart.Table, error) {
	var (
		table *hillchart.Table
		err   error
	)

	switch format {
	case FormatCSV:
		table, err = ReadCSV(r)
	case FormatJSON:
		table, err = ReadJSON(r)
	case FormatXLSX:
		table, err = ReadXLSX(r, opts.Sheet)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "format %q", format)
	}

	if err != nil {
		return nil, err
	}

	table.AssignRoles(opts.Roles)
	return table, nil
}

// ReadFile reads the table at the given path, guessing the format from its
// extension.
func ReadFile(path string, opts Options) (*hillchart.Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open table")
	}
	defer f.Close()

	return Read(f, format, opts)
}

// headerTable creates a table from rows whose first row is the header.
func headerTable(rows [][]string) *hillchart.Table {
	if len(rows) == 0 {
		return &hillchart.Table{}
	}

	table := hillchart.Table{
		Columns: make([]hillchart.Column, len(rows[0])),
		Rows:    rows[1:],
	}

	for i, name := range rows[0] {
		table.Columns[i] = hillchart.Column{Name: strings.TrimSpace(name)}
	}

	return &table
}
