package tables

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"git.unix.lgbt/diamondburned/hillchart"
	"github.com/pkg/errors"
)

// jsonTable is the JSON form of a table. Cells may be strings, numbers,
// booleans or null.
type jsonTable struct {
	Columns []hillchart.Column `json:"columns"`
	Rows    [][]interface{}    `json:"rows"`
}

// ReadJSON reads a JSON table of the form
//
//	{"columns": [{"name": "Progress", "roles": ["progress"]}], "rows": [[35]]}
//
// Roles are optional and may be assigned by header name instead.
func ReadJSON(r io.Reader) (*hillchart.Table, error) {
	var jt jsonTable

	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(&jt); err != nil {
		return nil, errors.Wrap(err, "failed to decode json table")
	}

	table := hillchart.Table{
		Columns: jt.Columns,
		Rows:    make([][]string, len(jt.Rows)),
	}

	for i, row := range jt.Rows {
		table.Rows[i] = make([]string, len(row))
		for j, v := range row {
			table.Rows[i][j] = cellString(v)
		}
	}

	return &table, nil
}

func cellString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
