package hillchart

import "strings"

// Role is the semantic meaning of a table column.
type Role string

const (
	RoleProgress Role = "progress"
	RoleProject  Role = "project"
	RoleColour   Role = "colour"
	RoleSize     Role = "size"
)

// Roles lists every known role.
var Roles = []Role{RoleProgress, RoleProject, RoleColour, RoleSize}

// RoleMap maps a role to the header name of the column carrying it.
type RoleMap map[Role]string

// DefaultRoleMap maps each role to a column named after it.
func DefaultRoleMap() RoleMap {
	m := make(RoleMap, len(Roles))
	for _, role := range Roles {
		m[role] = string(role)
	}
	return m
}

// Column is a single column of a Table.
type Column struct {
	Name  string `json:"name"`
	Roles []Role `json:"roles,omitempty"`
}

// HasRole returns true if the column carries the given role.
func (c Column) HasRole(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Table is a column-oriented input table. Every cell is kept as text.
type Table struct {
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// AssignRoles tags every column whose name matches a role's column name,
// ignoring case and surrounding spaces. A nil or empty map falls back to
// DefaultRoleMap. Existing roles are kept.
func (t *Table) AssignRoles(roles RoleMap) {
	if len(roles) == 0 {
		roles = DefaultRoleMap()
	}

	for i := range t.Columns {
		name := strings.TrimSpace(t.Columns[i].Name)

		for _, role := range Roles {
			want, ok := roles[role]
			if !ok || want == "" {
				continue
			}
			if strings.EqualFold(name, strings.TrimSpace(want)) && !t.Columns[i].HasRole(role) {
				t.Columns[i].Roles = append(t.Columns[i].Roles, role)
			}
		}
	}
}

// RoleIndex returns the index of the last column carrying the given role, or
// -1 if none does.
func (t *Table) RoleIndex(role Role) int {
	ix := -1
	for i, col := range t.Columns {
		if col.HasRole(role) {
			ix = i
		}
	}
	return ix
}

// cell returns the cell at the given row and column, or an empty string if the
// row is too short or the column is -1.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Transform converts the table into a view model. A nil table, or one without
// both a progress and a project column, yields a view model with no points.
// Rows without a usable progress value are skipped and listed in
// ViewModel.Skipped.
func Transform(table *Table, settings Settings, identity IdentityFunc) ViewModel {
	vm := ViewModel{
		Settings: settings.Resolve(),
	}

	if table == nil {
		return vm
	}

	progressIx := table.RoleIndex(RoleProgress)
	projectIx := table.RoleIndex(RoleProject)
	if progressIx < 0 || projectIx < 0 {
		return vm
	}

	colourIx := table.RoleIndex(RoleColour)
	sizeIx := table.RoleIndex(RoleSize)

	vm.DataPoints = make([]DataPoint, 0, len(table.Rows))

	for i, row := range table.Rows {
		progress := Normalize(cell(row, progressIx))
		if !IsUsable(progress) {
			vm.Skipped = append(vm.Skipped, i)
			continue
		}

		pt := DataPoint{
			Progress: progress,
			Project:  cell(row, projectIx),
			Colour:   strings.TrimSpace(cell(row, colourIx)),
			Size:     strings.TrimSpace(cell(row, sizeIx)),
		}
		if identity != nil {
			pt.Identity = identity(i)
		}

		vm.DataPoints = append(vm.DataPoints, pt)
	}

	return vm
}
