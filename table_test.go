package hillchart

import (
	"strconv"
	"testing"
)

func newTestTable(rows ...[]string) *Table {
	t := &Table{
		Columns: []Column{
			{Name: "Project"},
			{Name: "Progress"},
			{Name: "Colour"},
			{Name: "Size"},
		},
		Rows: rows,
	}
	t.AssignRoles(nil)
	return t
}

func TestAssignRoles(t *testing.T) {
	table := &Table{
		Columns: []Column{
			{Name: " Done "},
			{Name: "name"},
			{Name: "progress"},
		},
	}

	table.AssignRoles(RoleMap{
		RoleProgress: "done",
		RoleProject:  "Name",
	})

	if ix := table.RoleIndex(RoleProgress); ix != 0 {
		t.Errorf("expected progress at 0, got %d", ix)
	}
	if ix := table.RoleIndex(RoleProject); ix != 1 {
		t.Errorf("expected project at 1, got %d", ix)
	}
	if ix := table.RoleIndex(RoleColour); ix != -1 {
		t.Errorf("expected no colour column, got %d", ix)
	}

	// Assigning twice does not duplicate roles.
	table.AssignRoles(RoleMap{RoleProgress: "done"})
	if n := len(table.Columns[0].Roles); n != 1 {
		t.Errorf("expected 1 role, got %d", n)
	}
}

func TestRoleIndexLastWins(t *testing.T) {
	table := &Table{
		Columns: []Column{
			{Name: "a", Roles: []Role{RoleProgress}},
			{Name: "b", Roles: []Role{RoleProgress, RoleProject}},
		},
	}

	if ix := table.RoleIndex(RoleProgress); ix != 1 {
		t.Errorf("expected last progress column 1, got %d", ix)
	}
}

func TestTransform(t *testing.T) {
	table := newTestTable(
		[]string{"A", "0.35", "", ""},
		[]string{"B", "35", "#ff0000", "12"},
		[]string{"C", "not a number", "", ""},
		[]string{"D", "150"},
		[]string{"E"},
		[]string{"F", "0"},
	)

	ids := func(row int) Identity { return Identity("row-" + strconv.Itoa(row)) }
	vm := Transform(table, Settings{}, ids)

	type expect struct {
		project  string
		progress float64
		colour   string
		size     string
		identity Identity
	}

	expects := []expect{
		{"A", 35, "", "", "row-0"},
		{"B", 35, "#ff0000", "12", "row-1"},
		{"D", 100, "", "", "row-3"},
		{"F", 0, "", "", "row-5"},
	}

	if len(vm.DataPoints) != len(expects) {
		t.Fatalf("expected %d points, got %d: %+v", len(expects), len(vm.DataPoints), vm.DataPoints)
	}

	for i, pt := range vm.DataPoints {
		e := expects[i]
		if pt.Project != e.project || !approxEqual(pt.Progress, e.progress) ||
			pt.Colour != e.colour || pt.Size != e.size || pt.Identity != e.identity {
			t.Errorf("point %d: expected %+v, got %+v", i, e, pt)
		}
	}

	if len(vm.Skipped) != 2 || vm.Skipped[0] != 2 || vm.Skipped[1] != 4 {
		t.Errorf("expected rows 2 and 4 skipped, got %v", vm.Skipped)
	}

	if vm.Settings.Hill.Colour != DefaultHillColour || vm.Settings.DataPoint.DefaultSize != DefaultPointSize {
		t.Errorf("expected resolved settings, got %+v", vm.Settings)
	}
}

func TestTransformMissingRoles(t *testing.T) {
	type test struct {
		name  string
		table *Table
	}

	var tests = []test{
		{"nil", nil},
		{"empty", &Table{}},
		{"no_progress", &Table{
			Columns: []Column{{Name: "project", Roles: []Role{RoleProject}}},
			Rows:    [][]string{{"A"}},
		}},
		{"no_project", &Table{
			Columns: []Column{{Name: "progress", Roles: []Role{RoleProgress}}},
			Rows:    [][]string{{"35"}},
		}},
		{"unmapped", &Table{
			Columns: []Column{{Name: "progress"}, {Name: "project"}},
			Rows:    [][]string{{"35", "A"}},
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vm := Transform(test.table, DefaultSettings(), nil)
			if len(vm.DataPoints) != 0 {
				t.Errorf("expected no points, got %d", len(vm.DataPoints))
			}
			if vm.Settings != DefaultSettings() {
				t.Errorf("expected default settings, got %+v", vm.Settings)
			}
		})
	}
}

func TestTransformNoIdentity(t *testing.T) {
	vm := Transform(newTestTable([]string{"A", "50"}), DefaultSettings(), nil)
	if len(vm.DataPoints) != 1 || vm.DataPoints[0].Identity != "" {
		t.Fatalf("unexpected points %+v", vm.DataPoints)
	}
}

func TestSettingsResolve(t *testing.T) {
	var partial Settings
	partial.Hill.Colour = "#111111"
	partial.Hill.AxisLabelUpper = true
	partial.DataPoint.DefaultSize = -1

	got := partial.Resolve()

	expect := Settings{
		Hill: HillSettings{
			Colour:           "#111111",
			FontSize:         DefaultFontSize,
			EnableMiddleLine: false,
			AxisLabelUpper:   true,
		},
		DataPoint: DataPointSettings{
			DefaultSize:   DefaultPointSize,
			DefaultColour: DefaultPointColour,
		},
	}

	if got != expect {
		t.Errorf("expected %+v, got %+v", expect, got)
	}

	if d := DefaultSettings(); d.Resolve() != d {
		t.Error("resolving the defaults changed them")
	}
}
