package svg

import (
	"bytes"
	"strings"
	"testing"

	"git.unix.lgbt/diamondburned/hillchart"
)

func testScene(settings hillchart.Settings) hillchart.Scene {
	return hillchart.Layout(hillchart.Viewport{Width: 500, Height: 300}, []hillchart.DataPoint{
		{Progress: 35, Project: "A & B", Identity: "a"},
		{Progress: 80, Project: "<C>", Colour: "#ff0000", Size: "4"},
	}, settings)
}

func TestRender(t *testing.T) {
	out := Render(testScene(hillchart.DefaultSettings()))

	if !strings.HasPrefix(out, `<svg class="HillChart" xmlns="http://www.w3.org/2000/svg" width="500" height="300">`) {
		t.Fatalf("unexpected prefix: %.120s", out)
	}
	if !strings.HasSuffix(out, "</svg>") {
		t.Fatal("unterminated svg")
	}

	var counts = []struct {
		substr string
		n      int
	}{
		{"<path ", 1},
		{"<text ", 2},
		{`<line class="middle"`, 1},
		{"<circle ", 2},
		{`stroke-dasharray="10"`, 1},
		{`data-identity="a"`, 1},
		{`<title>A &amp; B (35%)</title>`, 1},
		{`<title>&lt;C&gt; (80%)</title>`, 1},
		{`fill="#ff0000"`, 1},
		{`r="4"`, 1},
		{`r="10"`, 1},
		{"font-size: 14px;", 2},
		{">Figuring things out</text>", 1},
		{">Making it happen</text>", 1},
		{`d="M0.00000 260.00000 L0.49000`, 1},
		{`transform="translate(171.5, `, 1},
	}

	for _, c := range counts {
		if got := strings.Count(out, c.substr); got != c.n {
			t.Errorf("expected %d of %q, got %d", c.n, c.substr, got)
		}
	}

	// Markers are painted last.
	if strings.LastIndex(out, "<text ") > strings.Index(out, "<circle ") {
		t.Error("labels painted over markers")
	}
}

func TestRenderNoMidline(t *testing.T) {
	settings := hillchart.DefaultSettings()
	settings.Hill.EnableMiddleLine = false

	out := Render(testScene(settings))
	if strings.Contains(out, "<line") {
		t.Error("unexpected midline")
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := Render(testScene(hillchart.DefaultSettings()))
	b := Render(testScene(hillchart.DefaultSettings()))

	if a != b {
		t.Fatal("renders differ")
	}
}

func TestWriteMinified(t *testing.T) {
	scene := testScene(hillchart.DefaultSettings())

	var plain, minified bytes.Buffer

	if err := Write(&plain, scene, false); err != nil {
		t.Fatal("failed to write:", err)
	}
	if err := Write(&minified, scene, true); err != nil {
		t.Fatal("failed to write minified:", err)
	}

	if minified.Len() == 0 || minified.Len() >= plain.Len() {
		t.Errorf("expected minified output smaller than %d, got %d", plain.Len(), minified.Len())
	}

	if n := strings.Count(minified.String(), "<circle"); n != 2 {
		t.Errorf("expected 2 circles after minifying, got %d", n)
	}
}
