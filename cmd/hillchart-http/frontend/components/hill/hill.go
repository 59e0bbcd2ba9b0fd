// Package hill draws a hill chart scene inline with its legend.
package hill

import (
	"html/template"
	"regexp"

	"git.unix.lgbt/diamondburned/hillchart"
	"git.unix.lgbt/diamondburned/hillchart/cmd/hillchart-http/frontend"
	"git.unix.lgbt/diamondburned/hillchart/svg"
)

func init() {
	frontend.Templater.Func("drawScene", drawScene)
	frontend.Templater.Func("swatchStyle", swatchStyle)
}

// drawScene renders the scene as inline SVG. Every text and attribute in the
// SVG is escaped by the svg package.
func drawScene(scene hillchart.Scene) template.HTML {
	return template.HTML(svg.Render(scene))
}

// plainColour matches hex colours and colour keywords.
var plainColour = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+)$`)

// swatchStyle returns the legend swatch style for a marker fill. Anything that
// isn't a plain colour is dropped.
func swatchStyle(fill string) template.CSS {
	if !plainColour.MatchString(fill) {
		return ""
	}
	return template.CSS("background-color: " + fill)
}
