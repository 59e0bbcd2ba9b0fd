// Package svg draws hill chart scenes as SVG, writing elements straight into a
// string builder.
package svg

import (
	"html"
	"io"
	"strconv"
	"strings"

	"git.unix.lgbt/diamondburned/hillchart"
	"github.com/pkg/errors"
	"github.com/tdewolff/minify/v2"
	svgmin "github.com/tdewolff/minify/v2/svg"
)

// MediaType is the media type of rendered documents.
const MediaType = "image/svg+xml"

var minifier = minify.New()

func init() {
	minifier.AddFunc(MediaType, svgmin.Minify)
}

// Render renders the scene as a standalone SVG element.
func Render(scene hillchart.Scene) string {
	var b strings.Builder
	// The curve dominates: about 30 bytes per point.
	b.Grow(64 * 1024)

	Draw(&b, scene)
	return b.String()
}

// RenderMinified renders the scene and minifies the output.
func RenderMinified(scene hillchart.Scene) (string, error) {
	s, err := minifier.String(MediaType, Render(scene))
	if err != nil {
		return "", errors.Wrap(err, "failed to minify svg")
	}
	return s, nil
}

// Write writes the scene as an SVG document into w. If minified is true, then
// the document is minified first.
func Write(w io.Writer, scene hillchart.Scene, minified bool) error {
	var doc string

	if minified {
		s, err := RenderMinified(scene)
		if err != nil {
			return err
		}
		doc = s
	} else {
		doc = Render(scene)
	}

	if _, err := io.WriteString(w, doc); err != nil {
		return errors.Wrap(err, "failed to write svg")
	}

	return nil
}

// Draw draws the scene into the builder. Elements are drawn in scene order, so
// later elements are painted over earlier ones.
func Draw(b *strings.Builder, scene hillchart.Scene) {
	b.WriteString(`<svg class="HillChart" xmlns="http://www.w3.org/2000/svg" width="`)
	b.WriteString(num(scene.Viewport.Width))
	b.WriteString(`" height="`)
	b.WriteString(num(scene.Viewport.Height))
	b.WriteString(`">`)

	for _, el := range scene.Elements {
		switch el.Kind {
		case hillchart.ElementCurve:
			if el.Curve != nil {
				drawCurve(b, el.Curve)
			}
		case hillchart.ElementLabel:
			if el.Label != nil {
				drawLabel(b, el.Label)
			}
		case hillchart.ElementMidline:
			if el.Line != nil {
				drawLine(b, "middle", el.Line)
			}
		case hillchart.ElementMarker:
			if el.Marker != nil {
				drawMarker(b, el.Marker)
			}
		}
	}

	b.WriteString(`</svg>`)
}

func drawCurve(b *strings.Builder, c *hillchart.Curve) {
	b.WriteString(`<path class="line" fill="none" stroke="`)
	b.WriteString(attr(c.Stroke))
	b.WriteString(`" stroke-width="`)
	b.WriteString(num(c.StrokeWidth))
	b.WriteString(`" d="`)
	pathD(b, c.Points)
	b.WriteString(`"/>`)
}

func pathD(b *strings.Builder, points []hillchart.Point) {
	for i, pt := range points {
		// Move to the first point, then draw a Line to every other.
		var cmd = 'L'
		if i == 0 {
			cmd = 'M'
		}

		// Code unwrapped from "%c%.5f %.5f ".
		b.WriteRune(cmd)
		b.WriteString(strconv.FormatFloat(pt.X, 'f', 5, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(pt.Y, 'f', 5, 64))
		if i < len(points)-1 {
			b.WriteByte(' ')
		}
	}
}

func drawLabel(b *strings.Builder, l *hillchart.Label) {
	b.WriteString(`<text class="text" style="font-family: `)
	b.WriteString(attr(l.FontFamily))
	b.WriteString(`; font-size: `)
	b.WriteString(num(l.FontSize))
	b.WriteString(`px;" fill="`)
	b.WriteString(attr(l.Fill))
	b.WriteString(`" x="`)
	b.WriteString(num(l.X))
	b.WriteString(`" y="`)
	b.WriteString(num(l.Y))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(l.Text))
	b.WriteString(`</text>`)
}

func drawLine(b *strings.Builder, class string, l *hillchart.Line) {
	b.WriteString(`<line class="`)
	b.WriteString(class)
	b.WriteString(`" x1="`)
	b.WriteString(num(l.X1))
	b.WriteString(`" y1="`)
	b.WriteString(num(l.Y1))
	b.WriteString(`" x2="`)
	b.WriteString(num(l.X2))
	b.WriteString(`" y2="`)
	b.WriteString(num(l.Y2))
	b.WriteString(`" stroke="`)
	b.WriteString(attr(l.Stroke))
	b.WriteString(`" stroke-width="`)
	b.WriteString(num(l.StrokeWidth))
	if l.DashArray > 0 {
		b.WriteString(`" stroke-dasharray="`)
		b.WriteString(num(l.DashArray))
	}
	b.WriteString(`"/>`)
}

func drawMarker(b *strings.Builder, m *hillchart.Marker) {
	b.WriteString(`<g class="group" transform="translate(`)
	b.WriteString(num(m.X))
	b.WriteString(`, `)
	b.WriteString(num(m.Y))
	b.WriteString(`)"`)
	if m.Identity != "" {
		b.WriteString(` data-identity="`)
		b.WriteString(attr(string(m.Identity)))
		b.WriteString(`"`)
	}
	b.WriteString(`><circle fill="`)
	b.WriteString(attr(m.Fill))
	b.WriteString(`" stroke="`)
	b.WriteString(attr(m.Stroke))
	b.WriteString(`" stroke-width="`)
	b.WriteString(num(m.StrokeWidth))
	b.WriteString(`" cx="0" cy="0" r="`)
	b.WriteString(num(m.Radius))
	b.WriteString(`" fill-opacity="`)
	b.WriteString(num(m.Opacity))
	b.WriteString(`"><title>`)
	b.WriteString(html.EscapeString(m.Title))
	b.WriteString(`</title></circle></g>`)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func attr(s string) string {
	return html.EscapeString(s)
}
