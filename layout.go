package hillchart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Axis labels for the two halves of the hill.
const (
	LeftAxisLabel  = "Figuring things out"
	RightAxisLabel = "Making it happen"
)

// Fixed styling of the chart. Only the colours and sizes in Settings are
// configurable.
const (
	CurveStrokeWidth   = 2
	LabelFontFamily    = "Tahoma"
	LabelFill          = "#999999"
	MidlineStroke      = "#dddddd"
	MidlineStrokeWidth = 1
	MidlineDashArray   = 10
	MarkerStroke       = "#ffffff"
	MarkerStrokeWidth  = 2
)

// Marker opacities for selected and unselected points.
const (
	SolidOpacity       = 1
	TransparentOpacity = 0.5
)

// Viewport paddings.
const (
	rightPadding  = 10
	bottomPadding = 40
	topPadding    = 10
	labelBaseline = 5
)

// Progress values the axis labels are anchored at.
const (
	leftLabelAt  = 15
	rightLabelAt = 70
	midlineAt    = 50
)

// ElementKind describes what an Element draws.
type ElementKind string

const (
	ElementCurve   ElementKind = "curve"
	ElementLabel   ElementKind = "label"
	ElementMidline ElementKind = "midline"
	ElementMarker  ElementKind = "marker"
)

// Element is a single draw descriptor. Exactly one of the pointer fields is
// set, matching Kind.
type Element struct {
	Kind   ElementKind `json:"kind"             cbor:"kind"`
	Curve  *Curve      `json:"curve,omitempty"  cbor:"curve,omitempty"`
	Label  *Label      `json:"label,omitempty"  cbor:"label,omitempty"`
	Line   *Line       `json:"line,omitempty"   cbor:"line,omitempty"`
	Marker *Marker     `json:"marker,omitempty" cbor:"marker,omitempty"`
}

// Curve is the hill polyline in pixel space.
type Curve struct {
	Points      []Point `json:"points"       cbor:"points"`
	Stroke      string  `json:"stroke"       cbor:"stroke"`
	StrokeWidth float64 `json:"stroke_width" cbor:"stroke_width"`
}

// Label is an axis label anchored at its start.
type Label struct {
	Text       string  `json:"text"        cbor:"text"`
	X          float64 `json:"x"           cbor:"x"`
	Y          float64 `json:"y"           cbor:"y"`
	FontFamily string  `json:"font_family" cbor:"font_family"`
	FontSize   float64 `json:"font_size"   cbor:"font_size"`
	Fill       string  `json:"fill"        cbor:"fill"`
}

// Line is a straight, optionally dashed line.
type Line struct {
	X1          float64 `json:"x1"                   cbor:"x1"`
	Y1          float64 `json:"y1"                   cbor:"y1"`
	X2          float64 `json:"x2"                   cbor:"x2"`
	Y2          float64 `json:"y2"                   cbor:"y2"`
	Stroke      string  `json:"stroke"               cbor:"stroke"`
	StrokeWidth float64 `json:"stroke_width"         cbor:"stroke_width"`
	DashArray   float64 `json:"dash_array,omitempty" cbor:"dash_array,omitempty"`
}

// Marker is a circle marking one data point.
type Marker struct {
	X           float64  `json:"x"                  cbor:"x"`
	Y           float64  `json:"y"                  cbor:"y"`
	Radius      float64  `json:"radius"             cbor:"radius"`
	Fill        string   `json:"fill"               cbor:"fill"`
	Stroke      string   `json:"stroke"             cbor:"stroke"`
	StrokeWidth float64  `json:"stroke_width"       cbor:"stroke_width"`
	Opacity     float64  `json:"opacity"            cbor:"opacity"`
	Title       string   `json:"title"              cbor:"title"`
	Project     string   `json:"project"            cbor:"project"`
	Progress    float64  `json:"progress"           cbor:"progress"`
	Identity    Identity `json:"identity,omitempty" cbor:"identity,omitempty"`
}

// Scene is the ordered list of draw descriptors of one layout pass. The order
// is the paint order: curve, labels, midline, then markers.
type Scene struct {
	Viewport Viewport  `json:"viewport" cbor:"viewport"`
	Elements []Element `json:"elements" cbor:"elements"`
}

// Markers returns all markers in paint order.
func (s Scene) Markers() []Marker {
	var markers []Marker
	for _, el := range s.Elements {
		if el.Kind == ElementMarker && el.Marker != nil {
			markers = append(markers, *el.Marker)
		}
	}
	return markers
}

// Curve returns the hill curve, or nil if the scene has none.
func (s Scene) Curve() *Curve {
	for _, el := range s.Elements {
		if el.Kind == ElementCurve {
			return el.Curve
		}
	}
	return nil
}

// HasMidline returns true if the scene draws the middle line.
func (s Scene) HasMidline() bool {
	for _, el := range s.Elements {
		if el.Kind == ElementMidline {
			return true
		}
	}
	return false
}

// Scales returns the horizontal and vertical scales for the viewport. Both
// map [0, 100] onto pixels; the vertical one is inverted.
func Scales(vp Viewport) (x, y Linear) {
	x = NewLinear([2]float64{0, 100}, [2]float64{0, vp.Width - rightPadding})
	y = NewLinear([2]float64{0, 100}, [2]float64{vp.Height - bottomPadding, topPadding})
	return
}

// Layout lays out the hill, its labels and the given points for the viewport.
// It never fails: a degenerate viewport gives degenerate scales and no points
// give a scene with only the hill and its labels. Progress values are assumed
// to be within [0, 100].
func Layout(vp Viewport, points []DataPoint, settings Settings) Scene {
	settings = settings.Resolve()
	xScale, yScale := Scales(vp)

	n := 3 + len(points)
	if settings.Hill.EnableMiddleLine {
		n++
	}

	scene := Scene{
		Viewport: vp,
		Elements: make([]Element, 0, n),
	}

	curve := SampleCurve(DefaultStep)
	for i, pt := range curve {
		curve[i] = ScalePoint(xScale, yScale, pt)
	}

	scene.Elements = append(scene.Elements, Element{
		Kind: ElementCurve,
		Curve: &Curve{
			Points:      curve,
			Stroke:      settings.Hill.Colour,
			StrokeWidth: CurveStrokeWidth,
		},
	})

	left, right := LeftAxisLabel, RightAxisLabel
	if settings.Hill.AxisLabelUpper {
		left = strings.ToUpper(left)
		right = strings.ToUpper(right)
	}

	scene.Elements = append(scene.Elements,
		labelElement(left, xScale.Scale(leftLabelAt), vp.Height-labelBaseline, settings),
		labelElement(right, xScale.Scale(rightLabelAt), vp.Height-labelBaseline, settings),
	)

	if settings.Hill.EnableMiddleLine {
		scene.Elements = append(scene.Elements, Element{
			Kind: ElementMidline,
			Line: &Line{
				X1:          xScale.Scale(midlineAt),
				Y1:          yScale.Scale(0),
				X2:          xScale.Scale(midlineAt),
				Y2:          yScale.Scale(100),
				Stroke:      MidlineStroke,
				StrokeWidth: MidlineStrokeWidth,
				DashArray:   MidlineDashArray,
			},
		})
	}

	for _, pt := range points {
		scene.Elements = append(scene.Elements, Element{
			Kind: ElementMarker,
			Marker: &Marker{
				X:           xScale.Scale(pt.Progress),
				Y:           yScale.Scale(HeightAt(pt.Progress)),
				Radius:      markerRadius(pt, settings),
				Fill:        markerColour(pt, settings),
				Stroke:      MarkerStroke,
				StrokeWidth: MarkerStrokeWidth,
				Opacity:     SolidOpacity,
				Title:       markerTitle(pt),
				Project:     pt.Project,
				Progress:    pt.Progress,
				Identity:    pt.Identity,
			},
		})
	}

	return scene
}

func labelElement(text string, x, y float64, settings Settings) Element {
	return Element{
		Kind: ElementLabel,
		Label: &Label{
			Text:       text,
			X:          x,
			Y:          y,
			FontFamily: LabelFontFamily,
			FontSize:   settings.Hill.FontSize,
			Fill:       LabelFill,
		},
	}
}

func markerColour(pt DataPoint, settings Settings) string {
	if pt.Colour != "" {
		return pt.Colour
	}
	return settings.DataPoint.DefaultColour
}

// markerRadius parses the point's size. Sizes that aren't positive numbers
// fall back to the default.
func markerRadius(pt DataPoint, settings Settings) float64 {
	if pt.Size != "" {
		r, err := strconv.ParseFloat(strings.TrimSpace(pt.Size), 64)
		if err == nil && r > 0 {
			return r
		}
	}
	return settings.DataPoint.DefaultSize
}

func markerTitle(pt DataPoint) string {
	return fmt.Sprintf("%s (%s%%)", pt.Project, humanize.FtoaWithDigits(pt.Progress, 1))
}

// Highlight returns a copy of the scene where markers outside the selection
// are drawn transparent. An empty selection leaves every marker solid.
func Highlight(scene Scene, selected ...Identity) Scene {
	if len(selected) == 0 {
		return scene
	}

	set := make(map[Identity]struct{}, len(selected))
	for _, id := range selected {
		set[id] = struct{}{}
	}

	out := Scene{
		Viewport: scene.Viewport,
		Elements: make([]Element, len(scene.Elements)),
	}
	copy(out.Elements, scene.Elements)

	for i, el := range out.Elements {
		if el.Kind != ElementMarker || el.Marker == nil {
			continue
		}

		marker := *el.Marker
		if _, ok := set[marker.Identity]; ok {
			marker.Opacity = SolidOpacity
		} else {
			marker.Opacity = TransparentOpacity
		}

		out.Elements[i].Marker = &marker
	}

	return out
}
