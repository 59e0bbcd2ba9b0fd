// Package hillchart turns tabular progress data into the geometry of a hill
// chart: a sine hill going from "figuring things out" to "making it happen",
// with one marker per work item placed on the hill by its progress.
//
// Every update is a full recomputation. A Table and a Settings value go
// through Transform into a ViewModel, and Layout turns the ViewModel into a
// Scene of draw descriptors for a viewport. Nothing is cached between
// updates.
package hillchart

// Viewport is the drawing surface size in pixels.
type Viewport struct {
	Width  float64 `json:"width"  cbor:"width"`
	Height float64 `json:"height" cbor:"height"`
}

// Identity is an opaque handle correlating a plotted point back to its source
// row. It is never interpreted by this package.
type Identity string

// IdentityFunc maps a row index of the input table to its identity handle.
type IdentityFunc func(row int) Identity

// DataPoint is one plotted work item.
type DataPoint struct {
	// Progress is within [0, 100].
	Progress float64 `json:"progress" cbor:"progress"`
	Project  string  `json:"project"  cbor:"project"`
	// Colour and Size override the data point defaults when non-empty.
	Colour   string   `json:"colour,omitempty"   cbor:"colour,omitempty"`
	Size     string   `json:"size,omitempty"     cbor:"size,omitempty"`
	Identity Identity `json:"identity,omitempty" cbor:"identity,omitempty"`
}

// ViewModel is everything a single render pass needs. It is built fresh on
// every update.
type ViewModel struct {
	DataPoints []DataPoint
	Settings   Settings
	// Skipped contains the indices of rows that had no usable progress.
	Skipped []int
}

// Visual is the surface a host drives on every redraw.
type Visual interface {
	OnConfigure(vp Viewport, data *Table, settings Settings) Scene
}

// Chart is the default Visual.
type Chart struct {
	// Identity is optional.
	Identity IdentityFunc
}

var _ Visual = Chart{}

// OnConfigure transforms the given table and lays it out for the viewport.
func (c Chart) OnConfigure(vp Viewport, data *Table, settings Settings) Scene {
	vm := Transform(data, settings, c.Identity)
	return Layout(vp, vm.DataPoints, vm.Settings)
}
