// Package render runs a full chart update and encodes the resulting scene.
package render

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"git.unix.lgbt/diamondburned/hillchart"
	"git.unix.lgbt/diamondburned/hillchart/internal/hilllog"
	"git.unix.lgbt/diamondburned/hillchart/internal/metrics"
	"git.unix.lgbt/diamondburned/hillchart/svg"
	"github.com/pkg/errors"
)

// Format is an output encoding of a scene.
type Format string

const (
	SVG  Format = "svg"
	JSON Format = "json"
	CBOR Format = "cbor"
)

// ErrUnknownFormat is returned for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a format name. The empty string is SVG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return SVG, nil
	case SVG, JSON, CBOR:
		return f, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// ContentType returns the media type of the format.
func (f Format) ContentType() string {
	switch f {
	case JSON:
		return "application/json; charset=UTF-8"
	case CBOR:
		return "application/cbor"
	default:
		return svg.MediaType
	}
}

// Request is the input of a single update.
type Request struct {
	Table    *hillchart.Table
	Viewport hillchart.Viewport
	Settings hillchart.Settings
	// Identity is optional.
	Identity hillchart.IdentityFunc
	// Selected identities are highlighted if non-empty.
	Selected []hillchart.Identity
}

// Result is the output of a single update.
type Result struct {
	Scene hillchart.Scene
	// Points is the number of plotted markers.
	Points int
	// Skipped contains the indices of rows dropped for unusable progress.
	Skipped []int
}

// Renderer runs updates. The zero value logs and measures nothing.
type Renderer struct {
	Logger  *hilllog.Logger
	Metrics *metrics.Manager
	Minify  bool
}

// Scene recomputes the scene from scratch.
func (r Renderer) Scene(req Request) Result {
	vm := hillchart.Transform(req.Table, req.Settings, req.Identity)
	scene := hillchart.Layout(req.Viewport, vm.DataPoints, vm.Settings)

	if len(req.Selected) > 0 {
		scene = hillchart.Highlight(scene, req.Selected...)
	}

	if len(vm.Skipped) > 0 {
		if r.Logger != nil {
			r.Logger.Warningf("skipped %d rows with unusable progress: %v", len(vm.Skipped), vm.Skipped)
		}
		if r.Metrics != nil {
			r.Metrics.ObserveSkipped(len(vm.Skipped))
		}
	}

	return Result{
		Scene:   scene,
		Points:  len(vm.DataPoints),
		Skipped: vm.Skipped,
	}
}

// Write recomputes the scene and writes it to w in the given format.
func (r Renderer) Write(w io.Writer, req Request, format Format) (Result, error) {
	start := time.Now()
	res := r.Scene(req)

	if err := r.Encode(w, res.Scene, format); err != nil {
		if r.Metrics != nil {
			r.Metrics.ObserveError(string(format))
		}
		return res, err
	}

	if r.Metrics != nil {
		r.Metrics.ObserveRender(string(format), res.Points, time.Since(start))
	}

	if r.Logger != nil {
		r.Logger.Debugf("rendered %d points as %s in %v", res.Points, format, time.Since(start))
	}

	return res, nil
}

// Encode writes an already computed scene to w.
func (r Renderer) Encode(w io.Writer, scene hillchart.Scene, format Format) error {
	switch format {
	case SVG:
		return svg.Write(w, scene, r.Minify)

	case JSON:
		if err := json.NewEncoder(w).Encode(scene); err != nil {
			return errors.Wrap(err, "failed to encode JSON")
		}
		return nil

	case CBOR:
		b, err := hillchart.EncodeScene(scene)
		if err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return errors.Wrap(err, "failed to write scene")
		}
		return nil

	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}
