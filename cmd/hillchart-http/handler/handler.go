package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git.unix.lgbt/diamondburned/hillchart"
	"git.unix.lgbt/diamondburned/hillchart/cmd/hillchart-http/frontend"
	"git.unix.lgbt/diamondburned/hillchart/cmd/hillchart-http/frontend/pages/errpage"
	"git.unix.lgbt/diamondburned/hillchart/cmd/hillchart-http/frontend/pages/index"
	"git.unix.lgbt/diamondburned/hillchart/internal/config"
	"git.unix.lgbt/diamondburned/hillchart/internal/hilllog"
	"git.unix.lgbt/diamondburned/hillchart/internal/metrics"
	"git.unix.lgbt/diamondburned/hillchart/internal/render"
	"git.unix.lgbt/diamondburned/hillchart/svg"
	"git.unix.lgbt/diamondburned/hillchart/tables"
	"github.com/diamondburned/tmplutil"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	svgmin "github.com/tdewolff/minify/v2/svg"
	"maze.io/x/duration"
)

var minifier = minify.New()

func init() {
	minifier.Add("text/html", html.DefaultMinifier)
	minifier.AddFunc("text/css", css.Minify)
	minifier.AddFunc(svg.MediaType, svgmin.Minify)
}

const (
	maxRefresh   = 24 * time.Hour // max 1d
	maxDimension = 10000
	maxBodySize  = 32 << 20
)

// renderSource is the identity namespace of tables posted to /render.
const renderSource = "render"

// output is a negotiated response encoding.
type output string

const (
	outputHTML output = "html"
	outputSVG  output = "svg"
	outputJSON output = "json"
	outputCBOR output = "cbor"
)

var acceptOutputs = map[string]output{
	"text/html":        outputHTML,
	svg.MediaType:      outputSVG,
	"application/json": outputJSON,
	"application/cbor": outputCBOR,
}

type handler struct {
	cfg      *config.Config
	log      *hilllog.Logger
	renderer render.Renderer
}

// New creates the HTTP handler. Metrics are served from m's registry. A nil
// log logs warnings to the standard logger.
func New(cfg *config.Config, log *hilllog.Logger, m *metrics.Manager) http.Handler {
	if log == nil {
		log = hilllog.NewDefaultLogger()
	}

	h := &handler{
		cfg: cfg,
		log: log,
		renderer: render.Renderer{
			Logger:  log,
			Metrics: m,
			Minify:  cfg.Minify,
		},
	}

	r := chi.NewRouter()
	r.Mount("/static", http.StripPrefix("/static", frontend.MountStatic()))
	r.Handle("/metrics", m.Handler())
	r.Group(func(r chi.Router) {
		r.Use(tmplutil.AlwaysFlush)
		r.Use(middleware.NoCache)
		r.Use(middleware.Compress(5))

		r.Post("/render", h.render)
		// Any path, since CGI deployments see the script path here.
		r.Get("/*", h.root)
	})

	return r
}

// jsonError is the error body of JSON and CBOR responses.
type jsonError struct {
	Error string
}

// root renders the configured data file.
func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	out := negotiate(r, outputHTML)

	req, refresh, err := h.parseRequest(r)
	if err != nil {
		h.respondError(w, out, http.StatusBadRequest, err)
		return
	}

	var source string

	if h.cfg.DataPath != "" {
		source = filepath.Base(h.cfg.DataPath)

		req.Table, err = tables.ReadFile(h.cfg.DataPath, h.cfg.TableOptions())
		if err != nil {
			h.log.Errorf("failed to read %q: %v", h.cfg.DataPath, err)
			h.respondError(w, out, http.StatusInternalServerError, err)
			return
		}
		req.Identity = tables.RowIdentities(h.cfg.DataPath)
	}

	h.respond(w, out, req, source, refresh)
}

// render renders the table posted in the request body.
func (h *handler) render(w http.ResponseWriter, r *http.Request) {
	out := negotiate(r, outputSVG)

	req, refresh, err := h.parseRequest(r)
	if err != nil {
		h.respondError(w, out, http.StatusBadRequest, err)
		return
	}

	format, err := tables.FormatFromContentType(r.Header.Get("Content-Type"))
	if err != nil {
		h.respondError(w, out, http.StatusUnsupportedMediaType, err)
		return
	}

	opts := h.cfg.TableOptions()
	if sheet := r.URL.Query().Get("sheet"); sheet != "" {
		opts.Sheet = sheet
	}

	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	defer body.Close()

	req.Table, err = tables.Read(body, format, opts)
	if err != nil {
		h.respondError(w, out, http.StatusBadRequest, err)
		return
	}
	req.Identity = tables.RowIdentities(renderSource)

	h.respond(w, out, req, "", refresh)
}

func (h *handler) respond(
	w http.ResponseWriter, out output, req render.Request, source string, refresh time.Duration) {

	switch out {
	case outputHTML:
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")

		start := time.Now()
		res := h.renderer.Scene(req)

		w := minifier.Writer("text/html", w)
		defer w.Close()

		if err := index.Render(w, source, res, refresh); err != nil {
			h.log.Errorf("failed to render index: %v", err)
			h.renderer.Metrics.ObserveError(string(out))
			return
		}

		h.renderer.Metrics.ObserveRender(string(out), res.Points, time.Since(start))

	default:
		format := render.Format(out)
		w.Header().Set("Content-Type", format.ContentType())

		if _, err := h.renderer.Write(w, req, format); err != nil {
			h.log.Errorf("failed to write %s: %v", format, err)
		}
	}
}

func (h *handler) respondError(w http.ResponseWriter, out output, code int, err error) {
	h.log.Debugf("request failed with %d: %v", code, err)

	switch out {
	case outputJSON:
		w.Header().Set("Content-Type", render.JSON.ContentType())
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(jsonError{Error: err.Error()})

	case outputCBOR:
		w.Header().Set("Content-Type", render.CBOR.ContentType())
		w.WriteHeader(code)
		cbor.NewEncoder(w).Encode(jsonError{Error: err.Error()})

	case outputSVG:
		http.Error(w, err.Error(), code)

	default:
		errpage.Respond(w, code, err)
	}
}

// negotiate picks the first known media type in the Accept header, or def if
// there is none.
func negotiate(r *http.Request, def output) output {
	for _, accept := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType := strings.TrimSpace(strings.SplitN(accept, ";", 2)[0])

		if out, ok := acceptOutputs[mediaType]; ok {
			return out
		}
	}

	return def
}

// parseRequest parses the viewport, selection and refresh interval from the
// query. The table is left for the caller.
func (h *handler) parseRequest(r *http.Request) (render.Request, time.Duration, error) {
	req := render.Request{
		Viewport: h.cfg.Viewport(),
		Settings: h.cfg.Settings,
	}

	q := r.URL.Query()

	var err error

	if req.Viewport.Width, err = parseDimension(q.Get("w"), req.Viewport.Width); err != nil {
		return req, 0, errors.Wrap(err, "invalid width")
	}

	if req.Viewport.Height, err = parseDimension(q.Get("h"), req.Viewport.Height); err != nil {
		return req, 0, errors.Wrap(err, "invalid height")
	}

	for _, sel := range q["select"] {
		for _, id := range strings.Split(sel, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.Selected = append(req.Selected, hillchart.Identity(id))
			}
		}
	}

	refresh, err := parseRefresh(q.Get("refresh"))
	if err != nil {
		return req, 0, errors.Wrap(err, "invalid refresh")
	}

	return req, refresh, nil
}

func parseDimension(v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}

	if !(f > 0 && f <= maxDimension) {
		return 0, fmt.Errorf("%v is not within (0, %d]", f, maxDimension)
	}

	return f, nil
}

func parseRefresh(v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}

	d, err := duration.ParseDuration(v)
	if err != nil {
		return 0, err
	}

	refresh := time.Duration(d)

	if refresh < 0 || refresh > maxRefresh {
		return 0, fmt.Errorf("duration %v is over bound %v", d, maxRefresh)
	}

	return refresh, nil
}
