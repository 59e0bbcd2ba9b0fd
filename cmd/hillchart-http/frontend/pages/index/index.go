package index

import (
	"io"
	"time"

	"git.unix.lgbt/diamondburned/hillchart"
	"git.unix.lgbt/diamondburned/hillchart/cmd/hillchart-http/frontend"
	_ "git.unix.lgbt/diamondburned/hillchart/cmd/hillchart-http/frontend/components/errbox"
	_ "git.unix.lgbt/diamondburned/hillchart/cmd/hillchart-http/frontend/components/hill"
	"git.unix.lgbt/diamondburned/hillchart/internal/render"
	"github.com/dustin/go-humanize"
)

var index = frontend.Templater.Register("index", "pages/index/index.html")

type renderData struct {
	Source  string
	Scene   hillchart.Scene
	Refresh time.Duration // rounded to seconds

	points  int
	skipped int
}

// Summary describes the number of plotted and skipped rows.
func (r *renderData) Summary() string {
	s := humanize.Comma(int64(r.points)) + " " + plural(r.points, "item", "items")
	if r.skipped > 0 {
		s += ", " + humanize.Comma(int64(r.skipped)) + " skipped"
	}
	return s
}

// RefreshSeconds returns the refresh interval for the meta refresh tag.
func (r *renderData) RefreshSeconds() int64 {
	return int64(r.Refresh / time.Second)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Render renders the index page for an already computed result.
func Render(w io.Writer, source string, res render.Result, refresh time.Duration) error {
	return index.Execute(w, &renderData{
		Source:  source,
		Scene:   res.Scene,
		Refresh: refresh.Round(time.Second),
		points:  res.Points,
		skipped: len(res.Skipped),
	})
}
