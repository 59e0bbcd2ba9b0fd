package errpage

import (
	"io"
	"net/http"

	"git.unix.lgbt/diamondburned/hillchart/cmd/hillchart-http/frontend"
	_ "git.unix.lgbt/diamondburned/hillchart/cmd/hillchart-http/frontend/components/errbox"
	_ "git.unix.lgbt/diamondburned/hillchart/cmd/hillchart-http/frontend/components/hill"
)

var errpage = frontend.Templater.Register("errpage", "pages/errpage/errpage.html")

// Render renders the error page.
func Render(w io.Writer, err error) error {
	return errpage.Execute(w, err)
}

// Respond writes the error page with the given status code.
func Respond(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.WriteHeader(code)
	Render(w, err)
}
