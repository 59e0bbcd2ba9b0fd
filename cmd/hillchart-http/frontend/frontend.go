package frontend

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/diamondburned/tmplutil"
)

//go:embed *
var webFS embed.FS

var Templater = tmplutil.Templater{
	FileSystem: webFS,
	Includes: map[string]string{
		"hill":   "components/hill/hill.html",
		"errbox": "components/errbox/errbox.html",
		"rawcss": "static/style.css",
	},
	Functions: template.FuncMap{},
}

func init() {
	// tmplutil.Log = true
	tmplutil.Preregister(&Templater)
}

// MountStatic mounts a static HTTP handler.
func MountStatic() http.Handler {
	sub, err := fs.Sub(webFS, "static")
	if err != nil {
		log.Panicln("failed to get static:", err)
	}

	return http.FileServer(http.FS(sub))
}
