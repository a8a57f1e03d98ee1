// Package scalar serves the OpenAPI document together with a Scalar API
// reference page that renders it.
package scalar

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/verdict/pkg/module"
	"github.com/JaimeStill/verdict/pkg/openapi"
)

//go:embed index.html
var staticFS embed.FS

var index = template.Must(template.ParseFS(staticFS, "index.html"))

// SpecFile is the path, relative to the module prefix, of the served document.
const SpecFile = "/openapi.json"

// NewModule creates a module at basePath serving the reference page at its
// root and the pre-serialized spec at SpecFile.
func NewModule(basePath, title string, spec []byte) *module.Module {
	return module.New(basePath, buildRouter(basePath, title, spec))
}

func buildRouter(basePath, title string, spec []byte) http.Handler {
	mux := http.NewServeMux()

	data := map[string]string{
		"Title":   title,
		"SpecURL": basePath + SpecFile,
	}
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		index.Execute(w, data)
	})

	mux.HandleFunc("GET "+SpecFile, openapi.ServeSpec(spec))

	return mux
}
