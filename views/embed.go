// Package views embeds the HTML templates rendered by the Fiber template engine.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v3"
)

//go:embed *.html layouts/*.html
var FS embed.FS

// New creates a template engine over the embedded templates.
// With reload set, templates are re-parsed on every render.
func New(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(FS), ".html")
	engine.Reload(reload)
	return engine
}
