// Package views embeds the html templates and static assets of the guest site.
package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed layouts errors invitation pages
var templates embed.FS

//go:embed static
var static embed.FS

// NewEngine returns the template engine over the embedded views.
func NewEngine() *html.Engine {
	return html.NewFileSystem(http.FS(templates), ".html")
}

// Static is the embedded static directory, rooted so that "css/site.css"
// resolves.
func Static() http.FileSystem {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
