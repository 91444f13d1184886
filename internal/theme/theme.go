// Package theme holds the data structures that describe one visual theme.
// A Theme combines:
//
//   - Name         – the theme directory name (for example, “base”).
//   - Page         – the page template the set was built for.
//   - Renderer     – parsed templates ready for execution.
//   - AssetFunc    – helper injected into templates so they can resolve
//     `{{ asset "css/main.css" }}` to a URL.
//
// AssetFunc merely prefixes `/themes/<name>/assets/`.  The web layer serves
// that prefix straight from the theme filesystem.
package theme

import (
	"html/template"
	"io"
	"path"
)

// Theme is one parsed template set: the shared layout, partials, and one
// page file.
type Theme struct {
	Name      string
	Page      string
	Renderer  *template.Template
	AssetFunc func(string) string
}

// AssetPrefix returns the URL prefix for name's assets.
func AssetPrefix(name string) string {
	return "/themes/" + name + "/assets/"
}

// New constructs a Theme with an AssetFunc that points to the assets folder.
func New(name, page string, tpl *template.Template) *Theme {
	prefix := AssetPrefix(name)
	return &Theme{
		Name:     name,
		Page:     page,
		Renderer: tpl,
		AssetFunc: func(p string) string {
			return prefix + path.Clean("/" + p)[1:]
		},
	}
}

// Execute renders the layout with data.
func (t *Theme) Execute(w io.Writer, data any) error {
	return t.Renderer.ExecuteTemplate(w, LayoutFile, data)
}
