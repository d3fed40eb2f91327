// Package templates embeds the page templates of the frontend.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

const (
	baseTemplate     = "base.html"
	partialsTemplate = "partials.html"
)

// FS holds base.html, partials.html and one file per page.
//
//go:embed *.html
var FS embed.FS

// Load parses every page together with the base layout and the partials,
// keyed by page file name.
func Load(funcs template.FuncMap) (map[string]*template.Template, error) {
	pages, err := fs.Glob(FS, "*.html")
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		if page == baseTemplate || page == partialsTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).Funcs(funcs).ParseFS(FS, baseTemplate, page, partialsTemplate)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", page, err)
		}
		templates[page] = tmpl
	}
	return templates, nil
}
