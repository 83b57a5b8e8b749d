package web

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"albumPath": func(id string) string {
		return "/albums/" + url.PathEscape(id)
	},
}

// parseTemplates parses every embedded template into one set.
func parseTemplates() (*template.Template, error) {
	return template.New("web").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// render executes name into a buffer first so a failed render never leaves a partial response.
func render(w io.Writer, t *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
