// Package scaffold provides the embedded templates used by `folio new` to
// create starter profile documents.
package scaffold

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	"github.com/eringen/folio/profile"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data holds the template variables passed to every scaffold template.
type Data struct {
	Name     string // display name, e.g. "Tra Ngo"
	Slug     string
	Family   string // site family name for a fresh site.json
	Template profile.Template
	Date     string // YYYY-MM-DD
}

var funcs = template.FuncMap{
	// json renders v as a JSON literal so any name is safe to embed.
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
}

// Execute renders templates/<name>.tmpl into w.
func Execute(w io.Writer, name string, data Data) error {
	path := "templates/" + name + ".tmpl"
	src, err := Templates.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scaffold: read %s: %w", path, err)
	}
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return fmt.Errorf("scaffold: parse %s: %w", path, err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("scaffold: execute %s: %w", path, err)
	}
	return nil
}
