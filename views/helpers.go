package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var reWhitespace = regexp.MustCompile(`\s+`)

// AnchorID turns a section title into its in-page anchor: lowercase, with
// every whitespace run replaced by "-".
func AnchorID(title string) string {
	return reWhitespace.ReplaceAllString(strings.ToLower(title), "-")
}

// component adapts a buffer writer into a templ.Component.
func component(fn func(b *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		fn(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

// href sanitizes a URL for use in an attribute. Unsafe schemes are replaced
// by templ's failure marker.
func href(u string) string {
	return html.EscapeString(string(templ.URL(u)))
}

// text writes escaped text.
func text(b *bytes.Buffer, s string) {
	b.WriteString(esc(s))
}

// tag writes <name class="class">escaped text</name>.
func tag(b *bytes.Buffer, name, class, s string) {
	b.WriteString("<" + name)
	if class != "" {
		b.WriteString(` class="` + class + `"`)
	}
	b.WriteString(">")
	text(b, s)
	b.WriteString("</" + name + ">")
}

func externalLink(b *bytes.Buffer, url, class string, body func()) {
	b.WriteString(`<a href="` + href(url) + `" target="_blank" rel="noopener noreferrer"`)
	if class != "" {
		b.WriteString(` class="` + class + `"`)
	}
	b.WriteString(">")
	body()
	b.WriteString("</a>")
}
