// Package markdown renders the site's informational pages: Markdown with an
// optional YAML frontmatter block, converted to HTML as a templ component.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Raw HTML in the source is dropped; goldmark escapes by default.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := RenderMarkdown(&buf, content); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderMarkdown writes the HTML representation of content to buf.
func RenderMarkdown(buf *bytes.Buffer, content string) error {
	return md.Convert([]byte(content), buf)
}

// Meta is the frontmatter of a page.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Nav         string `yaml:"nav"`   // header dropdown label; empty keeps the page out of the menu
	Order       int    `yaml:"order"` // position within the dropdown
}

// Page is one parsed Markdown page.
type Page struct {
	Slug string
	Meta Meta
	HTML []byte
}

// Body returns the rendered page body.
func (p *Page) Body() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write(p.HTML)
		return err
	})
}

// Parse splits frontmatter from src and renders the rest. A missing title is
// derived from the slug.
func Parse(slug string, src []byte) (*Page, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return nil, fmt.Errorf("markdown: %s: frontmatter: %w", slug, err)
	}
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("markdown: %s: %w", slug, err)
	}
	if meta.Title == "" {
		meta.Title = cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
	}
	return &Page{Slug: slug, Meta: meta, HTML: buf.Bytes()}, nil
}

// Pages is a set of parsed pages keyed by slug.
type Pages map[string]*Page

// LoadDir parses every *.md file directly inside dir of fsys. The slug of a
// page is its file name without the extension.
func LoadDir(fsys fs.FS, dir string) (Pages, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("markdown: read %s: %w", dir, err)
	}
	pages := make(Pages)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		src, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("markdown: read %s: %w", e.Name(), err)
		}
		slug := strings.TrimSuffix(e.Name(), ".md")
		p, err := Parse(slug, src)
		if err != nil {
			return nil, err
		}
		pages[slug] = p
	}
	return pages, nil
}

// Nav returns the pages that declare a nav label, ordered by Order then slug.
func (ps Pages) Nav() []*Page {
	var out []*Page
	for _, p := range ps {
		if p.Meta.Nav != "" {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Meta.Order != out[j].Meta.Order {
			return out[i].Meta.Order < out[j].Meta.Order
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}
