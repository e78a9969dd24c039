package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the HTML document and site header. The body is
// streamed after the header, so callers that need failure isolation pass a
// Boundary.
func Layout(shell Shell, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var head bytes.Buffer
		writeHead(&head, shell)
		writeHeader(&head, shell)
		head.WriteString(`<main class="pt-16">`)
		if _, err := w.Write(head.Bytes()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		var foot bytes.Buffer
		foot.WriteString(`</main>`)
		writeFooter(&foot, shell)
		foot.WriteString(`</body></html>`)
		_, err := w.Write(foot.Bytes())
		return err
	})
}

func siteName(shell Shell) string {
	if shell.Site != nil && shell.Site.FamilyName != "" {
		return shell.Site.FamilyName
	}
	return "Personal Site"
}

func writeHead(b *bytes.Buffer, shell Shell) {
	m := shell.Meta
	title := siteName(shell)
	if m.Title != "" {
		title = m.Title + " | " + title
	}
	ogType := m.OGType
	if ogType == "" {
		ogType = "website"
	}
	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	tag(b, "title", "", title)
	if m.Description != "" {
		b.WriteString(`<meta name="description" content="` + esc(m.Description) + `">`)
		b.WriteString(`<meta property="og:description" content="` + esc(m.Description) + `">`)
	}
	b.WriteString(`<meta property="og:title" content="` + esc(title) + `">`)
	b.WriteString(`<meta property="og:type" content="` + esc(ogType) + `">`)
	if m.URL != "" {
		b.WriteString(`<meta property="og:url" content="` + href(m.URL) + `">`)
		b.WriteString(`<link rel="canonical" href="` + href(m.URL) + `">`)
	}
	if m.Image != "" {
		b.WriteString(`<meta property="og:image" content="` + href(m.Image) + `">`)
	}
	b.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + esc(siteName(shell)) + `" href="/feed.xml">`)
	b.WriteString(`<link rel="stylesheet" href="/public/styles.css">`)
	if m.JSONLD != "" {
		// JSON-LD is produced by json.Marshal, which escapes <, > and &.
		b.WriteString(`<script type="application/ld+json">` + m.JSONLD + `</script>`)
	}
	b.WriteString(`</head><body class="bg-gray-50 text-gray-900">`)
}

const headerLinkClass = "text-gray-600 hover:text-gray-900 px-3 py-2 rounded-md text-sm font-medium"

func writeHeader(b *bytes.Buffer, shell Shell) {
	site := shell.Site
	b.WriteString(`<header class="fixed top-0 left-0 right-0 bg-white/80 backdrop-blur-sm border-b border-gray-200 z-50">`)
	b.WriteString(`<nav class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8"><div class="flex items-center justify-between h-16">`)
	b.WriteString(`<div class="flex items-center"><a href="/" class="text-xl font-bold text-gray-900">`)
	text(b, siteName(shell))
	b.WriteString(`</a></div>`)
	b.WriteString(`<div class="hidden md:flex items-center space-x-4">`)
	if site == nil || site.ShowAbout() {
		b.WriteString(`<a href="/about/" class="` + headerLinkClass + `">About</a>`)
	}
	if site != nil && len(site.Profiles) > 0 {
		links := make([]NavLink, 0, len(site.Profiles))
		for _, p := range site.Profiles {
			links = append(links, NavLink{Label: p.Name, Path: "/profiles/" + p.Slug + "/"})
		}
		dropdown(b, "Profiles", links)
	}
	if len(shell.Misc) > 0 {
		dropdown(b, "Misc", shell.Misc)
	}
	if site != nil && site.ShowFeed() {
		b.WriteString(`<a href="/feed.xml" class="` + headerLinkClass + `">Feed</a>`)
	}
	if site == nil || site.ShowContact() {
		b.WriteString(`<a href="/contact/" class="` + headerLinkClass + `">Contact</a>`)
	}
	b.WriteString(`</div></div></nav></header>`)
}

func dropdown(b *bytes.Buffer, title string, links []NavLink) {
	b.WriteString(`<details class="relative"><summary class="` + headerLinkClass + ` cursor-pointer list-none">`)
	text(b, title)
	b.WriteString(`</summary><div class="absolute right-0 mt-2 w-48 bg-white rounded-md shadow-lg py-1 z-50">`)
	for _, l := range links {
		b.WriteString(`<a href="` + href(l.Path) + `" class="block px-4 py-2 text-sm text-gray-700 hover:bg-gray-100">`)
		text(b, l.Label)
		b.WriteString(`</a>`)
	}
	b.WriteString(`</div></details>`)
}

func writeFooter(b *bytes.Buffer, shell Shell) {
	b.WriteString(`<footer class="border-t border-gray-200 py-8 text-center text-sm text-gray-500">`)
	text(b, siteName(shell))
	if shell.Site != nil && shell.Site.Tagline != "" {
		b.WriteString(` &middot; `)
		text(b, shell.Site.Tagline)
	}
	b.WriteString(`</footer>`)
}

func NotFound() templ.Component {
	return component(func(b *bytes.Buffer) {
		b.WriteString(`<div class="container mx-auto p-8 text-center min-h-[60vh] flex flex-col items-center justify-center">`)
		tag(b, "h1", "text-8xl font-bold text-gray-800 mb-4", "404")
		tag(b, "h2", "text-3xl font-semibold text-gray-700 mb-4", "Page Not Found")
		tag(b, "p", "text-xl text-gray-600 mb-8 max-w-md", "The page you're looking for doesn't exist or has been moved.")
		b.WriteString(`<a href="/" class="bg-teal-500 text-white px-8 py-3 rounded-lg hover:bg-teal-600 transition-colors font-semibold">Go Home</a>`)
		b.WriteString(`</div>`)
	})
}

func ServerError() templ.Component {
	return ErrorFallback(nil)
}

// ProfileError is the inline message shown in place of a profile that could
// not be loaded.
func ProfileError(msg string) templ.Component {
	if msg == "" {
		msg = "Profile not found."
	}
	return component(func(b *bytes.Buffer) {
		tag(b, "div", "text-center p-10 text-red-500", msg)
	})
}

// Page renders an informational page: a title and pre-rendered content.
func Page(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b bytes.Buffer
		b.WriteString(`<article class="container mx-auto p-8 max-w-3xl">`)
		tag(&b, "h1", "text-4xl font-bold text-center mb-8", title)
		b.WriteString(`<div class="prose prose-gray max-w-none">`)
		if _, err := w.Write(b.Bytes()); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></article>`)
		return err
	})
}

const inputClass = "mt-1 block w-full px-3 py-2 bg-white border border-gray-300 rounded-md shadow-sm placeholder-gray-400 focus:outline-none focus:ring-teal-500 focus:border-teal-500 sm:text-sm"

// Contact renders the contact form with an optional notice from the last
// submission.
func Contact(notice Notice, csrfToken string) templ.Component {
	return component(func(b *bytes.Buffer) {
		b.WriteString(`<div class="container mx-auto p-8 max-w-2xl">`)
		tag(b, "h1", "text-4xl font-bold text-center mb-8", "Contact Me")
		b.WriteString(`<div class="bg-white p-8 rounded-lg shadow-md">`)
		tag(b, "p", "text-gray-600 mb-6 text-center", "Have a question or want to work together? Fill out the form below.")
		switch notice.Kind {
		case NoticeSuccess:
			b.WriteString(`<div class="mb-6 p-4 bg-green-50 border border-green-200 rounded-md">`)
			tag(b, "p", "text-green-800 text-center font-medium", notice.Text)
			b.WriteString(`</div>`)
		case NoticeError:
			b.WriteString(`<div class="mb-6 p-4 bg-red-50 border border-red-200 rounded-md">`)
			tag(b, "p", "text-red-800 text-center font-medium", notice.Text)
			b.WriteString(`</div>`)
		}
		b.WriteString(`<form method="post" action="/contact/" class="space-y-6">`)
		b.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `">`)
		formField(b, "name", "Full Name", `<input type="text" name="name" id="name" required class="`+inputClass+`" placeholder="John Doe">`)
		formField(b, "email", "Email Address", `<input type="email" name="email" id="email" required class="`+inputClass+`" placeholder="you@example.com">`)
		formField(b, "message", "Message", `<textarea name="message" id="message" rows="5" required class="`+inputClass+`" placeholder="Your message here..."></textarea>`)
		b.WriteString(`<div class="text-center"><button type="submit" class="w-full md:w-auto inline-flex justify-center py-3 px-6 border border-transparent shadow-sm text-base font-medium rounded-md text-white bg-teal-600 hover:bg-teal-700">Send Message</button></div>`)
		b.WriteString(`</form></div></div>`)
	})
}

func formField(b *bytes.Buffer, id, label, input string) {
	b.WriteString(`<div><label for="` + id + `" class="block text-sm font-medium text-gray-700">` + label + `</label>`)
	b.WriteString(input)
	b.WriteString(`</div>`)
}
