package views

import (
	"bytes"
	"regexp"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/folio/profile"
)

// Profile renders a whole profile document with the layout named by
// meta.template. Creative uses the minimal layout; unknown names fall back to
// academic.
func Profile(doc *profile.Document) templ.Component {
	return component(func(b *bytes.Buffer) {
		themed(b, doc.Meta.Theme, func() {
			switch doc.Meta.Template {
			case profile.TemplateBusiness:
				businessLayout(b, doc)
			case profile.TemplateMinimal, profile.TemplateCreative:
				minimalLayout(b, doc)
			case profile.TemplateAcademic:
				academicLayout(b, doc)
			default:
				academicLayout(b, doc)
			}
		})
	})
}

var (
	upper     = cases.Upper(language.Und)
	reCSSSafe = regexp.MustCompile(`^[#a-zA-Z0-9(),.% -]+$`)
)

// themed wraps body in a div carrying the theme colors as CSS custom
// properties. Values outside a plain color syntax are dropped.
func themed(b *bytes.Buffer, theme *profile.Theme, body func()) {
	var style string
	if theme != nil && theme.Primary != "" && reCSSSafe.MatchString(theme.Primary) {
		style = "--folio-primary:" + theme.Primary + ";"
		if theme.Accent != "" && reCSSSafe.MatchString(theme.Accent) {
			style += "--folio-accent:" + theme.Accent + ";"
		}
	}
	if style == "" {
		b.WriteString(`<div class="folio-profile">`)
	} else {
		b.WriteString(`<div class="folio-profile" style="` + esc(style) + `">`)
	}
	body()
	b.WriteString(`</div>`)
}

const navLinkClass = "text-xs uppercase font-semibold text-gray-500 hover:text-teal-600 tracking-wider whitespace-nowrap"

func academicLayout(b *bytes.Buffer, doc *profile.Document) {
	b.WriteString(`<div class="bg-gray-50">`)
	b.WriteString(`<nav class="sticky top-16 bg-white/90 backdrop-blur-sm z-30 border-b border-gray-200"><div class="max-w-4xl mx-auto px-4">`)
	b.WriteString(`<div class="flex justify-center space-x-4 md:space-x-8 overflow-x-auto py-3">`)
	for _, sec := range doc.Sections {
		b.WriteString(`<a href="#` + esc(AnchorID(sec.Heading())) + `" class="` + navLinkClass + `">`)
		text(b, upper.String(sec.Heading()))
		b.WriteString(`</a>`)
	}
	b.WriteString(`<a href="#get-in-touch" class="` + navLinkClass + `">GET IN TOUCH</a>`)
	b.WriteString(`</div></div></nav>`)

	b.WriteString(`<div class="max-w-4xl mx-auto px-4 sm:px-6 lg:px-8">`)
	socialRow(b, "flex justify-end gap-3 pt-8", doc.Hero.Socials,
		socialGitHub, socialLinkedIn, socialScholar, socialTwitter, socialWebsite)
	writeSections(b, doc.Sections)
	contactSection(b, doc.GetInTouch, doc.GetInTouch.DisplayEmail())
	b.WriteString(`</div></div>`)
}

func businessLayout(b *bytes.Buffer, doc *profile.Document) {
	hero, status := doc.Hero, doc.Status
	b.WriteString(`<div class="bg-gray-50">`)
	b.WriteString(`<div class="bg-white border-b border-gray-200"><div class="max-w-4xl mx-auto px-4 sm:px-6 lg:px-8 py-12">`)
	b.WriteString(`<div class="flex flex-col md:flex-row items-center gap-8">`)
	avatar(b, hero, "w-32 h-32 rounded-full shadow-lg object-cover")
	b.WriteString(`<div class="text-center md:text-left">`)
	tag(b, "h1", "text-4xl font-bold text-gray-900", hero.Title)
	if hero.Subtitle != "" {
		tag(b, "p", "text-xl text-gray-600 mt-1", hero.Subtitle)
	}
	tag(b, "p", "text-gray-500 mt-2", status.CurrentRole+" at "+status.Organization)
	tag(b, "p", "text-gray-400 text-sm", status.Location.String())
	if len(status.AvailableFor) > 0 {
		b.WriteString(`<div class="flex flex-wrap gap-2 mt-3 justify-center md:justify-start">`)
		for _, a := range status.AvailableFor {
			tag(b, "span", "px-3 py-1 bg-teal-50 text-teal-700 rounded-full text-xs", a)
		}
		b.WriteString(`</div>`)
	}
	socialRow(b, "flex gap-3 mt-4 justify-center md:justify-start", hero.Socials,
		socialLinkedIn, socialGitHub, socialScholar, socialTwitter, socialWebsite)
	b.WriteString(`</div></div></div></div>`)

	b.WriteString(`<div class="max-w-4xl mx-auto px-4 sm:px-6 lg:px-8">`)
	writeSections(b, doc.Sections)
	contactSection(b, doc.GetInTouch, "")
	b.WriteString(`</div></div>`)
}

func minimalLayout(b *bytes.Buffer, doc *profile.Document) {
	hero := doc.Hero
	b.WriteString(`<div class="bg-gray-50 min-h-[60vh]"><div class="max-w-2xl mx-auto px-4 sm:px-6 lg:px-8 py-16">`)
	b.WriteString(`<div class="text-center">`)
	avatar(b, hero, "w-28 h-28 rounded-full shadow-lg object-cover mx-auto mb-6")
	tag(b, "h1", "text-4xl font-bold text-gray-900", hero.Title)
	if hero.Subtitle != "" {
		tag(b, "p", "text-xl text-gray-500 mt-2", hero.Subtitle)
	}
	tag(b, "p", "text-gray-400 text-sm mt-1", doc.Status.Location.String())
	socialRow(b, "flex gap-4 mt-6 justify-center", hero.Socials,
		socialGitHub, socialLinkedIn, socialScholar, socialTwitter, socialWebsite)
	b.WriteString(`</div>`)

	if paragraphs := firstAboutParagraphs(doc); len(paragraphs) > 0 {
		b.WriteString(`<div class="mt-10 space-y-4 text-gray-600 leading-relaxed text-center">`)
		for _, p := range paragraphs {
			tag(b, "p", "", p)
		}
		b.WriteString(`</div>`)
	}

	b.WriteString(`<div id="get-in-touch" class="mt-12 text-center">`)
	tag(b, "p", "text-gray-600", doc.GetInTouch.Text)
	contactButton(b)
	b.WriteString(`</div></div></div>`)
}

func firstAboutParagraphs(doc *profile.Document) []string {
	sec, ok := doc.FirstSection(profile.KindAbout)
	if !ok {
		return nil
	}
	about, ok := sec.(profile.AboutSection)
	if !ok {
		return nil
	}
	return about.Content.Paragraphs
}

func writeSections(b *bytes.Buffer, sections profile.Sections) {
	for _, sec := range sections {
		writeSection(b, sec)
	}
}

func avatar(b *bytes.Buffer, hero profile.Hero, class string) {
	if hero.Avatar == "" {
		return
	}
	b.WriteString(`<img src="` + href(hero.Avatar) + `" alt="` + esc(hero.Title) + `" loading="lazy" class="` + class + `">`)
}

// contactSection writes the closing "Get In Touch" block. email is shown
// only when non-empty.
func contactSection(b *bytes.Buffer, g profile.GetInTouch, email string) {
	wrapSection(b, "Get In Touch", func() {
		b.WriteString(`<div class="text-center text-gray-600 max-w-2xl mx-auto">`)
		tag(b, "p", "", g.Text)
		if email != "" {
			tag(b, "p", "font-mono my-4 text-teal-700", email)
		}
		contactButton(b)
		b.WriteString(`</div>`)
	})
}

func contactButton(b *bytes.Buffer) {
	b.WriteString(`<a href="/contact/" class="mt-4 inline-block bg-teal-500 text-white font-bold py-2 px-6 rounded-lg hover:bg-teal-600 transition-colors">Send a Message</a>`)
}
