package views

import (
	"bytes"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio/profile"
)

// Section renders one profile section. Projects and gallery sections are
// declared but have no layout yet; they and unknown kinds render nothing.
func Section(s profile.Section) templ.Component {
	if !hasLayout(s) {
		return templ.NopComponent
	}
	return component(func(b *bytes.Buffer) { writeSection(b, s) })
}

func hasLayout(s profile.Section) bool {
	switch s.(type) {
	case profile.AboutSection, profile.PapersSection, profile.TalksSection,
		profile.PostersSection, profile.AwardsSection, profile.TimelineSection,
		profile.EducationSection, profile.SkillsSection, profile.CertificationsSection,
		profile.CustomSection:
		return true
	}
	return false
}

func writeSection(b *bytes.Buffer, s profile.Section) {
	switch s := s.(type) {
	case profile.AboutSection:
		wrapSection(b, s.Title, func() { aboutBody(b, s.Content) })
	case profile.PapersSection:
		wrapSection(b, s.Title, func() { papersBody(b, s.Content.Items) })
	case profile.TalksSection:
		wrapSection(b, s.Title, func() {
			yearList(b, "space-y-2", len(s.Content.Items), func(i int) (int, func()) {
				it := s.Content.Items[i]
				return it.Year, func() { text(b, it.Description) }
			})
		})
	case profile.PostersSection:
		wrapSection(b, s.Title, func() {
			yearList(b, "space-y-2", len(s.Content.Items), func(i int) (int, func()) {
				it := s.Content.Items[i]
				return it.Year, func() { text(b, it.Description) }
			})
		})
	case profile.AwardsSection:
		wrapSection(b, s.Title, func() {
			yearList(b, "space-y-2", len(s.Content.Items), func(i int) (int, func()) {
				it := s.Content.Items[i]
				return it.Year, func() { nameAtInstitution(b, it.Name, it.Institution) }
			})
		})
	case profile.CertificationsSection:
		wrapSection(b, s.Title, func() {
			yearList(b, "space-y-2", len(s.Content.Items), func(i int) (int, func()) {
				it := s.Content.Items[i]
				return it.Year, func() { nameAtInstitution(b, it.Name, it.Institution) }
			})
		})
	case profile.TimelineSection:
		wrapSection(b, s.Title, func() { timelineBody(b, s.Content.Items) })
	case profile.EducationSection:
		wrapSection(b, s.Title, func() { educationBody(b, s.Content.Items) })
	case profile.SkillsSection:
		wrapSection(b, s.Title, func() { skillsBody(b, s.Content.Items) })
	case profile.CustomSection:
		wrapSection(b, s.Title, func() {
			b.WriteString(`<ul class="list-disc list-inside space-y-2 text-left text-gray-600">`)
			for _, item := range s.Content.Items {
				tag(b, "li", "", item)
			}
			b.WriteString(`</ul>`)
		})
	case profile.ProjectsSection, profile.GallerySection, profile.UnknownSection:
	}
}

// wrapSection writes the anchored <section> with its heading and rule.
func wrapSection(b *bytes.Buffer, title string, body func()) {
	b.WriteString(`<section id="` + esc(AnchorID(title)) + `" class="py-12 md:py-16">`)
	b.WriteString(`<div class="text-center mb-10">`)
	tag(b, "h2", "text-3xl font-bold tracking-tight uppercase text-gray-700", title)
	b.WriteString(`<div class="w-16 h-1 folio-rule bg-teal-500 mx-auto mt-2"></div></div>`)
	body()
	b.WriteString(`</section>`)
}

func aboutBody(b *bytes.Buffer, c profile.AboutContent) {
	b.WriteString(`<div class="grid grid-cols-1 md:grid-cols-3 gap-8 items-start text-left">`)
	b.WriteString(`<div class="md:col-span-2 space-y-4 text-gray-600 leading-relaxed">`)
	for _, p := range c.Paragraphs {
		tag(b, "p", "", p)
	}
	b.WriteString(`</div>`)
	if len(c.Images) > 0 {
		b.WriteString(`<div class="space-y-4">`)
		for i, src := range c.Images {
			b.WriteString(`<img src="` + href(src) + `" alt="profile ` + strconv.Itoa(i+1) + `" loading="lazy" class="rounded-lg shadow-lg w-full">`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
}

func papersBody(b *bytes.Buffer, items []profile.Paper) {
	yearList(b, "space-y-4", len(items), func(i int) (int, func()) {
		p := items[i]
		return p.Year, func() {
			text(b, p.Authors)
			b.WriteString(` <a href="` + href(p.URL) + `" class="text-teal-600 hover:underline italic">&ldquo;`)
			text(b, p.Title)
			b.WriteString(`&rdquo;</a> `)
			text(b, p.Journal)
		}
	})
}

// yearList writes the "YEAR: body" list shared by papers, talks, posters,
// awards and certifications.
func yearList(b *bytes.Buffer, spacing string, n int, item func(i int) (int, func())) {
	b.WriteString(`<ul class="` + spacing + ` text-left text-gray-600">`)
	for i := 0; i < n; i++ {
		year, body := item(i)
		b.WriteString(`<li class="flex"><span class="font-bold w-16 flex-shrink-0">` + strconv.Itoa(year) + `:</span><span class="flex-1">`)
		body()
		b.WriteString(`</span></li>`)
	}
	b.WriteString(`</ul>`)
}

func nameAtInstitution(b *bytes.Buffer, name, institution string) {
	text(b, name)
	b.WriteString(`, `)
	tag(b, "em", "", institution)
}

func timelineBody(b *bytes.Buffer, items []profile.TimelineEntry) {
	b.WriteString(`<div class="relative container mx-auto px-6 flex flex-col space-y-8">`)
	b.WriteString(`<div class="absolute z-0 w-2 h-full bg-gray-300 shadow-md inset-0 top-0 left-1/2 -ml-1"></div>`)
	for _, it := range items {
		row, card := "flex items-center w-full", "ml-10 text-right"
		if it.Side == profile.SideLeft {
			row, card = "flex items-center flex-row-reverse w-full", "mr-10 text-left"
		}
		b.WriteString(`<div class="relative z-10 group"><div class="` + row + `"><div class="w-1/2">`)
		b.WriteString(`<div class="p-4 rounded-lg group-hover:bg-white/80 group-hover:shadow-lg transition-all duration-300 ` + card + `">`)
		tag(b, "h4", "font-bold text-lg text-gray-800", it.Title)
		tag(b, "p", "text-gray-600", it.Institution)
		if it.Date != "" {
			tag(b, "p", "text-sm text-gray-500 mt-1", it.Date)
		}
		b.WriteString(`</div></div>`)
		b.WriteString(`<div class="absolute left-1/2 -ml-4 w-8 h-8 rounded-full bg-teal-500 border-4 border-white shadow-md"></div>`)
		b.WriteString(`</div></div>`)
	}
	b.WriteString(`</div>`)
}

func educationBody(b *bytes.Buffer, items []profile.Education) {
	b.WriteString(`<div class="space-y-6 text-left">`)
	for _, edu := range items {
		b.WriteString(`<div>`)
		tag(b, "h3", "font-bold text-xl", edu.Institution)
		tag(b, "p", "text-md italic text-gray-700", edu.Degree)
		b.WriteString(`<ul class="list-disc list-inside ml-4 text-gray-600">`)
		for _, d := range edu.Details {
			tag(b, "li", "", d)
		}
		if edu.URL != "" {
			b.WriteString(`<li>`)
			externalLink(b, edu.URL, "text-teal-600 hover:underline", func() { b.WriteString("View Thesis") })
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul></div>`)
	}
	b.WriteString(`</div>`)
}

func skillsBody(b *bytes.Buffer, items []profile.SkillCategory) {
	b.WriteString(`<div class="grid grid-cols-1 md:grid-cols-2 gap-6 text-left">`)
	for _, cat := range items {
		b.WriteString(`<div>`)
		tag(b, "h3", "font-bold text-lg text-gray-800 mb-2", cat.Category)
		b.WriteString(`<div class="flex flex-wrap gap-2">`)
		for _, skill := range cat.Items {
			tag(b, "span", "px-3 py-1 bg-gray-100 text-gray-700 rounded-full text-sm", skill)
		}
		b.WriteString(`</div></div>`)
	}
	b.WriteString(`</div>`)
}
