package views

import (
	"bytes"

	"github.com/eringen/folio/profile"
)

type social struct {
	label string
	url   func(*profile.Socials) string
	icon  string
}

const svgOpen = `<svg class="w-6 h-6" fill="currentColor" viewBox="0 0 24 24" aria-hidden="true">`

var (
	githubIcon   = svgOpen + `<path d="M12 .5C5.7.5.5 5.7.5 12c0 5.1 3.3 9.4 7.9 10.9.6.1.8-.3.8-.6v-2c-3.2.7-3.9-1.5-3.9-1.5-.5-1.3-1.3-1.7-1.3-1.7-1-.7.1-.7.1-.7 1.2.1 1.8 1.2 1.8 1.2 1 1.8 2.7 1.3 3.4 1 .1-.8.4-1.3.7-1.6-2.6-.3-5.3-1.3-5.3-5.7 0-1.3.5-2.3 1.2-3.1-.1-.3-.5-1.5.1-3.1 0 0 1-.3 3.2 1.2a11 11 0 0 1 5.8 0c2.2-1.5 3.2-1.2 3.2-1.2.6 1.6.2 2.8.1 3.1.8.8 1.2 1.9 1.2 3.1 0 4.4-2.7 5.4-5.3 5.7.4.4.8 1.1.8 2.2v3.3c0 .3.2.7.8.6A11.5 11.5 0 0 0 23.5 12C23.5 5.7 18.3.5 12 .5Z"/></svg>`
	linkedinIcon = svgOpen + `<path d="M20.4 20.5h-3.6v-5.6c0-1.3 0-3-1.8-3s-2.1 1.4-2.1 2.9v5.7H9.4V9h3.4v1.6c.5-.9 1.6-1.8 3.4-1.8 3.6 0 4.3 2.4 4.3 5.5v6.2ZM5.3 7.4a2.1 2.1 0 1 1 0-4.2 2.1 2.1 0 0 1 0 4.2ZM7.1 20.5H3.6V9h3.5v11.5ZM22.2 0H1.8C.8 0 0 .8 0 1.7v20.6c0 .9.8 1.7 1.8 1.7h20.4c1 0 1.8-.8 1.8-1.7V1.7C24 .8 23.2 0 22.2 0Z"/></svg>`
	scholarIcon  = svgOpen + `<path d="M12 24a7 7 0 1 1 0-14 7 7 0 0 1 0 14Zm0-24L0 9.5l4.9 4a8 8 0 0 1 14.2 0L24 9.5 12 0Z"/></svg>`
	twitterIcon  = svgOpen + `<path d="M18.2 2.3h3.3l-7.2 8.3 8.5 11.2h-6.7l-5.2-6.8-6 6.8H1.6l7.7-8.8L1.2 2.3H8l4.7 6.2 5.5-6.2Zm-1.2 17.5h1.8L7.1 4.1H5.1l11.9 15.7Z"/></svg>`
	websiteIcon  = svgOpen + `<path d="M12 0a12 12 0 1 0 0 24 12 12 0 0 0 0-24Zm7.9 7h-3.4a18 18 0 0 0-1.6-4.3A9.6 9.6 0 0 1 19.9 7ZM12 2.4c.8 1.2 1.6 2.8 2 4.6h-4c.4-1.8 1.2-3.4 2-4.6ZM2.7 14.4a9.7 9.7 0 0 1 0-4.8h3.8a20 20 0 0 0 0 4.8H2.7Zm1.4 2.6h3.4c.4 1.6 1 3 1.6 4.3A9.6 9.6 0 0 1 4.1 17ZM7.5 7H4.1a9.6 9.6 0 0 1 5-4.3C8.5 4 7.9 5.4 7.5 7ZM12 21.6c-.8-1.2-1.6-2.8-2-4.6h4c-.4 1.8-1.2 3.4-2 4.6Zm2.4-7.2H9.6a17.6 17.6 0 0 1 0-4.8h4.8a17.6 17.6 0 0 1 0 4.8Zm.5 6.9c.6-1.3 1.2-2.7 1.6-4.3h3.4a9.6 9.6 0 0 1-5 4.3Zm2.6-6.9a20 20 0 0 0 0-4.8h3.8a9.7 9.7 0 0 1 0 4.8h-3.8Z"/></svg>`
)

var (
	socialGitHub   = social{"GitHub", func(s *profile.Socials) string { return s.GitHub }, githubIcon}
	socialLinkedIn = social{"LinkedIn", func(s *profile.Socials) string { return s.LinkedIn }, linkedinIcon}
	socialScholar  = social{"Google Scholar", func(s *profile.Socials) string { return s.GoogleScholar }, scholarIcon}
	socialTwitter  = social{"Twitter", func(s *profile.Socials) string { return s.Twitter }, twitterIcon}
	socialWebsite  = social{"Website", func(s *profile.Socials) string { return s.Website }, websiteIcon}
)

// socialRow writes one icon link per social that is present, in order.
func socialRow(b *bytes.Buffer, class string, socials *profile.Socials, order ...social) {
	b.WriteString(`<div class="` + class + `">`)
	if socials != nil {
		for _, s := range order {
			url := s.url(socials)
			if url == "" {
				continue
			}
			externalLink(b, url, "text-gray-500 hover:text-gray-900", func() {
				b.WriteString(s.icon)
				b.WriteString(`<span class="sr-only">` + s.label + `</span>`)
			})
		}
	}
	b.WriteString(`</div>`)
}
