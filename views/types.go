package views

import "github.com/eringen/folio/profile"

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "profile"
	Image       string
	JSONLD      string // pre-encoded schema.org object, optional
}

// NavLink is one entry of a header dropdown.
type NavLink struct {
	Label string
	Path  string
}

// Shell is everything the site chrome needs around a page body. Site may be
// nil when site.json could not be loaded; the header then shows only fixed
// links.
type Shell struct {
	Site *profile.SiteConfig
	Misc []NavLink
	Meta PageMeta
}

// NoticeKind selects the styling of a Notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a one-shot status message shown above a form.
type Notice struct {
	Kind NoticeKind
	Text string
}
