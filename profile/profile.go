// Package profile defines the JSON document model rendered by folio: the
// per-person profile document, its tagged union of sections, the activity
// feed, and the site-wide configuration.
package profile

import (
	"encoding/json"
	"fmt"
)

// Template names a full-page layout strategy.
type Template string

const (
	TemplateAcademic Template = "academic"
	TemplateBusiness Template = "business"
	TemplateCreative Template = "creative"
	TemplateMinimal  Template = "minimal"
)

// Templates lists every known template in canonical order.
var Templates = []Template{TemplateAcademic, TemplateBusiness, TemplateCreative, TemplateMinimal}

// Valid reports whether t is one of the known templates.
func (t Template) Valid() bool {
	for _, known := range Templates {
		if t == known {
			return true
		}
	}
	return false
}

// Document is one profile, fetched by slug and held for a single page view.
type Document struct {
	Meta         Meta       `json:"meta"`
	Hero         Hero       `json:"hero"`
	Status       Status     `json:"status"`
	Sections     Sections   `json:"sections"`
	ActivityFeed []FeedItem `json:"activityFeed,omitempty"`
	GetInTouch   GetInTouch `json:"getInTouch"`
}

type Meta struct {
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Template Template `json:"template"`
	Theme    *Theme   `json:"theme,omitempty"`
}

// Theme is an optional color hint applied to the page wrapper.
type Theme struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent,omitempty"`
}

type Hero struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
	Bio      string   `json:"bio"`
	Socials  *Socials `json:"socials,omitempty"`
}

// Socials holds optional profile links. Empty fields are not rendered.
type Socials struct {
	GitHub        string `json:"github,omitempty"`
	LinkedIn      string `json:"linkedin,omitempty"`
	GoogleScholar string `json:"googleScholar,omitempty"`
	Twitter       string `json:"twitter,omitempty"`
	Website       string `json:"website,omitempty"`
}

type Status struct {
	CurrentRole  string   `json:"currentRole"`
	Organization string   `json:"organization"`
	Location     Location `json:"location"`
	AvailableFor []string `json:"availableFor,omitempty"`
	LastUpdated  string   `json:"lastUpdated"`
}

type Location struct {
	City    string `json:"city"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country"`
}

// String formats the location as "city, country".
func (l Location) String() string {
	switch {
	case l.City == "":
		return l.Country
	case l.Country == "":
		return l.City
	}
	return l.City + ", " + l.Country
}

// GetInTouch is the closing contact block of a profile.
type GetInTouch struct {
	Text      string `json:"text"`
	ShowEmail bool   `json:"showEmail,omitempty"`
	Email     string `json:"email,omitempty"`
}

// DisplayEmail returns the address to show, or "" when the block hides it.
func (g GetInTouch) DisplayEmail() string {
	if g.ShowEmail && g.Email != "" {
		return g.Email
	}
	return ""
}

// FirstSection returns the first section of the given kind, scanning in
// document order.
func (d *Document) FirstSection(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections {
		if s.Kind() == kind {
			return s, true
		}
	}
	return nil, false
}

// Decode parses a profile document. Content is taken as-is; only the JSON
// shape of each section is enforced by its variant type.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("profile: decode: %w", err)
	}
	return &doc, nil
}
