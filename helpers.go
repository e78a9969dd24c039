package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/eringen/folio/profile"
)

// Slugify converts a name to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// AbsoluteURL resolves ref against base. Absolute refs are returned as is.
func AbsoluteURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// Excerpt cuts s to at most n runes on a word boundary, adding an ellipsis
// when anything was dropped.
func Excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	cut := []rune(s)[:n]
	if i := strings.LastIndexByte(string(cut), ' '); i > 0 {
		return string(cut)[:i] + "…"
	}
	return string(cut) + "…"
}

// PersonJsonLD returns a JSON-LD string for a ProfilePage about the person
// described by doc.
func PersonJsonLD(doc *profile.Document, pageURL string) string {
	person := map[string]any{
		"@type": "Person",
		"name":  doc.Meta.Name,
		"url":   pageURL,
	}
	if doc.Status.CurrentRole != "" {
		person["jobTitle"] = doc.Status.CurrentRole
	}
	if doc.Status.Organization != "" {
		person["worksFor"] = map[string]string{
			"@type": "Organization",
			"name":  doc.Status.Organization,
		}
	}
	if loc := doc.Status.Location.String(); loc != "" {
		person["homeLocation"] = map[string]string{
			"@type": "Place",
			"name":  loc,
		}
	}
	if doc.Hero.Avatar != "" {
		person["image"] = AbsoluteURL(pageURL, doc.Hero.Avatar)
	}
	if s := doc.Hero.Socials; s != nil {
		var same []string
		for _, u := range []string{s.GitHub, s.LinkedIn, s.GoogleScholar, s.Twitter, s.Website} {
			if u != "" {
				same = append(same, u)
			}
		}
		if len(same) > 0 {
			person["sameAs"] = same
		}
	}
	data := map[string]any{
		"@context":   "https://schema.org",
		"@type":      "ProfilePage",
		"url":        pageURL,
		"mainEntity": person,
	}
	if doc.Status.LastUpdated != "" {
		data["dateModified"] = doc.Status.LastUpdated
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
