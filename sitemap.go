package folio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/profile"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists the fixed pages, every profile in site.json, and the
// markdown pages. A nil site yields only the fixed pages.
func (a *App) renderSitemap(c echo.Context, site *profile.SiteConfig) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
	}
	if site != nil {
		for _, p := range site.Profiles {
			urls = append(urls, sitemapURL{Loc: BuildURL(base, "profiles", p.Slug)})
		}
	}
	if _, ok := a.Pages["about"]; ok {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "about")})
	}
	for _, p := range a.Pages.Nav() {
		if p.Slug != "about" {
			urls = append(urls, sitemapURL{Loc: BuildURL(base, "misc", p.Slug)})
		}
	}
	if site == nil || site.ShowContact() {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "contact")})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
