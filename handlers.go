package folio

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/loader"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/profile"
	"github.com/eringen/folio/views"
)

// site returns the cached site config, or nil when it cannot be loaded. Pages
// still render without it; the header then shows only fixed links.
func (a *App) site(c echo.Context) *profile.SiteConfig {
	site, err := a.Site.Get(c.Request().Context())
	if err != nil {
		a.Log.Warn("site config unavailable", zap.Error(err))
		return nil
	}
	return site
}

func (a *App) shell(c echo.Context, meta views.PageMeta) views.Shell {
	var misc []views.NavLink
	for _, p := range a.Pages.Nav() {
		misc = append(misc, views.NavLink{Label: p.Meta.Nav, Path: "/misc/" + url.PathEscape(p.Slug) + "/"})
	}
	return views.Shell{Site: a.site(c), Misc: misc, Meta: meta}
}

// renderPage renders body inside the site shell. The body is isolated by an
// error boundary so a failing body never takes the header down with it.
func (a *App) renderPage(c echo.Context, code int, meta views.PageMeta, body templ.Component) error {
	log := a.Log.With(zap.String("uri", c.Request().RequestURI))
	return RenderStatus(c, code, a.Views.Layout(a.shell(c, meta), views.Boundary(log, nil, body)))
}

func (a *App) handleHome(c echo.Context) error {
	site, err := a.Site.Get(c.Request().Context())
	if err != nil {
		return err
	}
	if len(site.Profiles) == 0 {
		return echo.ErrNotFound
	}
	return c.Redirect(http.StatusFound, "/profiles/"+url.PathEscape(site.Profiles[0].Slug)+"/")
}

func (a *App) handleProfile(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	l := loader.New(a.Data, a.Log)
	defer l.Close()
	st := l.Load(ctx, slug)

	switch {
	case st.Data != nil:
		return a.renderPage(c, http.StatusOK, a.profileMeta(st.Data), a.Views.Profile(st.Data))
	case st.Loading:
		return ctx.Err()
	case errors.Is(st.Reason, loader.ErrNotFound), errors.Is(st.Reason, loader.ErrNoSlug):
		return a.renderPage(c, http.StatusNotFound, views.PageMeta{Title: "Not Found"}, a.Views.ProfileError(st.Error))
	default:
		return a.renderPage(c, http.StatusBadGateway, views.PageMeta{Title: "Error"}, a.Views.ProfileError(st.Error))
	}
}

func (a *App) profileMeta(doc *profile.Document) views.PageMeta {
	pageURL := BuildURL(a.Config.URL, "profiles", doc.Meta.Slug)
	desc := doc.Hero.Subtitle
	if desc == "" {
		desc = Excerpt(doc.Hero.Bio, 160)
	}
	meta := views.PageMeta{
		Title:       doc.Meta.Name,
		Description: desc,
		URL:         pageURL,
		OGType:      "profile",
		JSONLD:      PersonJsonLD(doc, pageURL),
	}
	if doc.Hero.Avatar != "" {
		meta.Image = AbsoluteURL(a.Config.URL, doc.Hero.Avatar)
	}
	return meta
}

func (a *App) handleAbout(c echo.Context) error {
	return a.renderMarkdown(c, "about")
}

func (a *App) handleMisc(c echo.Context) error {
	slug := c.Param("page")
	if slug == "about" {
		return c.Redirect(http.StatusMovedPermanently, "/about/")
	}
	return a.renderMarkdown(c, slug)
}

func (a *App) renderMarkdown(c echo.Context, slug string) error {
	p, ok := a.Pages[slug]
	if !ok {
		return echo.ErrNotFound
	}
	return a.renderPage(c, http.StatusOK, a.pageMeta(p), a.Views.Page(p.Meta.Title, p.Body()))
}

func (a *App) pageMeta(p *markdown.Page) views.PageMeta {
	u := BuildURL(a.Config.URL, "misc", p.Slug)
	if p.Slug == "about" {
		u = BuildURL(a.Config.URL, "about")
	}
	return views.PageMeta{Title: p.Meta.Title, Description: p.Meta.Description, URL: u}
}

func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.staticDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n\n")
	b.WriteString("Sitemap: " + strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.site(c))
}

func (a *App) handleFeed(c echo.Context) error {
	site, err := a.Site.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, a.collectProfiles(c.Request().Context(), site))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderPage(c, http.StatusNotFound, views.PageMeta{Title: "Not Found"}, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error",
			zap.Error(err),
			zap.Int("status", code),
			zap.String("uri", c.Request().RequestURI),
		)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
