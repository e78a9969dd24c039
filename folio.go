// Package folio serves a family of personal profile pages built with Go, Echo,
// and templ. Each profile is a JSON document fetched from a data origin and
// rendered through one of several page templates; site.json lists the
// profiles and drives the shared navigation.
//
// Views are supplied through the ViewFuncs struct. Any field left nil falls
// back to the stock views in the views package.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/loader"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/profile"
	"github.com/eringen/folio/views"
)

// ViewFuncs holds the templ components the handlers render. This is the
// inversion-of-control mechanism that lets users own the markup.
type ViewFuncs struct {
	Layout       func(shell views.Shell, body templ.Component) templ.Component
	Profile      func(doc *profile.Document) templ.Component
	ProfileError func(msg string) templ.Component
	Page         func(title string, content templ.Component) templ.Component
	Contact      func(notice views.Notice, csrfToken string) templ.Component
	NotFound     func() templ.Component
	ServerError  func() templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.Layout == nil {
		v.Layout = views.Layout
	}
	if v.Profile == nil {
		v.Profile = views.Profile
	}
	if v.ProfileError == nil {
		v.ProfileError = views.ProfileError
	}
	if v.Page == nil {
		v.Page = views.Page
	}
	if v.Contact == nil {
		v.Contact = views.Contact
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = views.ServerError
	}
}

// App is the central folio application. It wires together the data client,
// the site config cache, handlers, middleware, and views.
type App struct {
	Config Config
	Echo   *echo.Echo
	Log    *zap.Logger
	Data   *loader.Client
	Site   *loader.SiteCache
	Pages  markdown.Pages
	Views  ViewFuncs

	contactLimiter *ContactLimiter
	relay          *ContactRelay
	customRoutes   []func(*App)
	staticDir      string
	pagesFS        fs.FS
	ready          bool
}

// New creates a folio App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	if a.Log == nil {
		a.Log = zap.NewNop()
	}
	if a.staticDir == "" {
		a.staticDir = a.Config.PublicDir
	}
	a.Views.setDefaults()
	return a
}

// Setup validates the configuration and builds the data client, caches,
// middleware, and routes. Start calls it; tests call it directly and drive
// a.Echo through httptest.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return errors.New("folio: SessionSecret is required")
	}

	client, err := loader.NewClient(loader.Options{
		DataURL:   a.Config.DataURL,
		PublicDir: a.Config.PublicDir,
		Timeout:   a.Config.FetchTimeout,
	})
	if err != nil {
		return fmt.Errorf("folio: init data client: %w", err)
	}
	a.Data = client
	a.Site = loader.NewSiteCache(client)

	pagesFS := a.pagesFS
	dir := "."
	if pagesFS == nil {
		pagesFS, dir = EmbeddedPages, "embedded/pages"
	}
	pages, err := markdown.LoadDir(pagesFS, dir)
	if err != nil {
		return fmt.Errorf("folio: load pages: %w", err)
	}
	a.Pages = pages

	a.contactLimiter = NewContactLimiter(5, time.Minute)
	a.relay = NewContactRelay(a.Config.ContactEndpoint, a.Config.ContactKey, a.Config.FetchTimeout)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the app up and serves HTTP until Shutdown is called.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Log.Info("listening", zap.String("addr", a.Config.Addr), zap.String("url", a.Config.URL))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	if a.Config.DataURL == "" {
		e.Static("/data", filepath.Join(a.Config.PublicDir, "data"))
	}
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/profiles/:slug/", a.handleProfile)
	e.GET("/about/", a.handleAbout)
	e.GET("/misc/:page/", a.handleMisc)
	e.GET("/contact/", a.handleContact)
	e.POST("/contact/", a.handleContactSubmit)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.contactLimiter != nil {
		a.contactLimiter.Close()
	}
	_ = a.Log.Sync()
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
