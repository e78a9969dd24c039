package folio

import (
	"io/fs"
	"time"

	"go.uber.org/zap"
)

// DefaultContactEndpoint is the form relay used when none is configured.
const DefaultContactEndpoint = "https://api.web3forms.com/submit"

// Config holds all configuration for a folio site.
type Config struct {
	Name        string `mapstructure:"name"`        // Site name used when site.json has no familyName
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags

	Addr      string `mapstructure:"addr"`       // Listen address (default ":3000")
	PublicDir string `mapstructure:"public_dir"` // Static assets and local data (default "public")

	DataURL      string        `mapstructure:"data_url"`      // Remote data origin; empty serves PublicDir/data
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"` // Per-fetch timeout (default 10s)

	ContactKey      string `mapstructure:"contact_key"`      // Form relay access key; empty disables the relay
	ContactEndpoint string `mapstructure:"contact_endpoint"` // Form relay URL (default web3forms)

	SessionSecret string `mapstructure:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Personal Site"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PublicDir == "" {
		c.PublicDir = "public"
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.ContactEndpoint == "" {
		c.ContactEndpoint = DefaultContactEndpoint
	}
}

// Option configures optional App settings.
type Option func(*App)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(a *App) {
		a.Log = log
	}
}

// WithViews overrides the default views. Nil fields keep their defaults.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithCustomRoutes registers a function that adds custom routes to the app.
// Called after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory served under /public (default: PublicDir).
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithPages replaces the embedded informational pages with the *.md files
// at the root of fsys.
func WithPages(fsys fs.FS) Option {
	return func(a *App) {
		a.pagesFS = fsys
	}
}
