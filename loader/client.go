// Package loader fetches profile documents and the site configuration from
// the data origin and tracks the state of an in-flight profile load.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gojektech/heimdall/v6/httpclient"

	"github.com/eringen/folio/profile"
)

var (
	// ErrNoSlug is returned when a profile is requested without a slug.
	ErrNoSlug = errors.New("loader: no profile specified")
	// ErrNotFound is returned when the data origin answers with a non-2xx status.
	ErrNotFound = errors.New("loader: not found")
	// ErrUnavailable covers transport and decode failures.
	ErrUnavailable = errors.New("loader: unavailable")
)

// DefaultTimeout bounds a single fetch when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Options selects the data origin. With an empty DataURL, documents are read
// from PublicDir through a file transport using the same request paths a
// remote origin would serve.
type Options struct {
	DataURL   string
	PublicDir string
	Timeout   time.Duration
}

// Client performs the GETs against the data origin. It never retries.
type Client struct {
	base *url.URL
	http *httpclient.Client
}

// NewClient builds a Client for the given origin.
func NewClient(opts Options) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	hc := &http.Client{Timeout: opts.Timeout}
	base := opts.DataURL
	if base == "" {
		dir := opts.PublicDir
		if dir == "" {
			dir = "public"
		}
		hc.Transport = http.NewFileTransport(http.Dir(dir))
		base = "file:///"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("loader: parse data url %q: %w", base, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &Client{
		base: u,
		http: httpclient.NewClient(
			httpclient.WithHTTPClient(hc),
			httpclient.WithRetryCount(0),
		),
	}, nil
}

// ProfileURL is the location of the document for slug.
func (c *Client) ProfileURL(slug string) string {
	return c.resolve("data/profiles/" + url.PathEscape(slug) + ".json")
}

func (c *Client) resolve(rel string) string {
	ref, err := url.Parse(rel)
	if err != nil {
		return c.base.String() + rel
	}
	return c.base.ResolveReference(ref).String()
}

// FetchProfile GETs and decodes the document for slug.
func (c *Client) FetchProfile(ctx context.Context, slug string) (*profile.Document, error) {
	if slug == "" {
		return nil, ErrNoSlug
	}
	if !validSlug(slug) {
		return nil, fmt.Errorf("%w: invalid slug %q", ErrNotFound, slug)
	}
	body, err := c.get(ctx, c.ProfileURL(slug))
	if err != nil {
		return nil, err
	}
	doc, err := profile.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, slug, err)
	}
	return doc, nil
}

// FetchSite GETs and decodes site.json.
func (c *Client) FetchSite(ctx context.Context) (*profile.SiteConfig, error) {
	body, err := c.get(ctx, c.resolve("data/site.json"))
	if err != nil {
		return nil, err
	}
	cfg, err := profile.DecodeSite(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return cfg, nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrUnavailable, target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrNotFound, target, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, target, err)
	}
	return body, nil
}

// validSlug rejects slugs that could name anything other than a file directly
// inside the profiles directory.
func validSlug(slug string) bool {
	return !strings.ContainsAny(slug, `/\`) && !strings.HasPrefix(slug, ".")
}

