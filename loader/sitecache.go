package loader

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/eringen/folio/profile"
)

// SiteFetcher retrieves the site configuration.
type SiteFetcher interface {
	FetchSite(ctx context.Context) (*profile.SiteConfig, error)
}

// SiteCache holds the site configuration after its first successful load.
// Concurrent first calls share one fetch; failures are not cached.
type SiteCache struct {
	fetch SiteFetcher
	group singleflight.Group

	mu   sync.RWMutex
	site *profile.SiteConfig
}

// NewSiteCache creates an empty SiteCache backed by fetch.
func NewSiteCache(fetch SiteFetcher) *SiteCache {
	return &SiteCache{fetch: fetch}
}

func (c *SiteCache) cached() *profile.SiteConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.site
}

// Get returns the cached site configuration, loading it on first use.
func (c *SiteCache) Get(ctx context.Context) (*profile.SiteConfig, error) {
	if site := c.cached(); site != nil {
		return site, nil
	}
	// Detached so one caller going away does not fail the others.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do("site", func() (any, error) {
		if site := c.cached(); site != nil {
			return site, nil
		}
		site, err := c.fetch.FetchSite(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.site = site
		c.mu.Unlock()
		return site, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*profile.SiteConfig), nil
}

// Reset clears the cache so the next Get fetches again.
func (c *SiteCache) Reset() {
	c.mu.Lock()
	c.site = nil
	c.mu.Unlock()
}
