package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/profile"
)

type countingSiteFetcher struct {
	calls atomic.Int32
	gate  chan struct{}
	fail  atomic.Bool
}

func (f *countingSiteFetcher) FetchSite(ctx context.Context) (*profile.SiteConfig, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.fail.Load() {
		return nil, errors.New("origin down")
	}
	return &profile.SiteConfig{FamilyName: "Ngo"}, nil
}

func TestSiteCacheFetchesOnceConcurrently(t *testing.T) {
	f := &countingSiteFetcher{gate: make(chan struct{})}
	c := NewSiteCache(f)

	const callers = 8
	var wg sync.WaitGroup
	got := make([]*profile.SiteConfig, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			site, err := c.Get(context.Background())
			assert.NoError(t, err)
			got[i] = site
		}(i)
	}
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	close(f.gate)
	wg.Wait()

	assert.EqualValues(t, 1, f.calls.Load())
	for _, site := range got {
		assert.Same(t, got[0], site)
	}

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.calls.Load(), "a cached config must not be fetched again")
}

func TestSiteCacheDoesNotCacheFailure(t *testing.T) {
	f := &countingSiteFetcher{}
	f.fail.Store(true)
	c := NewSiteCache(f)

	_, err := c.Get(context.Background())
	require.Error(t, err)

	f.fail.Store(false)
	site, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ngo", site.FamilyName)
	assert.EqualValues(t, 2, f.calls.Load())
}

func TestSiteCacheReset(t *testing.T) {
	f := &countingSiteFetcher{}
	c := NewSiteCache(f)

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	c.Reset()
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, f.calls.Load())
}

func TestSiteCacheSurvivesCanceledCaller(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &siteFetcherFunc{fn: func(ctx context.Context) (*profile.SiteConfig, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &profile.SiteConfig{FamilyName: "Ngo"}, nil
	}}
	site, err := NewSiteCache(f).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ngo", site.FamilyName)
}

type siteFetcherFunc struct {
	fn func(ctx context.Context) (*profile.SiteConfig, error)
}

func (f *siteFetcherFunc) FetchSite(ctx context.Context) (*profile.SiteConfig, error) {
	return f.fn(ctx)
}
