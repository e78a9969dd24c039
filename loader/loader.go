package loader

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/eringen/folio/profile"
)

// User-facing messages of a failed load.
const (
	MsgNoSlug      = "No profile specified."
	MsgNotFound    = "Profile not found."
	MsgUnavailable = "Failed to load profile. Please try refreshing the page."
)

// Fetcher retrieves one profile document by slug.
type Fetcher interface {
	FetchProfile(ctx context.Context, slug string) (*profile.Document, error)
}

// State is the observable result of a load. Exactly one of Data, Loading or
// Error is set once a load has been requested. Reason carries the sentinel
// matching Error.
type State struct {
	Data    *profile.Document
	Loading bool
	Error   string
	Reason  error
}

// Loader tracks the most recently requested profile. Requesting a new slug
// cancels the previous fetch, and a result that arrives for a superseded
// request is discarded.
type Loader struct {
	fetch Fetcher
	log   *zap.Logger

	mu      sync.Mutex
	gen     uint64
	state   State
	cancel  context.CancelFunc
	settled chan struct{}
	pending bool
}

// New returns an idle Loader.
func New(fetch Fetcher, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	settled := make(chan struct{})
	close(settled)
	return &Loader{fetch: fetch, log: log, settled: settled}
}

// Request starts loading slug and returns immediately. An empty slug settles
// at once without a fetch.
func (l *Loader) Request(ctx context.Context, slug string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.supersede()
	gen := l.gen

	if slug == "" {
		l.state = State{Error: MsgNoSlug, Reason: ErrNoSlug}
		close(l.settled)
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.pending = true
	l.state = State{Loading: true}
	go l.run(ctx, gen, slug)
}

// supersede retires the current request. Callers hold l.mu.
func (l *Loader) supersede() {
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if l.pending {
		close(l.settled)
		l.pending = false
	}
	l.settled = make(chan struct{})
}

func (l *Loader) run(ctx context.Context, gen uint64, slug string) {
	doc, err := l.fetch.FetchProfile(ctx, slug)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		l.log.Debug("discarding superseded profile load", zap.String("slug", slug))
		return
	}
	l.state = l.settle(slug, doc, err)
	l.cancel()
	l.cancel = nil
	l.pending = false
	close(l.settled)
}

func (l *Loader) settle(slug string, doc *profile.Document, err error) State {
	switch {
	case err == nil:
		return State{Data: doc}
	case errors.Is(err, ErrNoSlug):
		return State{Error: MsgNoSlug, Reason: ErrNoSlug}
	case errors.Is(err, ErrNotFound):
		l.log.Info("profile not found", zap.String("slug", slug), zap.Error(err))
		return State{Error: MsgNotFound, Reason: ErrNotFound}
	default:
		l.log.Warn("profile load failed", zap.String("slug", slug), zap.Error(err))
		return State{Error: MsgUnavailable, Reason: ErrUnavailable}
	}
}

// Wait blocks until the latest request settles or ctx is done, then returns
// the current state. A request made while waiting extends the wait.
func (l *Loader) Wait(ctx context.Context) State {
	for {
		l.mu.Lock()
		ch := l.settled
		l.mu.Unlock()

		select {
		case <-ch:
			l.mu.Lock()
			if l.settled == ch {
				st := l.state
				l.mu.Unlock()
				return st
			}
			l.mu.Unlock()
		case <-ctx.Done():
			return l.State()
		}
	}
}

// Load requests slug and waits for it to settle.
func (l *Loader) Load(ctx context.Context, slug string) State {
	l.Request(ctx, slug)
	return l.Wait(ctx)
}

// State returns a snapshot of the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Close cancels any in-flight fetch and discards its result.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.supersede()
	l.state.Loading = false
	close(l.settled)
}
