// Package cache holds read-mostly snapshots that are reloaded on a TTL and swapped atomically.
package cache

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Invalidator defines a cache invalidation contract.
type Invalidator interface {
	Invalidate(ctx context.Context, key string) error
}

// NoopInvalidator is a no-op implementation.
type NoopInvalidator struct{}

// Invalidate performs no action.
func (NoopInvalidator) Invalidate(context.Context, string) error { return nil }

// Loader produces a complete value for a snapshot.
type Loader[T any] func(ctx context.Context) (T, error)

// LoadHook observes every completed load.
type LoadHook func(loadedAt time.Time, err error)

type entry[T any] struct {
	value      T
	loadedAt   time.Time
	generation uint64
}

// Snapshot serves a value that is reloaded once it is older than the TTL or
// has been invalidated. Readers always see a complete value: reloads build a
// new entry off to the side and publish it with a pointer swap. While a stale
// value is being refreshed, readers keep receiving it. Only a cold snapshot
// makes a reader wait.
type Snapshot[T any] struct {
	load        Loader[T]
	ttl         time.Duration
	loadTimeout time.Duration
	now         func() time.Time
	hook        LoadHook

	current    atomic.Pointer[entry[T]]
	generation atomic.Uint64
	refreshing atomic.Bool
	group      singleflight.Group
}

// Option configures a Snapshot.
type Option func(*options)

type options struct {
	loadTimeout time.Duration
	now         func() time.Time
	hook        LoadHook
}

// WithLoadTimeout bounds each reload. Reloads are detached from the caller's context.
func WithLoadTimeout(d time.Duration) Option {
	return func(o *options) { o.loadTimeout = d }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLoadHook registers a callback invoked after each load attempt.
func WithLoadHook(h LoadHook) Option {
	return func(o *options) { o.hook = h }
}

// New constructs a Snapshot. The first Get performs the initial load.
func New[T any](load Loader[T], ttl time.Duration, opts ...Option) *Snapshot[T] {
	o := options{loadTimeout: 30 * time.Second, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Snapshot[T]{
		load:        load,
		ttl:         ttl,
		loadTimeout: o.loadTimeout,
		now:         o.now,
		hook:        o.hook,
	}
}

// Get returns the current value. A stale value is returned as-is while a
// single background reload replaces it.
func (s *Snapshot[T]) Get(ctx context.Context) (T, error) {
	cur := s.current.Load()
	if cur == nil {
		return s.Refresh(ctx)
	}
	if s.stale(cur) {
		s.refreshInBackground()
	}
	return cur.value, nil
}

// Refresh reloads the value and waits for the result. Concurrent refreshes share one load.
func (s *Snapshot[T]) Refresh(ctx context.Context) (T, error) {
	ch := s.group.DoChan("snapshot", func() (any, error) {
		return s.reload()
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(*entry[T]).value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Invalidate marks the current value stale. The key is ignored because the
// whole snapshot is reloaded.
func (s *Snapshot[T]) Invalidate(context.Context, string) error {
	s.generation.Add(1)
	return nil
}

// LoadedAt reports when the current value was loaded, zero if never.
func (s *Snapshot[T]) LoadedAt() time.Time {
	if cur := s.current.Load(); cur != nil {
		return cur.loadedAt
	}
	return time.Time{}
}

func (s *Snapshot[T]) stale(e *entry[T]) bool {
	if e.generation < s.generation.Load() {
		return true
	}
	return s.ttl > 0 && s.now().Sub(e.loadedAt) >= s.ttl
}

func (s *Snapshot[T]) refreshInBackground() {
	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer s.refreshing.Store(false)
		_, _, _ = s.group.Do("snapshot", func() (any, error) {
			return s.reload()
		})
	}()
}

func (s *Snapshot[T]) reload() (*entry[T], error) {
	gen := s.generation.Load()
	ctx, cancel := context.WithTimeout(context.Background(), s.loadTimeout)
	defer cancel()

	value, err := s.load(ctx)
	now := s.now()
	if s.hook != nil {
		s.hook(now, err)
	}
	if err != nil {
		return nil, err
	}
	e := &entry[T]{value: value, loadedAt: now, generation: gen}
	s.current.Store(e)
	return e, nil
}
