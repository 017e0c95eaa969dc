package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func counting(values ...int) (Loader[int], *atomic.Int32) {
	var calls atomic.Int32
	return func(ctx context.Context) (int, error) {
		n := int(calls.Add(1))
		if n > len(values) {
			return values[len(values)-1], nil
		}
		return values[n-1], nil
	}, &calls
}

func TestSnapshotColdLoad(t *testing.T) {
	load, calls := counting(7)
	s := New(load, time.Minute)

	v, err := s.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, v)

	v, err = s.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.Equal(t, int32(1), calls.Load())
	require.False(t, s.LoadedAt().IsZero())
}

func TestSnapshotServesStaleWhileRefreshing(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	load, calls := counting(1, 2)
	s := New(load, time.Minute, WithClock(clock.Now))

	v, err := s.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, v)

	clock.Advance(2 * time.Minute)
	v, err = s.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, v, "stale value is served while reloading")

	require.Eventually(t, func() bool {
		v, _ := s.Get(context.Background())
		return v == 2
	}, time.Second, time.Millisecond)
	require.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestSnapshotInvalidateTriggersReload(t *testing.T) {
	load, _ := counting(1, 2)
	s := New(load, time.Hour)

	_, err := s.Get(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Invalidate(context.Background(), "item"))

	require.Eventually(t, func() bool {
		v, _ := s.Get(context.Background())
		return v == 2
	}, time.Second, time.Millisecond)
}

func TestSnapshotKeepsLastGoodValueOnFailure(t *testing.T) {
	var fail atomic.Bool
	var hookErrs atomic.Int32
	s := New(func(ctx context.Context) (string, error) {
		if fail.Load() {
			return "", errors.New("store down")
		}
		return "good", nil
	}, time.Hour, WithLoadHook(func(_ time.Time, err error) {
		if err != nil {
			hookErrs.Add(1)
		}
	}))

	v, err := s.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "good", v)

	fail.Store(true)
	_, err = s.Refresh(context.Background())
	require.Error(t, err)
	require.Equal(t, int32(1), hookErrs.Load())

	v, err = s.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "good", v)
}

func TestSnapshotColdFailureSurfaces(t *testing.T) {
	s := New(func(ctx context.Context) (int, error) {
		return 0, errors.New("nope")
	}, time.Minute)

	_, err := s.Get(context.Background())
	require.ErrorContains(t, err, "nope")
	require.True(t, s.LoadedAt().IsZero())
}

func TestSnapshotConcurrentColdReadsShareOneLoad(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	s := New(func(ctx context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}, time.Minute)

	var wg sync.WaitGroup
	results := make([]int, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := s.Get(context.Background())
			if err == nil {
				results[i] = v
			}
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		require.Equal(t, 42, v)
	}
}

func TestSnapshotRefreshHonoursCallerContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	s := New(func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	}, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := s.Get(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNoopInvalidator(t *testing.T) {
	require.NoError(t, NoopInvalidator{}.Invalidate(context.Background(), "k"))
}
