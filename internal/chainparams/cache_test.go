// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package chainparams

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dotandev/tronfee/internal/tron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextMaintenanceBoundary(t *testing.T) {
	interval := 6 * time.Hour

	tests := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "mid-window advances to next boundary",
			now:      time.UnixMilli(interval.Milliseconds()*4 + 1000),
			expected: time.UnixMilli(interval.Milliseconds() * 5),
		},
		{
			name:     "exactly on a boundary advances to the next one",
			now:      time.UnixMilli(interval.Milliseconds() * 4),
			expected: time.UnixMilli(interval.Milliseconds() * 5),
		},
		{
			name:     "one millisecond before boundary",
			now:      time.UnixMilli(interval.Milliseconds()*5 - 1),
			expected: time.UnixMilli(interval.Milliseconds() * 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextMaintenanceBoundary(tt.now, interval)
			assert.True(t, got.After(tt.now), "boundary must be strictly after now")
			assert.Equal(t, tt.expected.UnixMilli(), got.UnixMilli())
		})
	}
}

func TestNextMaintenanceBoundaryDefaultsInterval(t *testing.T) {
	now := time.UnixMilli(1000)
	got := NextMaintenanceBoundary(now, 0)
	assert.Equal(t, DefaultMaintenanceInterval.Milliseconds(), got.UnixMilli())
}

func testParams(interval int64) []tron.ChainParameter {
	return []tron.ChainParameter{
		{Key: tron.ParamEnergyPrice, Value: 420},
		{Key: tron.ParamMaintenanceInterval, Value: interval},
	}
}

func TestCacheServesFromCacheWithinWindow(t *testing.T) {
	cache := NewCache()
	now := time.UnixMilli(10_000)
	cache.now = func() time.Time { return now }

	fetches := 0
	fetch := func(ctx context.Context) ([]tron.ChainParameter, error) {
		fetches++
		return testParams(3_600_000), nil
	}

	first, err := cache.Get(context.Background(), "mainnet", fetch)
	require.NoError(t, err)

	// Move close to, but not past, the next boundary (3 600 000 ms).
	now = time.UnixMilli(3_599_999)
	second, err := cache.Get(context.Background(), "mainnet", fetch)
	require.NoError(t, err)

	assert.Equal(t, 1, fetches, "second call within the window must not refetch")
	assert.Equal(t, first, second)
}

func TestCacheRefreshesAfterBoundary(t *testing.T) {
	cache := NewCache()
	now := time.UnixMilli(10_000)
	cache.now = func() time.Time { return now }

	fetches := 0
	fetch := func(ctx context.Context) ([]tron.ChainParameter, error) {
		fetches++
		return testParams(3_600_000), nil
	}

	_, err := cache.Get(context.Background(), "mainnet", fetch)
	require.NoError(t, err)

	// Cross exactly one boundary: exactly one refresh.
	now = time.UnixMilli(3_600_000)
	_, err = cache.Get(context.Background(), "mainnet", fetch)
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), "mainnet", fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, fetches)
}

func TestCacheFailedFetchIsNotCached(t *testing.T) {
	cache := NewCache()

	calls := 0
	failing := func(ctx context.Context) ([]tron.ChainParameter, error) {
		calls++
		if calls == 1 {
			return nil, fmt.Errorf("node unreachable")
		}
		return testParams(3_600_000), nil
	}

	_, err := cache.Get(context.Background(), "mainnet", failing)
	require.Error(t, err)

	// The failure must not have poisoned the cache.
	params, err := cache.Get(context.Background(), "mainnet", failing)
	require.NoError(t, err)
	assert.Len(t, params, 2)
	assert.Equal(t, 2, calls)
}

func TestCacheIsScopedPerNetwork(t *testing.T) {
	cache := NewCache()

	fetches := map[string]int{}
	fetchFor := func(scope string) FetchFunc {
		return func(ctx context.Context) ([]tron.ChainParameter, error) {
			fetches[scope]++
			return testParams(3_600_000), nil
		}
	}

	_, err := cache.Get(context.Background(), "mainnet", fetchFor("mainnet"))
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), "nile", fetchFor("nile"))
	require.NoError(t, err)

	assert.Equal(t, 1, fetches["mainnet"])
	assert.Equal(t, 1, fetches["nile"])
}

func TestCacheSerializesRefreshPerScope(t *testing.T) {
	cache := NewCache()
	cache.now = func() time.Time { return time.UnixMilli(10_000) }

	var mu sync.Mutex
	fetches := 0
	slow := func(ctx context.Context) ([]tron.ChainParameter, error) {
		mu.Lock()
		fetches++
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		return testParams(3_600_000), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(context.Background(), "mainnet", slow)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fetches, "concurrent callers must share one refresh")
}

func TestCacheExpiryAndInvalidate(t *testing.T) {
	cache := NewCache()

	_, ok := cache.Expiry("mainnet")
	assert.False(t, ok)

	_, err := cache.Get(context.Background(), "mainnet", func(ctx context.Context) ([]tron.ChainParameter, error) {
		return testParams(3_600_000), nil
	})
	require.NoError(t, err)

	expiry, ok := cache.Expiry("mainnet")
	require.True(t, ok)
	assert.True(t, expiry.After(time.Now().Add(-time.Second)))

	cache.Invalidate("mainnet")
	_, ok = cache.Expiry("mainnet")
	assert.False(t, ok)
}
