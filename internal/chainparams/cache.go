// Copyright (c) 2026 dotandev
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chainparams

import (
	"context"
	"sync"
	"time"

	"github.com/dotandev/tronfee/internal/logger"
	"github.com/dotandev/tronfee/internal/tron"
)

// DefaultMaintenanceInterval is assumed when the parameter list does not
// report its own maintenance cadence.
const DefaultMaintenanceInterval = 6 * time.Hour

// FetchFunc fetches the full parameter list for one scope.
type FetchFunc func(ctx context.Context) ([]tron.ChainParameter, error)

// NextMaintenanceBoundary returns the first maintenance boundary strictly
// after now. Landing exactly on a boundary advances to the next one, so a
// value cached at the boundary instant never gets a zero TTL.
func NextMaintenanceBoundary(now time.Time, interval time.Duration) time.Time {
	if interval <= 0 {
		interval = DefaultMaintenanceInterval
	}
	ms := interval.Milliseconds()
	n := now.UnixMilli() / ms
	return time.UnixMilli((n + 1) * ms)
}

type entry struct {
	mu        sync.Mutex
	params    []tron.ChainParameter
	expiresAt time.Time
}

// Cache memoizes chain parameters per scope (network), expiring each entry at
// the ledger's next maintenance boundary. Prices can only change at those
// boundaries, so a cached list is valid for the whole window.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewCache creates an empty parameter cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (c *Cache) entryFor(scope string) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[scope]
	if !ok {
		e = &entry{}
		c.entries[scope] = e
	}
	return e
}

// Get returns the cached parameter list for scope, refreshing it via fetch
// when the current maintenance window has passed. Refreshes are serialized
// per scope: concurrent callers during a pending refresh wait for the first
// one instead of each hitting the node. A failed fetch propagates to the
// caller and caches nothing.
func (c *Cache) Get(ctx context.Context, scope string, fetch FetchFunc) ([]tron.ChainParameter, error) {
	e := c.entryFor(scope)

	e.mu.Lock()
	defer e.mu.Unlock()

	now := c.now()
	if e.params != nil && now.Before(e.expiresAt) {
		logger.Logger.Debug("Chain parameters served from cache",
			"scope", scope, "expires_at", e.expiresAt)
		return e.params, nil
	}

	params, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	interval := DefaultMaintenanceInterval
	if v, ok := tron.FindParameter(params, tron.ParamMaintenanceInterval); ok && v > 0 {
		interval = time.Duration(v) * time.Millisecond
	}

	e.params = params
	e.expiresAt = NextMaintenanceBoundary(now, interval)

	logger.Logger.Info("Chain parameters refreshed",
		"scope", scope,
		"count", len(params),
		"maintenance_interval", interval,
		"expires_at", e.expiresAt,
	)

	return params, nil
}

// Expiry returns the expiry of the cached entry for scope, if any.
func (c *Cache) Expiry(scope string) (time.Time, bool) {
	c.mu.Lock()
	e, ok := c.entries[scope]
	c.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.params == nil {
		return time.Time{}, false
	}
	return e.expiresAt, true
}

// Invalidate drops the cached entry for scope.
func (c *Cache) Invalidate(scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, scope)
}
