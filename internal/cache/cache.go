// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cache provides a process-memory, time-to-live keyed cache for
// warehouse query results. Entries live only in RAM and are gone when the
// process exits. Expiry is lazy: staleness is checked when an entry is read,
// never by a background timer.
package cache

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/applewjr/mtg-price-tracker/internal/logging"
	"github.com/applewjr/mtg-price-tracker/internal/warehouse"
)

// DefaultTTL is the uniform policy TTL for every operation kind. Warehouse
// prices update once per day, so a day of staleness is acceptable everywhere.
const DefaultTTL = 24 * time.Hour

// FetchFunc produces a fresh result for a cache miss.
type FetchFunc func() (*warehouse.Result, error)

type entry struct {
	result   *warehouse.Result
	storedAt time.Time
}

// Cache maps deterministic keys to previously fetched results. It is an
// explicit object rather than a package singleton so tests and render loops
// can own independent instances.
//
// The CLI drives it from a single goroutine per render pass, but the mutex
// keeps read/insert/clear safe should a host ever share it across
// goroutines.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// New returns an empty cache using the wall clock.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// GetOrFetch returns the cached result for key when present and younger than
// ttl. Otherwise it invokes fetch, stores the fresh result, and returns it.
// Fetch failures propagate unchanged and cache nothing; there is no negative
// caching of errors. The second return reports whether this was a hit.
func (c *Cache) GetOrFetch(key string, ttl time.Duration, fetch FetchFunc) (*warehouse.Result, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	now := c.now()
	c.mu.RUnlock()

	if ok && now.Sub(e.storedAt) < ttl {
		logging.Debug().Str("key", key).Msg("cache hit")
		return e.result, true, nil
	}

	logging.Debug().Str("key", key).Bool("expired", ok).Msg("cache miss")
	result, err := fetch()
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	c.entries[key] = entry{result: result, storedAt: c.now()}
	c.mu.Unlock()

	return result, false, nil
}

// Clear removes every entry regardless of key or age.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	logging.Debug().Msg("cache cleared")
}

// Len returns the number of stored entries, expired ones included (expiry is
// only evaluated at read time).
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Key derives a deterministic cache key from an operation name and its
// ordered parameters. Identical inputs always map to the same key; params
// are quoted so distinct parameter lists can never collide.
func Key(op string, params ...string) string {
	if len(params) == 0 {
		return op + "()"
	}
	quoted := make([]string, len(params))
	for i, p := range params {
		quoted[i] = strconv.Quote(p)
	}
	return op + "(" + strings.Join(quoted, ",") + ")"
}
