// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package queries defines the named warehouse operations the dashboard runs:
// card search, per-card price history, and the launch-window aggregate.
// Each operation maps its parameters to a deterministic cache key and a
// parameterized SQL string, then goes through the result cache. The heavy
// lifting (fuzzy ranking, aggregation) lives warehouse-side in the mtg
// schema's table functions and views; this package only invokes them.
package queries

import (
	"context"
	"strings"

	"github.com/applewjr/mtg-price-tracker/internal/cache"
	"github.com/applewjr/mtg-price-tracker/internal/warehouse"
)

// Warehouse-side entry points. Parameters are always bound, never spliced
// into the SQL text.
const (
	sqlSearchCards      = "SELECT * FROM mtg.get_card_id($1, $2) LIMIT $3"
	sqlCardPrices       = "SELECT * FROM mtg.get_card_prices($1)"
	sqlPriceAfterLaunch = "SELECT * FROM mtg.price_after_launch"
)

// Executor runs one parameterized query against a fresh warehouse session.
type Executor interface {
	Execute(ctx context.Context, sql string, args ...any) (*warehouse.Result, error)
}

// SessionProvider matches warehouse.Provider's acquisition contract.
type SessionProvider interface {
	Acquire(ctx context.Context) (*warehouse.Session, warehouse.Provenance, error)
}

// sessionExecutor acquires a fresh session per query and closes it after.
// Sessions are deliberately not reused across operations: a stale pooled
// connection would outlive its usefulness between render passes.
type sessionExecutor struct {
	provider SessionProvider
}

// NewSessionExecutor wraps a session provider as an Executor.
func NewSessionExecutor(p SessionProvider) Executor {
	return &sessionExecutor{provider: p}
}

func (e *sessionExecutor) Execute(ctx context.Context, sql string, args ...any) (*warehouse.Result, error) {
	session, _, err := e.provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return session.Query(ctx, sql, args...)
}

// Client exposes the three dashboard operations over an executor and a
// shared result cache. Operations are mutually independent: a failure in one
// never blocks the others within a render pass.
type Client struct {
	exec        Executor
	cache       *cache.Cache
	searchLimit int
}

// New creates a query client. searchLimit caps card search rows; values
// below one fall back to 1000 as in the full dashboard.
func New(exec Executor, c *cache.Cache, searchLimit int) *Client {
	if searchLimit < 1 {
		searchLimit = 1000
	}
	return &Client{exec: exec, cache: c, searchLimit: searchLimit}
}

// SearchCards runs the warehouse fuzzy card search for a name fragment and a
// set fragment. Inputs are lower-cased here so the cache key is identical
// regardless of the caller's casing. An empty result means no matches, not
// an error. The bool reports whether the result came from the cache.
func (c *Client) SearchCards(ctx context.Context, nameFragment, setFragment string) (*warehouse.Result, bool, error) {
	name := strings.ToLower(strings.TrimSpace(nameFragment))
	set := strings.ToLower(strings.TrimSpace(setFragment))

	key := cache.Key("search_cards", name, set)
	return c.cache.GetOrFetch(key, cache.DefaultTTL, func() (*warehouse.Result, error) {
		return c.exec.Execute(ctx, sqlSearchCards, name, set, c.searchLimit)
	})
}

// CardPrices returns the price history for one card: a row per pull date
// with nullable regular and foil USD prices.
func (c *Client) CardPrices(ctx context.Context, cardID string) (*warehouse.Result, bool, error) {
	id := strings.TrimSpace(cardID)

	key := cache.Key("card_prices", id)
	return c.cache.GetOrFetch(key, cache.DefaultTTL, func() (*warehouse.Result, error) {
		return c.exec.Execute(ctx, sqlCardPrices, id)
	})
}

// PriceAfterLaunch returns average mythic/rare prices by set and day offset
// from launch over the first 300 days. The operation takes no parameters,
// so it owns a single cache key for the life of the process.
func (c *Client) PriceAfterLaunch(ctx context.Context) (*warehouse.Result, bool, error) {
	key := cache.Key("price_after_launch")
	return c.cache.GetOrFetch(key, cache.DefaultTTL, func() (*warehouse.Result, error) {
		return c.exec.Execute(ctx, sqlPriceAfterLaunch)
	})
}

// ClearCache empties the shared result cache; every subsequent operation
// call refetches.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// CacheSize reports how many results are currently cached.
func (c *Client) CacheSize() int {
	return c.cache.Len()
}
