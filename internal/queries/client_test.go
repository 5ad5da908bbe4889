// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package queries

import (
	"context"
	"testing"

	"github.com/applewjr/mtg-price-tracker/internal/cache"
	apperrors "github.com/applewjr/mtg-price-tracker/internal/errors"
	"github.com/applewjr/mtg-price-tracker/internal/warehouse"
)

// fakeExecutor records every Execute call and serves canned responses.
type fakeExecutor struct {
	calls []fakeCall
	fail  error
}

type fakeCall struct {
	sql  string
	args []any
}

func (f *fakeExecutor) Execute(_ context.Context, sql string, args ...any) (*warehouse.Result, error) {
	f.calls = append(f.calls, fakeCall{sql: sql, args: args})
	if f.fail != nil {
		return nil, f.fail
	}
	return &warehouse.Result{
		Columns: []string{"id", "name"},
		Rows:    [][]any{{"ecc1027a", "Vivi Ornitier"}},
	}, nil
}

func newTestClient(exec Executor) *Client {
	return New(exec, cache.New(), 1000)
}

func TestSearchCardsCachesSecondCall(t *testing.T) {
	exec := &fakeExecutor{}
	client := newTestClient(exec)

	for i := 0; i < 2; i++ {
		res, hit, err := client.SearchCards(context.Background(), "vivi", "final fantasy")
		if err != nil {
			t.Fatalf("SearchCards() error = %v", err)
		}
		if res.Empty() {
			t.Fatal("SearchCards() returned empty result")
		}
		if want := i == 1; hit != want {
			t.Errorf("call %d: hit = %v, want %v", i, hit, want)
		}
	}

	if len(exec.calls) != 1 {
		t.Errorf("executor calls = %d, want 1 (second call is a cache hit)", len(exec.calls))
	}
}

func TestSearchCardsCaseInsensitiveKeys(t *testing.T) {
	exec := &fakeExecutor{}
	client := newTestClient(exec)

	if _, _, err := client.SearchCards(context.Background(), "VIVI", "FINAL"); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := client.SearchCards(context.Background(), "vivi", "final"); err != nil {
		t.Fatal(err)
	} else if !hit {
		t.Error("lower-cased repeat should be a cache hit")
	}

	if len(exec.calls) != 1 {
		t.Errorf("executor calls = %d, want 1 (casing must share a cache entry)", len(exec.calls))
	}
	// The warehouse sees the lower-cased fragments.
	if got := exec.calls[0].args[0]; got != "vivi" {
		t.Errorf("bound name fragment = %v, want vivi", got)
	}
	if got := exec.calls[0].args[1]; got != "final" {
		t.Errorf("bound set fragment = %v, want final", got)
	}
}

func TestSearchCardsBindsLimit(t *testing.T) {
	exec := &fakeExecutor{}
	client := New(exec, cache.New(), 100)

	if _, _, err := client.SearchCards(context.Background(), "vaan", "final"); err != nil {
		t.Fatal(err)
	}
	if got := exec.calls[0].args[2]; got != 100 {
		t.Errorf("bound limit = %v, want 100", got)
	}
}

func TestDistinctParamsAreDistinctEntries(t *testing.T) {
	exec := &fakeExecutor{}
	client := newTestClient(exec)

	if _, _, err := client.SearchCards(context.Background(), "vivi", "final"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := client.SearchCards(context.Background(), "vaan", "final"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := client.CardPrices(context.Background(), "abc"); err != nil {
		t.Fatal(err)
	}

	if len(exec.calls) != 3 {
		t.Errorf("executor calls = %d, want 3 (no false sharing)", len(exec.calls))
	}
	if client.CacheSize() != 3 {
		t.Errorf("CacheSize() = %d, want 3", client.CacheSize())
	}
}

func TestClearCacheForcesRefetch(t *testing.T) {
	exec := &fakeExecutor{}
	client := newTestClient(exec)

	if _, _, err := client.CardPrices(context.Background(), "abc"); err != nil {
		t.Fatal(err)
	}
	client.ClearCache()
	if client.CacheSize() != 0 {
		t.Errorf("CacheSize() after clear = %d, want 0", client.CacheSize())
	}
	if _, _, err := client.CardPrices(context.Background(), "abc"); err != nil {
		t.Fatal(err)
	}

	if len(exec.calls) != 2 {
		t.Errorf("executor calls = %d, want 2 after clear", len(exec.calls))
	}
}

func TestPriceAfterLaunchSingleEntry(t *testing.T) {
	exec := &fakeExecutor{}
	client := newTestClient(exec)

	for i := 0; i < 5; i++ {
		if _, _, err := client.PriceAfterLaunch(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	if len(exec.calls) != 1 {
		t.Errorf("executor calls = %d, want 1", len(exec.calls))
	}
	if client.CacheSize() != 1 {
		t.Errorf("CacheSize() = %d, want 1 across repeated calls", client.CacheSize())
	}
}

func TestQueryFailurePropagatesUncached(t *testing.T) {
	exec := &fakeExecutor{fail: apperrors.New(apperrors.QueryFailed, "function does not exist")}
	client := newTestClient(exec)

	_, _, err := client.SearchCards(context.Background(), "vivi", "final")
	if err == nil {
		t.Fatal("SearchCards() expected error")
	}
	if !apperrors.Is(err, apperrors.QueryFailed) {
		t.Errorf("error kind = %q, want %q", apperrors.KindOf(err), apperrors.QueryFailed)
	}
	if client.CacheSize() != 0 {
		t.Errorf("CacheSize() = %d, want 0 (failures are never cached)", client.CacheSize())
	}

	// The failed operation must not poison an independent one.
	exec.fail = nil
	if _, _, err := client.CardPrices(context.Background(), "abc"); err != nil {
		t.Fatalf("CardPrices() after unrelated failure: %v", err)
	}
}

func TestConnectionFailureReachesCaller(t *testing.T) {
	exec := &fakeExecutor{fail: apperrors.New(apperrors.ConnectionFailed, "both paths failed")}
	client := newTestClient(exec)

	_, _, err := client.PriceAfterLaunch(context.Background())
	if !apperrors.Is(err, apperrors.ConnectionFailed) {
		t.Errorf("error kind = %q, want %q", apperrors.KindOf(err), apperrors.ConnectionFailed)
	}
	if client.CacheSize() != 0 {
		t.Errorf("CacheSize() = %d, want 0", client.CacheSize())
	}
}

// countingProvider records every session acquisition. It always fails, which
// keeps Execute from touching a real pool while still proving each query
// goes back to the provider.
type countingProvider struct{ acquires int }

func (p *countingProvider) Acquire(_ context.Context) (*warehouse.Session, warehouse.Provenance, error) {
	p.acquires++
	return nil, "", apperrors.New(apperrors.ConnectionFailed, "warehouse unreachable")
}

func TestSessionExecutorAcquiresPerQuery(t *testing.T) {
	provider := &countingProvider{}
	exec := NewSessionExecutor(provider)

	for i := 0; i < 3; i++ {
		_, err := exec.Execute(context.Background(), "SELECT 1")
		if !apperrors.Is(err, apperrors.ConnectionFailed) {
			t.Fatalf("Execute() error kind = %q, want %q", apperrors.KindOf(err), apperrors.ConnectionFailed)
		}
	}

	// Sessions are never held across queries: each Execute resolves its own.
	if provider.acquires != 3 {
		t.Errorf("provider acquisitions = %d, want 3 (one per query)", provider.acquires)
	}
}

type emptyExecutor struct{ calls int }

func (e *emptyExecutor) Execute(_ context.Context, _ string, _ ...any) (*warehouse.Result, error) {
	e.calls++
	return &warehouse.Result{Columns: []string{"id", "name"}}, nil
}

func TestEmptyResultIsNotAnError(t *testing.T) {
	exec := &emptyExecutor{}
	client := newTestClient(exec)

	res, _, err := client.SearchCards(context.Background(), "zzzz", "zzzz")
	if err != nil {
		t.Fatalf("SearchCards() error = %v for an empty result", err)
	}
	if !res.Empty() {
		t.Error("expected empty result")
	}

	// Empty results cache like any other.
	if _, _, err := client.SearchCards(context.Background(), "zzzz", "zzzz"); err != nil {
		t.Fatal(err)
	}
	if exec.calls != 1 {
		t.Errorf("executor calls = %d, want 1", exec.calls)
	}
}
