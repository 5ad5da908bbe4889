// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package warehouse

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/applewjr/mtg-price-tracker/internal/errors"
)

func staticStrategy(p Provenance, connStr string, err error, calls *int) Strategy {
	return Strategy{
		Provenance: p,
		Resolve: func(ctx context.Context) (string, error) {
			*calls++
			return connStr, err
		},
	}
}

func TestAcquireFirstPathWins(t *testing.T) {
	var primary, fallback int
	p := &Provider{
		strategies: []Strategy{
			staticStrategy(ProvenanceAmbient, "postgres://a:b@h:5432/db", nil, &primary),
			staticStrategy(ProvenanceCredentials, "postgres://c:d@h:5432/db", nil, &fallback),
		},
		open: func(ctx context.Context, dsn string) (*Session, error) {
			return &Session{}, nil
		},
	}

	session, prov, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if session == nil {
		t.Fatal("Acquire() returned nil session")
	}
	if prov != ProvenanceAmbient {
		t.Errorf("provenance = %q, want %q", prov, ProvenanceAmbient)
	}
	if primary != 1 {
		t.Errorf("primary resolve calls = %d, want 1", primary)
	}
	if fallback != 0 {
		t.Errorf("fallback resolve calls = %d, want 0", fallback)
	}
}

func TestAcquireFallsBackOnResolveFailure(t *testing.T) {
	var primary, fallback int
	p := &Provider{
		strategies: []Strategy{
			staticStrategy(ProvenanceAmbient, "", errors.New("no ambient dsn"), &primary),
			staticStrategy(ProvenanceCredentials, "postgres://c:d@h:5432/db", nil, &fallback),
		},
		open: func(ctx context.Context, dsn string) (*Session, error) {
			return &Session{}, nil
		},
	}

	session, prov, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if session == nil {
		t.Fatal("Acquire() returned nil session")
	}
	if prov != ProvenanceCredentials {
		t.Errorf("provenance = %q, want %q", prov, ProvenanceCredentials)
	}
	if primary != 1 || fallback != 1 {
		t.Errorf("resolve calls = %d/%d, want 1/1", primary, fallback)
	}
}

func TestAcquireFallsBackOnOpenFailure(t *testing.T) {
	var fallback int
	p := &Provider{
		strategies: []Strategy{
			{
				Provenance: ProvenanceAmbient,
				Resolve: func(ctx context.Context) (string, error) {
					return "postgres://a:b@unreachable:5432/db", nil
				},
			},
			staticStrategy(ProvenanceCredentials, "postgres://c:d@h:5432/db", nil, &fallback),
		},
		open: func(ctx context.Context, dsn string) (*Session, error) {
			if dsn == "postgres://a:b@unreachable:5432/db" {
				return nil, errors.New("connection refused")
			}
			return &Session{}, nil
		},
	}

	_, prov, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if prov != ProvenanceCredentials {
		t.Errorf("provenance = %q, want %q", prov, ProvenanceCredentials)
	}
}

func TestAcquireBothPathsFail(t *testing.T) {
	var primary, fallback int
	p := &Provider{
		strategies: []Strategy{
			staticStrategy(ProvenanceAmbient, "", errors.New("no ambient dsn"), &primary),
			staticStrategy(ProvenanceCredentials, "", errors.New("no credentials"), &fallback),
		},
		open: func(ctx context.Context, dsn string) (*Session, error) {
			t.Fatal("open must not be called when no path resolves")
			return nil, nil
		},
	}

	session, _, err := p.Acquire(context.Background())
	if err == nil {
		t.Fatal("Acquire() expected error")
	}
	if session != nil {
		t.Error("Acquire() returned a session alongside an error")
	}
	if !apperrors.Is(err, apperrors.ConnectionFailed) {
		t.Errorf("error kind = %q, want %q", apperrors.KindOf(err), apperrors.ConnectionFailed)
	}
	// Exactly one attempt per path, no retry loop.
	if primary != 1 || fallback != 1 {
		t.Errorf("resolve calls = %d/%d, want 1/1", primary, fallback)
	}
}

func TestResultHelpers(t *testing.T) {
	r := &Result{
		Columns: []string{"pull_date", "usd", "usd_foil"},
		Rows: [][]any{
			{"2025-08-01", 1.25, nil},
			{"2025-08-02", 1.31, 4.5},
		},
	}

	if r.Empty() {
		t.Error("Empty() = true for populated result")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if idx := r.ColumnIndex("usd"); idx != 1 {
		t.Errorf("ColumnIndex(usd) = %d, want 1", idx)
	}
	if idx := r.ColumnIndex("USD"); idx != 1 {
		t.Errorf("ColumnIndex(USD) = %d, want 1 (case-folded match)", idx)
	}
	if idx := r.ColumnIndex("missing"); idx != -1 {
		t.Errorf("ColumnIndex(missing) = %d, want -1", idx)
	}
	if v := r.Value(1, "usd_foil"); v != 4.5 {
		t.Errorf("Value(1, usd_foil) = %v, want 4.5", v)
	}
	if v := r.Value(0, "usd_foil"); v != nil {
		t.Errorf("Value(0, usd_foil) = %v, want nil", v)
	}
	if v := r.Value(5, "usd"); v != nil {
		t.Errorf("Value out of range = %v, want nil", v)
	}

	var empty *Result
	if !empty.Empty() {
		t.Error("nil result should be empty")
	}

	zero := &Result{Columns: []string{"a"}}
	if !zero.Empty() {
		t.Error("zero-row result should be empty, not an error state")
	}
}

func TestNormalizeValue(t *testing.T) {
	uuid := [16]byte{0xec, 0xc1, 0x02, 0x7a, 0x8c, 0x07, 0x44, 0xa0,
		0xbd, 0xde, 0xfa, 0x28, 0x44, 0xcf, 0xf6, 0x94}

	if got := normalizeValue(uuid); got != "ecc1027a-8c07-44a0-bdde-fa2844cff694" {
		t.Errorf("normalizeValue([16]byte) = %v", got)
	}
	if got := normalizeValue(uuid[:]); got != "ecc1027a-8c07-44a0-bdde-fa2844cff694" {
		t.Errorf("normalizeValue([]byte) = %v", got)
	}
	if got := normalizeValue(1.5); got != 1.5 {
		t.Errorf("normalizeValue(1.5) = %v", got)
	}
	if got := normalizeValue(nil); got != nil {
		t.Errorf("normalizeValue(nil) = %v", got)
	}
}
