// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package queries

import (
	"math"
	"testing"
	"time"

	"github.com/applewjr/mtg-price-tracker/internal/warehouse"
)

func TestStatsForSkipsNulls(t *testing.T) {
	res := &warehouse.Result{
		Columns: []string{"pull_date", "usd", "usd_foil"},
		Rows: [][]any{
			{"2025-08-01", 1.00, nil},
			{"2025-08-02", 3.00, 10.0},
			{"2025-08-03", nil, 12.0},
			{"2025-08-04", 2.00, nil},
		},
	}

	usd := StatsFor(res, "usd")
	if usd.Count != 3 {
		t.Errorf("usd Count = %d, want 3", usd.Count)
	}
	if math.Abs(usd.Avg-2.0) > 1e-9 {
		t.Errorf("usd Avg = %v, want 2.0", usd.Avg)
	}
	if usd.Min != 1.0 || usd.Max != 3.0 {
		t.Errorf("usd Min/Max = %v/%v, want 1.0/3.0", usd.Min, usd.Max)
	}

	foil := StatsFor(res, "usd_foil")
	if foil.Count != 2 {
		t.Errorf("usd_foil Count = %d, want 2", foil.Count)
	}
	if foil.Min != 10.0 || foil.Max != 12.0 {
		t.Errorf("usd_foil Min/Max = %v/%v, want 10.0/12.0", foil.Min, foil.Max)
	}
}

func TestStatsForMissingColumn(t *testing.T) {
	res := &warehouse.Result{Columns: []string{"usd"}, Rows: [][]any{{1.0}}}
	if got := StatsFor(res, "eur"); got.Count != 0 {
		t.Errorf("Count = %d, want 0 for missing column", got.Count)
	}
}

func TestSortedByColumn(t *testing.T) {
	d := func(day int) time.Time {
		return time.Date(2025, 8, day, 0, 0, 0, 0, time.UTC)
	}
	res := &warehouse.Result{
		Columns: []string{"pull_date", "usd"},
		Rows: [][]any{
			{d(3), 3.0},
			{d(1), 1.0},
			{d(2), 2.0},
		},
	}

	sorted := SortedByColumn(res, "pull_date")
	for i, want := range []float64{1.0, 2.0, 3.0} {
		if got := sorted.Rows[i][1]; got != want {
			t.Errorf("sorted row %d usd = %v, want %v", i, got, want)
		}
	}

	// The input result must be left untouched.
	if res.Rows[0][1] != 3.0 {
		t.Error("SortedByColumn mutated its input")
	}
}

func TestSortedByColumnStringDates(t *testing.T) {
	res := &warehouse.Result{
		Columns: []string{"pull_date"},
		Rows:    [][]any{{"2025-08-03"}, {"2025-08-01"}, {"2025-08-02"}},
	}

	sorted := SortedByColumn(res, "pull_date")
	want := []string{"2025-08-01", "2025-08-02", "2025-08-03"}
	for i, w := range want {
		if sorted.Rows[i][0] != w {
			t.Errorf("sorted row %d = %v, want %v", i, sorted.Rows[i][0], w)
		}
	}
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{name: "float64", in: 1.5, want: 1.5, ok: true},
		{name: "int64", in: int64(4), want: 4, ok: true},
		{name: "int32", in: int32(7), want: 7, ok: true},
		{name: "nil", in: nil, ok: false},
		{name: "string", in: "1.5", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsFloat(tt.in)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("AsFloat(%v) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
