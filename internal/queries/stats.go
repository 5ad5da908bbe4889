// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package queries

import (
	"sort"
	"time"

	"github.com/applewjr/mtg-price-tracker/internal/warehouse"
)

// PriceStats summarizes one nullable price column.
type PriceStats struct {
	Count int
	Avg   float64
	Min   float64
	Max   float64
}

// AsFloat converts a warehouse cell to float64. Nulls and non-numeric
// values report false.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// StatsFor computes count/avg/min/max over the named column, skipping
// warehouse NULLs. A column with no numeric values yields a zero Count.
func StatsFor(res *warehouse.Result, column string) PriceStats {
	var s PriceStats
	idx := res.ColumnIndex(column)
	if idx == -1 {
		return s
	}

	sum := 0.0
	for _, row := range res.Rows {
		f, ok := AsFloat(row[idx])
		if !ok {
			continue
		}
		if s.Count == 0 || f < s.Min {
			s.Min = f
		}
		if s.Count == 0 || f > s.Max {
			s.Max = f
		}
		sum += f
		s.Count++
	}
	if s.Count > 0 {
		s.Avg = sum / float64(s.Count)
	}
	return s
}

// SortedByColumn returns a copy of res with rows ordered ascending by the
// named column. Results are immutable once returned, so the original row
// order is left untouched. Dates compare chronologically whether they
// arrive as time.Time or ISO strings.
func SortedByColumn(res *warehouse.Result, column string) *warehouse.Result {
	idx := res.ColumnIndex(column)
	if idx == -1 || res.Empty() {
		return res
	}

	rows := make([][]any, len(res.Rows))
	copy(rows, res.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return lessValue(rows[i][idx], rows[j][idx])
	})
	return &warehouse.Result{Columns: res.Columns, Rows: rows}
}

func lessValue(a, b any) bool {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Before(bt)
		}
	}
	if af, ok := AsFloat(a); ok {
		if bf, ok := AsFloat(b); ok {
			return af < bf
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as < bs
	}
	return false
}
