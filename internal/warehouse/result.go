// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package warehouse

import "strings"

// Result is a tabular warehouse result: ordered columns and ordered rows.
// It is immutable once returned. Zero rows is a valid outcome, distinct
// from a query failure.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Empty reports whether the result carries no rows.
func (r *Result) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// Len returns the number of rows.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// ColumnIndex returns the position of the named column, or -1 if absent.
// Matching ignores case: Postgres folds unquoted identifiers to lower case
// while the warehouse views declare their columns in upper case.
func (r *Result) ColumnIndex(name string) int {
	if r == nil {
		return -1
	}
	for i, c := range r.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// Value returns the cell at (row, column name), or nil when either is out
// of range. Warehouse NULLs come through as nil.
func (r *Result) Value(row int, column string) any {
	idx := r.ColumnIndex(column)
	if idx == -1 || row < 0 || row >= r.Len() {
		return nil
	}
	return r.Rows[row][idx]
}
