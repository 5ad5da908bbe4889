// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package warehouse provides the session layer over the analytical warehouse.
// It acquires live connections through an ordered list of acquisition
// strategies and executes parameterized SQL against them, returning tabular
// results. Sessions are created per operation and closed by the caller;
// nothing in this package holds a connection across render passes.
package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/applewjr/mtg-price-tracker/internal/errors"
	"github.com/applewjr/mtg-price-tracker/internal/logging"
)

// connectTimeout bounds the initial ping when a session is opened.
const connectTimeout = 5 * time.Second

// Session is a live handle to the warehouse. It wraps a connection pool but
// is intended to live for a single operation: acquire, query, close.
type Session struct {
	pool *pgxpool.Pool
}

// openSession dials the warehouse and verifies the connection with a ping.
func openSession(ctx context.Context, dsn string) (*Session, error) {
	ctxPing, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctxPing, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, err
	}
	return &Session{pool: pool}, nil
}

// Query executes a parameterized SQL string and collects the full result.
// Parameters are bound server-side ($1, $2, ...), never interpolated into
// the SQL text.
func (s *Session) Query(ctx context.Context, sql string, args ...any) (*Result, error) {
	logging.Debug().Str("sql", sql).Int("args", len(args)).Msg("warehouse query")

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.QueryFailed, "could not acquire a warehouse connection", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.QueryFailed, "warehouse rejected the query", err)
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	cols := make([]string, len(fds))
	for i, fd := range fds {
		cols[i] = string(fd.Name)
	}
	res := &Result{
		Columns: cols,
		Rows:    [][]any{},
	}

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.QueryFailed, "failed reading a warehouse row", err)
		}
		row := make([]any, len(vals))
		for i, v := range vals {
			row[i] = normalizeValue(v)
		}
		res.Rows = append(res.Rows, row)
	}
	if rows.Err() != nil {
		return nil, apperrors.Wrap(apperrors.QueryFailed, "warehouse aborted mid-result", rows.Err())
	}

	logging.Debug().Int("rows", res.Len()).Msg("warehouse query done")
	return res, nil
}

// Close releases the underlying pool.
func (s *Session) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// normalizeValue converts driver types into display-friendly values.
// UUIDs arrive from pgx as byte arrays and are rendered in canonical form;
// numerics become float64 so callers can aggregate without driver types.
func normalizeValue(val any) any {
	switch v := val.(type) {
	case [16]byte:
		return formatUUID(v[:])
	case []byte:
		if len(v) == 16 {
			return formatUUID(v)
		}
		return fmt.Sprintf("\\x%x", v)
	case pgtype.Numeric:
		if !v.Valid {
			return nil
		}
		f, err := v.Float64Value()
		if err != nil {
			return v
		}
		return f.Float64
	default:
		return v
	}
}

// formatUUID renders 16 bytes as xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
// Use %02x to ensure each byte is exactly 2 hex digits (with leading zeros).
func formatUUID(v []byte) string {
	return fmt.Sprintf("%02x%02x%02x%02x-%02x%02x-%02x%02x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7],
		v[8], v[9], v[10], v[11], v[12], v[13], v[14], v[15])
}
