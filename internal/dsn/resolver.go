// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"strings"
)

// DetectDBType detects the database type from a DSN string
func DetectDBType(dsn string) DBType {
	lower := strings.ToLower(dsn)

	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DBTypePostgreSQL
	}

	return DBTypeUnknown
}

// Parse parses a DSN string and returns normalized connection string
// This is the main entry point for DSN parsing
func Parse(dsn string) (string, error) {
	if dsn == "" {
		return "", NewParseError(dsn, "empty DSN", "provide a valid warehouse connection string")
	}

	if DetectDBType(dsn) != DBTypePostgreSQL {
		return "", NewParseError(dsn, "unknown database type", "the warehouse speaks the Postgres wire protocol; use postgres:// or postgresql://")
	}

	resolver := NewPostgreSQLResolver()

	info, err := resolver.Parse(dsn)
	if err != nil {
		return "", err
	}

	normalized, err := resolver.Normalize(info)
	if err != nil {
		return "", err
	}

	return normalized, nil
}

// ParseInfo parses a DSN string and returns detailed DSN info
// Useful for inspecting connection details
func ParseInfo(dsn string) (*DSNInfo, error) {
	if dsn == "" {
		return nil, NewParseError(dsn, "empty DSN", "provide a valid warehouse connection string")
	}

	if DetectDBType(dsn) != DBTypePostgreSQL {
		return nil, NewParseError(dsn, "unknown database type", "the warehouse speaks the Postgres wire protocol; use postgres:// or postgresql://")
	}

	return NewPostgreSQLResolver().Parse(dsn)
}
