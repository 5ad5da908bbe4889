// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"strings"
)

// BuildParams holds the explicit connection settings used to construct a
// warehouse DSN when no ambient DSN is available. Password is kept separate
// from the non-secret settings so it can come from the OS keychain or env.
type BuildParams struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
	SSLMode  string
}

// Build constructs a normalized PostgreSQL DSN from explicit settings.
// Host, User and Database are required; Port defaults to 5432. Schema, when
// set, is carried as a search_path option so queries resolve unqualified
// warehouse objects.
func Build(p BuildParams) (string, error) {
	if strings.TrimSpace(p.Host) == "" {
		return "", NewParseError("", "missing host", "set the warehouse host in the configuration")
	}
	if strings.TrimSpace(p.User) == "" {
		return "", NewParseError("", "missing username", "set the warehouse user in the configuration")
	}
	if strings.TrimSpace(p.Database) == "" {
		return "", NewParseError("", "missing database name", "set the warehouse database in the configuration")
	}

	port := p.Port
	if port == "" {
		port = "5432"
	}

	info := &DSNInfo{
		Type:     DBTypePostgreSQL,
		Host:     p.Host,
		Port:     port,
		User:     p.User,
		Password: p.Password,
		Database: p.Database,
		Params:   map[string]string{},
	}
	if p.SSLMode != "" {
		info.Params["sslmode"] = p.SSLMode
	}
	if p.Schema != "" {
		info.Params["search_path"] = p.Schema
	}

	return NewPostgreSQLResolver().Normalize(info)
}
