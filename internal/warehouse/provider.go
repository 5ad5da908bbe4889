// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package warehouse

import (
	"context"
	"os"
	"strings"

	"github.com/applewjr/mtg-price-tracker/internal/config"
	"github.com/applewjr/mtg-price-tracker/internal/dsn"
	apperrors "github.com/applewjr/mtg-price-tracker/internal/errors"
	"github.com/applewjr/mtg-price-tracker/internal/keychain"
	"github.com/applewjr/mtg-price-tracker/internal/logging"
)

// Provenance labels which acquisition path produced a session. Informational
// only; callers may show it but must not branch on it.
type Provenance string

const (
	// ProvenanceAmbient means the session came from a DSN already present in
	// the environment (MTG_DSN, DATABASE_URL, or a loaded .env file).
	ProvenanceAmbient Provenance = "ambient environment DSN"
	// ProvenanceCredentials means the session was built from stored
	// warehouse credentials (keychain DSN, or config fields plus password).
	ProvenanceCredentials Provenance = "stored warehouse credentials"
)

// Strategy is a single session acquisition path: it resolves a DSN or fails.
type Strategy struct {
	Provenance Provenance
	Resolve    func(ctx context.Context) (string, error)
}

// Provider acquires warehouse sessions by walking an ordered strategy list.
// Each Acquire makes exactly one attempt per strategy, in order, and returns
// the first session that opens. There is no retry within a pass.
type Provider struct {
	strategies []Strategy

	// open is the dial function, replaceable in tests.
	open func(ctx context.Context, dsn string) (*Session, error)
}

// NewProvider builds the standard two-path provider: ambient environment DSN
// first, stored credentials second.
func NewProvider(cfg config.Config) *Provider {
	return &Provider{
		strategies: []Strategy{
			{Provenance: ProvenanceAmbient, Resolve: resolveAmbient},
			{Provenance: ProvenanceCredentials, Resolve: resolveCredentials(cfg)},
		},
		open: openSession,
	}
}

// Acquire resolves a live session. The provenance label reports which path
// succeeded. When every path fails the error is terminal for the current
// render pass and carries the ConnectionFailed kind.
func (p *Provider) Acquire(ctx context.Context) (*Session, Provenance, error) {
	var lastErr error
	for _, st := range p.strategies {
		connStr, err := st.Resolve(ctx)
		if err != nil {
			logging.Debug().Str("path", string(st.Provenance)).Err(err).Msg("acquisition path did not resolve")
			lastErr = err
			continue
		}
		session, err := p.open(ctx, connStr)
		if err != nil {
			logging.Debug().Str("path", string(st.Provenance)).Err(err).Msg("acquisition path failed to open")
			lastErr = err
			continue
		}
		logging.Debug().Str("path", string(st.Provenance)).Msg("session acquired")
		return session, st.Provenance, nil
	}
	return nil, "", apperrors.Wrap(apperrors.ConnectionFailed,
		"could not reach the warehouse on any acquisition path", lastErr)
}

// resolveAmbient yields a DSN already established by the hosting environment.
func resolveAmbient(_ context.Context) (string, error) {
	for _, key := range []string{"MTG_DSN", "DATABASE_URL"} {
		if env := strings.TrimSpace(os.Getenv(key)); env != "" {
			return dsn.Parse(env)
		}
	}
	return "", apperrors.New(apperrors.ConfigMissing, "no ambient DSN in MTG_DSN or DATABASE_URL")
}

// resolveCredentials yields a DSN from stored configuration: the keychain DSN
// saved by 'mtgprice connect', or the explicit config fields with the
// password sourced from the keychain or environment.
func resolveCredentials(cfg config.Config) func(ctx context.Context) (string, error) {
	return func(_ context.Context) (string, error) {
		km, kmErr := keychain.GetManager()
		if kmErr == nil {
			if stored, err := km.LoadDBDSN(); err == nil && strings.TrimSpace(stored) != "" {
				return dsn.Parse(stored)
			}
		}

		if err := cfg.Warehouse.Complete(); err != nil {
			return "", err
		}

		password := strings.TrimSpace(os.Getenv("MTG_PASSWORD"))
		if password == "" {
			password = strings.TrimSpace(os.Getenv("PGPASSWORD"))
		}
		if password == "" && kmErr == nil {
			if stored, err := km.LoadWarehousePassword(); err == nil {
				password = stored
			}
		}
		if password == "" {
			return "", apperrors.New(apperrors.ConfigMissing,
				"no warehouse password in keychain, MTG_PASSWORD, or PGPASSWORD")
		}

		return dsn.Build(dsn.BuildParams{
			Host:     cfg.Warehouse.Host,
			Port:     cfg.Warehouse.Port,
			User:     cfg.Warehouse.User,
			Password: password,
			Database: cfg.Warehouse.Database,
			Schema:   cfg.Warehouse.Schema,
			SSLMode:  cfg.Warehouse.SSLMode,
		})
	}
}
