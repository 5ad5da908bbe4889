// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"

	"github.com/applewjr/mtg-price-tracker/internal/cache"
	"github.com/applewjr/mtg-price-tracker/internal/config"
	apperrors "github.com/applewjr/mtg-price-tracker/internal/errors"
	"github.com/applewjr/mtg-price-tracker/internal/logging"
	"github.com/applewjr/mtg-price-tracker/internal/queries"
	"github.com/applewjr/mtg-price-tracker/internal/warehouse"
)

// newQueryClient wires a query client for one-shot commands. Each query
// acquires a fresh warehouse session; the result cache only matters within
// a single process, which for one-shot commands means a single query.
// searchLimit overrides the configured row cap when positive.
func newQueryClient(searchLimit int) (*queries.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if searchLimit <= 0 {
		searchLimit = cfg.SearchLimit
	}
	provider := warehouse.NewProvider(cfg)
	exec := queries.NewSessionExecutor(provider)
	return queries.New(exec, cache.New(), searchLimit), nil
}

// presentQueryError prints a user-facing explanation for a failed warehouse
// operation and returns the error for cobra's exit handling.
func presentQueryError(err error) error {
	switch {
	case apperrors.Is(err, apperrors.ConnectionFailed):
		pterm.Println("❌ Could not reach the warehouse")
		logging.PresentWarehouseError(err.Error())
		pterm.Println("   Set MTG_DSN, or run: mtgprice connect")
	case apperrors.Is(err, apperrors.ConfigMissing):
		pterm.Println("❌ Warehouse connection is not configured")
		pterm.Println("   Set MTG_DSN, or run: mtgprice connect")
	default:
		pterm.Println("❌ Query failed")
		logging.PresentWarehouseError(err.Error())
	}
	return err
}
