// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"strings"
	"testing"

	"github.com/applewjr/mtg-price-tracker/internal/config"
	"github.com/applewjr/mtg-price-tracker/internal/dsn"
)

func TestConfiguredDSN(t *testing.T) {
	complete := config.Config{
		Warehouse: config.WarehouseConfig{
			Host:     "warehouse.internal",
			Port:     "5439",
			User:     "mtg",
			Database: "prices",
			Schema:   "mtg",
			SSLMode:  "require",
		},
	}

	built, ok := configuredDSN(complete)
	if !ok {
		t.Fatal("configuredDSN() = false for complete settings")
	}
	for _, want := range []string{"warehouse.internal:5439", "/prices"} {
		if !strings.Contains(built, want) {
			t.Errorf("configuredDSN() = %q, missing %q", built, want)
		}
	}

	info, err := dsn.ParseInfo(built)
	if err != nil {
		t.Fatalf("ParseInfo() on built DSN: %v", err)
	}
	if info.User != "mtg" || info.Database != "prices" {
		t.Errorf("ParseInfo() user/database = %q/%q, want mtg/prices", info.User, info.Database)
	}
	if info.Password != "***" {
		t.Errorf("built DSN carries password %q, want the *** placeholder", info.Password)
	}

	// The display form masks the placeholder like any real password.
	if masked := maskPassword(built); !strings.Contains(masked, ":***@") {
		t.Errorf("maskPassword() = %q, want the :***@ form", masked)
	}

	// Settings saved without a host (or any required field) never produce
	// a display DSN, matching the provider's explicit-path gate.
	incomplete := complete
	incomplete.Warehouse.Host = ""
	if _, ok := configuredDSN(incomplete); ok {
		t.Error("configuredDSN() = true for incomplete settings")
	}
}
