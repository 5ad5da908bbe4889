// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package selection persists the dashboard's "currently selected card"
// between render passes and process runs. It is UI-local state, not cache:
// the query layer receives the selected identifier as an ordinary parameter
// and has no awareness of how it persists.
package selection

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/applewjr/mtg-price-tracker/internal/xdg"
)

// DefaultCardID seeds the price tracker before the user selects anything.
const DefaultCardID = "ecc1027a-8c07-44a0-bdde-fa2844cff694"

// State holds the persisted selection.
type State struct {
	CardID string `json:"card_id"`
}

// path returns the path to the selection state file.
func path() (string, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "selection.json"), nil
}

// Load reads the selection; a missing file yields the default card.
func Load() (State, error) {
	s := State{CardID: DefaultCardID}
	p, err := path()
	if err != nil {
		return s, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, err
	}
	if s.CardID == "" {
		s.CardID = DefaultCardID
	}
	return s, nil
}

// Save writes the selection with 0600 permissions.
func Save(s State) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Select persists cardID as the current selection.
func Select(cardID string) error {
	return Save(State{CardID: cardID})
}
