// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package selection

import (
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.CardID != DefaultCardID {
		t.Errorf("CardID = %q, want default %q", s.CardID, DefaultCardID)
	}
}

func TestSelectRoundTrip(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	const id = "883c6111-c921-4cd6-930d-4fa335ef2871"
	if err := Select(id); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.CardID != id {
		t.Errorf("CardID = %q, want %q", s.CardID, id)
	}
}
