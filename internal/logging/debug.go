// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/applewjr/mtg-price-tracker/internal/xdg"
)

var (
	debugOnce   sync.Once
	debugLogger zerolog.Logger
)

// Debug returns the process-wide debug logger. Events are written to
// debug.log in the XDG state dir when MTG_DEBUG=1; otherwise every event
// is discarded. Terminal output stays with pterm, this log exists for
// troubleshooting connection and cache behavior after the fact.
func Debug() *zerolog.Event {
	debugOnce.Do(func() {
		var w io.Writer = io.Discard
		if os.Getenv("MTG_DEBUG") == "1" {
			if dir, err := xdg.StateDir(); err == nil {
				f, err := os.OpenFile(filepath.Join(dir, "debug.log"),
					os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err == nil {
					w = f
				}
			}
		}
		debugLogger = zerolog.New(w).Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		zerolog.TimeFieldFormat = time.RFC3339
	})
	return debugLogger.Debug()
}
