// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; secrets go to OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	apperrors "github.com/applewjr/mtg-price-tracker/internal/errors"
	"github.com/applewjr/mtg-price-tracker/internal/xdg"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel    string          `json:"log_level"`
	Warehouse   WarehouseConfig `json:"warehouse"`
	SearchLimit int             `json:"search_limit"`
}

// WarehouseConfig holds the explicit warehouse connection settings used when
// no ambient DSN is present. The password lives in the OS keychain, not here.
type WarehouseConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Database string `json:"database"`
	Schema   string `json:"schema"`
	SSLMode  string `json:"sslmode"`
}

// Complete reports whether the explicit connection settings carry every
// required field. A missing field is a fatal configuration error for the
// explicit acquisition path.
func (w WarehouseConfig) Complete() error {
	for _, f := range []struct {
		name, value string
	}{
		{"warehouse.host", w.Host},
		{"warehouse.user", w.User},
		{"warehouse.database", w.Database},
		{"warehouse.schema", w.Schema},
	} {
		if f.value == "" {
			return apperrors.New(apperrors.ConfigMissing, "missing required setting "+f.name)
		}
	}
	return nil
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
func Load() (Config, error) {
	var c Config
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Defaults (connection comes from env or keychain, not config)
			c.LogLevel = "info"
			c.Warehouse = WarehouseConfig{Schema: "mtg", SSLMode: "require"}
			c.SearchLimit = 1000
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = 1000
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
