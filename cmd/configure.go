// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/applewjr/mtg-price-tracker/internal/config"
	"github.com/applewjr/mtg-price-tracker/internal/keychain"
)

var (
	cfgHost     string
	cfgPort     string
	cfgUser     string
	cfgDatabase string
	cfgSchema   string
	cfgSSLMode  string
	cfgLimit    int
	cfgPassword bool
)

// configureCmd stores the explicit warehouse settings used when neither an
// ambient DSN nor a keychain DSN is available. Non-secret fields go to the
// config file; the password goes to the OS keychain.
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Store explicit warehouse connection settings",
	Long: `The configure command records the explicit warehouse connection settings:
host, port, user, database, schema, and SSL mode. These are used as the last
acquisition path, after the MTG_DSN/DATABASE_URL environment variables and the
keychain DSN saved by 'mtgprice connect'.

Use --password to be prompted for the warehouse password; it is stored in the
OS keychain, never in the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if cfgHost != "" {
			cfg.Warehouse.Host = cfgHost
		}
		if cfgPort != "" {
			cfg.Warehouse.Port = cfgPort
		}
		if cfgUser != "" {
			cfg.Warehouse.User = cfgUser
		}
		if cfgDatabase != "" {
			cfg.Warehouse.Database = cfgDatabase
		}
		if cfgSchema != "" {
			cfg.Warehouse.Schema = cfgSchema
		}
		if cfgSSLMode != "" {
			cfg.Warehouse.SSLMode = cfgSSLMode
		}
		if cfgLimit > 0 {
			cfg.SearchLimit = cfgLimit
		}

		if err := config.Save(cfg); err != nil {
			return err
		}

		if cfgPassword {
			fmt.Print("Warehouse password: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return err
			}
			password := strings.TrimSpace(string(raw))
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}
			km, err := keychain.GetManager()
			if err != nil {
				pterm.Println("❌ Secure storage is not available on this system.")
				pterm.Println("   Set MTG_PASSWORD or PGPASSWORD in the environment instead.")
				return err
			}
			if err := km.SaveWarehousePassword(password); err != nil {
				return err
			}
		}

		lines := []string{
			"Host:      " + orUnset(cfg.Warehouse.Host),
			"Port:      " + orUnset(cfg.Warehouse.Port),
			"User:      " + orUnset(cfg.Warehouse.User),
			"Database:  " + orUnset(cfg.Warehouse.Database),
			"Schema:    " + orUnset(cfg.Warehouse.Schema),
			"SSL mode:  " + orUnset(cfg.Warehouse.SSLMode),
			fmt.Sprintf("Row limit: %d", cfg.SearchLimit),
		}
		title := pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Warehouse Settings")
		pterm.Println(pterm.DefaultBox.WithTitle(title).WithLeftPadding(1).WithRightPadding(1).WithTopPadding(1).WithBottomPadding(1).Sprint(strings.Join(lines, "\n")))
		if err := cfg.Warehouse.Complete(); err != nil {
			pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("⚠️  " + err.Error()))
		}
		return nil
	},
}

func orUnset(v string) string {
	if v == "" {
		return pterm.NewStyle(pterm.FgGray).Sprint("(unset)")
	}
	return v
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().StringVar(&cfgHost, "host", "", "Warehouse host")
	configureCmd.Flags().StringVar(&cfgPort, "port", "", "Warehouse port (default 5432)")
	configureCmd.Flags().StringVar(&cfgUser, "user", "", "Warehouse user")
	configureCmd.Flags().StringVar(&cfgDatabase, "database", "", "Warehouse database")
	configureCmd.Flags().StringVar(&cfgSchema, "schema", "", "Warehouse schema")
	configureCmd.Flags().StringVar(&cfgSSLMode, "sslmode", "", "SSL mode (require, verify-full, disable)")
	configureCmd.Flags().IntVar(&cfgLimit, "limit", 0, "Default search row limit")
	configureCmd.Flags().BoolVar(&cfgPassword, "password", false, "Prompt for the warehouse password and store it in the keychain")
}
