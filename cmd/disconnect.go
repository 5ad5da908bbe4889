// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/applewjr/mtg-price-tracker/internal/keychain"
)

// disconnectCmd removes the stored warehouse credentials from the OS keychain.
// Ambient environment DSNs (MTG_DSN, DATABASE_URL) are unaffected.
var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Remove stored warehouse credentials",
	Long: `The disconnect command deletes the DSN saved by 'mtgprice connect' and the
warehouse password saved by 'mtgprice configure --password' from the OS
keychain. Environment-based connections keep working.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			pterm.Println("❌ Secure storage is not available on this system")
			return err
		}
		if err := km.ClearAll(); err != nil {
			pterm.Println("❌ Failed to remove stored credentials")
			return err
		}
		pterm.Println("✅ Stored warehouse credentials removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
}
