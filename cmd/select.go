// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/applewjr/mtg-price-tracker/internal/selection"
)

// selectCmd persists the current card selection so that 'mtgprice prices'
// works without an explicit card id.
var selectCmd = &cobra.Command{
	Use:   "select <card-id>",
	Short: "Set the current card for price lookups",
	Long: `The select command stores a card id as the current selection. Subsequent
'mtgprice prices' runs without an argument use this card. Card ids come from
the ID column of 'mtgprice search' output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardID := strings.TrimSpace(args[0])
		if cardID == "" {
			return errors.New("card id is required")
		}
		if err := selection.Select(cardID); err != nil {
			return err
		}
		pterm.Println("✅ Current card set to " + pterm.NewStyle(pterm.FgCyan).Sprint(cardID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
