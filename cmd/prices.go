// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/applewjr/mtg-price-tracker/internal/queries"
	"github.com/applewjr/mtg-price-tracker/internal/selection"
	"github.com/applewjr/mtg-price-tracker/internal/warehouse"
)

var pricesTail int

// pricesCmd represents the prices command for showing a card's price history.
// Without an argument it uses the card stored by 'mtgprice select'.
var pricesCmd = &cobra.Command{
	Use:   "prices [card-id]",
	Short: "Show price history for a card",
	Long: `The prices command fetches the daily price history for one card: regular and
foil USD prices per pull date, newest last. Without a card id argument, the
card chosen via 'mtgprice select' is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardID := ""
		if len(args) > 0 {
			cardID = args[0]
		} else {
			st, err := selection.Load()
			if err != nil {
				return err
			}
			cardID = st.CardID
		}

		client, err := newQueryClient(0)
		if err != nil {
			return presentQueryError(err)
		}

		stopSpinner := startInlineSpinner(os.Stdout, "fetching price history",
			[]string{"-", "\\", "|", "/"}, 100*time.Millisecond)
		res, _, err := client.CardPrices(cmd.Context(), cardID)
		stopSpinner()
		if err != nil {
			return presentQueryError(err)
		}

		if res.Empty() {
			pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("No price history for card " + cardID))
			return nil
		}

		sorted := queries.SortedByColumn(res, "PULL_DATE")
		pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Card: ") +
			pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(cardID))
		pterm.Println()
		renderLatestPanel(sorted)

		// Show the most recent entries; the summary box covers the full range.
		tail := sorted
		if pricesTail > 0 && sorted.Len() > pricesTail {
			tail = &warehouse.Result{Columns: sorted.Columns, Rows: sorted.Rows[sorted.Len()-pricesTail:]}
		}
		renderResultTable(tail, 0)
		pterm.Println()
		renderPriceBarChart(sorted, "USD", 15)
		pterm.Println()
		renderPriceStats(res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pricesCmd)
	pricesCmd.Flags().IntVar(&pricesTail, "tail", 30, "Show only the most recent N pull dates (0 for all)")
}
