// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command for finding cards by name and set.
// Matching happens warehouse-side; both fragments are lower-cased before the
// query so results are identical regardless of input casing.
var searchCmd = &cobra.Command{
	Use:   "search <name-fragment> [set-fragment]",
	Short: "Search cards by name and set",
	Long: `The search command looks up Magic: The Gathering cards whose name matches the
given fragment, optionally narrowed by a set name fragment. Matching is fuzzy
and case-insensitive. Up to the configured row limit is returned.

Examples:
  mtgprice search vivi
  mtgprice search "vivi ornitier" "final fantasy"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nameFragment := args[0]
		setFragment := ""
		if len(args) > 1 {
			setFragment = args[1]
		}

		client, err := newQueryClient(searchLimit)
		if err != nil {
			return presentQueryError(err)
		}

		stopSpinner := startInlineSpinner(os.Stdout, "searching cards",
			[]string{"-", "\\", "|", "/"}, 100*time.Millisecond)
		res, _, err := client.SearchCards(cmd.Context(), nameFragment, setFragment)
		stopSpinner()
		if err != nil {
			return presentQueryError(err)
		}

		renderResultTable(reorderColumns(res, "NAME", "SET_NAME", "ID"), 0)
		if !res.Empty() {
			pterm.Println()
			pterm.Println("Pick a card for price lookups with: mtgprice select <card-id>")
		}
		return nil
	},
}

var searchLimit int

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Cap the number of result rows (default from config)")
}
