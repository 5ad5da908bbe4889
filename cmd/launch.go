// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/applewjr/mtg-price-tracker/internal/queries"
	"github.com/applewjr/mtg-price-tracker/internal/warehouse"
)

var launchSet string

// launchCmd represents the launch command for the launch-window price aggregate.
// It reports average mythic and rare prices by set and day offset from the
// set's launch, over the first 300 days.
var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Show average prices by days after set launch",
	Long: `The launch command fetches the launch-window aggregate: for each set, the
average price of its mythic and rare cards at each day offset from the set's
launch date, covering the first 300 days. Use --set to narrow the output to
sets whose name contains the given fragment.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newQueryClient(0)
		if err != nil {
			return presentQueryError(err)
		}

		stopSpinner := startInlineSpinner(os.Stdout, "fetching launch-window aggregate",
			[]string{"-", "\\", "|", "/"}, 100*time.Millisecond)
		res, _, err := client.PriceAfterLaunch(cmd.Context())
		stopSpinner()
		if err != nil {
			return presentQueryError(err)
		}

		filtered := filterBySet(res, launchSet)
		if filtered.Empty() {
			if launchSet != "" {
				pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("No sets match " + launchSet))
			} else {
				pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("No launch-window data available."))
			}
			return nil
		}

		sorted := queries.SortedByColumn(filtered, "DATE_DIFF")
		renderResultTable(sorted, 40)
		pterm.Println()
		renderSetSummary(res)
		return nil
	},
}

// renderSetSummary boxes the tracked sets with their overall average price
// across the launch window.
func renderSetSummary(res *warehouse.Result) {
	setIdx := res.ColumnIndex("SET_NAME")
	valIdx := res.ColumnIndex("AVG_USD")
	if setIdx < 0 || valIdx < 0 {
		return
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	var order []string
	for _, row := range res.Rows {
		name, _ := row[setIdx].(string)
		f, ok := queries.AsFloat(row[valIdx])
		if !ok {
			continue
		}
		if counts[name] == 0 {
			order = append(order, name)
		}
		sums[name] += f
		counts[name]++
	}
	if len(order) == 0 {
		return
	}
	sort.Strings(order)

	lines := make([]string, 0, len(order)+1)
	for _, name := range order {
		lines = append(lines, fmt.Sprintf("%-30s %s avg", name, formatUSD(sums[name]/float64(counts[name]))))
	}
	lines = append(lines, fmt.Sprintf("%d sets, %d data points, days 1-300, mythic & rare only", len(order), res.Len()))

	title := pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Sets Tracked")
	pterm.Println(pterm.DefaultBox.WithTitle(title).WithLeftPadding(1).WithRightPadding(1).WithTopPadding(1).WithBottomPadding(1).Sprint(strings.Join(lines, "\n")))
}

// filterBySet keeps only rows whose SET_NAME contains the fragment,
// case-insensitively. An empty fragment keeps everything. The filter runs on
// the cached result so narrowing never costs a warehouse round trip.
func filterBySet(res *warehouse.Result, fragment string) *warehouse.Result {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	if fragment == "" || res.Empty() {
		return res
	}
	idx := res.ColumnIndex("SET_NAME")
	if idx < 0 {
		return res
	}
	out := &warehouse.Result{Columns: res.Columns}
	for _, row := range res.Rows {
		name, _ := row[idx].(string)
		if strings.Contains(strings.ToLower(name), fragment) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(launchCmd)
	launchCmd.Flags().StringVar(&launchSet, "set", "", "Only show sets whose name contains this fragment")
}
