// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/applewjr/mtg-price-tracker/internal/cache"
	"github.com/applewjr/mtg-price-tracker/internal/config"
	"github.com/applewjr/mtg-price-tracker/internal/queries"
	"github.com/applewjr/mtg-price-tracker/internal/selection"
	"github.com/applewjr/mtg-price-tracker/internal/warehouse"
)

// dashboardCmd represents the interactive price dashboard. Each query
// acquires a fresh warehouse session and closes it after; nothing holds a
// connection between render passes. Query results are cached in memory for
// 24 hours per parameter set, so repeating an action re-renders without a
// warehouse round trip.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive card price dashboard",
	Long: `The dashboard command opens an interactive session against the warehouse.
Search for cards, pick one, and browse its price history and the
launch-window aggregates without leaving the prompt. Results are cached in
memory for 24 hours per parameter set; 'clear' drops the cache.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Verify connectivity up front and learn which acquisition path
		// serves this run. The probe session is discarded; every query
		// acquires its own.
		stopSpinner := startInlineSpinner(os.Stdout, "connecting to warehouse",
			[]string{"-", "\\", "|", "/"}, 100*time.Millisecond)
		provider := warehouse.NewProvider(cfg)
		session, provenance, err := provider.Acquire(cmd.Context())
		stopSpinner()
		if err != nil {
			return presentQueryError(err)
		}
		session.Close()

		client := queries.New(queries.NewSessionExecutor(provider), cache.New(), cfg.SearchLimit)

		st, err := selection.Load()
		if err != nil {
			return err
		}

		d := &dashboard{
			client:     client,
			provenance: provenance,
			cardID:     st.CardID,
		}
		d.renderHeader()
		return d.run(cmd.Context())
	},
}

// dashboard holds the interactive loop's state: the query client, the
// session provenance shown in the header, the current card, and the last
// search result so rows can be selected by number.
type dashboard struct {
	client     *queries.Client
	provenance warehouse.Provenance
	cardID     string
	lastSearch *warehouse.Result
}

func (d *dashboard) renderHeader() {
	pterm.Println()
	title := pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("MTG Price Dashboard")
	pterm.Println(pterm.DefaultBox.WithTitle(title).WithLeftPadding(1).WithRightPadding(1).WithTopPadding(1).WithBottomPadding(1).Sprint(
		"search <name> [set]   find cards\n" +
			"select <row|card-id>  choose the current card\n" +
			"prices                price history for the current card\n" +
			"launch [set]          averages by days after set launch\n" +
			"clear                 drop all cached results\n" +
			"info                  session and cache details\n" +
			"quit                  leave the dashboard"))
	pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Session:  ") +
		pterm.NewStyle(pterm.FgLightBlue).Sprint(string(d.provenance)))
	pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Card:     ") +
		pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(d.cardID))
	pterm.Println()
}

func (d *dashboard) run(ctx context.Context) error {
	reader := bufio.NewReader(os.Stdin)
	for {
		pterm.Print(pterm.NewStyle(pterm.FgGreen).Sprint("mtgprice> "))
		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF (ctrl-d) leaves the dashboard cleanly
			pterm.Println()
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		command, rest := fields[0], fields[1:]

		switch strings.ToLower(command) {
		case "quit", "exit", "q":
			return nil
		case "help":
			d.renderHeader()
		case "search":
			d.doSearch(ctx, rest)
		case "select":
			d.doSelect(rest)
		case "prices":
			d.doPrices(ctx)
		case "launch":
			d.doLaunch(ctx, rest)
		case "clear":
			d.client.ClearCache()
			pterm.Println("Cache cleared. The next query of each kind refetches.")
		case "info":
			d.doInfo()
		default:
			pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprintf("Unknown command %q. Type 'help' for the command list.", command))
		}
	}
}

func (d *dashboard) doSearch(ctx context.Context, args []string) {
	if len(args) == 0 {
		pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("Usage: search <name-fragment> [set-fragment]"))
		return
	}
	nameFragment := args[0]
	setFragment := strings.Join(args[1:], " ")

	res, hit, err := d.client.SearchCards(ctx, nameFragment, setFragment)
	if err != nil {
		_ = presentQueryError(err)
		return
	}
	d.lastSearch = reorderColumns(res, "NAME", "SET_NAME", "ID")

	cursor.Hide()
	renderNumberedSearch(d.lastSearch)
	cursor.Show()
	pterm.Println(cacheStatusLine(hit))
}

// doSelect accepts either a row number from the last search or a full card id.
func (d *dashboard) doSelect(args []string) {
	if len(args) != 1 {
		pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("Usage: select <row|card-id>"))
		return
	}
	choice := args[0]

	cardID := choice
	if n, err := strconv.Atoi(choice); err == nil {
		if d.lastSearch == nil || d.lastSearch.Empty() {
			pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("Run a search first to select by row number."))
			return
		}
		if n < 1 || n > d.lastSearch.Len() {
			pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprintf("Row %d is out of range (1-%d).", n, d.lastSearch.Len()))
			return
		}
		id := d.lastSearch.Value(n-1, "ID")
		if id == nil {
			pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("The search result has no ID column."))
			return
		}
		cardID = fmt.Sprintf("%v", id)
	}

	if err := selection.Select(cardID); err != nil {
		pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("Could not persist the selection: " + err.Error()))
	}
	d.cardID = cardID
	pterm.Println("Current card set to " + pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(cardID))
}

func (d *dashboard) doPrices(ctx context.Context) {
	res, hit, err := d.client.CardPrices(ctx, d.cardID)
	if err != nil {
		_ = presentQueryError(err)
		return
	}
	if res.Empty() {
		pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("No price history for card " + d.cardID))
		return
	}

	sorted := queries.SortedByColumn(res, "PULL_DATE")
	// Recent entries only; the summary box covers the full range.
	const tail = 15
	recent := sorted
	if sorted.Len() > tail {
		recent = &warehouse.Result{Columns: sorted.Columns, Rows: sorted.Rows[sorted.Len()-tail:]}
	}

	cursor.Hide()
	renderLatestPanel(sorted)
	renderResultTable(recent, 0)
	pterm.Println()
	renderPriceBarChart(sorted, "USD", tail)
	pterm.Println()
	renderPriceStats(res)
	cursor.Show()
	pterm.Println(cacheStatusLine(hit))
}

func (d *dashboard) doLaunch(ctx context.Context, args []string) {
	res, hit, err := d.client.PriceAfterLaunch(ctx)
	if err != nil {
		_ = presentQueryError(err)
		return
	}

	filtered := filterBySet(res, strings.Join(args, " "))
	if filtered.Empty() {
		pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("No launch-window rows matched."))
		return
	}
	sorted := queries.SortedByColumn(filtered, "DATE_DIFF")

	cursor.Hide()
	renderResultTable(sorted, 40)
	pterm.Println()
	renderSetSummary(filtered)
	cursor.Show()
	pterm.Println(cacheStatusLine(hit))
}

func (d *dashboard) doInfo() {
	lines := []string{
		"Session:       " + string(d.provenance),
		"Current card:  " + d.cardID,
		fmt.Sprintf("Cached results: %d", d.client.CacheSize()),
		"Cache TTL:     " + cache.DefaultTTL.String(),
	}
	title := pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Session Info")
	pterm.Println(pterm.DefaultBox.WithTitle(title).WithLeftPadding(1).WithRightPadding(1).WithTopPadding(1).WithBottomPadding(1).Sprint(strings.Join(lines, "\n")))
}

// renderNumberedSearch prints search hits with a leading row number so
// 'select <row>' can refer to them.
func renderNumberedSearch(res *warehouse.Result) {
	if res.Empty() {
		pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("No cards matched."))
		return
	}
	data := pterm.TableData{append([]string{"#"}, res.Columns...)}
	for i, row := range res.Rows {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, strconv.Itoa(i+1))
		for j, v := range row {
			col := ""
			if j < len(res.Columns) {
				col = res.Columns[j]
			}
			cells = append(cells, formatCell(col, v))
		}
		data = append(data, cells)
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
