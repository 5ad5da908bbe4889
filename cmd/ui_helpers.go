package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"github.com/applewjr/mtg-price-tracker/internal/queries"
	"github.com/applewjr/mtg-price-tracker/internal/warehouse"
)

// startInlineSpinner starts a simple inline spinner animation on a single line.
// It displays rotating animation frames followed by the provided text, updating
// the same line in the terminal. The spinner runs in a separate goroutine and
// can be stopped by calling the returned function.
//
// The spinner automatically clears the line when stopped and handles text length
// limits to prevent display issues.
//
// Parameters:
//   - w: The io.Writer to write the spinner to (typically os.Stdout or os.Stderr)
//   - text: The text to display after the spinner animation
//   - frames: Array of strings representing animation frames (e.g., ["|", "/", "-", "\\"])
//   - interval: Time duration between frame updates
//
// Returns a function that stops the spinner and cleans up when called.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				// Clear the spinner line completely, then return
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				// primitive protection against very long lines
				if len(line) > 2000 {
					line = line[:2000]
				}
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
	}
}

// formatCell renders a single result value for table display.
// Null values render as "-", prices as fixed two-decimal dollars,
// and timestamps as a plain date.
func formatCell(column string, v any) string {
	if v == nil {
		return "-"
	}
	switch val := v.(type) {
	case time.Time:
		return val.Format("2006-01-02")
	case float64:
		if isPriceColumn(column) {
			return formatUSD(val)
		}
		return fmt.Sprintf("%g", val)
	case float32:
		if isPriceColumn(column) {
			return formatUSD(float64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func isPriceColumn(column string) bool {
	c := strings.ToUpper(column)
	return strings.Contains(c, "USD") || strings.Contains(c, "PRICE")
}

func formatUSD(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// renderResultTable prints a query result as a pterm table with a header row.
// At most maxRows data rows are printed; pass maxRows <= 0 for no limit.
func renderResultTable(res *warehouse.Result, maxRows int) {
	if res.Empty() {
		pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("No rows returned."))
		return
	}

	data := pterm.TableData{res.Columns}
	for i, row := range res.Rows {
		if maxRows > 0 && i >= maxRows {
			break
		}
		cells := make([]string, len(row))
		for j, v := range row {
			col := ""
			if j < len(res.Columns) {
				col = res.Columns[j]
			}
			cells[j] = formatCell(col, v)
		}
		data = append(data, cells)
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	if maxRows > 0 && res.Len() > maxRows {
		pterm.Println(pterm.NewStyle(pterm.FgGray).Sprintf("… %d more rows", res.Len()-maxRows))
	}
}

// renderPriceStats prints avg/min/max summaries for the USD and USD_FOIL
// columns of a price history result.
func renderPriceStats(res *warehouse.Result) {
	var lines []string
	for _, col := range []string{"USD", "USD_FOIL"} {
		st := queries.StatsFor(res, col)
		if st.Count == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-9s avg %s   min %s   max %s   (%d samples)",
			col, formatUSD(st.Avg), formatUSD(st.Min), formatUSD(st.Max), st.Count))
	}
	if len(lines) == 0 {
		return
	}
	title := pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Price Summary")
	box := pterm.DefaultBox.WithTitle(title).WithLeftPadding(1).WithRightPadding(1).WithTopPadding(1).WithBottomPadding(1).Sprint(strings.Join(lines, "\n"))
	pterm.Println(box)
}

// cacheStatusLine reports whether the last result came from the in-memory
// cache or from a fresh warehouse round trip.
func cacheStatusLine(hit bool) string {
	if hit {
		return pterm.NewStyle(pterm.FgGray).Sprint("(served from cache)")
	}
	return pterm.NewStyle(pterm.FgGray).Sprint("(fetched from warehouse)")
}

// reorderColumns returns a copy of res with the preferred columns first, in
// the given order, followed by the remaining columns in their original
// order. Preferred names that are absent are skipped.
func reorderColumns(res *warehouse.Result, preferred ...string) *warehouse.Result {
	if res == nil || len(res.Columns) == 0 {
		return res
	}

	order := make([]int, 0, len(res.Columns))
	taken := make(map[int]bool, len(res.Columns))
	for _, name := range preferred {
		if idx := res.ColumnIndex(name); idx >= 0 && !taken[idx] {
			order = append(order, idx)
			taken[idx] = true
		}
	}
	for i := range res.Columns {
		if !taken[i] {
			order = append(order, i)
		}
	}

	out := &warehouse.Result{
		Columns: make([]string, len(order)),
		Rows:    make([][]any, res.Len()),
	}
	for j, idx := range order {
		out.Columns[j] = res.Columns[idx]
	}
	for i, row := range res.Rows {
		cells := make([]any, len(order))
		for j, idx := range order {
			cells[j] = row[idx]
		}
		out.Rows[i] = cells
	}
	return out
}

// renderLatestPanel shows the most recent prices for a card as three
// side-by-side metric boxes: regular, foil, and the pull date they are from.
// rows must already be sorted by pull date, oldest first.
func renderLatestPanel(sorted *warehouse.Result) {
	if sorted.Empty() {
		return
	}
	last := sorted.Len() - 1

	metricBox := func(title, value string) string {
		return pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgLightCyan).Sprint(title)).
			WithLeftPadding(1).WithRightPadding(1).WithTopPadding(1).WithBottomPadding(1).
			Sprint(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(value))
	}

	panels := pterm.Panels{{
		{Data: metricBox("Latest USD", formatCell("USD", sorted.Value(last, "USD")))},
		{Data: metricBox("Latest Foil", formatCell("USD_FOIL", sorted.Value(last, "USD_FOIL")))},
		{Data: metricBox("As Of", formatCell("PULL_DATE", sorted.Value(last, "PULL_DATE")))},
	}}
	_ = pterm.DefaultPanel.WithPanels(panels).Render()
}

// renderPriceBarChart draws a bar per pull date for the given price column,
// newest entries last. Bars scale in cents so sub-dollar movement stays
// visible; the printed label carries the real price.
func renderPriceBarChart(sorted *warehouse.Result, column string, maxBars int) {
	if sorted.Empty() {
		return
	}
	rows := sorted.Rows
	if maxBars > 0 && len(rows) > maxBars {
		rows = rows[len(rows)-maxBars:]
	}

	dateIdx := sorted.ColumnIndex("PULL_DATE")
	valIdx := sorted.ColumnIndex(column)
	if valIdx < 0 {
		return
	}

	var bars pterm.Bars
	for _, row := range rows {
		f, ok := queries.AsFloat(row[valIdx])
		if !ok {
			continue
		}
		label := ""
		if dateIdx >= 0 {
			label = formatCell("PULL_DATE", row[dateIdx])
		}
		bars = append(bars, pterm.Bar{
			Label: fmt.Sprintf("%s %s", label, formatUSD(f)),
			Value: int(f * 100),
			Style: pterm.NewStyle(pterm.FgCyan),
		})
	}
	if len(bars) == 0 {
		return
	}
	pterm.Println(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprint(column + " trend"))
	_ = pterm.DefaultBarChart.WithHorizontal().WithBars(bars).Render()
}
