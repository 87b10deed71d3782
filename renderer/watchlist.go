package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/idxwatch"
)

// WatchlistMarkdown renders a watchlist view as a markdown table, one row
// per view position. Symbols without a cached quote render a single
// "no data" cell so the table never silently shrinks.
func WatchlistMarkdown(c *idxwatch.Collection[idxwatch.Symbol], view []int, state idxwatch.ViewState, cache *idxwatch.QuoteCache) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Watchlist: %s\n\n", c.Name)
	fmt.Fprintf(&b, "%s\n\n", indexLine(cache))
	if state.Search != "" {
		fmt.Fprintf(&b, "Filter: `%s` (%d of %d)\n\n", state.Search, len(view), len(c.Items))
	}

	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
		columnHeader("Symbol", idxwatch.ColSymbol, state),
		columnHeader("Name", idxwatch.ColName, state),
		columnHeader("Price", idxwatch.ColPrice, state),
		columnHeader("Change", idxwatch.ColChange, state),
		columnHeader("Chg%", idxwatch.ColChangePercent, state),
		columnHeader("Volume", idxwatch.ColVolume, state),
		columnHeader("Turnover", idxwatch.ColTurnover, state),
	)
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|")

	for _, pos := range view {
		sym := c.Items[pos]
		q, ok := cache.Get(sym)
		if !ok {
			fmt.Fprintf(&b, "| %s | no data | | | | | |\n", sym.DisplayName())
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			sym.DisplayName(),
			q.ShortName,
			q.Price.StringFixed(0),
			q.Change.StringFixed(0),
			signedPercent(q.ChangePercent),
			compactCount(q.Volume),
			idxwatch.IDR(q.Turnover()),
		)
	}
	return b.String()
}
