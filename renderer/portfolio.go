package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/idxwatch"
	"github.com/shopspring/decimal"
)

// PortfolioMarkdown renders a portfolio view as a markdown table with a
// totals line. Holdings without a cached quote contribute their cost basis
// to the totals but show no market value.
func PortfolioMarkdown(c *idxwatch.Collection[idxwatch.Holding], view []int, state idxwatch.ViewState, cache *idxwatch.QuoteCache) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio: %s\n\n", c.Name)
	fmt.Fprintf(&b, "%s\n\n", indexLine(cache))
	if state.Search != "" {
		fmt.Fprintf(&b, "Filter: `%s` (%d of %d)\n\n", state.Search, len(view), len(c.Items))
	}

	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
		columnHeader("Symbol", idxwatch.ColSymbol, state),
		columnHeader("Lots", idxwatch.ColLots, state),
		columnHeader("Avg", idxwatch.ColAvgPrice, state),
		columnHeader("Price", idxwatch.ColPrice, state),
		columnHeader("Value", idxwatch.ColValue, state),
		columnHeader("P&L", idxwatch.ColPL, state),
		columnHeader("P&L%", idxwatch.ColPLPercent, state),
	)
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")

	totalValue, totalCost := decimal.Zero, decimal.Zero
	allQuoted := true
	for _, pos := range view {
		h := c.Items[pos]
		totalCost = totalCost.Add(h.CostBasis())
		q, ok := cache.Get(h.Symbol)
		if !ok {
			allQuoted = false
			fmt.Fprintf(&b, "| %s | %d | %s | no data | | | |\n", h.Symbol.DisplayName(), h.Lots, h.AvgPrice.StringFixed(0))
			continue
		}
		m := h.Metrics(q.Price)
		totalValue = totalValue.Add(m.Value)
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s |\n",
			h.Symbol.DisplayName(),
			h.Lots,
			h.AvgPrice.StringFixed(0),
			q.Price.StringFixed(0),
			idxwatch.IDR(m.Value),
			idxwatch.IDR(m.PL),
			signedPercent(m.PLPercent),
		)
	}

	fmt.Fprintf(&b, "\n**Cost**: %s", idxwatch.IDR(totalCost))
	if allQuoted {
		pl := totalValue.Sub(totalCost)
		fmt.Fprintf(&b, " · **Value**: %s · **P&L**: %s", idxwatch.IDR(totalValue), idxwatch.IDR(pl))
	}
	fmt.Fprintln(&b)
	return b.String()
}

// AllocationMarkdown renders the portfolio weight of each quoted holding.
func AllocationMarkdown(c *idxwatch.Collection[idxwatch.Holding], cache *idxwatch.QuoteCache) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Allocation: %s\n\n", c.Name)

	allocs := idxwatch.Allocate(c, cache)
	if len(allocs) == 0 {
		fmt.Fprintln(&b, "No quoted holdings.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Value | Weight |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, a := range allocs {
		fmt.Fprintf(&b, "| %s | %s | %.1f%% |\n", a.Symbol.DisplayName(), idxwatch.IDR(a.Value), a.Percent)
	}
	return b.String()
}
