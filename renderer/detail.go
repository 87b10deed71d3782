package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/idxwatch"
)

// sparkWidth keeps the detail sparkline readable on a narrow terminal.
const sparkWidth = 60

// DetailMarkdown renders the full detail pane for one symbol: quote
// fields, an optional price sparkline, and recent news. Chart and news are
// optional, a detail without them still renders.
func DetailMarkdown(q idxwatch.Quote, chart *idxwatch.Chart, news []idxwatch.NewsItem) string {
	var b strings.Builder
	name := q.ShortName
	if q.LongName != "" {
		name = q.LongName
	}
	fmt.Fprintf(&b, "# %s · %s\n\n", q.Symbol.DisplayName(), name)

	fmt.Fprintf(&b, "**%s** (%s)\n\n", q.Price.StringFixed(0), signedPercent(q.ChangePercent))

	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Open | %s |\n", q.Open.StringFixed(0))
	fmt.Fprintf(&b, "| High | %s |\n", q.High.StringFixed(0))
	fmt.Fprintf(&b, "| Low | %s |\n", q.Low.StringFixed(0))
	fmt.Fprintf(&b, "| Prev close | %s |\n", q.PrevClose.StringFixed(0))
	fmt.Fprintf(&b, "| Volume | %s |\n", compactCount(q.Volume))
	if q.AverageVolume != nil {
		fmt.Fprintf(&b, "| Avg volume | %s |\n", compactCount(*q.AverageVolume))
	}
	if q.MarketCap != nil {
		fmt.Fprintf(&b, "| Market cap | %s |\n", compactCount(*q.MarketCap))
	}
	if q.TrailingPE != nil {
		fmt.Fprintf(&b, "| P/E | %.2f |\n", *q.TrailingPE)
	}
	if q.DividendYield != nil {
		fmt.Fprintf(&b, "| Dividend yield | %.2f%% |\n", *q.DividendYield)
	}
	if q.Beta != nil {
		fmt.Fprintf(&b, "| Beta | %.2f |\n", *q.Beta)
	}
	if q.FiftyTwoWeekHigh != nil && q.FiftyTwoWeekLow != nil {
		fmt.Fprintf(&b, "| 52w range | %s - %s |\n", q.FiftyTwoWeekLow.StringFixed(0), q.FiftyTwoWeekHigh.StringFixed(0))
	}
	if q.Sector != "" {
		fmt.Fprintf(&b, "| Sector | %s |\n", q.Sector)
	}
	if q.Industry != "" {
		fmt.Fprintf(&b, "| Industry | %s |\n", q.Industry)
	}

	if chart != nil && len(chart.Closes) > 0 {
		fmt.Fprintf(&b, "\n## 3 months\n\n")
		fmt.Fprintf(&b, "```\n%s\n```\n", Sparkline(chart.Closes, sparkWidth))
		fmt.Fprintf(&b, "High %.0f · Low %.0f\n", chart.High, chart.Low)
	}

	if len(news) > 0 {
		fmt.Fprintf(&b, "\n## News\n\n")
		for _, n := range news {
			when := ""
			if n.PublishedAt > 0 {
				when = time.Unix(n.PublishedAt, 0).Format("02 Jan 15:04")
			}
			fmt.Fprintf(&b, "- **%s** (%s %s)\n", n.Title, n.Publisher, when)
		}
	}
	return b.String()
}

// NewsMarkdown renders a merged news list, flagging items that mention any
// of the given symbols.
func NewsMarkdown(items []idxwatch.NewsItem, mentioned func(title string) idxwatch.Symbol) string {
	var b strings.Builder
	fmt.Fprintln(&b, "# News")
	fmt.Fprintln(&b)
	if len(items) == 0 {
		fmt.Fprintln(&b, "No news.")
		return b.String()
	}
	for _, n := range items {
		tag := ""
		if mentioned != nil {
			if sym := mentioned(n.Title); sym != "" {
				tag = fmt.Sprintf(" `%s`", sym.DisplayName())
			}
		}
		when := ""
		if n.PublishedAt > 0 {
			when = time.Unix(n.PublishedAt, 0).Format("02 Jan 15:04") + " · "
		}
		fmt.Fprintf(&b, "- %s%s%s (%s)\n", when, n.Title, tag, n.Publisher)
	}
	return b.String()
}
