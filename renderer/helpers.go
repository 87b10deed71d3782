// Package renderer turns idxwatch state into markdown, ready for a
// terminal renderer or a plain pager.
package renderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/etnz/idxwatch"
)

// sparkRunes are the eight block heights of a sparkline, lowest first.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a price series as a row of block characters, scaled to
// the series' own min and max.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	// Downsample to width points by simple striding.
	if len(values) > width {
		sampled := make([]float64, width)
		for i := range sampled {
			sampled[i] = values[i*len(values)/width]
		}
		values = sampled
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// signedPercent renders a change percent with an explicit sign, the way
// traders read it.
func signedPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// compactCount renders large share counts with a suffix: 1234567 -> 1.2M.
func compactCount(v int64) string {
	switch {
	case v >= 1_000_000_000_000:
		return fmt.Sprintf("%.1fT", float64(v)/1e12)
	case v >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(v)/1e9)
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(v)/1e6)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", float64(v)/1e3)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// columnHeader decorates the active sort column with its direction arrow.
func columnHeader(label string, col idxwatch.SortColumn, state idxwatch.ViewState) string {
	if state.Column == col {
		return label + " " + state.Direction.Indicator()
	}
	return label
}

// indexLine is the one-line market header above every table.
func indexLine(cache *idxwatch.QuoteCache) string {
	q, ok := cache.Get(idxwatch.IndexSymbol)
	if !ok {
		return fmt.Sprintf("**%s**: no data", idxwatch.IndexSymbol.DisplayName())
	}
	return fmt.Sprintf("**%s**: %s (%s)", q.Symbol.DisplayName(), q.Price.StringFixed(2), signedPercent(q.ChangePercent))
}
