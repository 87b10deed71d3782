package yahoo

import (
	"context"
	"fmt"
	"math"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/idxwatch"
)

// Chart fetches three months of daily closes for a sparkline. The chart
// endpoint is crumb-free, so no session dance here.
func (c *Client) Chart(ctx context.Context, sym idxwatch.Symbol) (idxwatch.Chart, error) {
	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("range", "3mo")
	addr := fmt.Sprintf("%s/%s?%s", c.chartURL, url.PathEscape(sym.ToProvider()), params.Encode())

	var jobj any
	if err := c.jget(ctx, addr, &jobj); err != nil {
		return idxwatch.Chart{}, fmt.Errorf("cannot retrieve chart for %q: %w", sym, err)
	}

	if jerr, err := jsonpath.Get("$.chart.error", jobj); err == nil && jerr != nil {
		return idxwatch.Chart{}, fmt.Errorf("chart API error for %q: %v", sym, jerr)
	}

	path := "$.chart.result[0].indicators.quote[0].close"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return idxwatch.Chart{}, fmt.Errorf("cannot parse chart for %q: %q %w", sym, path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return idxwatch.Chart{}, fmt.Errorf("cannot parse chart for %q: %q is not a list", sym, path)
	}

	// Yahoo pads days without a trade with nulls, skip them.
	closes := make([]float64, 0, len(jlist))
	high, low := math.Inf(-1), math.Inf(1)
	for _, jv := range jlist {
		v, ok := jv.(float64)
		if !ok {
			continue
		}
		closes = append(closes, v)
		high = math.Max(high, v)
		low = math.Min(low, v)
	}
	if len(closes) == 0 {
		return idxwatch.Chart{}, fmt.Errorf("no price data in chart for %q", sym)
	}
	return idxwatch.Chart{Closes: closes, High: high, Low: low}, nil
}
