package idxwatch

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// SharesPerLot is the IDX trading unit: one lot is 100 shares.
const SharesPerLot = 100

// Holding is a position in a portfolio. Value and profit are derived from
// the current price, never stored.
type Holding struct {
	Symbol   Symbol
	Lots     uint32
	AvgPrice decimal.Decimal
}

// Shares returns the holding's quantity in shares.
func (h Holding) Shares() int64 { return int64(h.Lots) * SharesPerLot }

// CostBasis returns the total acquisition cost.
func (h Holding) CostBasis() decimal.Decimal {
	return h.AvgPrice.Mul(decimal.NewFromInt(h.Shares()))
}

// HoldingMetrics are the derived figures for one holding at a given price.
type HoldingMetrics struct {
	Value     decimal.Decimal
	Cost      decimal.Decimal
	PL        decimal.Decimal
	PLPercent float64
}

// Metrics computes market value, cost basis and profit/loss at price.
func (h Holding) Metrics(price decimal.Decimal) HoldingMetrics {
	value := price.Mul(decimal.NewFromInt(h.Shares()))
	cost := h.CostBasis()
	pl := value.Sub(cost)
	var plPct float64
	if cost.IsPositive() {
		plPct, _ = pl.Div(cost).Mul(decimal.NewFromInt(100)).Float64()
	}
	return HoldingMetrics{Value: value, Cost: cost, PL: pl, PLPercent: plPct}
}

// AddHolding merges lots into an existing position of the collection,
// recomputing the weighted average acquisition price, or appends a new
// position. It returns false, leaving the position unchanged, when the
// merged lot count would overflow.
func AddHolding(c *Collection[Holding], sym Symbol, lots uint32, avgPrice decimal.Decimal) bool {
	for i := range c.Items {
		h := &c.Items[i]
		if h.Symbol != sym {
			continue
		}
		if uint64(h.Lots)+uint64(lots) > math.MaxUint32 {
			return false
		}
		added := Holding{Symbol: sym, Lots: lots, AvgPrice: avgPrice}
		totalLots := h.Lots + lots
		totalCost := h.CostBasis().Add(added.CostBasis())
		h.AvgPrice = totalCost.Div(decimal.NewFromInt(int64(totalLots) * SharesPerLot))
		h.Lots = totalLots
		return true
	}
	c.Items = append(c.Items, Holding{Symbol: sym, Lots: lots, AvgPrice: avgPrice})
	return true
}

// UpdateHolding overwrites the lot count and average price of an existing
// position. Unknown symbols are ignored.
func UpdateHolding(c *Collection[Holding], sym Symbol, lots uint32, avgPrice decimal.Decimal) {
	for i := range c.Items {
		if c.Items[i].Symbol == sym {
			c.Items[i].Lots = lots
			c.Items[i].AvgPrice = avgPrice
			return
		}
	}
}

// RemoveHolding deletes the position for sym, preserving the order of the
// remaining positions. It reports whether the symbol was held at all.
func RemoveHolding(c *Collection[Holding], sym Symbol) bool {
	before := len(c.Items)
	c.Items = slices.DeleteFunc(c.Items, func(h Holding) bool { return h.Symbol == sym })
	return len(c.Items) < before
}

// HoldingSymbols returns the symbols of the collection in insertion order.
func HoldingSymbols(c *Collection[Holding]) []Symbol {
	syms := make([]Symbol, len(c.Items))
	for i, h := range c.Items {
		syms[i] = h.Symbol
	}
	return syms
}

// Allocation is one slice of a portfolio's value breakdown.
type Allocation struct {
	Symbol  Symbol
	Value   decimal.Decimal
	Percent float64
}

// Allocate returns the portfolio's value per symbol, sorted by value
// descending, with each position's share of the total. Positions without a
// cached quote count as zero.
func Allocate(c *Collection[Holding], cache *QuoteCache) []Allocation {
	out := make([]Allocation, 0, len(c.Items))
	total := decimal.Zero
	for _, h := range c.Items {
		value := decimal.Zero
		if q, ok := cache.Get(h.Symbol); ok {
			value = q.Price.Mul(decimal.NewFromInt(h.Shares()))
		}
		total = total.Add(value)
		out = append(out, Allocation{Symbol: h.Symbol, Value: value})
	}
	slices.SortStableFunc(out, func(a, b Allocation) int { return b.Value.Cmp(a.Value) })
	if total.IsPositive() {
		for i := range out {
			out[i].Percent, _ = out[i].Value.Div(total).Mul(decimal.NewFromInt(100)).Float64()
		}
	}
	return out
}
