package idxwatch

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestHoldingDerivedMetrics(t *testing.T) {
	h := Holding{Symbol: "BBCA", Lots: 10, AvgPrice: decimal.NewFromInt(8000)}

	if h.Shares() != 1000 {
		t.Errorf("Shares = %d, want 1000", h.Shares())
	}
	if !h.CostBasis().Equal(decimal.NewFromInt(8_000_000)) {
		t.Errorf("CostBasis = %s, want 8000000", h.CostBasis())
	}

	m := h.Metrics(decimal.NewFromInt(9000))
	if !m.Value.Equal(decimal.NewFromInt(9_000_000)) {
		t.Errorf("Value = %s, want 9000000", m.Value)
	}
	if !m.PL.Equal(decimal.NewFromInt(1_000_000)) {
		t.Errorf("PL = %s, want 1000000", m.PL)
	}
	if m.PLPercent != 12.5 {
		t.Errorf("PLPercent = %v, want 12.5", m.PLPercent)
	}
}

func TestHoldingMetricsZeroCost(t *testing.T) {
	h := Holding{Symbol: "BBCA", Lots: 0, AvgPrice: decimal.Zero}
	m := h.Metrics(decimal.NewFromInt(9000))
	if m.PLPercent != 0 {
		t.Errorf("PLPercent with zero cost = %v, want 0", m.PLPercent)
	}
}

func TestAddHoldingMergesWeightedAverage(t *testing.T) {
	c := &Collection[Holding]{Name: "Default"}

	if !AddHolding(c, "BBCA", 100, decimal.NewFromInt(8000)) {
		t.Fatal("first add must succeed")
	}
	if !AddHolding(c, "BBCA", 100, decimal.NewFromInt(9000)) {
		t.Fatal("merge must succeed")
	}

	if len(c.Items) != 1 {
		t.Fatalf("expected one merged position, got %d", len(c.Items))
	}
	h := c.Items[0]
	if h.Lots != 200 {
		t.Errorf("Lots = %d, want 200", h.Lots)
	}
	// (100*100*8000 + 100*100*9000) / (200*100) = 8500
	if !h.AvgPrice.Equal(decimal.NewFromInt(8500)) {
		t.Errorf("AvgPrice = %s, want 8500", h.AvgPrice)
	}
}

func TestAddHoldingOverflowRejected(t *testing.T) {
	c := &Collection[Holding]{Name: "Default"}
	AddHolding(c, "BBCA", 3_000_000_000, decimal.NewFromInt(8000))

	if AddHolding(c, "BBCA", 2_000_000_000, decimal.NewFromInt(9000)) {
		t.Fatalf("merge beyond %d lots must be rejected", uint32(math.MaxUint32))
	}
	h := c.Items[0]
	if h.Lots != 3_000_000_000 || !h.AvgPrice.Equal(decimal.NewFromInt(8000)) {
		t.Error("a rejected merge must leave the position unchanged")
	}
}

func TestRemoveHoldingPreservesOrder(t *testing.T) {
	c := &Collection[Holding]{Name: "Default", Items: []Holding{
		{Symbol: "BBCA", Lots: 1, AvgPrice: decimal.NewFromInt(8000)},
		{Symbol: "TLKM", Lots: 2, AvgPrice: decimal.NewFromInt(3500)},
		{Symbol: "ASII", Lots: 3, AvgPrice: decimal.NewFromInt(5000)},
	}}

	RemoveHolding(c, "TLKM")

	got := HoldingSymbols(c)
	want := []Symbol{"BBCA", "ASII"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("symbols after remove = %v, want %v", got, want)
	}
}

func TestAllocate(t *testing.T) {
	c := &Collection[Holding]{Name: "Default", Items: []Holding{
		{Symbol: "BBCA", Lots: 1, AvgPrice: decimal.NewFromInt(8000)}, // value 750k
		{Symbol: "TLKM", Lots: 10, AvgPrice: decimal.NewFromInt(3000)}, // value 2.25M
		{Symbol: "GOTO", Lots: 5, AvgPrice: decimal.NewFromInt(100)},   // no quote
	}}
	cache := NewQuoteCache()
	cache.Update(Batch{
		"BBCA": Found(quoteOf("BBCA", 7500)),
		"TLKM": Found(quoteOf("TLKM", 2250)),
	})

	alloc := Allocate(c, cache)
	if len(alloc) != 3 {
		t.Fatalf("len = %d, want 3", len(alloc))
	}
	if alloc[0].Symbol != "TLKM" || alloc[1].Symbol != "BBCA" || alloc[2].Symbol != "GOTO" {
		t.Errorf("order = %v %v %v, want value descending", alloc[0].Symbol, alloc[1].Symbol, alloc[2].Symbol)
	}
	if alloc[0].Percent != 75 {
		t.Errorf("TLKM share = %v, want 75", alloc[0].Percent)
	}
	if !alloc[2].Value.IsZero() {
		t.Errorf("unquoted position value = %s, want 0", alloc[2].Value)
	}
}
