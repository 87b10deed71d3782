package idxwatch

import (
	"fmt"
	"slices"
	"strings"
)

// SortDirection flips the column comparator. It never flips the tie-break:
// ties always fall back to insertion order.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Indicator returns the arrow rendered next to the sorted column header.
func (d SortDirection) Indicator() string {
	if d == Ascending {
		return "▲"
	}
	return "▼"
}

// SortColumn is a tagged enumeration of the sortable columns. Each tag
// selects its own typed comparator at sort time. ColNone keeps insertion
// order.
type SortColumn int

const (
	ColNone SortColumn = iota
	ColSymbol
	ColName
	ColPrice
	ColChange
	ColChangePercent
	ColVolume
	ColTurnover
	ColLots
	ColAvgPrice
	ColValue
	ColCost
	ColPL
	ColPLPercent
)

var columnNames = map[SortColumn]string{
	ColNone:          "none",
	ColSymbol:        "symbol",
	ColName:          "name",
	ColPrice:         "price",
	ColChange:        "change",
	ColChangePercent: "chg%",
	ColVolume:        "volume",
	ColTurnover:      "turnover",
	ColLots:          "lots",
	ColAvgPrice:      "avg",
	ColValue:         "value",
	ColCost:          "cost",
	ColPL:            "pl",
	ColPLPercent:     "pl%",
}

func (c SortColumn) String() string {
	if name, ok := columnNames[c]; ok {
		return name
	}
	return fmt.Sprintf("SortColumn(%d)", int(c))
}

// ParseSortColumn resolves a column name as typed on the command line.
func ParseSortColumn(name string) (SortColumn, error) {
	for col, n := range columnNames {
		if n == name {
			return col, nil
		}
	}
	return ColNone, fmt.Errorf("unknown sort column %q", name)
}

// WatchlistColumns are the columns a watchlist view can sort by, in header
// cycle order.
var WatchlistColumns = []SortColumn{
	ColSymbol, ColName, ColPrice, ColChange, ColChangePercent, ColVolume, ColTurnover,
}

// PortfolioColumns are the columns a portfolio view can sort by, in header
// cycle order.
var PortfolioColumns = []SortColumn{
	ColSymbol, ColName, ColLots, ColAvgPrice, ColPrice, ColValue, ColCost, ColPL, ColPLPercent,
}

// ViewState is the per-kind projection configuration: an optional search
// term plus a sort choice. Sort column and direction persist across refresh
// cycles; the search term resets when the active collection switches.
type ViewState struct {
	Search    string
	Column    SortColumn
	Direction SortDirection
}

// ResetForSwitch clears the search term on an active-collection switch. The
// sort choice persists until the user changes it.
func (s *ViewState) ResetForSwitch() { s.Search = "" }

// CycleColumn advances the sort column through the given column cycle,
// returning to ColNone after the last one.
func (s *ViewState) CycleColumn(cycle []SortColumn) {
	if s.Column == ColNone {
		if len(cycle) > 0 {
			s.Column = cycle[0]
		}
		return
	}
	for i, col := range cycle {
		if col != s.Column {
			continue
		}
		if i+1 < len(cycle) {
			s.Column = cycle[i+1]
		} else {
			s.Column = ColNone
		}
		return
	}
	s.Column = ColNone
}

// matches reports whether the display symbol contains the search term as a
// case-insensitive substring. An empty term retains everything.
func matches(sym Symbol, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToUpper(sym.DisplayName()), strings.ToUpper(term))
}

// cmpFloat is a NaN-safe float comparator; NaN compares equal to anything.
func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ComputeWatchlistView derives the view for a watchlist: an ordered
// sequence of positions into the unfiltered collection, filtered by the
// search term and stably sorted by the chosen column. Symbols without a
// cached quote sort last regardless of direction.
func ComputeWatchlistView(c *Collection[Symbol], state ViewState, cache *QuoteCache) []int {
	view := make([]int, 0, len(c.Items))
	for i, sym := range c.Items {
		if matches(sym, state.Search) {
			view = append(view, i)
		}
	}
	if state.Column == ColNone {
		return view
	}

	slices.SortStableFunc(view, func(ai, bi int) int {
		qa, aok := cache.Get(c.Items[ai])
		qb, bok := cache.Get(c.Items[bi])
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1 // missing quotes always sort last
		case !bok:
			return -1
		}
		cmp := compareQuotes(state.Column, c.Items[ai], qa, c.Items[bi], qb)
		if state.Direction == Descending {
			cmp = -cmp
		}
		return cmp
	})
	return view
}

func compareQuotes(col SortColumn, sa Symbol, qa Quote, sb Symbol, qb Quote) int {
	switch col {
	case ColSymbol:
		return strings.Compare(string(sa), string(sb))
	case ColName:
		return strings.Compare(qa.ShortName, qb.ShortName)
	case ColPrice:
		return qa.Price.Cmp(qb.Price)
	case ColChange:
		return qa.Change.Cmp(qb.Change)
	case ColChangePercent:
		return cmpFloat(qa.ChangePercent, qb.ChangePercent)
	case ColVolume:
		return cmpFloat(float64(qa.Volume), float64(qb.Volume))
	case ColTurnover:
		return qa.Turnover().Cmp(qb.Turnover())
	default:
		return 0
	}
}

// ComputePortfolioView derives the view for a portfolio, mirroring
// ComputeWatchlistView. Quote-dependent columns sort positions without a
// cached quote last regardless of direction; columns derived from the
// holding alone ignore the cache.
func ComputePortfolioView(c *Collection[Holding], state ViewState, cache *QuoteCache) []int {
	view := make([]int, 0, len(c.Items))
	for i, h := range c.Items {
		if matches(h.Symbol, state.Search) {
			view = append(view, i)
		}
	}
	if state.Column == ColNone {
		return view
	}

	quoteDependent := false
	switch state.Column {
	case ColName, ColPrice, ColValue, ColPL, ColPLPercent:
		quoteDependent = true
	}

	slices.SortStableFunc(view, func(ai, bi int) int {
		ha, hb := c.Items[ai], c.Items[bi]
		qa, aok := cache.Get(ha.Symbol)
		qb, bok := cache.Get(hb.Symbol)
		if quoteDependent {
			switch {
			case !aok && !bok:
				return 0
			case !aok:
				return 1
			case !bok:
				return -1
			}
		}
		cmp := compareHoldings(state.Column, ha, qa, hb, qb)
		if state.Direction == Descending {
			cmp = -cmp
		}
		return cmp
	})
	return view
}

func compareHoldings(col SortColumn, ha Holding, qa Quote, hb Holding, qb Quote) int {
	switch col {
	case ColSymbol:
		return strings.Compare(string(ha.Symbol), string(hb.Symbol))
	case ColName:
		return strings.Compare(qa.ShortName, qb.ShortName)
	case ColLots:
		return cmpFloat(float64(ha.Lots), float64(hb.Lots))
	case ColAvgPrice:
		return ha.AvgPrice.Cmp(hb.AvgPrice)
	case ColPrice:
		return qa.Price.Cmp(qb.Price)
	case ColValue:
		return ha.Metrics(qa.Price).Value.Cmp(hb.Metrics(qb.Price).Value)
	case ColCost:
		return ha.CostBasis().Cmp(hb.CostBasis())
	case ColPL:
		return ha.Metrics(qa.Price).PL.Cmp(hb.Metrics(qb.Price).PL)
	case ColPLPercent:
		return cmpFloat(ha.Metrics(qa.Price).PLPercent, hb.Metrics(qb.Price).PLPercent)
	default:
		return 0
	}
}
