package idxwatch

import "github.com/shopspring/decimal"

// Quote is the most recent market data for one symbol, produced wholesale by
// a refresh cycle. Pointer fields are fundamentals the provider may omit.
type Quote struct {
	Symbol        Symbol
	ShortName     string
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent float64
	Open          decimal.Decimal
	High          decimal.Decimal
	Low           decimal.Decimal
	PrevClose     decimal.Decimal
	Volume        int64

	LongName string
	Sector   string
	Industry string

	MarketCap        *int64
	TrailingPE       *float64
	DividendYield    *float64
	FiftyTwoWeekHigh *decimal.Decimal
	FiftyTwoWeekLow  *decimal.Decimal
	Beta             *float64
	AverageVolume    *int64
}

// Turnover is the traded value approximation (price × volume) used as a
// sortable column.
func (q Quote) Turnover() decimal.Decimal {
	return q.Price.Mul(decimal.NewFromInt(q.Volume))
}

// Chart is the trailing daily close series returned by the provider for the
// detail sparkline. High and Low bound the series.
type Chart struct {
	Closes []float64
	High   float64
	Low    float64
}

// NewsItem is a headline relevant to a symbol or feed.
type NewsItem struct {
	Title       string
	Publisher   string
	PublishedAt int64 // unix seconds
	URL         string
	Summary     string
}
