package yahoo

import (
	"encoding/json"

	"github.com/etnz/idxwatch"
	"github.com/shopspring/decimal"
)

// The v7/finance/quote wire layout. Yahoo omits any field it has no value
// for, so everything beyond the symbol is optional.
type quoteEnvelope struct {
	QuoteResponse struct {
		Result []quoteResult   `json:"result"`
		Error  json.RawMessage `json:"error"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                     string   `json:"symbol"`
	ShortName                  *string  `json:"shortName"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketChange        *float64 `json:"regularMarketChange"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
	RegularMarketOpen          *float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh       *float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *float64 `json:"regularMarketDayLow"`
	RegularMarketVolume        *int64   `json:"regularMarketVolume"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	LongName                   *string  `json:"longName"`
	Sector                     *string  `json:"sector"`
	Industry                   *string  `json:"industry"`
	MarketCap                  *int64   `json:"marketCap"`
	TrailingPE                 *float64 `json:"trailingPE"`
	DividendYield              *float64 `json:"dividendYield"`
	FiftyTwoWeekHigh           *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            *float64 `json:"fiftyTwoWeekLow"`
	Beta                       *float64 `json:"beta"`
	AverageVolume              *int64   `json:"averageVolume"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *float64) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*p)
}

func optNum(p *float64) *decimal.Decimal {
	if p == nil {
		return nil
	}
	d := decimal.NewFromFloat(*p)
	return &d
}

// quote maps the wire result onto the domain quote, keying it by the
// provider-independent symbol.
func (r quoteResult) quote() idxwatch.Quote {
	q := idxwatch.Quote{
		Symbol:           idxwatch.FromProvider(r.Symbol),
		ShortName:        str(r.ShortName),
		Price:            num(r.RegularMarketPrice),
		Change:           num(r.RegularMarketChange),
		Open:             num(r.RegularMarketOpen),
		High:             num(r.RegularMarketDayHigh),
		Low:              num(r.RegularMarketDayLow),
		PrevClose:        num(r.RegularMarketPreviousClose),
		LongName:         str(r.LongName),
		Sector:           str(r.Sector),
		Industry:         str(r.Industry),
		MarketCap:        r.MarketCap,
		TrailingPE:       r.TrailingPE,
		DividendYield:    r.DividendYield,
		FiftyTwoWeekHigh: optNum(r.FiftyTwoWeekHigh),
		FiftyTwoWeekLow:  optNum(r.FiftyTwoWeekLow),
		Beta:             r.Beta,
		AverageVolume:    r.AverageVolume,
	}
	if r.RegularMarketChangePercent != nil {
		q.ChangePercent = *r.RegularMarketChangePercent
	}
	if r.RegularMarketVolume != nil {
		q.Volume = *r.RegularMarketVolume
	}
	return q
}
