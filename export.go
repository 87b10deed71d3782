package idxwatch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// ExportFormat selects the serialization of an export.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// ParseExportFormat recognizes the format names accepted on the command
// line.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case ExportCSV, ExportJSON:
		return ExportFormat(s), nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
	}
}

type exportRow struct {
	Symbol        Symbol `json:"symbol"`
	Name          string `json:"name,omitempty"`
	Price         string `json:"price,omitempty"`
	Change        string `json:"change,omitempty"`
	ChangePercent string `json:"change_percent,omitempty"`
	Volume        int64  `json:"volume,omitempty"`
	Lots          uint32 `json:"lots,omitempty"`
	AvgPrice      string `json:"avg_price,omitempty"`
	Value         string `json:"value,omitempty"`
	Cost          string `json:"cost,omitempty"`
	PL            string `json:"pl,omitempty"`
	PLPercent     string `json:"pl_percent,omitempty"`

	csvRow []string
}

func watchlistRow(sym Symbol, q Quote, ok bool) exportRow {
	row := exportRow{Symbol: sym}
	if ok {
		row.Name = q.ShortName
		row.Price = q.Price.String()
		row.Change = q.Change.String()
		row.ChangePercent = strconv.FormatFloat(q.ChangePercent, 'f', 2, 64)
		row.Volume = q.Volume
	}
	row.csvRow = []string{string(sym), row.Name, row.Price, row.Change, row.ChangePercent, strconv.FormatInt(row.Volume, 10)}
	return row
}

func portfolioRow(h Holding, q Quote, ok bool) exportRow {
	row := exportRow{
		Symbol:   h.Symbol,
		Lots:     h.Lots,
		AvgPrice: h.AvgPrice.String(),
		Cost:     h.CostBasis().String(),
	}
	if ok {
		m := h.Metrics(q.Price)
		row.Name = q.ShortName
		row.Price = q.Price.String()
		row.Value = m.Value.String()
		row.PL = m.PL.String()
		row.PLPercent = strconv.FormatFloat(m.PLPercent, 'f', 2, 64)
	}
	row.csvRow = []string{
		string(h.Symbol), row.Name, strconv.FormatUint(uint64(h.Lots), 10),
		row.AvgPrice, row.Price, row.Value, row.Cost, row.PL, row.PLPercent,
	}
	return row
}

var (
	watchlistHeader = []string{"symbol", "name", "price", "change", "change_percent", "volume"}
	portfolioHeader = []string{"symbol", "name", "lots", "avg_price", "price", "value", "cost", "pl", "pl_percent"}
)

// ExportWatchlist writes the rows of a computed watchlist view, in view
// order, to w.
func ExportWatchlist(w io.Writer, format ExportFormat, c *Collection[Symbol], view []int, cache *QuoteCache) error {
	rows := make([]exportRow, 0, len(view))
	for _, pos := range view {
		sym := c.Items[pos]
		q, ok := cache.Get(sym)
		rows = append(rows, watchlistRow(sym, q, ok))
	}
	return writeExport(w, format, watchlistHeader, rows)
}

// ExportPortfolio writes the rows of a computed portfolio view, in view
// order, to w.
func ExportPortfolio(w io.Writer, format ExportFormat, c *Collection[Holding], view []int, cache *QuoteCache) error {
	rows := make([]exportRow, 0, len(view))
	for _, pos := range view {
		h := c.Items[pos]
		q, ok := cache.Get(h.Symbol)
		rows = append(rows, portfolioRow(h, q, ok))
	}
	return writeExport(w, format, portfolioHeader, rows)
}

func writeExport(w io.Writer, format ExportFormat, header []string, rows []exportRow) error {
	switch format {
	case ExportCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("cannot write csv header: %w", err)
		}
		for _, row := range rows {
			if err := cw.Write(row.csvRow); err != nil {
				return fmt.Errorf("cannot write csv row for %s: %w", row.Symbol, err)
			}
		}
		cw.Flush()
		return cw.Error()
	case ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
