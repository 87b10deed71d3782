package idxwatch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

const (
	configDirName  = "idxwatch"
	configFileName = "config.json"

	// DefaultRefreshInterval paces the quote refresh loop when the config
	// does not set one.
	DefaultRefreshInterval = 15 * time.Second
)

// Config is everything idxwatch persists between runs.
type Config struct {
	Watchlists  *CollectionSet[Symbol]
	Portfolios  *CollectionSet[Holding]
	Refresh     time.Duration
	NewsSources []string
	Alerts      []Alert
}

// NewConfig returns a usable empty configuration: one empty Default
// watchlist and portfolio, and the default refresh interval.
func NewConfig() *Config {
	return &Config{
		Watchlists: NewCollectionSet[Symbol](nil, 0),
		Portfolios: NewCollectionSet[Holding](nil, 0),
		Refresh:    DefaultRefreshInterval,
	}
}

// MigrationError reports a legacy configuration file that could not be
// carried over to the current layout. It is deliberately loud: silently
// guessing here could drop a user's holdings.
type MigrationError struct {
	Path   string
	Reason string
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("cannot migrate config file %q: %s", e.Path, e.Reason)
}

// DefaultConfigPath is the config file under the platform user config
// directory.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate user config directory: %w", err)
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// The wire layout. The flat "symbols" and "portfolio" fields are the legacy
// single-list format; LoadConfig migrates them into one "Default"
// collection each and saves the file back in the current layout, so the
// legacy shape is read at most once.
type jsonConfig struct {
	Watchlists      []jsonCollection[string]      `json:"watchlists,omitempty"`
	ActiveWatchlist int                           `json:"active_watchlist,omitempty"`
	Portfolios      []jsonCollection[jsonHolding] `json:"portfolios,omitempty"`
	ActivePortfolio int                           `json:"active_portfolio,omitempty"`
	RefreshSeconds  int                           `json:"refresh_seconds,omitempty"`
	NewsSources     []string                      `json:"news_sources,omitempty"`
	Alerts          []Alert                       `json:"alerts,omitempty"`

	// legacy flat-list format
	Symbols  []string      `json:"symbols,omitempty"`
	Holdings []jsonHolding `json:"portfolio,omitempty"`
}

type jsonCollection[T any] struct {
	Name  string `json:"name"`
	Items []T    `json:"items"`
}

type jsonHolding struct {
	Symbol   string          `json:"symbol"`
	Lots     uint32          `json:"lots"`
	AvgPrice decimal.Decimal `json:"avg_price"`
}

// LoadConfig reads the config file at path. A missing file yields a fresh
// default config. Legacy flat-list files are migrated and saved back right
// away, so the legacy shape is read at most once; a legacy file that also
// carries the current layout is ambiguous and fails with a *MigrationError
// rather than picking a side.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, fmt.Errorf("cannot parse config file %q: %w", path, err)
	}

	if len(jc.Symbols) > 0 && len(jc.Watchlists) > 0 {
		return nil, &MigrationError{Path: path, Reason: "both legacy \"symbols\" and \"watchlists\" are present"}
	}
	if len(jc.Holdings) > 0 && len(jc.Portfolios) > 0 {
		return nil, &MigrationError{Path: path, Reason: "both legacy \"portfolio\" and \"portfolios\" are present"}
	}
	migrated := false
	if len(jc.Symbols) > 0 {
		jc.Watchlists = []jsonCollection[string]{{Name: DefaultCollectionName, Items: jc.Symbols}}
		jc.ActiveWatchlist = 0
		migrated = true
	}
	if len(jc.Holdings) > 0 {
		jc.Portfolios = []jsonCollection[jsonHolding]{{Name: DefaultCollectionName, Items: jc.Holdings}}
		jc.ActivePortfolio = 0
		migrated = true
	}

	watchlists := make([]Collection[Symbol], 0, len(jc.Watchlists))
	for _, w := range jc.Watchlists {
		col := Collection[Symbol]{Name: w.Name}
		for _, s := range w.Items {
			sym := NewSymbol(s)
			if sym == "" {
				return nil, &MigrationError{Path: path, Reason: fmt.Sprintf("watchlist %q contains an empty symbol", w.Name)}
			}
			col.Items = append(col.Items, sym)
		}
		watchlists = append(watchlists, col)
	}

	portfolios := make([]Collection[Holding], 0, len(jc.Portfolios))
	for _, p := range jc.Portfolios {
		col := Collection[Holding]{Name: p.Name}
		for _, h := range p.Items {
			sym := NewSymbol(h.Symbol)
			if sym == "" {
				return nil, &MigrationError{Path: path, Reason: fmt.Sprintf("portfolio %q contains a holding without a symbol", p.Name)}
			}
			col.Items = append(col.Items, Holding{Symbol: sym, Lots: h.Lots, AvgPrice: h.AvgPrice})
		}
		portfolios = append(portfolios, col)
	}

	cfg := &Config{
		Watchlists:  NewCollectionSet(watchlists, jc.ActiveWatchlist),
		Portfolios:  NewCollectionSet(portfolios, jc.ActivePortfolio),
		Refresh:     DefaultRefreshInterval,
		NewsSources: jc.NewsSources,
		Alerts:      jc.Alerts,
	}
	if jc.RefreshSeconds > 0 {
		cfg.Refresh = time.Duration(jc.RefreshSeconds) * time.Second
	}
	if migrated {
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("cannot persist migrated config file %q: %w", path, err)
		}
	}
	return cfg, nil
}

// Save writes the config to path in the current layout, creating parent
// directories as needed. It writes through a temp file and renames, so a
// crash mid-write never truncates the previous config.
func (c *Config) Save(path string) error {
	jc := jsonConfig{
		ActiveWatchlist: c.Watchlists.Active(),
		ActivePortfolio: c.Portfolios.Active(),
		RefreshSeconds:  int(c.Refresh / time.Second),
		NewsSources:     c.NewsSources,
		Alerts:          c.Alerts,
	}
	for i := 0; i < c.Watchlists.Len(); i++ {
		w := c.Watchlists.At(i)
		jw := jsonCollection[string]{Name: w.Name, Items: []string{}}
		for _, s := range w.Items {
			jw.Items = append(jw.Items, string(s))
		}
		jc.Watchlists = append(jc.Watchlists, jw)
	}
	for i := 0; i < c.Portfolios.Len(); i++ {
		p := c.Portfolios.At(i)
		jp := jsonCollection[jsonHolding]{Name: p.Name, Items: []jsonHolding{}}
		for _, h := range p.Items {
			jp.Items = append(jp.Items, jsonHolding{Symbol: string(h.Symbol), Lots: h.Lots, AvgPrice: h.AvgPrice})
		}
		jc.Portfolios = append(jc.Portfolios, jp)
	}

	data, err := json.MarshalIndent(jc, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("cannot replace config file %q: %w", path, err)
	}
	return nil
}
