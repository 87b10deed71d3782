package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/idxwatch"
	"github.com/etnz/idxwatch/renderer"
	"github.com/etnz/idxwatch/yahoo"
	"github.com/google/subcommands"
)

type watchCmd struct {
	viewFlags
	interval  time.Duration
	portfolio bool
	once      bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "continuously refresh and display quotes" }
func (*watchCmd) Usage() string {
	return `idxw watch [-portfolio] [-interval <duration>] [-search <term>] [-sort <column>] [-desc]

Refreshes quotes on an interval and redraws the active watchlist (or
portfolio) table after every cycle. Alerts are checked on each refresh;
fired alerts are printed and their cooldown stamp is saved. Stop with
Ctrl-C.

A refresh cycle that is still in flight when the next tick arrives is not
stacked: the tick is skipped.

Usage Examples:
$ idxw watch
$ idxw watch -portfolio -interval 30s
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.DurationVar(&c.interval, "interval", 0, "Refresh interval (default: the configured one)")
	f.BoolVar(&c.portfolio, "portfolio", false, "Watch the active portfolio instead of the watchlist")
	f.BoolVar(&c.once, "once", false, "Run a single refresh cycle and exit")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, path, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	state, err := c.state()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	interval := cfg.Refresh
	if c.interval > 0 {
		interval = c.interval
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := yahoo.NewClient()
	cache := idxwatch.NewQuoteCache()

	refresh := func() {
		symbols := c.symbols(cfg)
		batch, err := client.Quotes(ctx, symbols)
		if err != nil {
			log.Printf("refresh failed: %v", err)
			return
		}
		cache.Update(batch)
		c.render(cfg, state, cache)

		fired := idxwatch.CheckAlerts(cfg.Alerts, cache, time.Now(), idxwatch.DefaultAlertCooldown)
		for _, a := range fired {
			fmt.Printf("\a[ALERT] %s\n", a.Describe())
		}
		if len(fired) > 0 {
			// Persist the cooldown stamps so a restart does not re-fire.
			if err := cfg.Save(path); err != nil {
				log.Printf("cannot save alert state: %v", err)
			}
		}
	}

	refresh()
	if c.once {
		return subcommands.ExitSuccess
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	inFlight := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			fmt.Println("bye")
			return subcommands.ExitSuccess
		case <-ticker.C:
			select {
			case inFlight <- struct{}{}:
				go func() {
					defer func() { <-inFlight }()
					refresh()
				}()
			default:
				// previous cycle still running, skip this tick
			}
		}
	}
}

// symbols collects what the cycle must quote: the watched collection plus
// every symbol an alert is armed on.
func (c *watchCmd) symbols(cfg *idxwatch.Config) []idxwatch.Symbol {
	var symbols []idxwatch.Symbol
	if c.portfolio {
		symbols = idxwatch.HoldingSymbols(cfg.Portfolios.Current())
	} else {
		symbols = append(symbols, cfg.Watchlists.Current().Items...)
	}
	for _, a := range cfg.Alerts {
		if a.Enabled {
			symbols = append(symbols, a.Symbol)
		}
	}
	return symbols
}

func (c *watchCmd) render(cfg *idxwatch.Config, state idxwatch.ViewState, cache *idxwatch.QuoteCache) {
	if c.portfolio {
		p := cfg.Portfolios.Current()
		view := idxwatch.ComputePortfolioView(p, state, cache)
		printMarkdown(renderer.PortfolioMarkdown(p, view, state, cache))
		return
	}
	list := cfg.Watchlists.Current()
	view := idxwatch.ComputeWatchlistView(list, state, cache)
	printMarkdown(renderer.WatchlistMarkdown(list, view, state, cache))
}
