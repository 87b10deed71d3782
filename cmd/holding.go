package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/idxwatch"
	"github.com/etnz/idxwatch/renderer"
	"github.com/etnz/idxwatch/yahoo"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type holdCmd struct{}

func (*holdCmd) Name() string     { return "hold" }
func (*holdCmd) Synopsis() string { return "record a purchase in the active portfolio" }
func (*holdCmd) Usage() string {
	return `idxw hold <symbol> <lots> <avg_price>

Records a purchase of <lots> lots (1 lot = 100 shares) at <avg_price>
rupiah per share. Buying a symbol already held merges into the existing
line with a weighted average price.

Usage Examples:
$ idxw hold BBCA 10 8225
`
}
func (*holdCmd) SetFlags(*flag.FlagSet) {}

func (c *holdCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: want <symbol> <lots> <avg_price>")
		return subcommands.ExitUsageError
	}
	sym := idxwatch.NewSymbol(f.Arg(0))
	lots, err := strconv.ParseUint(f.Arg(1), 10, 32)
	if err != nil || lots == 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid lot count %q\n", f.Arg(1))
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(f.Arg(2))
	if err != nil || price.IsNegative() {
		fmt.Fprintf(os.Stderr, "Error: invalid price %q\n", f.Arg(2))
		return subcommands.ExitUsageError
	}

	cfg, path, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	p := cfg.Portfolios.Current()
	if !idxwatch.AddHolding(p, sym, uint32(lots), price) {
		fmt.Fprintf(os.Stderr, "Error: lot count for %s would overflow\n", sym)
		return subcommands.ExitFailure
	}
	fmt.Printf("Holding %s in %q\n", sym, p.Name)
	return SaveConfig(cfg, path)
}

type unholdCmd struct{}

func (*unholdCmd) Name() string     { return "unhold" }
func (*unholdCmd) Synopsis() string { return "drop a holding from the active portfolio" }
func (*unholdCmd) Usage() string {
	return `idxw unhold <symbol>

Removes the whole line for <symbol> from the active portfolio.
`
}
func (*unholdCmd) SetFlags(*flag.FlagSet) {}

func (c *unholdCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: want <symbol>")
		return subcommands.ExitUsageError
	}
	cfg, path, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	sym := idxwatch.NewSymbol(f.Arg(0))
	p := cfg.Portfolios.Current()
	if !idxwatch.RemoveHolding(p, sym) {
		fmt.Fprintf(os.Stderr, "Error: %s is not held in %q\n", sym, p.Name)
		return subcommands.ExitFailure
	}
	fmt.Printf("Dropped %s from %q\n", sym, p.Name)
	return SaveConfig(cfg, path)
}

type portfolioCmd struct {
	viewFlags
	allocation bool
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "fetch quotes and display the active portfolio" }
func (*portfolioCmd) Usage() string {
	return `idxw portfolio [-search <term>] [-sort <column>] [-desc] [-allocation]

Fetches live quotes for every holding of the active portfolio and renders
the position table with derived value, cost and P&L. -allocation appends
the weight of each quoted holding.

Usage Examples:
$ idxw portfolio -sort pl% -desc
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.BoolVar(&c.allocation, "allocation", false, "Also show portfolio weights")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	state, err := c.state()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	p := cfg.Portfolios.Current()
	cache := idxwatch.NewQuoteCache()
	batch, err := yahoo.NewClient().Quotes(ctx, idxwatch.HoldingSymbols(p))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching quotes: %v\n", err)
		return subcommands.ExitFailure
	}
	cache.Update(batch)

	view := idxwatch.ComputePortfolioView(p, state, cache)
	md := renderer.PortfolioMarkdown(p, view, state, cache)
	if c.allocation {
		md += "\n" + renderer.AllocationMarkdown(p, cache)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
