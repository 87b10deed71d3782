package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/idxwatch"
	"github.com/etnz/idxwatch/renderer"
	"github.com/etnz/idxwatch/yahoo"
	"github.com/google/subcommands"
)

// viewFlags are the filter/sort flags shared by the table commands.
type viewFlags struct {
	search string
	sort   string
	desc   bool
}

func (v *viewFlags) register(f *flag.FlagSet) {
	f.StringVar(&v.search, "search", "", "Only show symbols containing this term")
	f.StringVar(&v.sort, "sort", "none", "Sort column (symbol, name, price, change, chg%, volume, turnover, lots, avg, value, cost, pl, pl%)")
	f.BoolVar(&v.desc, "desc", false, "Sort descending")
}

func (v *viewFlags) state() (idxwatch.ViewState, error) {
	col, err := idxwatch.ParseSortColumn(v.sort)
	if err != nil {
		return idxwatch.ViewState{}, err
	}
	dir := idxwatch.Ascending
	if v.desc {
		dir = idxwatch.Descending
	}
	return idxwatch.ViewState{Search: v.search, Column: col, Direction: dir}, nil
}

type quoteCmd struct {
	viewFlags
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch and display quotes for the active watchlist" }
func (*quoteCmd) Usage() string {
	return `idxw quote [-search <term>] [-sort <column>] [-desc] [symbol...]

Fetches live quotes and renders the active watchlist as a table. With
symbols as arguments, quotes those instead of the watchlist. The composite
index is always fetched and shown in the header.

Usage Examples:
$ idxw quote
$ idxw quote -sort chg% -desc
$ idxw quote BBCA TLKM
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	list := cfg.Watchlists.Current()
	if f.NArg() > 0 {
		list = &idxwatch.Collection[idxwatch.Symbol]{Name: "ad hoc"}
		for _, arg := range f.Args() {
			list.Items = append(list.Items, idxwatch.NewSymbol(arg))
		}
	}

	state, err := c.state()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	cache := idxwatch.NewQuoteCache()
	batch, err := yahoo.NewClient().Quotes(ctx, list.Items)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching quotes: %v\n", err)
		return subcommands.ExitFailure
	}
	cache.Update(batch)

	view := idxwatch.ComputeWatchlistView(list, state, cache)
	printMarkdown(renderer.WatchlistMarkdown(list, view, state, cache))
	return subcommands.ExitSuccess
}
