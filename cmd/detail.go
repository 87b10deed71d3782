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

type detailCmd struct {
	noChart bool
	noNews  bool
}

func (*detailCmd) Name() string     { return "detail" }
func (*detailCmd) Synopsis() string { return "show the full detail pane for one symbol" }
func (*detailCmd) Usage() string {
	return `idxw detail [-no-chart] [-no-news] <symbol>

Shows the quote, fundamentals, a 3 month price sparkline and recent news
for one symbol. Chart and news failures degrade the pane instead of
failing the command.

Usage Examples:
$ idxw detail BBCA
`
}

func (c *detailCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noChart, "no-chart", false, "Skip the price history sparkline")
	f.BoolVar(&c.noNews, "no-news", false, "Skip the news section")
}

func (c *detailCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: want exactly one symbol")
		return subcommands.ExitUsageError
	}
	sym := idxwatch.NewSymbol(f.Arg(0))

	client := yahoo.NewClient()
	batch, err := client.Quotes(ctx, []idxwatch.Symbol{sym})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching quote: %v\n", err)
		return subcommands.ExitFailure
	}
	res, ok := batch[sym]
	if !ok || res.IsAbsent() {
		fmt.Fprintf(os.Stderr, "Error: no quote for %s\n", sym)
		return subcommands.ExitFailure
	}

	var chart *idxwatch.Chart
	if !c.noChart {
		if ch, err := client.Chart(ctx, sym); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			chart = &ch
		}
	}

	var news []idxwatch.NewsItem
	if !c.noNews {
		if items, err := client.News(ctx, sym); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			news = items
		}
	}

	printMarkdown(renderer.DetailMarkdown(*res.Quote, chart, news))
	return subcommands.ExitSuccess
}
