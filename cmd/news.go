package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/idxwatch"
	"github.com/etnz/idxwatch/renderer"
	"github.com/etnz/idxwatch/rss"
	"github.com/google/subcommands"
)

type newsCmd struct {
	limit int
}

func (*newsCmd) Name() string     { return "news" }
func (*newsCmd) Synopsis() string { return "show the merged news stream from the configured feeds" }
func (*newsCmd) Usage() string {
	return `idxw news [-limit <n>]

Fetches every RSS/Atom source under "news_sources" in the config, merges
the articles newest first, and tags headlines that mention a symbol on the
active watchlist.

Usage Examples:
$ idxw news -limit 20
`
}

func (c *newsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "limit", 30, "Maximum number of articles to show")
}

func (c *newsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(cfg.NewsSources) == 0 {
		fmt.Fprintln(os.Stderr, "No news sources configured. Add feed URLs under \"news_sources\" in the config file.")
		return subcommands.ExitSuccess
	}

	items := rss.NewClient(nil).FetchAll(ctx, cfg.NewsSources)
	if c.limit > 0 && len(items) > c.limit {
		items = items[:c.limit]
	}

	watched := cfg.Watchlists.Current().Items
	mentioned := func(title string) idxwatch.Symbol {
		for _, sym := range watched {
			if rss.TitleMatches(title, sym) {
				return sym
			}
		}
		return ""
	}
	printMarkdown(renderer.NewsMarkdown(items, mentioned))
	return subcommands.ExitSuccess
}
