// Package cmd implements the CLI application to track IDX stocks.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/idxwatch"
	"github.com/google/subcommands"
)

// Register registers every subcommand on the commander.
func Register(c *subcommands.Commander) {
	c.Register(&quoteCmd{}, "market")
	c.Register(&detailCmd{}, "market")
	c.Register(&watchCmd{}, "market")
	c.Register(&newsCmd{}, "market")

	c.Register(&addCmd{}, "watchlists")
	c.Register(&rmCmd{}, "watchlists")
	c.Register(&listsCmd{kind: idxwatch.Watchlists}, "watchlists")

	c.Register(&holdCmd{}, "portfolio")
	c.Register(&unholdCmd{}, "portfolio")
	c.Register(&portfolioCmd{}, "portfolio")
	c.Register(&listsCmd{kind: idxwatch.Portfolios}, "portfolio")

	c.Register(&alertCmd{}, "alerts")

	c.Register(&exportCmd{}, "misc")
	c.Register(&topicCmd{}, "misc")
}

// As a CLI application the lifecycle is one command per process, so a
// couple of globals are fine.

var configPath = flag.String("config", "", "Path to the config file (default: the platform user config dir)")

// resolveConfigPath applies the -config override.
func resolveConfigPath() (string, error) {
	if *configPath != "" {
		return *configPath, nil
	}
	return idxwatch.DefaultConfigPath()
}

// LoadConfig loads the app config, honoring the -config flag.
func LoadConfig() (*idxwatch.Config, string, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := idxwatch.LoadConfig(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// SaveConfig persists the config right away. Every mutating command calls
// it before exiting, there is no deferred save.
func SaveConfig(cfg *idxwatch.Config, path string) subcommands.ExitStatus {
	if err := cfg.Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when the terminal renderer cannot be built.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
