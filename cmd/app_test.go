package cmd

import (
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/etnz/idxwatch"
	"github.com/google/subcommands"
)

// withTempConfig points the global -config flag at a throwaway file.
func withTempConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	old := *configPath
	*configPath = path
	t.Cleanup(func() { *configPath = old })
	return path
}

func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestViewFlagsState(t *testing.T) {
	v := viewFlags{search: "BB", sort: "chg%", desc: true}
	state, err := v.state()
	if err != nil {
		t.Fatal(err)
	}
	if state.Search != "BB" || state.Column != idxwatch.ColChangePercent || state.Direction != idxwatch.Descending {
		t.Errorf("state = %+v", state)
	}

	v.sort = "bogus"
	if _, err := v.state(); err == nil {
		t.Error("bogus column must be rejected")
	}
}

func TestAddAndRmRoundTrip(t *testing.T) {
	path := withTempConfig(t)

	if got := run(t, &addCmd{}, "bbca", "TLKM.JK"); got != subcommands.ExitSuccess {
		t.Fatalf("add: %v", got)
	}

	cfg, err := idxwatch.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	items := cfg.Watchlists.Current().Items
	if len(items) != 2 || items[0] != "BBCA" || items[1] != "TLKM" {
		t.Fatalf("watchlist after add: %v", items)
	}

	// Adding again is a no-op, not a duplicate.
	run(t, &addCmd{}, "BBCA")
	cfg, _ = idxwatch.LoadConfig(path)
	if len(cfg.Watchlists.Current().Items) != 2 {
		t.Errorf("duplicate add: %v", cfg.Watchlists.Current().Items)
	}

	if got := run(t, &rmCmd{}, "bbca"); got != subcommands.ExitSuccess {
		t.Fatalf("rm: %v", got)
	}
	cfg, _ = idxwatch.LoadConfig(path)
	if items := cfg.Watchlists.Current().Items; len(items) != 1 || items[0] != "TLKM" {
		t.Errorf("watchlist after rm: %v", items)
	}
}

func TestListsCommand(t *testing.T) {
	path := withTempConfig(t)

	lists := &listsCmd{kind: idxwatch.Watchlists}
	if got := run(t, lists, "-new", "Banks"); got != subcommands.ExitSuccess {
		t.Fatalf("new: %v", got)
	}
	cfg, _ := idxwatch.LoadConfig(path)
	if cfg.Watchlists.Len() != 2 || cfg.Watchlists.Current().Name != "Banks" {
		t.Fatalf("after -new: %v active %q", cfg.Watchlists.Names(), cfg.Watchlists.Current().Name)
	}

	// Remove down to one, then removing the last must fail.
	if got := run(t, &listsCmd{kind: idxwatch.Watchlists}, "-rm"); got != subcommands.ExitSuccess {
		t.Fatalf("rm: %v", got)
	}
	if got := run(t, &listsCmd{kind: idxwatch.Watchlists}, "-rm"); got != subcommands.ExitFailure {
		t.Errorf("removing the last collection must fail, got %v", got)
	}
	cfg, _ = idxwatch.LoadConfig(path)
	if cfg.Watchlists.Len() != 1 {
		t.Errorf("collections after failed rm: %v", cfg.Watchlists.Names())
	}
}

func TestHoldCommands(t *testing.T) {
	path := withTempConfig(t)

	if got := run(t, &holdCmd{}, "BBCA", "10", "8000"); got != subcommands.ExitSuccess {
		t.Fatalf("hold: %v", got)
	}
	if got := run(t, &holdCmd{}, "BBCA", "ten", "8000"); got != subcommands.ExitUsageError {
		t.Errorf("bad lots must be a usage error, got %v", got)
	}

	cfg, _ := idxwatch.LoadConfig(path)
	h := cfg.Portfolios.Current().Items[0]
	if h.Symbol != "BBCA" || h.Lots != 10 {
		t.Fatalf("holding: %+v", h)
	}

	if got := run(t, &unholdCmd{}, "BBCA"); got != subcommands.ExitSuccess {
		t.Fatalf("unhold: %v", got)
	}
	if got := run(t, &unholdCmd{}, "BBCA"); got != subcommands.ExitFailure {
		t.Errorf("unholding a symbol not held must fail, got %v", got)
	}
}

func TestAlertCommand(t *testing.T) {
	path := withTempConfig(t)

	if got := run(t, &alertCmd{}, "-add", "above", "BBCA", "10000"); got != subcommands.ExitSuccess {
		t.Fatalf("alert add: %v", got)
	}
	if got := run(t, &alertCmd{}, "-add", "sideways", "BBCA", "1"); got != subcommands.ExitUsageError {
		t.Errorf("unknown kind must be a usage error, got %v", got)
	}

	cfg, _ := idxwatch.LoadConfig(path)
	if len(cfg.Alerts) != 1 || cfg.Alerts[0].Kind != idxwatch.AlertAbove || !cfg.Alerts[0].Enabled {
		t.Fatalf("alerts: %+v", cfg.Alerts)
	}

	run(t, &alertCmd{}, "-toggle", "1")
	cfg, _ = idxwatch.LoadConfig(path)
	if cfg.Alerts[0].Enabled {
		t.Error("toggle must disable the alert")
	}

	run(t, &alertCmd{}, "-rm", "1")
	cfg, _ = idxwatch.LoadConfig(path)
	if len(cfg.Alerts) != 0 {
		t.Errorf("alerts after rm: %+v", cfg.Alerts)
	}
}
