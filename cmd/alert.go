package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/etnz/idxwatch"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type alertCmd struct {
	add    string
	remove int
	toggle int
}

func (*alertCmd) Name() string     { return "alert" }
func (*alertCmd) Synopsis() string { return "manage price and percent alerts" }
func (*alertCmd) Usage() string {
	return `idxw alert [-add <kind>] [-rm <n>] [-toggle <n>] [symbol threshold]

Without flags, lists the alerts. -add creates an alert of the given kind
(above, below, percent-gain, percent-loss) on <symbol> at <threshold>.
-rm deletes alert number <n> from the listing; -toggle enables or disables
it without deleting.

Usage Examples:
$ idxw alert
$ idxw alert -add above BBCA 10000
$ idxw alert -add percent-loss GOTO 5
$ idxw alert -toggle 2
`
}

func (c *alertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Add an alert of this kind (above, below, percent-gain, percent-loss)")
	f.IntVar(&c.remove, "rm", 0, "Remove the alert with this number")
	f.IntVar(&c.toggle, "toggle", 0, "Enable or disable the alert with this number")
}

func (c *alertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, path, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	changed := false
	switch {
	case c.add != "":
		if f.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "Error: -add wants <symbol> <threshold>")
			return subcommands.ExitUsageError
		}
		kind := idxwatch.AlertKind(c.add)
		switch kind {
		case idxwatch.AlertAbove, idxwatch.AlertBelow, idxwatch.AlertPercentGain, idxwatch.AlertPercentLoss:
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown alert kind %q\n", c.add)
			return subcommands.ExitUsageError
		}
		threshold, err := decimal.NewFromString(f.Arg(1))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid threshold %q\n", f.Arg(1))
			return subcommands.ExitUsageError
		}
		alert := idxwatch.Alert{
			Symbol:    idxwatch.NewSymbol(f.Arg(0)),
			Kind:      kind,
			Threshold: threshold,
			Enabled:   true,
		}
		cfg.Alerts = append(cfg.Alerts, alert)
		fmt.Printf("Added alert: %s\n", alert.Describe())
		changed = true

	case c.remove > 0:
		i := c.remove - 1
		if i >= len(cfg.Alerts) {
			fmt.Fprintf(os.Stderr, "Error: no alert %d\n", c.remove)
			return subcommands.ExitFailure
		}
		fmt.Printf("Removed alert: %s\n", cfg.Alerts[i].Describe())
		cfg.Alerts = append(cfg.Alerts[:i], cfg.Alerts[i+1:]...)
		changed = true

	case c.toggle > 0:
		i := c.toggle - 1
		if i >= len(cfg.Alerts) {
			fmt.Fprintf(os.Stderr, "Error: no alert %d\n", c.toggle)
			return subcommands.ExitFailure
		}
		cfg.Alerts[i].Enabled = !cfg.Alerts[i].Enabled
		changed = true
	}

	if len(cfg.Alerts) == 0 {
		fmt.Println("No alerts.")
	}
	for i, a := range cfg.Alerts {
		state := "on"
		if !a.Enabled {
			state = "off"
		}
		last := ""
		if !a.LastFired.IsZero() {
			last = " (last fired " + a.LastFired.Format(time.DateTime) + ")"
		}
		fmt.Printf("%s. [%s] %s%s\n", strconv.Itoa(i+1), state, a.Describe(), last)
	}

	if changed {
		return SaveConfig(cfg, path)
	}
	return subcommands.ExitSuccess
}
