package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/idxwatch/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var sortColumns = predict.Set{
	"none", "symbol", "name", "price", "change", "chg%", "volume", "turnover",
	"lots", "avg", "value", "cost", "pl", "pl%",
}

// completion wires shell completion. Complete returns immediately unless
// the process was invoked by the shell's completion hook.
func completion() {
	viewFlags := map[string]complete.Predictor{
		"search": predict.Nothing,
		"sort":   sortColumns,
		"desc":   predict.Nothing,
	}
	root := &complete.Command{
		Sub: map[string]*complete.Command{
			"quote":      {Flags: viewFlags},
			"detail":     {Flags: map[string]complete.Predictor{"no-chart": predict.Nothing, "no-news": predict.Nothing}},
			"watch":      {Flags: viewFlags},
			"news":       {Flags: map[string]complete.Predictor{"limit": predict.Something}},
			"add":        {},
			"rm":         {},
			"lists":      {},
			"portfolios": {},
			"hold":       {},
			"unhold":     {},
			"portfolio":  {Flags: viewFlags},
			"alert":      {Flags: map[string]complete.Predictor{"add": predict.Set{"above", "below", "percent-gain", "percent-loss"}}},
			"export":     {Flags: map[string]complete.Predictor{"format": predict.Set{"csv", "json"}, "o": predict.Files("*")}},
			"topic":      {},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.json"),
		},
	}
	root.Complete("idxw")
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(subcommands.HelpCommand(), "")
	commander.Register(subcommands.FlagsCommand(), "")
	commander.Register(subcommands.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
