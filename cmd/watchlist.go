package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/idxwatch"
	"github.com/google/subcommands"
)

type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add symbols to the active watchlist" }
func (*addCmd) Usage() string {
	return `idxw add <symbol...>

Adds one or more symbols to the active watchlist. Input is normalized:
lowercase and provider-suffixed forms are accepted. Symbols already on the
list are skipped.

Usage Examples:
$ idxw add bbca TLKM.JK
`
}
func (*addCmd) SetFlags(*flag.FlagSet) {}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no symbols given")
		return subcommands.ExitUsageError
	}
	cfg, path, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	list := cfg.Watchlists.Current()
	for _, arg := range f.Args() {
		sym := idxwatch.NewSymbol(arg)
		if sym == "" {
			continue
		}
		if idxwatch.ContainsSymbol(list, sym) {
			fmt.Fprintf(os.Stderr, "%s is already on %q\n", sym, list.Name)
			continue
		}
		list.Items = append(list.Items, sym)
		fmt.Printf("Added %s to %q\n", sym, list.Name)
	}
	return SaveConfig(cfg, path)
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove symbols from the active watchlist" }
func (*rmCmd) Usage() string {
	return `idxw rm <symbol...>

Removes symbols from the active watchlist.
`
}
func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no symbols given")
		return subcommands.ExitUsageError
	}
	cfg, path, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	list := cfg.Watchlists.Current()
	for _, arg := range f.Args() {
		sym := idxwatch.NewSymbol(arg)
		if idxwatch.RemoveSymbol(list, sym) {
			fmt.Printf("Removed %s from %q\n", sym, list.Name)
		} else {
			fmt.Fprintf(os.Stderr, "%s is not on %q\n", sym, list.Name)
		}
	}
	return SaveConfig(cfg, path)
}

// listsCmd manages the named collections of one kind. The same command is
// registered twice, once per kind.
type listsCmd struct {
	kind idxwatch.Kind

	create string
	remove bool
	rename string
	use    string
	next   bool
	prev   bool
}

func (c *listsCmd) Name() string {
	if c.kind == idxwatch.Watchlists {
		return "lists"
	}
	return "portfolios"
}

func (c *listsCmd) Synopsis() string {
	return fmt.Sprintf("show and manage the named %s collections", c.kind)
}

func (c *listsCmd) Usage() string {
	name := c.Name()
	return fmt.Sprintf(`idxw %s [-new <name>] [-rm] [-rename <name>] [-use <name>] [-next] [-prev]

Without flags, shows every collection and marks the active one. -new
creates and activates a collection, -rm removes the active one (the last
collection cannot be removed), -rename renames it, -use activates by name,
and -next/-prev cycle with wraparound.

Usage Examples:
$ idxw %s
$ idxw %s -new Banks
$ idxw %s -next
`, name, name, name, name)
}

func (c *listsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.create, "new", "", "Create and activate a collection")
	f.BoolVar(&c.remove, "rm", false, "Remove the active collection")
	f.StringVar(&c.rename, "rename", "", "Rename the active collection")
	f.StringVar(&c.use, "use", "", "Activate the collection with this name")
	f.BoolVar(&c.next, "next", false, "Activate the next collection")
	f.BoolVar(&c.prev, "prev", false, "Activate the previous collection")
}

func (c *listsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, path, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var status subcommands.ExitStatus
	if c.kind == idxwatch.Watchlists {
		status = runLists(cfg.Watchlists, c)
	} else {
		status = runLists(cfg.Portfolios, c)
	}
	if status != subcommands.ExitSuccess {
		return status
	}
	return SaveConfig(cfg, path)
}

func runLists[T any](set *idxwatch.CollectionSet[T], c *listsCmd) subcommands.ExitStatus {
	switch {
	case c.create != "":
		set.Add(c.create)
		fmt.Printf("Created %q\n", c.create)
	case c.remove:
		name := set.Current().Name
		if err := set.Remove(); err != nil {
			if errors.Is(err, idxwatch.ErrLastCollection) {
				fmt.Fprintln(os.Stderr, "Error: cannot remove the last collection")
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			return subcommands.ExitFailure
		}
		fmt.Printf("Removed %q\n", name)
	case c.rename != "":
		old := set.Current().Name
		set.Rename(c.rename)
		fmt.Printf("Renamed %q to %q\n", old, c.rename)
	case c.use != "":
		if !activateByName(set, c.use) {
			fmt.Fprintf(os.Stderr, "Error: no collection named %q\n", c.use)
			return subcommands.ExitFailure
		}
	case c.next:
		set.Next()
	case c.prev:
		set.Prev()
	}

	for i, name := range set.Names() {
		marker := " "
		if i == set.Active() {
			marker = "*"
		}
		fmt.Printf("%s %s (%d items)\n", marker, name, len(set.At(i).Items))
	}
	return subcommands.ExitSuccess
}

func activateByName[T any](set *idxwatch.CollectionSet[T], name string) bool {
	for i, n := range set.Names() {
		if n == name {
			for set.Active() != i {
				set.Next()
			}
			return true
		}
	}
	return false
}
