package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/oneview/marketdesk"
	"github.com/oneview/marketdesk/renderer"
)

type watchCmd struct {
	list string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "display the watchlists of the desk" }
func (*watchCmd) Usage() string {
	return `mdesk watch [-w <watchlist>]

  Displays the assets on the desk's watchlists. By default all watchlists are
  shown; use -w to show a single one.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.list, "w", "", "Watchlist to display. Displays all by default.")
}

func (c *watchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lists, err := marketdesk.FindWatchlists(*deskPath, c.list)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load watchlists: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(lists) == 0 {
		fmt.Println("No watchlist found. Add an asset with 'mdesk add'.")
		return subcommands.ExitSuccess
	}
	for _, w := range lists {
		printMarkdown(renderer.WatchlistMarkdown(renderer.NewWatchlistView(w, nil, nil)))
	}
	return subcommands.ExitSuccess
}

type addAssetCmd struct {
	list     string
	id       int64
	isin     string
	currency string
	name     string
}

func (*addAssetCmd) Name() string     { return "add" }
func (*addAssetCmd) Synopsis() string { return "add an asset to a watchlist" }
func (*addAssetCmd) Usage() string {
	return `mdesk add -id <id> [-w <watchlist>] [-isin <isin>] [-c <currency>] [-n <name>] <symbol>

  Adds an asset to a watchlist (the default one unless -w is given).
  Re-adding an existing symbol updates it in place.

Usage Examples:
$ mdesk add -id 42 -isin US0378331005 -c USD -n "Apple Inc." AAPL
`
}

func (c *addAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.list, "w", "", "Watchlist to add to (default watchlist if empty).")
	f.Int64Var(&c.id, "id", 0, "Backend id of the asset.")
	f.StringVar(&c.isin, "isin", "", "ISIN of the asset.")
	f.StringVar(&c.currency, "c", "EUR", "Currency the asset is quoted in.")
	f.StringVar(&c.name, "n", "", "Display name of the asset.")
}

func (c *addAssetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one symbol")
		return subcommands.ExitUsageError
	}

	w, err := marketdesk.FindWatchlist(*deskPath, c.list)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	asset := marketdesk.Asset{
		ID:       c.id,
		Symbol:   f.Arg(0),
		ISIN:     c.isin,
		Currency: c.currency,
		Name:     c.name,
	}
	if err := w.Add(asset); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := marketdesk.SaveWatchlist(*deskPath, w); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %s to watchlist %q\n", asset, w.Name())
	return subcommands.ExitSuccess
}

type dropAssetCmd struct {
	list string
}

func (*dropAssetCmd) Name() string     { return "drop" }
func (*dropAssetCmd) Synopsis() string { return "remove an asset from a watchlist" }
func (*dropAssetCmd) Usage() string {
	return `mdesk drop [-w <watchlist>] <symbol>

  Removes an asset from a watchlist.
`
}

func (c *dropAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.list, "w", "", "Watchlist to remove from (default watchlist if empty).")
}

func (c *dropAssetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one symbol")
		return subcommands.ExitUsageError
	}

	w, err := marketdesk.FindWatchlist(*deskPath, c.list)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := w.Remove(f.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := marketdesk.SaveWatchlist(*deskPath, w); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Dropped %s from watchlist %q\n", f.Arg(0), w.Name())
	return subcommands.ExitSuccess
}
