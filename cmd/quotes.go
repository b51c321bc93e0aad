package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/google/subcommands"

	"github.com/oneview/marketdesk"
	"github.com/oneview/marketdesk/renderer"
)

type quotesCmd struct {
	list string
}

func (*quotesCmd) Name() string     { return "quotes" }
func (*quotesCmd) Synopsis() string { return "fetch and display live quotes for a watchlist" }
func (*quotesCmd) Usage() string {
	return `mdesk quotes [-w <watchlist>]

  Fetches the latest quote of every asset on the watchlist and displays the
  list with prices. Assets whose quote cannot be fetched are shown without one.
`
}

func (c *quotesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.list, "w", "", "Watchlist to quote. Quotes all by default.")
}

func (c *quotesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lists, err := marketdesk.FindWatchlists(*deskPath, c.list)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load watchlists: %v\n", err)
		return subcommands.ExitFailure
	}

	// The tracker is optional here: quotes still come through when the
	// documents backend is not configured.
	tr, _, err := openTracker()
	if err == nil {
		defer tr.Close()
	} else {
		tr = nil
	}

	for _, w := range lists {
		prices := marketdesk.FetchQuotes(http.DefaultClient, *quoteURL, w.Assets())
		printMarkdown(renderer.WatchlistMarkdown(renderer.NewWatchlistView(w, prices, tr)))
	}
	return subcommands.ExitSuccess
}

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the portfolio valued at live quotes" }
func (*holdingsCmd) Usage() string {
	return `mdesk holdings

  Displays the portfolio positions valued at the latest quotes. Positions
  without a quote are valued at cost, and the total is expressed in the
  reporting currency (see -default-currency).
`
}

func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := marketdesk.LoadPortfolio(*portfolioFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if p.Len() == 0 {
		fmt.Println("Portfolio is empty.")
		return subcommands.ExitSuccess
	}

	assets := make([]marketdesk.Asset, 0, p.Len())
	for _, h := range p.Holdings() {
		assets = append(assets, h.Asset)
	}
	prices := marketdesk.FetchQuotes(http.DefaultClient, *quoteURL, assets)
	// Rates move slowly compared to a desk session, a day-cached client is
	// enough for totals.
	rates := marketdesk.FetchRates(marketdesk.Daily())

	printMarkdown(renderer.PortfolioMarkdown(renderer.NewPortfolioView(p, *defaultCurrency, prices, rates)))
	return subcommands.ExitSuccess
}
