// Package cmd implements the CLI application of the marketdesk dashboard.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/oneview/marketdesk"
	"github.com/oneview/marketdesk/docsvc"
	"github.com/oneview/marketdesk/tracker"
)

// Environment fallbacks for the global flags, so extensions and CI can
// configure the desk without repeating flags.
const (
	EnvDocsURL    = "MDESK_DOCS_URL"
	EnvDocsAPIKey = "MDESK_DOCS_API_KEY"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&watchCmd{}, "watchlists")
	c.Register(&addAssetCmd{}, "watchlists")
	c.Register(&dropAssetCmd{}, "watchlists")
	c.Register(&quotesCmd{}, "watchlists")
	c.Register(&holdingsCmd{}, "portfolio")

	c.Register(&generateCmd{}, "research")
	c.Register(&pendingCmd{}, "research")
	c.Register(&trackCmd{}, "research")
	c.Register(&researchCmd{}, "research")
	c.Register(&publishCmd{}, "research")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var deskPath = flag.String("desk-path", ".", "Path to the desk folder holding watchlist files")
var portfolioFile = flag.String("portfolio-file", "portfolio.jsonl", "Path to the portfolio file (JSONL format)")
var pendingFile = flag.String("pending-file", ".pending.jsonl", "Path, relative to the desk folder, of the pending generation jobs snapshot")
var quoteURL = flag.String("quote-url", marketdesk.DefaultQuoteURL, "Base URL of the public quote endpoint")
var defaultCurrency = flag.String("default-currency", "EUR", "Reporting currency for portfolio totals")
var docsURL = flag.String("docs-url", "", "Base URL of the documents backend.\n If missing it will read the environment variable "+EnvDocsURL+".")
var docsAPIKey = flag.String("docs-api-key", "", "API key for the documents backend.\n If missing it will read the environment variable "+EnvDocsAPIKey+".")

// docsClient builds the documents backend client from flags and environment.
func docsClient() (*docsvc.Client, error) {
	url := *docsURL
	if url == "" {
		url = os.Getenv(EnvDocsURL)
	}
	if url == "" {
		return nil, fmt.Errorf("no documents backend configured: set -docs-url or %s", EnvDocsURL)
	}
	key := *docsAPIKey
	if key == "" {
		key = os.Getenv(EnvDocsAPIKey)
	}
	return docsvc.New(url, key, nil), nil
}

// openTracker builds the job tracker backed by the documents backend, with
// its snapshot in the desk folder. Restored pending jobs resume polling
// immediately.
func openTracker() (*tracker.Tracker, *docsvc.Client, error) {
	client, err := docsClient()
	if err != nil {
		return nil, nil, err
	}
	tr := tracker.New(client, client, tracker.Options{
		SnapshotFile: filepath.Join(*deskPath, *pendingFile),
	})
	return tr, client, nil
}

// findAsset looks a symbol up across all watchlists of the desk.
func findAsset(symbol string) (marketdesk.Asset, error) {
	lists, err := marketdesk.FindWatchlists(*deskPath, "")
	if err != nil {
		return marketdesk.Asset{}, err
	}
	for _, w := range lists {
		if asset, ok := w.Get(symbol); ok {
			return asset, nil
		}
	}
	return marketdesk.Asset{}, fmt.Errorf("symbol %q is not on any watchlist under %q", symbol, *deskPath)
}
