package renderer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/oneview/marketdesk"
	"github.com/oneview/marketdesk/tracker"
)

func TestWatchlistMarkdown(t *testing.T) {
	w := marketdesk.NewWatchlist()
	w.SetName("us/tech")
	w.Add(marketdesk.Asset{ID: 42, Symbol: "AAPL", ISIN: "US0378331005", Currency: "USD", Name: "Apple Inc."})
	w.Add(marketdesk.Asset{ID: 7, Symbol: "VOW3", ISIN: "DE0007664039", Currency: "EUR", Name: "Volkswagen AG"})

	prices := map[string]marketdesk.Money{"AAPL": marketdesk.USD(231.5)}

	out := WatchlistMarkdown(NewWatchlistView(w, prices, nil))

	if !strings.Contains(out, "# Watchlist us/tech") {
		t.Errorf("missing title in:\n%s", out)
	}
	aapl := strings.Index(out, "AAPL")
	vw := strings.Index(out, "VOW3")
	if aapl < 0 || vw < 0 || aapl > vw {
		t.Errorf("rows missing or out of order in:\n%s", out)
	}
	if !strings.Contains(out, marketdesk.USD(231.5).String()) {
		t.Errorf("missing AAPL price in:\n%s", out)
	}
}

func TestWatchlistMarkdownShowsPendingResearch(t *testing.T) {
	w := marketdesk.NewWatchlist()
	w.SetName("main")
	w.Add(marketdesk.Asset{ID: 42, Symbol: "AAPL", Currency: "USD"})

	tr := tracker.New(stuckResolver{}, nopCommitter{}, tracker.Options{PollInterval: time.Hour})
	defer tr.Close()
	tr.Register(tracker.PendingTask{ID: "t1", AssetID: 42, Kind: tracker.OnePager, Label: "AAPL"})

	out := WatchlistMarkdown(NewWatchlistView(w, nil, tr))
	if !strings.Contains(out, "generating one_pager") {
		t.Errorf("missing research-in-progress marker in:\n%s", out)
	}
}

func TestPortfolioMarkdown(t *testing.T) {
	p := marketdesk.NewPortfolio()
	p.SetName("main")
	p.Add(marketdesk.Holding{
		Asset:    marketdesk.Asset{ID: 42, Symbol: "AAPL", Currency: "USD"},
		Quantity: marketdesk.Q(10),
		Cost:     marketdesk.USD(1500),
	})

	out := PortfolioMarkdown(NewPortfolioView(p, "USD", map[string]marketdesk.Money{"AAPL": marketdesk.USD(160)}, nil))

	if !strings.Contains(out, "# Portfolio main") {
		t.Errorf("missing title in:\n%s", out)
	}
	if !strings.Contains(out, marketdesk.USD(1600).String()) {
		t.Errorf("missing market value in:\n%s", out)
	}
	if !strings.Contains(out, "**Total**: "+marketdesk.USD(1600).String()) {
		t.Errorf("missing total in:\n%s", out)
	}
}

func TestPendingMarkdown(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		out := PendingMarkdown(NewPendingView(nil))
		if !strings.Contains(out, "No generation job in progress") {
			t.Errorf("missing empty message in:\n%s", out)
		}
	})

	t.Run("with tasks", func(t *testing.T) {
		tasks := []tracker.PendingTask{
			{ID: "t1", AssetID: 42, Kind: tracker.OnePager, Label: "AAPL", StartedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)},
		}
		out := PendingMarkdown(NewPendingView(tasks))
		for _, want := range []string{"t1", "AAPL", "one_pager", "2026-08-30 10:00"} {
			if !strings.Contains(out, want) {
				t.Errorf("missing %q in:\n%s", want, out)
			}
		}
	})
}

func TestHTML(t *testing.T) {
	out, err := HTML("# Title\n\n| A | B |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<h1") {
		t.Errorf("missing heading in:\n%s", html)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("GFM table was not converted in:\n%s", html)
	}
}

// stuckResolver keeps every task forever in running state.
type stuckResolver struct{}

func (stuckResolver) CheckStatus(ctx context.Context, taskID string) (tracker.StatusResult, error) {
	return tracker.StatusResult{Status: tracker.Running}, nil
}

type nopCommitter struct{}

func (nopCommitter) CommitResult(ctx context.Context, task tracker.PendingTask, ref string) error {
	return nil
}
