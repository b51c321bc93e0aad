package renderer

import (
	"strings"

	"github.com/oneview/marketdesk"
	"github.com/oneview/marketdesk/tracker"
)

// View structs decouple rendering from the domain: every cell is already a
// display string when it reaches a template.

// WatchlistRow is one asset line in a watchlist table.
type WatchlistRow struct {
	Symbol   string
	Name     string
	Price    string
	Research string
}

// WatchlistView is the renderable form of a watchlist.
type WatchlistView struct {
	Name string
	Rows []WatchlistRow
}

// NewWatchlistView builds the view for a watchlist, its known prices, and the
// tracker supplying the "research in progress" column.
func NewWatchlistView(w *marketdesk.Watchlist, prices map[string]marketdesk.Money, tr *tracker.Tracker) *WatchlistView {
	v := &WatchlistView{Name: w.Name()}
	for _, asset := range w.Assets() {
		row := WatchlistRow{
			Symbol: asset.Symbol,
			Name:   asset.Name,
		}
		if price, ok := prices[asset.Symbol]; ok {
			row.Price = price.String()
		}
		if tr != nil {
			var kinds []string
			for _, kind := range []tracker.Kind{tracker.OnePager, tracker.Memo} {
				if tr.Pending(asset.ID, kind) {
					kinds = append(kinds, string(kind))
				}
			}
			if len(kinds) > 0 {
				row.Research = "generating " + strings.Join(kinds, ", ")
			}
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// HoldingRow is one position line in a portfolio table.
type HoldingRow struct {
	Symbol   string
	Quantity string
	Cost     string
	Value    string
}

// PortfolioView is the renderable form of a portfolio.
type PortfolioView struct {
	Name  string
	Rows  []HoldingRow
	Total string
}

// NewPortfolioView builds the view for a portfolio valued at the given
// prices, with the total expressed in cur using the conversion rates.
func NewPortfolioView(p *marketdesk.Portfolio, cur string, prices map[string]marketdesk.Money, rates map[string]float64) *PortfolioView {
	v := &PortfolioView{Name: p.Name()}
	for _, h := range p.Holdings() {
		row := HoldingRow{
			Symbol:   h.Asset.Symbol,
			Quantity: h.Quantity.String(),
			Cost:     h.Cost.String(),
		}
		if price, ok := prices[h.Asset.Symbol]; ok {
			row.Value = h.MarketValue(price).String()
		} else {
			row.Value = h.Cost.String()
		}
		v.Rows = append(v.Rows, row)
	}
	v.Total = p.TotalValue(cur, prices, rates).String()
	return v
}

// TaskRow is one tracked generation job.
type TaskRow struct {
	TaskID  string
	Label   string
	Kind    string
	Started string
}

// PendingView is the renderable form of the tracked jobs.
type PendingView struct {
	Tasks []TaskRow
}

// NewPendingView builds the view for the tracker's pending tasks.
func NewPendingView(tasks []tracker.PendingTask) *PendingView {
	v := &PendingView{}
	for _, task := range tasks {
		v.Tasks = append(v.Tasks, TaskRow{
			TaskID:  task.ID,
			Label:   task.Label,
			Kind:    string(task.Kind),
			Started: task.StartedAt.Format("2006-01-02 15:04"),
		})
	}
	return v
}
