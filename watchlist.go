package marketdesk

import "fmt"

// Watchlist is a named, ordered list of monitored assets. Its name is derived
// from its file path by the loader: the relative path under the desk folder
// without the extension.
type Watchlist struct {
	name   string
	assets []Asset
}

// NewWatchlist returns an empty watchlist.
func NewWatchlist() *Watchlist {
	return &Watchlist{}
}

// Name returns the watchlist name (its relative path without extension).
func (w *Watchlist) Name() string { return w.name }

// SetName sets the watchlist name; used by the loader and by callers creating
// a list from scratch.
func (w *Watchlist) SetName(name string) { w.name = name }

// Len returns the number of watched assets.
func (w *Watchlist) Len() int { return len(w.assets) }

// Assets returns a copy of the watched assets in display order.
func (w *Watchlist) Assets() []Asset {
	out := make([]Asset, len(w.assets))
	copy(out, w.assets)
	return out
}

// Get returns the watched asset with the given symbol.
func (w *Watchlist) Get(symbol string) (Asset, bool) {
	for _, a := range w.assets {
		if a.Symbol == symbol {
			return a, true
		}
	}
	return Asset{}, false
}

// Add appends the asset to the list. Adding an already-watched symbol
// overwrites the existing entry in place, preserving its position.
func (w *Watchlist) Add(asset Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}
	for i, a := range w.assets {
		if a.Symbol == asset.Symbol {
			w.assets[i] = asset
			return nil
		}
	}
	w.assets = append(w.assets, asset)
	return nil
}

// Remove drops the asset with the given symbol. Removing an absent symbol is
// an error so a typo in the CLI does not go unnoticed.
func (w *Watchlist) Remove(symbol string) error {
	for i, a := range w.assets {
		if a.Symbol == symbol {
			w.assets = append(w.assets[:i], w.assets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("symbol %q is not on watchlist %q", symbol, w.name)
}
