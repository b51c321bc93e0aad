package marketdesk

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Desk files are JSONL: one record per line, human readable and git friendly.
// A watchlist line is an asset; a portfolio line is a holding.

// DecodeWatchlist reads a stream of JSONL asset records into a Watchlist.
func DecodeWatchlist(r io.Reader) (*Watchlist, error) {
	w := NewWatchlist()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var asset Asset
		if err := json.Unmarshal(line, &asset); err != nil {
			return nil, fmt.Errorf("could not decode watchlist line %q: %w", string(line), err)
		}
		if err := w.Add(asset); err != nil {
			return nil, fmt.Errorf("invalid watchlist entry: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading watchlist: %w", err)
	}
	return w, nil
}

// EncodeWatchlist writes the watchlist as JSONL, one asset per line.
func EncodeWatchlist(w io.Writer, list *Watchlist) error {
	enc := json.NewEncoder(w)
	for _, asset := range list.Assets() {
		if err := enc.Encode(asset); err != nil {
			return fmt.Errorf("could not encode watchlist entry %q: %w", asset.Symbol, err)
		}
	}
	return nil
}

// DecodePortfolio reads a stream of JSONL holding records into a Portfolio.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	p := NewPortfolio()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var h Holding
		if err := json.Unmarshal(line, &h); err != nil {
			return nil, fmt.Errorf("could not decode portfolio line %q: %w", string(line), err)
		}
		if err := p.Add(h); err != nil {
			return nil, fmt.Errorf("invalid portfolio entry: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading portfolio: %w", err)
	}
	return p, nil
}

// EncodePortfolio writes the portfolio as JSONL, one holding per line.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	enc := json.NewEncoder(w)
	for _, h := range p.Holdings() {
		if err := enc.Encode(h); err != nil {
			return fmt.Errorf("could not encode holding %q: %w", h.Asset.Symbol, err)
		}
	}
	return nil
}
