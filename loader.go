package marketdesk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Watchlists and portfolios live as .jsonl files under the desk path; a
// list's name is its relative path without the extension, so "us/tech"
// is <path>/us/tech.jsonl.

const watchlistExt = ".jsonl"

// FindWatchlist returns the unique watchlist matching the query.
// An empty query over an empty desk returns a fresh default list.
func FindWatchlist(path, query string) (*Watchlist, error) {
	paths, err := findListPaths(path, query)
	if err != nil {
		return nil, err
	}
	switch len(paths) {
	case 0:
		if query == "" {
			w := NewWatchlist()
			w.name = "watchlist"
			return w, nil
		}
		return nil, fmt.Errorf("could not find watchlist %q", query)
	case 1:
		return loadWatchlistFile(path, paths[0])
	default:
		return nil, fmt.Errorf("multiple watchlists found for %q", query)
	}
}

// FindWatchlists discovers and loads watchlist files under path. An empty
// query loads them all; otherwise only the named list is loaded.
func FindWatchlists(path, query string) ([]*Watchlist, error) {
	paths, err := findListPaths(path, query)
	if err != nil {
		return nil, err
	}
	var lists []*Watchlist
	for _, fullPath := range paths {
		w, err := loadWatchlistFile(path, fullPath)
		if err != nil {
			return nil, err
		}
		lists = append(lists, w)
	}
	return lists, nil
}

func loadWatchlistFile(deskPath, fullPath string) (*Watchlist, error) {
	relPath, err := filepath.Rel(deskPath, fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not determine relative path for %q: %w", fullPath, err)
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not open watchlist file %q: %w", fullPath, err)
	}
	defer f.Close()

	w, err := DecodeWatchlist(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode watchlist file %q: %w", fullPath, err)
	}
	w.name = strings.TrimSuffix(relPath, watchlistExt)
	return w, nil
}

// SaveWatchlist saves the watchlist to its file under the desk path, creating
// intermediate directories as needed.
func SaveWatchlist(path string, w *Watchlist) error {
	if w.Name() == "" {
		return fmt.Errorf("cannot save watchlist with an empty name")
	}
	filePath := filepath.Join(path, w.Name()+watchlistExt)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("could not create directory for watchlist %q: %w", filePath, err)
	}
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error opening watchlist file %q for writing: %w", filePath, err)
	}
	defer f.Close()
	return EncodeWatchlist(f, w)
}

// LoadPortfolio reads a single portfolio file. A missing file is not an
// error: the desk starts empty.
func LoadPortfolio(filePath string) (*Portfolio, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			p := NewPortfolio()
			p.name = strings.TrimSuffix(filepath.Base(filePath), watchlistExt)
			return p, nil
		}
		return nil, fmt.Errorf("could not open portfolio file %q: %w", filePath, err)
	}
	defer f.Close()

	p, err := DecodePortfolio(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode portfolio file %q: %w", filePath, err)
	}
	p.name = strings.TrimSuffix(filepath.Base(filePath), watchlistExt)
	return p, nil
}

// SavePortfolio writes the portfolio to filePath.
func SavePortfolio(filePath string, p *Portfolio) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("could not create directory for portfolio %q: %w", filePath, err)
	}
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error opening portfolio file %q for writing: %w", filePath, err)
	}
	defer f.Close()
	return EncodePortfolio(f, p)
}

// findListPaths scans the desk path for .jsonl watchlist files matching the query.
func findListPaths(path, query string) ([]string, error) {
	var lists []string
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, watchlistExt) {
			return nil
		}
		// The desk folder also holds the portfolio and hidden state files
		// (like the pending-jobs snapshot); those are not watchlists.
		base := filepath.Base(p)
		if strings.HasPrefix(base, ".") || base == "portfolio"+watchlistExt {
			return nil
		}
		relPath, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(relPath, watchlistExt)
		if query == "" || name == query {
			lists = append(lists, p)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	return lists, err
}
