package marketdesk

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

var (
	aapl = Asset{ID: 42, Symbol: "AAPL", ISIN: "US0378331005", Currency: "USD", Name: "Apple Inc."}
	vw   = Asset{ID: 7, Symbol: "VOW3", ISIN: "DE0007664039", Currency: "EUR", Name: "Volkswagen AG"}
)

func TestWatchlistAddRemove(t *testing.T) {
	w := NewWatchlist()
	if err := w.Add(aapl); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := w.Add(vw); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	t.Run("re-adding a symbol keeps its position", func(t *testing.T) {
		renamed := aapl
		renamed.Name = "Apple"
		if err := w.Add(renamed); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		assets := w.Assets()
		if len(assets) != 2 {
			t.Fatalf("len(Assets()) = %d, want 2", len(assets))
		}
		if assets[0].Name != "Apple" {
			t.Errorf("first asset = %v, want updated AAPL in place", assets[0])
		}
	})

	t.Run("remove", func(t *testing.T) {
		if err := w.Remove("VOW3"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, ok := w.Get("VOW3"); ok {
			t.Error("VOW3 still present after Remove")
		}
		if err := w.Remove("VOW3"); err == nil {
			t.Error("removing an absent symbol should be an error")
		}
	})
}

func TestWatchlistEncodeDecode(t *testing.T) {
	w := NewWatchlist()
	w.Add(aapl)
	w.Add(vw)

	var buf bytes.Buffer
	if err := EncodeWatchlist(&buf, w); err != nil {
		t.Fatalf("EncodeWatchlist() error = %v", err)
	}

	got, err := DecodeWatchlist(&buf)
	if err != nil {
		t.Fatalf("DecodeWatchlist() error = %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("decoded %d assets, want 2", got.Len())
	}
	if a, _ := got.Get("AAPL"); a != aapl {
		t.Errorf("decoded AAPL = %+v, want %+v", a, aapl)
	}
}

func TestFindWatchlists(t *testing.T) {
	dir := t.TempDir()

	us := NewWatchlist()
	us.SetName("us/tech")
	us.Add(aapl)
	if err := SaveWatchlist(dir, us); err != nil {
		t.Fatalf("SaveWatchlist() error = %v", err)
	}

	de := NewWatchlist()
	de.SetName("de")
	de.Add(vw)
	if err := SaveWatchlist(dir, de); err != nil {
		t.Fatalf("SaveWatchlist() error = %v", err)
	}

	t.Run("query one", func(t *testing.T) {
		w, err := FindWatchlist(dir, "us/tech")
		if err != nil {
			t.Fatalf("FindWatchlist() error = %v", err)
		}
		if w.Name() != "us/tech" || w.Len() != 1 {
			t.Errorf("FindWatchlist() = %q with %d assets, want us/tech with 1", w.Name(), w.Len())
		}
	})

	t.Run("query all", func(t *testing.T) {
		lists, err := FindWatchlists(dir, "")
		if err != nil {
			t.Fatalf("FindWatchlists() error = %v", err)
		}
		if len(lists) != 2 {
			t.Errorf("FindWatchlists() found %d lists, want 2", len(lists))
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		if _, err := FindWatchlist(dir, "nope"); err == nil {
			t.Error("FindWatchlist() on an unknown name should fail")
		}
	})

	t.Run("state files are not watchlists", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, ".pending.jsonl"), []byte(`{"version":1}`+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "portfolio.jsonl"), nil, 0644); err != nil {
			t.Fatal(err)
		}
		lists, err := FindWatchlists(dir, "")
		if err != nil {
			t.Fatalf("FindWatchlists() error = %v", err)
		}
		if len(lists) != 2 {
			t.Errorf("FindWatchlists() found %d lists, want the 2 real ones", len(lists))
		}
	})

	t.Run("empty desk default", func(t *testing.T) {
		w, err := FindWatchlist(filepath.Join(dir, "empty"), "")
		if err != nil {
			t.Fatalf("FindWatchlist() error = %v", err)
		}
		if w.Name() != "watchlist" || w.Len() != 0 {
			t.Errorf("default watchlist = %q with %d assets, want empty \"watchlist\"", w.Name(), w.Len())
		}
	})
}

func TestPortfolio(t *testing.T) {
	p := NewPortfolio()
	if err := p.Add(Holding{Asset: aapl, Quantity: Q(10), Cost: USD(1500)}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	// Buying more of the same symbol accumulates.
	if err := p.Add(Holding{Asset: aapl, Quantity: Q(5), Cost: USD(800)}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	h, ok := p.Get("AAPL")
	if !ok {
		t.Fatal("Get(AAPL) not found")
	}
	if got, want := h.Quantity, Q(15); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	if got, want := h.Cost, USD(2300); !got.Equal(want) {
		t.Errorf("Cost = %v, want %v", got, want)
	}

	t.Run("total value", func(t *testing.T) {
		got := p.TotalValue("USD", map[string]Money{"AAPL": USD(160)}, nil)
		if want := USD(2400); !got.Equal(want) {
			t.Errorf("TotalValue() = %v, want %v", got, want)
		}
	})

	t.Run("missing quote falls back to cost", func(t *testing.T) {
		got := p.TotalValue("USD", nil, nil)
		if want := USD(2300); !got.Equal(want) {
			t.Errorf("TotalValue() = %v, want %v", got, want)
		}
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		if err := p.Add(Holding{Asset: vw, Quantity: Q(0), Cost: EUR(0)}); err == nil {
			t.Error("Add() with zero quantity should fail")
		}
	})
}

func TestPortfolioTotalValueMixedCurrencies(t *testing.T) {
	p := NewPortfolio()
	p.Add(Holding{Asset: aapl, Quantity: Q(10), Cost: USD(1000)})
	p.Add(Holding{Asset: vw, Quantity: Q(5), Cost: EUR(500)})

	rates := map[string]float64{"EUR": 1, "USD": 0.9}

	t.Run("converted into EUR", func(t *testing.T) {
		got := p.TotalValue("EUR", nil, rates)
		// 1000 USD at 0.90 plus 500 EUR.
		if want := EUR(1400); !got.Equal(want) {
			t.Errorf("TotalValue() = %v, want %v", got, want)
		}
	})

	t.Run("converted into USD", func(t *testing.T) {
		got := p.TotalValue("USD", nil, rates)
		// 1000 USD plus 500 EUR at 1/0.90.
		want := USD(1000).Add(EUR(500).Convert("USD", 1/0.9))
		if !got.Equal(want) {
			t.Errorf("TotalValue() = %v, want %v", got, want)
		}
	})

	t.Run("missing rate skips the position", func(t *testing.T) {
		got := p.TotalValue("EUR", nil, map[string]float64{"EUR": 1})
		if want := EUR(500); !got.Equal(want) {
			t.Errorf("TotalValue() = %v, want %v", got, want)
		}
	})
}

func TestPortfolioEncodeDecode(t *testing.T) {
	p := NewPortfolio()
	p.Add(Holding{Asset: aapl, Quantity: Q(10), Cost: USD(1500)})
	p.Add(Holding{Asset: vw, Quantity: Q(3), Cost: EUR(420)})

	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("EncodePortfolio() error = %v", err)
	}
	got, err := DecodePortfolio(&buf)
	if err != nil {
		t.Fatalf("DecodePortfolio() error = %v", err)
	}
	h, ok := got.Get("VOW3")
	if !ok {
		t.Fatal("decoded portfolio is missing VOW3")
	}
	if !h.Quantity.Equal(Q(3)) || !h.Cost.Equal(EUR(420)) {
		t.Errorf("decoded VOW3 = %v %v, want 3 and %v", h.Quantity, h.Cost, EUR(420))
	}
}
