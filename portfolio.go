package marketdesk

import (
	"fmt"
	"log"
)

// Holding is a position in a portfolio: an asset, the quantity held, and the
// total cost basis of that quantity.
type Holding struct {
	Asset    Asset    `json:"asset"`
	Quantity Quantity `json:"quantity"`
	Cost     Money    `json:"cost"`
}

// MarketValue values the holding at the given price per unit.
func (h Holding) MarketValue(price Money) Money {
	return price.Mul(h.Quantity)
}

// Portfolio is a named set of holdings.
type Portfolio struct {
	name     string
	holdings []Holding
}

// NewPortfolio returns an empty portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{}
}

func (p *Portfolio) Name() string        { return p.name }
func (p *Portfolio) SetName(name string) { p.name = name }
func (p *Portfolio) Len() int            { return len(p.holdings) }

// Holdings returns a copy of the positions in display order.
func (p *Portfolio) Holdings() []Holding {
	out := make([]Holding, len(p.holdings))
	copy(out, p.holdings)
	return out
}

// Get returns the holding for the given symbol.
func (p *Portfolio) Get(symbol string) (Holding, bool) {
	for _, h := range p.holdings {
		if h.Asset.Symbol == symbol {
			return h, true
		}
	}
	return Holding{}, false
}

// Add merges the holding into the portfolio: an existing position for the
// same symbol accumulates quantity and cost.
func (p *Portfolio) Add(h Holding) error {
	if err := h.Asset.Validate(); err != nil {
		return err
	}
	if h.Quantity.IsZero() {
		return fmt.Errorf("cannot hold a zero quantity of %q", h.Asset.Symbol)
	}
	for i, held := range p.holdings {
		if held.Asset.Symbol == h.Asset.Symbol {
			p.holdings[i].Quantity = held.Quantity.Add(h.Quantity)
			p.holdings[i].Cost = held.Cost.Add(h.Cost)
			return nil
		}
	}
	p.holdings = append(p.holdings, h)
	return nil
}

// TotalValue values the whole portfolio in cur against the given per-symbol
// prices. Positions without a quote are valued at cost. Positions in another
// currency are converted with rates, which maps a currency to its value in a
// common base. A missing quote or rate degrades the total instead of failing
// it: unquoted positions fall back to cost, unconvertible ones are skipped
// with a log.
func (p *Portfolio) TotalValue(cur string, prices map[string]Money, rates map[string]float64) Money {
	total := M(0, cur)
	for _, h := range p.holdings {
		v := h.Cost
		if price, ok := prices[h.Asset.Symbol]; ok {
			v = h.MarketValue(price)
		}
		if v.Currency() == cur || v.Currency() == "" {
			total = total.Add(v)
			continue
		}
		from, okFrom := rates[v.Currency()]
		to, okTo := rates[cur]
		if !okFrom || !okTo || to == 0 {
			log.Printf("no rate to value %q (%s) in %s, skipping it in the total", h.Asset.Symbol, v.Currency(), cur)
			continue
		}
		total = total.Add(v.Convert(cur, from/to))
	}
	return total
}
