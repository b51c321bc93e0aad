package marketdesk

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Money is a monetary value in a given currency. The zero value is a zero
// amount with no currency, which renders as an empty cell.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M builds a Money from any numeric value.
func M[T float32 | float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// EUR and USD are convenience constructors for the two most common cases.
func EUR[T float32 | float64 | int | int64 | decimal.Decimal](value T) Money { return M(value, "EUR") }
func USD[T float32 | float64 | int | int64 | decimal.Decimal](value T) Money { return M(value, "USD") }

// currency resolves the go-money currency, never nil.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with its currency symbol and fraction digits.
func (m Money) String() string {
	if m.cur == "" {
		return ""
	}
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string   { return m.cur }
func (m Money) IsZero() bool       { return m.value.IsZero() }
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) Neg() Money         { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money {
	return Money{value: m.value.Mul(q.value), cur: m.cur}
}

// Add sums two amounts of the same currency. A zero-valued Money acts as a
// neutral element; mixing two real currencies is a programming error.
func (m Money) Add(n Money) Money {
	if m.cur == "" {
		return n
	}
	if n.cur == "" {
		return m
	}
	if m.cur != n.cur {
		panic(fmt.Sprintf("cannot add %s to %s", n.cur, m.cur))
	}
	return Money{value: m.value.Add(n.value), cur: m.cur}
}

func (m Money) Sub(n Money) Money { return m.Add(n.Neg()) }

// Convert exchanges the amount into another currency at the given rate
// (value of one unit of m's currency in the target currency).
func (m Money) Convert(to string, rate float64) Money {
	if m.cur == to || m.cur == "" {
		return m
	}
	return Money{value: m.value.Mul(decimal.NewFromFloat(rate)), cur: to}
}

// AsFloat returns the amount as a float64, for display purposes only.
func (m Money) AsFloat() float64 { f, _ := m.value.Float64(); return f }

// moneyJSON is the persisted shape of a Money.
type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.value, Currency: m.cur})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var j moneyJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	m.value, m.cur = j.Amount, j.Currency
	return nil
}
