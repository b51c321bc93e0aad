package marketdesk

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Asset is a monitored financial instrument: the subject of watchlist rows,
// holdings and generated research documents.
type Asset struct {
	// ID is the dashboard-wide numeric identifier of the asset, assigned by
	// the backend. Generation jobs reference assets by this id.
	ID int64 `json:"id"`
	// Symbol is the short ticker shown in tables and logs.
	Symbol string `json:"symbol"`
	// ISIN is the international identifier of the instrument.
	ISIN string `json:"isin,omitempty"`
	// Currency is the ISO 4217 code the asset is quoted in.
	Currency string `json:"currency"`
	// Name is the long display name.
	Name string `json:"name,omitempty"`
}

func (a Asset) String() string {
	if a.Name == "" {
		return a.Symbol
	}
	return fmt.Sprintf("%s (%s)", a.Symbol, a.Name)
}

// Validate checks the asset fields that the rest of the system relies on.
func (a Asset) Validate() error {
	if a.Symbol == "" {
		return fmt.Errorf("asset %d has no symbol", a.ID)
	}
	if a.Currency == "" {
		return fmt.Errorf("asset %q has no currency", a.Symbol)
	}
	if a.ISIN != "" {
		if err := ValidateISIN(a.ISIN); err != nil {
			return fmt.Errorf("asset %q: %w", a.Symbol, err)
		}
	}
	return nil
}

var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// ValidateISIN checks an ISIN for length, format and check digit.
func ValidateISIN(isin string) error {
	if len(isin) != 12 {
		return fmt.Errorf("invalid ISIN length: must be 12 characters, got %d", len(isin))
	}
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid ISIN format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// Letters become two-digit numbers (A=10 ... Z=35) before the checksum.
	var numeric strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			numeric.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			numeric.WriteRune(char)
		}
	}

	// Luhn over the expanded digit string.
	sum := 0
	double := true
	digits := numeric.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if double {
			digit *= 2
		}
		sum += digit/10 + digit%10
		double = !double
	}

	want := (10 - sum%10) % 10
	got := int(isin[11] - '0')
	if want != got {
		return fmt.Errorf("invalid ISIN check digit: want %d, got %d", want, got)
	}
	return nil
}
