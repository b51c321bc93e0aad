package marketdesk

import "testing"

func TestValidateISIN(t *testing.T) {
	testCases := []struct {
		name      string
		isin      string
		expectErr bool
	}{
		{"Valid Apple ISIN", "US0378331005", false},
		{"Valid VW ISIN", "DE0007664039", false},
		{"Invalid Check Digit", "US0378331006", true},
		{"Invalid Length (Short)", "US123", true},
		{"Invalid Length (Long)", "US03783310055", true},
		{"Invalid Format (Contains 'X')", "US037833100X", true},
		{"Invalid Format (lowercase)", "us0378331005", true},
		{"Empty String", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateISIN(tc.isin)
			hasErr := err != nil

			if hasErr != tc.expectErr {
				t.Errorf("ValidateISIN(%q) returned error: %v, want error: %v", tc.isin, err, tc.expectErr)
			}
		})
	}
}

func TestAssetValidate(t *testing.T) {
	testCases := []struct {
		name      string
		asset     Asset
		expectErr bool
	}{
		{"Complete", Asset{ID: 1, Symbol: "AAPL", ISIN: "US0378331005", Currency: "USD", Name: "Apple Inc."}, false},
		{"No ISIN is fine", Asset{ID: 2, Symbol: "FOO", Currency: "EUR"}, false},
		{"Missing symbol", Asset{ID: 3, Currency: "EUR"}, true},
		{"Missing currency", Asset{ID: 4, Symbol: "BAR"}, true},
		{"Bad ISIN", Asset{ID: 5, Symbol: "BAZ", ISIN: "XX0000000000", Currency: "EUR"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.asset.Validate()
			if hasErr := err != nil; hasErr != tc.expectErr {
				t.Errorf("Validate() returned error: %v, want error: %v", err, tc.expectErr)
			}
		})
	}
}
