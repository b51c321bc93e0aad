package marketdesk

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func quoteServer(t *testing.T, payloads map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isin := r.URL.Query().Get("isin")
		payload, ok := payloads[isin]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestQuote(t *testing.T) {
	srv := quoteServer(t, map[string]string{
		"US0378331005": `{"last": 231.5, "bid": 231.4}`,
		"DE0007664039": `{"last": "./.", "bid": 98.76}`,
		"FR0000000000": `{"last": "1 234,5"}`,
		"IT0000000000": `{"last": "./.", "bid": 0}`,
	})
	base := srv.URL + "/refresh.php?isin="

	testCases := []struct {
		name      string
		asset     Asset
		want      Money
		expectErr bool
	}{
		{"plain float", Asset{Symbol: "AAPL", ISIN: "US0378331005", Currency: "USD"}, USD(231.5), false},
		{"empty last falls back to bid", Asset{Symbol: "VOW3", ISIN: "DE0007664039", Currency: "EUR"}, EUR(98.76), false},
		{"localized string value", Asset{Symbol: "MC", ISIN: "FR0000000000", Currency: "EUR"}, EUR(1234.5), false},
		{"zero bid", Asset{Symbol: "ENI", ISIN: "IT0000000000", Currency: "EUR"}, Money{}, true},
		{"no isin", Asset{Symbol: "XXX", Currency: "EUR"}, Money{}, true},
		{"unknown isin", Asset{Symbol: "YYY", ISIN: "GB0000000000", Currency: "GBP"}, Money{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := LatestQuote(srv.Client(), base, tc.asset)
			if hasErr := err != nil; hasErr != tc.expectErr {
				t.Fatalf("LatestQuote() error = %v, want error: %v", err, tc.expectErr)
			}
			if err != nil {
				return
			}
			if !q.Price.Equal(tc.want) {
				t.Errorf("LatestQuote() price = %v, want %v", q.Price, tc.want)
			}
			if q.Symbol != tc.asset.Symbol {
				t.Errorf("LatestQuote() symbol = %q, want %q", q.Symbol, tc.asset.Symbol)
			}
		})
	}
}

func TestFetchQuotesSkipsFailures(t *testing.T) {
	srv := quoteServer(t, map[string]string{
		"US0378331005": `{"last": 231.5}`,
	})
	base := srv.URL + "/refresh.php?isin="

	assets := []Asset{
		{Symbol: "AAPL", ISIN: "US0378331005", Currency: "USD"},
		{Symbol: "GONE", ISIN: "GB0000000000", Currency: "GBP"},
	}
	prices := FetchQuotes(srv.Client(), base, assets)

	if len(prices) != 1 {
		t.Fatalf("FetchQuotes() returned %d prices, want 1", len(prices))
	}
	if got, want := prices["AAPL"], USD(231.5); !got.Equal(want) {
		t.Errorf("prices[AAPL] = %v, want %v", got, want)
	}
}

func TestIntradayLast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"series":{"intraday":{"data":[[1000,1.07],[2000,1.08],[3000,1.092]]}}}`)
	}))
	defer srv.Close()

	got, err := IntradayLast(srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("IntradayLast() error = %v", err)
	}
	if got != 1.092 {
		t.Errorf("IntradayLast() = %v, want 1.092", got)
	}
}
