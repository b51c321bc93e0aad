package marketdesk

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultQuoteURL is the public quote endpoint the desk scrapes by ISIN.
const DefaultQuoteURL = "https://www.tradegate.de/refresh.php?isin="

// EURUSDChartURL quotes the EUR value of one USD as a mini intraday chart.
const EURUSDChartURL = "https://www.ls-tc.de/_rpc/json/instrument/chart/dataForInstrument?instrumentId=349938&series=intraday&type=mini"

// Quote is the latest observed price of an asset.
type Quote struct {
	Symbol string
	Price  Money
	At     time.Time
}

// LatestQuote fetches the latest traded price for the asset from the quote
// endpoint at base. The endpoint answers with a loose JSON object whose
// "last" field is sometimes empty, sometimes a localized string.
func LatestQuote(client *http.Client, base string, asset Asset) (Quote, error) {
	if asset.ISIN == "" {
		return Quote{}, fmt.Errorf("no ISIN for %q, cannot fetch a quote", asset.Symbol)
	}
	addr := base + asset.ISIN

	var jobj map[string]any
	if err := jwget(client, addr, &jobj); err != nil {
		return Quote{}, fmt.Errorf("error retrieving %q: %w", asset.Symbol, err)
	}

	// last is the last transaction, moves slower than the bid, but the bid can be 0.
	jval := jobj["last"]
	if s, ok := jval.(string); ok && s == "./." {
		// the endpoint shows an empty last this way, use the bid instead
		log.Println("'last' is empty, falling back to 'bid'")
		jval = jobj["bid"]
	}

	val, ok := jval.(float64)
	if !ok {
		// sometimes, this weird API returns the value as a string
		sval, ok := jval.(string)
		if !ok {
			return Quote{}, fmt.Errorf("cannot read value for %q: neither a float nor a string", asset.Symbol)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		var err error
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return Quote{}, fmt.Errorf("cannot read value for %q: invalid string %q: %w", asset.Symbol, sval, err)
		}
	}
	if val == 0 {
		// sometimes the bid is empty and returns 0
		return Quote{}, fmt.Errorf("empty bid for %q, no value to return", asset.Symbol)
	}

	return Quote{Symbol: asset.Symbol, Price: M(val, asset.Currency), At: time.Now()}, nil
}

// FetchQuotes fetches the latest quote for every asset, skipping (and
// logging) the ones that fail. It returns the prices by symbol.
func FetchQuotes(client *http.Client, base string, assets []Asset) map[string]Money {
	prices := make(map[string]Money, len(assets))
	for _, asset := range assets {
		q, err := LatestQuote(client, base, asset)
		if err != nil {
			log.Printf("skipping quote for %q: %v", asset.Symbol, err)
			continue
		}
		prices[asset.Symbol] = q.Price
	}
	return prices
}

// LatestEURperUSD returns the EUR value of one USD.
func LatestEURperUSD(client *http.Client) (float64, error) {
	return IntradayLast(client, EURUSDChartURL)
}

// FetchRates returns conversion rates into EUR for the currencies the desk
// quotes in, for use with Portfolio.TotalValue. Rates that cannot be fetched
// are skipped and logged: valuation degrades, it never fails.
func FetchRates(client *http.Client) map[string]float64 {
	rates := map[string]float64{"EUR": 1}
	val, err := LatestEURperUSD(client)
	if err != nil {
		log.Printf("skipping EUR/USD rate: %v", err)
		return rates
	}
	rates["USD"] = val
	return rates
}

// IntradayLast extracts the most recent value from an intraday chart
// endpoint, whose payload nests the series deep inside a chart description.
func IntradayLast(client *http.Client, addr string) (float64, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error in wget %q: %w", addr, err)
	}
	path := "$.series.intraday.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing intraday data: %q %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer or
	// a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing intraday data: %q is not a float: %v", path, jval)
	}
	return val, nil
}
