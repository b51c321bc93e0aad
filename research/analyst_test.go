package research

import (
	"strings"
	"testing"

	"github.com/oneview/marketdesk"
	"github.com/oneview/marketdesk/tracker"
)

func TestPrompt(t *testing.T) {
	asset := marketdesk.Asset{ID: 42, Symbol: "AAPL", ISIN: "US0378331005", Currency: "USD", Name: "Apple Inc."}

	t.Run("one pager", func(t *testing.T) {
		p := Prompt(asset, tracker.OnePager)
		for _, want := range []string{"one-page", "Apple Inc. (AAPL)", "US0378331005"} {
			if !strings.Contains(p, want) {
				t.Errorf("Prompt() = %q, missing %q", p, want)
			}
		}
	})

	t.Run("memo", func(t *testing.T) {
		p := Prompt(asset, tracker.Memo)
		if !strings.Contains(p, "investment memo") {
			t.Errorf("Prompt() = %q, missing memo instruction", p)
		}
	})

	t.Run("bare symbol", func(t *testing.T) {
		p := Prompt(marketdesk.Asset{Symbol: "FOO", Currency: "EUR"}, tracker.OnePager)
		if !strings.Contains(p, "of FOO:") {
			t.Errorf("Prompt() = %q, want the bare symbol as subject", p)
		}
	})
}
