// Package columns is the static registry mapping display columns to
// storage keys, data sources, formatters and presentation hints.
package columns

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/stockpad/stockpad/pkg/stockpad/format"
	"github.com/stockpad/stockpad/pkg/stockpad/provider"
	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// Source is the data source category backing a column.
type Source int

const (
	SourceQuote Source = iota
	SourceProfile
	SourceMetrics
	SourceUser
)

// Descriptor describes one display column.
type Descriptor struct {
	Key       string // storage column, also the column selector on the CLI
	Label     string // display header
	Source    Source
	Width     int // max rendered width hint
	Align     text.Align
	Numeric   bool     // sortable as a number
	Editable  bool     // user field, writable through edits
	Mandatory bool     // always active regardless of selection
	Options   []string // closed value set (sentiment), nil otherwise

	// Render produces the formatted cell for a record. Raw values never
	// reach the display layer.
	Render func(r *types.Record) string
}

func textCol(key string) func(*types.Record) string {
	return func(r *types.Record) string {
		if s := types.Text(r.Market, key); s != "" {
			return s
		}
		return format.Dash
	}
}

func numCol(key string, f func(float64) string) func(*types.Record) string {
	return func(r *types.Record) string {
		if v, ok := types.Number(r.Market, key); ok {
			return f(v)
		}
		return format.Dash
	}
}

func userCol(key string) func(*types.Record) string {
	return func(r *types.Record) string { return r.User[key] }
}

// registry holds every column in display order.
var registry = []Descriptor{
	{Key: "ticker", Label: "Ticker", Source: SourceQuote, Width: 8, Mandatory: true,
		Render: func(r *types.Record) string { return r.Ticker }},
	{Key: "name", Label: "Name", Source: SourceProfile, Width: 24, Render: textCol("name")},
	{Key: "sector", Label: "Sector", Source: SourceProfile, Width: 18, Render: textCol("sector")},
	{Key: "industry", Label: "Industry", Source: SourceProfile, Width: 22, Render: textCol("industry")},
	{Key: "price", Label: "Price", Source: SourceQuote, Width: 12, Align: text.AlignRight, Numeric: true, Mandatory: true,
		Render: numCol("price", format.Price)},
	{Key: "change_pct", Label: "% Chg", Source: SourceQuote, Width: 9, Align: text.AlignRight, Numeric: true,
		Render: numCol("change_pct", format.Pct)},
	{Key: "market_cap", Label: "Mkt Cap", Source: SourceProfile, Width: 10, Align: text.AlignRight, Render: textCol("market_cap")},
	{Key: "pe_ratio", Label: "P/E", Source: SourceMetrics, Width: 9, Align: text.AlignRight, Numeric: true, Render: numCol("pe_ratio", format.Ratio)},
	{Key: "pb_ratio", Label: "P/B", Source: SourceMetrics, Width: 9, Align: text.AlignRight, Numeric: true, Render: numCol("pb_ratio", format.Ratio)},
	{Key: "ps_ratio", Label: "P/S", Source: SourceMetrics, Width: 9, Align: text.AlignRight, Numeric: true, Render: numCol("ps_ratio", format.Ratio)},
	{Key: "week52_high", Label: "52W High", Source: SourceMetrics, Width: 12, Align: text.AlignRight, Numeric: true, Render: numCol("week52_high", format.Price)},
	{Key: "week52_low", Label: "52W Low", Source: SourceMetrics, Width: 12, Align: text.AlignRight, Numeric: true, Render: numCol("week52_low", format.Price)},
	{Key: "week52_return", Label: "52W Return", Source: SourceMetrics, Width: 11, Align: text.AlignRight, Numeric: true, Render: numCol("week52_return", format.Pct)},
	{Key: "beta", Label: "Beta", Source: SourceMetrics, Width: 7, Align: text.AlignRight, Numeric: true, Render: numCol("beta", format.Num)},
	{Key: "debt_equity", Label: "Debt/Eq", Source: SourceMetrics, Width: 9, Align: text.AlignRight, Numeric: true, Render: numCol("debt_equity", format.Num)},
	{Key: "current_ratio", Label: "Curr Ratio", Source: SourceMetrics, Width: 10, Align: text.AlignRight, Numeric: true, Render: numCol("current_ratio", format.Num)},
	{Key: "dividend_yield", Label: "Div Yield", Source: SourceMetrics, Width: 10, Align: text.AlignRight, Numeric: true, Render: numCol("dividend_yield", format.Pct)},
	{Key: "roe", Label: "ROE", Source: SourceMetrics, Width: 9, Align: text.AlignRight, Numeric: true, Render: numCol("roe", format.Pct)},
	{Key: "roa", Label: "ROA", Source: SourceMetrics, Width: 9, Align: text.AlignRight, Numeric: true, Render: numCol("roa", format.Pct)},
	{Key: "gross_margin", Label: "Gross Margin", Source: SourceMetrics, Width: 12, Align: text.AlignRight, Numeric: true, Render: numCol("gross_margin", format.Pct)},
	{Key: "net_margin", Label: "Net Margin", Source: SourceMetrics, Width: 11, Align: text.AlignRight, Numeric: true, Render: numCol("net_margin", format.Pct)},
	{Key: "revenue_growth", Label: "Rev Growth", Source: SourceMetrics, Width: 11, Align: text.AlignRight, Numeric: true, Render: numCol("revenue_growth", format.Pct)},
	{Key: "target_buy", Label: "Buy Target", Source: SourceUser, Width: 11, Editable: true, Render: userCol("target_buy")},
	{Key: "target_sell", Label: "Sell Target", Source: SourceUser, Width: 11, Editable: true, Render: userCol("target_sell")},
	{Key: "price_tag", Label: "Price Tag", Source: SourceUser, Width: 10, Editable: true, Render: userCol("price_tag")},
	{Key: "price_tag_pct", Label: "Tag %", Source: SourceUser, Width: 7, Editable: true, Render: userCol("price_tag_pct")},
	{Key: "sentiment", Label: "Sentiment", Source: SourceUser, Width: 10, Editable: true,
		Options: sentimentOptions(), Render: userCol("sentiment")},
	{Key: "comments", Label: "Comments", Source: SourceUser, Width: 40, Editable: true, Render: userCol("comments")},
}

func sentimentOptions() []string {
	labels := types.Sentiments()
	out := make([]string, 0, len(labels))
	for _, s := range labels {
		out = append(out, string(s))
	}
	return out
}

// All returns every descriptor in display order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Get looks up a descriptor by column key.
func Get(key string) (Descriptor, bool) {
	for _, d := range registry {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

// GetByLabel looks up a descriptor by display label, used when re-reading
// an exported CSV whose header carries labels rather than keys.
func GetByLabel(label string) (Descriptor, bool) {
	for _, d := range registry {
		if d.Label == label {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Active resolves the requested column keys into descriptors, preserving
// request order, de-duplicating, and forcing the mandatory ticker and
// price columns in. An empty request activates every column.
func Active(keys []string) ([]Descriptor, error) {
	if len(keys) == 0 {
		return All(), nil
	}
	seen := map[string]struct{}{}
	out := make([]Descriptor, 0, len(keys)+2)
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		d, ok := Get(k)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", k)
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	// Mandatory columns lead when they were not requested.
	for i := len(registry) - 1; i >= 0; i-- {
		d := registry[i]
		if !d.Mandatory {
			continue
		}
		if _, ok := seen[d.Key]; !ok {
			out = append([]Descriptor{d}, out...)
			seen[d.Key] = struct{}{}
		}
	}
	return out, nil
}

// RequiredSources computes the provider lookups needed for the active
// columns. Quote and profile are always required (price validation and
// display name); metrics only when a metrics-backed column is active.
func RequiredSources(active []Descriptor) provider.SourceMask {
	mask := provider.NeedQuote | provider.NeedProfile
	for _, d := range active {
		if d.Source == SourceMetrics {
			mask |= provider.NeedMetrics
			break
		}
	}
	return mask
}

// ValidSortKey reports whether key can drive the single-key sort:
// the ticker (lexical) or any numeric market column.
func ValidSortKey(key string) bool {
	if key == "ticker" {
		return true
	}
	d, ok := Get(key)
	return ok && d.Numeric && d.Source != SourceUser
}
