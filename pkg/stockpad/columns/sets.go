package columns

import (
	"sort"
	"strings"
)

// Sets defines named column groups that expand into lists of columns.
// The groups cover the union of every column set the dashboard variants
// declared; "all" is every column in display order.
var Sets = map[string][]string{
	"core":          {"ticker", "name", "sector", "industry", "price", "change_pct", "market_cap"},
	"valuation":     {"pe_ratio", "pb_ratio", "ps_ratio"},
	"range52w":      {"week52_high", "week52_low", "week52_return"},
	"leverage":      {"beta", "debt_equity", "current_ratio"},
	"profitability": {"roe", "roa", "gross_margin", "net_margin"},
	"growth":        {"revenue_growth"},
	"yield":         {"dividend_yield"},
	"user":          {"target_buy", "target_sell", "price_tag", "price_tag_pct", "sentiment", "comments"},
}

func init() {
	all := make([]string, 0, len(registry))
	for _, d := range registry {
		all = append(all, d.Key)
	}
	Sets["all"] = all
}

// Expand returns the union of columns for the given set names, preserving
// set order and column order within each set, de-duplicated on first
// occurrence.
func Expand(setNames []string) ([]string, error) {
	out := make([]string, 0, 16)
	seen := map[string]struct{}{}
	for _, name := range setNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cols, ok := Sets[name]
		if !ok {
			return nil, &UnknownSetError{Name: name, Available: availableSets()}
		}
		for _, c := range cols {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}

// UnknownSetError reports an unknown column set name.
type UnknownSetError struct {
	Name      string
	Available []string
}

func (e *UnknownSetError) Error() string {
	return "unknown column set: " + e.Name + "; available: " + strings.Join(e.Available, ", ")
}

func availableSets() []string {
	keys := make([]string, 0, len(Sets))
	for k := range Sets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
