// Package source loads watchlist seed files used to bulk-add tickers.
package source

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// SeedItem is one entry from a seed file: a ticker plus optional user
// annotations applied right after the add.
type SeedItem struct {
	Ticker string
	User   types.UserData
}

// seedEntry is the YAML shape of one item. Only user-editable fields are
// accepted; market data always comes from the provider.
type seedEntry struct {
	Sym         string `yaml:"sym"`
	TargetBuy   string `yaml:"target_buy"`
	TargetSell  string `yaml:"target_sell"`
	PriceTag    string `yaml:"price_tag"`
	PriceTagPct string `yaml:"price_tag_pct"`
	Sentiment   string `yaml:"sentiment"`
	Comments    string `yaml:"comments"`
}

// LoadSeed parses a seed file. Two shapes are supported: a top-level
// list of items, or a map with a "watchlist" list.
func LoadSeed(path string) ([]SeedItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var entries []seedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		var alt struct {
			Watchlist []seedEntry `yaml:"watchlist"`
		}
		if err2 := yaml.Unmarshal(data, &alt); err2 != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		entries = alt.Watchlist
	}

	out := make([]SeedItem, 0, len(entries))
	for i, e := range entries {
		sym := strings.ToUpper(strings.TrimSpace(e.Sym))
		if sym == "" {
			return nil, fmt.Errorf("%s: item %d has no sym", path, i+1)
		}
		if e.Sentiment != "" && !types.Sentiment(e.Sentiment).Valid() {
			return nil, fmt.Errorf("%s: item %d: invalid sentiment %q", path, i+1, e.Sentiment)
		}

		user := types.UserData{}
		for key, val := range map[string]string{
			"target_buy":    e.TargetBuy,
			"target_sell":   e.TargetSell,
			"price_tag":     e.PriceTag,
			"price_tag_pct": e.PriceTagPct,
			"sentiment":     e.Sentiment,
			"comments":      e.Comments,
		} {
			if val != "" {
				user[key] = val
			}
		}
		out = append(out, SeedItem{Ticker: sym, User: user})
	}
	return out, nil
}
