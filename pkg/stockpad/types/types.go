package types

import "time"

// MarketData holds remote-sourced attributes keyed by storage column.
// String-valued columns (name, sector, industry, market_cap) carry string
// values; all numeric columns carry float64. A missing key means the
// provider had no value, never zero.
type MarketData map[string]any

// UserData holds user-entered annotations keyed by storage column.
// Every value is text; blank means unset.
type UserData map[string]string

// Record is one tracked ticker: remote market fields refreshed wholesale,
// user fields mutated only by explicit edits.
type Record struct {
	Ticker    string
	CreatedAt time.Time
	Market    MarketData
	User      UserData
}

// Clone returns a deep copy so callers can project or diff without
// aliasing session state.
func (r *Record) Clone() *Record {
	c := &Record{Ticker: r.Ticker, CreatedAt: r.CreatedAt}
	if r.Market != nil {
		c.Market = make(MarketData, len(r.Market))
		for k, v := range r.Market {
			c.Market[k] = v
		}
	}
	if r.User != nil {
		c.User = make(UserData, len(r.User))
		for k, v := range r.User {
			c.User[k] = v
		}
	}
	return c
}

// Number extracts a numeric market value. Returns false for absent keys
// and for string-valued columns.
func Number(m MarketData, key string) (float64, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Text extracts a string market value, or "" when absent.
func Text(m MarketData, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// MarketFieldKeys lists the storage columns refreshed from the provider,
// in display order. This is the allow-list for market writes.
var MarketFieldKeys = []string{
	"name", "sector", "industry", "price", "change_pct", "market_cap",
	"pe_ratio", "pb_ratio", "ps_ratio",
	"week52_high", "week52_low", "week52_return",
	"beta", "debt_equity", "current_ratio", "dividend_yield",
	"roe", "roa", "gross_margin", "net_margin", "revenue_growth",
}

// UserFieldKeys lists the user-editable storage columns. This is the
// allow-list for user-field writes; anything else is rejected.
var UserFieldKeys = []string{
	"target_buy", "target_sell", "price_tag", "price_tag_pct",
	"sentiment", "comments",
}

// IsMarketField reports whether key is a recognized market column.
func IsMarketField(key string) bool {
	for _, k := range MarketFieldKeys {
		if k == key {
			return true
		}
	}
	return false
}

// IsUserField reports whether key is a recognized user column.
func IsUserField(key string) bool {
	for _, k := range UserFieldKeys {
		if k == key {
			return true
		}
	}
	return false
}

// EmptyUserFields returns all user columns initialized to blank, the
// state of a freshly tracked ticker.
func EmptyUserFields() UserData {
	u := make(UserData, len(UserFieldKeys))
	for _, k := range UserFieldKeys {
		u[k] = ""
	}
	return u
}

// Sentiment is the closed set of subjective labels for the sentiment
// user field. The zero value means unset.
type Sentiment string

const (
	SentimentNone     Sentiment = ""
	SentimentBullish  Sentiment = "Bullish"
	SentimentBearish  Sentiment = "Bearish"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentWatching Sentiment = "Watching"
)

// Sentiments lists the allowed values including unset, in display order.
func Sentiments() []Sentiment {
	return []Sentiment{SentimentNone, SentimentBullish, SentimentBearish, SentimentNeutral, SentimentWatching}
}

// Valid reports whether s is one of the allowed labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentNone, SentimentBullish, SentimentBearish, SentimentNeutral, SentimentWatching:
		return true
	}
	return false
}
