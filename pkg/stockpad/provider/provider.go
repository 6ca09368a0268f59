// Package provider fetches and normalizes market data for a ticker.
package provider

import (
	"context"

	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// SourceMask declares which remote lookups a fetch requires.
type SourceMask uint8

const (
	NeedQuote   SourceMask = 1 << iota // real-time quote (price, prev close)
	NeedProfile                        // company profile (name, sector, industry, market cap)
	NeedMetrics                        // extended metrics (ratios, 52-week range, margins)
)

// Has reports whether m includes need.
func (m SourceMask) Has(need SourceMask) bool { return m&need != 0 }

// QuoteService fetches a normalized market snapshot for a symbol.
// The mask bounds the remote calls issued: the metrics lookup is only
// made when NeedMetrics is set.
type QuoteService interface {
	Fetch(ctx context.Context, ticker string, need SourceMask) (types.MarketData, error)
}
