// Package store persists the watchlist table: one row per ticker, market
// columns refreshed wholesale, user columns edited field by field.
package store

import (
	"context"
	"fmt"

	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// Store is the durable watchlist backend.
type Store interface {
	// Load returns every record ordered by creation time.
	Load(ctx context.Context) ([]*types.Record, error)
	// Insert creates a record with the given market fields and all user
	// fields blank. Returns types.ErrDuplicateTicker when already tracked.
	Insert(ctx context.Context, ticker string, market types.MarketData) (*types.Record, error)
	// UpdateMarket replaces the market columns wholesale; columns absent
	// from market are cleared. Returns types.ErrTickerNotFound when the
	// row is missing.
	UpdateMarket(ctx context.Context, ticker string, market types.MarketData) error
	// UpdateUserFields merges only the given user columns.
	UpdateUserFields(ctx context.Context, ticker string, fields types.UserData) error
	// Delete removes the record; deleting an absent ticker is a no-op.
	Delete(ctx context.Context, ticker string) error
}

// ScrubMarket drops any key outside the market-column allow-list so
// extraneous caller-supplied fields never reach the backend schema.
func ScrubMarket(m types.MarketData) types.MarketData {
	out := make(types.MarketData, len(m))
	for k, v := range m {
		if types.IsMarketField(k) {
			out[k] = v
		}
	}
	return out
}

// ScrubUser validates a partial user-field update: unknown keys are
// rejected, and the sentiment value must be one of the allowed labels.
func ScrubUser(u types.UserData) (types.UserData, error) {
	out := make(types.UserData, len(u))
	for k, v := range u {
		if !types.IsUserField(k) {
			return nil, fmt.Errorf("unknown user field %q", k)
		}
		if k == "sentiment" && !types.Sentiment(v).Valid() {
			return nil, fmt.Errorf("invalid sentiment %q", v)
		}
		out[k] = v
	}
	return out, nil
}
