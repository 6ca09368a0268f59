// Package session holds the in-memory watchlist for one run: loaded from
// the durable store at start, authoritative until process end, written
// through on every mutation.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stockpad/stockpad/pkg/stockpad/provider"
	"github.com/stockpad/stockpad/pkg/stockpad/store"
	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// Session is the single logical actor over the watchlist. All operations
// are synchronous; there is no concurrent mutation path.
type Session struct {
	store  store.Store
	quotes provider.QuoteService
	log    *logrus.Logger

	records map[string]*types.Record
	order   []string
}

// New loads the watchlist from the store.
func New(ctx context.Context, st store.Store, quotes provider.QuoteService, log *logrus.Logger) (*Session, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	recs, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	s := &Session{
		store:   st,
		quotes:  quotes,
		log:     log,
		records: make(map[string]*types.Record, len(recs)),
	}
	for _, r := range recs {
		s.records[r.Ticker] = r
		s.order = append(s.order, r.Ticker)
	}
	return s, nil
}

// Records returns the tracked records in creation order.
func (s *Session) Records() []*types.Record {
	out := make([]*types.Record, 0, len(s.order))
	for _, t := range s.order {
		out = append(out, s.records[t])
	}
	return out
}

// Get looks up a record by ticker.
func (s *Session) Get(ticker string) (*types.Record, bool) {
	r, ok := s.records[normalize(ticker)]
	return r, ok
}

// Len returns the number of tracked tickers.
func (s *Session) Len() int { return len(s.order) }

// Summary counts gainers and losers; a missing change treats as neither.
func (s *Session) Summary() (gainers, losers int) {
	for _, t := range s.order {
		if chg, ok := types.Number(s.records[t].Market, "change_pct"); ok {
			if chg > 0 {
				gainers++
			} else if chg < 0 {
				losers++
			}
		}
	}
	return gainers, losers
}

// Add fetches a new ticker and inserts it. Fails without side effects
// when the ticker is already tracked or the remote lookup fails.
func (s *Session) Add(ctx context.Context, ticker string, need provider.SourceMask) (*types.Record, error) {
	t := normalize(ticker)
	if t == "" {
		return nil, fmt.Errorf("empty ticker")
	}
	if _, ok := s.records[t]; ok {
		return nil, fmt.Errorf("%s: %w", t, types.ErrDuplicateTicker)
	}

	market, err := s.quotes.Fetch(ctx, t, need)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", t, err)
	}
	rec, err := s.store.Insert(ctx, t, market)
	if err != nil {
		return nil, err
	}
	s.records[rec.Ticker] = rec
	s.order = append(s.order, rec.Ticker)
	return rec, nil
}

// Delete removes a ticker from store and memory. Deleting an untracked
// ticker is a no-op.
func (s *Session) Delete(ctx context.Context, ticker string) error {
	t := normalize(ticker)
	if err := s.store.Delete(ctx, t); err != nil {
		return err
	}
	if _, ok := s.records[t]; !ok {
		return nil
	}
	delete(s.records, t)
	for i, v := range s.order {
		if v == t {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// RefreshOne re-fetches one ticker's market fields and persists them,
// mirroring into memory only after the durable write succeeds.
func (s *Session) RefreshOne(ctx context.Context, ticker string, need provider.SourceMask) error {
	t := normalize(ticker)
	rec, ok := s.records[t]
	if !ok {
		return fmt.Errorf("%s: %w", t, types.ErrTickerNotFound)
	}
	market, err := s.quotes.Fetch(ctx, t, need)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", t, err)
	}
	if err := s.store.UpdateMarket(ctx, t, market); err != nil {
		return err
	}
	rec.Market = store.ScrubMarket(market)
	return nil
}

// RefreshAll refreshes every ticker sequentially. One ticker's failure
// never aborts the rest; failed tickers keep their previous market fields
// and are returned by name.
func (s *Session) RefreshAll(ctx context.Context, need provider.SourceMask) []string {
	var failed []string
	for _, t := range s.order {
		if err := s.RefreshOne(ctx, t, need); err != nil {
			s.log.WithField("ticker", t).WithError(err).Warn("refresh failed")
			failed = append(failed, t)
		}
	}
	return failed
}

// SetUserFields merges the given user annotations into one record,
// validating keys and sentiment, writing through before mirroring.
func (s *Session) SetUserFields(ctx context.Context, ticker string, fields types.UserData) error {
	t := normalize(ticker)
	rec, ok := s.records[t]
	if !ok {
		return fmt.Errorf("%s: %w", t, types.ErrTickerNotFound)
	}
	clean, err := store.ScrubUser(fields)
	if err != nil {
		return err
	}
	if len(clean) == 0 {
		return nil
	}
	if err := s.store.UpdateUserFields(ctx, t, clean); err != nil {
		return err
	}
	for k, v := range clean {
		rec.User[k] = v
	}
	return nil
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
