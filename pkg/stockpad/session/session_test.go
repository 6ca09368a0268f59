package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stockpad/stockpad/pkg/stockpad/provider"
	"github.com/stockpad/stockpad/pkg/stockpad/store"
	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// scriptedQuotes serves canned snapshots per ticker; missing tickers fail
// with the given error.
type scriptedQuotes struct {
	data map[string]types.MarketData
	errs map[string]error
}

func (q *scriptedQuotes) Fetch(ctx context.Context, ticker string, need provider.SourceMask) (types.MarketData, error) {
	if err, ok := q.errs[ticker]; ok {
		return nil, err
	}
	if m, ok := q.data[ticker]; ok {
		out := make(types.MarketData, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s: %w", ticker, types.ErrTickerNotFound)
}

func newSession(t *testing.T, quotes *scriptedQuotes) *Session {
	t.Helper()
	s, err := New(context.Background(), store.NewMemory(), quotes, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestAddFetchesAndInserts(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, &scriptedQuotes{data: map[string]types.MarketData{
		"AAPL": {"price": 150.0, "change_pct": 1.01, "name": "Apple Inc"},
	}})

	rec, err := s.Add(ctx, " aapl ", provider.NeedQuote|provider.NeedProfile)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rec.Ticker != "AAPL" {
		t.Errorf("ticker = %q", rec.Ticker)
	}
	if chg, _ := types.Number(rec.Market, "change_pct"); chg != 1.01 {
		t.Errorf("change_pct = %v, want 1.01", chg)
	}
	for _, k := range types.UserFieldKeys {
		if rec.User[k] != "" {
			t.Errorf("user field %s not empty on insert", k)
		}
	}

	if _, err := s.Add(ctx, "AAPL", provider.NeedQuote); !errors.Is(err, types.ErrDuplicateTicker) {
		t.Fatalf("second add err = %v, want ErrDuplicateTicker", err)
	}
}

func TestAddUnknownTickerLeavesNoRecord(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, &scriptedQuotes{})

	_, err := s.Add(ctx, "ZZZZ", provider.NeedQuote)
	if !errors.Is(err, types.ErrTickerNotFound) {
		t.Fatalf("err = %v, want ErrTickerNotFound", err)
	}
	if s.Len() != 0 {
		t.Fatal("record created despite failed fetch")
	}
}

func TestRefreshAllIsolatesFailures(t *testing.T) {
	ctx := context.Background()
	quotes := &scriptedQuotes{data: map[string]types.MarketData{
		"A": {"price": 10.0},
		"B": {"price": 20.0},
		"C": {"price": 30.0},
	}}
	s := newSession(t, quotes)
	for _, tk := range []string{"A", "B", "C"} {
		if _, err := s.Add(ctx, tk, provider.NeedQuote); err != nil {
			t.Fatalf("Add %s: %v", tk, err)
		}
	}

	// B starts failing; A and C move to new prices.
	quotes.data["A"] = types.MarketData{"price": 11.0}
	quotes.data["C"] = types.MarketData{"price": 33.0}
	quotes.errs = map[string]error{"B": &types.TransportError{Endpoint: "quote", Err: errors.New("timeout")}}

	failed := s.RefreshAll(ctx, provider.NeedQuote)
	if len(failed) != 1 || failed[0] != "B" {
		t.Fatalf("failed = %v, want [B]", failed)
	}

	get := func(tk string) float64 {
		r, _ := s.Get(tk)
		v, _ := types.Number(r.Market, "price")
		return v
	}
	if get("A") != 11.0 {
		t.Errorf("A price = %v, want 11 (refreshed before B failed)", get("A"))
	}
	if get("B") != 20.0 {
		t.Errorf("B price = %v, want 20 (old fields kept)", get("B"))
	}
	if get("C") != 33.0 {
		t.Errorf("C price = %v, want 33 (refreshed after B failed)", get("C"))
	}
}

func TestSetUserFieldsValidatesAndMirrors(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, &scriptedQuotes{data: map[string]types.MarketData{"AAPL": {"price": 150.0}}})
	s.Add(ctx, "AAPL", provider.NeedQuote)

	if err := s.SetUserFields(ctx, "AAPL", types.UserData{"sentiment": "Sideways"}); err == nil {
		t.Error("invalid sentiment accepted")
	}
	if err := s.SetUserFields(ctx, "AAPL", types.UserData{"price": "9"}); err == nil {
		t.Error("market key accepted as user field")
	}

	if err := s.SetUserFields(ctx, "AAPL", types.UserData{"comments": "earnings soon"}); err != nil {
		t.Fatalf("SetUserFields: %v", err)
	}
	rec, _ := s.Get("AAPL")
	if rec.User["comments"] != "earnings soon" {
		t.Error("comment not mirrored")
	}
	if rec.User["target_buy"] != "" {
		t.Error("unrelated user field changed")
	}
}

func TestSetUserFieldsDoesNotMirrorOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	quotes := &scriptedQuotes{data: map[string]types.MarketData{"AAPL": {"price": 150.0}}}
	s, err := New(ctx, failingStore{mem}, quotes, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Add(ctx, "AAPL", provider.NeedQuote); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := s.SetUserFields(ctx, "AAPL", types.UserData{"comments": "x"}); err == nil {
		t.Fatal("store failure swallowed")
	}
	rec, _ := s.Get("AAPL")
	if rec.User["comments"] != "" {
		t.Error("memory mirrored a failed durable write")
	}
}

// failingStore fails every user-field write.
type failingStore struct {
	store.Store
}

func (f failingStore) UpdateUserFields(ctx context.Context, ticker string, fields types.UserData) error {
	return errors.New("connection reset")
}

func TestDeleteIdempotentAndSummary(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, &scriptedQuotes{data: map[string]types.MarketData{
		"UP":   {"price": 10.0, "change_pct": 3.0},
		"DOWN": {"price": 10.0, "change_pct": -5.0},
		"FLAT": {"price": 10.0},
	}})
	for _, tk := range []string{"UP", "DOWN", "FLAT"} {
		s.Add(ctx, tk, provider.NeedQuote)
	}

	gainers, losers := s.Summary()
	if gainers != 1 || losers != 1 {
		t.Errorf("summary = %d gainers %d losers, want 1/1", gainers, losers)
	}

	if err := s.Delete(ctx, "FLAT"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "FLAT"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
}
