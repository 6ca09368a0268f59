package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

func TestScrubMarketDropsUnknownKeys(t *testing.T) {
	in := types.MarketData{
		"price":      150.0,
		"name":       "Apple Inc",
		"bogus":      1.0,
		"sentiment":  "Bullish", // user field, not a market column
		"change_pct": 1.01,
	}
	out := ScrubMarket(in)
	if len(out) != 3 {
		t.Fatalf("scrubbed to %d keys, want 3: %v", len(out), out)
	}
	if _, ok := out["bogus"]; ok {
		t.Error("bogus key survived scrub")
	}
	if _, ok := out["sentiment"]; ok {
		t.Error("user field survived market scrub")
	}
}

func TestScrubUserRejectsUnknownKeysAndBadSentiment(t *testing.T) {
	if _, err := ScrubUser(types.UserData{"comments": "x", "price": "150"}); err == nil {
		t.Error("unknown user key accepted")
	}
	if _, err := ScrubUser(types.UserData{"sentiment": "Euphoric"}); err == nil {
		t.Error("invalid sentiment accepted")
	}
	out, err := ScrubUser(types.UserData{"sentiment": "Bullish", "comments": ""})
	if err != nil {
		t.Fatalf("ScrubUser: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("out = %v", out)
	}
}

func TestMemoryInsertLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	rec, err := m.Insert(ctx, "aapl", types.MarketData{"price": 150.0, "name": "Apple Inc"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if rec.Ticker != "AAPL" {
		t.Errorf("ticker = %q, want AAPL", rec.Ticker)
	}

	recs, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 1 || recs[0].Ticker != "AAPL" {
		t.Fatalf("Load = %v", recs)
	}
	for _, k := range types.UserFieldKeys {
		if recs[0].User[k] != "" {
			t.Errorf("user field %s = %q, want empty", k, recs[0].User[k])
		}
	}
}

func TestMemoryDuplicateInsert(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Insert(ctx, "AAPL", types.MarketData{"price": 150.0})

	_, err := m.Insert(ctx, "AAPL", types.MarketData{"price": 151.0})
	if !errors.Is(err, types.ErrDuplicateTicker) {
		t.Fatalf("err = %v, want ErrDuplicateTicker", err)
	}
}

func TestMemoryUpdateUserFieldsIsPartial(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Insert(ctx, "AAPL", types.MarketData{"price": 150.0})
	m.UpdateUserFields(ctx, "AAPL", types.UserData{"target_buy": "120"})

	if err := m.UpdateUserFields(ctx, "AAPL", types.UserData{"comments": "x"}); err != nil {
		t.Fatalf("UpdateUserFields: %v", err)
	}
	recs, _ := m.Load(ctx)
	if recs[0].User["comments"] != "x" {
		t.Error("comments not updated")
	}
	if recs[0].User["target_buy"] != "120" {
		t.Error("partial update clobbered target_buy")
	}
	if p, _ := types.Number(recs[0].Market, "price"); p != 150.0 {
		t.Error("market field changed by user update")
	}
}

func TestMemoryUpdateMarketWholesaleAndNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Insert(ctx, "AAPL", types.MarketData{"price": 150.0, "beta": 1.2})

	if err := m.UpdateMarket(ctx, "AAPL", types.MarketData{"price": 151.0}); err != nil {
		t.Fatalf("UpdateMarket: %v", err)
	}
	recs, _ := m.Load(ctx)
	if _, ok := types.Number(recs[0].Market, "beta"); ok {
		t.Error("wholesale update kept a stale market field")
	}

	err := m.UpdateMarket(ctx, "TSLA", types.MarketData{"price": 1.0})
	if !errors.Is(err, types.ErrTickerNotFound) {
		t.Fatalf("err = %v, want ErrTickerNotFound", err)
	}
}

func TestMemoryDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Insert(ctx, "AAPL", types.MarketData{"price": 150.0})

	if err := m.Delete(ctx, "AAPL"); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := m.Delete(ctx, "AAPL"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	recs, _ := m.Load(ctx)
	if len(recs) != 0 {
		t.Fatalf("records remain after delete: %v", recs)
	}
}

func TestMemoryLoadPreservesCreationOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, tk := range []string{"MSFT", "AAPL", "TSLA"} {
		m.Insert(ctx, tk, types.MarketData{"price": 1.0})
	}
	recs, _ := m.Load(ctx)
	got := []string{recs[0].Ticker, recs[1].Ticker, recs[2].Ticker}
	want := []string{"MSFT", "AAPL", "TSLA"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
