package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

type countingService struct {
	calls int
}

func (s *countingService) Fetch(ctx context.Context, ticker string, need SourceMask) (types.MarketData, error) {
	s.calls++
	return types.MarketData{"price": 1.0}, nil
}

func TestCacheServiceHitAndMaskSeparation(t *testing.T) {
	next := &countingService{}
	c := NewCacheService(next, time.Minute, 10)
	ctx := context.Background()

	c.Fetch(ctx, "AAPL", NeedQuote)
	c.Fetch(ctx, "AAPL", NeedQuote)
	if next.calls != 1 {
		t.Fatalf("calls = %d, want 1 (second fetch should hit cache)", next.calls)
	}

	// A different mask is a different entry.
	c.Fetch(ctx, "AAPL", NeedQuote|NeedMetrics)
	if next.calls != 2 {
		t.Fatalf("calls = %d, want 2 (broader mask must refetch)", next.calls)
	}
}

func TestCacheServiceEvictsOldest(t *testing.T) {
	next := &countingService{}
	c := NewCacheService(next, time.Minute, 2)
	ctx := context.Background()

	c.Fetch(ctx, "A", NeedQuote)
	c.Fetch(ctx, "B", NeedQuote)
	c.Fetch(ctx, "C", NeedQuote) // evicts A
	c.Fetch(ctx, "A", NeedQuote)
	if next.calls != 4 {
		t.Fatalf("calls = %d, want 4 (A should have been evicted)", next.calls)
	}
}
