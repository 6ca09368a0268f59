package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// Memory is an in-process Store keeping creation order. It backs tests
// and offline use; semantics mirror the Postgres implementation.
type Memory struct {
	records map[string]*types.Record
	order   []string
	clock   func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]*types.Record), clock: time.Now}
}

func (m *Memory) Load(ctx context.Context) ([]*types.Record, error) {
	out := make([]*types.Record, 0, len(m.order))
	for _, t := range m.order {
		out = append(out, m.records[t].Clone())
	}
	return out, nil
}

func (m *Memory) Insert(ctx context.Context, ticker string, market types.MarketData) (*types.Record, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if _, ok := m.records[ticker]; ok {
		return nil, fmt.Errorf("%s: %w", ticker, types.ErrDuplicateTicker)
	}
	rec := &types.Record{
		Ticker:    ticker,
		CreatedAt: m.clock(),
		Market:    ScrubMarket(market),
		User:      types.EmptyUserFields(),
	}
	m.records[ticker] = rec
	m.order = append(m.order, ticker)
	return rec.Clone(), nil
}

func (m *Memory) UpdateMarket(ctx context.Context, ticker string, market types.MarketData) error {
	rec, ok := m.records[ticker]
	if !ok {
		return fmt.Errorf("%s: %w", ticker, types.ErrTickerNotFound)
	}
	rec.Market = ScrubMarket(market)
	return nil
}

func (m *Memory) UpdateUserFields(ctx context.Context, ticker string, fields types.UserData) error {
	fields, err := ScrubUser(fields)
	if err != nil {
		return err
	}
	rec, ok := m.records[ticker]
	if !ok {
		return fmt.Errorf("%s: %w", ticker, types.ErrTickerNotFound)
	}
	for k, v := range fields {
		rec.User[k] = v
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, ticker string) error {
	if _, ok := m.records[ticker]; !ok {
		return nil
	}
	delete(m.records, ticker)
	for i, t := range m.order {
		if t == ticker {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
