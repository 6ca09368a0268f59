package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// rowStub feeds one canned watchlist row through the pgx scan path,
// with values aligned to the select column order. A nil value plays a
// SQL NULL.
type rowStub struct {
	vals []any
}

var _ pgx.Rows = (*rowStub)(nil)

func (r *rowStub) Close()                                       {}
func (r *rowStub) Err() error                                   { return nil }
func (r *rowStub) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *rowStub) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *rowStub) Next() bool                                   { return false }
func (r *rowStub) Values() ([]any, error)                       { return nil, nil }
func (r *rowStub) RawValues() [][]byte                          { return nil }
func (r *rowStub) Conn() *pgx.Conn                              { return nil }

func (r *rowStub) Scan(dest ...any) error {
	if len(dest) != len(r.vals) {
		return fmt.Errorf("scan arity %d, want %d", len(dest), len(r.vals))
	}
	for i, v := range r.vals {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *time.Time:
			*d = v.(time.Time)
		case **string:
			if v == nil {
				*d = nil
			} else {
				s := v.(string)
				*d = &s
			}
		case **float64:
			if v == nil {
				*d = nil
			} else {
				f := v.(float64)
				*d = &f
			}
		default:
			return fmt.Errorf("column %d: unexpected dest type %T", i, dest[i])
		}
	}
	return nil
}

func TestScanRecordColumnShapes(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	market := map[string]any{
		"name":       "Apple Inc",
		"market_cap": "$3.21T",
		"price":      150.0,
		"change_pct": 1.01,
		// sector, industry and every metrics column stay NULL
	}

	vals := []any{"AAPL", created}
	for _, k := range types.MarketFieldKeys {
		vals = append(vals, market[k])
	}
	for _, k := range types.UserFieldKeys {
		if k == "comments" {
			vals = append(vals, "core holding")
		} else {
			vals = append(vals, "")
		}
	}

	rec, err := scanRecord(&rowStub{vals: vals})
	if err != nil {
		t.Fatalf("scanRecord: %v", err)
	}

	if rec.Ticker != "AAPL" {
		t.Errorf("ticker = %q", rec.Ticker)
	}
	if !rec.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v, want %v", rec.CreatedAt, created)
	}
	if got := types.Text(rec.Market, "name"); got != "Apple Inc" {
		t.Errorf("name = %q", got)
	}
	if got := types.Text(rec.Market, "market_cap"); got != "$3.21T" {
		t.Errorf("market_cap = %q", got)
	}
	if p, ok := types.Number(rec.Market, "price"); !ok || p != 150.0 {
		t.Errorf("price = %v ok=%v, want 150", p, ok)
	}
	if _, ok := rec.Market["sector"]; ok {
		t.Error("NULL text column materialized as a value")
	}
	if _, ok := rec.Market["pe_ratio"]; ok {
		t.Error("NULL numeric column materialized as a value")
	}
	if rec.User["comments"] != "core holding" {
		t.Errorf("comments = %q", rec.User["comments"])
	}
	if rec.User["sentiment"] != "" {
		t.Errorf("sentiment = %q, want blank", rec.User["sentiment"])
	}
}
