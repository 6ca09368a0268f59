// Package reconcile folds an edited tabular projection back into the
// watchlist, persisting only the user-editable fields that changed.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/stockpad/stockpad/pkg/stockpad/session"
	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// EditedRow is one row of an edited projection: the ticker key plus the
// user-editable columns present in the edit, keyed by storage column.
// Columns absent from Fields are left untouched.
type EditedRow struct {
	Ticker string
	Fields map[string]string
}

// Result summarizes one reconciliation pass.
type Result struct {
	Updated int // rows with at least one persisted change
	Skipped int // rows whose ticker is no longer tracked
}

// Apply diffs each edited row against the session record and writes only
// the changed user fields. Rows for unknown tickers are skipped (stale
// rows from a concurrent delete). A durable write failure keeps the
// in-memory record unchanged and is reported per ticker; the remaining
// rows are still processed.
func Apply(ctx context.Context, s *session.Session, edited []EditedRow) (Result, error) {
	var res Result
	var errs []error

	for _, row := range edited {
		rec, ok := s.Get(row.Ticker)
		if !ok {
			res.Skipped++
			continue
		}

		changed := types.UserData{}
		for key, newVal := range row.Fields {
			if !types.IsUserField(key) {
				continue
			}
			if newVal != rec.User[key] {
				changed[key] = newVal
			}
		}
		if len(changed) == 0 {
			continue
		}

		if err := s.SetUserFields(ctx, row.Ticker, changed); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", row.Ticker, err))
			continue
		}
		res.Updated++
	}

	return res, errors.Join(errs...)
}
