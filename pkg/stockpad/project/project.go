// Package project builds the filtered, sorted, formatted tabular view of
// the watchlist. It is pure: no I/O, same inputs same output.
package project

import (
	"sort"
	"strings"

	"github.com/stockpad/stockpad/pkg/stockpad/columns"
	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// Filter is the AND-combination of the view predicates. Zero values
// disable a predicate.
type Filter struct {
	Ticker      string          // case-insensitive substring
	Industry    string          // exact
	Sentiment   types.Sentiment // exact
	ChgMin      *float64        // inclusive lower bound on change_pct
	ChgMax      *float64        // inclusive upper bound on change_pct
	GainersOnly bool            // change_pct > 0
	LosersOnly  bool            // change_pct < 0
}

// Match applies every active predicate. A missing change_pct counts as 0
// for the range and gainer/loser checks only; display still shows a dash.
func (f Filter) Match(r *types.Record) bool {
	if f.Ticker != "" && !strings.Contains(strings.ToLower(r.Ticker), strings.ToLower(f.Ticker)) {
		return false
	}
	if f.Industry != "" && types.Text(r.Market, "industry") != f.Industry {
		return false
	}
	if f.Sentiment != types.SentimentNone && types.Sentiment(r.User["sentiment"]) != f.Sentiment {
		return false
	}

	chg, _ := types.Number(r.Market, "change_pct") // absent -> 0
	if f.ChgMin != nil && chg < *f.ChgMin {
		return false
	}
	if f.ChgMax != nil && chg > *f.ChgMax {
		return false
	}
	if f.GainersOnly && chg <= 0 {
		return false
	}
	if f.LosersOnly && chg >= 0 {
		return false
	}
	return true
}

// Sort is a single-key ordering. An empty key keeps creation order.
type Sort struct {
	Key  string
	Desc bool
}

// Row is one ephemeral display row: formatted cells aligned with the
// active columns, plus the raw change for cell coloring.
type Row struct {
	Ticker string
	Chg    *float64
	Cells  []string
}

// Project filters, sorts and formats records into display rows carrying
// only the active columns.
func Project(records []*types.Record, active []columns.Descriptor, f Filter, s Sort) []Row {
	kept := make([]*types.Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			kept = append(kept, r)
		}
	}

	if s.Key != "" {
		sortRecords(kept, s)
	}

	rows := make([]Row, 0, len(kept))
	for _, r := range kept {
		row := Row{Ticker: r.Ticker, Cells: make([]string, len(active))}
		if chg, ok := types.Number(r.Market, "change_pct"); ok {
			c := chg
			row.Chg = &c
		}
		for i, d := range active {
			row.Cells[i] = d.Render(r)
		}
		rows = append(rows, row)
	}
	return rows
}

// sortRecords orders by the sort key; records missing the key sort last
// regardless of direction, keeping their relative order.
func sortRecords(recs []*types.Record, s Sort) {
	if s.Key == "ticker" {
		sort.SliceStable(recs, func(i, j int) bool {
			if s.Desc {
				return recs[i].Ticker > recs[j].Ticker
			}
			return recs[i].Ticker < recs[j].Ticker
		})
		return
	}

	sort.SliceStable(recs, func(i, j int) bool {
		vi, oki := types.Number(recs[i].Market, s.Key)
		vj, okj := types.Number(recs[j].Market, s.Key)
		switch {
		case !oki && !okj:
			return false
		case !oki:
			return false // missing sorts after present
		case !okj:
			return true
		}
		if s.Desc {
			return vi > vj
		}
		return vi < vj
	})
}
