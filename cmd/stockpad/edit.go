package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockpad/stockpad/pkg/stockpad/columns"
	"github.com/stockpad/stockpad/pkg/stockpad/reconcile"
	"github.com/stockpad/stockpad/pkg/stockpad/render"
	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <ticker> <field>=<value>...",
		Short: "Set personal fields on a tracked ticker",
		Example: `  stockpad set AAPL sentiment=Bullish target_buy=150
  stockpad set NVDA comments="wait for next earnings"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := types.UserData{}
			for _, arg := range args[1:] {
				key, val, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected field=value, got %q", arg)
				}
				fields[key] = val
			}
			if err := a.openSession(cmd.Context()); err != nil {
				return err
			}
			if err := a.sess.SetUserFields(cmd.Context(), args[0], fields); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", strings.ToUpper(strings.TrimSpace(args[0])))
			return nil
		},
	}
}

func newApplyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <file.csv>",
		Short: "Apply personal-field edits from an exported CSV",
		Long: `Apply reads a CSV produced by export, possibly edited in a
spreadsheet, and persists changed personal fields. Market columns in
the file are ignored; rows for tickers no longer tracked are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			header, rows, err := render.ParseCSV(f)
			if err != nil {
				return err
			}
			edited, err := editsFromCSV(header, rows)
			if err != nil {
				return err
			}

			if err := a.openSession(cmd.Context()); err != nil {
				return err
			}
			res, applyErr := reconcile.Apply(cmd.Context(), a.sess, edited)
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d, skipped %d\n", res.Updated, res.Skipped)
			return applyErr
		},
	}
	return cmd
}

// editsFromCSV maps exported column labels back to field keys, keeping
// only the editable ones. The ticker column must be present.
func editsFromCSV(header []string, rows []map[string]string) ([]reconcile.EditedRow, error) {
	tickerLabel := ""
	editable := map[string]string{} // label -> field key
	for _, label := range header {
		d, ok := columns.GetByLabel(label)
		if !ok {
			continue
		}
		if d.Key == "ticker" {
			tickerLabel = label
		} else if d.Editable {
			editable[label] = d.Key
		}
	}
	if tickerLabel == "" {
		return nil, fmt.Errorf("csv has no ticker column")
	}

	edits := make([]reconcile.EditedRow, 0, len(rows))
	for _, row := range rows {
		t := strings.ToUpper(strings.TrimSpace(row[tickerLabel]))
		if t == "" {
			continue
		}
		e := reconcile.EditedRow{Ticker: t, Fields: map[string]string{}}
		for label, key := range editable {
			if v, ok := row[label]; ok {
				e.Fields[key] = v
			}
		}
		edits = append(edits, e)
	}
	return edits, nil
}
