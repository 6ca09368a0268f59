package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stockpad/stockpad/pkg/stockpad/columns"
	"github.com/stockpad/stockpad/pkg/stockpad/project"
	"github.com/stockpad/stockpad/pkg/stockpad/render"
	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// viewFlags are the filter/sort/column flags shared by ls and export.
type viewFlags struct {
	cols      []string
	sets      []string
	ticker    string
	industry  string
	sentiment string
	chgMin    float64
	chgMax    float64
	gainers   bool
	losers    bool
	sortKey   string
	desc      bool
}

func (v *viewFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVar(&v.cols, "columns", nil, "columns to show (overrides --sets)")
	f.StringSliceVar(&v.sets, "sets", nil, "named column sets to show")
	f.StringVar(&v.ticker, "ticker", "", "keep tickers containing this text")
	f.StringVar(&v.industry, "industry", "", "keep this industry only")
	f.StringVar(&v.sentiment, "sentiment", "", "keep this sentiment only")
	f.Float64Var(&v.chgMin, "chg-min", 0, "keep daily change at or above this percent")
	f.Float64Var(&v.chgMax, "chg-max", 0, "keep daily change at or below this percent")
	f.BoolVar(&v.gainers, "gainers", false, "keep positive daily change only")
	f.BoolVar(&v.losers, "losers", false, "keep negative daily change only")
	f.StringVar(&v.sortKey, "sort", "", "sort by ticker or a numeric column")
	f.BoolVar(&v.desc, "desc", false, "sort descending")
}

func (v *viewFlags) view(cmd *cobra.Command) (project.Filter, project.Sort, error) {
	f := project.Filter{
		Ticker:      v.ticker,
		Industry:    v.industry,
		GainersOnly: v.gainers,
		LosersOnly:  v.losers,
	}
	if v.sentiment != "" {
		s := types.Sentiment(v.sentiment)
		if !s.Valid() {
			return f, project.Sort{}, fmt.Errorf("unknown sentiment %q", v.sentiment)
		}
		f.Sentiment = s
	}
	if cmd.Flags().Changed("chg-min") {
		min := v.chgMin
		f.ChgMin = &min
	}
	if cmd.Flags().Changed("chg-max") {
		max := v.chgMax
		f.ChgMax = &max
	}

	s := project.Sort{Key: v.sortKey, Desc: v.desc}
	if s.Key != "" && !columns.ValidSortKey(s.Key) {
		return f, s, fmt.Errorf("cannot sort by %q", s.Key)
	}
	return f, s, nil
}

func newLsCmd(a *app) *cobra.Command {
	var v viewFlags
	var asJSON, pretty bool

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Show the watchlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := a.resolveColumns(v.cols, v.sets)
			if err != nil {
				return err
			}
			filter, sort, err := v.view(cmd)
			if err != nil {
				return err
			}
			if err := a.openSession(cmd.Context()); err != nil {
				return err
			}

			rows := project.Project(a.sess.Records(), active, filter, sort)

			opts := render.Options{
				Color:       a.cfg.Display.Color,
				PrettyJSON:  pretty,
				MaxColWidth: a.cfg.Display.MaxColWidth,
			}
			if w := detectTerminalWidth(); w > 0 && w/len(active) < opts.MaxColWidth {
				opts.MaxColWidth = w / len(active)
			}

			var r render.Renderer = render.NewTableRenderer()
			if asJSON {
				r = render.NewJSONRenderer()
			}
			if err := r.Render(cmd.OutOrStdout(), active, rows, opts); err != nil {
				return err
			}
			if !asJSON {
				g, l := a.sess.Summary()
				fmt.Fprintf(cmd.OutOrStdout(), "%d tickers, %d up, %d down\n", a.sess.Len(), g, l)
			}
			return nil
		},
	}
	v.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}
