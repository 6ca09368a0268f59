package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockpad/stockpad/pkg/stockpad/columns"
	"github.com/stockpad/stockpad/pkg/stockpad/provider"
	"github.com/stockpad/stockpad/pkg/stockpad/source"
	"github.com/stockpad/stockpad/pkg/stockpad/store"
	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

func newAddCmd(a *app) *cobra.Command {
	var cols, sets []string

	cmd := &cobra.Command{
		Use:   "add <ticker>...",
		Short: "Fetch and start tracking tickers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireToken(); err != nil {
				return err
			}
			active, err := a.resolveColumns(cols, sets)
			if err != nil {
				return err
			}
			if err := a.openSession(cmd.Context()); err != nil {
				return err
			}
			need := columns.RequiredSources(active)

			var failed int
			for _, t := range args {
				rec, err := a.sess.Add(cmd.Context(), t, need)
				if err != nil {
					a.log.WithField("ticker", strings.ToUpper(strings.TrimSpace(t))).Error(err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", rec.Ticker, types.Text(rec.Market, "name"))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d tickers failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&cols, "columns", nil, "columns to consider when choosing remote lookups")
	cmd.Flags().StringSliceVar(&sets, "sets", nil, "column sets to consider when choosing remote lookups")
	return cmd
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <ticker>...",
		Short: "Stop tracking tickers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.openSession(cmd.Context()); err != nil {
				return err
			}
			for _, t := range args {
				if err := a.sess.Delete(cmd.Context(), t); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", strings.ToUpper(strings.TrimSpace(t)))
			}
			return nil
		},
	}
}

// refreshNeed picks the provider mask for a refresh. The market columns
// are replaced wholesale on update, so without an explicit column
// selection everything is refetched; narrowing is opt-in per invocation
// and never inherited from display defaults.
func refreshNeed(cols, sets []string) (provider.SourceMask, error) {
	if len(cols) == 0 && len(sets) == 0 {
		return columns.RequiredSources(columns.All()), nil
	}
	keys := cols
	if len(keys) == 0 {
		var err error
		keys, err = columns.Expand(sets)
		if err != nil {
			return 0, err
		}
	}
	active, err := columns.Active(keys)
	if err != nil {
		return 0, err
	}
	return columns.RequiredSources(active), nil
}

func newRefreshCmd(a *app) *cobra.Command {
	var cols, sets []string

	cmd := &cobra.Command{
		Use:   "refresh [ticker]...",
		Short: "Re-fetch market fields for some or all tracked tickers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireToken(); err != nil {
				return err
			}
			need, err := refreshNeed(cols, sets)
			if err != nil {
				return err
			}
			if err := a.openSession(cmd.Context()); err != nil {
				return err
			}

			if len(args) > 0 {
				for _, t := range args {
					if err := a.sess.RefreshOne(cmd.Context(), t, need); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "refreshed %d tickers\n", len(args))
				return nil
			}

			failed := a.sess.RefreshAll(cmd.Context(), need)
			fmt.Fprintf(cmd.OutOrStdout(), "refreshed %d of %d tickers\n", a.sess.Len()-len(failed), a.sess.Len())
			if len(failed) > 0 {
				return fmt.Errorf("failed: %s", strings.Join(failed, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&cols, "columns", nil, "refresh only the lookups these columns need (replaced columns outside the fetch are cleared)")
	cmd.Flags().StringSliceVar(&sets, "sets", nil, "refresh only the lookups these column sets need")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var cols, sets []string

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Bulk-add tickers from a seed file, with optional annotations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireToken(); err != nil {
				return err
			}
			items, err := source.LoadSeed(args[0])
			if err != nil {
				return err
			}
			active, err := a.resolveColumns(cols, sets)
			if err != nil {
				return err
			}
			if err := a.openSession(cmd.Context()); err != nil {
				return err
			}
			need := columns.RequiredSources(active)

			var added, failed int
			for _, item := range items {
				if _, err := a.sess.Add(cmd.Context(), item.Ticker, need); err != nil {
					a.log.WithField("ticker", item.Ticker).Error(err)
					failed++
					continue
				}
				if len(item.User) > 0 {
					if err := a.sess.SetUserFields(cmd.Context(), item.Ticker, item.User); err != nil {
						a.log.WithField("ticker", item.Ticker).Error(err)
						failed++
						continue
					}
				}
				added++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d tickers\n", added, len(items))
			if failed > 0 {
				return fmt.Errorf("%d tickers failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&cols, "columns", nil, "columns to consider when choosing remote lookups")
	cmd.Flags().StringSliceVar(&sets, "sets", nil, "column sets to consider when choosing remote lookups")
	return cmd
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the watchlist table when it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireDSN(); err != nil {
				return err
			}
			pg, err := store.NewPostgres(cmd.Context(), a.cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer pg.Close()
			if err := pg.Init(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "watchlist table ready")
			return nil
		},
	}
}
