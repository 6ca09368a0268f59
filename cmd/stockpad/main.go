// Command stockpad is a personal stock watchlist: market data from
// Finnhub, tracked tickers and annotations in a hosted Postgres table.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stockpad/stockpad/pkg/stockpad/columns"
	"github.com/stockpad/stockpad/pkg/stockpad/config"
	"github.com/stockpad/stockpad/pkg/stockpad/provider"
	"github.com/stockpad/stockpad/pkg/stockpad/session"
	"github.com/stockpad/stockpad/pkg/stockpad/store"
)

// app wires config, logging, store and session for one invocation.
type app struct {
	cfg  *config.Config
	log  *logrus.Logger
	pg   *store.Postgres
	sess *session.Session
}

// openSession connects the store, builds the quote client and loads the
// watchlist. The session lives until process end.
func (a *app) openSession(ctx context.Context) error {
	if err := a.cfg.RequireDSN(); err != nil {
		return err
	}
	pg, err := store.NewPostgres(ctx, a.cfg.Database.DSN)
	if err != nil {
		return err
	}
	a.pg = pg

	client := provider.NewClient(a.cfg.Finnhub.BaseURL, a.cfg.Finnhub.Token, a.cfg.Finnhub.Timeout)
	quotes := provider.NewCacheService(client, 5*time.Minute, 256)
	a.sess, err = session.New(ctx, pg, quotes, a.log)
	if err != nil {
		pg.Close()
		return err
	}
	return nil
}

func (a *app) close() {
	if a.pg != nil {
		a.pg.Close()
	}
}

// resolveColumns turns the --columns / --sets flags into active
// descriptors; explicit columns win over sets.
func (a *app) resolveColumns(cols, sets []string) ([]columns.Descriptor, error) {
	if len(cols) > 0 {
		return columns.Active(cols)
	}
	if len(sets) == 0 {
		sets = a.cfg.Display.Sets
	}
	keys, err := columns.Expand(sets)
	if err != nil {
		return nil, err
	}
	return columns.Active(keys)
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	a := &app{log: log}

	rootCmd := &cobra.Command{
		Use:           "stockpad",
		Short:         "Track a stock watchlist with personal annotations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}

	rootCmd.AddCommand(
		newAddCmd(a),
		newRmCmd(a),
		newRefreshCmd(a),
		newLsCmd(a),
		newSetCmd(a),
		newExportCmd(a),
		newApplyCmd(a),
		newImportCmd(a),
		newInitCmd(a),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		a.close()
		os.Exit(1)
	}
	a.close()
}
