package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// uniqueViolation is the Postgres error code for a duplicate primary key.
const uniqueViolation = "23505"

// textColumns are the market columns stored as text rather than float8.
var textColumns = map[string]bool{
	"name": true, "sector": true, "industry": true, "market_cap": true,
}

// Postgres implements Store on a hosted Postgres table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool to dsn.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Init creates the watchlist table when it does not exist yet.
func (p *Postgres) Init(ctx context.Context) error {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS watchlist (\n")
	b.WriteString("\tticker text PRIMARY KEY,\n")
	b.WriteString("\tcreated_at timestamptz NOT NULL DEFAULT now()")
	for _, k := range types.MarketFieldKeys {
		if textColumns[k] {
			b.WriteString(",\n\t" + k + " text")
		} else {
			b.WriteString(",\n\t" + k + " float8")
		}
	}
	for _, k := range types.UserFieldKeys {
		b.WriteString(",\n\t" + k + " text NOT NULL DEFAULT ''")
	}
	b.WriteString("\n)")
	if _, err := p.pool.Exec(ctx, b.String()); err != nil {
		return fmt.Errorf("create watchlist table: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context) ([]*types.Record, error) {
	cols := append([]string{"ticker", "created_at"}, types.MarketFieldKeys...)
	cols = append(cols, types.UserFieldKeys...)
	query := "SELECT " + strings.Join(cols, ", ") + " FROM watchlist ORDER BY created_at"

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	defer rows.Close()

	var out []*types.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan watchlist row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	return out, nil
}

func scanRecord(rows pgx.Rows) (*types.Record, error) {
	rec := &types.Record{
		Market: types.MarketData{},
		User:   types.UserData{},
	}
	var created time.Time

	dests := []any{&rec.Ticker, &created}
	texts := make([]**string, 0, len(types.MarketFieldKeys))
	nums := make([]**float64, 0, len(types.MarketFieldKeys))
	kinds := make([]bool, 0, len(types.MarketFieldKeys)) // true = text
	for _, k := range types.MarketFieldKeys {
		if textColumns[k] {
			texts = append(texts, new(*string))
			kinds = append(kinds, true)
			dests = append(dests, texts[len(texts)-1])
		} else {
			nums = append(nums, new(*float64))
			kinds = append(kinds, false)
			dests = append(dests, nums[len(nums)-1])
		}
	}
	users := make([]string, len(types.UserFieldKeys))
	for i := range types.UserFieldKeys {
		dests = append(dests, &users[i])
	}

	if err := rows.Scan(dests...); err != nil {
		return nil, err
	}

	rec.CreatedAt = created
	ti, ni := 0, 0
	for i, k := range types.MarketFieldKeys {
		if kinds[i] {
			if v := *texts[ti]; v != nil {
				rec.Market[k] = *v
			}
			ti++
		} else {
			if v := *nums[ni]; v != nil {
				rec.Market[k] = *v
			}
			ni++
		}
	}
	for i, k := range types.UserFieldKeys {
		rec.User[k] = users[i]
	}
	return rec, nil
}

func (p *Postgres) Insert(ctx context.Context, ticker string, market types.MarketData) (*types.Record, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	market = ScrubMarket(market)

	cols := []string{"ticker"}
	args := []any{ticker}
	for _, k := range types.MarketFieldKeys {
		cols = append(cols, k)
		args = append(args, market[k])
	}
	for _, k := range types.UserFieldKeys {
		cols = append(cols, k)
		args = append(args, "")
	}
	ph := make([]string, len(args))
	for i := range args {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	query := "INSERT INTO watchlist (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.Join(ph, ", ") + ") RETURNING created_at"

	var created time.Time
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&created); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%s: %w", ticker, types.ErrDuplicateTicker)
		}
		return nil, fmt.Errorf("insert %s: %w", ticker, err)
	}

	return &types.Record{
		Ticker:    ticker,
		CreatedAt: created,
		Market:    market,
		User:      types.EmptyUserFields(),
	}, nil
}

func (p *Postgres) UpdateMarket(ctx context.Context, ticker string, market types.MarketData) error {
	market = ScrubMarket(market)

	sets := make([]string, 0, len(types.MarketFieldKeys))
	args := []any{ticker}
	for _, k := range types.MarketFieldKeys {
		args = append(args, market[k])
		sets = append(sets, fmt.Sprintf("%s = $%d", k, len(args)))
	}
	query := "UPDATE watchlist SET " + strings.Join(sets, ", ") + " WHERE ticker = $1"

	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update market %s: %w", ticker, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", ticker, types.ErrTickerNotFound)
	}
	return nil
}

func (p *Postgres) UpdateUserFields(ctx context.Context, ticker string, fields types.UserData) error {
	fields, err := ScrubUser(fields)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	sets := make([]string, 0, len(fields))
	args := []any{ticker}
	for _, k := range types.UserFieldKeys { // stable column order
		v, ok := fields[k]
		if !ok {
			continue
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", k, len(args)))
	}
	query := "UPDATE watchlist SET " + strings.Join(sets, ", ") + " WHERE ticker = $1"

	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user fields %s: %w", ticker, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", ticker, types.ErrTickerNotFound)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, ticker string) error {
	if _, err := p.pool.Exec(ctx, "DELETE FROM watchlist WHERE ticker = $1", ticker); err != nil {
		return fmt.Errorf("delete %s: %w", ticker, err)
	}
	return nil
}
