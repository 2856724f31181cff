package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a single observed price for a ticker. Price is kept as an exact
// decimal so NUMERIC values round-trip without float drift.
type Quote struct {
	ID       int64
	Ticker   string
	Price    decimal.Decimal
	Currency string
	Time     time.Time
}

// InsertQuote stores a quote observation.
func (s *DB) InsertQuote(ctx context.Context, q Quote) (int64, error) {
	const query = `
INSERT INTO quotes (ticker, price, currency, ts)
VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	err := s.db.QueryRowContext(ctx, query, q.Ticker, q.Price, q.Currency, q.Time).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("InsertQuote %s: %w", q.Ticker, err)
	}
	return id, nil
}

// QuoteAsOf returns the latest quote for a ticker at or before asOf, or
// ErrNotFound when no quote applies. The caller decides whether to fall back
// or abort.
func (s *DB) QuoteAsOf(ctx context.Context, ticker string, asOf time.Time) (Quote, error) {
	const query = `
SELECT id, ticker, price, currency, ts
FROM quotes WHERE ticker = $1 AND ts <= $2
ORDER BY ts DESC LIMIT 1`
	var q Quote
	err := s.db.QueryRowContext(ctx, query, ticker, asOf).Scan(
		&q.ID, &q.Ticker, &q.Price, &q.Currency, &q.Time)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, fmt.Errorf("QuoteAsOf %s @ %s: %w", ticker, asOf.Format("2006-01-02"), ErrNotFound)
	}
	if err != nil {
		return Quote{}, fmt.Errorf("QuoteAsOf %s: %w", ticker, err)
	}
	return q, nil
}

// Quotes returns the full quote series for a ticker in ascending time order.
func (s *DB) Quotes(ctx context.Context, ticker string) ([]Quote, error) {
	const query = `
SELECT id, ticker, price, currency, ts
FROM quotes WHERE ticker = $1 ORDER BY ts`
	rows, err := s.db.QueryContext(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("Quotes %s: %w", ticker, err)
	}
	defer rows.Close()

	var out []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(&q.ID, &q.Ticker, &q.Price, &q.Currency, &q.Time); err != nil {
			return nil, fmt.Errorf("Quotes %s: %w", ticker, err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Quotes %s: %w", ticker, err)
	}
	return out, nil
}
