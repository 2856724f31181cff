package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/daycount"
	"github.com/meenmo/bondlib/money"
)

// InstrumentRow is the stored, serializable form of bond terms. Calendar and
// convention choices are stored by name and resolved in Terms.
type InstrumentRow struct {
	ID         string
	Name       string
	IssueDate  time.Time
	Maturity   time.Time
	CouponRate float64
	Frequency  int
	Notional   float64
	Currency   string
	DayCount   string
	Calendar   string
	Adjustment string
	Stub       string
}

// Terms resolves the stored names into usable bond terms.
func (r InstrumentRow) Terms() (bond.Terms, error) {
	dc, err := daycount.Parse(r.DayCount)
	if err != nil {
		return bond.Terms{}, fmt.Errorf("instrument %s: %w", r.ID, err)
	}
	cal, err := calendar.ByName(r.Calendar)
	if err != nil {
		return bond.Terms{}, fmt.Errorf("instrument %s: %w", r.ID, err)
	}
	adj, err := calendar.ParseAdjustment(r.Adjustment)
	if err != nil {
		return bond.Terms{}, fmt.Errorf("instrument %s: %w", r.ID, err)
	}
	cur, err := money.ParseCurrency(r.Currency)
	if err != nil {
		return bond.Terms{}, fmt.Errorf("instrument %s: %w", r.ID, err)
	}

	stub := bond.StubPolicy(r.Stub)
	if stub != bond.ShortFrontStub && stub != bond.LongFrontStub {
		return bond.Terms{}, fmt.Errorf("instrument %s: unknown stub policy %q", r.ID, r.Stub)
	}

	return bond.Terms{
		IssueDate:    r.IssueDate,
		MaturityDate: r.Maturity,
		CouponRate:   r.CouponRate,
		Frequency:    r.Frequency,
		Notional:     r.Notional,
		Currency:     cur,
		DayCount:     dc,
		Calendar:     cal,
		Adjustment:   adj,
		Stub:         stub,
	}, nil
}

// InsertInstrument stores an instrument, replacing an existing row with the same id.
func (s *DB) InsertInstrument(ctx context.Context, row InstrumentRow) error {
	const q = `
INSERT INTO instruments (id, name, issue_date, maturity, coupon_rate, frequency,
	notional, currency, day_count, calendar, adjustment, stub)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name, issue_date = EXCLUDED.issue_date,
	maturity = EXCLUDED.maturity, coupon_rate = EXCLUDED.coupon_rate,
	frequency = EXCLUDED.frequency, notional = EXCLUDED.notional,
	currency = EXCLUDED.currency, day_count = EXCLUDED.day_count,
	calendar = EXCLUDED.calendar, adjustment = EXCLUDED.adjustment,
	stub = EXCLUDED.stub`
	_, err := s.db.ExecContext(ctx, q,
		row.ID, row.Name, row.IssueDate, row.Maturity, row.CouponRate, row.Frequency,
		row.Notional, row.Currency, row.DayCount, row.Calendar, row.Adjustment, row.Stub)
	if err != nil {
		return fmt.Errorf("InsertInstrument %s: %w", row.ID, err)
	}
	return nil
}

// Instrument fetches instrument terms by identifier.
func (s *DB) Instrument(ctx context.Context, id string) (InstrumentRow, error) {
	const q = `
SELECT id, name, issue_date, maturity, coupon_rate, frequency,
	notional, currency, day_count, calendar, adjustment, stub
FROM instruments WHERE id = $1`
	var row InstrumentRow
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&row.ID, &row.Name, &row.IssueDate, &row.Maturity, &row.CouponRate, &row.Frequency,
		&row.Notional, &row.Currency, &row.DayCount, &row.Calendar, &row.Adjustment, &row.Stub)
	if errors.Is(err, sql.ErrNoRows) {
		return InstrumentRow{}, fmt.Errorf("Instrument %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return InstrumentRow{}, fmt.Errorf("Instrument %s: %w", id, err)
	}
	return row, nil
}
