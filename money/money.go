// Package money provides currency-tagged cash amounts with per-currency
// rounding conventions.
package money

import (
	"errors"
	"fmt"

	gomoney "github.com/Rhymond/go-money"

	"github.com/meenmo/bondlib/utils"
)

var (
	// ErrInvalidCurrency is returned for codes that are not three ASCII letters.
	ErrInvalidCurrency = errors.New("currency codes must consist of exactly three letters")
	// ErrCurrencyMismatch is returned when combining amounts in different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Currency is a three-letter ISO 4217 code such as "EUR" or "JPY".
type Currency string

// ParseCurrency validates a currency code.
func ParseCurrency(code string) (Currency, error) {
	if len(code) != 3 {
		return "", fmt.Errorf("ParseCurrency %q: %w", code, ErrInvalidCurrency)
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return "", fmt.Errorf("ParseCurrency %q: %w", code, ErrInvalidCurrency)
		}
	}
	out := [3]byte{}
	for i := 0; i < 3; i++ {
		c := code[i]
		if c >= 'a' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return Currency(out[:]), nil
}

// RoundingDigits returns the number of decimal places amounts in this currency
// round to, from the ISO minor-unit table (JPY is 0, most currencies 2).
func (c Currency) RoundingDigits() int {
	if cur := gomoney.GetCurrency(string(c)); cur != nil {
		return cur.Fraction
	}
	return 2
}

// Amount is a quantity of cash in a single currency.
type Amount struct {
	Value    float64
	Currency Currency
}

// Add returns a + b. Both amounts must share a currency; cross-currency sums
// need an FX quote and live behind the store boundary.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, fmt.Errorf("Add %s + %s: %w", a.Currency, b.Currency, ErrCurrencyMismatch)
	}
	return Amount{Value: a.Value + b.Value, Currency: a.Currency}, nil
}

// Sub returns a - b, requiring matching currencies.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, fmt.Errorf("Sub %s - %s: %w", a.Currency, b.Currency, ErrCurrencyMismatch)
	}
	return Amount{Value: a.Value - b.Value, Currency: a.Currency}, nil
}

// Neg returns the amount with the opposite sign.
func (a Amount) Neg() Amount {
	return Amount{Value: -a.Value, Currency: a.Currency}
}

// Round rounds the amount to its currency's conventional number of decimals.
func (a Amount) Round() Amount {
	return Amount{
		Value:    utils.RoundTo(a.Value, uint32(a.Currency.RoundingDigits())),
		Currency: a.Currency,
	}
}

func (a Amount) String() string {
	return fmt.Sprintf("%.4f %s", a.Value, a.Currency)
}
