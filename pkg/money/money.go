package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a fixed-precision monetary amount, always normalized to two
// decimal places using round-half-away-from-zero. Every arithmetic result
// is re-rounded, so repeated interest postings cannot accumulate sub-cent
// drift the way raw float arithmetic does.
type Money struct {
	dec decimal.Decimal
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{dec: decimal.Zero}
}

// FromString parses a monetary amount. A parse failure is the caller's
// invalid-amount error; there is no separate validation step.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid monetary amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// FromDecimal normalizes a decimal to two places.
func FromDecimal(d decimal.Decimal) Money {
	return Money{dec: d.Round(2)}
}

// FromFloat converts a float, rounding to two places.
func FromFloat(f float64) Money {
	return FromDecimal(decimal.NewFromFloat(f))
}

// Add returns m + other, rounded to two places.
func (m Money) Add(other Money) Money {
	return FromDecimal(m.dec.Add(other.dec))
}

// Sub returns m - other, rounded to two places.
func (m Money) Sub(other Money) Money {
	return FromDecimal(m.dec.Sub(other.dec))
}

// Equal reports whether two amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.dec.Equal(other.dec)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.dec.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.dec.IsNegative()
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.dec
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	return m.dec.StringFixed(2)
}

// MarshalJSON renders the amount as a two-decimal JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts numbers or numeric strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = FromDecimal(d)
	return nil
}

// Value implements driver.Valuer for database writes.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner for database reads.
func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	*m = FromDecimal(d)
	return nil
}

// NullMoney is a Money that may be absent, for nullable monetary columns.
// An absent amount is treated as zero by callers.
type NullMoney struct {
	Money Money
	Valid bool
}

// NewNull wraps a Money as present.
func NewNull(m Money) NullMoney {
	return NullMoney{Money: m, Valid: true}
}

// OrZero returns the wrapped amount, or zero when absent.
func (n NullMoney) OrZero() Money {
	if !n.Valid {
		return Zero()
	}
	return n.Money
}

// Value implements driver.Valuer.
func (n NullMoney) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Money.Value()
}

// Scan implements sql.Scanner.
func (n *NullMoney) Scan(value interface{}) error {
	if value == nil {
		*n = NullMoney{}
		return nil
	}
	var m Money
	if err := m.Scan(value); err != nil {
		return err
	}
	*n = NullMoney{Money: m, Valid: true}
	return nil
}

// MarshalJSON renders null when absent.
func (n NullMoney) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Money.MarshalJSON()
}

// UnmarshalJSON accepts null, numbers or numeric strings.
func (n *NullMoney) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullMoney{}
		return nil
	}
	var m Money
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = NullMoney{Money: m, Valid: true}
	return nil
}
