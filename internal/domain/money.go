package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Loan amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Money represents a monetary value in a specific currency.
// Amount is stored as integer cents so request payloads never go through floats.
type Money struct {
	Cents    int64
	Currency string // lowercase ISO 4217
}

// NewMoney creates a new Money instance from cents.
func NewMoney(cents int64, currency string) Money {
	return Money{
		Cents:    cents,
		Currency: currency,
	}
}

// ToDecimal converts the cents to whole currency units.
func (m Money) ToDecimal() decimal.Decimal {
	return FromCents(m.Cents)
}

// FromCents divides an integer cent amount by 100 without losing precision.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents converts a decimal amount to cents, truncating sub-cent digits.
func ToCents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).IntPart()
}

// String returns the string representation of the money.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.ToDecimal().StringFixed(2), m.Currency)
}
