package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a value object representing the USD to VES conversion rate.
// It is immutable; the rate must be strictly positive.
type ExchangeRate struct {
	rate decimal.Decimal
}

// NewExchangeRate creates a new ExchangeRate
func NewExchangeRate(rate decimal.Decimal) (ExchangeRate, error) {
	if !rate.IsPositive() {
		return ExchangeRate{}, fmt.Errorf("exchange rate must be positive, got %s", rate)
	}
	return ExchangeRate{rate: rate}, nil
}

// NewExchangeRateFromFloat creates an ExchangeRate from a float64
func NewExchangeRateFromFloat(rate float64) (ExchangeRate, error) {
	return NewExchangeRate(decimal.NewFromFloat(rate))
}

// MustNewExchangeRate creates an ExchangeRate, panics on error
func MustNewExchangeRate(rate decimal.Decimal) ExchangeRate {
	r, err := NewExchangeRate(rate)
	if err != nil {
		panic(err)
	}
	return r
}

// Rate returns the raw decimal rate
func (r ExchangeRate) Rate() decimal.Decimal {
	return r.rate
}

// IsZero returns true when the rate was never set
func (r ExchangeRate) IsZero() bool {
	return r.rate.IsZero()
}

// Convert converts a USD amount into VES, rounded to 2 places.
// Rounding happens only here, at the conversion boundary.
func (r ExchangeRate) Convert(usd Money) (Money, error) {
	if usd.Currency() != USD {
		return Money{}, fmt.Errorf("can only convert from USD, got %s", usd.Currency())
	}
	return Money{
		amount:   usd.Amount().Mul(r.rate).Round(2),
		currency: VES,
	}, nil
}

// String returns the rate as a string
func (r ExchangeRate) String() string {
	return r.rate.String()
}
