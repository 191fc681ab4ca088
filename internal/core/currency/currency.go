// Package currency holds the conversion rules shared by wallets, expenses
// and the dashboard totals. Every cross-currency conversion pivots through
// EUR so the answer never depends on conversion order.
package currency

import (
	"fmt"
	"math"
)

type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	CLP Currency = "CLP"
)

func (c Currency) Valid() bool {
	switch c {
	case EUR, USD, CLP:
		return true
	}
	return false
}

// Rates are the user-entered exchange rates in effect right now. Both are
// quoted from EUR: one EUR buys EURToCLP pesos and EURToUSD dollars.
type Rates struct {
	EURToCLP float64
	EURToUSD float64
}

func (r Rates) Validate() error {
	if !isFinitePositive(r.EURToCLP) {
		return fmt.Errorf("EUR to CLP rate must be a positive number, got %v", r.EURToCLP)
	}
	if !isFinitePositive(r.EURToUSD) {
		return fmt.Errorf("EUR to USD rate must be a positive number, got %v", r.EURToUSD)
	}
	return nil
}

// ToEUR converts an amount in the given currency into EUR.
func (r Rates) ToEUR(amount float64, from Currency) (float64, error) {
	switch from {
	case EUR:
		return amount, nil
	case CLP:
		return amount / r.EURToCLP, nil
	case USD:
		return amount / r.EURToUSD, nil
	}
	return 0, fmt.Errorf("unknown currency %q", from)
}

// FromEUR converts a EUR amount into the given currency.
func (r Rates) FromEUR(eurAmount float64, to Currency) (float64, error) {
	switch to {
	case EUR:
		return eurAmount, nil
	case CLP:
		return eurAmount * r.EURToCLP, nil
	case USD:
		return eurAmount * r.EURToUSD, nil
	}
	return 0, fmt.Errorf("unknown currency %q", to)
}

// Convert routes any pair through EUR. There is deliberately no direct
// CLP/USD path.
func (r Rates) Convert(amount float64, from, to Currency) (float64, error) {
	eur, err := r.ToEUR(amount, from)
	if err != nil {
		return 0, err
	}
	return r.FromEUR(eur, to)
}

// ToCents turns a decimal amount into integer minor units for storage.
// NaN and Inf are coerced to 0 rather than handed to the store.
func ToCents(amount float64) int64 {
	return int64(math.Round(Sanitize(amount) * 100))
}

func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// Sanitize replaces NaN and Inf with 0 so a bad numeric input cannot
// corrupt a native write.
func Sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func isFinitePositive(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}
