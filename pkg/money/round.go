// Package money holds currency helpers shared by the cart and its hosts.
package money

import "github.com/shopspring/decimal"

// CurrencyPlaces is the precision every checkout total is rounded to.
const CurrencyPlaces int32 = 2

var half = decimal.NewFromFloat(0.5)

// Round rounds value half-up at the given number of decimal places: the value is
// scaled by 10^places, floored after adding 0.5, and scaled back. Ties therefore
// move towards positive infinity (-2.5 rounds to -2).
func Round(value decimal.Decimal, places int32) decimal.Decimal {
	return value.Shift(places).Add(half).Floor().Shift(-places)
}

// RoundCurrency rounds to CurrencyPlaces.
func RoundCurrency(value decimal.Decimal) decimal.Decimal {
	return Round(value, CurrencyPlaces)
}
