// Package currency converts and formats monetary amounts.
package currency

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/subtrack/internal/model"
)

// Convert translates amount from one currency code to another, pivoting
// through rates.Base. Same-code conversion returns the amount untouched
// without consulting the table, so identity holds even for codes the table
// has never heard of.
//
// A code missing from the table degrades to a 1:1 rate instead of failing:
// a stale or incomplete rate snapshot should never blank out the user's
// totals. Callers that care surface rate staleness separately.
func Convert(amount float64, from, to string, rates model.CurrencyRates) float64 {
	if from == to {
		return amount
	}

	base := amount
	if from != rates.Base {
		if r, ok := rates.Rates[from]; ok && r != 0 {
			base = amount / r
		}
	}

	if to == rates.Base {
		return base
	}
	if r, ok := rates.Rates[to]; ok {
		return base * r
	}
	return base
}

// Round applies the display rounding policy: nearest whole unit when
// wholeNumbers is set, otherwise two decimal places with ties rounding away
// from zero (standard money display rounding). The cent case goes through
// decimal arithmetic so values like 43.335 land on 43.34 rather than
// whichever side their float64 representation happens to sit on.
func Round(amount float64, wholeNumbers bool) float64 {
	if wholeNumbers {
		return math.Round(amount)
	}
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}
