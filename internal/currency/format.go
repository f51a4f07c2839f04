package currency

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// symbolOverrides replaces x/text symbols where the narrow symbol reads
// poorly in a terminal.
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"ISK": "kr",
}

// prefixCurrencies place their symbol before the amount. x/text's currency
// package does not expose CLDR symbol positioning, so this list is kept by
// hand for the common cases.
var prefixCurrencies = map[string]bool{
	"USD": true, "GBP": true, "JPY": true, "CAD": true, "AUD": true,
	"MXN": true, "HKD": true, "SGD": true, "NZD": true, "ZAR": true,
}

var printer = message.NewPrinter(language.English)

// symbolFor returns the display symbol for a currency code, falling back to
// the code itself for anything ISO 4217 does not know.
func symbolFor(code string) string {
	if sym, ok := symbolOverrides[code]; ok {
		return sym
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}
	return printer.Sprint(currency.NarrowSymbol(unit))
}

// Format renders an amount with its currency symbol and grouping separators,
// two fraction digits. Display only; the float is not re-rounded here.
func Format(amount float64, code string) string {
	code = strings.ToUpper(code)
	formatted := printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	symbol := symbolFor(code)

	if prefixCurrencies[code] {
		return symbol + formatted
	}
	return formatted + " " + symbol
}

// FormatWhole renders an amount with no fraction digits, for compact tables
// and chart labels.
func FormatWhole(amount float64, code string) string {
	code = strings.ToUpper(code)
	formatted := printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(0)))
	symbol := symbolFor(code)

	if prefixCurrencies[code] {
		return symbol + formatted
	}
	return formatted + " " + symbol
}
