package bot

import (
	"strings"

	"github.com/shopspring/decimal"
)

// minDecimalsForCheapCurrencies is the precision floor for rates of 1 and
// above (currencies cheap relative to the base).
const minDecimalsForCheapCurrencies = 3

// FormatRate renders the price of one unit of the target currency in the
// base currency, i.e. the inverse of the provider's rate.
//
// Precision adapts to the raw rate: below 1 the inverse is shown with 2
// decimals; otherwise the decimal count starts at 3 and grows by one for each
// extra power of ten in the rate, keeping roughly constant significant
// precision for very cheap currencies.
func FormatRate(rate decimal.Decimal) string {
	one := decimal.NewFromInt(1)
	inverse := one.Div(rate)

	if rate.LessThan(one) {
		return localizeNumber(inverse.StringFixed(2))
	}

	decimals := int32(minDecimalsForCheapCurrencies)
	for k := int32(1); rate.GreaterThan(decimal.New(1, k)); k++ {
		decimals++
	}

	return localizeNumber(inverse.StringFixed(decimals))
}

// localizeNumber converts a plain decimal string to the reply locale: comma
// as the decimal separator, space as the thousands separator.
func localizeNumber(s string) string {
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(intPart[i])
	}

	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}

	return b.String()
}
