// Package exchange retrieves currency exchange rates from an external API.
package exchange

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Exchanger answers single-pair exchange rate lookups. The returned rate is
// the price of one unit of the base currency expressed in the target currency.
type Exchanger interface {
	Rate(ctx context.Context, baseCurrency, targetCurrency string, date time.Time) (decimal.Decimal, error)
}

// ErrUnavailable is returned when the rate API could not be reached after all
// send attempts.
var ErrUnavailable = errors.New("rate service unavailable")

// ErrNoData is returned when the provider has no quote for the requested
// currency and date, or returned a body the client cannot make sense of.
var ErrNoData = errors.New("no exchange rate data for requested date")

// ErrUnsupportedCurrency is returned when a currency code is outside the
// provider's supported set.
var ErrUnsupportedCurrency = errors.New("unsupported currency code")

// ErrDateInFuture is returned when the requested date is after today.
var ErrDateInFuture = errors.New("requested date is in the future")
