package bot

import (
	"errors"
	"regexp"
	"strings"
	"time"

	appmodels "github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/models"
)

// RateQuery is a validated currency/date pair extracted from a message.
// It is only ever produced by a successful parse.
type RateQuery struct {
	TargetCurrency string
	Date           time.Time
}

// Parse rejections, each mapped to a user-facing text in messages.go.
var (
	ErrNotText             = errors.New("message is not plain text")
	ErrUnknownCurrencyCode = errors.New("unknown currency code")
	ErrInvalidDate         = errors.New("invalid date")
	ErrDateInFuture        = errors.New("date is in the future")
)

// currencyCodeRegex matches a bare 3-letter currency code.
var currencyCodeRegex = regexp.MustCompile(`^[a-zA-Z]{3}$`)

// dateLayouts are tried in order; the first one that parses wins.
var dateLayouts = []string{
	"02.01.2006",
	"01-02-2006",
	"2006-01-02",
	"02/01/2006",
}

// ParseRateQuery parses a message like "USD 16.05.2021" into a RateQuery.
// The first token must be a supported 3-letter currency code, the second a
// date in one of the accepted layouts, no later than now's calendar day.
// Extra tokens are ignored.
func ParseRateQuery(text string, now time.Time) (RateQuery, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return RateQuery{}, ErrUnknownCurrencyCode
	}

	code := tokens[0]
	if !currencyCodeRegex.MatchString(code) || !appmodels.IsSupportedCurrency(code) {
		return RateQuery{}, ErrUnknownCurrencyCode
	}

	if len(tokens) < 2 {
		return RateQuery{}, ErrInvalidDate
	}

	date, err := parseDate(tokens[1])
	if err != nil {
		return RateQuery{}, ErrInvalidDate
	}

	if date.After(calendarDay(now)) {
		return RateQuery{}, ErrDateInFuture
	}

	return RateQuery{
		TargetCurrency: appmodels.NormalizeCurrencyCode(code),
		Date:           date,
	}, nil
}

func parseDate(token string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		date, err := time.Parse(layout, token)
		if err == nil {
			return date, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
