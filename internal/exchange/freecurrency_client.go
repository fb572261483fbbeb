package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/logger"
	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/models"
)

// maxSendAttempts bounds how many times a single lookup hits the API before
// giving up. Attempts are back-to-back, no delay between them.
const maxSendAttempts = 3

const apiDateLayout = "2006-01-02"

// FreeCurrencyClient is a client for the freecurrencyapi.net rates API.
type FreeCurrencyClient struct {
	baseURL    string
	apiKey     string
	earliest   time.Time
	httpClient *http.Client

	// now is overridable in tests to pin "today".
	now func() time.Time
}

type ratesEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// NewFreeCurrencyClient creates a rates API client. earliest is the first
// date the provider has data for; requests before it fail without a network
// round-trip.
func NewFreeCurrencyClient(baseURL, apiKey string, earliest time.Time, timeout time.Duration) *FreeCurrencyClient {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = "https://freecurrencyapi.net"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &FreeCurrencyClient{
		baseURL:  trimmed,
		apiKey:   apiKey,
		earliest: earliest,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		now: time.Now,
	}
}

// Rate fetches the exchange rate of one unit of baseCurrency in targetCurrency
// for the given date. Today's date is served from the latest-rates endpoint,
// any other date from the historical one.
func (c *FreeCurrencyClient) Rate(
	ctx context.Context,
	baseCurrency, targetCurrency string,
	date time.Time,
) (decimal.Decimal, error) {
	base := models.NormalizeCurrencyCode(baseCurrency)
	target := models.NormalizeCurrencyCode(targetCurrency)
	if err := c.checkRequestParameters(base, target, date); err != nil {
		return decimal.Decimal{}, err
	}

	day := dateOnly(date)
	today := dateOnly(c.now())
	requestURI := c.requestURI(base, day, today)

	body, err := c.send(ctx, requestURI)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return extractRate(body, target, day, today)
}

// checkRequestParameters validates codes and the date window before any
// network call is made.
func (c *FreeCurrencyClient) checkRequestParameters(base, target string, date time.Time) error {
	if !models.IsSupportedCurrency(base) {
		return fmt.Errorf("%w: %s", ErrUnsupportedCurrency, base)
	}
	if !models.IsSupportedCurrency(target) {
		return fmt.Errorf("%w: %s", ErrUnsupportedCurrency, target)
	}

	day := dateOnly(date)
	if day.After(dateOnly(c.now())) {
		return fmt.Errorf("%w: %s", ErrDateInFuture, day.Format(apiDateLayout))
	}
	if day.Before(dateOnly(c.earliest)) {
		return fmt.Errorf("%w: %s is before %s", ErrNoData,
			day.Format(apiDateLayout), c.earliest.Format(apiDateLayout))
	}

	return nil
}

func (c *FreeCurrencyClient) requestURI(base string, day, today time.Time) string {
	if day.Equal(today) {
		return fmt.Sprintf("%s/api/v2/latest?apikey=%s&base_currency=%s",
			c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(base))
	}

	apiDate := day.Format(apiDateLayout)
	return fmt.Sprintf("%s/api/v2/historical?apikey=%s&base_currency=%s&date_from=%s&date_to=%s",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(base), apiDate, apiDate)
}

// send issues the GET request with bounded retries. Request errors, body read
// errors and non-200 statuses all count as failed attempts; the last error is
// wrapped into ErrUnavailable once attempts are exhausted.
func (c *FreeCurrencyClient) send(ctx context.Context, requestURI string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
		}

		body, err := c.sendOnce(ctx, requestURI)
		if err == nil {
			return body, nil
		}

		lastErr = err
		logger.Log.Debug().
			Err(err).
			Int("attempt", attempt).
			Msg("Rate API request attempt failed")
	}

	logger.Log.Warn().
		Err(lastErr).
		Int("attempts", maxSendAttempts).
		Msg("Rate API attempts exhausted")
	return nil, fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
}

func (c *FreeCurrencyClient) sendOnce(ctx context.Context, requestURI string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURI, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request rate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate response: %w", err)
	}

	return body, nil
}

// extractRate digs the target currency's quote out of the response envelope.
// For latest queries the rate sits directly under "data"; historical
// responses nest it under the requested date first. Malformed bodies are
// indistinguishable from absent data from the caller's point of view, so both
// map to ErrNoData.
func extractRate(body []byte, target string, day, today time.Time) (decimal.Decimal, error) {
	var envelope ratesEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrNoData, target)
	}

	var quote json.Number
	if day.Equal(today) {
		var rates map[string]json.Number
		if err := json.Unmarshal(envelope.Data, &rates); err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrNoData, target)
		}
		quote = rates[target]
	} else {
		var byDate map[string]map[string]json.Number
		if err := json.Unmarshal(envelope.Data, &byDate); err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrNoData, target)
		}
		quote = byDate[day.Format(apiDateLayout)][target]
	}

	if quote == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: %s on %s", ErrNoData, target, day.Format(apiDateLayout))
	}

	rate, err := decimal.NewFromString(quote.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrNoData, target)
	}

	return rate, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
