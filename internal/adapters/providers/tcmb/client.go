// Package tcmb fetches monthly average USD/TRY exchange rates from the
// Turkish central bank's EVDS service.
package tcmb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/selimgur/kiraci/internal/apperrors"
	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL = "https://evds2.tcmb.gov.tr/service/evds"
	// TP.DK.USD.A is the USD buying rate series; frequency 5 with avg
	// aggregation yields one value per calendar month.
	seriesCode = "TP.DK.USD.A"
)

// Client is an EVDS API client. Requests are retried with exponential
// backoff and jitter, bounded by MaxRetries; exhaustion surfaces as
// apperrors.ErrProviderUnavailable rather than hanging.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries uint64
	logger     *slog.Logger
}

// NewClient creates a new EVDS client.
func NewClient(baseURL, apiKey string, timeout time.Duration, maxRetries uint64, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

type evdsResponse struct {
	Items []map[string]any `json:"items"`
}

// FetchMonthlyAverage returns the monthly average rate for the given month.
// A month EVDS has not published yet is apperrors.ErrNotFound, which is not
// retried; transport and server errors are retried and, once the retry
// budget is spent, wrapped in apperrors.ErrProviderUnavailable.
func (c *Client) FetchMonthlyAverage(ctx context.Context, period domain.MonthYear) (decimal.Decimal, error) {
	first := period.FirstOfMonth()
	last := first.AddDate(0, 1, -1)

	query := url.Values{}
	query.Set("series", seriesCode)
	query.Set("startDate", first.Format("02-01-2006"))
	query.Set("endDate", last.Format("02-01-2006"))
	query.Set("type", "json")
	query.Set("frequency", "5")
	query.Set("aggregationTypes", "avg")
	query.Set("formulas", "0")
	requestURL := c.baseURL + "?" + query.Encode()

	operation := func() (decimal.Decimal, error) {
		return c.fetchOnce(ctx, requestURL)
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("EVDS request failed, retrying",
			slog.String("period", period.String()),
			slog.Duration("backoff", wait),
			slog.String("error", err.Error()),
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	rate, err := backoff.RetryNotifyWithData(operation, policy, notify)
	if err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}

func (c *Client) fetchOnce(ctx context.Context, requestURL string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return decimal.Zero, backoff.Permanent(fmt.Errorf("%w: building EVDS request: %s", apperrors.ErrProviderUnavailable, err.Error()))
	}
	req.Header.Set("key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to parse
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return decimal.Zero, fmt.Errorf("%w: EVDS returned status %d", apperrors.ErrProviderUnavailable, resp.StatusCode)
	default:
		// Client errors will not heal with retries.
		return decimal.Zero, backoff.Permanent(fmt.Errorf("%w: EVDS returned status %d", apperrors.ErrProviderUnavailable, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: reading EVDS response: %s", apperrors.ErrProviderUnavailable, err.Error())
	}

	var parsed evdsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return decimal.Zero, backoff.Permanent(fmt.Errorf("%w: parsing EVDS response: %s", apperrors.ErrProviderUnavailable, err.Error()))
	}
	if len(parsed.Items) == 0 {
		// Data for the month is not published yet; distinct from failure.
		return decimal.Zero, backoff.Permanent(apperrors.ErrNotFound)
	}

	value, ok := parsed.Items[0]["TP_DK_USD_A"]
	if !ok || value == nil {
		return decimal.Zero, backoff.Permanent(apperrors.ErrNotFound)
	}
	text, ok := value.(string)
	if !ok {
		return decimal.Zero, backoff.Permanent(fmt.Errorf("%w: unexpected EVDS value type %T", apperrors.ErrProviderUnavailable, value))
	}
	rate, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, backoff.Permanent(fmt.Errorf("%w: EVDS value %q is not numeric", apperrors.ErrProviderUnavailable, text))
	}
	return rate, nil
}
