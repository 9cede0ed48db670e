// Package oecd fetches annual-change CPI percentages for Türkiye from the
// OECD SDMX-JSON data API.
package oecd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/selimgur/kiraci/internal/apperrors"
	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL = "https://sdmx.oecd.org/public/rest/data"
	// Monthly CPI, all items, annual growth rate, Türkiye.
	dataflowPath = "OECD.SDD.TPS,DSD_PRICES@DF_PRICES_ALL,1.0/TUR.M.N.CPI.PA._T.N.GY"
)

// Client is an OECD data API client with the same bounded-retry policy as
// the TCMB client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries uint64
	logger     *slog.Logger
}

// NewClient creates a new OECD client.
func NewClient(baseURL string, timeout time.Duration, maxRetries uint64, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// sdmxResponse covers just enough of the SDMX-JSON shape to pull a single
// observation out of a period-filtered query.
type sdmxResponse struct {
	DataSets []struct {
		Series map[string]struct {
			Observations map[string][]any `json:"observations"`
		} `json:"series"`
	} `json:"dataSets"`
}

// FetchMonthlyRate returns the annual inflation percentage for the given
// month. Unpublished months surface as apperrors.ErrNotFound.
func (c *Client) FetchMonthlyRate(ctx context.Context, period domain.MonthYear) (decimal.Decimal, error) {
	monthKey := fmt.Sprintf("%04d-%02d", period.Year, period.Month)
	requestURL := fmt.Sprintf("%s/%s?startPeriod=%s&endPeriod=%s&format=jsondata",
		c.baseURL, dataflowPath, monthKey, monthKey)

	operation := func() (decimal.Decimal, error) {
		return c.fetchOnce(ctx, requestURL)
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("OECD request failed, retrying",
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
		return decimal.Zero, backoff.Permanent(fmt.Errorf("%w: building OECD request: %s", apperrors.ErrProviderUnavailable, err.Error()))
	}
	req.Header.Set("Accept", "application/vnd.sdmx.data+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to parse
	case resp.StatusCode == http.StatusNotFound:
		// The API answers 404 for periods with no published observation.
		return decimal.Zero, backoff.Permanent(apperrors.ErrNotFound)
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return decimal.Zero, fmt.Errorf("%w: OECD returned status %d", apperrors.ErrProviderUnavailable, resp.StatusCode)
	default:
		return decimal.Zero, backoff.Permanent(fmt.Errorf("%w: OECD returned status %d", apperrors.ErrProviderUnavailable, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: reading OECD response: %s", apperrors.ErrProviderUnavailable, err.Error())
	}

	var parsed sdmxResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return decimal.Zero, backoff.Permanent(fmt.Errorf("%w: parsing OECD response: %s", apperrors.ErrProviderUnavailable, err.Error()))
	}

	for _, dataSet := range parsed.DataSets {
		for _, series := range dataSet.Series {
			for _, observation := range series.Observations {
				if len(observation) == 0 || observation[0] == nil {
					continue
				}
				number, ok := observation[0].(float64)
				if !ok {
					return decimal.Zero, backoff.Permanent(fmt.Errorf("%w: unexpected OECD value type %T", apperrors.ErrProviderUnavailable, observation[0]))
				}
				return decimal.NewFromFloat(number), nil
			}
		}
	}
	return decimal.Zero, backoff.Permanent(apperrors.ErrNotFound)
}
