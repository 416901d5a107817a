package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/wallet-roaster/internal/circuitbreaker"
	"github.com/wallet-roaster/internal/config"
	apperrors "github.com/wallet-roaster/internal/errors"
	"github.com/wallet-roaster/internal/logging"
	"github.com/wallet-roaster/internal/retry"
	"github.com/wallet-roaster/internal/types"
)

const zerionProviderName = "zerion"

// ZerionClient fetches wallet portfolio data from the Zerion API. Requests
// are rate limited, retried with exponential backoff on retryable failures
// and protected by a circuit breaker. When a secondary base URL is
// configured, repeated transport failures trigger endpoint failover.
type ZerionClient struct {
	provider    *APIProvider
	authHeader  string
	client      *http.Client
	limiter     *rate.Limiter
	breaker     *circuitbreaker.CircuitBreaker
	retryConfig *retry.Config
	pageSize    int
	chartPeriod string
	logger      *logging.Logger
}

// NewZerionClient creates a Zerion API client from configuration
func NewZerionClient(cfg config.ZerionConfig) (*ZerionClient, error) {
	provider, err := NewAPIProvider(cfg.BaseURL, cfg.SecondaryBaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating zerion provider: %w", err)
	}

	retryConfig := retry.DefaultConfig()
	retryConfig.IsRetryable = apperrors.IsRetryable

	return &ZerionClient{
		provider:    provider,
		authHeader:  "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.APIKey+":")),
		client:      &http.Client{Timeout: cfg.RequestTimeout},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		breaker:     circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig(zerionProviderName)),
		retryConfig: retryConfig,
		pageSize:    cfg.PageSize,
		chartPeriod: cfg.ChartPeriod,
		logger:      logging.GetGlobalLogger().WithField("component", "ZerionClient"),
	}, nil
}

// FetchWalletData fetches the portfolio overview, positions and PnL for a
// wallet and normalizes them into a snapshot. The portfolio call is
// required; positions and PnL degrade to empty values when their endpoints
// fail, matching how partial upstream data should soften rather than kill a
// roast.
func (c *ZerionClient) FetchWalletData(ctx context.Context, address string) (*types.WalletData, error) {
	var portfolio zerionPortfolioResponse
	query := url.Values{"currency": {"usd"}}
	if err := c.get(ctx, address, "portfolio", query, &portfolio); err != nil {
		return nil, err
	}

	data := &types.WalletData{
		Address:        address,
		PortfolioValue: extractPortfolioValue(&portfolio.Data.Attributes),
		Distribution:   normalizeDistribution(portfolio.Data.Attributes.PositionsDistributionByType),
	}

	var positions zerionPositionsResponse
	positionsQuery := url.Values{
		"currency":          {"usd"},
		"filter[positions]": {"only_simple"},
		"filter[trash]":     {"only_non_trash"},
		"sort":              {"value"},
		"page[size]":        {strconv.Itoa(c.pageSize)},
	}
	if err := c.get(ctx, address, "positions", positionsQuery, &positions); err != nil {
		c.logger.WithError(err).WithField("address", address).Warn("Positions fetch failed, continuing without positions")
	} else {
		data.Positions = normalizePositions(positions.Data)
		data.TopHoldings = topHoldings(data.Positions)
	}

	var pnl zerionPnLResponse
	if err := c.get(ctx, address, "pnl", query, &pnl); err != nil {
		c.logger.WithError(err).WithField("address", address).Warn("PnL fetch failed, continuing without PnL")
	} else {
		data.PnL = normalizePnL(&pnl)
	}

	return data, nil
}

// FetchTransactions fetches the wallet's recent transaction history
func (c *ZerionClient) FetchTransactions(ctx context.Context, address string) ([]types.RawTransaction, error) {
	var resp zerionTransactionsResponse
	query := url.Values{
		"currency":   {"usd"},
		"page[size]": {strconv.Itoa(c.pageSize)},
	}
	if err := c.get(ctx, address, "transactions", query, &resp); err != nil {
		return nil, err
	}
	return normalizeTransactions(resp.Data), nil
}

// FetchChart fetches the wallet's portfolio value series for the configured
// period
func (c *ZerionClient) FetchChart(ctx context.Context, address string) ([]types.ChartDataPoint, error) {
	var resp zerionChartResponse
	query := url.Values{"currency": {"usd"}}
	if err := c.get(ctx, address, "charts/"+c.chartPeriod, query, &resp); err != nil {
		return nil, err
	}
	return normalizeChart(resp.Data.Attributes.Points), nil
}

// Health returns the failover provider's health snapshot
func (c *ZerionClient) Health() *ProviderHealth {
	return c.provider.GetHealth()
}

// get performs a rate-limited, retried, breaker-protected GET against the
// wallet endpoint and decodes the JSON body into out
func (c *ZerionClient) get(ctx context.Context, address, endpoint string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.NewTimeoutError(zerionProviderName, err)
	}

	return retry.Do(ctx, c.retryConfig, func(ctx context.Context, attempt int) error {
		return c.breaker.Execute(ctx, func() error {
			return c.doRequest(ctx, address, endpoint, query, out)
		})
	})
}

func (c *ZerionClient) doRequest(ctx context.Context, address, endpoint string, query url.Values, out interface{}) error {
	requestURL := fmt.Sprintf("%s/wallets/%s/%s?%s", c.provider.GetCurrentURL(), address, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return apperrors.NewInternalError("building zerion request", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.recordTransportFailure(err)
		if ctx.Err() != nil || isTimeout(err) {
			return apperrors.NewTimeoutError(zerionProviderName, err)
		}
		return apperrors.NewNetworkError(zerionProviderName, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.provider.RecordFailure(fmt.Errorf("status %d", resp.StatusCode))
		return apperrors.NewAuthenticationError(zerionProviderName, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound:
		c.provider.RecordFailure(fmt.Errorf("status %d", resp.StatusCode))
		return apperrors.NewWalletNotFoundError(address)
	case resp.StatusCode == http.StatusTooManyRequests:
		c.provider.RecordFailure(fmt.Errorf("status %d", resp.StatusCode))
		return apperrors.NewRateLimitError(parseRetryAfter(resp))
	case resp.StatusCode >= 500:
		c.recordTransportFailure(fmt.Errorf("status %d", resp.StatusCode))
		return apperrors.NewNetworkError(zerionProviderName, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		c.provider.RecordFailure(fmt.Errorf("status %d", resp.StatusCode))
		return apperrors.NewMalformedResponseError(zerionProviderName, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.provider.RecordFailure(err)
		return apperrors.NewMalformedResponseError(zerionProviderName, err.Error())
	}

	c.provider.RecordSuccess(time.Since(start))
	return nil
}

// recordTransportFailure tracks the failure and fails over to the other
// endpoint once the current one looks unhealthy
func (c *ZerionClient) recordTransportFailure(err error) {
	c.provider.RecordFailure(err)
	if !c.provider.IsHealthy() {
		if failoverErr := c.provider.Failover(); failoverErr == nil {
			c.logger.WithField("endpoint", c.provider.GetCurrentURL()).Warn("Failing over to alternate endpoint")
		}
	}
}

// isTimeout reports whether a transport error is a timeout
func isTimeout(err error) bool {
	type timeout interface {
		Timeout() bool
	}
	for e := err; e != nil; {
		if t, ok := e.(timeout); ok && t.Timeout() {
			return true
		}
		unwrapper, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = unwrapper.Unwrap()
	}
	return false
}

// parseRetryAfter reads the Retry-After header in seconds, 0 when absent
func parseRetryAfter(resp *http.Response) int {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return seconds
		}
	}
	return 0
}
