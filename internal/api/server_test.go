package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallet-roaster/internal/analytics"
	apperrors "github.com/wallet-roaster/internal/errors"
	"github.com/wallet-roaster/internal/service"
	"github.com/wallet-roaster/internal/types"
)

const testAddress = "0x1111111111111111111111111111111111111111"

// mockWalletService implements WalletServiceInterface for testing
type mockWalletService struct {
	snapshot     *types.WalletData
	snapshotErr  error
	chartView    *service.ChartView
	chartErr     error
	refreshCalls int
}

func (m *mockWalletService) GetSnapshot(_ context.Context, _ string) (*types.WalletData, error) {
	return m.snapshot, m.snapshotErr
}

func (m *mockWalletService) Refresh(_ context.Context, _ string) (*types.WalletData, error) {
	m.refreshCalls++
	return m.snapshot, m.snapshotErr
}

func (m *mockWalletService) GetChart(_ context.Context, _ string) (*service.ChartView, error) {
	return m.chartView, m.chartErr
}

// mockRoastService implements RoastServiceInterface for testing
type mockRoastService struct {
	result     *types.RoastResult
	err        error
	lastEngine service.RoastEngine
}

func (m *mockRoastService) GenerateRoast(_ context.Context, _ string, engine service.RoastEngine) (*types.RoastResult, error) {
	m.lastEngine = engine
	return m.result, m.err
}

// mockHealthChecker implements HealthChecker for testing
type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) Ping(_ context.Context) error {
	return m.err
}

func newTestServer(wallet *mockWalletService, roasts *mockRoastService, health HealthChecker) *Server {
	return NewServer(&ServerConfig{
		Host:           "127.0.0.1",
		Port:           "0",
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		IdleTimeout:    5 * time.Second,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}, wallet, roasts, health)
}

func testSnapshot() *types.WalletData {
	return &types.WalletData{
		Address:        testAddress,
		PortfolioValue: 5000,
		Distribution:   types.Distribution{Wallet: 4000, Staked: 1000},
		TopHoldings: []types.Holding{
			{Symbol: "ETH", Name: "Ethereum", Value: 4500, Verified: true},
		},
		TradingFrequency: types.FrequencyModerate,
		TransactionInsights: &types.TransactionInsights{
			TotalTransactions:      10,
			SuccessfulTransactions: 9,
			FailedTransactions:     1,
		},
		ChartData: &types.ChartSummary{
			Points: []types.ChartDataPoint{
				{Timestamp: 1740787200, Value: 100}, // Mar 1 2025
				{Timestamp: 1740873600, Value: 110},
				{Timestamp: 1740960000, Value: 90},
				{Timestamp: 1741046400, Value: 120},
			},
			HighestValue: 120,
			LowestValue:  90,
		},
	}
}

func doRequest(t *testing.T, server *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dest))
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		server := newTestServer(&mockWalletService{}, &mockRoastService{}, &mockHealthChecker{})

		rec := doRequest(t, server, "GET", "/health")

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		decodeBody(t, rec, &body)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "ok", body["cache"])
	})

	t.Run("degraded when cache unreachable", func(t *testing.T) {
		health := &mockHealthChecker{err: assert.AnError}
		server := newTestServer(&mockWalletService{}, &mockRoastService{}, health)

		rec := doRequest(t, server, "GET", "/health")

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		decodeBody(t, rec, &body)
		assert.Equal(t, "degraded", body["status"])
	})
}

func TestGetWallet(t *testing.T) {
	wallet := &mockWalletService{snapshot: testSnapshot()}
	server := newTestServer(wallet, &mockRoastService{}, nil)

	rec := doRequest(t, server, "GET", "/api/wallets/"+testAddress)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body types.WalletData
	decodeBody(t, rec, &body)
	assert.Equal(t, testAddress, body.Address)
	assert.Equal(t, 5000.0, body.PortfolioValue)
	require.Len(t, body.TopHoldings, 1)
}

func TestGetWalletErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"invalid address", apperrors.NewInvalidAddressError("nope"), http.StatusBadRequest, "INVALID_ADDRESS"},
		{"not found", apperrors.NewWalletNotFoundError(testAddress), http.StatusNotFound, apperrors.CodeNotFound},
		{"upstream auth", apperrors.NewAuthenticationError("zerion", nil), http.StatusBadGateway, apperrors.CodeAuthentication},
		{"upstream timeout", apperrors.NewTimeoutError("zerion", nil), http.StatusGatewayTimeout, apperrors.CodeTimeout},
		{"plain error", assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wallet := &mockWalletService{snapshotErr: tt.err}
			server := newTestServer(wallet, &mockRoastService{}, nil)

			rec := doRequest(t, server, "GET", "/api/wallets/"+testAddress)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var body ErrorResponse
			decodeBody(t, rec, &body)
			assert.Equal(t, tt.expectedCode, body.Error.Code)
		})
	}
}

func TestRefreshWallet(t *testing.T) {
	wallet := &mockWalletService{snapshot: testSnapshot()}
	server := newTestServer(wallet, &mockRoastService{}, nil)

	rec := doRequest(t, server, "POST", "/api/wallets/"+testAddress+"/refresh")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, wallet.refreshCalls)
}

func TestGetInsights(t *testing.T) {
	wallet := &mockWalletService{snapshot: testSnapshot()}
	server := newTestServer(wallet, &mockRoastService{}, nil)

	rec := doRequest(t, server, "GET", "/api/wallets/"+testAddress+"/insights")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Address          string                     `json:"address"`
		TradingFrequency types.TradingFrequency     `json:"tradingFrequency"`
		Transactions     *types.TransactionInsights `json:"transactions"`
		Chart            *analytics.ChartInsights   `json:"chart"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, testAddress, body.Address)
	assert.Equal(t, types.FrequencyModerate, body.TradingFrequency)
	require.NotNil(t, body.Transactions)
	assert.Equal(t, 10, body.Transactions.TotalTransactions)
	require.NotNil(t, body.Chart)
	assert.Equal(t, "Mar 3", body.Chart.WorstDayDate)
}

func TestGetChart(t *testing.T) {
	wallet := &mockWalletService{
		chartView: &service.ChartView{
			Summary: &types.ChartSummary{
				Points: []types.ChartDataPoint{
					{Timestamp: 1735689600, Value: 4000},
					{Timestamp: 1735776000, Value: 5000},
				},
				HighestValue: 5000,
				LowestValue:  4000,
			},
			Axis: analytics.NiceAxis(4000, 5000),
		},
	}
	server := newTestServer(wallet, &mockRoastService{}, nil)

	rec := doRequest(t, server, "GET", "/api/wallets/"+testAddress+"/chart")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body service.ChartView
	decodeBody(t, rec, &body)
	require.NotNil(t, body.Summary)
	assert.Equal(t, 5000.0, body.Summary.HighestValue)
	assert.Greater(t, body.Axis.Step, 0.0)
}

func TestGenerateRoast(t *testing.T) {
	roasts := &mockRoastService{
		result: &types.RoastResult{
			ID:          "roast-1",
			MainRoast:   "Mid portfolio energy",
			Personality: "The Tourist",
			Score:       55,
		},
	}
	server := newTestServer(&mockWalletService{}, roasts, nil)

	t.Run("default engine is deterministic", func(t *testing.T) {
		rec := doRequest(t, server, "POST", "/api/wallets/"+testAddress+"/roast")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, service.EngineDeterministic, roasts.lastEngine)
		var body types.RoastResult
		decodeBody(t, rec, &body)
		assert.Equal(t, 55, body.Score)
	})

	t.Run("engine query selects generative", func(t *testing.T) {
		rec := doRequest(t, server, "POST", "/api/wallets/"+testAddress+"/roast?engine=ai")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, service.EngineGenerative, roasts.lastEngine)
	})

	t.Run("unknown engine falls back to deterministic", func(t *testing.T) {
		rec := doRequest(t, server, "POST", "/api/wallets/"+testAddress+"/roast?engine=quantum")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, service.EngineDeterministic, roasts.lastEngine)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer(&mockWalletService{snapshot: testSnapshot()}, &mockRoastService{}, nil)

	rec := doRequest(t, server, "DELETE", "/api/wallets/"+testAddress)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRateLimiting(t *testing.T) {
	server := NewServer(&ServerConfig{
		Host:           "127.0.0.1",
		Port:           "0",
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		IdleTimeout:    5 * time.Second,
		RateLimitRPS:   1,
		RateLimitBurst: 2,
	}, &mockWalletService{snapshot: testSnapshot()}, &mockRoastService{}, nil)

	var lastCode int
	for i := 0; i < 5; i++ {
		rec := doRequest(t, server, "GET", "/api/wallets/"+testAddress)
		lastCode = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(&mockWalletService{}, &mockRoastService{}, nil)

	rec := doRequest(t, server, "OPTIONS", "/api/wallets/"+testAddress)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
