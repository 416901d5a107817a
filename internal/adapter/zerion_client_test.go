package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallet-roaster/internal/config"
	apperrors "github.com/wallet-roaster/internal/errors"
)

const testAddress = "0x1111111111111111111111111111111111111111"

// newTestClient builds a client against a test server with retries reduced
// to a single attempt
func newTestClient(t *testing.T, serverURL string) *ZerionClient {
	t.Helper()

	client, err := NewZerionClient(config.ZerionConfig{
		BaseURL:        serverURL,
		APIKey:         "test-key",
		RequestTimeout: 5 * time.Second,
		RequestsPerSec: 1000,
		PageSize:       100,
		ChartPeriod:    "year",
	})
	require.NoError(t, err)
	client.retryConfig.MaxAttempts = 1
	client.retryConfig.InitialDelay = time.Millisecond
	return client
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	categorized := apperrors.Categorize(err)
	assert.Equal(t, code, categorized.Code)
}

func TestFetchWalletData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Basic dGVzdC1rZXk6", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/wallets/" + testAddress + "/portfolio":
			w.Write([]byte(`{"data": {"attributes": {
				"total_balance": "15000",
				"positions_distribution_by_type": {"wallet": 7500, "staked": 1500, "deposited": 6000}
			}}}`))
		case "/wallets/" + testAddress + "/positions":
			assert.Equal(t, "only_simple", r.URL.Query().Get("filter[positions]"))
			w.Write([]byte(`{"data": [
				{"attributes": {
					"position_type": "wallet",
					"quantity": {"float": 5},
					"value": 10000,
					"price": 2000,
					"fungible_info": {"name": "Ethereum", "symbol": "ETH", "flags": {"verified": true}},
					"flags": {"displayable": true, "is_trash": false}
				}}
			]}`))
		case "/wallets/" + testAddress + "/pnl":
			w.Write([]byte(`{"data": {"attributes": {"total_profit": 500, "total_profit_percent": 3.4}}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	data, err := client.FetchWalletData(context.Background(), testAddress)

	require.NoError(t, err)
	assert.Equal(t, testAddress, data.Address)
	assert.Equal(t, 15000.0, data.PortfolioValue)
	assert.Equal(t, 7500.0, data.Distribution.Wallet)
	assert.Equal(t, 1500.0, data.Distribution.Staked)
	require.Len(t, data.Positions, 1)
	require.Len(t, data.TopHoldings, 1)
	assert.Equal(t, "ETH", data.TopHoldings[0].Symbol)
	assert.Equal(t, 500.0, data.PnL.TotalProfit)
}

func TestFetchWalletDataDegradesOnSecondaryEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wallets/"+testAddress+"/portfolio" {
			w.Write([]byte(`{"data": {"attributes": {"total_balance": "100"}}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	data, err := client.FetchWalletData(context.Background(), testAddress)

	// Positions and PnL failures soften to empty values
	require.NoError(t, err)
	assert.Equal(t, 100.0, data.PortfolioValue)
	assert.Empty(t, data.Positions)
	assert.Empty(t, data.TopHoldings)
}

func TestFetchWalletDataErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedCode string
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, apperrors.CodeAuthentication},
		{"forbidden", http.StatusForbidden, `{}`, apperrors.CodeAuthentication},
		{"not found", http.StatusNotFound, `{}`, apperrors.CodeNotFound},
		{"server error", http.StatusInternalServerError, `{}`, apperrors.CodeNetwork},
		{"garbage body", http.StatusOK, `{"data": [broken`, apperrors.CodeMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			_, err := client.FetchWalletData(context.Background(), testAddress)

			assertErrorCode(t, err, tt.expectedCode)
		})
	}
}

func TestFetchWalletDataUnreachableHost(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")

	_, err := client.FetchWalletData(context.Background(), testAddress)

	assertErrorCode(t, err, apperrors.CodeNetwork)
}

func TestFetchTransactions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallets/"+testAddress+"/transactions", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("page[size]"))
		w.Write([]byte(`{"data": [
			{"attributes": {
				"operation_type": "trade",
				"hash": "0xaaa",
				"mined_at": "2025-06-01T10:30:00Z",
				"status": "confirmed",
				"fee": {"value": 0.1},
				"transfers": []
			}}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	txs, err := client.FetchTransactions(context.Background(), testAddress)

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "0xaaa", txs[0].Hash)
}

func TestFetchChart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallets/"+testAddress+"/charts/year", r.URL.Path)
		w.Write([]byte(`{"data": {"attributes": {"points": [[1735689600, 1000], [1735776000, 1100]]}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	points, err := client.FetchChart(context.Background(), testAddress)

	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 1100.0, points[1].Value)
}

func TestFetchRetriesOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data": {"attributes": {"points": []}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.retryConfig.MaxAttempts = 2

	_, err := client.FetchChart(context.Background(), testAddress)

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestFetchDoesNotRetryAuthenticationErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.retryConfig.MaxAttempts = 3

	_, err := client.FetchChart(context.Background(), testAddress)

	assertErrorCode(t, err, apperrors.CodeAuthentication)
	assert.Equal(t, 1, attempts)
}
