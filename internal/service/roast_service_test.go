package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wallet-roaster/internal/errors"
	"github.com/wallet-roaster/internal/roast"
	"github.com/wallet-roaster/internal/types"
)

// mockSnapshotSource implements SnapshotSource for testing
type mockSnapshotSource struct {
	snapshot *types.WalletData
	err      error
}

func (m *mockSnapshotSource) GetSnapshot(_ context.Context, address string) (*types.WalletData, error) {
	if m.err != nil {
		return nil, m.err
	}
	snapshot := *m.snapshot
	snapshot.Address = address
	return &snapshot, nil
}

// mockProvider implements roast.Provider for testing
type mockProvider struct {
	result *types.RoastResult
	err    error
	calls  int
}

func (m *mockProvider) GenerateRoast(_ context.Context, _ *types.WalletData) (*types.RoastResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	result := *m.result
	return &result, nil
}

func newTestRoastService(source *mockSnapshotSource, deterministic, generative *mockProvider) *RoastService {
	// A typed-nil *mockProvider would defeat the nil check in providerFor
	var gen roast.Provider
	if generative != nil {
		gen = generative
	}

	svc := NewRoastService(source, deterministic, gen)
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	}
	svc.newID = func() string { return "fixed-id" }
	return svc
}

func testSource() *mockSnapshotSource {
	return &mockSnapshotSource{
		snapshot: &types.WalletData{PortfolioValue: 5000},
	}
}

func testResult(score int) *types.RoastResult {
	return &types.RoastResult{
		MainRoast:   "Mid portfolio energy",
		Personality: "The Tourist",
		Score:       score,
	}
}

func TestGenerateRoastDeterministic(t *testing.T) {
	deterministic := &mockProvider{result: testResult(55)}
	svc := newTestRoastService(testSource(), deterministic, nil)

	result, err := svc.GenerateRoast(context.Background(), validAddress, EngineDeterministic)

	require.NoError(t, err)
	assert.Equal(t, "fixed-id", result.ID)
	assert.Equal(t, 55, result.Score)
	assert.Equal(t, time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC), result.GeneratedAt)
	assert.Equal(t, 1, deterministic.calls)
}

func TestGenerateRoastSelectsGenerative(t *testing.T) {
	deterministic := &mockProvider{result: testResult(55)}
	generative := &mockProvider{result: testResult(70)}
	svc := newTestRoastService(testSource(), deterministic, generative)

	result, err := svc.GenerateRoast(context.Background(), validAddress, EngineGenerative)

	require.NoError(t, err)
	assert.Equal(t, 70, result.Score)
	assert.Equal(t, 1, generative.calls)
	assert.Equal(t, 0, deterministic.calls)
}

func TestGenerateRoastGenerativeUnconfigured(t *testing.T) {
	deterministic := &mockProvider{result: testResult(55)}
	svc := newTestRoastService(testSource(), deterministic, nil)

	result, err := svc.GenerateRoast(context.Background(), validAddress, EngineGenerative)

	require.NoError(t, err)
	assert.Equal(t, 55, result.Score)
	assert.Equal(t, 1, deterministic.calls)
}

func TestGenerateRoastPropagatesSnapshotError(t *testing.T) {
	source := &mockSnapshotSource{err: apperrors.NewWalletNotFoundError(validAddress)}
	deterministic := &mockProvider{result: testResult(55)}
	svc := newTestRoastService(source, deterministic, nil)

	_, err := svc.GenerateRoast(context.Background(), validAddress, EngineDeterministic)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.Categorize(err).Code)
	assert.Equal(t, 0, deterministic.calls)
}
