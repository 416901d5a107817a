package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Name:             "test",
		MaxFailures:      3,
		FailureThreshold: 0.5,
		Timeout:          50 * time.Millisecond,
		HalfOpenMaxCalls: 2,
	}
}

func failing() error    { return errors.New("upstream down") }
func succeeding() error { return nil }

func TestExecuteClosedState(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())

	err := cb.Execute(context.Background(), succeeding)

	assert.NoError(t, err)
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())

	for i := 0; i < 3; i++ {
		_ = cb.Execute(context.Background(), failing)
	}

	assert.Equal(t, StateOpen, cb.GetState())

	// Calls are rejected without invoking fn while open
	calls := 0
	err := cb.Execute(context.Background(), func() error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 0, calls)
}

func TestSuccessResetsConsecutiveCount(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())

	_ = cb.Execute(context.Background(), failing)
	_ = cb.Execute(context.Background(), failing)
	require.NoError(t, cb.Execute(context.Background(), succeeding))
	_ = cb.Execute(context.Background(), failing)
	_ = cb.Execute(context.Background(), failing)

	// 3 failures over 4 calls exceeds the 0.5 rate with enough samples
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestRecoveryThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())

	for i := 0; i < 3; i++ {
		_ = cb.Execute(context.Background(), failing)
	}
	require.Equal(t, StateOpen, cb.GetState())

	time.Sleep(60 * time.Millisecond)

	// Probe budget is HalfOpenMaxCalls successes
	require.NoError(t, cb.Execute(context.Background(), succeeding))
	assert.Equal(t, StateHalfOpen, cb.GetState())
	require.NoError(t, cb.Execute(context.Background(), succeeding))

	assert.Equal(t, StateClosed, cb.GetState())
}

func TestFailureInHalfOpenReopens(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())

	for i := 0; i < 3; i++ {
		_ = cb.Execute(context.Background(), failing)
	}
	time.Sleep(60 * time.Millisecond)

	_ = cb.Execute(context.Background(), failing)

	assert.Equal(t, StateOpen, cb.GetState())
}

func TestGetStats(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())

	_ = cb.Execute(context.Background(), failing)
	_ = cb.Execute(context.Background(), succeeding)

	stats := cb.GetStats()

	assert.Equal(t, "test", stats.Name)
	assert.Equal(t, StateClosed, stats.State)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 1, stats.Successes)
	assert.Equal(t, 2, stats.TotalCalls)
	assert.Equal(t, 0.5, stats.FailureRate)
}

func TestReset(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())

	for i := 0; i < 3; i++ {
		_ = cb.Execute(context.Background(), failing)
	}
	require.Equal(t, StateOpen, cb.GetState())

	cb.Reset()

	assert.Equal(t, StateClosed, cb.GetState())
	assert.NoError(t, cb.Execute(context.Background(), succeeding))
}

func TestErrorsPassThrough(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())
	boom := errors.New("boom")

	err := cb.Execute(context.Background(), func() error { return boom })

	assert.ErrorIs(t, err, boom)
}
