package types

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestDistributionTotal(t *testing.T) {
	d := Distribution{Wallet: 100, Staked: 50, Deposited: 25}
	assert.Equal(t, 175.0, d.Total())

	assert.Equal(t, 0.0, Distribution{}.Total())
}

func TestDistributionTotalProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total never drops below any single component", prop.ForAll(
		func(wallet, staked, deposited float64) bool {
			d := Distribution{Wallet: wallet, Staked: staked, Deposited: deposited}
			total := d.Total()
			return total >= wallet && total >= staked && total >= deposited
		},
		gen.Float64Range(0, 1e12),
		gen.Float64Range(0, 1e12),
		gen.Float64Range(0, 1e12),
	))

	properties.TestingRun(t)
}

func TestServiceErrorMessage(t *testing.T) {
	err := &ServiceError{Code: "NOT_FOUND", Message: "wallet not found"}
	assert.Equal(t, "wallet not found", err.Error())
}
