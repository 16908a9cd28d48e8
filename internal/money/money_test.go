package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyPercent(t *testing.T) {
	assert.Equal(t, int64(200), ApplyPercent(1000, 20))
	assert.Equal(t, int64(0), ApplyPercent(1000, 0))
	assert.Equal(t, int64(0), ApplyPercent(0, 20))
	// 1 * 0.5 rounds away from zero
	assert.Equal(t, int64(1), ApplyPercent(1, 50))
	assert.Equal(t, int64(160), ApplyPercent(799, 20))
}

func TestApplyRate(t *testing.T) {
	rate := decimal.RequireFromString("0.02")

	assert.Equal(t, int64(16), ApplyRate(800, rate))
	assert.Equal(t, int64(25), ApplyRate(1250, rate))
	// 25 * 0.02 = 0.5
	assert.Equal(t, int64(1), ApplyRate(25, rate))
	// 24 * 0.02 = 0.48
	assert.Equal(t, int64(0), ApplyRate(24, rate))
}

func TestRatePercent(t *testing.T) {
	assert.Equal(t, "2", RatePercent(decimal.RequireFromString("0.02")))
	assert.Equal(t, "20", RatePercent(PercentRate(20)))
}
