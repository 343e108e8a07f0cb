package finplan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRiskUndefined(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
	}{
		{"empty", nil},
		{"single price", []float64{100}},
		{"single return", []float64{100, 101}},
		{"zero price", []float64{100, 0, 100, 101}},
		{"NaN price", []float64{100, math.NaN(), 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := EstimateRisk(tt.prices)
			assert.False(t, r.Defined())
			_, ok := r.Volatility()
			assert.False(t, ok)
			_, ok = r.VaR()
			assert.False(t, ok)
		})
	}
}

func TestEstimateRiskConstantPrices(t *testing.T) {
	r := EstimateRisk([]float64{50, 50, 50, 50, 50})
	require.True(t, r.Defined())
	vol, _ := r.Volatility()
	v, _ := r.VaR()
	assert.Equal(t, 0.0, vol)
	assert.Equal(t, 0.0, v)
	assert.Equal(t, 4, r.Observations)
}

func TestEstimateRisk(t *testing.T) {
	r := EstimateRisk([]float64{100, 110, 99})
	require.True(t, r.Defined())
	assert.Equal(t, 2, r.Observations)
	assert.Equal(t, 0.95, r.Confidence)

	// returns are +0.1 and -0.1
	vol, _ := r.Volatility()
	assert.InDelta(t, math.Sqrt(0.02)*math.Sqrt(252), vol, 1e-9)
	v, _ := r.VaR()
	assert.InDelta(t, -0.09, v, 1e-9)
	mean, _ := r.AnnualReturn()
	assert.InDelta(t, 0, mean, 1e-9)
}

func TestEstimateRiskVolatilityIsNonNegative(t *testing.T) {
	prices := []float64{10, 9, 11, 8, 12, 12.5, 7, 30}
	r := EstimateRisk(prices)
	vol, ok := r.Volatility()
	require.True(t, ok)
	assert.GreaterOrEqual(t, vol, 0.0)
}

func TestSimpleReturns(t *testing.T) {
	got, err := SimpleReturns([]float64{100, 150, 75})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, -0.5}, got, 1e-12)

	got, err = SimpleReturns([]float64{100})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = SimpleReturns([]float64{0, 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPercentile(t *testing.T) {
	values := []float64{5, 1, 4, 2, 3}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.05, 1.2},
		{0.25, 2},
		{0.5, 3},
		{0.9, 4.6},
		{1, 5},
	}
	for _, tt := range tests {
		if got := Percentile(values, tt.q); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Percentile(%v, %v) = %v, want %v", values, tt.q, got, tt.want)
		}
	}
	assert.Equal(t, []float64{5, 1, 4, 2, 3}, values, "Percentile must not sort its input")
}
