package finplan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCompounding(t *testing.T) {
	tests := []struct {
		name  string
		in    ProjectionInput
		final string
	}{
		{"equity", ProjectionInput{Contribution: 1000, RatePct: 5, Periods: 10, Class: Equity}, "13971.64"},
		{"bond", ProjectionInput{Contribution: 1000, RatePct: 5, Periods: 1, Class: Bond}, "1040.00"},
		{"fund", ProjectionInput{Contribution: 1000, RatePct: 5, Periods: 1, Class: Fund}, "1040.00"},
		{"zero rate", ProjectionInput{Contribution: 100, RatePct: 0, Periods: 3, Class: Equity}, "300.00"},
		{"no contribution", ProjectionInput{Contribution: 0, RatePct: 7, Periods: 4, Class: Equity}, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := ProjectCompounding(tt.in)
			require.NoError(t, err)
			require.Len(t, points, tt.in.Periods)
			for i, p := range points {
				assert.Equal(t, i+1, p.Period)
			}
			got := points[len(points)-1].Capital
			assert.Equal(t, tt.final, got.Decimal().StringFixed(2))
			assert.Equal(t, DefaultCurrency, got.Currency())
		})
	}
}

func TestProjectCompoundingMatchesRecurrence(t *testing.T) {
	in := ProjectionInput{Contribution: 1000, RatePct: 5, Periods: 10, Class: Equity}
	points, err := ProjectCompounding(in)
	require.NoError(t, err)

	capital := 0.0
	for range in.Periods {
		capital = (capital + in.Contribution) * (1 + in.RatePct/100*1.2)
	}
	want := M(capital, DefaultCurrency).Round(2)
	if got := points[len(points)-1].Capital; !got.Equal(want) {
		t.Errorf("final capital = %v, want %v", got, want)
	}
}

func TestProjectCompoundingIsMonotone(t *testing.T) {
	points, err := ProjectCompounding(ProjectionInput{Contribution: 250, RatePct: 3.5, Periods: 30, Class: Bond})
	require.NoError(t, err)
	for i := 1; i < len(points); i++ {
		if points[i].Capital.LessThanOrEqual(points[i-1].Capital) {
			t.Fatalf("capital[%d] = %v is not above capital[%d] = %v", i, points[i].Capital, i-1, points[i-1].Capital)
		}
	}
}

func TestProjectCompoundingCurrency(t *testing.T) {
	points, err := ProjectCompounding(ProjectionInput{Contribution: 10, RatePct: 1, Periods: 1, Currency: "EUR"})
	require.NoError(t, err)
	assert.Equal(t, "EUR", points[0].Capital.Currency())
}

func TestProjectCompoundingRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   ProjectionInput
	}{
		{"zero periods", ProjectionInput{Contribution: 1000, RatePct: 5, Periods: 0}},
		{"negative periods", ProjectionInput{Contribution: 1000, RatePct: 5, Periods: -2}},
		{"negative contribution", ProjectionInput{Contribution: -1, RatePct: 5, Periods: 3}},
		{"NaN contribution", ProjectionInput{Contribution: math.NaN(), RatePct: 5, Periods: 3}},
		{"infinite rate", ProjectionInput{Contribution: 1, RatePct: math.Inf(1), Periods: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProjectCompounding(tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestPolicyMultiplier(t *testing.T) {
	p := DefaultPolicy()
	p.EquityMultiplier = 1
	points, err := p.ProjectCompounding(ProjectionInput{Contribution: 1000, RatePct: 5, Periods: 1, Class: Equity})
	require.NoError(t, err)
	assert.Equal(t, "1050.00", points[0].Capital.Decimal().StringFixed(2))
}

func TestSummarizeProjection(t *testing.T) {
	in := ProjectionInput{Contribution: 1000, RatePct: 5, Periods: 10, Class: Equity}
	points, err := ProjectCompounding(in)
	require.NoError(t, err)
	s := SummarizeProjection(in, points)
	assert.Equal(t, "13971.64", s.Final.Decimal().StringFixed(2))
	assert.Equal(t, "10000.00", s.Contributed.Decimal().StringFixed(2))
	assert.Equal(t, "3971.64", s.Growth.Decimal().StringFixed(2))
}
