package finplan

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// MonteCarloInput is a request to the Monte Carlo Projector.
type MonteCarloInput struct {
	InitialCapital float64 // capital at period 0, >= 0
	Contribution   float64 // monthly contribution, >= 0
	Periods        int     // number of yearly periods, >= 1
	MeanReturnPct  float64 // mean annual return, in percent
	VolatilityPct  float64 // annual volatility, in percent, >= 0
	Simulations    int     // number of trajectories, >= 1
}

// Trajectory is one simulated path: Periods+1 capital values, starting with the initial capital.
type Trajectory []float64

// Final returns the capital at the end of the trajectory.
func (t Trajectory) Final() float64 { return t[len(t)-1] }

// NewRand returns a seeded random source, so that simulations can be replayed.
func NewRand(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

// SimulateMonteCarlo runs a simulation with the default policy.
func SimulateMonteCarlo(in MonteCarloInput, rng *rand.Rand) ([]Trajectory, error) {
	return DefaultPolicy().SimulateMonteCarlo(in, rng)
}

// SimulateMonteCarlo returns in.Simulations independent trajectories.
//
// Every period draws r ~ N(mean/100, volatility/100) and applies
//
//	capital = capital × (1 + r) + contribution × ContributionsPerPeriod
//
// so contributions are added at the end of the period, after growth. Returns
// are independent across periods and across runs. A nil rng uses an unseeded
// source.
func (p Policy) SimulateMonteCarlo(in MonteCarloInput, rng *rand.Rand) ([]Trajectory, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	mu, sigma := in.MeanReturnPct/100, in.VolatilityPct/100
	deposit := in.Contribution * p.ContributionsPerPeriod

	runs := make([]Trajectory, in.Simulations)
	for i := range runs {
		t := make(Trajectory, in.Periods+1)
		t[0] = in.InitialCapital
		capital := in.InitialCapital
		for period := 1; period <= in.Periods; period++ {
			r := rng.NormFloat64()*sigma + mu
			capital = capital*(1+r) + deposit
			t[period] = capital
		}
		runs[i] = t
	}
	return runs, nil
}

func (in MonteCarloInput) validate() error {
	switch {
	case in.Simulations <= 0:
		return fmt.Errorf("%w: number of simulations must be positive, got %d", ErrInvalidInput, in.Simulations)
	case in.Periods <= 0:
		return fmt.Errorf("%w: periods must be positive, got %d", ErrInvalidInput, in.Periods)
	case in.InitialCapital < 0 || !finite(in.InitialCapital):
		return fmt.Errorf("%w: initial capital must be a non-negative amount, got %v", ErrInvalidInput, in.InitialCapital)
	case in.Contribution < 0 || !finite(in.Contribution):
		return fmt.Errorf("%w: contribution must be a non-negative amount, got %v", ErrInvalidInput, in.Contribution)
	case !finite(in.MeanReturnPct):
		return fmt.Errorf("%w: mean return must be a number, got %v", ErrInvalidInput, in.MeanReturnPct)
	case in.VolatilityPct < 0 || !finite(in.VolatilityPct):
		return fmt.Errorf("%w: volatility must be non-negative, got %v", ErrInvalidInput, in.VolatilityPct)
	}
	return nil
}

// Band is the spread of simulated capital at one period.
type Band struct {
	Period        int
	P10, P50, P90 float64
}

// Bands returns one Band per period (including period 0) across all trajectories.
func Bands(runs []Trajectory) []Band {
	if len(runs) == 0 {
		return nil
	}
	bands := make([]Band, len(runs[0]))
	column := make([]float64, len(runs))
	for period := range bands {
		for i, t := range runs {
			column[i] = t[period]
		}
		slices.Sort(column)
		bands[period] = Band{
			Period: period,
			P10:    percentileSorted(column, 0.10),
			P50:    percentileSorted(column, 0.50),
			P90:    percentileSorted(column, 0.90),
		}
	}
	return bands
}

// TerminalStats describes the distribution of final capital.
type TerminalStats struct {
	Mean          float64
	P10, P50, P90 float64
	Invested      float64 // initial capital plus every contribution
	// ShortfallProbability is the share of trajectories ending below Invested.
	ShortfallProbability float64
}

// Terminal computes the statistics of the final capital of runs produced from 'in'.
func (p Policy) Terminal(in MonteCarloInput, runs []Trajectory) TerminalStats {
	stats := TerminalStats{
		Invested: in.InitialCapital + in.Contribution*p.ContributionsPerPeriod*float64(in.Periods),
	}
	if len(runs) == 0 {
		return stats
	}
	finals := make([]float64, len(runs))
	short := 0
	for i, t := range runs {
		finals[i] = t.Final()
		stats.Mean += finals[i]
		if finals[i] < stats.Invested {
			short++
		}
	}
	stats.Mean /= float64(len(runs))
	slices.Sort(finals)
	stats.P10 = percentileSorted(finals, 0.10)
	stats.P50 = percentileSorted(finals, 0.50)
	stats.P90 = percentileSorted(finals, 0.90)
	stats.ShortfallProbability = float64(short) / float64(len(runs))
	return stats
}
