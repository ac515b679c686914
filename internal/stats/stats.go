// Package stats aggregates a pooled simulated cross-section into the
// inequality and consumption statistics reported by an experiment.
package stats

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyPopulation is returned instead of letting NaN propagate when
	// an aggregate is requested over zero agents.
	ErrEmptyPopulation = errors.New("aggregate undefined for empty population")
	// ErrZeroMeanIncome guards the wealth-ratio denominator.
	ErrZeroMeanIncome = errors.New("wealth ratio undefined: mean permanent income is zero")
	// ErrZeroTotalAssets guards Lorenz shares when nothing is held.
	ErrZeroTotalAssets = errors.New("lorenz shares undefined: total assets are zero")
)

// QuintileCutoffs are the permanent-income percentile bands the average MPC
// is reported over.
var QuintileCutoffs = [][2]float64{{0.0, 0.2}, {0.2, 0.4}, {0.4, 0.6}, {0.6, 0.8}, {0.8, 1.0}}

// WealthRatio is mean assets over mean permanent income.
func WealthRatio(assets, permIncome []float64) (float64, error) {
	if len(assets) == 0 || len(permIncome) == 0 {
		return 0, ErrEmptyPopulation
	}
	meanP := stat.Mean(permIncome, nil)
	if meanP == 0 {
		return 0, ErrZeroMeanIncome
	}
	return stat.Mean(assets, nil) / meanP, nil
}

// InteriorPercentiles returns n evenly spaced percentile points strictly
// inside (0, 1), spanning [0.001, 0.999].
func InteriorPercentiles(n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{0.5}
	}
	pts := make([]float64, n)
	floats.Span(pts, 0.001, 0.999)
	return pts
}

// Curve is a Lorenz curve on the closed unit interval: Percentiles[i] is a
// cumulative population fraction (agents sorted ascending by assets) and
// Shares[i] the cumulative fraction of total assets they hold. The first
// point is exactly (0, 0) and the last exactly (1, 1).
type Curve struct {
	Percentiles []float64
	Shares      []float64
}

// Points returns the number of curve points, boundary points included.
func (c Curve) Points() int { return len(c.Percentiles) }

// LorenzCurve computes cumulative asset shares at the given interior
// percentile points and clamps the boundary points on.
func LorenzCurve(assets []float64, percentiles []float64) (Curve, error) {
	if len(assets) == 0 {
		return Curve{}, ErrEmptyPopulation
	}
	shares, err := LorenzShares(assets, percentiles)
	if err != nil {
		return Curve{}, err
	}
	pcts := make([]float64, 0, len(percentiles)+2)
	out := make([]float64, 0, len(percentiles)+2)
	pcts = append(pcts, 0)
	out = append(out, 0)
	pcts = append(pcts, percentiles...)
	out = append(out, shares...)
	pcts = append(pcts, 1)
	out = append(out, 1)
	return Curve{Percentiles: pcts, Shares: out}, nil
}

// LorenzShares returns, for each percentile p in (0,1), the share of total
// assets held by the bottom p-fraction of agents, interpolating linearly
// between order statistics of the cumulative sum.
func LorenzShares(assets []float64, percentiles []float64) ([]float64, error) {
	if len(assets) == 0 {
		return nil, ErrEmptyPopulation
	}
	sorted := make([]float64, len(assets))
	copy(sorted, assets)
	sort.Float64s(sorted)

	cum := make([]float64, len(sorted))
	floats.CumSum(cum, sorted)
	total := cum[len(cum)-1]
	if total == 0 {
		return nil, ErrZeroTotalAssets
	}

	shares := make([]float64, len(percentiles))
	n := float64(len(sorted))
	for i, p := range percentiles {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("percentile %g out of [0, 1]", p)
		}
		pos := p * n
		lo := int(pos) // agents fully below the cut
		frac := pos - float64(lo)
		s := 0.0
		if lo > 0 {
			s = cum[lo-1]
		}
		if frac > 0 && lo < len(sorted) {
			s += frac * sorted[lo]
		}
		shares[i] = s / total
	}
	return shares, nil
}

// Gini computes the Gini coefficient as twice the area between the Lorenz
// curve and the line of equality, by the trapezoid rule over the full curve
// including its boundary points.
func Gini(c Curve) (float64, error) {
	if c.Points() < 2 {
		return 0, ErrEmptyPopulation
	}
	area := 0.0
	for i := 1; i < c.Points(); i++ {
		dp := c.Percentiles[i] - c.Percentiles[i-1]
		area += dp * (c.Shares[i] + c.Shares[i-1]) / 2
	}
	return 1 - 2*area, nil
}

// SubpopAverages partitions agents into percentile bands of a ranking
// variable and returns the mean of values within each band. Agents are
// assigned to bands by their rank in the ranking variable; band [lo, hi)
// covers ranks [lo*N, hi*N).
func SubpopAverages(values, ranking []float64, cutoffs [][2]float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptyPopulation
	}
	if len(values) != len(ranking) {
		return nil, fmt.Errorf("values and ranking lengths differ: %d vs %d", len(values), len(ranking))
	}
	idx := make([]int, len(ranking))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return ranking[idx[a]] < ranking[idx[b]] })

	n := float64(len(values))
	out := make([]float64, len(cutoffs))
	for g, cut := range cutoffs {
		lo := int(cut[0] * n)
		hi := int(cut[1] * n)
		if hi > len(values) {
			hi = len(values)
		}
		if hi <= lo {
			return nil, fmt.Errorf("cutoff band [%g, %g) selects no agents", cut[0], cut[1])
		}
		sum := 0.0
		for _, j := range idx[lo:hi] {
			sum += values[j]
		}
		out[g] = sum / float64(hi-lo)
	}
	return out, nil
}

// AvgMPCByQuintile reports the mean marginal propensity to consume within
// each permanent-income quintile, poorest first.
func AvgMPCByQuintile(mpc, permIncome []float64) ([]float64, error) {
	return SubpopAverages(mpc, permIncome, QuintileCutoffs)
}
