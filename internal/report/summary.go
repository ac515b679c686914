// Package report turns pooled experiment output into the aggregate summary
// and on-disk artifacts (CSV ledger, text table).
package report

import (
	"consumption-sim/internal/experiment"
	"consumption-sim/internal/stats"
)

// DefaultLorenzPoints is the interior percentile count of the reported
// Lorenz curve: 201 points spanning [0.001, 0.999].
const DefaultLorenzPoints = 201

// Summary is the aggregate view of one experiment run.
type Summary struct {
	AgentCount     int
	WealthRatio    float64
	Lorenz         stats.Curve
	Gini           float64
	AvgMPCQuintile []float64 // poorest quintile first
}

// BuildSummary aggregates a result. lorenzPoints <= 0 selects the default
// grid. Degenerate populations surface as errors, never as NaN.
func BuildSummary(res *experiment.Result, lorenzPoints int) (*Summary, error) {
	if lorenzPoints <= 0 {
		lorenzPoints = DefaultLorenzPoints
	}

	ratio, err := stats.WealthRatio(res.Assets, res.PermIncome)
	if err != nil {
		return nil, err
	}
	curve, err := stats.LorenzCurve(res.Assets, stats.InteriorPercentiles(lorenzPoints))
	if err != nil {
		return nil, err
	}
	gini, err := stats.Gini(curve)
	if err != nil {
		return nil, err
	}
	mpc, err := stats.AvgMPCByQuintile(res.MPC, res.PermIncome)
	if err != nil {
		return nil, err
	}

	return &Summary{
		AgentCount:     res.AgentCount(),
		WealthRatio:    ratio,
		Lorenz:         curve,
		Gini:           gini,
		AvgMPCQuintile: mpc,
	}, nil
}
