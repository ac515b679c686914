package model

import (
	"errors"
	"sort"
)

var errBadRule = errors.New("consumption rule grids are malformed")

// Rule is the solved decision rule: consumption as a function of the
// cash-on-hand level m and the permanent income level p. For each node of
// PermNodes it holds a piecewise-linear consumption schedule over
// cash-on-hand; between permanent nodes the schedules are blended linearly.
// PermNodes must be ascending; MGrids[k] and CGrids[k] are ascending in m.
type Rule struct {
	PermNodes []float64
	MGrids    [][]float64
	CGrids    [][]float64
}

// NewRule validates grid shapes and returns the rule.
func NewRule(permNodes []float64, mGrids, cGrids [][]float64) (*Rule, error) {
	if len(permNodes) == 0 || len(mGrids) != len(permNodes) || len(cGrids) != len(permNodes) {
		return nil, errBadRule
	}
	for k := range permNodes {
		if len(mGrids[k]) < 2 || len(mGrids[k]) != len(cGrids[k]) {
			return nil, errBadRule
		}
	}
	return &Rule{PermNodes: permNodes, MGrids: mGrids, CGrids: cGrids}, nil
}

// Consumption evaluates the rule at (m, p).
func (r *Rule) Consumption(m, p float64) float64 {
	lo, hi, w := r.bracketPerm(p)
	if lo == hi {
		return interp(r.MGrids[lo], r.CGrids[lo], m)
	}
	cLo := interp(r.MGrids[lo], r.CGrids[lo], m)
	cHi := interp(r.MGrids[hi], r.CGrids[hi], m)
	return cLo*(1-w) + cHi*w
}

// MPC is the partial derivative of consumption with respect to cash-on-hand,
// holding permanent income fixed: the slope of the active segment.
func (r *Rule) MPC(m, p float64) float64 {
	lo, hi, w := r.bracketPerm(p)
	if lo == hi {
		return slope(r.MGrids[lo], r.CGrids[lo], m)
	}
	sLo := slope(r.MGrids[lo], r.CGrids[lo], m)
	sHi := slope(r.MGrids[hi], r.CGrids[hi], m)
	return sLo*(1-w) + sHi*w
}

// bracketPerm locates p within PermNodes, returning the bracketing node
// indexes and the blend weight on the upper node. Outside the grid the
// nearest node is used alone.
func (r *Rule) bracketPerm(p float64) (int, int, float64) {
	n := len(r.PermNodes)
	if p <= r.PermNodes[0] {
		return 0, 0, 0
	}
	if p >= r.PermNodes[n-1] {
		return n - 1, n - 1, 0
	}
	hi := sort.SearchFloat64s(r.PermNodes, p)
	lo := hi - 1
	w := (p - r.PermNodes[lo]) / (r.PermNodes[hi] - r.PermNodes[lo])
	return lo, hi, w
}

// interp is piecewise-linear interpolation with linear extrapolation on both
// ends (the lower end matters when an agent lands below the first node).
func interp(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0] + (x-xs[0])*segSlope(xs, ys, 0)
	}
	if x >= xs[n-1] {
		return ys[n-1] + (x-xs[n-1])*segSlope(xs, ys, n-2)
	}
	hi := sort.SearchFloat64s(xs, x)
	lo := hi - 1
	w := (x - xs[lo]) / (xs[hi] - xs[lo])
	return ys[lo]*(1-w) + ys[hi]*w
}

// slope returns the derivative of the piecewise-linear interpolant at x.
func slope(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return segSlope(xs, ys, 0)
	}
	if x >= xs[n-1] {
		return segSlope(xs, ys, n-2)
	}
	hi := sort.SearchFloat64s(xs, x)
	return segSlope(xs, ys, hi-1)
}

func segSlope(xs, ys []float64, i int) float64 {
	return (ys[i+1] - ys[i]) / (xs[i+1] - xs[i])
}
