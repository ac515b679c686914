package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRule_RejectsMalformedGrids(t *testing.T) {
	_, err := NewRule(nil, nil, nil)
	assert.Error(t, err)

	_, err = NewRule([]float64{1}, [][]float64{{0, 1}}, [][]float64{{0}})
	assert.Error(t, err)

	_, err = NewRule([]float64{1}, [][]float64{{0}}, [][]float64{{0}})
	assert.Error(t, err, "a single node cannot define a segment")
}

// linearRule builds c(m, p) = mpc*m at a single permanent node.
func linearRule(t *testing.T, mpc float64) *Rule {
	t.Helper()
	r, err := NewRule(
		[]float64{1.0},
		[][]float64{{0, 10}},
		[][]float64{{0, 10 * mpc}},
	)
	require.NoError(t, err)
	return r
}

func TestRule_LinearEvaluation(t *testing.T) {
	r := linearRule(t, 0.5)

	assert.InDelta(t, 2.0, r.Consumption(4, 1), 1e-12)
	assert.InDelta(t, 0.5, r.MPC(4, 1), 1e-12)

	// extrapolation continues the last segment
	assert.InDelta(t, 10.0, r.Consumption(20, 1), 1e-12)
	assert.InDelta(t, 0.5, r.MPC(20, 1), 1e-12)
}

func TestRule_BlendsAcrossPermanentNodes(t *testing.T) {
	r, err := NewRule(
		[]float64{1.0, 2.0},
		[][]float64{{0, 10}, {0, 10}},
		[][]float64{{0, 5}, {0, 2.5}}, // mpc 0.5 at p=1, 0.25 at p=2
	)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, r.Consumption(4, 1), 1e-12)
	assert.InDelta(t, 1.0, r.Consumption(4, 2), 1e-12)
	assert.InDelta(t, 1.5, r.Consumption(4, 1.5), 1e-12)
	assert.InDelta(t, 0.375, r.MPC(4, 1.5), 1e-12)

	// outside the permanent grid the nearest node applies
	assert.InDelta(t, 2.0, r.Consumption(4, 0.5), 1e-12)
	assert.InDelta(t, 1.0, r.Consumption(4, 3.0), 1e-12)
}

func TestRule_ConcaveScheduleHasDecreasingMPC(t *testing.T) {
	// piecewise approximation of a concave consumption schedule
	r, err := NewRule(
		[]float64{1.0},
		[][]float64{{0, 1, 2, 4, 8}},
		[][]float64{{0, 0.9, 1.5, 2.3, 3.1}},
	)
	require.NoError(t, err)

	prev := r.MPC(0.5, 1)
	for _, m := range []float64{1.5, 3, 6} {
		cur := r.MPC(m, 1)
		assert.Less(t, cur, prev, "MPC must fall with cash-on-hand at m=%g", m)
		prev = cur
	}
}
