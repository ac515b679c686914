package experiment

import (
	"math"
	"testing"
	"time"

	"consumption-sim/internal/data"
	"consumption-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() model.Params {
	p := model.DefaultParams()
	p.AssetGridCount = 16
	p.PermGridCount = 5
	p.PermShkCount = 3
	p.TranShkCount = 3
	p.AgentCount = 40
	p.SolveTol = 1e-4
	return p
}

// the worked scenario, shortened for test runtime
func testSpec() Spec {
	return Spec{
		CorrAct:       0.97,
		CorrPcvd:      0.9831,
		DiscFacCenter: 0.9867,
		DiscFacSpread: 0.0067,
		SimPeriods:    20,
	}
}

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"actual persistence at one", func(s *Spec) { s.CorrAct = 1.0 }},
		{"perceived persistence below minus one", func(s *Spec) { s.CorrPcvd = -1.2 }},
		{"center at zero", func(s *Spec) { s.DiscFacCenter = 0 }},
		{"center at one", func(s *Spec) { s.DiscFacCenter = 1 }},
		{"negative spread", func(s *Spec) { s.DiscFacSpread = -0.01 }},
		{"interval escapes unit interval above", func(s *Spec) { s.DiscFacCenter = 0.99; s.DiscFacSpread = 0.02 }},
		{"interval escapes unit interval below", func(s *Spec) { s.DiscFacCenter = 0.01; s.DiscFacSpread = 0.02 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testSpec()
			s.EnsembleSize = DefaultEnsembleSize
			tc.mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestRun_RejectsBadSpecBeforeSolving(t *testing.T) {
	s := testSpec()
	s.DiscFacSpread = 0.5 // interval leaves (0,1)
	_, err := New(testParams()).Run(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestRun_PoolsEnsembleOutputs(t *testing.T) {
	params := testParams()
	res, err := New(params).Run(testSpec())
	require.NoError(t, err)

	total := DefaultEnsembleSize * params.AgentCount
	assert.Equal(t, total, res.AgentCount())
	assert.Len(t, res.Consumption, total)
	assert.Len(t, res.Assets, total)
	assert.Len(t, res.MPC, total)
	assert.Len(t, res.PermIncome, total)
	assert.Len(t, res.DiscFac, total)

	require.Len(t, res.DiscFacNodes, DefaultEnsembleSize)
	for i := 1; i < len(res.DiscFacNodes); i++ {
		assert.Greater(t, res.DiscFacNodes[i], res.DiscFacNodes[i-1], "ensemble must be ascending")
	}

	// pooled arrays follow ensemble order
	for i := 0; i < total; i++ {
		member := i / params.AgentCount
		assert.Equal(t, res.DiscFacNodes[member], res.DiscFac[i])
		assert.False(t, math.IsNaN(res.Assets[i]))
		assert.GreaterOrEqual(t, res.Assets[i], 0.0)
		assert.Greater(t, res.PermIncome[i], 0.0)
	}
}

func TestRun_Idempotent(t *testing.T) {
	params := testParams()
	first, err := New(params).Run(testSpec())
	require.NoError(t, err)
	second, err := New(params).Run(testSpec())
	require.NoError(t, err)

	assert.Equal(t, first.Assets, second.Assets)
	assert.Equal(t, first.Consumption, second.Consumption)
	assert.Equal(t, first.MPC, second.MPC)
	assert.Equal(t, first.PermIncome, second.PermIncome)
}

func TestRun_CacheSkipsRepeatSolves(t *testing.T) {
	params := testParams()
	cache := data.NewRuleCache(time.Hour)
	runner := New(params).WithCache(cache)

	first, err := runner.Run(testSpec())
	require.NoError(t, err)
	assert.Equal(t, DefaultEnsembleSize, cache.Len())

	// second run hits the cache for every member and reproduces the result
	second, err := runner.Run(testSpec())
	require.NoError(t, err)
	assert.Equal(t, DefaultEnsembleSize, cache.Len())
	assert.Equal(t, first.Assets, second.Assets)
}

func TestRun_SingleMemberEnsemble(t *testing.T) {
	params := testParams()
	s := testSpec()
	s.EnsembleSize = 1
	s.DiscFacSpread = 0

	res, err := New(params).Run(s)
	require.NoError(t, err)
	assert.Equal(t, params.AgentCount, res.AgentCount())
	require.Len(t, res.DiscFacNodes, 1)
	assert.InDelta(t, s.DiscFacCenter, res.DiscFacNodes[0], 1e-12)
}
