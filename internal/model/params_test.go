package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams_Valid(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())
}

func TestParams_ValidateRejectsBadFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"discount factor at one", func(p *Params) { p.DiscFac = 1.0 }},
		{"negative discount factor", func(p *Params) { p.DiscFac = -0.5 }},
		{"persistence at one", func(p *Params) { p.Corr = 1.0 }},
		{"persistence below minus one", func(p *Params) { p.Corr = -1.5 }},
		{"negative unemployment probability", func(p *Params) { p.UnempPrb = -0.1 }},
		{"unemployment probability of one", func(p *Params) { p.UnempPrb = 1.0 }},
		{"zero CRRA", func(p *Params) { p.CRRA = 0 }},
		{"survival probability above one", func(p *Params) { p.LivPrb = 1.1 }},
		{"no agents", func(p *Params) { p.AgentCount = 0 }},
		{"no simulation periods", func(p *Params) { p.SimPeriods = 0 }},
		{"inverted asset grid", func(p *Params) { p.AssetGridMax = p.AssetGridMin / 2 }},
		{"negative shock std", func(p *Params) { p.TranShkStd = -0.1 }},
		{"tax rate of one", func(p *Params) { p.TaxRate = 1.0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestParams_CopyWithOverrides(t *testing.T) {
	base := DefaultParams()
	modified := base.WithDiscFac(0.9).WithCorr(0.5).WithSimPeriods(10)

	assert.Equal(t, 0.9, modified.DiscFac)
	assert.Equal(t, 0.5, modified.Corr)
	assert.Equal(t, 10, modified.SimPeriods)

	// the original is untouched
	assert.Equal(t, 0.9867, base.DiscFac)
	assert.Equal(t, 0.97, base.Corr)
	assert.Equal(t, 100, base.SimPeriods)
}
