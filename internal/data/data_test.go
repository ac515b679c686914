package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"consumption-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleKey_DistinguishesParams(t *testing.T) {
	base := model.DefaultParams()
	assert.Equal(t, RuleKey(base), RuleKey(base))
	assert.NotEqual(t, RuleKey(base), RuleKey(base.WithCorr(0.5)))
	assert.NotEqual(t, RuleKey(base), RuleKey(base.WithDiscFac(0.9)))
}

func TestRuleCache_SetGetClear(t *testing.T) {
	c := NewRuleCache(time.Hour)
	rule, err := model.NewRule([]float64{1}, [][]float64{{0, 1}}, [][]float64{{0, 1}})
	require.NoError(t, err)

	key := RuleKey(model.DefaultParams())
	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Set(key, rule)
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Same(t, rule, got)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	_, ok = c.Get(key)
	assert.False(t, ok)
}

func TestRuleCache_Expiry(t *testing.T) {
	c := NewRuleCache(time.Millisecond)
	rule, err := model.NewRule([]float64{1}, [][]float64{{0, 1}}, [][]float64{{0, 1}})
	require.NoError(t, err)

	c.Set("k", rule)
	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestRuleCache_NilSafe(t *testing.T) {
	var c *RuleCache
	_, ok := c.Get("k")
	assert.False(t, ok)
	c.Set("k", nil)
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestLoadScenarioBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "scenarios": [
    {"name": "correct", "corr_act": 0.97, "corr_pcvd": 0.97,
     "discfac_center": 0.9867, "discfac_spread": 0.0067},
    {"name": "mistaken", "corr_act": 0.97, "corr_pcvd": 0.9831,
     "discfac_center": 0.9867, "discfac_spread": 0.0067}
  ]
}`), 0o644))

	batch, err := LoadScenarioBatch(path)
	require.NoError(t, err)
	require.Len(t, batch.Scenarios, 2)
	assert.Equal(t, "correct", batch.Scenarios[0].Name)
	assert.Equal(t, 0.9831, batch.Scenarios[1].CorrPcvd)
}

func TestLoadScenarioBatch_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scenarios": []}`), 0o644))
	_, err := LoadScenarioBatch(path)
	assert.Error(t, err)
}

func TestPresets_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "presets.json")
	list := &PresetList{
		UpdatedAt: "2026-01-01T00:00:00Z",
		Presets:   BuiltinPresets(),
	}
	require.NoError(t, SavePresets(list, path))

	loaded, err := LoadPresets(path)
	require.NoError(t, err)
	assert.Equal(t, list, loaded)
}

func TestBuiltinPresets_MatchWorkedScenario(t *testing.T) {
	presets := BuiltinPresets()
	require.NotEmpty(t, presets)

	var found bool
	for _, p := range presets {
		if p.Name == "overestimated-persistence" {
			found = true
			assert.Equal(t, 0.97, p.CorrAct)
			assert.Equal(t, 0.9831, p.CorrPcvd)
			assert.Equal(t, 0.9867, p.DiscFacCenter)
			assert.Equal(t, 0.0067, p.DiscFacSpread)
		}
	}
	assert.True(t, found)
}
