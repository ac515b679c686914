package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
consumer:
  crra: 3.0
  agent_count: 200
  seed: 99
experiment:
  corr_act: 0.97
  corr_pcvd: 0.9831
  discfac_center: 0.9867
  discfac_spread: 0.0067
  sim_periods: 100
  lorenz_points: 201
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	p := cfg.ToModelParams()
	assert.Equal(t, 3.0, p.CRRA)
	assert.Equal(t, 200, p.AgentCount)
	assert.Equal(t, int64(99), p.Seed)
	// untouched fields keep the baseline calibration
	assert.Equal(t, 1.01, p.Rfree)
	assert.Equal(t, 0.995, p.LivPrb)

	s := cfg.ToSpec()
	assert.Equal(t, 0.97, s.CorrAct)
	assert.Equal(t, 0.9831, s.CorrPcvd)
	assert.Equal(t, 0.9867, s.DiscFacCenter)
	assert.Equal(t, 0.0067, s.DiscFacSpread)
	assert.Equal(t, 100, s.SimPeriods)
	assert.Equal(t, 7, s.EnsembleSize)
	assert.Equal(t, 201, cfg.Experiment.LorenzPoints)
}

func TestLoad_MergesConsumerFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "patient.yaml", `
consumer:
  name: patient
  crra: 4.0
  agent_count: 100
`)
	path := writeFile(t, dir, "config.yaml", `
consumer_file: patient.yaml
consumer:
  agent_count: 250
experiment:
  corr_act: 0.97
  corr_pcvd: 0.97
  discfac_center: 0.9867
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "patient", cfg.Consumer.Name)
	assert.Equal(t, 4.0, cfg.Consumer.CRRA)
	// explicit override wins over the consumer file
	assert.Equal(t, 250, cfg.Consumer.AgentCount)
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
consumer:
  crra: -1.0
experiment:
  corr_act: 0.97
  corr_pcvd: 0.97
  discfac_center: 0.9867
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consumer config invalid")
}

func TestLoad_RejectsEscapingDiscountInterval(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
experiment:
  corr_act: 0.97
  corr_pcvd: 0.97
  discfac_center: 0.99
  discfac_spread: 0.05
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "experiment config invalid")
}

func TestToSpec_DefaultsWhenUnset(t *testing.T) {
	cfg := &Config{}
	s := cfg.ToSpec()
	assert.Equal(t, 0.97, s.CorrAct)
	assert.Equal(t, 0.97, s.CorrPcvd)
	assert.Equal(t, 0.9867, s.DiscFacCenter)
	assert.Equal(t, 7, s.EnsembleSize)
}
