package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"consumption-sim/internal/experiment"
	"consumption-sim/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load consumer parameters from a separate YAML (e.g.
	// examples/consumers/*.yaml). If both ConsumerFile and Consumer are
	// provided, Consumer overrides ConsumerFile.
	ConsumerFile string           `yaml:"consumer_file"`
	Consumer     ConsumerConfig   `yaml:"consumer"`
	Experiment   ExperimentConfig `yaml:"experiment"`
}

type ConsumerConfig struct {
	Name       string  `yaml:"name"`
	CRRA       float64 `yaml:"crra"`
	Rfree      float64 `yaml:"rfree"`
	DiscFac    float64 `yaml:"disc_fac"`
	LivPrb     float64 `yaml:"liv_prb"`
	PermGroFac float64 `yaml:"perm_gro_fac"`
	Corr       float64 `yaml:"corr"`

	PermShkCount int     `yaml:"perm_shk_count"`
	PermShkStd   float64 `yaml:"perm_shk_std"`
	TranShkCount int     `yaml:"tran_shk_count"`
	TranShkStd   float64 `yaml:"tran_shk_std"`
	UnempPrb     float64 `yaml:"unemp_prb"`
	IncUnemp     float64 `yaml:"inc_unemp"`
	TaxRate      float64 `yaml:"tax_rate"`

	BoroCnst float64 `yaml:"boro_cnst"`

	AssetGridMin   float64 `yaml:"asset_grid_min"`
	AssetGridMax   float64 `yaml:"asset_grid_max"`
	AssetGridCount int     `yaml:"asset_grid_count"`
	PermGridCount  int     `yaml:"perm_grid_count"`
	PermGridWidth  float64 `yaml:"perm_grid_width"`

	AgentCount int `yaml:"agent_count"`
	SimPeriods int `yaml:"sim_periods"`

	InitialAssetMean  float64 `yaml:"initial_asset_mean"`
	InitialAssetStd   float64 `yaml:"initial_asset_std"`
	InitialIncomeMean float64 `yaml:"initial_income_mean"`
	InitialIncomeStd  float64 `yaml:"initial_income_std"`

	Seed int64 `yaml:"seed"`

	SolveTol     float64 `yaml:"solve_tol"`
	SolveMaxIter int     `yaml:"solve_max_iter"`
}

type ExperimentConfig struct {
	CorrAct       float64 `yaml:"corr_act"`
	CorrPcvd      float64 `yaml:"corr_pcvd"`
	DiscFacCenter float64 `yaml:"discfac_center"`
	DiscFacSpread float64 `yaml:"discfac_spread"`
	EnsembleSize  int     `yaml:"ensemble_size"`
	SimPeriods    int     `yaml:"sim_periods"`
	LorenzPoints  int     `yaml:"lorenz_points"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If consumer_file is set, load it and merge in any explicit overrides
	// from c.Consumer.
	if c.ConsumerFile != "" {
		consumerPath := c.ConsumerFile
		if !filepath.IsAbs(consumerPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, but fall back to the provided path (relative
			// to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), consumerPath)
			if _, err := os.Stat(cand); err == nil {
				consumerPath = cand
			}
		}
		loaded, err := loadConsumerFile(consumerPath)
		if err != nil {
			return nil, err
		}
		c.Consumer = MergeConsumer(loaded, c.Consumer)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("consumer config invalid: %w", err)
	}
	if err := c.ToSpec().Validate(); err != nil {
		return fmt.Errorf("experiment config invalid: %w", err)
	}
	return nil
}

// ToModelParams overlays the non-zero consumer fields onto the baseline
// calibration. Fields missing from the YAML keep their defaults.
func (c *Config) ToModelParams() model.Params {
	p := model.DefaultParams()
	cc := c.Consumer
	setF := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setI := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	setF(&p.CRRA, cc.CRRA)
	setF(&p.Rfree, cc.Rfree)
	setF(&p.DiscFac, cc.DiscFac)
	setF(&p.LivPrb, cc.LivPrb)
	setF(&p.PermGroFac, cc.PermGroFac)
	setF(&p.Corr, cc.Corr)
	setI(&p.PermShkCount, cc.PermShkCount)
	setF(&p.PermShkStd, cc.PermShkStd)
	setI(&p.TranShkCount, cc.TranShkCount)
	setF(&p.TranShkStd, cc.TranShkStd)
	setF(&p.UnempPrb, cc.UnempPrb)
	setF(&p.IncUnemp, cc.IncUnemp)
	setF(&p.TaxRate, cc.TaxRate)
	setF(&p.BoroCnst, cc.BoroCnst)
	setF(&p.AssetGridMin, cc.AssetGridMin)
	setF(&p.AssetGridMax, cc.AssetGridMax)
	setI(&p.AssetGridCount, cc.AssetGridCount)
	setI(&p.PermGridCount, cc.PermGridCount)
	setF(&p.PermGridWidth, cc.PermGridWidth)
	setI(&p.AgentCount, cc.AgentCount)
	setI(&p.SimPeriods, cc.SimPeriods)
	setF(&p.InitialAssetMean, cc.InitialAssetMean)
	setF(&p.InitialAssetStd, cc.InitialAssetStd)
	setF(&p.InitialIncomeMean, cc.InitialIncomeMean)
	setF(&p.InitialIncomeStd, cc.InitialIncomeStd)
	if cc.Seed != 0 {
		p.Seed = cc.Seed
	}
	setF(&p.SolveTol, cc.SolveTol)
	setI(&p.SolveMaxIter, cc.SolveMaxIter)
	return p
}

// ToSpec builds the experiment spec, defaulting unset fields to the
// baseline calibration's values.
func (c *Config) ToSpec() experiment.Spec {
	s := experiment.Spec{
		CorrAct:       c.Experiment.CorrAct,
		CorrPcvd:      c.Experiment.CorrPcvd,
		DiscFacCenter: c.Experiment.DiscFacCenter,
		DiscFacSpread: c.Experiment.DiscFacSpread,
		EnsembleSize:  c.Experiment.EnsembleSize,
		SimPeriods:    c.Experiment.SimPeriods,
	}
	if s.CorrAct == 0 {
		s.CorrAct = 0.97
	}
	if s.CorrPcvd == 0 {
		s.CorrPcvd = s.CorrAct
	}
	if s.DiscFacCenter == 0 {
		s.DiscFacCenter = 0.9867
	}
	if s.EnsembleSize == 0 {
		s.EnsembleSize = experiment.DefaultEnsembleSize
	}
	return s
}

type consumerFileWrapper struct {
	Consumer ConsumerConfig `yaml:"consumer"`
}

func loadConsumerFile(path string) (ConsumerConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ConsumerConfig{}, err
	}
	var w consumerFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ConsumerConfig{}, err
	}
	return w.Consumer, nil
}

// MergeConsumer overlays non-zero fields from override onto base. This is
// used when loading a consumer file and then applying overrides from the
// request.
func MergeConsumer(base, override ConsumerConfig) ConsumerConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	ovF := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	ovI := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	ovF(&out.CRRA, override.CRRA)
	ovF(&out.Rfree, override.Rfree)
	ovF(&out.DiscFac, override.DiscFac)
	ovF(&out.LivPrb, override.LivPrb)
	ovF(&out.PermGroFac, override.PermGroFac)
	ovF(&out.Corr, override.Corr)
	ovI(&out.PermShkCount, override.PermShkCount)
	ovF(&out.PermShkStd, override.PermShkStd)
	ovI(&out.TranShkCount, override.TranShkCount)
	ovF(&out.TranShkStd, override.TranShkStd)
	ovF(&out.UnempPrb, override.UnempPrb)
	ovF(&out.IncUnemp, override.IncUnemp)
	ovF(&out.TaxRate, override.TaxRate)
	ovF(&out.BoroCnst, override.BoroCnst)
	ovF(&out.AssetGridMin, override.AssetGridMin)
	ovF(&out.AssetGridMax, override.AssetGridMax)
	ovI(&out.AssetGridCount, override.AssetGridCount)
	ovI(&out.PermGridCount, override.PermGridCount)
	ovF(&out.PermGridWidth, override.PermGridWidth)
	ovI(&out.AgentCount, override.AgentCount)
	ovI(&out.SimPeriods, override.SimPeriods)
	ovF(&out.InitialAssetMean, override.InitialAssetMean)
	ovF(&out.InitialAssetStd, override.InitialAssetStd)
	ovF(&out.InitialIncomeMean, override.InitialIncomeMean)
	ovF(&out.InitialIncomeStd, override.InitialIncomeStd)
	if override.Seed != 0 {
		out.Seed = override.Seed
	}
	ovF(&out.SolveTol, override.SolveTol)
	ovI(&out.SolveMaxIter, override.SolveMaxIter)
	return out
}
