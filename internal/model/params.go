package model

import (
	"errors"
)

// Params defines the preferences, income process, grids and simulation
// settings of a single infinite-horizon consumer type.
// Units/conventions:
// - DiscFac, LivPrb, probabilities: 0..1
// - Corr: income-persistence correlation, (-1, 1)
// - Rfree, PermGroFac: gross factors (1.01 = 1% per period)
// - Shock stds are standard deviations of the underlying log shocks
// - Asset and income levels are in units of baseline permanent income
type Params struct {
	CRRA       float64 // coefficient of relative risk aversion
	Rfree      float64 // gross risk-free return factor
	DiscFac    float64 // time discount factor
	LivPrb     float64 // per-period survival probability
	PermGroFac float64 // permanent income growth factor
	Corr       float64 // persistence of the permanent income component

	PermShkCount int     // nodes in the permanent shock approximation
	PermShkStd   float64 // std of log permanent shocks
	TranShkCount int     // nodes in the transitory shock approximation
	TranShkStd   float64 // std of log transitory shocks
	UnempPrb     float64 // probability of the unemployment state
	IncUnemp     float64 // replacement income while unemployed
	TaxRate      float64 // proportional tax on employed labor income

	BoroCnst float64 // artificial borrowing constraint (minimum assets)

	AssetGridMin   float64 // lowest end-of-period asset node above BoroCnst
	AssetGridMax   float64 // highest asset node, in units of permanent income
	AssetGridCount int     // nodes in the end-of-period asset grid
	PermGridCount  int     // nodes in the permanent income grid
	PermGridWidth  float64 // half-width of the permanent grid in log space

	AgentCount int // simulated agents per consumer type
	SimPeriods int // simulation horizon in periods

	InitialAssetMean  float64 // mean of log initial assets
	InitialAssetStd   float64 // std of log initial assets
	InitialIncomeMean float64 // mean of log initial permanent income
	InitialIncomeStd  float64 // std of log initial permanent income

	Seed int64 // RNG seed for shock and mortality draws

	SolveTol     float64 // sup-norm convergence tolerance for the solver
	SolveMaxIter int     // iteration cap before the solver gives up
}

// DefaultParams returns the baseline calibration used throughout the repo.
func DefaultParams() Params {
	return Params{
		CRRA:       2.0,
		Rfree:      1.01,
		DiscFac:    0.9867,
		LivPrb:     0.995,
		PermGroFac: 1.0,
		Corr:       0.97,

		PermShkCount: 7,
		PermShkStd:   0.10,
		TranShkCount: 7,
		TranShkStd:   0.10,
		UnempPrb:     0.05,
		IncUnemp:     0.3,
		TaxRate:      0.0,

		BoroCnst: 0.0,

		AssetGridMin:   0.001,
		AssetGridMax:   40.0,
		AssetGridCount: 48,
		PermGridCount:  13,
		PermGridWidth:  1.2,

		AgentCount: 400,
		SimPeriods: 100,

		InitialAssetMean:  -1.0,
		InitialAssetStd:   0.5,
		InitialIncomeMean: 0.0,
		InitialIncomeStd:  0.4,

		Seed: 31382,

		SolveTol:     1e-6,
		SolveMaxIter: 2000,
	}
}

func (p Params) Validate() error {
	if p.CRRA <= 0 {
		return errors.New("CRRA must be > 0")
	}
	if p.Rfree <= 0 {
		return errors.New("Rfree must be > 0")
	}
	if p.DiscFac <= 0 || p.DiscFac >= 1 {
		return errors.New("DiscFac must be in (0, 1)")
	}
	if p.LivPrb <= 0 || p.LivPrb > 1 {
		return errors.New("LivPrb must be in (0, 1]")
	}
	if p.PermGroFac <= 0 {
		return errors.New("PermGroFac must be > 0")
	}
	if p.Corr <= -1 || p.Corr >= 1 {
		return errors.New("Corr must be in (-1, 1)")
	}
	if p.PermShkCount < 1 || p.TranShkCount < 1 {
		return errors.New("shock node counts must be >= 1")
	}
	if p.PermShkStd < 0 || p.TranShkStd < 0 {
		return errors.New("shock stds must be >= 0")
	}
	if p.UnempPrb < 0 || p.UnempPrb >= 1 {
		return errors.New("UnempPrb must be in [0, 1)")
	}
	if p.IncUnemp < 0 {
		return errors.New("IncUnemp must be >= 0")
	}
	if p.TaxRate < 0 || p.TaxRate >= 1 {
		return errors.New("TaxRate must be in [0, 1)")
	}
	if p.AssetGridMin <= 0 || p.AssetGridMax <= p.AssetGridMin {
		return errors.New("asset grid must satisfy 0 < AssetGridMin < AssetGridMax")
	}
	if p.AssetGridCount < 2 {
		return errors.New("AssetGridCount must be >= 2")
	}
	if p.PermGridCount < 2 {
		return errors.New("PermGridCount must be >= 2")
	}
	if p.PermGridWidth <= 0 {
		return errors.New("PermGridWidth must be > 0")
	}
	if p.AgentCount < 1 {
		return errors.New("AgentCount must be >= 1")
	}
	if p.SimPeriods < 1 {
		return errors.New("SimPeriods must be >= 1")
	}
	if p.InitialAssetStd < 0 || p.InitialIncomeStd < 0 {
		return errors.New("initial distribution stds must be >= 0")
	}
	if p.SolveTol <= 0 {
		return errors.New("SolveTol must be > 0")
	}
	if p.SolveMaxIter < 1 {
		return errors.New("SolveMaxIter must be >= 1")
	}
	return nil
}

// WithDiscFac returns a copy with the discount factor replaced.
// Params is a value type; ensemble members must never share a mutable copy.
func (p Params) WithDiscFac(v float64) Params {
	p.DiscFac = v
	return p
}

// WithCorr returns a copy with the income-persistence correlation replaced.
func (p Params) WithCorr(v float64) Params {
	p.Corr = v
	return p
}

// WithSimPeriods returns a copy with the simulation horizon replaced.
func (p Params) WithSimPeriods(t int) Params {
	p.SimPeriods = t
	return p
}
