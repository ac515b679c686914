package models

// ExperimentRequest represents the request body for running an experiment.
type ExperimentRequest struct {
	Spec     ExperimentSpec    `json:"spec" binding:"required"`
	Consumer *ConsumerConfig   `json:"consumer,omitempty"`
	Options  ExperimentOptions `json:"options,omitempty"`
}

// ConsumerConfig carries optional overrides of the baseline calibration.
// Zero-valued fields keep their defaults.
type ConsumerConfig struct {
	CRRA       float64 `json:"crra,omitempty"`
	Rfree      float64 `json:"rfree,omitempty"`
	LivPrb     float64 `json:"liv_prb,omitempty"`
	PermGroFac float64 `json:"perm_gro_fac,omitempty"`

	PermShkCount int     `json:"perm_shk_count,omitempty"`
	PermShkStd   float64 `json:"perm_shk_std,omitempty"`
	TranShkCount int     `json:"tran_shk_count,omitempty"`
	TranShkStd   float64 `json:"tran_shk_std,omitempty"`
	UnempPrb     float64 `json:"unemp_prb,omitempty"`
	IncUnemp     float64 `json:"inc_unemp,omitempty"`
	TaxRate      float64 `json:"tax_rate,omitempty"`

	BoroCnst float64 `json:"boro_cnst,omitempty"`

	AgentCount int   `json:"agent_count,omitempty"`
	SimPeriods int   `json:"sim_periods,omitempty"`
	Seed       int64 `json:"seed,omitempty"`
}

// ExperimentSpec is the quadruple plus ensemble/horizon settings.
type ExperimentSpec struct {
	CorrAct       float64 `json:"corr_act" binding:"required"`
	CorrPcvd      float64 `json:"corr_pcvd" binding:"required"`
	DiscFacCenter float64 `json:"discfac_center" binding:"required"`
	DiscFacSpread float64 `json:"discfac_spread"`
	EnsembleSize  int     `json:"ensemble_size,omitempty"` // 0 = default (7)
	SimPeriods    int     `json:"sim_periods,omitempty"`   // 0 = baseline horizon
}

// ExperimentOptions contains optional experiment parameters.
type ExperimentOptions struct {
	LorenzPoints  int  `json:"lorenz_points,omitempty"`  // 0 = default (201)
	IncludeAgents bool `json:"include_agents,omitempty"` // default: false
}

// SweepRequest represents a request to run several experiments and compare
// their aggregates.
type SweepRequest struct {
	Scenarios []SweepScenario   `json:"scenarios" binding:"required"`
	Consumer  *ConsumerConfig   `json:"consumer,omitempty"`
	Options   ExperimentOptions `json:"options,omitempty"`
}

// SweepScenario is one named quadruple in a sweep.
type SweepScenario struct {
	Name string         `json:"name" binding:"required"`
	Spec ExperimentSpec `json:"spec" binding:"required"`
}
