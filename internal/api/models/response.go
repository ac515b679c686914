package models

// ExperimentResponse represents the response from an experiment run.
type ExperimentResponse struct {
	Status  string            `json:"status"`
	Summary ExperimentSummary `json:"summary"`
	Agents  []AgentRow        `json:"agents,omitempty"`
}

// ExperimentSummary contains the aggregated cross-sectional results.
type ExperimentSummary struct {
	AgentCount     int         `json:"agent_count"`
	WealthRatio    float64     `json:"wealth_ratio"`
	Gini           float64     `json:"gini"`
	AvgMPCQuintile []float64   `json:"avg_mpc_by_quintile"` // poorest first
	Lorenz         LorenzCurve `json:"lorenz"`
}

// LorenzCurve holds the curve with its (0,0) and (1,1) boundary points.
type LorenzCurve struct {
	Percentiles []float64 `json:"percentiles"`
	Shares      []float64 `json:"shares"`
}

// AgentRow represents one simulated agent in the pooled cross-section.
type AgentRow struct {
	Index       int     `json:"index"`
	DiscFac     float64 `json:"disc_fac"`
	PermIncome  float64 `json:"perm_income"`
	Assets      float64 `json:"assets"`
	Consumption float64 `json:"consumption"`
	MPC         float64 `json:"mpc"`
}

// SweepResponse represents the response from a sweep.
type SweepResponse struct {
	Comparison []SweepResult `json:"comparison"`
}

// SweepResult contains the aggregates for one scenario.
type SweepResult struct {
	Name    string            `json:"name"`
	Summary ExperimentSummary `json:"summary"`
}

// PresetsResponse lists the scenarios shipped with the service.
type PresetsResponse struct {
	Presets []PresetInfo `json:"presets"`
}

// PresetInfo is one preset scenario.
type PresetInfo struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	CorrAct       float64 `json:"corr_act"`
	CorrPcvd      float64 `json:"corr_pcvd"`
	DiscFacCenter float64 `json:"discfac_center"`
	DiscFacSpread float64 `json:"discfac_spread"`
}

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable code plus a human-readable message.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
