package handlers

import (
	"errors"
	"net/http"

	"consumption-sim/internal/api/models"
	"consumption-sim/internal/data"
	"consumption-sim/internal/experiment"
	"consumption-sim/internal/model"
	"consumption-sim/internal/report"
	"consumption-sim/internal/stats"

	"github.com/gin-gonic/gin"
)

// ExperimentHandler handles experiment and sweep requests.
type ExperimentHandler struct {
	base  model.Params
	cache *data.RuleCache
}

// NewExperimentHandler creates a handler around a baseline calibration and
// an optional solved-rule cache shared across requests.
func NewExperimentHandler(base model.Params, cache *data.RuleCache) *ExperimentHandler {
	return &ExperimentHandler{base: base, cache: cache}
}

// RunExperiment handles POST /api/v1/experiment
func (h *ExperimentHandler) RunExperiment(c *gin.Context) {
	var req models.ExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	params := applyOverrides(h.base, req.Consumer)
	spec := toSpec(req.Spec)

	res, summary, err := h.run(params, spec, req.Options.LorenzPoints)
	if err != nil {
		c.JSON(statusFor(err), models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    codeFor(err),
				Message: err.Error(),
			},
		})
		return
	}

	resp := models.ExperimentResponse{
		Status:  "completed",
		Summary: toSummary(summary),
	}
	if req.Options.IncludeAgents {
		resp.Agents = toAgentRows(res)
	}
	c.JSON(http.StatusOK, resp)
}

// RunSweep handles POST /api/v1/experiment/sweep
func (h *ExperimentHandler) RunSweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}
	if len(req.Scenarios) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "at least one scenario is required",
			},
		})
		return
	}

	params := applyOverrides(h.base, req.Consumer)

	out := models.SweepResponse{Comparison: make([]models.SweepResult, 0, len(req.Scenarios))}
	for _, sc := range req.Scenarios {
		_, summary, err := h.run(params, toSpec(sc.Spec), req.Options.LorenzPoints)
		if err != nil {
			c.JSON(statusFor(err), models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    codeFor(err),
					Message: err.Error(),
					Details: map[string]any{"scenario": sc.Name},
				},
			})
			return
		}
		out.Comparison = append(out.Comparison, models.SweepResult{
			Name:    sc.Name,
			Summary: toSummary(summary),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *ExperimentHandler) run(params model.Params, spec experiment.Spec, lorenzPoints int) (*experiment.Result, *report.Summary, error) {
	runner := experiment.New(params).WithCache(h.cache)
	res, err := runner.Run(spec)
	if err != nil {
		return nil, nil, err
	}
	summary, err := report.BuildSummary(res, lorenzPoints)
	if err != nil {
		return nil, nil, err
	}
	return res, summary, nil
}

func toSpec(s models.ExperimentSpec) experiment.Spec {
	return experiment.Spec{
		CorrAct:       s.CorrAct,
		CorrPcvd:      s.CorrPcvd,
		DiscFacCenter: s.DiscFacCenter,
		DiscFacSpread: s.DiscFacSpread,
		EnsembleSize:  s.EnsembleSize,
		SimPeriods:    s.SimPeriods,
	}
}

func applyOverrides(base model.Params, ov *models.ConsumerConfig) model.Params {
	if ov == nil {
		return base
	}
	p := base
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
	setF(&p.CRRA, ov.CRRA)
	setF(&p.Rfree, ov.Rfree)
	setF(&p.LivPrb, ov.LivPrb)
	setF(&p.PermGroFac, ov.PermGroFac)
	setI(&p.PermShkCount, ov.PermShkCount)
	setF(&p.PermShkStd, ov.PermShkStd)
	setI(&p.TranShkCount, ov.TranShkCount)
	setF(&p.TranShkStd, ov.TranShkStd)
	setF(&p.UnempPrb, ov.UnempPrb)
	setF(&p.IncUnemp, ov.IncUnemp)
	setF(&p.TaxRate, ov.TaxRate)
	setF(&p.BoroCnst, ov.BoroCnst)
	setI(&p.AgentCount, ov.AgentCount)
	setI(&p.SimPeriods, ov.SimPeriods)
	if ov.Seed != 0 {
		p.Seed = ov.Seed
	}
	return p
}

func toSummary(s *report.Summary) models.ExperimentSummary {
	return models.ExperimentSummary{
		AgentCount:     s.AgentCount,
		WealthRatio:    s.WealthRatio,
		Gini:           s.Gini,
		AvgMPCQuintile: s.AvgMPCQuintile,
		Lorenz: models.LorenzCurve{
			Percentiles: s.Lorenz.Percentiles,
			Shares:      s.Lorenz.Shares,
		},
	}
}

func toAgentRows(res *experiment.Result) []models.AgentRow {
	rows := make([]models.AgentRow, res.AgentCount())
	for i := range rows {
		rows[i] = models.AgentRow{
			Index:       i,
			DiscFac:     res.DiscFac[i],
			PermIncome:  res.PermIncome[i],
			Assets:      res.Assets[i],
			Consumption: res.Consumption[i],
			MPC:         res.MPC[i],
		}
	}
	return rows
}

// statusFor maps domain errors to HTTP statuses: bad inputs and degenerate
// populations are client errors, solver failures are server errors.
func statusFor(err error) int {
	if errors.Is(err, experiment.ErrInvalid) ||
		errors.Is(err, stats.ErrEmptyPopulation) ||
		errors.Is(err, stats.ErrZeroMeanIncome) ||
		errors.Is(err, stats.ErrZeroTotalAssets) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, experiment.ErrInvalid):
		return "INVALID_CONFIG"
	case errors.Is(err, stats.ErrEmptyPopulation),
		errors.Is(err, stats.ErrZeroMeanIncome),
		errors.Is(err, stats.ErrZeroTotalAssets):
		return "DEGENERATE_POPULATION"
	default:
		return "EXPERIMENT_FAILED"
	}
}
