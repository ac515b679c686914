// Package experiment runs the misperceived-persistence experiment: an
// ensemble of consumer cohorts with heterogeneous discount factors solves
// under a perceived income persistence, simulates under the actual one, and
// pools the resulting cross-sections.
package experiment

import (
	"errors"
	"fmt"

	"consumption-sim/internal/agent"
	"consumption-sim/internal/approx"
	"consumption-sim/internal/data"
	"consumption-sim/internal/model"
)

// Spec is the quadruple a single experiment is parameterized by, plus the
// ensemble and horizon settings.
type Spec struct {
	CorrAct       float64 // actual persistence of the simulated environment
	CorrPcvd      float64 // persistence the agents believe while solving
	DiscFacCenter float64 // center of the discount-factor ensemble
	DiscFacSpread float64 // half-width of the discount-factor ensemble

	EnsembleSize int // representative discount factors (default 7)
	SimPeriods   int // simulation horizon per cohort (default from params)
}

const DefaultEnsembleSize = 7

// ErrInvalid marks failures of up-front input validation, before any solve
// or simulate work has started.
var ErrInvalid = errors.New("invalid experiment inputs")

func (s Spec) Validate() error {
	if s.CorrAct <= -1 || s.CorrAct >= 1 {
		return errors.New("CorrAct must be in (-1, 1)")
	}
	if s.CorrPcvd <= -1 || s.CorrPcvd >= 1 {
		return errors.New("CorrPcvd must be in (-1, 1)")
	}
	if s.DiscFacCenter <= 0 || s.DiscFacCenter >= 1 {
		return errors.New("DiscFacCenter must be in (0, 1)")
	}
	if s.DiscFacSpread < 0 {
		return errors.New("DiscFacSpread must be >= 0")
	}
	if s.DiscFacCenter-s.DiscFacSpread <= 0 || s.DiscFacCenter+s.DiscFacSpread >= 1 {
		return errors.New("discount-factor interval must stay within (0, 1)")
	}
	if s.EnsembleSize < 1 {
		return errors.New("EnsembleSize must be >= 1")
	}
	return nil
}

// Result pools the per-agent outputs of every ensemble member into flat
// parallel arrays of length EnsembleSize × AgentCount, in ascending
// discount-factor order. All aggregates computed from them are
// order-independent.
type Result struct {
	DiscFacNodes []float64 // the ensemble, ascending

	Consumption []float64
	Assets      []float64
	MPC         []float64
	PermIncome  []float64
	DiscFac     []float64 // per-agent discount factor, parallel to the above
}

// AgentCount returns the pooled population size.
func (r *Result) AgentCount() int { return len(r.Assets) }

// Runner executes experiments against a baseline parameter set. An optional
// rule cache skips re-solving identical (params, belief) pairs across runs.
type Runner struct {
	base  model.Params
	cache *data.RuleCache
}

func New(base model.Params) *Runner {
	return &Runner{base: base}
}

// WithCache attaches a solved-rule cache. A nil cache is valid and means
// every run solves from scratch.
func (r *Runner) WithCache(c *data.RuleCache) *Runner {
	r.cache = c
	return r
}

// Run executes one experiment. All validation happens before any solve work
// begins; any solve or simulate failure aborts the whole experiment with no
// partial results.
func (r *Runner) Run(s Spec) (*Result, error) {
	if s.EnsembleSize == 0 {
		s.EnsembleSize = DefaultEnsembleSize
	}
	if s.SimPeriods == 0 {
		s.SimPeriods = r.base.SimPeriods
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: spec: %v", ErrInvalid, err)
	}
	base := r.base.WithCorr(s.CorrAct).WithSimPeriods(s.SimPeriods)
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("%w: baseline params: %v", ErrInvalid, err)
	}

	nodes, err := approx.Uniform(s.DiscFacCenter, s.DiscFacSpread, s.EnsembleSize)
	if err != nil {
		return nil, fmt.Errorf("discount-factor ensemble: %w", err)
	}

	total := s.EnsembleSize * base.AgentCount
	res := &Result{
		DiscFacNodes: nodes,
		Consumption:  make([]float64, 0, total),
		Assets:       make([]float64, 0, total),
		MPC:          make([]float64, 0, total),
		PermIncome:   make([]float64, 0, total),
		DiscFac:      make([]float64, 0, total),
	}

	// Ensemble members run sequentially in ascending discount-factor order.
	for _, beta := range nodes {
		params := base.WithDiscFac(beta)
		a, err := agent.New(params)
		if err != nil {
			return nil, err
		}
		if err := r.solve(a, params, s.CorrPcvd); err != nil {
			return nil, fmt.Errorf("ensemble member DiscFac=%.6f: %w", beta, err)
		}
		a.InitializeSim()
		tracker := agent.NewTracker(a)
		if err := tracker.Run(s.CorrAct, s.SimPeriods); err != nil {
			return nil, fmt.Errorf("ensemble member DiscFac=%.6f: %w", beta, err)
		}

		res.Consumption = append(res.Consumption, tracker.Consumption...)
		res.Assets = append(res.Assets, a.ALvl...)
		res.MPC = append(res.MPC, tracker.MPC...)
		res.PermIncome = append(res.PermIncome, a.PLvl...)
		for range a.ALvl {
			res.DiscFac = append(res.DiscFac, beta)
		}
	}
	return res, nil
}

// solve attaches a consumption rule to the cohort, consulting the cache
// when one is configured.
func (r *Runner) solve(a *agent.Agent, params model.Params, corrPcvd float64) error {
	if r.cache == nil {
		return a.SolveUnderBelief(corrPcvd)
	}
	key := data.RuleKey(params.WithCorr(corrPcvd))
	if rule, ok := r.cache.Get(key); ok {
		a.AdoptRule(rule)
		return nil
	}
	if err := a.SolveUnderBelief(corrPcvd); err != nil {
		return err
	}
	r.cache.Set(key, a.Rule)
	return nil
}
