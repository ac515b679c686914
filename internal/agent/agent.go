// Package agent simulates a cohort of consumers sharing one set of
// parameters. An Agent solves its decision problem under a persistence
// belief, then simulates forward under the actual persistence, which may
// differ. The two phases are separate named operations so the belief/
// environment split is part of the contract rather than a mutation sequence.
package agent

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"consumption-sim/internal/approx"
	"consumption-sim/internal/model"
	"consumption-sim/internal/solver"
)

var ErrNotSolved = errors.New("agent has no solved rule; call SolveUnderBelief first")

// Agent holds one consumer type's parameters, its solved rule, and the
// per-agent simulation state arrays (each of length Params.AgentCount).
type Agent struct {
	Params model.Params
	Rule   *model.Rule

	// Cross-sectional state after the most recent simulated period.
	ALvl []float64 // end-of-period asset level
	PLvl []float64 // permanent income level
	MLvl []float64 // cash-on-hand level

	engine  *solver.Engine
	rng     *rand.Rand
	income  solver.IncomeProcess
	exPerm  func(float64) float64
	periods int
}

// New validates params and returns an unsolved, uninitialized agent cohort.
func New(p model.Params) (*Agent, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("agent params invalid: %w", err)
	}
	return &Agent{Params: p, engine: solver.New()}, nil
}

// SolveUnderBelief solves the decision problem as if the income persistence
// were corr, regardless of what the simulation environment will use.
// Failures from the solver are fatal and propagate unmodified.
func (a *Agent) SolveUnderBelief(corr float64) error {
	believed := a.Params.WithCorr(corr)
	if err := believed.Validate(); err != nil {
		return fmt.Errorf("belief params invalid: %w", err)
	}
	rule, err := a.engine.Solve(believed)
	if err != nil {
		return err
	}
	a.Rule = rule
	return nil
}

// AdoptRule installs an externally obtained rule (e.g. from a cache) in
// place of a fresh solve.
func (a *Agent) AdoptRule(r *model.Rule) {
	a.Rule = r
}

// InitializeSim resets the simulation state: every agent is a newborn drawn
// from the configured initial asset and income distributions. The RNG is
// reseeded so repeated runs with identical params are bit-identical.
func (a *Agent) InitializeSim() {
	n := a.Params.AgentCount
	a.rng = rand.New(rand.NewSource(a.Params.Seed))
	a.ALvl = make([]float64, n)
	a.PLvl = make([]float64, n)
	a.MLvl = make([]float64, n)
	a.periods = 0
	for i := 0; i < n; i++ {
		a.ALvl[i], a.PLvl[i] = a.drawNewborn()
		a.MLvl[i] = a.Params.Rfree*a.ALvl[i] + a.PLvl[i]
	}
}

// SimulateUnderEnvironment advances the cohort for the given number of
// periods with corr as the actual income persistence. Consumption follows
// the rule attached by SolveUnderBelief, whatever belief produced it.
func (a *Agent) SimulateUnderEnvironment(corr float64, periods int) error {
	if a.Rule == nil {
		return ErrNotSolved
	}
	if a.rng == nil {
		return errors.New("simulation not initialized; call InitializeSim first")
	}
	if periods < 1 {
		return errors.New("periods must be >= 1")
	}
	actual := a.Params.WithCorr(corr)
	if err := actual.Validate(); err != nil {
		return fmt.Errorf("environment params invalid: %w", err)
	}
	inc, err := solver.NewIncomeProcess(actual)
	if err != nil {
		return err
	}
	a.income = inc
	a.exPerm = solver.ExpectedPerm(actual)
	for t := 0; t < periods; t++ {
		a.step()
	}
	return nil
}

// step advances every agent one period: mortality, shocks, income update,
// consumption, end-of-period assets.
func (a *Agent) step() {
	p := a.Params
	for i := range a.ALvl {
		if a.rng.Float64() > p.LivPrb {
			a.ALvl[i], a.PLvl[i] = a.drawNewborn()
		}
		psi := drawAtom(a.rng, a.income.PermShk)
		theta := drawAtom(a.rng, a.income.TranShk)

		pNew := a.exPerm(a.PLvl[i]) * psi
		m := p.Rfree*a.ALvl[i] + pNew*theta
		c := a.Rule.Consumption(m, pNew)
		// Keep the budget feasible under interpolation error.
		if max := m - p.BoroCnst; c > max {
			c = max
		}
		if c < 0 {
			c = 0
		}

		a.PLvl[i] = pNew
		a.MLvl[i] = m
		a.ALvl[i] = m - c
	}
	a.periods++
}

// drawNewborn samples initial assets and permanent income from the
// configured lognormal moments.
func (a *Agent) drawNewborn() (aLvl, pLvl float64) {
	p := a.Params
	aLvl = math.Exp(p.InitialAssetMean + p.InitialAssetStd*a.rng.NormFloat64())
	pLvl = math.Exp(p.InitialIncomeMean + p.InitialIncomeStd*a.rng.NormFloat64())
	return aLvl, pLvl
}

// drawAtom samples one atom of a discrete distribution by cumulative weight.
func drawAtom(rng *rand.Rand, d approx.Discrete) float64 {
	u := rng.Float64()
	cum := 0.0
	for i, pr := range d.Probs {
		cum += pr
		if u < cum {
			return d.Atoms[i]
		}
	}
	return d.Atoms[len(d.Atoms)-1]
}
