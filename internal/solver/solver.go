// Package solver computes the infinite-horizon consumption rule for a
// consumer whose permanent income follows a serially correlated process.
// It iterates the endogenous grid method on a cash-on-hand × permanent-income
// grid until the rule reaches a fixed point.
package solver

import (
	"fmt"
	"math"

	"consumption-sim/internal/approx"
	"consumption-sim/internal/model"
)

// Engine solves a consumer's decision problem under the persistence belief
// carried in params.Corr. Engines are stateless and safe to share.
type Engine struct{}

func New() *Engine { return &Engine{} }

// IncomeProcess holds the discretized shock distributions implied by params.
type IncomeProcess struct {
	PermShk approx.Discrete
	TranShk approx.Discrete
}

// NewIncomeProcess discretizes the permanent and transitory shocks,
// mixing the unemployment state and the labor tax into the transitory part.
func NewIncomeProcess(p model.Params) (IncomeProcess, error) {
	perm, err := approx.MeanOneLogNormal(p.PermShkStd, p.PermShkCount)
	if err != nil {
		return IncomeProcess{}, fmt.Errorf("permanent shock approximation: %w", err)
	}
	tran, err := approx.MeanOneLogNormal(p.TranShkStd, p.TranShkCount)
	if err != nil {
		return IncomeProcess{}, fmt.Errorf("transitory shock approximation: %w", err)
	}
	if p.TaxRate > 0 {
		tran = approx.Scale(tran, 1-p.TaxRate)
	}
	tran = approx.WithUnemployment(tran, p.UnempPrb, p.IncUnemp)
	return IncomeProcess{PermShk: perm, TranShk: tran}, nil
}

// ExpectedPerm is the belief-dependent mapping from this period's permanent
// income to next period's expected permanent income (before the shock).
// Callers must re-derive it after changing params.Corr.
func ExpectedPerm(p model.Params) func(float64) float64 {
	gro := p.PermGroFac
	corr := p.Corr
	return func(pLvl float64) float64 {
		return gro * math.Pow(pLvl, corr)
	}
}

// Solve returns the converged consumption rule for params. The persistence
// belief in effect is params.Corr; callers solving under a belief that
// differs from the simulated environment pass a copy with Corr overridden.
func (e *Engine) Solve(p model.Params) (*model.Rule, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	inc, err := NewIncomeProcess(p)
	if err != nil {
		return nil, err
	}

	permNodes := permGrid(p)
	aBase := assetGrid(p)
	pNext := ExpectedPerm(p)

	// Initial guess: consume everything (the terminal rule).
	rule := consumeAllRule(permNodes, p.BoroCnst)

	uPrimeInv := func(x float64) float64 { return math.Pow(x, -1/p.CRRA) }
	uPrime := func(c float64) float64 { return math.Pow(c, -p.CRRA) }
	betaEff := p.DiscFac * p.LivPrb

	for iter := 0; iter < p.SolveMaxIter; iter++ {
		mGrids := make([][]float64, len(permNodes))
		cGrids := make([][]float64, len(permNodes))
		dist := 0.0

		for k, pLvl := range permNodes {
			exPerm := pNext(pLvl)
			mRow := make([]float64, 0, len(aBase)+1)
			cRow := make([]float64, 0, len(aBase)+1)

			// Constrained lower segment: at the borrowing limit the
			// consumer spends all cash above it.
			mRow = append(mRow, p.BoroCnst)
			cRow = append(cRow, 0)

			for _, a := range aBase {
				// End-of-period asset level scales with permanent income so
				// the grid tracks where rich agents actually live.
				aLvl := p.BoroCnst + a*pLvl

				ev := 0.0
				for si, psi := range inc.PermShk.Atoms {
					pNew := exPerm * psi
					wPsi := inc.PermShk.Probs[si]
					for ti, theta := range inc.TranShk.Atoms {
						mNew := p.Rfree*aLvl + pNew*theta
						cNew := rule.Consumption(mNew, pNew)
						if cNew < 1e-12 {
							cNew = 1e-12
						}
						ev += wPsi * inc.TranShk.Probs[ti] * uPrime(cNew)
					}
				}
				c := uPrimeInv(betaEff * p.Rfree * ev)
				mRow = append(mRow, aLvl+c)
				cRow = append(cRow, c)
			}

			d := ruleDistance(rule, pLvl, mRow, cRow)
			if d > dist {
				dist = d
			}
			mGrids[k] = mRow
			cGrids[k] = cRow
		}

		next, err := model.NewRule(permNodes, mGrids, cGrids)
		if err != nil {
			return nil, fmt.Errorf("solve iteration %d: %w", iter, err)
		}
		rule = next
		if dist < p.SolveTol {
			return rule, nil
		}
	}
	return nil, fmt.Errorf("solve did not converge within %d iterations (tol %g)", p.SolveMaxIter, p.SolveTol)
}

// ruleDistance measures the sup-norm change of consumption at the new grid
// nodes for one permanent-income level.
func ruleDistance(old *model.Rule, pLvl float64, mRow, cRow []float64) float64 {
	d := 0.0
	for i, m := range mRow {
		diff := math.Abs(cRow[i] - old.Consumption(m, pLvl))
		if diff > d {
			d = diff
		}
	}
	return d
}

// permGrid builds an ascending grid of permanent income levels, log-spaced
// around the baseline level of one.
func permGrid(p model.Params) []float64 {
	n := p.PermGridCount
	nodes := make([]float64, n)
	step := 2 * p.PermGridWidth / float64(n-1)
	for i := range nodes {
		nodes[i] = math.Exp(-p.PermGridWidth + float64(i)*step)
	}
	return nodes
}

// assetGrid builds the end-of-period asset grid in units of permanent
// income, log-spaced to concentrate nodes near the constraint where the
// rule has the most curvature.
func assetGrid(p model.Params) []float64 {
	n := p.AssetGridCount
	nodes := make([]float64, n)
	logMin := math.Log(p.AssetGridMin)
	logMax := math.Log(p.AssetGridMax)
	step := (logMax - logMin) / float64(n-1)
	for i := range nodes {
		nodes[i] = math.Exp(logMin + float64(i)*step)
	}
	return nodes
}

// consumeAllRule is the c(m) = m - boroCnst rule used to seed the iteration.
func consumeAllRule(permNodes []float64, boroCnst float64) *model.Rule {
	mGrids := make([][]float64, len(permNodes))
	cGrids := make([][]float64, len(permNodes))
	for k := range permNodes {
		mGrids[k] = []float64{boroCnst, boroCnst + 1}
		cGrids[k] = []float64{0, 1}
	}
	// Grid shapes are valid by construction.
	r, _ := model.NewRule(permNodes, mGrids, cGrids)
	return r
}
