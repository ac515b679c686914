package agent

// Tracker wraps an Agent and records the consumption level and marginal
// propensity to consume of every simulated agent, computed from the solved
// rule at each agent's realized (cash-on-hand, permanent income) state.
// It is a wrapper rather than a specialized agent so the recording logic
// stays separate from the simulation itself.
type Tracker struct {
	Agent *Agent

	Consumption []float64
	MPC         []float64
}

func NewTracker(a *Agent) *Tracker {
	return &Tracker{Agent: a}
}

// Record evaluates the rule and its cash-on-hand derivative at the current
// cross-section, refreshing both output arrays. Returns ErrNotSolved when
// no rule is attached.
func (t *Tracker) Record() error {
	a := t.Agent
	if a.Rule == nil {
		return ErrNotSolved
	}
	n := len(a.MLvl)
	if len(t.Consumption) != n {
		t.Consumption = make([]float64, n)
		t.MPC = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		t.Consumption[i] = a.Rule.Consumption(a.MLvl[i], a.PLvl[i])
		t.MPC[i] = a.Rule.MPC(a.MLvl[i], a.PLvl[i])
	}
	return nil
}

// Run simulates the wrapped agent for the given number of periods under the
// actual persistence corr, then records the final cross-section's
// consumption and MPC.
func (t *Tracker) Run(corr float64, periods int) error {
	if err := t.Agent.SimulateUnderEnvironment(corr, periods); err != nil {
		return err
	}
	return t.Record()
}
