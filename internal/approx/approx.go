// Package approx builds deterministic discrete approximations to the
// continuous distributions the model uses: a uniform ensemble for
// heterogeneous discount factors and equiprobable lognormal nodes for the
// income shocks. No pseudo-random sampling happens here.
package approx

import (
	"errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// Discrete is a finite distribution: parallel atoms and probabilities.
type Discrete struct {
	Atoms []float64
	Probs []float64
}

// Mean returns the probability-weighted mean of the atoms.
func (d Discrete) Mean() float64 {
	m := 0.0
	for i, a := range d.Atoms {
		m += a * d.Probs[i]
	}
	return m
}

// Uniform returns n equiprobable representative nodes of
// Uniform(center-spread, center+spread), ascending and symmetric about
// center. Each node is the midpoint of one of n equal-width slices.
func Uniform(center, spread float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, errors.New("node count must be >= 1")
	}
	if spread < 0 {
		return nil, errors.New("spread must be >= 0")
	}
	nodes := make([]float64, n)
	width := 2 * spread / float64(n)
	bot := center - spread
	for i := range nodes {
		nodes[i] = bot + (float64(i)+0.5)*width
	}
	return nodes, nil
}

// MeanOneLogNormal returns an n-node equiprobable approximation to a
// lognormal with mean one and log-std sigma. Each atom is the conditional
// mean of its probability slice, so the approximation itself has mean one.
func MeanOneLogNormal(sigma float64, n int) (Discrete, error) {
	if n < 1 {
		return Discrete{}, errors.New("node count must be >= 1")
	}
	if sigma < 0 {
		return Discrete{}, errors.New("sigma must be >= 0")
	}
	atoms := make([]float64, n)
	probs := make([]float64, n)
	if sigma == 0 {
		for i := range atoms {
			atoms[i] = 1.0
			probs[i] = 1.0 / float64(n)
		}
		return Discrete{Atoms: atoms, Probs: probs}, nil
	}

	// X = exp(mu + sigma*Z) with mu = -sigma^2/2 so that E[X] = 1.
	// For the slice with standard-normal cutoffs (zLo, zHi):
	//   E[X | zLo < Z < zHi] = (Phi(zHi-sigma) - Phi(zLo-sigma)) / (1/n)
	norm := distuv.UnitNormal
	prevShift := 0.0
	for i := 0; i < n; i++ {
		shift := 1.0
		if i < n-1 {
			z := norm.Quantile(float64(i+1) / float64(n))
			shift = norm.CDF(z - sigma)
		}
		atoms[i] = float64(n) * (shift - prevShift)
		probs[i] = 1.0 / float64(n)
		prevShift = shift
	}
	return Discrete{Atoms: atoms, Probs: probs}, nil
}

// WithUnemployment mixes an unemployment state into a transitory income
// distribution: with probability prb income is the replacement level, and
// employed atoms are rescaled so the overall mean stays at the original mean.
func WithUnemployment(d Discrete, prb, replacement float64) Discrete {
	if prb <= 0 {
		return d
	}
	base := d.Mean()
	scale := (base - prb*replacement) / ((1 - prb) * base)
	atoms := make([]float64, 0, len(d.Atoms)+1)
	probs := make([]float64, 0, len(d.Probs)+1)
	atoms = append(atoms, replacement)
	probs = append(probs, prb)
	for i, a := range d.Atoms {
		atoms = append(atoms, a*scale)
		probs = append(probs, d.Probs[i]*(1-prb))
	}
	return Discrete{Atoms: atoms, Probs: probs}
}

// Scale multiplies every atom by k, leaving probabilities untouched.
func Scale(d Discrete, k float64) Discrete {
	atoms := make([]float64, len(d.Atoms))
	for i, a := range d.Atoms {
		atoms[i] = a * k
	}
	return Discrete{Atoms: atoms, Probs: d.Probs}
}
