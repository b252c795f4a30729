package sim

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Min() float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0]
	for _, v := range s[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func (s State) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

type System interface {
	Derivative(x State, t float64) State
	Dim() int
}

type Integrator interface {
	Step(sys System, x State, t float64, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error)
}

type Config struct {
	Dt        float64
	Years     float64
	Tolerance float64
	MaxDt     float64
	MinDt     float64
}

func DefaultConfig() Config {
	return Config{
		Dt:        0.1,
		Years:     10.0,
		Tolerance: 1e-6,
		MaxDt:     0.1,
		MinDt:     1e-10,
	}
}

type Result struct {
	Times      []float64
	States     []State
	StepsTaken int

	// MinValue is the smallest compartment value seen across all sampled
	// states. The continuous model can dip below zero under extreme rates;
	// callers use this to tell "solved but implausible" from a solver error.
	MinValue float64
}
