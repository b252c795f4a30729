package workforce

import (
	"fmt"

	"github.com/forcesim/forcesim/internal/integrators"
	"github.com/forcesim/forcesim/internal/metrics"
	"github.com/forcesim/forcesim/internal/sim"
)

// Model pairs a rate configuration with an initial force structure. The
// configuration is never mutated after construction; scenario runs supply
// their own Params copy, so one Model is safe for concurrent use.
type Model struct {
	params  Params
	initial Grid
}

// New builds a model with the baseline configuration.
func New() *Model {
	m, err := NewWithParams(DefaultParams(), DefaultInitialPopulation())
	if err != nil {
		panic(err) // defaults always validate
	}
	return m
}

// NewWithParams builds a model from an explicit configuration. Shape errors
// surface here, not during integration.
func NewWithParams(p Params, initial Grid) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if initial.Ranks() != p.Ranks || initial.Specialties() != p.Specialties {
		return nil, fmt.Errorf("initial population is %dx%d, params want %dx%d",
			initial.Ranks(), initial.Specialties(), p.Ranks, p.Specialties)
	}
	return &Model{params: p.Clone(), initial: initial.Clone()}, nil
}

// Params returns a copy of the model's configuration.
func (m *Model) Params() Params {
	return m.params.Clone()
}

// Initial returns a copy of the initial force structure.
func (m *Model) Initial() Grid {
	return m.initial.Clone()
}

// Result is one finished simulation: the sample grid, the force structure at
// every sample point, and the derived metric series.
type Result struct {
	Times   []float64
	Grids   []Grid
	Metrics metrics.Series

	// MinPopulation is the smallest cell value seen anywhere in the series.
	// Negative values mean the run succeeded numerically but produced an
	// implausible population under the configured rates.
	MinPopulation float64
	StepsTaken    int
}

// Simulate runs the model from its initial population for the given horizon,
// sampling every dt years with the default adaptive integrator.
func (m *Model) Simulate(years, dt float64) (*Result, error) {
	return m.SimulateWith(m.params, years, dt, nil)
}

// SimulateWith runs with an explicit rate configuration, leaving the model
// untouched. Scenario runs go through here. A nil integrator selects
// adaptive RK45.
func (m *Model) SimulateWith(p Params, years, dt float64, integ sim.Integrator) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if p.Ranks != m.params.Ranks || p.Specialties != m.params.Specialties {
		return nil, fmt.Errorf("params are %dx%d, model is %dx%d",
			p.Ranks, p.Specialties, m.params.Ranks, m.params.Specialties)
	}
	if integ == nil {
		integ = integrators.NewRK45()
	}

	cfg := sim.DefaultConfig()
	cfg.Years = years
	cfg.Dt = dt
	if cfg.MaxDt < dt {
		cfg.MaxDt = dt
	}

	sys := &flowSystem{p: p.Clone()}
	raw, err := sim.Run(sys, integ, m.initial.Flatten(), cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Times:         raw.Times,
		Grids:         make([]Grid, len(raw.States)),
		MinPopulation: raw.MinValue,
		StepsTaken:    raw.StepsTaken,
	}
	for i, x := range raw.States {
		result.Grids[i] = Unflatten(x, p.Ranks, p.Specialties)
	}
	result.Metrics = metrics.Reduce(raw.Times, raw.States, p.Ranks, p.Specialties)
	return result, nil
}

// flowSystem is the ODE right-hand side for personnel flow. It is pure: all
// contributions accumulate into a separate delta vector, so the order of the
// per-cell terms never matters.
type flowSystem struct {
	p Params
}

func (f *flowSystem) Dim() int {
	return f.p.Ranks * f.p.Specialties
}

func (f *flowSystem) Derivative(x sim.State, t float64) sim.State {
	p := f.p
	d := make(sim.State, len(x))

	// Recruitment enters the most junior rank only, independent of the
	// current population.
	for s := 0; s < p.Specialties; s++ {
		d[s] += p.Recruitment[s]
	}

	for r := 0; r < p.Ranks; r++ {
		for s := 0; s < p.Specialties; s++ {
			idx := r*p.Specialties + s
			c := x[idx]

			// Attrition: pure loss.
			d[idx] -= c * p.Attrition[r]

			// Promotion: conserved transfer into the same specialty one
			// rank up; the most senior rank has no outflow.
			if r < p.Ranks-1 {
				flow := c * p.Promotion[r]
				d[idx] -= flow
				d[idx+p.Specialties] += flow
			}

			// Cross-training: pairwise conserved transfers at equal rank.
			for s2 := 0; s2 < p.Specialties; s2++ {
				if s2 == s {
					continue
				}
				flow := c * p.CrossTraining[s][s2] * CrossTrainingFraction
				d[idx] -= flow
				d[r*p.Specialties+s2] += flow
			}
		}
	}

	return d
}
