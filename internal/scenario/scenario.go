// Package scenario runs what-if simulations against a workforce model.
//
// Overrides are expressed as a partial update that produces a fresh Params
// value; the model's own configuration is never touched, so nothing needs
// restoring on any exit path and concurrent scenario runs against one model
// are safe.
package scenario

import (
	"fmt"

	"github.com/forcesim/forcesim/internal/workforce"
)

// Overrides is a partial rate configuration. Nil fields keep the model's
// value; non-nil fields replace it wholesale.
type Overrides struct {
	Recruitment     []float64
	Promotion       []float64
	Attrition       []float64
	CrossTraining   [][]float64
	TrainingTimes   []float64
	MaxServiceYears *float64
}

// Apply merges the overrides into a copy of base. Base is never modified.
func (o Overrides) Apply(base workforce.Params) workforce.Params {
	p := base.Clone()
	if o.Recruitment != nil {
		p.Recruitment = append([]float64(nil), o.Recruitment...)
	}
	if o.Promotion != nil {
		p.Promotion = append([]float64(nil), o.Promotion...)
	}
	if o.Attrition != nil {
		p.Attrition = append([]float64(nil), o.Attrition...)
	}
	if o.CrossTraining != nil {
		p.CrossTraining = make([][]float64, len(o.CrossTraining))
		for i, row := range o.CrossTraining {
			p.CrossTraining[i] = append([]float64(nil), row...)
		}
	}
	if o.TrainingTimes != nil {
		p.TrainingTimes = append([]float64(nil), o.TrainingTimes...)
	}
	if o.MaxServiceYears != nil {
		p.MaxServiceYears = *o.MaxServiceYears
	}
	return p
}

// Scenario is a labeled override set with a simulation horizon.
type Scenario struct {
	Label     string
	Years     float64
	Dt        float64
	Overrides Overrides
}

// Run simulates the scenario against the model. The model's configuration is
// read once through its accessor; whether the run succeeds or fails, the
// model is left exactly as it was.
func Run(m *workforce.Model, sc Scenario) (*workforce.Result, error) {
	years := sc.Years
	if years <= 0 {
		years = 10
	}
	dt := sc.Dt
	if dt <= 0 {
		dt = 0.1
	}
	p := sc.Overrides.Apply(m.Params())
	result, err := m.SimulateWith(p, years, dt, nil)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Label, err)
	}
	return result, nil
}
