package sim

import (
	"fmt"
	"math"
)

// SampleTimes returns the fixed output grid 0, dt, 2dt, ... strictly below
// years. The horizon itself is never included.
func SampleTimes(years, dt float64) []float64 {
	n := int(math.Ceil(years/dt - 1e-9))
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * dt
	}
	return times
}

// Run integrates sys from x0 across the sample grid defined by cfg. With an
// AdaptiveIntegrator the interior steps are error-controlled and clipped so
// every grid point is hit exactly; otherwise one fixed step is taken per grid
// interval. A partial result is never returned as success.
func Run(sys System, integ Integrator, x0 State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != sys.Dim() {
		return nil, fmt.Errorf("%w: state has %d entries, system wants %d", ErrDimensionMismatch, len(x0), sys.Dim())
	}

	times := SampleTimes(cfg.Years, cfg.Dt)
	result := &Result{
		Times:    times,
		States:   make([]State, 0, len(times)),
		MinValue: math.Inf(1),
	}

	x := x0.Clone()
	if !x.IsValid() {
		return nil, ErrInvalidState
	}
	result.record(x)

	adaptive, _ := integ.(AdaptiveIntegrator)

	t := 0.0
	h := cfg.Dt
	for i := 1; i < len(times); i++ {
		target := times[i]

		if adaptive == nil {
			x = integ.Step(sys, x, t, target-t)
			t = target
			result.StepsTaken++
		} else {
			var err error
			x, t, h, err = advance(adaptive, sys, x, t, target, h, cfg, result)
			if err != nil {
				return nil, err
			}
		}

		if !x.IsValid() {
			return nil, &StepError{Step: i, Time: t, Wrapped: ErrUnstable}
		}
		result.record(x)
	}

	return result, nil
}

// advance marches x from t up to target using error-controlled steps.
func advance(integ AdaptiveIntegrator, sys System, x State, t, target, h float64, cfg Config, result *Result) (State, float64, float64, error) {
	const eps = 1e-12
	for t < target-eps {
		step := h
		if step > target-t {
			step = target - t
		}

		xNew, hNext, err := integ.StepAdaptive(sys, x, t, step, cfg.Tolerance)
		switch {
		case err == nil:
			x = xNew
			t += step
			result.StepsTaken++
			h = hNext
			if h > cfg.MaxDt {
				h = cfg.MaxDt
			}
			if !x.IsValid() {
				return x, t, h, &StepError{Step: result.StepsTaken, Time: t, Wrapped: ErrUnstable}
			}
		case err == ErrToleranceNotMet:
			// Rejected step: retry with the suggested smaller size.
			if hNext < cfg.MinDt {
				return x, t, h, &StepError{Step: result.StepsTaken, Time: t, Wrapped: ErrStepTooSmall}
			}
			h = hNext
		default:
			return x, t, h, &StepError{Step: result.StepsTaken, Time: t, Wrapped: err}
		}
	}
	return x, target, h, nil
}

func (r *Result) record(x State) {
	r.States = append(r.States, x.Clone())
	if m := x.Min(); m < r.MinValue {
		r.MinValue = m
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Years <= 0 {
		return fmt.Errorf("years must be positive, got %f", cfg.Years)
	}
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", cfg.Tolerance)
	}
	if cfg.MinDt <= 0 || cfg.MaxDt < cfg.Dt {
		return fmt.Errorf("invalid step bounds: min=%g max=%g dt=%g", cfg.MinDt, cfg.MaxDt, cfg.Dt)
	}
	return nil
}
