package sim

import (
	"errors"
	"math"
	"testing"
)

// decay is dx/dt = -k x, with the analytic solution x0 * exp(-k t).
type decay struct {
	k float64
}

func (d *decay) Dim() int { return 1 }

func (d *decay) Derivative(x State, t float64) State {
	return State{-d.k * x[0]}
}

// fakeAdaptive is a midpoint stepper for driver tests that reports a
// rejection whenever dt exceeds its limit.
type fakeAdaptive struct {
	rejectAbove float64
}

func (f *fakeAdaptive) Step(sys System, x State, t, dt float64) State {
	mid := make(State, len(x))
	k1 := sys.Derivative(x, t)
	for i := range x {
		mid[i] = x[i] + 0.5*dt*k1[i]
	}
	k2 := sys.Derivative(mid, t+0.5*dt)
	out := make(State, len(x))
	for i := range x {
		out[i] = x[i] + dt*k2[i]
	}
	return out
}

func (f *fakeAdaptive) StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error) {
	if f.rejectAbove > 0 && dt > f.rejectAbove {
		return x, dt * 0.2, ErrToleranceNotMet
	}
	return f.Step(sys, x, t, dt), dt, nil
}

func TestSampleTimes_ExclusiveHorizon(t *testing.T) {
	tests := []struct {
		years, dt float64
		count     int
	}{
		{1.0, 0.1, 10},
		{1.0, 0.25, 4},
		{10.0, 0.1, 100},
		{0.5, 0.5, 1},
	}

	for _, tt := range tests {
		times := SampleTimes(tt.years, tt.dt)
		if len(times) != tt.count {
			t.Errorf("years=%f dt=%f: expected %d points, got %d", tt.years, tt.dt, tt.count, len(times))
			continue
		}
		if times[0] != 0 {
			t.Errorf("first sample should be 0, got %f", times[0])
		}
		last := times[len(times)-1]
		if last >= tt.years {
			t.Errorf("horizon must be exclusive: last sample %f >= %f", last, tt.years)
		}
	}
}

func TestRun_FixedStepAccuracy(t *testing.T) {
	sys := &decay{k: 1.0}
	cfg := Config{Dt: 0.01, Years: 1.0, Tolerance: 1e-6, MaxDt: 0.01, MinDt: 1e-10}

	result, err := Run(sys, &fakeAdaptive{}, State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != len(result.Times) {
		t.Fatalf("states/times length mismatch: %d vs %d", len(result.States), len(result.Times))
	}

	for i, tm := range result.Times {
		want := math.Exp(-tm)
		got := result.States[i][0]
		if math.Abs(got-want) > 1e-3 {
			t.Errorf("t=%.2f: expected %f, got %f", tm, want, got)
		}
	}
}

func TestRun_RejectedStepsRetry(t *testing.T) {
	sys := &decay{k: 1.0}
	// Every step above 0.02 is rejected, so the driver must subdivide to
	// reach each 0.1 grid point.
	integ := &fakeAdaptive{rejectAbove: 0.02}
	cfg := Config{Dt: 0.1, Years: 1.0, Tolerance: 1e-6, MaxDt: 0.1, MinDt: 1e-6}

	result, err := Run(sys, integ, State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.StepsTaken < 50 {
		t.Errorf("expected subdivided steps, got %d", result.StepsTaken)
	}

	final := result.States[len(result.States)-1][0]
	want := math.Exp(-result.Times[len(result.Times)-1])
	if math.Abs(final-want) > 1e-3 {
		t.Errorf("expected %f, got %f", want, final)
	}
}

func TestRun_StepTooSmall(t *testing.T) {
	sys := &decay{k: 1.0}
	// Rejections drive the step below MinDt before anything is accepted.
	integ := &fakeAdaptive{rejectAbove: 1e-9}
	cfg := Config{Dt: 0.1, Years: 1.0, Tolerance: 1e-6, MaxDt: 0.1, MinDt: 1e-4}

	_, err := Run(sys, integ, State{1.0}, cfg)
	if !errors.Is(err, ErrStepTooSmall) {
		t.Errorf("expected ErrStepTooSmall, got %v", err)
	}
}

// blowup diverges immediately to Inf.
type blowup struct{}

func (b *blowup) Dim() int { return 1 }

func (b *blowup) Derivative(x State, t float64) State {
	return State{math.Inf(1)}
}

func TestRun_UnstableDetected(t *testing.T) {
	cfg := Config{Dt: 0.1, Years: 1.0, Tolerance: 1e-6, MaxDt: 0.1, MinDt: 1e-10}

	_, err := Run(&blowup{}, &fakeAdaptive{}, State{1.0}, cfg)
	if !errors.Is(err, ErrUnstable) {
		t.Errorf("expected ErrUnstable, got %v", err)
	}
}

func TestRun_ConfigValidation(t *testing.T) {
	sys := &decay{k: 1.0}
	integ := &fakeAdaptive{}

	bad := []Config{
		{Dt: 0, Years: 1, Tolerance: 1e-6, MaxDt: 0.1, MinDt: 1e-10},
		{Dt: 0.1, Years: -1, Tolerance: 1e-6, MaxDt: 0.1, MinDt: 1e-10},
		{Dt: 0.1, Years: 1, Tolerance: 0, MaxDt: 0.1, MinDt: 1e-10},
		{Dt: 0.1, Years: 1, Tolerance: 1e-6, MaxDt: 0.01, MinDt: 1e-10},
	}
	for i, cfg := range bad {
		if _, err := Run(sys, integ, State{1.0}, cfg); err == nil {
			t.Errorf("config %d: expected validation error", i)
		}
	}
}

func TestRun_DimensionMismatch(t *testing.T) {
	cfg := DefaultConfig()
	_, err := Run(&decay{k: 1}, &fakeAdaptive{}, State{1, 2}, cfg)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestRun_TracksMinValue(t *testing.T) {
	sys := &decay{k: -1.0} // growth, but start negative
	cfg := Config{Dt: 0.1, Years: 1.0, Tolerance: 1e-6, MaxDt: 0.1, MinDt: 1e-10}

	result, err := Run(sys, &fakeAdaptive{}, State{-1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.MinValue >= -1.0+1e-9 {
		t.Errorf("expected MinValue below -1, got %f", result.MinValue)
	}
}
