package sim

import "errors"

// Domain errors for simulation runs.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf entries.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the integration became numerically unstable.
	ErrUnstable = errors.New("sim: integration unstable (state diverged)")

	// ErrStepTooSmall indicates the adaptive timestep fell below the minimum
	// without satisfying the error tolerance.
	ErrStepTooSmall = errors.New("sim: adaptive timestep below minimum")

	// ErrToleranceNotMet signals a rejected adaptive step. The driver retries
	// with the suggested smaller timestep; callers never see this error.
	ErrToleranceNotMet = errors.New("sim: local error exceeds tolerance")

	// ErrDimensionMismatch indicates a state whose length does not match the
	// system dimension.
	ErrDimensionMismatch = errors.New("sim: dimension mismatch between state and system")
)

// StepError wraps an error with the step and time at which it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
