// Package sim provides the numerical core for compartmental ODE simulation.
//
// The package defines the fundamental types for integrating a continuous-time
// system dX/dt = f(X, t) across a fixed output grid:
//
//   - [State]: flattened vector of compartment values
//   - [System]: the ODE right-hand side
//   - [Integrator] / [AdaptiveIntegrator]: numerical stepping schemes
//   - [Run]: drives an integrator across the sample grid
//
// The output grid runs from 0 up to, but never including, the requested
// horizon. Adaptive integration is error-controlled; when the step controller
// cannot satisfy its tolerance above the configured minimum step, Run fails
// with [ErrStepTooSmall] rather than returning a partial series.
//
// # Thread Safety
//
// Run shares no state between calls; distinct calls may execute concurrently
// as long as each uses its own Integrator instance (integrators may carry
// scratch buffers).
package sim
