package integrators

import (
	"fmt"

	"github.com/forcesim/forcesim/internal/sim"
)

// ByName returns a fresh integrator instance. The empty name selects the
// default adaptive RK45.
func ByName(name string) (sim.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	case "rk45", "":
		return NewRK45(), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s", name)
}

// Names lists the available integrators.
func Names() []string {
	return []string{"rk45", "rk4", "euler"}
}
