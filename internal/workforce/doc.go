// Package workforce models military personnel flow across rank and specialty
// compartments as a continuous-time ODE system.
//
// Each (rank, specialty) cell is a compartment. Recruitment feeds the most
// junior rank, promotion moves people one rank up within a specialty,
// attrition drains every rank, and cross-training moves people between
// specialties at equal rank. The dynamics are time-invariant; the system is
// integrated with an adaptive RK45 scheme and sampled on a fixed grid.
package workforce
