// Package metrics reduces raw population series into workforce indicators.
// Every value is a pure function of a single snapshot; nothing here mutates
// the population data.
package metrics

import "github.com/forcesim/forcesim/internal/sim"

// Point holds the indicators derived from one population snapshot.
type Point struct {
	Time float64

	// TotalForce is the sum of every compartment.
	TotalForce float64

	// SpecialtyShare is each specialty's fraction of the total force.
	// Defined as 0 when the total is exactly 0.
	SpecialtyShare []float64

	// JuniorSeniorRatio divides the junior half of the ranks by the senior
	// half, with the senior sum floored at 1. The floor is intentionally
	// asymmetric with the zero-total guard above; it matches the model's
	// historical output.
	JuniorSeniorRatio float64

	// SeniorCount is the headcount of the senior half of the ranks.
	SeniorCount float64
}

// Series is the per-time-point metrics of a complete run, laid out as
// parallel slices for plotting.
type Series struct {
	Times             []float64
	TotalForce        []float64
	SpecialtyShare    [][]float64 // indexed [specialty][timepoint]
	JuniorSeniorRatio []float64
	SeniorCount       []float64
}

// Snapshot derives the indicators for a single flattened (ranks × specialties)
// population grid.
func Snapshot(t float64, x sim.State, ranks, specialties int) Point {
	p := Point{
		Time:           t,
		SpecialtyShare: make([]float64, specialties),
	}

	for _, v := range x {
		p.TotalForce += v
	}

	if p.TotalForce != 0 {
		for s := 0; s < specialties; s++ {
			col := 0.0
			for r := 0; r < ranks; r++ {
				col += x[r*specialties+s]
			}
			p.SpecialtyShare[s] = col / p.TotalForce
		}
	}

	junior, senior := 0.0, 0.0
	split := ranks / 2
	for r := 0; r < ranks; r++ {
		rowSum := 0.0
		for s := 0; s < specialties; s++ {
			rowSum += x[r*specialties+s]
		}
		if r < split {
			junior += rowSum
		} else {
			senior += rowSum
		}
	}
	p.SeniorCount = senior
	if senior < 1 {
		senior = 1
	}
	p.JuniorSeniorRatio = junior / senior

	return p
}

// Reduce derives the full metric series for a run.
func Reduce(times []float64, states []sim.State, ranks, specialties int) Series {
	n := len(times)
	s := Series{
		Times:             times,
		TotalForce:        make([]float64, n),
		SpecialtyShare:    make([][]float64, specialties),
		JuniorSeniorRatio: make([]float64, n),
		SeniorCount:       make([]float64, n),
	}
	for i := range s.SpecialtyShare {
		s.SpecialtyShare[i] = make([]float64, n)
	}

	for i := 0; i < n && i < len(states); i++ {
		p := Snapshot(times[i], states[i], ranks, specialties)
		s.TotalForce[i] = p.TotalForce
		for sp := 0; sp < specialties; sp++ {
			s.SpecialtyShare[sp][i] = p.SpecialtyShare[sp]
		}
		s.JuniorSeniorRatio[i] = p.JuniorSeniorRatio
		s.SeniorCount[i] = p.SeniorCount
	}

	return s
}
