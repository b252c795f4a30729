package workforce

import "github.com/forcesim/forcesim/internal/sim"

// Grid holds personnel counts indexed by (rank, specialty). Rank 0 is the
// most junior. Counts are continuous; the flow model can transiently dip a
// cell below zero under extreme rates (see Params.CrossTraining).
type Grid [][]float64

func NewGrid(ranks, specialties int) Grid {
	g := make(Grid, ranks)
	for r := range g {
		g[r] = make([]float64, specialties)
	}
	return g
}

func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for r := range g {
		c[r] = make([]float64, len(g[r]))
		copy(c[r], g[r])
	}
	return c
}

func (g Grid) Ranks() int {
	return len(g)
}

func (g Grid) Specialties() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) Total() float64 {
	total := 0.0
	for _, row := range g {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// RankTotal sums one rank across specialties.
func (g Grid) RankTotal(rank int) float64 {
	total := 0.0
	for _, v := range g[rank] {
		total += v
	}
	return total
}

// SpecialtyTotal sums one specialty column across ranks.
func (g Grid) SpecialtyTotal(specialty int) float64 {
	total := 0.0
	for _, row := range g {
		total += row[specialty]
	}
	return total
}

// Flatten lays the grid out row-major as a state vector.
func (g Grid) Flatten() sim.State {
	x := make(sim.State, 0, len(g)*g.Specialties())
	for _, row := range g {
		x = append(x, row...)
	}
	return x
}

// Unflatten rebuilds a grid from a row-major state vector.
func Unflatten(x sim.State, ranks, specialties int) Grid {
	g := NewGrid(ranks, specialties)
	for r := 0; r < ranks; r++ {
		copy(g[r], x[r*specialties:(r+1)*specialties])
	}
	return g
}
