package workforce

import "fmt"

const (
	DefaultRanks       = 6
	DefaultSpecialties = 3

	// CrossTrainingFraction scales the cross-training matrix into an annual
	// flow rate between specialties at equal rank.
	CrossTrainingFraction = 0.05
)

// DefaultSpecialtyNames labels the default three specialty columns.
var DefaultSpecialtyNames = []string{"Combat", "Technical", "Support"}

// DefaultRankNames labels the default six enlisted ranks, junior to senior.
var DefaultRankNames = []string{"E1", "E2", "E3", "E4", "E5", "E6"}

// Params bundles every rate the flow model uses. Values are treated as
// immutable for the duration of a run; scenario overrides build a new Params
// rather than mutating one in place, so a single Params may back concurrent
// runs.
type Params struct {
	Ranks       int
	Specialties int

	// Recruitment is the constant annual inflow per specialty, applied to
	// the most junior rank only.
	Recruitment []float64

	// Promotion is the annual outflow fraction per rank into the next rank.
	// The most senior rank has no promotion outflow.
	Promotion []float64

	// Attrition is the annual separation/retirement fraction per rank, a
	// pure loss from the system.
	Attrition []float64

	// CrossTraining is a specialties × specialties stochastic-like matrix
	// (rows sum to ~1, diagonal dominant). Off-diagonal entries, scaled by
	// CrossTrainingFraction, are the annual transfer rates between
	// specialties at equal rank. The off-diagonal outflows are not
	// normalized against each other, so stacked outflows from one cell can
	// exceed its population in high-rate regimes. That is a deliberate
	// modeling approximation, kept rather than clamped.
	CrossTraining [][]float64

	// TrainingTimes (years per specialty) and MaxServiceYears are part of
	// the configuration surface but are not applied by the dynamics.
	// Wiring in retirement-at-max-service would require per-cohort age
	// tracking that the rank × specialty state cannot express; see
	// DESIGN.md.
	TrainingTimes   []float64
	MaxServiceYears float64
}

// DefaultParams returns the baseline rate configuration.
func DefaultParams() Params {
	return Params{
		Ranks:       DefaultRanks,
		Specialties: DefaultSpecialties,
		Recruitment: []float64{100, 120, 80},
		Promotion:   []float64{0.3, 0.25, 0.2, 0.15, 0.1, 0},
		Attrition:   []float64{0.15, 0.12, 0.10, 0.08, 0.05, 0.15},
		CrossTraining: [][]float64{
			{0.90, 0.05, 0.05},
			{0.05, 0.90, 0.05},
			{0.05, 0.05, 0.90},
		},
		TrainingTimes:   []float64{0.5, 0.75, 0.33},
		MaxServiceYears: 20,
	}
}

// DefaultInitialPopulation returns the baseline force structure.
func DefaultInitialPopulation() Grid {
	return Grid{
		{1000, 1200, 800},
		{900, 1000, 700},
		{700, 800, 600},
		{500, 600, 400},
		{300, 400, 200},
		{100, 150, 80},
	}
}

// Clone deep-copies every slice so the copy can be modified independently.
func (p Params) Clone() Params {
	c := p
	c.Recruitment = append([]float64(nil), p.Recruitment...)
	c.Promotion = append([]float64(nil), p.Promotion...)
	c.Attrition = append([]float64(nil), p.Attrition...)
	c.TrainingTimes = append([]float64(nil), p.TrainingTimes...)
	c.CrossTraining = make([][]float64, len(p.CrossTraining))
	for i, row := range p.CrossTraining {
		c.CrossTraining[i] = append([]float64(nil), row...)
	}
	return c
}

// Validate checks shapes and rate ranges. It is called at model construction
// and before every scenario run so mismatches fail fast, never mid-integration.
func (p Params) Validate() error {
	if p.Ranks < 2 {
		return fmt.Errorf("need at least 2 ranks, got %d", p.Ranks)
	}
	if p.Specialties < 1 {
		return fmt.Errorf("need at least 1 specialty, got %d", p.Specialties)
	}
	if len(p.Recruitment) != p.Specialties {
		return fmt.Errorf("recruitment has %d entries, want %d (one per specialty)", len(p.Recruitment), p.Specialties)
	}
	if len(p.Promotion) != p.Ranks {
		return fmt.Errorf("promotion has %d entries, want %d (one per rank)", len(p.Promotion), p.Ranks)
	}
	if len(p.Attrition) != p.Ranks {
		return fmt.Errorf("attrition has %d entries, want %d (one per rank)", len(p.Attrition), p.Ranks)
	}
	if len(p.CrossTraining) != p.Specialties {
		return fmt.Errorf("cross-training matrix has %d rows, want %d", len(p.CrossTraining), p.Specialties)
	}
	for i, row := range p.CrossTraining {
		if len(row) != p.Specialties {
			return fmt.Errorf("cross-training row %d has %d entries, want %d", i, len(row), p.Specialties)
		}
	}
	for s, v := range p.Recruitment {
		if v < 0 {
			return fmt.Errorf("recruitment rate for specialty %d is negative: %f", s, v)
		}
	}
	for r, v := range p.Promotion {
		if v < 0 || v >= 1 {
			return fmt.Errorf("promotion rate for rank %d is %f, want [0,1)", r, v)
		}
	}
	for r, v := range p.Attrition {
		if v < 0 || v >= 1 {
			return fmt.Errorf("attrition rate for rank %d is %f, want [0,1)", r, v)
		}
	}
	return nil
}
