package scenario_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/forcesim/forcesim/internal/scenario"
	"github.com/forcesim/forcesim/internal/workforce"
)

var _ = Describe("Overrides", func() {
	var base workforce.Params

	BeforeEach(func() {
		base = workforce.DefaultParams()
	})

	It("keeps the base values when no field is set", func() {
		p := scenario.Overrides{}.Apply(base)
		Expect(p.Recruitment).To(Equal(base.Recruitment))
		Expect(p.Promotion).To(Equal(base.Promotion))
		Expect(p.Attrition).To(Equal(base.Attrition))
		Expect(p.MaxServiceYears).To(Equal(base.MaxServiceYears))
	})

	It("replaces only the fields that are set", func() {
		o := scenario.Overrides{Recruitment: []float64{150, 180, 120}}
		p := o.Apply(base)

		Expect(p.Recruitment).To(Equal([]float64{150, 180, 120}))
		Expect(p.Attrition).To(Equal(base.Attrition))
	})

	It("never modifies the base configuration", func() {
		o := scenario.Overrides{
			Recruitment: []float64{1, 2, 3},
			Attrition:   []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
		}
		_ = o.Apply(base)

		Expect(base.Recruitment).To(Equal([]float64{100, 120, 80}))
		Expect(base.Attrition[0]).To(Equal(0.15))
	})

	It("does not alias override slices into the result", func() {
		rates := []float64{150, 180, 120}
		p := scenario.Overrides{Recruitment: rates}.Apply(base)
		rates[0] = -999

		Expect(p.Recruitment[0]).To(Equal(150.0))
	})
})

var _ = Describe("Run", func() {
	var model *workforce.Model

	BeforeEach(func() {
		model = workforce.New()
	})

	It("produces the same grid as a plain simulation when nothing is overridden", func() {
		direct, err := model.Simulate(1.0, 0.1)
		Expect(err).NotTo(HaveOccurred())

		viaScenario, err := scenario.Run(model, scenario.Scenario{
			Label: "noop", Years: 1.0, Dt: 0.1,
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(viaScenario.Times).To(HaveLen(len(direct.Times)))
		Expect(viaScenario.Metrics.TotalForce[0]).To(BeNumerically("~", direct.Metrics.TotalForce[0], 1e-9))
	})

	It("leaves the model configuration untouched after a successful run", func() {
		before := model.Params()

		_, err := scenario.Run(model, scenario.Scenario{
			Label: "surge", Years: 2.0, Dt: 0.1,
			Overrides: scenario.Overrides{Recruitment: []float64{500, 500, 500}},
		})
		Expect(err).NotTo(HaveOccurred())

		after := model.Params()
		Expect(after.Recruitment).To(Equal(before.Recruitment))
		Expect(after.Promotion).To(Equal(before.Promotion))
		Expect(after.Attrition).To(Equal(before.Attrition))
	})

	It("leaves the model configuration untouched when the run fails", func() {
		before := model.Params()

		_, err := scenario.Run(model, scenario.Scenario{
			Label: "broken", Years: 2.0, Dt: 0.1,
			// Wrong length: validation fails before integration starts.
			Overrides: scenario.Overrides{Recruitment: []float64{500}},
		})
		Expect(err).To(HaveOccurred())

		after := model.Params()
		Expect(after.Recruitment).To(Equal(before.Recruitment))
	})

	It("labels errors with the scenario name", func() {
		_, err := scenario.Run(model, scenario.Scenario{
			Label:     "broken",
			Overrides: scenario.Overrides{Attrition: []float64{2, 2, 2, 2, 2, 2}},
		})
		Expect(err).To(MatchError(ContainSubstring(`scenario "broken"`)))
	})

	It("responds to a recruitment surge with a larger final force", func() {
		baseline, err := scenario.Run(model, scenario.Scenario{Label: "baseline", Years: 5, Dt: 0.1})
		Expect(err).NotTo(HaveOccurred())

		surged, err := scenario.Run(model, scenario.Scenario{
			Label: "surge", Years: 5, Dt: 0.1,
			Overrides: scenario.Overrides{Recruitment: []float64{150, 180, 120}},
		})
		Expect(err).NotTo(HaveOccurred())

		last := len(baseline.Metrics.TotalForce) - 1
		Expect(surged.Metrics.TotalForce[last]).To(BeNumerically(">", baseline.Metrics.TotalForce[last]))
	})
})

var _ = Describe("FromMap", func() {
	It("recognizes the model's rate parameters", func() {
		o, unknown, err := scenario.FromMap(map[string]any{
			"recruitment_rates": []any{150, 180.0, 120},
			"max_service_years": 25,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(unknown).To(BeEmpty())
		Expect(o.Recruitment).To(Equal([]float64{150, 180, 120}))
		Expect(*o.MaxServiceYears).To(Equal(25.0))
	})

	It("collects unknown names instead of failing", func() {
		o, unknown, err := scenario.FromMap(map[string]any{
			"recruitment_rates": []float64{1, 2, 3},
			"morale_boost":      1.5,
			"zz_unknown":        true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(unknown).To(Equal([]string{"morale_boost", "zz_unknown"}))
		Expect(o.Recruitment).To(Equal([]float64{1, 2, 3}))
	})

	It("rejects values of the wrong shape", func() {
		_, _, err := scenario.FromMap(map[string]any{
			"promotion_rates": "lots",
		})
		Expect(err).To(HaveOccurred())
	})

	It("parses a cross-training matrix", func() {
		o, _, err := scenario.FromMap(map[string]any{
			"cross_training_matrix": []any{
				[]any{0.8, 0.1, 0.1},
				[]any{0.1, 0.8, 0.1},
				[]any{0.1, 0.1, 0.8},
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(o.CrossTraining).To(HaveLen(3))
		Expect(o.CrossTraining[1][1]).To(Equal(0.8))
	})
})
