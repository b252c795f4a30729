package config

import "sort"

// Presets are named what-if configurations covering the planning questions
// the model is usually asked: recruiting surges, force drawdowns, retention
// problems and retention pushes.
var Presets = map[string]*Config{
	"baseline": {
		Label: "Baseline", Years: 10, Dt: 0.1, Integrator: "rk45",
	},
	"surge-recruitment": {
		Label: "Increased Recruitment", Years: 10, Dt: 0.1, Integrator: "rk45",
		Overrides: map[string]any{
			"recruitment_rates": []float64{150, 180, 120},
		},
	},
	"drawdown": {
		Label: "Force Drawdown", Years: 10, Dt: 0.1, Integrator: "rk45",
		Overrides: map[string]any{
			"recruitment_rates": []float64{50, 60, 40},
			"attrition_rates":   []float64{0.20, 0.16, 0.14, 0.11, 0.08, 0.18},
		},
	},
	"high-attrition": {
		Label: "High Attrition", Years: 10, Dt: 0.1, Integrator: "rk45",
		Overrides: map[string]any{
			"attrition_rates": []float64{0.25, 0.20, 0.17, 0.13, 0.09, 0.20},
		},
	},
	"retention-push": {
		Label: "Retention Push", Years: 10, Dt: 0.1, Integrator: "rk45",
		Overrides: map[string]any{
			"attrition_rates": []float64{0.10, 0.08, 0.07, 0.05, 0.03, 0.10},
			"promotion_rates": []float64{0.35, 0.30, 0.22, 0.17, 0.12, 0},
		},
	},
	"technical-pivot": {
		Label: "Technical Pivot", Years: 10, Dt: 0.1, Integrator: "rk45",
		Overrides: map[string]any{
			"recruitment_rates": []float64{80, 180, 80},
			"cross_training_matrix": [][]float64{
				{0.85, 0.10, 0.05},
				{0.03, 0.94, 0.03},
				{0.05, 0.10, 0.85},
			},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not
// exist. Callers get their own Config and Overrides map, so adjusting
// horizon or integrator settings on the result leaves the preset intact.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	if cfg.Overrides != nil {
		c.Overrides = make(map[string]any, len(cfg.Overrides))
		for k, v := range cfg.Overrides {
			c.Overrides[k] = v
		}
	}
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
