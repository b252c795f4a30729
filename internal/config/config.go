package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/forcesim/forcesim/internal/scenario"
)

const (
	DefaultYears      = 10.0
	DefaultDt         = 0.1
	DefaultIntegrator = "rk45"
)

type Config struct {
	Label      string         `yaml:"label"`
	Years      float64        `yaml:"years"`
	Dt         float64        `yaml:"dt"`
	Integrator string         `yaml:"integrator"`
	Overrides  map[string]any `yaml:"overrides"`
}

func DefaultConfig() *Config {
	return &Config{
		Label:      "baseline",
		Years:      DefaultYears,
		Dt:         DefaultDt,
		Integrator: DefaultIntegrator,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Scenario converts the config into a runnable scenario. Unknown override
// names come back in warnings; they are skipped, not fatal.
func (c *Config) Scenario() (scenario.Scenario, []string, error) {
	o, unknown, err := scenario.FromMap(c.Overrides)
	if err != nil {
		return scenario.Scenario{}, nil, err
	}
	return scenario.Scenario{
		Label:     c.Label,
		Years:     c.Years,
		Dt:        c.Dt,
		Overrides: o,
	}, unknown, nil
}
