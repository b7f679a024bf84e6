package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOscillators = 6
	DefaultAmplitude   = 1.0
	DefaultFrequency   = 1.0
	DefaultMu          = 1.0
	DefaultCoupling    = 1.0
	DefaultDt          = 0.01
	DefaultDuration    = 10.0
	DefaultThreshold   = 0.5
	DefaultTurnFactor  = 0.3
)

type Config struct {
	Oscillators int     `yaml:"oscillators"`
	Amplitude   float64 `yaml:"amplitude"`
	Frequency   float64 `yaml:"frequency"`
	Mu          float64 `yaml:"mu"`

	Gait     string  `yaml:"gait"`
	Coupling float64 `yaml:"coupling"`
	Backward bool    `yaml:"backward"`

	Turn TurnConfig `yaml:"turn"`

	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Threshold  float64 `yaml:"threshold"`
}

type TurnConfig struct {
	Direction string  `yaml:"direction"`
	Factor    float64 `yaml:"factor"`
}

func DefaultConfig() *Config {
	return &Config{
		Oscillators: DefaultOscillators,
		Amplitude:   DefaultAmplitude,
		Frequency:   DefaultFrequency,
		Mu:          DefaultMu,
		Gait:        "tripod",
		Coupling:    DefaultCoupling,
		Turn:        TurnConfig{Factor: DefaultTurnFactor},
		Integrator:  "rk4",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		Threshold:   DefaultThreshold,
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

// Validate checks the fields the network constructor does not see.
func (c *Config) Validate() error {
	if c.Oscillators < 1 {
		return fmt.Errorf("config: oscillators must be at least 1, got %d", c.Oscillators)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %f", c.Duration)
	}
	if c.Coupling < 0 {
		return fmt.Errorf("config: coupling must be non-negative, got %f", c.Coupling)
	}
	return nil
}
