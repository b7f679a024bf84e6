package config

var Presets = map[string]*Config{
	"cruise": {
		Oscillators: 6, Amplitude: 1.0, Frequency: 1.0, Mu: 1.0,
		Gait: "tripod", Coupling: 1.0,
		Integrator: "rk4", Dt: 0.01, Duration: 10.0, Threshold: 0.5,
		Turn: TurnConfig{Factor: DefaultTurnFactor},
	},
	"crawl": {
		Oscillators: 6, Amplitude: 1.0, Frequency: 0.5, Mu: 1.0,
		Gait: "wave", Coupling: 1.0,
		Integrator: "rk4", Dt: 0.01, Duration: 20.0, Threshold: 0.5,
		Turn: TurnConfig{Factor: DefaultTurnFactor},
	},
	"reverse": {
		Oscillators: 6, Amplitude: 1.0, Frequency: 1.0, Mu: 1.0,
		Gait: "tripod", Coupling: 1.0, Backward: true,
		Integrator: "rk4", Dt: 0.01, Duration: 10.0, Threshold: 0.5,
		Turn: TurnConfig{Factor: DefaultTurnFactor},
	},
	"pivot-right": {
		Oscillators: 6, Amplitude: 1.0, Frequency: 1.0, Mu: 1.0,
		Gait: "tripod", Coupling: 1.0,
		Integrator: "rk4", Dt: 0.01, Duration: 10.0, Threshold: 0.5,
		Turn: TurnConfig{Direction: "right", Factor: 0.8},
	},
	"scurry": {
		Oscillators: 6, Amplitude: 1.0, Frequency: 2.0, Mu: 2.0,
		Gait: "tripod", Coupling: 1.5,
		Integrator: "rk4", Dt: 0.005, Duration: 5.0, Threshold: 0.5,
		Turn: TurnConfig{Factor: DefaultTurnFactor},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
