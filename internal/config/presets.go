package config

// Presets holds named starting configurations per registered system name.
var Presets = map[string]map[string]*Config{
	"decay": {
		"fast": {
			System: "decay", Stepper: "rk4", Mode: "fixed",
			Parameters: map[string]float64{"k": 5.0},
			InitialState: []float64{1.0}, T2: 2.0, TimeStep: 0.05,
		},
		"slow": {
			System: "decay", Stepper: "rk4", Mode: "fixed",
			Parameters: map[string]float64{"k": 0.1},
			InitialState: []float64{1.0}, T2: 50.0, TimeStep: 1.0,
		},
	},
	"logistic": {
		"growth": {
			System: "logistic", Stepper: "fehlberg45", Mode: "adaptive",
			Parameters: map[string]float64{"r": 1.0},
			InitialState: []float64{0.05}, T2: 15.0, TimeStep: 0.25,
		},
	},
	"harmonic": {
		"unit": {
			System: "harmonic", Stepper: "cashkarp45", Mode: "adaptive",
			InitialState: []float64{1.0, 0.0}, T2: 20 * 3.14159265358979, TimeStep: 0.5,
		},
	},
	"forced_oscillator": {
		"resonant": {
			System: "forced_oscillator", Stepper: "dormandprince45", Mode: "adaptive",
			Parameters:   map[string]float64{"k": 1.0, "c": 0.05, "A": 0.3, "w": 1.0},
			InitialState: []float64{0.0, 0.0}, T2: 60.0, TimeStep: 0.25,
		},
	},
	"vanderpol": {
		"relaxation": {
			System: "vanderpol", Stepper: "rk4", Mode: "fixed",
			Parameters: map[string]float64{"mu": 5.0},
			InitialState: []float64{2.0, 0.0}, T2: 30.0, TimeStep: 0.05,
			Sampler: Sampling{MaxChange: 0.05, MinStep: 1e-4},
		},
	},
	"lorenz": {
		"classic": {
			System: "lorenz", Stepper: "dormandprince45", Mode: "adaptive",
			InitialState: []float64{1.0, 1.0, 1.0}, T2: 40.0, TimeStep: 0.02,
		},
	},
}

// GetPreset returns the named preset for system, or nil if either the
// system or the preset name is not registered.
func GetPreset(system, preset string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	cfg, ok := systemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets lists the preset names registered for system.
func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	return names
}
