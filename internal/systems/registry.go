// Package systems is a name -> constructor registry of example ode.Systems
// used by tests and the CLI in place of ad hoc closures.
package systems

import "github.com/san-kum/odeint/internal/ode"

// Constructor builds a System from a parameter override map; callers may
// pass nil or a partial map to take the provider's defaults.
type Constructor func(params map[string]float64) (*ode.System, error)

var registry = map[string]Constructor{
	"decay":             newDecay,
	"logistic":          newLogistic,
	"harmonic":          newHarmonic,
	"forced_oscillator": newForcedOscillator,
	"vanderpol":         newVanDerPol,
	"lorenz":            newLorenz,
	"rossler":           newRossler,
	"duffing":           newDuffing,
	"doublewell":        newDoubleWell,
}

// Get constructs the named system, merging params over that system's
// defaults. Returns false if the name is not registered.
func Get(name string, params map[string]float64) (*ode.System, bool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, false, nil
	}
	sys, err := ctor(params)
	return sys, true, err
}

// Names lists the registered system names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func mergeDefaults(defaults, overrides map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
