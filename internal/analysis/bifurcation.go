package analysis

import (
	"github.com/san-kum/odeint/internal/ode"
)

// BifurcationPoint is the set of distinct long-run values a state
// component settles into for one parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// BifurcationDiagram sweeps paramName over [paramMin, paramMax] in
// paramSteps values, discards a transient of length transient at each
// value, and records the distinct values stateIndex takes on during the
// following record interval. A period-doubling route to chaos shows up
// as the recorded value count growing with the swept parameter.
func BifurcationDiagram(sys *ode.System, stepper ode.Stepper, paramName string, paramMin, paramMax float64, paramSteps, stateIndex int, x0 []float64, t0, dt, transient, record float64) ([]BifurcationPoint, error) {
	if paramSteps <= 1 {
		paramSteps = 2
	}
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)

	base := sys.Parameters()
	defer sys.SetParameters(base)

	results := make([]BifurcationPoint, 0, paramSteps)

	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*paramStep

		params := make(map[string]float64, len(base)+1)
		for k, v := range base {
			params[k] = v
		}
		params[paramName] = param
		if err := sys.SetParameters(params); err != nil {
			return nil, err
		}

		d, err := ode.NewDriver(sys, stepper, x0, t0)
		if err != nil {
			return nil, err
		}
		if err := d.SetStepSize(dt); err != nil {
			return nil, err
		}

		t := t0
		if _, err := d.SolveFixed(t + transient); err != nil {
			return nil, err
		}
		t += transient

		values := make([]float64, 0, 100)
		seen := make(map[int]bool)
		for t < t0+transient+record {
			t += dt
			if _, err := d.SolveFixed(t); err != nil {
				return nil, err
			}
			x := d.CurrentX()
			if stateIndex >= len(x) {
				continue
			}
			key := int(x[stateIndex] * 1000)
			if !seen[key] {
				seen[key] = true
				values = append(values, x[stateIndex])
			}
		}

		results = append(results, BifurcationPoint{Param: param, Values: values})
	}

	return results, nil
}

// BifurcationToASCII renders a diagram as a width x height scatter, one
// column of parameter values per point.
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height && col >= 0 && col < width {
				canvas[row][col] = '.'
			}
		}
	}

	result := ""
	for _, row := range canvas {
		result += string(row) + "\n"
	}
	return result
}
