// Package chart renders a sampled trajectory component as a terminal
// line chart, wrapping github.com/guptarohit/asciigraph.
package chart

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odeint/internal/ode"
	"github.com/san-kum/odeint/internal/sampler"
)

// Component extracts the i-th state component of every sample in traj as
// a plain series, for feeding to asciigraph or any other plotting tool.
func Component(traj *sampler.Trajectory, i int) ([]float64, error) {
	series := make([]float64, traj.Len())
	for k := 0; k < traj.Len(); k++ {
		_, x, err := traj.At(k)
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= len(x) {
			return nil, &ode.Error{Op: "chart.Component", Err: ode.ErrInvalidRequest, Detail: fmt.Sprintf("component %d out of range for dimension %d", i, len(x))}
		}
		series[k] = x[i]
	}
	return series, nil
}

// Render draws component i of traj against time as an ASCII line chart,
// captioned label.
func Render(traj *sampler.Trajectory, i int, label string, width, height int) (string, error) {
	series, err := Component(traj, i)
	if err != nil {
		return "", err
	}
	opts := []asciigraph.Option{
		asciigraph.Caption(label),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	if height > 0 {
		opts = append(opts, asciigraph.Height(height))
	}
	return asciigraph.Plot(series, opts...), nil
}

// RenderAll draws every state component of traj as a stack of labeled
// ASCII line charts.
func RenderAll(traj *sampler.Trajectory, width, height int) (string, error) {
	if traj.Len() == 0 {
		return "", &ode.Error{Op: "chart.RenderAll", Err: ode.ErrInvalidRequest, Detail: "empty trajectory"}
	}
	_, x0, err := traj.At(0)
	if err != nil {
		return "", err
	}

	out := ""
	for i := range x0 {
		plot, err := Render(traj, i, fmt.Sprintf("x%d", i), width, height)
		if err != nil {
			return "", err
		}
		out += plot + "\n\n"
	}
	return out, nil
}
