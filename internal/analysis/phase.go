package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/odeint/internal/ode"
)

// PhasePortrait2D holds a projection of a trajectory onto two state
// components.
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []struct{ X, Y float64 }
}

// GeneratePhasePortrait advances sys with a fixed step and records the
// (xIdx, yIdx) projection of the state at every step.
func GeneratePhasePortrait(sys *ode.System, stepper ode.Stepper, x0 []float64, xIdx, yIdx int, t0, dt, duration float64) (*PhasePortrait2D, error) {
	if xIdx >= len(x0) || yIdx >= len(x0) {
		return nil, nil
	}

	d, err := ode.NewDriver(sys, stepper, x0, t0)
	if err != nil {
		return nil, err
	}
	if err := d.SetStepSize(dt); err != nil {
		return nil, err
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]struct{ X, Y float64 }, 0, int(duration/dt)),
	}

	t := t0
	for t < t0+duration {
		t += dt
		if _, err := d.SolveFixed(t); err != nil {
			return nil, err
		}
		x := d.CurrentX()
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{X: x[xIdx], Y: x[yIdx]})
	}

	return portrait, nil
}

// PhasePortraitToASCII renders a portrait as a width x height character
// grid, with axes drawn through the origin when it falls inside the
// plotted range.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '*'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '|'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '-'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
