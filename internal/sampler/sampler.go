// Package sampler marches a Driver through a requested time interval,
// honoring a fixed time-grid spacing plus a maximum-per-sample-
// displacement constraint via bisective step refinement.
package sampler

import (
	"math"

	"github.com/san-kum/odeint/internal/ode"
)

// Options tunes GetSolutionAtPoints. Zero-valued MaxChange/MinStep mean
// "use the default" (+Inf and 1e-30 respectively); negative values are
// rejected as invalid tuning. MaxPoints of 0 means unlimited.
type Options struct {
	XMin, XMax []float64
	MaxPoints  int
	MaxChange  float64
	MinStep    float64
	Adaptive   bool

	// OnSample, if set, is called synchronously with every sample as it
	// is recorded (in traversal order, before any final reversal), for a
	// caller driving a live progress display.
	OnSample func(t float64, x []float64)
}

// Sampler wraps a Driver as a subordinate and owns the trajectory it
// produces.
type Sampler struct {
	driver *ode.Driver
}

// New builds a Sampler around an already-constructed Driver. The
// Driver's tolerance/stepsize/maxSteps/minStepsize tuning is used as-is
// for every integration the sampler performs.
func New(driver *ode.Driver) *Sampler {
	return &Sampler{driver: driver}
}

func invalidTuning(detail string) error {
	return &ode.Error{Op: "GetSolutionAtPoints", Err: ode.ErrInvalidTuning, Detail: detail}
}

func invalidRequest(detail string) error {
	return &ode.Error{Op: "GetSolutionAtPoints", Err: ode.ErrInvalidRequest, Detail: detail}
}

// GetSolutionAtPoints generates a (t, x) trajectory over the interval
// bounded by t1 and t2, seeded at (x0, t0), handling the three possible
// orderings of t0/t1/t2. It never returns an error for integration
// failures reached while extending the trajectory (the partial
// trajectory built so far is returned instead); it does return an error
// for invalid tuning or for a failure integrating the initial reference
// leg before any point has been recorded.
func (s *Sampler) GetSolutionAtPoints(x0 []float64, t0, t1, t2, timeStep float64, opts Options) (*Trajectory, error) {
	if timeStep == 0 {
		return nil, invalidTuning("timeStep must be != 0")
	}
	maxChange := opts.MaxChange
	switch {
	case maxChange == 0:
		maxChange = math.Inf(1)
	case maxChange < 0:
		return nil, invalidTuning("maxChange must be > 0")
	}
	minStep := opts.MinStep
	switch {
	case minStep == 0:
		minStep = 1e-30
	case minStep < 0:
		return nil, invalidTuning("minStep must be > 0")
	}
	if opts.MaxPoints < 0 {
		return nil, invalidRequest("maxPoints must be >= 0")
	}

	if err := s.driver.SetInitialCondition(x0, t0); err != nil {
		return nil, err
	}

	c := &callState{
		driver:    s.driver,
		traj:      newTrajectory(),
		step:      math.Abs(timeStep),
		maxChange: maxChange,
		minStep:   minStep,
		maxPoints: opts.MaxPoints,
		xmin:      opts.XMin,
		xmax:      opts.XMax,
		adaptive:  opts.Adaptive,
		onSample:  opts.OnSample,
	}

	switch {
	case between(t1, t0, t2):
		c.seed()
		c.extend(t1)
		c.traj.reverse()
		// The seed is now the tail; resume the driver there for the leg to t2.
		if err := s.driver.SetInitialCondition(x0, t0); err != nil {
			return c.traj, nil
		}
		c.extend(t2)
	case between(t0, t1, t2):
		if err := c.integrateTo(t1); err != nil {
			return nil, err
		}
		c.seed()
		c.extend(t2)
	default:
		if err := c.integrateTo(t2); err != nil {
			return nil, err
		}
		c.seed()
		c.extend(t1)
		c.traj.reverse()
	}

	return c.traj, nil
}

// between reports whether b lies between a and c, in either order
// (inclusive).
func between(a, b, c float64) bool {
	return (a <= b && b <= c) || (c <= b && b <= a)
}

// callState is the private per-call sampler state, kept as a struct
// rather than closure-captured locals so extend/integrateTo/seed can
// share it as receivers.
type callState struct {
	driver *ode.Driver
	traj   *Trajectory
	count  int

	step      float64
	maxChange float64
	minStep   float64
	maxPoints int
	xmin      []float64
	xmax      []float64
	adaptive  bool
	onSample  func(t float64, x []float64)
}

func (c *callState) record(t float64, x []float64) {
	c.traj.append(t, x)
	c.count++
	if c.onSample != nil {
		c.onSample(t, x)
	}
}

func (c *callState) seed() {
	c.record(c.driver.CurrentT(), c.driver.CurrentX())
}

func (c *callState) integrateTo(t float64) error {
	if c.adaptive {
		_, err := c.driver.SolveAdaptive(t)
		return err
	}
	_, err := c.driver.SolveFixed(t)
	return err
}

// extend walks the time grid from the current tail toward tfinal,
// refining each grid step bisectively until the sup-norm displacement
// from the previous stored sample is under maxChange, or minStep is
// reached.
func (c *callState) extend(tfinal float64) {
	startT := c.driver.CurrentT()
	if tfinal == startT {
		return
	}
	dirSign := 1.0
	if tfinal < startT {
		dirSign = -1.0
	}
	tstepNominal := dirSign * c.step

	for {
		lastT := c.driver.CurrentT()
		lastX := c.driver.CurrentX()

		dt := tstepNominal
		for {
			t := clampToward(lastT+dt, tfinal, dirSign)
			if err := c.integrateTo(t); err != nil {
				return
			}
			dist := supNormDiff(c.driver.CurrentX(), lastX)
			if dist < c.maxChange {
				break
			}
			dt /= 2
			if math.Abs(dt) >= c.minStep {
				if err := c.driver.SetInitialCondition(lastX, lastT); err != nil {
					return
				}
				continue
			}
			break
		}

		c.record(c.driver.CurrentT(), c.driver.CurrentX())

		if dt*(c.driver.CurrentT()-tfinal) >= 0 {
			return
		}

		if outOfBounds(c.driver.CurrentX(), c.xmin, c.xmax) {
			return
		}
		if c.maxPoints > 0 && c.count > c.maxPoints {
			return
		}
	}
}

func clampToward(t, tfinal, dirSign float64) float64 {
	if dirSign > 0 && t > tfinal {
		return tfinal
	}
	if dirSign < 0 && t < tfinal {
		return tfinal
	}
	return t
}

func supNormDiff(a, b []float64) float64 {
	max := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > max {
			max = d
		}
	}
	return max
}

func outOfBounds(x, xmin, xmax []float64) bool {
	for i, v := range x {
		if xmin != nil && i < len(xmin) && v < xmin[i] {
			return true
		}
		if xmax != nil && i < len(xmax) && v > xmax[i] {
			return true
		}
	}
	return false
}
