package sampler

import (
	"sort"

	"github.com/san-kum/odeint/internal/ode"
)

// Trajectory is the sampler's output: two parallel ordered sequences,
// TVals monotone in the direction the sampler traversed.
type Trajectory struct {
	TVals []float64
	XVals [][]float64
}

func newTrajectory() *Trajectory {
	return &Trajectory{TVals: nil, XVals: nil}
}

func (tr *Trajectory) append(t float64, x []float64) {
	tr.TVals = append(tr.TVals, t)
	tr.XVals = append(tr.XVals, append([]float64(nil), x...))
}

func (tr *Trajectory) reverse() {
	n := len(tr.TVals)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		tr.TVals[i], tr.TVals[j] = tr.TVals[j], tr.TVals[i]
		tr.XVals[i], tr.XVals[j] = tr.XVals[j], tr.XVals[i]
	}
}

// Len returns the number of stored samples.
func (tr *Trajectory) Len() int { return len(tr.TVals) }

// At returns the k-th sample. Fails with ErrInvalidRequest if k is out
// of range.
func (tr *Trajectory) At(k int) (t float64, x []float64, err error) {
	if k < 0 || k >= tr.Len() {
		return 0, nil, &ode.Error{Op: "Trajectory.At", Err: ode.ErrInvalidRequest, Detail: "index out of range"}
	}
	return tr.TVals[k], tr.XVals[k], nil
}

// NearestIndex returns the index of the stored sample whose time is
// closest to t (no dense output between stored samples). TVals is
// assumed monotone, in either direction, as produced by
// GetSolutionAtPoints.
func (tr *Trajectory) NearestIndex(t float64) (int, error) {
	n := tr.Len()
	if n == 0 {
		return 0, &ode.Error{Op: "Trajectory.NearestIndex", Err: ode.ErrInvalidRequest, Detail: "empty trajectory"}
	}
	ascending := n == 1 || tr.TVals[n-1] >= tr.TVals[0]

	idx := sort.Search(n, func(i int) bool {
		if ascending {
			return tr.TVals[i] >= t
		}
		return tr.TVals[i] <= t
	})

	if idx == 0 {
		return 0, nil
	}
	if idx == n {
		return n - 1, nil
	}
	before, after := tr.TVals[idx-1], tr.TVals[idx]
	if absF(after-t) < absF(t-before) {
		return idx, nil
	}
	return idx - 1, nil
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
