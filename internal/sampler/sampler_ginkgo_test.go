package sampler_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odeint/internal/ode"
	"github.com/san-kum/odeint/internal/sampler"
)

func newExponentialDecayDriver(k, h float64) *ode.Driver {
	sys, err := ode.NewSystem(1, func(x []float64, t float64, p map[string]float64) ([]float64, error) {
		return []float64{-k * x[0]}, nil
	}, nil)
	Expect(err).NotTo(HaveOccurred())

	drv, err := ode.NewDriver(sys, ode.NewRK4(), []float64{1.0}, 0)
	Expect(err).NotTo(HaveOccurred())
	Expect(drv.SetStepSize(h)).To(Succeed())
	return drv
}

var _ = Describe("Sampler.GetSolutionAtPoints", func() {
	var drv *ode.Driver
	var s *sampler.Sampler

	BeforeEach(func() {
		drv = newExponentialDecayDriver(1.0, 0.1)
		s = sampler.New(drv)
	})

	When("t0 <= t1 <= t2", func() {
		It("walks forward from t0 to t2 through t1 without reversing", func() {
			traj, err := s.GetSolutionAtPoints([]float64{1.0}, 0, 0, 2.0, 0.5, sampler.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Len()).To(BeNumerically(">=", 2))
			Expect(traj.TVals[0]).To(BeNumerically("~", 0, 1e-9))
			Expect(traj.TVals[traj.Len()-1]).To(BeNumerically("<=", 2.0+1e-6))
		})
	})

	When("t1 <= t0 <= t2", func() {
		It("integrates backward to t1, reverses, then forward to t2", func() {
			traj, err := s.GetSolutionAtPoints([]float64{1.0}, 1.0, 0.0, 3.0, 0.5, sampler.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Len()).To(BeNumerically(">=", 2))
			for i := 1; i < traj.Len(); i++ {
				Expect(traj.TVals[i]).To(BeNumerically(">=", traj.TVals[i-1]))
			}
		})
	})

	When("the requested timeStep is zero", func() {
		It("rejects the request as invalid tuning", func() {
			_, err := s.GetSolutionAtPoints([]float64{1.0}, 0, 0, 1, 0, sampler.Options{})
			Expect(err).To(MatchError(ode.ErrInvalidTuning))
		})
	})

	When("an XMin bound is crossed during extension", func() {
		It("stops extending once the state leaves the bounded region", func() {
			traj, err := s.GetSolutionAtPoints([]float64{1.0}, 0, 0, 50.0, 0.1, sampler.Options{XMin: []float64{0.2}})
			Expect(err).NotTo(HaveOccurred())
			last := traj.XVals[traj.Len()-1]
			Expect(last[0]).To(BeNumerically("<", 1.0))
			Expect(traj.TVals[traj.Len()-1]).To(BeNumerically("<", 50.0))
		})
	})

	When("MaxPoints is reached", func() {
		It("stops extension near the requested cap", func() {
			traj, err := s.GetSolutionAtPoints([]float64{1.0}, 0, 0, 100.0, 0.05, sampler.Options{MaxPoints: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Len()).To(BeNumerically("<=", 11))
		})
	})
})
