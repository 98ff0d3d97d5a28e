package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/slayoo/odesys/internal/analysis"
	"github.com/slayoo/odesys/internal/ode"
	"github.com/slayoo/odesys/internal/problems"
	"github.com/slayoo/odesys/internal/steppers"
)

// Empirical order of convergence on linear decay, estimated from global
// errors over successively halved step sizes. Each method must land near
// its theoretical order.
var _ = Describe("order of convergence on dy/dx = -y", func() {
	decay := problems.NewDecay(1.0)

	estimate := func(method string, steps0, levels int) analysis.OrderEstimate {
		s, err := steppers.New(method)
		Expect(err).NotTo(HaveOccurred())
		est, err := analysis.ConvergenceOrder(s, decay, 0, 1, steps0, levels, nil)
		Expect(err).NotTo(HaveOccurred())
		return est
	}

	DescribeTable("matches the theoretical order",
		func(method string, steps0, levels int, order float64) {
			est := estimate(method, steps0, levels)
			Expect(est.Orders).NotTo(BeEmpty())
			for _, got := range est.Orders {
				Expect(got).To(BeNumerically("~", order, 0.4))
			}
			// Errors must shrink monotonically as the grid refines.
			for i := 1; i < len(est.Errors); i++ {
				Expect(est.Errors[i]).To(BeNumerically("<", est.Errors[i-1]))
			}
		},
		Entry("forward Euler is first order", "euler_forward", 16, 4, 1.0),
		Entry("midpoint is second order", "midpoint", 16, 4, 2.0),
		Entry("RK4 is fourth order", "rk4", 8, 3, 4.0),
		Entry("backward Euler is first order", "euler_backward", 16, 4, 1.0),
		Entry("trapezoidal is second order", "trapezoidal", 16, 4, 2.0),
		Entry("BDF2 is second order", "bdf2", 16, 4, 2.0),
	)

	It("reports converged Newton runs for BDF2", func() {
		s, err := steppers.New("bdf2")
		Expect(err).NotTo(HaveOccurred())
		xout := analysis.UniformGrid(0, 1, 50)
		_, stats, err := s.IntegratePredefined(decay.RHS(), decay.Jacobian(), decay.Initial(), xout, ode.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Converged).To(BeTrue())
		Expect(stats.NewtonIters).To(HaveLen(49))
	})
})
