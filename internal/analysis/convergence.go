// Package analysis measures integration accuracy against problems with
// known solutions.
package analysis

import (
	"fmt"
	"math"

	"github.com/slayoo/odesys/internal/ode"
	"github.com/slayoo/odesys/internal/problems"
	"github.com/slayoo/odesys/internal/steppers"
)

// UniformGrid returns steps+1 evenly spaced points covering [x0, xend].
func UniformGrid(x0, xend float64, steps int) []float64 {
	h := (xend - x0) / float64(steps)
	xout := make([]float64, steps+1)
	for i := range xout {
		xout[i] = x0 + float64(i)*h
	}
	xout[steps] = xend
	return xout
}

// GlobalError integrates p over a uniform grid and returns the maximum
// absolute error of any state component at any grid point, measured
// against the problem's analytic solution.
func GlobalError(s steppers.Stepper, p problems.Problem, x0, xend float64, steps int, opts ode.Options) (float64, error) {
	exact, ok := p.(problems.Analytic)
	if !ok {
		return 0, fmt.Errorf("problem %q has no analytic solution", p.Name())
	}
	xout := UniformGrid(x0, xend, steps)
	yout, _, err := s.IntegratePredefined(p.RHS(), p.Jacobian(), p.Initial(), xout, opts)
	if err != nil {
		return 0, err
	}
	maxErr := 0.0
	for i, x := range xout {
		ref := exact.Exact(x)
		for j := range ref {
			maxErr = math.Max(maxErr, math.Abs(yout[i][j]-ref[j]))
		}
	}
	return maxErr, nil
}

// OrderEstimate holds global errors over successively halved step sizes
// and the empirical orders log2(err_i/err_{i+1}) between them.
type OrderEstimate struct {
	Steps  []int
	Errors []float64
	Orders []float64
}

// ConvergenceOrder estimates the empirical order of s on p by halving the
// step size levels times starting from steps0 steps.
func ConvergenceOrder(s steppers.Stepper, p problems.Problem, x0, xend float64, steps0, levels int, opts ode.Options) (OrderEstimate, error) {
	est := OrderEstimate{
		Steps:  make([]int, 0, levels),
		Errors: make([]float64, 0, levels),
		Orders: make([]float64, 0, levels-1),
	}
	steps := steps0
	for l := 0; l < levels; l++ {
		e, err := GlobalError(s, p, x0, xend, steps, opts)
		if err != nil {
			return est, err
		}
		est.Steps = append(est.Steps, steps)
		est.Errors = append(est.Errors, e)
		steps *= 2
	}
	for i := 1; i < len(est.Errors); i++ {
		est.Orders = append(est.Orders, math.Log2(est.Errors[i-1]/est.Errors[i]))
	}
	return est, nil
}
