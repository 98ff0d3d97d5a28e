package steppers

import (
	"github.com/slayoo/odesys/internal/linalg"
	"github.com/slayoo/odesys/internal/newton"
	"github.com/slayoo/odesys/internal/ode"
)

// BDF2 defaults, overridable through the tol_iter and iter_max options.
const (
	bdf2DefaultTol     = 1e-12
	bdf2DefaultIterMax = 20
)

// bdf2Coeffs returns the variable-step BDF2 (FVC) coefficients for the
// step ratio rho = h/h_old:
//
//	y_{n+1} + alpha1*y_n + alpha2*y_{n-1} = beta0*h*f(x_{n+1}, y_{n+1})
//
// At rho=1 these reduce to the classical constant-step values
// beta0=2/3, alpha1=-4/3, alpha2=1/3.
func bdf2Coeffs(rho float64) (beta0, alpha1, alpha2 float64) {
	beta0 = (rho + 1) / (2*rho + 1)
	alpha1 = -(rho + 1) * (rho + 1) / (2*rho + 1)
	alpha2 = rho * rho / (2*rho + 1)
	return
}

// BDF2 is the variable-step two-step backward-difference method. It
// cannot self-start: the first step is taken by the trapezoidal stepper
// to produce the required two history points. Every subsequent step
// recomputes the step-ratio coefficients, freezes the Jacobian at the
// previous accepted state, and runs the chord Newton corrector.
//
// On reaching iter_max without convergence the last iterate is accepted
// as the step result; the only signal is Stats.Converged going false and
// the per-step iteration counts in Stats.NewtonIters.
type BDF2 struct {
	w implicitScratch
}

func NewBDF2() *BDF2 {
	return &BDF2{}
}

func (s *BDF2) Info() Descriptor {
	return Descriptor{Name: "bdf2", Kind: Implicit, Order: 2, NeedsJacobian: true}
}

func (s *BDF2) IntegratePredefined(rhs ode.RHS, jac ode.Jacobian, y0 ode.State, xout []float64, opts ode.Options) ([]ode.State, ode.Stats, error) {
	warnUnrecognized("bdf2", opts, ode.OptTolIter, ode.OptIterMax)
	if err := checkGrid(xout, 2); err != nil {
		return nil, ode.Stats{}, err
	}
	tol := opts.Float(ode.OptTolIter, bdf2DefaultTol)
	iterMax := opts.Int(ode.OptIterMax, bdf2DefaultIterMax)

	// Trapezoidal bootstrap for the first step.
	boot, _, err := NewTrapezoidal().IntegratePredefined(rhs, jac, y0, xout[:2], nil)
	if err != nil {
		return nil, ode.Stats{}, err
	}

	n := len(y0)
	s.w.ensure(n)
	yout := make([]ode.State, 0, len(xout))
	yout = append(yout, boot[0], boot[1])

	stats := ode.Stats{
		NFev:        len(xout) - 1,
		NewtonIters: make([]int, 0, len(xout)-2),
		Converged:   true,
	}

	hOld := xout[1] - xout[0]
	for i := 2; i < len(xout); i++ {
		xOld, x := xout[i-1], xout[i]
		h := x - xOld
		yn := yout[len(yout)-1]
		ynm1 := yout[len(yout)-2]

		beta0, alpha1, alpha2 := bdf2Coeffs(h / hOld)
		gamma := beta0 * h

		jac(xOld, yn, s.w.jac)
		linalg.IterationMatrix(s.w.iter, s.w.jac, gamma)
		fac, err := linalg.Factorize(s.w.iter)
		if err != nil {
			return nil, stats, &ode.StepError{Step: i, X: x, Wrapped: err}
		}

		rhs(x, yn, s.w.f)
		guess := make(ode.State, n)
		for j := 0; j < n; j++ {
			guess[j] = beta0*h*s.w.f[j] - alpha1*yn[j] - alpha2*ynm1[j]
		}

		residual := func(yk ode.State, r ode.State) {
			rhs(x, yk, s.w.f)
			for j := 0; j < n; j++ {
				r[j] = yk[j] + alpha1*yn[j] + alpha2*ynm1[j] - gamma*s.w.f[j]
			}
		}

		res, err := newton.Correct(fac, residual, guess, tol, iterMax)
		if err != nil {
			return nil, stats, &ode.StepError{Step: i, X: x, Wrapped: err}
		}
		stats.NewtonIters = append(stats.NewtonIters, res.Iters)
		if !res.Converged {
			stats.Converged = false
		}

		yout = append(yout, res.Y)
		hOld = h
	}
	return yout, stats, nil
}
