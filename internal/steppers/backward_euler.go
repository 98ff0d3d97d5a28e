package steppers

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/slayoo/odesys/internal/linalg"
	"github.com/slayoo/odesys/internal/newton"
	"github.com/slayoo/odesys/internal/ode"
)

const (
	// chordTol is the RMS tolerance on the Newton correction for the
	// backward Euler and trapezoidal steppers.
	chordTol = 1e-12

	// chordIterCap bounds the corrector loop, which the method
	// formulation itself leaves unbounded. The corrector converges in a
	// handful of iterations on well-conditioned problems; hitting the
	// cap is reported as ErrNewtonDiverged instead of hanging forever.
	chordIterCap = 100
)

// implicitScratch holds the per-call work buffers shared by the implicit
// steppers.
type implicitScratch struct {
	f    ode.State
	jac  *mat.Dense
	iter *mat.Dense
}

func (w *implicitScratch) ensure(n int) {
	if len(w.f) != n {
		w.f = make(ode.State, n)
		w.jac = mat.NewDense(n, n, nil)
		w.iter = mat.NewDense(n, n, nil)
	}
}

// eulerBackwardStep advances y from xOld to x by the implicit Euler rule
// y' = y + h*f(x, y'). The Jacobian is evaluated once at (xOld, y) and
// frozen for the whole step; the initial guess is one explicit Euler
// step. Returns the corrected endpoint and the forward-Euler increment
// h*f(x, y), which the trapezoidal stepper also needs.
func eulerBackwardStep(rhs ode.RHS, jacfn ode.Jacobian, y ode.State, xOld, x, h float64, w *implicitScratch) (ode.State, ode.State, error) {
	n := len(y)
	w.ensure(n)

	jacfn(xOld, y, w.jac)
	linalg.IterationMatrix(w.iter, w.jac, h)
	fac, err := linalg.Factorize(w.iter)
	if err != nil {
		return nil, nil, err
	}

	rhs(x, y, w.f)
	fwDy := make(ode.State, n)
	guess := make(ode.State, n)
	for i := 0; i < n; i++ {
		fwDy[i] = h * w.f[i]
		guess[i] = y[i] + fwDy[i]
	}

	residual := func(yk ode.State, r ode.State) {
		rhs(x, yk, w.f)
		for i := 0; i < n; i++ {
			r[i] = yk[i] - y[i] - h*w.f[i]
		}
	}

	res, err := newton.Correct(fac, residual, guess, chordTol, chordIterCap)
	if err != nil {
		return nil, nil, err
	}
	if !res.Converged {
		return nil, nil, fmt.Errorf("after %d iterations: %w", res.Iters, ode.ErrNewtonDiverged)
	}
	return res.Y, fwDy, nil
}

// BackwardEuler is the first-order implicit Euler method with a chord
// Newton corrector. Predefined-grid only; requires a Jacobian.
type BackwardEuler struct {
	w implicitScratch
}

func NewBackwardEuler() *BackwardEuler {
	return &BackwardEuler{}
}

func (s *BackwardEuler) Info() Descriptor {
	return Descriptor{Name: "euler_backward", Kind: Implicit, Order: 1, NeedsJacobian: true}
}

func (s *BackwardEuler) IntegratePredefined(rhs ode.RHS, jac ode.Jacobian, y0 ode.State, xout []float64, opts ode.Options) ([]ode.State, ode.Stats, error) {
	warnUnrecognized("euler_backward", opts)
	if err := checkGrid(xout, 1); err != nil {
		return nil, ode.Stats{}, err
	}

	yout := make([]ode.State, 0, len(xout))
	yout = append(yout, y0.Clone())
	for i := 1; i < len(xout); i++ {
		xOld, x := xout[i-1], xout[i]
		ynew, _, err := eulerBackwardStep(rhs, jac, yout[len(yout)-1], xOld, x, x-xOld, &s.w)
		if err != nil {
			return nil, ode.Stats{}, &ode.StepError{Step: i, X: x, Wrapped: err}
		}
		yout = append(yout, ynew)
	}
	return yout, ode.Stats{NFev: len(xout) - 1, Converged: true}, nil
}
