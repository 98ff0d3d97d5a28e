package steppers

import "github.com/slayoo/odesys/internal/ode"

// ForwardEuler is the first-order explicit Euler method. Predefined-grid
// only; it does not generate its own grid.
type ForwardEuler struct {
	f ode.State
}

func NewForwardEuler() *ForwardEuler {
	return &ForwardEuler{}
}

func (e *ForwardEuler) Info() Descriptor {
	return Descriptor{Name: "euler_forward", Kind: Explicit, Order: 1}
}

func (e *ForwardEuler) IntegratePredefined(rhs ode.RHS, jac ode.Jacobian, y0 ode.State, xout []float64, opts ode.Options) ([]ode.State, ode.Stats, error) {
	warnUnrecognized("euler_forward", opts)
	if err := checkGrid(xout, 1); err != nil {
		return nil, ode.Stats{}, err
	}

	n := len(y0)
	if len(e.f) != n {
		e.f = make(ode.State, n)
	}
	yout := make([]ode.State, 0, len(xout))
	yout = append(yout, y0.Clone())

	for i := 1; i < len(xout); i++ {
		xOld := xout[i-1]
		h := xout[i] - xOld
		y := yout[len(yout)-1]
		rhs(xOld, y, e.f)
		ynew := make(ode.State, n)
		for j := 0; j < n; j++ {
			ynew[j] = y[j] + h*e.f[j]
		}
		yout = append(yout, ynew)
	}
	return yout, ode.Stats{NFev: len(xout) - 1, Converged: true}, nil
}
