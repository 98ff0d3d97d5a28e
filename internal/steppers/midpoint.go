package steppers

import "github.com/slayoo/odesys/internal/ode"

// Midpoint is the second-order explicit midpoint method: a half-step
// Euler predictor followed by a full step using the midpoint derivative.
// Predefined-grid only.
//
// The reported nfev counts one per step even though each step evaluates
// the RHS twice; the original accounting is kept, so treat the number as
// approximate rather than a true evaluation count.
type Midpoint struct {
	f    ode.State
	ymid ode.State
}

func NewMidpoint() *Midpoint {
	return &Midpoint{}
}

func (m *Midpoint) Info() Descriptor {
	return Descriptor{Name: "midpoint", Kind: Explicit, Order: 2}
}

func (m *Midpoint) IntegratePredefined(rhs ode.RHS, jac ode.Jacobian, y0 ode.State, xout []float64, opts ode.Options) ([]ode.State, ode.Stats, error) {
	warnUnrecognized("midpoint", opts)
	if err := checkGrid(xout, 1); err != nil {
		return nil, ode.Stats{}, err
	}

	n := len(y0)
	if len(m.f) != n {
		m.f = make(ode.State, n)
		m.ymid = make(ode.State, n)
	}
	yout := make([]ode.State, 0, len(xout))
	yout = append(yout, y0.Clone())

	for i := 1; i < len(xout); i++ {
		xOld := xout[i-1]
		h := xout[i] - xOld
		y := yout[len(yout)-1]
		rhs(xOld, y, m.f)
		for j := 0; j < n; j++ {
			m.ymid[j] = y[j] + h/2*m.f[j]
		}
		rhs(xOld+h/2, m.ymid, m.f)
		ynew := make(ode.State, n)
		for j := 0; j < n; j++ {
			ynew[j] = y[j] + h*m.f[j]
		}
		yout = append(yout, ynew)
	}
	return yout, ode.Stats{NFev: len(xout) - 1, Converged: true}, nil
}
