package steppers

import (
	"math"

	"github.com/slayoo/odesys/internal/ode"
)

// RK4 is the classical fourth-order Runge-Kutta method with a fixed step
// size. Stage buffers are reused across steps.
type RK4 struct {
	k0, k1, k2, k3 ode.State
	ytmp           ode.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Info() Descriptor {
	return Descriptor{Name: "rk4", Kind: Explicit, Order: 4, SupportsAdaptive: true}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k0) != n {
		r.k0 = make(ode.State, n)
		r.k1 = make(ode.State, n)
		r.k2 = make(ode.State, n)
		r.k3 = make(ode.State, n)
		r.ytmp = make(ode.State, n)
	}
}

// step advances y by h from x, evaluating the four stage derivatives.
func (r *RK4) step(rhs ode.RHS, x, h float64, y ode.State) ode.State {
	n := len(y)
	r.ensureScratch(n)

	rhs(x, y, r.k0)
	for i := 0; i < n; i++ {
		r.ytmp[i] = y[i] + h/2*r.k0[i]
	}
	rhs(x+h/2, r.ytmp, r.k1)
	for i := 0; i < n; i++ {
		r.ytmp[i] = y[i] + h/2*r.k1[i]
	}
	rhs(x+h/2, r.ytmp, r.k2)
	for i := 0; i < n; i++ {
		r.ytmp[i] = y[i] + h*r.k2[i]
	}
	rhs(x+h, r.ytmp, r.k3)

	ynew := make(ode.State, n)
	h6 := h / 6
	for i := 0; i < n; i++ {
		ynew[i] = y[i] + h6*(r.k0[i]+2*r.k1[i]+2*r.k2[i]+r.k3[i])
	}
	return ynew
}

// IntegrateAdaptive generates its own grid from dx0. "Adaptive" here
// means grid-generating, not error-adaptive: the step size is fixed
// except for the final step, which is truncated to land exactly on xend.
func (r *RK4) IntegrateAdaptive(rhs ode.RHS, jac ode.Jacobian, y0 ode.State, x0, xend, dx0 float64, opts ode.Options) ([]float64, []ode.State, ode.Stats, error) {
	warnUnrecognized("rk4", opts)
	if dx0 <= 0 || xend <= x0 {
		return nil, nil, ode.Stats{}, ode.ErrBadStep
	}

	n := int(math.Ceil((xend - x0) / dx0))
	xout := make([]float64, 0, n+1)
	yout := make([]ode.State, 0, n+1)
	xout = append(xout, x0)
	yout = append(yout, y0.Clone())

	steps := 0
	for i := 0; i < n; i++ {
		x, y := xout[len(xout)-1], yout[len(yout)-1]
		h := math.Min(dx0, xend-x)
		if h <= 0 {
			// ceil can overshoot by one when the span divides evenly
			// up to rounding; x has already landed on xend.
			break
		}
		yout = append(yout, r.step(rhs, x, h, y))
		xout = append(xout, x+h)
		steps++
	}
	return xout, yout, ode.Stats{NFev: 4 * steps, Converged: true}, nil
}

func (r *RK4) IntegratePredefined(rhs ode.RHS, jac ode.Jacobian, y0 ode.State, xout []float64, opts ode.Options) ([]ode.State, ode.Stats, error) {
	warnUnrecognized("rk4", opts)
	if err := checkGrid(xout, 1); err != nil {
		return nil, ode.Stats{}, err
	}

	yout := make([]ode.State, 0, len(xout))
	yout = append(yout, y0.Clone())
	for i := 1; i < len(xout); i++ {
		xOld := xout[i-1]
		h := xout[i] - xOld
		yout = append(yout, r.step(rhs, xOld, h, yout[len(yout)-1]))
	}
	return yout, ode.Stats{NFev: 4 * (len(xout) - 1), Converged: true}, nil
}
