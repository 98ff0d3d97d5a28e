package problems

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/slayoo/odesys/internal/ode"
)

// Oscillator is the undamped harmonic oscillator with angular frequency
// omega, state [position, velocity], started at [1, 0].
type Oscillator struct {
	Omega float64
}

func NewOscillator(omega float64) *Oscillator {
	return &Oscillator{Omega: omega}
}

func (o *Oscillator) Name() string { return "oscillator" }
func (o *Oscillator) Dim() int     { return 2 }

func (o *Oscillator) RHS() ode.RHS {
	w2 := o.Omega * o.Omega
	return func(x float64, y ode.State, dy ode.State) {
		dy[0] = y[1]
		dy[1] = -w2 * y[0]
	}
}

func (o *Oscillator) Jacobian() ode.Jacobian {
	w2 := o.Omega * o.Omega
	return func(x float64, y ode.State, dst *mat.Dense) {
		dst.Set(0, 0, 0)
		dst.Set(0, 1, 1)
		dst.Set(1, 0, -w2)
		dst.Set(1, 1, 0)
	}
}

func (o *Oscillator) Initial() ode.State { return ode.State{1, 0} }

func (o *Oscillator) Exact(x float64) ode.State {
	return ode.State{math.Cos(o.Omega * x), -o.Omega * math.Sin(o.Omega*x)}
}
