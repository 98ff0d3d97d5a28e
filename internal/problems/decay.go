package problems

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/slayoo/odesys/internal/ode"
)

// Decay is linear exponential decay dy/dx = -k*y with y(0) = 1 and the
// analytic solution y(x) = exp(-k*x).
type Decay struct {
	K float64
}

func NewDecay(k float64) *Decay {
	return &Decay{K: k}
}

func (d *Decay) Name() string { return "decay" }
func (d *Decay) Dim() int     { return 1 }

func (d *Decay) RHS() ode.RHS {
	return func(x float64, y ode.State, dy ode.State) {
		dy[0] = -d.K * y[0]
	}
}

func (d *Decay) Jacobian() ode.Jacobian {
	return func(x float64, y ode.State, dst *mat.Dense) {
		dst.Set(0, 0, -d.K)
	}
}

func (d *Decay) Initial() ode.State { return ode.State{1} }

func (d *Decay) Exact(x float64) ode.State {
	return ode.State{math.Exp(-d.K * x)}
}
