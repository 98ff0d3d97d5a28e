package problems

import (
	"gonum.org/v1/gonum/mat"

	"github.com/slayoo/odesys/internal/ode"
)

// VanDerPol is the Van der Pol oscillator
//
//	y0' = y1
//	y1' = mu*(1 - y0^2)*y1 - y0
//
// which turns stiff as mu grows, making it the standard stress test for
// the implicit methods.
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol(mu float64) *VanDerPol {
	return &VanDerPol{Mu: mu}
}

func (v *VanDerPol) Name() string { return "vanderpol" }
func (v *VanDerPol) Dim() int     { return 2 }

func (v *VanDerPol) RHS() ode.RHS {
	return func(x float64, y ode.State, dy ode.State) {
		dy[0] = y[1]
		dy[1] = v.Mu*(1-y[0]*y[0])*y[1] - y[0]
	}
}

func (v *VanDerPol) Jacobian() ode.Jacobian {
	return func(x float64, y ode.State, dst *mat.Dense) {
		dst.Set(0, 0, 0)
		dst.Set(0, 1, 1)
		dst.Set(1, 0, -2*v.Mu*y[0]*y[1]-1)
		dst.Set(1, 1, v.Mu*(1-y[0]*y[0]))
	}
}

func (v *VanDerPol) Initial() ode.State { return ode.State{2, 0} }
