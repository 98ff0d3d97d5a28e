// Package steppers implements the fixed-step explicit and implicit time
// integrators: RK4, forward Euler, explicit midpoint, backward Euler,
// trapezoidal, and variable-step BDF2.
package steppers

import (
	"fmt"
	"os"
	"strings"

	"github.com/slayoo/odesys/internal/ode"
)

// Kind partitions the methods by whether each step requires a
// linear-system solve.
type Kind int

const (
	Explicit Kind = iota
	Implicit
)

func (k Kind) String() string {
	if k == Implicit {
		return "implicit"
	}
	return "explicit"
}

// Descriptor describes a method's capabilities. The driver queries it
// instead of probing the stepper for optional methods.
type Descriptor struct {
	Name             string
	Kind             Kind
	Order            int
	NeedsJacobian    bool
	SupportsAdaptive bool
}

// Stepper integrates over a predefined output grid. xout[0] is the x of
// the initial condition; the returned trajectory has one state per grid
// point, the first being y0.
type Stepper interface {
	Info() Descriptor
	IntegratePredefined(rhs ode.RHS, jac ode.Jacobian, y0 ode.State, xout []float64, opts ode.Options) ([]ode.State, ode.Stats, error)
}

// AdaptiveStepper additionally generates its own grid from a fixed step
// size dx0, truncating the final step to land exactly on xend.
type AdaptiveStepper interface {
	Stepper
	IntegrateAdaptive(rhs ode.RHS, jac ode.Jacobian, y0 ode.State, x0, xend, dx0 float64, opts ode.Options) ([]float64, []ode.State, ode.Stats, error)
}

// IntegrateAdaptive dispatches an adaptive-grid run on s, failing with
// ode.ErrNotSupported when the method's descriptor reports no adaptive
// capability.
func IntegrateAdaptive(s Stepper, rhs ode.RHS, jac ode.Jacobian, y0 ode.State, x0, xend, dx0 float64, opts ode.Options) ([]float64, []ode.State, ode.Stats, error) {
	as, ok := s.(AdaptiveStepper)
	if !ok || !s.Info().SupportsAdaptive {
		return nil, nil, ode.Stats{}, fmt.Errorf("%s: adaptive grid generation: %w", s.Info().Name, ode.ErrNotSupported)
	}
	return as.IntegrateAdaptive(rhs, jac, y0, x0, xend, dx0, opts)
}

// New constructs a stepper by name.
func New(name string) (Stepper, error) {
	switch name {
	case "rk4":
		return NewRK4(), nil
	case "euler_forward", "euler":
		return NewForwardEuler(), nil
	case "midpoint":
		return NewMidpoint(), nil
	case "euler_backward":
		return NewBackwardEuler(), nil
	case "trapezoidal":
		return NewTrapezoidal(), nil
	case "bdf2":
		return NewBDF2(), nil
	default:
		return nil, fmt.Errorf("unknown method %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}

// Names lists the registered method names in construction order.
func Names() []string {
	return []string{"rk4", "euler_forward", "midpoint", "euler_backward", "trapezoidal", "bdf2"}
}

// checkGrid validates a predefined output grid: at least minLen points,
// strictly increasing.
func checkGrid(xout []float64, minLen int) error {
	if len(xout) < minLen {
		return fmt.Errorf("got %d grid points, need at least %d: %w", len(xout), minLen, ode.ErrGridTooShort)
	}
	for i := 1; i < len(xout); i++ {
		if xout[i] <= xout[i-1] {
			return fmt.Errorf("xout[%d]=%g <= xout[%d]=%g: %w", i, xout[i], i-1, xout[i-1], ode.ErrGridNotIncreasing)
		}
	}
	return nil
}

// warnUnrecognized reports ignored option keys. Unknown keys are never
// an error, execution proceeds without them.
func warnUnrecognized(method string, opts ode.Options, known ...string) {
	if extra := opts.Unrecognized(known...); len(extra) > 0 {
		fmt.Fprintf(os.Stderr, "warning: %s: ignoring options: %s\n", method, strings.Join(extra, ", "))
	}
}
