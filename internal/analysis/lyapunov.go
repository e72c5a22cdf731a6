package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
	"github.com/san-kum/odeint/internal/integrators"
)

type LyapunovConfig struct {
	Dt    float64
	Steps int
	// Transient steps are taken before measuring, to settle onto the attractor.
	Transient int
	// Separation is the distance kept between the two trajectories.
	// Zero means 1e-8.
	Separation float64
}

// LyapunovExponent estimates the largest Lyapunov exponent of prob with
// Benettin's method: a companion trajectory is advanced next to the
// reference one and pulled back to the initial separation after every step.
// The exponent is the mean log growth rate per unit time. ref and comp
// advance the two trajectories and must not share scratch state.
func LyapunovExponent(prob *dynamo.Problem, ref, comp integrators.Stepper, cfg LyapunovConfig) (float64, error) {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return 0, fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidInput, cfg.Dt)
	}
	if cfg.Steps <= 0 || cfg.Transient < 0 {
		return 0, fmt.Errorf("%w: need positive steps and non-negative transient, got %d and %d",
			dynamo.ErrInvalidInput, cfg.Steps, cfg.Transient)
	}
	d0 := cfg.Separation
	if d0 == 0 {
		d0 = 1e-8
	}
	if !(d0 > 0) {
		return 0, fmt.Errorf("%w: separation must be positive, got %g", dynamo.ErrInvalidInput, d0)
	}

	t, x := prob.T0, prob.X0.Clone()
	var err error
	for i := 0; i < cfg.Transient; i++ {
		if t, x, err = ref.Step(prob.F, t, x, cfg.Dt); err != nil {
			return 0, err
		}
	}

	// Perturb along the diagonal so every component starts coupled.
	u := make(dynamo.State, len(x))
	for i := range u {
		u[i] = d0 / math.Sqrt(float64(len(x)))
	}
	xp, err := x.Add(u)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for i := 0; i < cfg.Steps; i++ {
		tp := t
		if t, x, err = ref.Step(prob.F, t, x, cfg.Dt); err != nil {
			return 0, err
		}
		if _, xp, err = comp.Step(prob.F, tp, xp, cfg.Dt); err != nil {
			return 0, err
		}

		diff, err := xp.Sub(x)
		if err != nil {
			return 0, err
		}
		d := diff.Norm()
		if !(d > 0) || math.IsInf(d, 0) {
			return 0, fmt.Errorf("%w: separation %g at t=%g", dynamo.ErrInvalidState, d, t)
		}
		sum += math.Log(d / d0)

		if xp, err = x.AddScaled(d0/d, diff); err != nil {
			return 0, err
		}
	}
	return sum / (float64(cfg.Steps) * cfg.Dt), nil
}
