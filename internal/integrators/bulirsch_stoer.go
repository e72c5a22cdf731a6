package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

const (
	// DefaultMaxRows bounds the fixed-interval table so a non-smooth RHS
	// fails instead of refining forever.
	DefaultMaxRows = 64

	// DefaultBisectionRows is the table size before the adaptive variant
	// splits an interval.
	DefaultBisectionRows = 8
)

// BulirschStoer advances one macro-step by modified-midpoint integration at
// n = 1, 2, 3, ... substeps, refining the estimates with Richardson
// extrapolation until the last correction is below dt*Accuracy.
type BulirschStoer struct {
	Accuracy float64
	MaxRows  int
	Norm     Norm

	lastErr float64
	rows    int
}

func NewBulirschStoer(accuracy float64) *BulirschStoer {
	return &BulirschStoer{
		Accuracy: accuracy,
		MaxRows:  DefaultMaxRows,
		Norm:     EuclideanNorm,
	}
}

func (b *BulirschStoer) Name() string { return "bulirsch-stoer" }

func (b *BulirschStoer) Validate() error {
	if err := checkPositive("accuracy", b.Accuracy); err != nil {
		return err
	}
	if b.MaxRows != 0 && b.MaxRows < 2 {
		return fmt.Errorf("%w: max rows must be at least 2, got %d", dynamo.ErrInvalidInput, b.MaxRows)
	}
	return nil
}

// LastError is the correction magnitude that ended the previous step.
func (b *BulirschStoer) LastError() float64 { return b.lastErr }

// LastRows is the number of table rows built by the previous step.
func (b *BulirschStoer) LastRows() int { return b.rows }

func (b *BulirschStoer) Step(f dynamo.Func, t float64, x dynamo.State, dt float64) (float64, dynamo.State, error) {
	maxRows := b.MaxRows
	if maxRows == 0 {
		maxRows = DefaultMaxRows
	}
	norm := b.Norm
	if norm == nil {
		norm = EuclideanNorm
	}

	res, err := extrapolate(f, t, x, dt, b.Accuracy, maxRows, norm)
	if err != nil {
		return 0, nil, err
	}
	b.lastErr = res.err
	b.rows = res.rows
	if !res.converged {
		return 0, nil, fmt.Errorf("%w: extrapolation table did not reach %g after %d rows (last correction %g)",
			dynamo.ErrNotConverged, dt*b.Accuracy, maxRows, res.err)
	}
	return t + dt, res.x, nil
}

type tableResult struct {
	x         dynamo.State
	err       float64
	rows      int
	converged bool
}

// extrapolate builds the extrapolation table for one interval of size dt,
// at most maxRows rows deep. Row n holds the raw midpoint estimate with n
// substeps followed by its n-1 Richardson refinements against row n-1.
func extrapolate(f dynamo.Func, t float64, x dynamo.State, dt, accuracy float64, maxRows int, norm Norm) (tableResult, error) {
	f0, err := dynamo.Eval(f, t, x)
	if err != nil {
		return tableResult{}, err
	}

	first, err := midpoint(f, t, x, f0, dt, 1)
	if err != nil {
		return tableResult{}, err
	}
	prev := []dynamo.State{first}

	target := dt * accuracy
	errEst := math.Inf(1)
	dim := len(x)

	for n := 2; n <= maxRows; n++ {
		raw, err := midpoint(f, t, x, f0, dt, n)
		if err != nil {
			return tableResult{}, err
		}

		row := make([]dynamo.State, n)
		row[0] = raw
		eps := make(dynamo.State, dim)
		for m := 1; m < n; m++ {
			denom := math.Pow(float64(n)/float64(n-1), float64(2*m)) - 1
			next := make(dynamo.State, dim)
			for i := 0; i < dim; i++ {
				eps[i] = (row[m-1][i] - prev[m-1][i]) / denom
				next[i] = row[m-1][i] + eps[i]
			}
			row[m] = next
		}

		best := row[n-1]
		if !best.IsValid() {
			return tableResult{}, fmt.Errorf("%w: extrapolation at t=%g, n=%d", dynamo.ErrInvalidState, t, n)
		}

		errEst = norm(eps)
		if errEst < target {
			return tableResult{x: best, err: errEst, rows: n, converged: true}, nil
		}
		prev = row
	}

	return tableResult{x: prev[len(prev)-1], err: errEst, rows: maxRows}, nil
}

// midpoint runs the modified midpoint method over [t, t+dt] with n
// substeps: a half step, a full step, then n-1 leapfrog steps alternating
// the half-point estimate x1 and the full-point estimate x2. f0 is f(t, x).
func midpoint(f dynamo.Func, t float64, x, f0 dynamo.State, dt float64, n int) (dynamo.State, error) {
	h := dt / float64(n)
	dim := len(x)

	x1 := make(dynamo.State, dim)
	for i := 0; i < dim; i++ {
		x1[i] = x[i] + 0.5*h*f0[i]
	}
	d, err := dynamo.Eval(f, t+0.5*h, x1)
	if err != nil {
		return nil, err
	}
	x2 := make(dynamo.State, dim)
	for i := 0; i < dim; i++ {
		x2[i] = x[i] + h*d[i]
	}

	for k := 1; k < n; k++ {
		d, err = dynamo.Eval(f, t+float64(k)*h, x2)
		if err != nil {
			return nil, err
		}
		for i := 0; i < dim; i++ {
			x1[i] += h * d[i]
		}
		d, err = dynamo.Eval(f, t+(float64(k)+0.5)*h, x1)
		if err != nil {
			return nil, err
		}
		for i := 0; i < dim; i++ {
			x2[i] += h * d[i]
		}
	}

	d, err = dynamo.Eval(f, t+dt, x2)
	if err != nil {
		return nil, err
	}
	out := make(dynamo.State, dim)
	for i := 0; i < dim; i++ {
		out[i] = 0.5 * (x1[i] + x2[i] + 0.5*h*d[i])
	}
	return out, nil
}
