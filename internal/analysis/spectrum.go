package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/odeint/internal/dynamo"
	"gonum.org/v1/gonum/dsp/fourier"
)

// SampleInterval returns the common spacing of traj's samples, or an error
// if they are not evenly spaced, which adaptive runs never are.
func SampleInterval(traj *dynamo.Trajectory) (float64, error) {
	if traj.Len() < 2 {
		return 0, fmt.Errorf("%w: need at least two samples", dynamo.ErrInvalidInput)
	}
	dt := traj.Times[1] - traj.Times[0]
	for i := 2; i < traj.Len(); i++ {
		step := traj.Times[i] - traj.Times[i-1]
		if math.Abs(step-dt) > 1e-9*math.Abs(dt) {
			return 0, fmt.Errorf("%w: samples %d and %d are %g apart, expected %g",
				dynamo.ErrInvalidInput, i-1, i, step, dt)
		}
	}
	return dt, nil
}

// PowerSpectrum returns the one-sided amplitude spectrum of component col,
// with the mean removed, and the frequency of each bin in cycles per unit
// time.
func PowerSpectrum(traj *dynamo.Trajectory, col int) (freqs, amps []float64, err error) {
	dt, err := SampleInterval(traj)
	if err != nil {
		return nil, nil, err
	}
	if col < 0 || col >= traj.Dim() {
		return nil, nil, fmt.Errorf("%w: column %d of a %d-dimensional state", dynamo.ErrInvalidInput, col, traj.Dim())
	}

	data := traj.Column(col)
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	for i := range data {
		data[i] -= mean
	}

	fft := fourier.NewFFT(len(data))
	coeffs := fft.Coefficients(nil, data)
	freqs = make([]float64, len(coeffs))
	amps = make([]float64, len(coeffs))
	for i, c := range coeffs {
		freqs[i] = fft.Freq(i) / dt
		amps[i] = cmplx.Abs(c)
	}
	return freqs, amps, nil
}

// DominantFrequency is the frequency of the strongest non-constant bin.
func DominantFrequency(traj *dynamo.Trajectory, col int) (float64, error) {
	freqs, amps, err := PowerSpectrum(traj, col)
	if err != nil {
		return 0, err
	}
	best := 0
	for i := 1; i < len(amps); i++ {
		if best == 0 || amps[i] > amps[best] {
			best = i
		}
	}
	if best == 0 {
		return 0, fmt.Errorf("%w: spectrum has no oscillating bins", dynamo.ErrInvalidInput)
	}
	return freqs[best], nil
}
