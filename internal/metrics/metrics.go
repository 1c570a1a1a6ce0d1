// Package metrics implements the noise-cancellation evaluation measures:
// MSE, SNR, SNR improvement and convergence time of an error trace.
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MSE returns the squared mean of the differences, (mean(a - b))².
//
// This is not the textbook mean of squared differences: positive and
// negative errors cancel before squaring. The formula is kept for
// comparability with results produced by earlier versions of the
// evaluation; use MeanSquaredError for the conventional measure.
//
// Only the first min(len(a), len(b)) samples are compared. Empty input
// returns NaN.
func MSE(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return math.NaN()
	}
	diff := make([]float64, n)
	floats.SubTo(diff, a[:n], b[:n])
	m := stat.Mean(diff, nil)
	return m * m
}

// MeanSquaredError returns mean((a - b)²) over the common length.
func MeanSquaredError(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return math.NaN()
	}
	d := floats.Distance(a[:n], b[:n], 2)
	return d * d / float64(n)
}

// Power returns mean(s²).
func Power(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Dot(s, s) / float64(len(s))
}

// SNR returns 10·log10(P(desired) / (P(noisy) + 1e-10) + 1e-10) in dB.
// Both floors keep the result finite for silent or identical inputs.
func SNR(desired, noisy []float64) float64 {
	ratio := Power(desired) / (Power(noisy) + powerFloor)
	return decibelFactor * math.Log10(ratio+ratioFloor)
}

// DeltaSNR is the SNR improvement from filtering:
// SNR(clean, filtered) - SNR(clean, noisy).
func DeltaSNR(clean, filtered, noisy []float64) float64 {
	return SNR(clean, filtered) - SNR(clean, noisy)
}

// Convergence configures ConvergenceTime.
type Convergence struct {
	// SteadyWindow is the length of the trailing reference segment and of
	// each evaluation window, in samples.
	SteadyWindow int

	// RelativeTolerance is the allowed deviation of a window's power from
	// the steady-state power, as a fraction of it.
	RelativeTolerance float64

	// ConsecutiveWindows is how many windows in a row must stay in band.
	ConsecutiveWindows int
}

// DefaultConvergence returns the default detection parameters.
func DefaultConvergence() Convergence {
	return Convergence{
		SteadyWindow:       DefaultSteadyWindow,
		RelativeTolerance:  DefaultRelativeTolerance,
		ConsecutiveWindows: DefaultConsecutiveWindows,
	}
}

// Validate checks the detection parameters.
func (c Convergence) Validate() error {
	if c.SteadyWindow < 1 {
		return fmt.Errorf("steady window must be positive, got %d", c.SteadyWindow)
	}
	if !(c.RelativeTolerance >= 0) || math.IsInf(c.RelativeTolerance, 0) {
		return fmt.Errorf("relative tolerance must be non-negative and finite, got %v", c.RelativeTolerance)
	}
	if c.ConsecutiveWindows < 1 {
		return fmt.Errorf("consecutive windows must be positive, got %d", c.ConsecutiveWindows)
	}
	return nil
}

// ConvergenceIndex returns the first sample of the earliest run of
// ConsecutiveWindows non-overlapping windows whose power lies within the
// steady-state band, and whether such a run exists.
//
// The steady-state power is mean(e²) over the trailing SteadyWindow samples.
// A window is in band when |P(window) - P(steady)| <= tol·P(steady). Windows
// start at sample 0 and are SteadyWindow long; a trailing partial window is
// not evaluated. Because the band only shrinks as tol decreases, a tighter
// tolerance never yields an earlier index.
func ConvergenceIndex(e []float64, c Convergence) (int, bool) {
	w := c.SteadyWindow
	if w < 1 || c.ConsecutiveWindows < 1 || len(e) < w {
		return 0, false
	}

	steady := Power(e[len(e)-w:])
	band := c.RelativeTolerance*steady + absoluteTolerance

	run := 0
	for start := 0; start+w <= len(e); start += w {
		if math.Abs(Power(e[start:start+w])-steady) <= band {
			run++
			if run == c.ConsecutiveWindows {
				return start - (run-1)*w, true
			}
		} else {
			run = 0
		}
	}
	return 0, false
}

// ConvergenceTime converts ConvergenceIndex to seconds at sampleRate.
// A trace that never converges returns NaN and false.
func ConvergenceTime(e []float64, sampleRate float64, c Convergence) (float64, bool) {
	idx, ok := ConvergenceIndex(e, c)
	if !ok || sampleRate <= 0 {
		return math.NaN(), false
	}
	return float64(idx) / sampleRate, true
}
