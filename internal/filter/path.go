package filter

import (
	"fmt"

	"github.com/tphakala/simd/f64"
)

// AcousticPath models the transfer from a noise source to a microphone as a
// pure delay followed by a lowpass FIR.
type AcousticPath struct {
	// Delay in samples before the lowpass response starts.
	Delay int

	// LowPass shapes the path; a zero NumTaps means a pure (scaled) delay.
	LowPass LowPassParams
}

// ImpulseResponse returns the path response, length Delay + NumTaps.
func (a AcousticPath) ImpulseResponse() ([]float64, error) {
	if a.Delay < 0 {
		return nil, fmt.Errorf("path delay must be non-negative, got %d", a.Delay)
	}

	if a.LowPass.NumTaps == 0 {
		gain := a.LowPass.Gain
		if gain == 0 {
			gain = 1
		}
		h := make([]float64, a.Delay+1)
		h[a.Delay] = gain
		return h, nil
	}

	lp, err := LowPass(a.LowPass)
	if err != nil {
		return nil, err
	}

	h := make([]float64, a.Delay+len(lp))
	copy(h[a.Delay:], lp)
	return h, nil
}

// Apply filters signal through the causal FIR h, y[n] = Σ h[k]·x[n-k].
// The output has the same length as signal.
func Apply(signal, h []float64) []float64 {
	if len(signal) == 0 || len(h) == 0 {
		return make([]float64, len(signal))
	}

	// Correlation form of ConvolveValid: prepend len(h)-1 zeros and reverse h.
	padded := make([]float64, len(signal)+len(h)-1)
	copy(padded[len(h)-1:], signal)

	reversed := make([]float64, len(h))
	for i, v := range h {
		reversed[len(h)-1-i] = v
	}

	out := make([]float64, len(signal))
	f64.ConvolveValid(out, padded, reversed)
	return out
}
