// Package filter designs the fixed FIR filters used to simulate acoustic
// paths between a noise source and the primary microphone.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-adaptive-filter/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

const (
	minFilterTaps = 1
	maxFilterTaps = 4096

	windowNormalizationFactor = 2.0
	sincZeroThreshold         = 1e-10
)

// KaiserWindow generates a symmetric Kaiser window:
//
//	w[n] = I₀(β·sqrt(1 - ((n - α)/α)²)) / I₀(β),  α = (length-1)/2
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}

	alpha := float64(length-1) / windowNormalizationFactor
	i0Beta := mathutil.BesselI0(beta)
	for n := range length {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(1.0-x*x)) / i0Beta
	}

	return window
}

// LowPassParams describes a windowed-sinc lowpass design.
type LowPassParams struct {
	// NumTaps is the filter length.
	NumTaps int

	// Cutoff is the normalised cutoff frequency in (0, 0.5).
	Cutoff float64

	// Attenuation is the stopband attenuation in dB, used to pick β.
	Attenuation float64

	// Gain is the DC gain.
	Gain float64
}

// Validate checks the design parameters.
func (p *LowPassParams) Validate() error {
	if p.NumTaps < minFilterTaps || p.NumTaps > maxFilterTaps {
		return fmt.Errorf("filter length %d out of range [%d, %d]", p.NumTaps, minFilterTaps, maxFilterTaps)
	}
	if p.Cutoff <= 0 || p.Cutoff >= 0.5 {
		return fmt.Errorf("invalid cutoff frequency: %f (must be in (0, 0.5))", p.Cutoff)
	}
	if p.Attenuation < 0 {
		return fmt.Errorf("invalid attenuation: %f dB", p.Attenuation)
	}
	if p.Gain == 0 {
		return fmt.Errorf("gain must be non-zero")
	}
	return nil
}

// LowPass designs a linear-phase Kaiser-windowed sinc lowpass normalised to
// the requested DC gain.
func LowPass(p LowPassParams) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	window := KaiserWindow(p.NumTaps, mathutil.KaiserBeta(p.Attenuation))
	h := make([]float64, p.NumTaps)
	center := float64(p.NumTaps-1) / windowNormalizationFactor

	for n := range p.NumTaps {
		x := float64(n) - center
		var sinc float64
		if math.Abs(x) < sincZeroThreshold {
			sinc = windowNormalizationFactor * p.Cutoff
		} else {
			sinc = math.Sin(windowNormalizationFactor*math.Pi*p.Cutoff*x) / (math.Pi * x)
		}
		h[n] = sinc * window[n]
	}

	if sum := f64.Sum(h); math.Abs(sum) > sincZeroThreshold {
		f64.Scale(h, h, p.Gain/sum)
	}

	return h, nil
}
