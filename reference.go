package adaptive

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/tphakala/go-adaptive-filter/internal/engine"
	"github.com/tphakala/go-adaptive-filter/internal/mathutil"
	"github.com/tphakala/go-adaptive-filter/internal/metrics"
	"gonum.org/v1/gonum/stat/distuv"
)

// MicNoise returns noise plus independent white noise at snrDB below the
// power of noise, modelling the self-noise of a reference microphone.
// A non-zero seed makes the result reproducible.
func MicNoise(noise []float64, snrDB float64, seed uint64) []float64 {
	out := make([]float64, len(noise))
	copy(out, noise)

	power := metrics.Power(noise)
	if power == 0 || math.IsInf(snrDB, 1) {
		return out
	}

	src := engine.NewSource(seed)
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	dist := distuv.Normal{Mu: 0, Sigma: math.Sqrt(power / mathutil.DBToPower(snrDB)), Src: src}

	for i := range out {
		out[i] += dist.Rand()
	}
	return out
}

// DelayReference delays x by round(delayMs·sampleRate/1000) samples. The
// head is zero-filled and the result keeps the length of x.
func DelayReference(x []float64, delayMs, sampleRate float64) ([]float64, error) {
	if delayMs < 0 || math.IsNaN(delayMs) {
		return nil, fmt.Errorf("%w: delay must be non-negative, got %v ms", ErrConfiguration, delayMs)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive", ErrConfiguration)
	}

	shift := int(math.Round(delayMs * sampleRate / msPerSecond))
	out := make([]float64, len(x))
	if shift < len(x) {
		copy(out[shift:], x[:len(x)-shift])
	}
	return out, nil
}

// SimulateReference turns a clean noise recording into a realistic
// reference: MicNoise at micSNR dB, then DelayReference.
func SimulateReference(noise []float64, micSNR, delayMs, sampleRate float64, seed uint64) ([]float64, error) {
	return DelayReference(MicNoise(noise, micSNR, seed), delayMs, sampleRate)
}

// LineEnhancerOptions configures LineEnhance. Zero fields take the
// DefaultLineEnhancer values.
type LineEnhancerOptions struct {
	Order    int
	StepSize float64
	Seed     uint64
}

// LineEnhance derives a noise reference from the noisy signal alone.
//
// An NLMS predictor estimates noisy[n] from noisy[n-delay] and earlier
// samples. Components correlated over more than delay samples (hum, engine
// and fan tones) are predictable and appear in the prediction; broadband
// speech decorrelates quickly and does not. The prediction is returned as
// the reference.
func LineEnhance(noisy []float64, delay int, opts *LineEnhancerOptions) ([]float64, error) {
	if len(noisy) == 0 {
		return nil, fmt.Errorf("%w: noisy signal is empty", ErrValidation)
	}
	if delay < 1 {
		return nil, fmt.Errorf("%w: line enhancer delay must be positive, got %d", ErrConfiguration, delay)
	}

	var o LineEnhancerOptions
	if opts != nil {
		o = *opts
	}
	if o.Order == 0 {
		o.Order = DefaultLineEnhancerOrder
	}
	if o.StepSize == 0 {
		o.StepSize = DefaultLineEnhancerMu
	}

	predictor, err := engine.NewStreamingFilter(o.Order, engine.NLMS{Mu: o.StepSize}, o.Seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	delayed := make([]float64, len(noisy))
	if delay < len(noisy) {
		copy(delayed[delay:], noisy[:len(noisy)-delay])
	}

	return predictor.Run(noisy, delayed).NoiseEstimate, nil
}
