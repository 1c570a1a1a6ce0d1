// Package synth generates synthetic noise-cancellation scenarios: a clean
// tone, a noise source heard through an acoustic path at the primary
// microphone, and a reference microphone close to the noise source.
package synth

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/tphakala/go-adaptive-filter/internal/filter"
	"gonum.org/v1/gonum/stat/distuv"
)

// Default scenario parameters.
const (
	DefaultSampleRate = 16000.0
	DefaultToneHz     = 440.0
	DefaultToneAmp    = 0.5
	DefaultNoiseAmp   = 0.5

	defaultPathDelay  = 4
	defaultPathTaps   = 9
	defaultPathCutoff = 0.3
	defaultPathAtten  = 40.0
	defaultPathGain   = 0.8

	defaultSeed = 1
)

// Options configures a synthetic mixture. Zero fields take the defaults above.
type Options struct {
	Samples    int
	SampleRate float64

	ToneHz  float64
	ToneAmp float64

	// NoiseAmp is the standard deviation of the white noise source.
	NoiseAmp float64

	// Path is the noise source to primary microphone transfer.
	Path *filter.AcousticPath

	// SensorNoise is the standard deviation of independent noise added to
	// the reference microphone.
	SensorNoise float64

	Seed uint64
}

// Mixture is one synthetic scenario.
type Mixture struct {
	Clean     []float64 // s[n]
	Noise     []float64 // v[n], the source
	Noisy     []float64 // d[n] = s[n] + (h * v)[n]
	Reference []float64 // x[n] = v[n] + sensor noise
	Path      []float64 // h
}

// NewMixture builds a noise-cancellation scenario.
func NewMixture(opts Options) (*Mixture, error) {
	if opts.Samples < 1 {
		return nil, fmt.Errorf("sample count must be positive, got %d", opts.Samples)
	}
	applyDefaults(&opts)

	path := opts.Path
	if path == nil {
		path = &filter.AcousticPath{
			Delay: defaultPathDelay,
			LowPass: filter.LowPassParams{
				NumTaps:     defaultPathTaps,
				Cutoff:      defaultPathCutoff,
				Attenuation: defaultPathAtten,
				Gain:        defaultPathGain,
			},
		}
	}
	h, err := path.ImpulseResponse()
	if err != nil {
		return nil, fmt.Errorf("acoustic path: %w", err)
	}

	src := rand.NewPCG(opts.Seed, opts.Seed+1)
	noise := Gaussian(opts.Samples, opts.NoiseAmp, src)
	clean := Tone(opts.Samples, opts.ToneHz, opts.ToneAmp, opts.SampleRate)

	heard := filter.Apply(noise, h)
	noisy := make([]float64, opts.Samples)
	for i := range noisy {
		noisy[i] = clean[i] + heard[i]
	}

	reference := make([]float64, opts.Samples)
	copy(reference, noise)
	if opts.SensorNoise > 0 {
		sensor := Gaussian(opts.Samples, opts.SensorNoise, src)
		for i := range reference {
			reference[i] += sensor[i]
		}
	}

	return &Mixture{
		Clean:     clean,
		Noise:     noise,
		Noisy:     noisy,
		Reference: reference,
		Path:      h,
	}, nil
}

// SystemIdentification returns a white input x and the response
// d = h * x + measurement noise of standard deviation noiseStd.
func SystemIdentification(samples int, h []float64, noiseStd float64, seed uint64) (x, d []float64) {
	src := rand.NewPCG(seed, seed+1)
	x = Gaussian(samples, 1, src)
	d = filter.Apply(x, h)
	if noiseStd > 0 {
		v := Gaussian(samples, noiseStd, src)
		for i := range d {
			d[i] += v[i]
		}
	}
	return x, d
}

// Tone returns amp·sin(2π f n / fs).
func Tone(samples int, freq, amp, sampleRate float64) []float64 {
	out := make([]float64, samples)
	omega := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = amp * math.Sin(omega*float64(i))
	}
	return out
}

// Gaussian returns zero-mean white noise with the given standard deviation.
func Gaussian(samples int, std float64, src rand.Source) []float64 {
	out := make([]float64, samples)
	if std == 0 {
		return out
	}
	dist := distuv.Normal{Mu: 0, Sigma: std, Src: src}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

func applyDefaults(opts *Options) {
	if opts.SampleRate == 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.ToneHz == 0 {
		opts.ToneHz = DefaultToneHz
	}
	if opts.ToneAmp == 0 {
		opts.ToneAmp = DefaultToneAmp
	}
	if opts.NoiseAmp == 0 {
		opts.NoiseAmp = DefaultNoiseAmp
	}
	if opts.Seed == 0 {
		opts.Seed = defaultSeed
	}
}
