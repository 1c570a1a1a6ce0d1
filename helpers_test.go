package adaptive

import (
	"github.com/tphakala/go-adaptive-filter/internal/synth"
)

// mixture builds the standard synthetic scenario: a sine, white noise heard
// through a short delayed lowpass path, and the noise itself as reference.
func mixture(samples int) *synth.Mixture {
	m, err := synth.NewMixture(synth.Options{Samples: samples, Seed: 11})
	if err != nil {
		panic(err)
	}
	return m
}
