package adaptive

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-adaptive-filter/internal/synth"
	"github.com/tphakala/go-adaptive-filter/internal/testutil"
)

func TestDelayReference(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}

	// 0.25 ms at 16 kHz is 4 samples.
	got, err := DelayReference(x, 0.25, 16000)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 2}, got)

	got, err = DelayReference(x, 0, 16000)
	require.NoError(t, err)
	assert.Equal(t, x, got)

	got, err = DelayReference(x, 10, 16000)
	require.NoError(t, err)
	assert.Equal(t, make([]float64, len(x)), got)

	_, err = DelayReference(x, -1, 16000)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = DelayReference(x, 1, 0)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestDelayReferenceRounds(t *testing.T) {
	// 2 ms at 16 kHz is 32 samples; 0.09 ms rounds to 1 sample.
	x := make([]float64, 64)
	x[0] = 1

	got, err := DelayReference(x, 2, 16000)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got[32], 0)

	got, err = DelayReference(x, 0.09, 16000)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got[1], 0)
}

func TestMicNoiseSNR(t *testing.T) {
	noise := synth.Tone(48000, 300, 1, 16000)

	noisy := MicNoise(noise, 20, 3)
	require.Len(t, noisy, len(noise))

	added := make([]float64, len(noise))
	for i := range noise {
		added[i] = noisy[i] - noise[i]
	}
	assert.InDelta(t, 20.0, SNR(noise, added), 0.2)
	testutil.AssertRelativeError(t, Power(noise)/100, Power(added), 0.05)

	// Seeded output is reproducible.
	assert.Equal(t, noisy, MicNoise(noise, 20, 3))

	// Silent input stays silent.
	assert.Equal(t, make([]float64, 10), MicNoise(make([]float64, 10), 20, 3))
}

func TestSimulateReferenceDrivesFilter(t *testing.T) {
	m := mixture(16000)

	ref, err := SimulateReference(m.Noise, DefaultMicSNR, 0.125, DefaultSampleRate, 4)
	require.NoError(t, err)
	require.Len(t, ref, len(m.Noise))

	cfg := DefaultConfig(NLMS)
	cfg.StepSize = 0.01
	cfg.Seed = 4
	f, err := New(cfg)
	require.NoError(t, err)

	res, err := f.Filter(m.Noisy, ref, m.Clean)
	require.NoError(t, err)
	assert.Greater(t, res.Metrics.DeltaSNR, 0.0)
}

func TestLineEnhanceExtractsTone(t *testing.T) {
	// A hum buried in white noise: the delayed predictor can only learn the hum.
	const n = 32000
	hum := synth.Tone(n, 120, 0.5, 16000)
	white := synth.Gaussian(n, 0.3, rand.NewPCG(5, 6))

	noisy := make([]float64, n)
	for i := range noisy {
		noisy[i] = hum[i] + white[i]
	}

	ref, err := LineEnhance(noisy, DefaultLineEnhancerDelay, &LineEnhancerOptions{Order: 32, StepSize: 0.01, Seed: 1})
	require.NoError(t, err)
	require.Len(t, ref, n)
	testutil.AssertNoNaNOrInf(t, ref)

	// Late in the run the prediction tracks the hum far better than the input does.
	tail := n / 4
	diffRef := make([]float64, tail)
	diffIn := make([]float64, tail)
	for i := range tail {
		j := n - tail + i
		diffRef[i] = ref[j] - hum[j]
		diffIn[i] = noisy[j] - hum[j]
	}
	assert.Less(t, testutil.TailPower(diffRef, tail), 0.5*testutil.TailPower(diffIn, tail))
}

func TestLineEnhanceValidation(t *testing.T) {
	_, err := LineEnhance(nil, 1, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = LineEnhance([]float64{1, 2}, 0, nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	out, err := LineEnhance([]float64{1, 2, 3}, 8, nil)
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.False(t, math.IsNaN(out[2]))
}
