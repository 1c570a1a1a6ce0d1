package adaptive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The evaluation MSE squares the mean difference, so zero-mean errors of any
// size score zero. This is the historical formula and is pinned here on
// purpose.
func TestMSEKeepsSquaredMeanFormula(t *testing.T) {
	a := []float64{2, -2, 2, -2}
	b := []float64{0, 0, 0, 0}
	assert.InDelta(t, 0.0, MSE(a, b), 1e-12)

	assert.InDelta(t, 1.0, MSE([]float64{1, 1, 1}, []float64{0, 0, 0}), 1e-12)
}

func TestSNRIdenticalSignalsIsFinite(t *testing.T) {
	m := mixture(1000)

	snr := SNR(m.Noisy, m.Noisy)
	assert.False(t, math.IsInf(snr, 0))
	assert.InDelta(t, 0.0, snr, 1e-6)

	// Noise power near zero is bounded by the 1e-10 floor.
	silent := SNR(m.Clean, make([]float64, len(m.Clean)))
	assert.False(t, math.IsInf(silent, 0))
	assert.Greater(t, silent, 80.0)
}

func TestDeltaSNRSign(t *testing.T) {
	m := mixture(1000)
	assert.InDelta(t, 0.0, DeltaSNR(m.Clean, m.Noisy, m.Noisy), 1e-12)
	assert.Greater(t, DeltaSNR(m.Clean, m.Clean, m.Noisy), 0.0)
}

func TestPower(t *testing.T) {
	if got := Power([]float64{1, -1, 3, -3}); got != 5 {
		t.Fatalf("Power = %g, want 5", got)
	}
	if got := Power(nil); got != 0 {
		t.Fatalf("Power(nil) = %g, want 0", got)
	}
}

func TestMetricsReportConventionalMSE(t *testing.T) {
	m := mixture(8000)

	cfg := DefaultConfig(NLMS)
	cfg.StepSize = 0.05
	cfg.Seed = 3
	f, err := New(cfg)
	require.NoError(t, err)

	res, err := f.Filter(m.Noisy, m.Reference, m.Clean)
	require.NoError(t, err)

	// The squared mean never exceeds the mean of squares.
	got := res.Metrics
	assert.Positive(t, got.SpeechSquaredError)
	assert.GreaterOrEqual(t, got.SpeechSquaredError, got.SpeechMSE)

	var sum float64
	for i := range m.Clean {
		diff := m.Clean[i] - res.Error[i]
		sum += diff * diff
	}
	assert.InDelta(t, sum/float64(len(m.Clean)), got.SpeechSquaredError, 1e-12)
}
