package main

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adaptive "github.com/tphakala/go-adaptive-filter"
	"github.com/tphakala/go-adaptive-filter/internal/synth"
	"github.com/tphakala/go-adaptive-filter/internal/wavio"
)

// writeScenario writes a synthetic noisy/noise/clean triple to dir.
func writeScenario(t *testing.T, dir string) (noisy, noise, clean string) {
	t.Helper()

	m, err := synth.NewMixture(synth.Options{Samples: 16000, ToneAmp: 0.3, NoiseAmp: 0.2, Seed: 3})
	require.NoError(t, err)

	noisy = filepath.Join(dir, "noisy.wav")
	noise = filepath.Join(dir, "noise.wav")
	clean = filepath.Join(dir, "clean.wav")
	require.NoError(t, wavio.Write(noisy, m.Noisy, 16000, 16))
	require.NoError(t, wavio.Write(noise, m.Reference, 16000, 16))
	require.NoError(t, wavio.Write(clean, m.Clean, 16000, 16))
	return noisy, noise, clean
}

func TestCancelWAV(t *testing.T) {
	dir := t.TempDir()
	noisy, noise, clean := writeScenario(t, dir)
	out := filepath.Join(dir, "out.wav")

	cfg := adaptive.DefaultConfig(adaptive.NLMS)
	cfg.StepSize = 0.05
	cfg.Seed = 1

	stats, err := cancelWAV(cfg, options{noisyPath: noisy, outputPath: out, refPath: noise, cleanPath: clean})
	require.NoError(t, err)
	assert.Equal(t, 16000, stats.sampleRate)
	assert.Equal(t, 16000, stats.samples)
	require.NotNil(t, stats.result.Metrics)
	assert.Greater(t, stats.result.Metrics.DeltaSNR, 0.0)

	written, err := wavio.Read(out)
	require.NoError(t, err)
	assert.Len(t, written.Samples, 16000)
}

func TestCancelWAVWithoutClean(t *testing.T) {
	dir := t.TempDir()
	noisy, noise, _ := writeScenario(t, dir)

	stats, err := cancelWAV(adaptive.DefaultConfig(adaptive.LMS), options{
		noisyPath:  noisy,
		outputPath: filepath.Join(dir, "out.wav"),
		refPath:    noise,
	})
	require.NoError(t, err)
	assert.Nil(t, stats.result.Metrics)
}

func TestBuildReferenceModes(t *testing.T) {
	dir := t.TempDir()
	noisyPath, noisePath, _ := writeScenario(t, dir)

	noisy, err := wavio.Read(noisyPath)
	require.NoError(t, err)
	raw, err := wavio.Read(noisePath)
	require.NoError(t, err)

	plain, err := buildReference(options{refPath: noisePath}, noisy)
	require.NoError(t, err)
	assert.Equal(t, raw.Samples, plain)

	// 2 ms at 16 kHz shifts by 32 samples.
	sim, err := buildReference(options{refPath: noisePath, simulate: true, delayMs: 2, micSNR: 35, seed: 1}, noisy)
	require.NoError(t, err)
	require.Len(t, sim, len(raw.Samples))
	for i := range 32 {
		assert.InDelta(t, 0.0, sim[i], 0)
	}

	ale, err := buildReference(options{ale: true, aleDelay: 1, seed: 1}, noisy)
	require.NoError(t, err)
	assert.Len(t, ale, len(noisy.Samples))
}

func TestLoadInputsMissingReference(t *testing.T) {
	dir := t.TempDir()
	noisy, _, _ := writeScenario(t, dir)

	_, err := loadInputs(options{noisyPath: noisy, refPath: filepath.Join(dir, "missing.wav")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestPrintMetrics(t *testing.T) {
	var buf bytes.Buffer
	printMetrics(&buf, &adaptive.Metrics{SNR: 12.345, DeltaSNR: 3.2, SpeechSquaredError: 0.0125, Elapsed: 1500 * time.Millisecond, ConvergenceTime: 0.25, Converged: true})
	assert.Contains(t, buf.String(), "12.35 dB")
	assert.Contains(t, buf.String(), "Mean sq. error:   0.0125")
	assert.Contains(t, buf.String(), "Convergence-time: 0.250s")

	buf.Reset()
	printMetrics(&buf, &adaptive.Metrics{ConvergenceTime: math.NaN()})
	assert.Contains(t, buf.String(), "not converged")
}
