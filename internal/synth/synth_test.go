package synth

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-adaptive-filter/internal/filter"
	"github.com/tphakala/go-adaptive-filter/internal/testutil"
	"gonum.org/v1/gonum/stat"
)

func TestNewMixture(t *testing.T) {
	m, err := NewMixture(Options{Samples: 4000})
	require.NoError(t, err)

	assert.Len(t, m.Clean, 4000)
	assert.Len(t, m.Noisy, 4000)
	assert.Len(t, m.Reference, 4000)
	testutil.AssertNoNaNOrInf(t, m.Noisy)

	// Without sensor noise the reference is the source itself.
	assert.Equal(t, m.Noise, m.Reference)

	// d - s is exactly the noise heard through the path.
	heard := filter.Apply(m.Noise, m.Path)
	for i := range m.Noisy {
		assert.InDelta(t, heard[i], m.Noisy[i]-m.Clean[i], 1e-12)
	}
}

func TestNewMixtureDeterministic(t *testing.T) {
	a, err := NewMixture(Options{Samples: 512, Seed: 7, SensorNoise: 0.01})
	require.NoError(t, err)
	b, err := NewMixture(Options{Samples: 512, Seed: 7, SensorNoise: 0.01})
	require.NoError(t, err)
	assert.Equal(t, a.Reference, b.Reference)

	c, err := NewMixture(Options{Samples: 512, Seed: 8, SensorNoise: 0.01})
	require.NoError(t, err)
	assert.NotEqual(t, a.Reference, c.Reference)
}

func TestNewMixtureRejectsEmpty(t *testing.T) {
	_, err := NewMixture(Options{})
	assert.Error(t, err)
}

func TestGaussianStatistics(t *testing.T) {
	v := Gaussian(50000, 2, rand.NewPCG(3, 4))
	mean, std := stat.MeanStdDev(v, nil)
	assert.InDelta(t, 0, mean, 0.05)
	assert.InDelta(t, 2, std, 0.05)
}

func TestSystemIdentification(t *testing.T) {
	h := []float64{1, 0.5, -0.25}
	x, d := SystemIdentification(100, h, 0, 9)
	require.Len(t, x, 100)
	assert.InDeltaSlice(t, filter.Apply(x, h), d, 1e-12)
}
