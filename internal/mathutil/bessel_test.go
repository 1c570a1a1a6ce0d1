package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBesselI0(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 1},
		{1, 1.2660658777520082},
		{2, 2.2795853023360673},
		{5, 27.239871823604442},
		{10, 2815.716628466254},
	}

	for _, tt := range tests {
		got := BesselI0(tt.x)
		rel := math.Abs(got-tt.want) / tt.want
		assert.Less(t, rel, 1e-6, "BesselI0(%v) = %v, want %v", tt.x, got, tt.want)
	}
}

func TestBesselI0Symmetric(t *testing.T) {
	for _, x := range []float64{0.5, 3, 3.75, 8} {
		assert.InDelta(t, BesselI0(x), BesselI0(-x), 1e-12)
	}
}

func TestKaiserBeta(t *testing.T) {
	assert.Zero(t, KaiserBeta(20))
	assert.InDelta(t, 0.1102*(60-8.7), KaiserBeta(60), 1e-12)
	assert.Greater(t, KaiserBeta(40), 0.0)
	assert.Less(t, KaiserBeta(40), KaiserBeta(60))
}

func TestDBToPower(t *testing.T) {
	assert.InDelta(t, 1.0, DBToPower(0), 1e-12)
	assert.InDelta(t, 100.0, DBToPower(20), 1e-9)
	assert.InDelta(t, 0.001, DBToPower(-30), 1e-15)
	assert.InDelta(t, math.Pow(10, 3.5), DBToPower(35), 1e-6)
}
