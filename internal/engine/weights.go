package engine

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// NewWeights returns an order-length weight vector drawn from N(0, 0.5) and
// scaled by 1e-3, so every tap starts near zero but no two taps are equal.
// A nil src falls back to a randomly seeded PCG.
func NewWeights(order int, src rand.Source) []float64 {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	dist := distuv.Normal{Mu: 0, Sigma: initWeightStdDev, Src: src}

	w := make([]float64, order)
	for i := range w {
		w[i] = dist.Rand() * initWeightScale
	}
	return w
}

// NewSource returns a deterministic source for seed, or nil for seed 0.
func NewSource(seed uint64) rand.Source {
	if seed == 0 {
		return nil
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Unstable reports whether a finished run diverged: non-finite weights or a
// weight norm above DivergenceThreshold.
func Unstable(weights []float64) bool {
	for _, v := range weights {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return floats.Norm(weights, 2) > DivergenceThreshold
}
