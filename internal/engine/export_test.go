package engine

import "math"

func nanValue() float64 { return math.NaN() }

func infValue() float64 { return math.Inf(1) }

// directFilter computes y[n] = Σ w[i]·x[n-i] with fixed weights.
func directFilter(w, x []float64, n int) []float64 {
	y := make([]float64, n)
	for i := range n {
		for j, wj := range w {
			if i-j >= 0 {
				y[i] += wj * x[i-j]
			}
		}
	}
	return y
}
