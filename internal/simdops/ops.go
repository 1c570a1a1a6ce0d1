// Package simdops collects the SIMD kernels used by the adaptive filter loops.
// Filter cores call through a single Ops table so a pure-Go fallback can be
// swapped in without touching the loops themselves.
//
// With Profile-Guided Optimization (Go 1.22+), function pointer calls in hot paths
// can be devirtualized and inlined, achieving near-zero overhead.
package simdops

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
)

// Ops provides the vector kernels needed by the filter cores.
type Ops struct {
	// Dot computes the inner product of two equal-length slices.
	Dot func(a, b []float64) float64

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)

	// MulComplex multiplies two spectra bin by bin: dst[i] = a[i] * b[i]
	MulComplex func(dst, a, b []complex128)
}

var (
	simdOps = Ops{
		Dot:        f64.DotProduct,
		Scale:      f64.Scale,
		MulComplex: c128.Mul,
	}
	genericOps = Ops{
		Dot:        dotGeneric,
		Scale:      scaleGeneric,
		MulComplex: mulComplexGeneric,
	}
)

// Default returns the SIMD-accelerated kernels.
func Default() *Ops {
	return &simdOps
}

// Generic returns plain Go kernels, used when Config.DisableSIMD is set.
func Generic() *Ops {
	return &genericOps
}

// For returns the SIMD table when enabled, otherwise the generic one.
func For(enableSIMD bool) *Ops {
	if enableSIMD {
		return Default()
	}
	return Generic()
}

func dotGeneric(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func scaleGeneric(dst, a []float64, s float64) {
	for i := range a {
		dst[i] = a[i] * s
	}
}

func mulComplexGeneric(dst, a, b []complex128) {
	for i := range a {
		dst[i] = a[i] * b[i]
	}
}
