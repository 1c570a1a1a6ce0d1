package engine

import (
	"fmt"
	"time"

	"github.com/tphakala/go-adaptive-filter/internal/simdops"
)

// Run holds the outputs of one completed filter run.
type Run struct {
	// Error is e[n] = d[n] - y[n], the cleaned signal in noise cancellation.
	Error []float64

	// NoiseEstimate is y[n], the filter's prediction of the noise in d.
	NoiseEstimate []float64

	// Weights are the final filter taps.
	Weights []float64

	// Elapsed covers the sample loop only.
	Elapsed time.Duration
}

// StreamingFilter is a sample-by-sample adaptive FIR filter.
//
// Each sample's weight update feeds the next sample's prediction, so the
// loop is strictly sequential. A StreamingFilter holds no per-run state and
// Run may be called concurrently; every call allocates its own weights,
// window and strategy state.
type StreamingFilter struct {
	order int
	rule  Rule
	ops   *simdops.Ops
	seed  uint64
}

// NewStreamingFilter creates a streaming filter of the given order.
// A non-zero seed makes the weight initialisation reproducible; zero draws
// fresh random weights on every run.
func NewStreamingFilter(order int, rule Rule, seed uint64) (*StreamingFilter, error) {
	if order < 1 {
		return nil, fmt.Errorf("filter order must be positive, got %d", order)
	}
	if rule == nil {
		return nil, fmt.Errorf("update rule is nil")
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	return &StreamingFilter{
		order: order,
		rule:  rule,
		ops:   simdops.Default(),
		seed:  seed,
	}, nil
}

// UseSIMD selects the SIMD kernels (the default) or the pure-Go ones. It
// must be called before the filter is shared.
func (f *StreamingFilter) UseSIMD(enable bool) {
	f.ops = simdops.For(enable)
}

// Run filters d using reference x. len(x) must be >= len(d); only the first
// len(d) reference samples are used.
func (f *StreamingFilter) Run(d, x []float64) *Run {
	return f.RunWithWeights(d, x, NewWeights(f.order, NewSource(f.seed)))
}

// RunWithWeights is Run with caller-supplied initial weights. w is modified
// in place and returned as Run.Weights.
func (f *StreamingFilter) RunWithWeights(d, x, w []float64) *Run {
	n := len(d)
	run := &Run{
		Error:         make([]float64, n),
		NoiseEstimate: make([]float64, n),
		Weights:       w,
	}

	window := NewTapWindow(f.order)
	strategy := f.rule.NewStrategy(f.order, f.ops)
	dot := f.ops.Dot

	start := time.Now()
	for i := range n {
		window.Push(x[i])
		taps := window.View()

		y := dot(w, taps)
		e := d[i] - y
		run.NoiseEstimate[i] = y
		run.Error[i] = e

		delta := strategy.Update(e, taps)
		for j := range w {
			w[j] += delta[j]
		}
	}
	run.Elapsed = time.Since(start)

	return run
}

// Order returns the number of taps.
func (f *StreamingFilter) Order() int {
	return f.order
}

// Rule returns the update rule.
func (f *StreamingFilter) Rule() Rule {
	return f.rule
}
