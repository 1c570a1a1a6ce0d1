package adaptive

import (
	"fmt"
	"math"

	"github.com/tphakala/go-adaptive-filter/internal/engine"
)

// Filter is a configured adaptive noise canceller.
//
// A Filter holds no per-run state: every call to Filter re-initialises the
// weights and auxiliary matrices, so one Filter may be used from many
// goroutines at once.
type Filter interface {
	// Filter removes from d the component predictable from the noise
	// reference x. When clean is non-nil the run is scored against it and
	// Result.Metrics is set.
	//
	// x is first truncated to len(d), then d and x are truncated to
	// len(clean). The outputs have length min(len(d), len(x), len(clean)).
	Filter(d, x, clean []float64) (*Result, error)

	// Algorithm returns the configured algorithm.
	Algorithm() Algorithm

	// Order returns the number of taps.
	Order() int

	// Config returns a copy of the effective configuration.
	Config() Config
}

// Result is the output of one filter run.
type Result struct {
	// Error is e[n] = d[n] - y[n], the noise-reduced signal.
	Error []float64

	// NoiseEstimate is y[n], the filter's estimate of the noise in d.
	NoiseEstimate []float64

	// Weights are the final filter taps.
	Weights []float64

	// Metrics is set when a clean signal was supplied.
	Metrics *Metrics

	// Unstable is set when the weights diverged during the run.
	Unstable bool
}

// Stability returns an error wrapping ErrUnstable if the run diverged, nil
// otherwise. Divergence never fails a run; callers decide what to do with it.
func (r *Result) Stability() error {
	if !r.Unstable {
		return nil
	}
	return fmt.Errorf("%w: final weight norm exceeds %g or is not finite", ErrUnstable, engine.DivergenceThreshold)
}

// runner is the engine contract shared by the streaming and block cores.
type runner interface {
	Run(d, x []float64) *engine.Run
	Order() int
}

type adaptiveFilter struct {
	config Config
	core   runner
}

func (f *adaptiveFilter) Filter(d, x, clean []float64) (*Result, error) {
	if len(d) == 0 {
		return nil, fmt.Errorf("%w: desired signal is empty", ErrValidation)
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: reference signal is empty", ErrValidation)
	}
	if clean != nil && len(clean) == 0 {
		return nil, fmt.Errorf("%w: clean signal is empty", ErrValidation)
	}

	d, x, clean = truncate(d, x, clean)

	run := f.core.Run(d, x)

	result := &Result{
		Error:         run.Error,
		NoiseEstimate: run.NoiseEstimate,
		Weights:       run.Weights,
		Unstable:      engine.Unstable(run.Weights) || !allFinite(run.Error),
	}

	if clean != nil {
		result.Metrics = evaluate(&f.config, d, clean, run)
	}

	return result, nil
}

func (f *adaptiveFilter) Algorithm() Algorithm {
	return f.config.Algorithm
}

func (f *adaptiveFilter) Order() int {
	return f.core.Order()
}

func (f *adaptiveFilter) Config() Config {
	return f.config
}

// truncate applies the two-step length alignment: d and x to their common
// length, then all three to len(clean) when clean is shorter.
func truncate(d, x, clean []float64) (dt, xt, ct []float64) {
	n := min(len(d), len(x))
	if clean == nil {
		return d[:n], x[:n], nil
	}

	n = min(n, len(clean))
	return d[:n], x[:n], clean[:n]
}

func allFinite(s []float64) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
