package engine

import "github.com/tphakala/go-adaptive-filter/internal/simdops"

// Strategy computes the weight correction for one sample.
//
// Update receives the current error e[n] and the newest-first tap window and
// returns delta such that W += delta. The returned slice is owned by the
// strategy and reused on the next call.
type Strategy interface {
	Update(e float64, x []float64) []float64
}

// Rule is an immutable set of update-rule parameters. NewStrategy builds
// fresh per-run state for a filter of the given order, so a Rule can be
// shared by concurrent runs.
type Rule interface {
	// Name returns the algorithm identifier, e.g. "NLMS".
	Name() string

	// Validate checks the rule parameters.
	Validate() error

	// NewStrategy allocates the per-run auxiliary state. Vector work goes
	// through ops.
	NewStrategy(order int, ops *simdops.Ops) Strategy
}
