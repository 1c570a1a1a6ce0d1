package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-adaptive-filter/internal/simdops"
)

// LMS is the plain stochastic-gradient rule: delta = mu * e * x.
type LMS struct {
	Mu float64
}

// Name implements Rule.
func (LMS) Name() string { return "LMS" }

// Validate implements Rule.
func (r LMS) Validate() error {
	if math.IsNaN(r.Mu) || math.IsInf(r.Mu, 0) {
		return fmt.Errorf("LMS step size must be finite, got %v", r.Mu)
	}
	return nil
}

// NewStrategy implements Rule.
func (r LMS) NewStrategy(order int, ops *simdops.Ops) Strategy {
	return &lmsStrategy{
		mu:    r.Mu,
		delta: make([]float64, order),
		ops:   ops,
	}
}

type lmsStrategy struct {
	mu    float64
	delta []float64
	ops   *simdops.Ops
}

func (s *lmsStrategy) Update(e float64, x []float64) []float64 {
	s.ops.Scale(s.delta, x, s.mu*e)
	return s.delta
}
