package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-adaptive-filter/internal/simdops"
)

// NLMS normalises the LMS step by the instantaneous window energy:
//
//	delta = mu / (eps + ||x||²) * e * x
type NLMS struct {
	Mu float64

	// Eps is the energy floor; zero selects DefaultEpsilon.
	Eps float64
}

// Name implements Rule.
func (NLMS) Name() string { return "NLMS" }

// Validate implements Rule.
func (r NLMS) Validate() error {
	if math.IsNaN(r.Mu) || math.IsInf(r.Mu, 0) {
		return fmt.Errorf("NLMS step size must be finite, got %v", r.Mu)
	}
	if !(r.Eps >= 0) || math.IsInf(r.Eps, 0) {
		return fmt.Errorf("NLMS epsilon must be non-negative and finite, got %v", r.Eps)
	}
	return nil
}

// NewStrategy implements Rule.
func (r NLMS) NewStrategy(order int, ops *simdops.Ops) Strategy {
	eps := r.Eps
	if eps == 0 {
		eps = DefaultEpsilon
	}
	return &nlmsStrategy{
		mu:    r.Mu,
		eps:   eps,
		delta: make([]float64, order),
		ops:   ops,
	}
}

type nlmsStrategy struct {
	mu    float64
	eps   float64
	delta []float64
	ops   *simdops.Ops
}

func (s *nlmsStrategy) Update(e float64, x []float64) []float64 {
	power := s.eps + s.ops.Dot(x, x)
	s.ops.Scale(s.delta, x, s.mu/power*e)
	return s.delta
}
