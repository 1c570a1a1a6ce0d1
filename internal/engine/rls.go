package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-adaptive-filter/internal/simdops"
	"gonum.org/v1/gonum/mat"
)

// RLS is the recursive-least-squares rule with exponential forgetting.
//
// Per sample, with P the inverse input-correlation estimate:
//
//	k     = P x / (lambda + xᵀ P x)
//	delta = k e
//	P     = (P - k xᵀ P) / lambda
//
// P is kept in a SymDense and updated with a symmetric rank-one correction
// (k xᵀ P = P x xᵀ P / denom), so it stays exactly symmetric in floating point.
type RLS struct {
	// Lambda is the forgetting factor in (0, 1].
	Lambda float64

	// Delta sets the initial P = I/Delta; zero selects DefaultRLSDelta.
	Delta float64
}

// Name implements Rule.
func (RLS) Name() string { return "RLS" }

// Validate implements Rule.
func (r RLS) Validate() error {
	if !(r.Lambda > 0 && r.Lambda <= 1) {
		return fmt.Errorf("RLS forgetting factor must be in (0, 1], got %v", r.Lambda)
	}
	if r.Delta < 0 || math.IsNaN(r.Delta) || math.IsInf(r.Delta, 0) {
		return fmt.Errorf("RLS regularisation must be positive and finite, got %v", r.Delta)
	}
	return nil
}

// NewStrategy implements Rule.
func (r RLS) NewStrategy(order int, _ *simdops.Ops) Strategy {
	delta := r.Delta
	if delta == 0 {
		delta = DefaultRLSDelta
	}

	p := mat.NewSymDense(order, nil)
	for i := range order {
		p.SetSym(i, i, 1/delta)
	}

	return &rlsStrategy{
		lambda: r.Lambda,
		p:      p,
		px:     mat.NewVecDense(order, nil),
		delta:  make([]float64, order),
	}
}

type rlsStrategy struct {
	lambda float64
	p      *mat.SymDense
	px     *mat.VecDense
	delta  []float64
}

func (s *rlsStrategy) Update(e float64, x []float64) []float64 {
	xv := mat.NewVecDense(len(x), x)

	s.px.MulVec(s.p, xv)
	denom := s.lambda + mat.Dot(xv, s.px)
	if denom < minDenominator {
		denom = minDenominator
	}

	px := s.px.RawVector().Data
	for i := range s.delta {
		s.delta[i] = px[i] / denom * e
	}

	s.p.SymRankOne(s.p, -1/denom, s.px)
	if s.lambda != 1 {
		s.p.ScaleSym(1/s.lambda, s.p)
	}

	return s.delta
}

// covariance exposes P for tests.
func (s *rlsStrategy) covariance() *mat.SymDense {
	return s.p
}
