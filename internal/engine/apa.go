package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-adaptive-filter/internal/simdops"
	"gonum.org/v1/gonum/mat"
)

// APA is the affine projection rule of projection order K:
//
//	delta = mu * X (XᵀX + eps I)⁻¹ e
//
// where the K columns of X are the most recent tap windows and e holds the
// matching errors. K = 1 reduces to NLMS. Each step costs O(N K² + K³).
type APA struct {
	Mu float64

	// Eps regularises the K×K Gram matrix; zero selects DefaultEpsilon.
	Eps float64

	// Order is the projection order K.
	Order int
}

// Name implements Rule.
func (APA) Name() string { return "APA" }

// Validate implements Rule.
func (r APA) Validate() error {
	if math.IsNaN(r.Mu) || math.IsInf(r.Mu, 0) {
		return fmt.Errorf("APA step size must be finite, got %v", r.Mu)
	}
	if !(r.Eps >= 0) || math.IsInf(r.Eps, 0) {
		return fmt.Errorf("APA epsilon must be non-negative and finite, got %v", r.Eps)
	}
	if r.Order < 1 {
		return fmt.Errorf("APA projection order must be positive, got %d", r.Order)
	}
	return nil
}

// NewStrategy implements Rule.
func (r APA) NewStrategy(order int, ops *simdops.Ops) Strategy {
	eps := r.Eps
	if eps == 0 {
		eps = DefaultEpsilon
	}
	k := max(r.Order, 1)

	return &apaStrategy{
		mu:     r.Mu,
		eps:    eps,
		k:      k,
		n:      order,
		xt:     mat.NewDense(k, order, nil),
		errs:   mat.NewVecDense(k, nil),
		gram:   mat.NewSymDense(k, nil),
		coeffs: mat.NewVecDense(k, nil),
		dv:     mat.NewVecDense(order, nil),
		ops:    ops,
	}
}

type apaStrategy struct {
	mu   float64
	eps  float64
	k, n int

	// xt stores the projection windows as rows (Xᵀ); row slot is the newest.
	xt   *mat.Dense
	errs *mat.VecDense
	slot int

	gram   *mat.SymDense
	chol   mat.Cholesky
	coeffs *mat.VecDense
	dv     *mat.VecDense
	ops    *simdops.Ops
}

func (s *apaStrategy) Update(e float64, x []float64) []float64 {
	s.slot = (s.slot + 1) % s.k
	s.xt.SetRow(s.slot, x)
	s.errs.SetVec(s.slot, e)

	// Gram = Xᵀ X + eps I. Rows not yet filled are zero and carry a zero
	// error, so they contribute nothing to the solution.
	for i := range s.k {
		ri := s.xt.RawRowView(i)
		for j := i; j < s.k; j++ {
			g := s.ops.Dot(ri, s.xt.RawRowView(j))
			if i == j {
				g += s.eps
			}
			s.gram.SetSym(i, j, g)
		}
	}

	if ok := s.chol.Factorize(s.gram); ok {
		if err := s.chol.SolveVecTo(s.coeffs, s.errs); err != nil {
			return s.zero()
		}
	} else if err := s.coeffs.SolveVec(s.gram, s.errs); err != nil {
		return s.zero()
	}

	s.dv.MulVec(s.xt.T(), s.coeffs)
	s.dv.ScaleVec(s.mu, s.dv)
	return s.dv.RawVector().Data
}

func (s *apaStrategy) zero() []float64 {
	s.dv.Zero()
	return s.dv.RawVector().Data
}
