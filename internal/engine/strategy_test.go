package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-adaptive-filter/internal/simdops"
	"github.com/tphakala/go-adaptive-filter/internal/testutil"
	"gonum.org/v1/gonum/mat"
)

func TestLMSUpdate(t *testing.T) {
	tests := []struct {
		name string
		mu   float64
		e    float64
		x    []float64
		want []float64
	}{
		{"half step", 0.5, 2.0, []float64{1.0, -1.0}, []float64{1.0, -1.0}},
		{"unit step", 1.0, 1.0, []float64{5.0, 2.0}, []float64{5.0, 2.0}},
		{"negative step", -1.0, 1.0, []float64{0.5, 0.25}, []float64{-0.5, -0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := LMS{Mu: tt.mu}.NewStrategy(len(tt.x), simdops.Default())
			assert.InDeltaSlice(t, tt.want, s.Update(tt.e, tt.x), testutil.DefaultTolerance)
		})
	}
}

func TestNLMSUpdate(t *testing.T) {
	s := NLMS{Mu: 1.0, Eps: 1e-6}.NewStrategy(2, simdops.Default())
	got := s.Update(1.0, []float64{3.0, 4.0})

	// energy 25, denominator 25.000001
	assert.InDelta(t, 0.11999995, got[0], 1e-7)
	assert.InDelta(t, 0.15999994, got[1], 1e-7)
}

func TestNLMSZeroWindowIsGuarded(t *testing.T) {
	s := NLMS{Mu: 1.0}.NewStrategy(4, simdops.Default())
	got := s.Update(1.0, make([]float64, 4))
	testutil.AssertNoNaNOrInf(t, got)
	assert.Equal(t, []float64{0, 0, 0, 0}, got)
}

func TestRLSCovarianceStaysSymmetric(t *testing.T) {
	const order = 6
	s := RLS{Lambda: 0.99, Delta: 0.01}.NewStrategy(order, simdops.Default()).(*rlsStrategy)

	w := NewTapWindow(order)
	for i := range 500 {
		w.Push(float64((i*7919)%13) - 6)
		got := s.Update(0.1, w.View())
		testutil.AssertNoNaNOrInf(t, got)
	}

	p := s.covariance()
	for i := range order {
		assert.Greater(t, p.At(i, i), 0.0, "diagonal %d", i)
		for j := range order {
			assert.Equal(t, p.At(i, j), p.At(j, i))
		}
	}

	var chol mat.Cholesky
	assert.True(t, chol.Factorize(p), "P should stay positive definite")
}

func TestRLSFirstUpdateIsRegularisedLeastSquares(t *testing.T) {
	// With P0 = I/delta the first gain is x / (lambda·delta + xᵀx).
	s := RLS{Lambda: 1, Delta: 0.5}.NewStrategy(2, simdops.Default())
	got := s.Update(2, []float64{1, 1})

	want := 2 * 1 / (0.5 + 2)
	assert.InDeltaSlice(t, []float64{want, want}, got, testutil.DefaultTolerance)
}

func TestAPAOrderOneMatchesNLMS(t *testing.T) {
	const order = 8
	apa := APA{Mu: 0.3, Eps: 1e-6, Order: 1}.NewStrategy(order, simdops.Default())
	nlms := NLMS{Mu: 0.3, Eps: 1e-6}.NewStrategy(order, simdops.Default())

	w := NewTapWindow(order)
	for i := range 50 {
		w.Push(float64(i%5) - 2)
		e := float64(i%3) - 1
		a := append([]float64(nil), apa.Update(e, w.View())...)
		b := nlms.Update(e, w.View())
		assert.InDeltaSlice(t, b, a, 1e-9, "sample %d", i)
	}
}

func TestAPAHigherOrderIsFinite(t *testing.T) {
	const order = 16
	s := APA{Mu: 0.5, Order: 4}.NewStrategy(order, simdops.Default())

	w := NewTapWindow(order)
	for i := range 200 {
		// Repeating input makes the Gram matrix rank deficient.
		w.Push(float64(i % 2))
		testutil.AssertNoNaNOrInf(t, s.Update(0.25, w.View()))
	}
}

func TestRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr bool
	}{
		{"lms", LMS{Mu: 0.01}, false},
		{"lms nan", LMS{Mu: nanValue()}, true},
		{"nlms negative eps", NLMS{Mu: 0.1, Eps: -1}, true},
		{"nlms nan eps", NLMS{Mu: 0.1, Eps: nanValue()}, true},
		{"nlms infinite eps", NLMS{Mu: 0.1, Eps: infValue()}, true},
		{"rls", RLS{Lambda: 0.999}, false},
		{"rls lambda one", RLS{Lambda: 1}, false},
		{"rls lambda zero", RLS{Lambda: 0}, true},
		{"rls lambda above one", RLS{Lambda: 1.01}, true},
		{"rls negative delta", RLS{Lambda: 0.99, Delta: -1}, true},
		{"apa", APA{Mu: 0.1, Order: 4}, false},
		{"apa zero order", APA{Mu: 0.1}, true},
		{"apa infinite eps", APA{Mu: 0.1, Order: 4, Eps: infValue()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
