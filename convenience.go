package adaptive

// NewLMS creates an LMS filter with the given order and step size.
func NewLMS(order int, mu float64) (Filter, error) {
	c := DefaultConfig(LMS)
	c.Order = order
	c.StepSize = mu
	return New(c)
}

// NewNLMS creates an NLMS filter with the given order and step size.
func NewNLMS(order int, mu float64) (Filter, error) {
	c := DefaultConfig(NLMS)
	c.Order = order
	c.StepSize = mu
	return New(c)
}

// NewRLS creates an RLS filter with forgetting factor lambda and the
// default regularization.
func NewRLS(order int, lambda float64) (Filter, error) {
	c := DefaultConfig(RLS)
	c.Order = order
	c.ForgettingFactor = lambda
	return New(c)
}

// NewAPA creates an affine projection filter of projection order k.
func NewAPA(order int, mu float64, k int) (Filter, error) {
	c := DefaultConfig(APA)
	c.Order = order
	c.StepSize = mu
	c.ProjectionOrder = k
	return New(c)
}

// NewBlock creates an FDLMS or FDNLMS filter.
func NewBlock(alg Algorithm, order int, mu float64, blockSize int) (Filter, error) {
	c := DefaultConfig(alg)
	c.Order = order
	c.StepSize = mu
	c.BlockSize = blockSize
	return New(c)
}

// Cancel is a one-shot noise cancellation of d using reference x with the
// default configuration for alg. It returns the error signal e = d - y.
func Cancel(alg Algorithm, d, x []float64) ([]float64, error) {
	f, err := New(DefaultConfig(alg))
	if err != nil {
		return nil, err
	}
	res, err := f.Filter(d, x, nil)
	if err != nil {
		return nil, err
	}
	return res.Error, nil
}

// =============================================================================
// Float32 API
// =============================================================================

// CancelFloat32 is Cancel for float32 samples. Filtering runs in float64.
func CancelFloat32(alg Algorithm, d, x []float32) ([]float32, error) {
	out, err := Cancel(alg, ToFloat64(d), ToFloat64(x))
	if err != nil {
		return nil, err
	}
	return ToFloat32(out), nil
}
