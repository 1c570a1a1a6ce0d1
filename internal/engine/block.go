package engine

import (
	"fmt"
	"math"
	"math/cmplx"
	"time"

	"github.com/tphakala/go-adaptive-filter/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
)

// BlockVariant selects the frequency-domain weight update.
type BlockVariant int

const (
	// BlockLMS applies the unnormalised block gradient (FDLMS).
	BlockLMS BlockVariant = iota

	// BlockNLMS divides each gradient bin by a smoothed input power estimate (FDNLMS).
	BlockNLMS
)

// String returns the algorithm identifier.
func (v BlockVariant) String() string {
	switch v {
	case BlockLMS:
		return "FDLMS"
	case BlockNLMS:
		return "FDNLMS"
	default:
		return "unknown"
	}
}

// BlockParams configures a BlockFilter.
type BlockParams struct {
	Variant   BlockVariant
	Mu        float64
	BlockSize int

	// Eps floors the per-bin power for BlockNLMS; zero selects DefaultEpsilon.
	Eps float64

	// PowerSmoothing is the per-bin power forgetting factor in [0, 1);
	// zero selects DefaultPowerSmoothing.
	PowerSmoothing float64
}

// BlockFilter is the overlap-save frequency-domain adaptive filter.
//
// Input is processed in blocks of B samples. For each block the last L
// reference samples (L = FFTSizeFor(B, N) >= B+N-1) are transformed, so the
// last B samples of IFFT(W·X) are free of circular wrap and equal the direct
// time-domain filter output with the weights held over the block. The
// gradient Σ e[n] x[n-i] is the first N lags of IFFT(conj(X)·E), and weights
// are updated once per block.
//
// With B = 1 and BlockLMS the result matches the streaming LMS filter to
// within FFT rounding.
type BlockFilter struct {
	order   int
	params  BlockParams
	fftSize int
	ops     *simdops.Ops
	seed    uint64
}

// FFTSizeFor returns the transform length used for block size b and order n:
// the smallest power of two >= b+n-1, and at least minFFTSize.
func FFTSizeFor(b, n int) int {
	size := minFFTSize
	for size < b+n-1 {
		size *= 2
	}
	return size
}

// NewBlockFilter creates a block filter of the given order.
func NewBlockFilter(order int, params BlockParams, seed uint64) (*BlockFilter, error) {
	if order < 1 {
		return nil, fmt.Errorf("filter order must be positive, got %d", order)
	}
	if params.BlockSize < 1 {
		return nil, fmt.Errorf("block size must be positive, got %d", params.BlockSize)
	}
	if math.IsNaN(params.Mu) || math.IsInf(params.Mu, 0) {
		return nil, fmt.Errorf("%s step size must be finite, got %v", params.Variant, params.Mu)
	}
	if params.Variant != BlockLMS && params.Variant != BlockNLMS {
		return nil, fmt.Errorf("unknown block variant %d", params.Variant)
	}
	if !(params.Eps >= 0) || math.IsInf(params.Eps, 0) {
		return nil, fmt.Errorf("%s epsilon must be non-negative and finite, got %v", params.Variant, params.Eps)
	}
	if !(params.PowerSmoothing >= 0 && params.PowerSmoothing < 1) {
		return nil, fmt.Errorf("%s power smoothing must be in [0, 1), got %v", params.Variant, params.PowerSmoothing)
	}

	if params.Eps == 0 {
		params.Eps = DefaultEpsilon
	}
	if params.PowerSmoothing == 0 {
		params.PowerSmoothing = DefaultPowerSmoothing
	}

	return &BlockFilter{
		order:   order,
		params:  params,
		fftSize: FFTSizeFor(params.BlockSize, order),
		ops:     simdops.Default(),
		seed:    seed,
	}, nil
}

// UseSIMD selects the SIMD kernels (the default) or the pure-Go ones. It
// must be called before the filter is shared.
func (f *BlockFilter) UseSIMD(enable bool) {
	f.ops = simdops.For(enable)
}

// Run filters d using reference x, len(x) >= len(d).
func (f *BlockFilter) Run(d, x []float64) *Run {
	return f.RunWithWeights(d, x, NewWeights(f.order, NewSource(f.seed)))
}

// RunWithWeights is Run with caller-supplied initial weights, updated in place.
//
// A trailing partial block is zero-padded to B. Padded positions get a zero
// error so they do not steer the final update, and their outputs are dropped.
func (f *BlockFilter) RunWithWeights(d, x, w []float64) *Run {
	n := len(d)
	run := &Run{
		Error:         make([]float64, n),
		NoiseEstimate: make([]float64, n),
		Weights:       w,
	}

	st := newBlockState(f.fftSize, f.order)
	b := f.params.BlockSize
	tail := f.fftSize - b

	start := time.Now()
	for offset := 0; offset < n; offset += b {
		valid := min(b, n-offset)

		// Slide the reference history by one block and append the new samples.
		copy(st.xbuf, st.xbuf[b:])
		for j := range b {
			if j < valid {
				st.xbuf[tail+j] = x[offset+j]
			} else {
				st.xbuf[tail+j] = 0
			}
		}

		st.xf = st.fft.Coefficients(st.xf, st.xbuf)
		copy(st.wpad, w)
		st.wf = st.fft.Coefficients(st.wf, st.wpad)
		f.ops.MulComplex(st.yf, st.wf, st.xf)
		st.yt = st.fft.Sequence(st.yt, st.yf)

		for j := range b {
			if j >= valid {
				st.ebuf[tail+j] = 0
				continue
			}
			y := st.yt[tail+j] * st.scale
			e := d[offset+j] - y
			run.NoiseEstimate[offset+j] = y
			run.Error[offset+j] = e
			st.ebuf[tail+j] = e
		}

		f.updateWeights(st, w)
	}
	run.Elapsed = time.Since(start)

	return run
}

// updateWeights applies one block gradient step from the state's current
// reference spectrum and error buffer.
func (f *BlockFilter) updateWeights(st *blockState, w []float64) {
	st.ef = st.fft.Coefficients(st.ef, st.ebuf)

	if f.params.Variant == BlockNLMS {
		st.updatePower(f.params.PowerSmoothing, float64(f.order)*st.scale)
		for k := range st.gf {
			st.gf[k] = cmplx.Conj(st.xf[k]) * st.ef[k] / complex(st.power[k]+f.params.Eps, 0)
		}
	} else {
		for k := range st.gf {
			st.gf[k] = cmplx.Conj(st.xf[k]) * st.ef[k]
		}
	}

	st.grad = st.fft.Sequence(st.grad, st.gf)

	// Constrained update: only the first N lags are taps; the rest would wrap.
	step := f.params.Mu * st.scale
	for i := range w {
		w[i] += step * st.grad[i]
	}
}

// Order returns the number of taps.
func (f *BlockFilter) Order() int {
	return f.order
}

// BlockSize returns B.
func (f *BlockFilter) BlockSize() int {
	return f.params.BlockSize
}

// FFTSize returns the transform length L.
func (f *BlockFilter) FFTSize() int {
	return f.fftSize
}

// Variant returns the update variant.
func (f *BlockFilter) Variant() BlockVariant {
	return f.params.Variant
}

// blockState holds the per-run transform buffers. gonum's FFT keeps
// internal work space, so each run owns its own plan.
type blockState struct {
	fft   *fourier.FFT
	scale float64 // 1/L, gonum does not normalise the inverse transform

	xbuf []float64 // last L reference samples
	wpad []float64 // weights zero-padded to L
	ebuf []float64 // block errors in the last B slots
	yt   []float64
	grad []float64

	xf, wf, yf, ef, gf []complex128

	power  []float64
	primed bool
}

func newBlockState(fftSize, order int) *blockState {
	bins := fftSize/2 + 1
	return &blockState{
		fft:   fourier.NewFFT(fftSize),
		scale: 1.0 / float64(fftSize),
		xbuf:  make([]float64, fftSize),
		wpad:  make([]float64, fftSize),
		ebuf:  make([]float64, fftSize),
		yt:    make([]float64, fftSize),
		grad:  make([]float64, fftSize),
		xf:    make([]complex128, bins),
		wf:    make([]complex128, bins),
		yf:    make([]complex128, bins),
		ef:    make([]complex128, bins),
		gf:    make([]complex128, bins),
		power: make([]float64, bins),
	}
}

// updatePower tracks per-bin input power. norm = N/L rescales |X_k|², which
// grows with L, to the energy of an N-tap window so mu means the same thing
// as for NLMS.
func (st *blockState) updatePower(beta, norm float64) {
	for k, c := range st.xf {
		p := (real(c)*real(c) + imag(c)*imag(c)) * norm
		if st.primed {
			st.power[k] = beta*st.power[k] + (1-beta)*p
		} else {
			st.power[k] = p
		}
	}
	st.primed = true
}
