package engine

// Weight initialisation: N(0, 0.5) draws scaled close to zero.
const (
	initWeightStdDev = 0.5
	initWeightScale  = 1e-3
)

// Default regularisers.
const (
	// DefaultEpsilon is the additive energy floor used by NLMS, APA and FDNLMS.
	DefaultEpsilon = 1e-6

	// DefaultRLSDelta initialises P = I/delta.
	DefaultRLSDelta = 1e-2

	// minDenominator floors the RLS gain denominator.
	minDenominator = 1e-12
)

// Block (frequency-domain) processing constants.
const (
	// minFFTSize keeps tiny configurations on a sensible transform length.
	minFFTSize = 8

	// DefaultPowerSmoothing is the per-bin power forgetting factor for FDNLMS.
	DefaultPowerSmoothing = 0.9
)

// DivergenceThreshold is the weight-norm above which a run is reported unstable.
const DivergenceThreshold = 1e6

// windowMirror is the ring storage multiplier that keeps the tap window contiguous.
const windowMirror = 2
