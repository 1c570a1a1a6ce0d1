package metrics

// Floors applied inside SNR so identical or silent inputs stay finite.
const (
	powerFloor = 1e-10
	ratioFloor = 1e-10

	decibelFactor = 10
)

// Convergence detection defaults.
const (
	DefaultSteadyWindow       = 300
	DefaultRelativeTolerance  = 0.05
	DefaultConsecutiveWindows = 5

	// absoluteTolerance keeps an all-zero error trace from never converging.
	absoluteTolerance = 1e-12
)
