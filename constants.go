package adaptive

// Configuration defaults.
const (
	DefaultOrder      = 32
	DefaultStepSize   = 0.001
	DefaultSampleRate = 16000.0

	// DefaultBlockSize is used by FDLMS and FDNLMS when BlockSize is zero.
	DefaultBlockSize = 32

	// DefaultForgettingFactor is the RLS lambda.
	DefaultForgettingFactor = 0.999

	// DefaultRegularization initialises the RLS inverse correlation to I/delta.
	DefaultRegularization = 0.01

	// DefaultProjectionOrder is the APA K.
	DefaultProjectionOrder = 4
)

// Reference simulation defaults.
const (
	// DefaultReferenceDelayMs delays the simulated reference microphone.
	DefaultReferenceDelayMs = 2.0

	// DefaultMicSNR is the SNR in dB of the white noise added to a simulated reference.
	DefaultMicSNR = 35.0

	msPerSecond = 1000.0
)

// Line enhancer defaults.
const (
	DefaultLineEnhancerDelay = 1
	DefaultLineEnhancerOrder = 32
	DefaultLineEnhancerMu    = 0.01
)

// Limits.
const (
	maxOrder = 1 << 16
)
