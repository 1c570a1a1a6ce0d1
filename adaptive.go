package adaptive

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-adaptive-filter/internal/engine"
	"github.com/tphakala/go-adaptive-filter/internal/metrics"
)

// Algorithm identifies an adaptive weight-update rule.
type Algorithm string

// Supported algorithms.
const (
	LMS    Algorithm = "LMS"
	NLMS   Algorithm = "NLMS"
	RLS    Algorithm = "RLS"
	APA    Algorithm = "APA"
	FDLMS  Algorithm = "FDLMS"
	FDNLMS Algorithm = "FDNLMS"
)

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{LMS, NLMS, RLS, APA, FDLMS, FDNLMS}
}

// ParseAlgorithm maps a case-insensitive identifier to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	want := Algorithm(strings.ToUpper(strings.TrimSpace(s)))
	for _, a := range Algorithms() {
		if a == want {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown algorithm %q", ErrConfiguration, s)
}

// IsBlock reports whether the algorithm runs block-wise in the frequency domain.
func (a Algorithm) IsBlock() bool {
	return a == FDLMS || a == FDNLMS
}

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	return string(a)
}

// Errors returned by the package. Callers test them with errors.Is.
var (
	// ErrValidation indicates unusable input signals: empty, or not one-dimensional.
	ErrValidation = errors.New("invalid input")

	// ErrConfiguration indicates an unknown algorithm or an out-of-range parameter.
	ErrConfiguration = errors.New("invalid filter configuration")

	// ErrUnstable is reported by Result.Stability when the weights diverged.
	ErrUnstable = errors.New("adaptive filter diverged")
)

// Config holds the filter configuration.
type Config struct {
	// Algorithm selects the weight-update rule.
	Algorithm Algorithm

	// Order is the number of filter taps N.
	Order int

	// StepSize is mu, the learning rate for every algorithm except RLS.
	StepSize float64

	// BlockSize is B for FDLMS and FDNLMS. Zero selects DefaultBlockSize.
	BlockSize int

	// ForgettingFactor is the RLS lambda in (0, 1]. Zero selects
	// DefaultForgettingFactor.
	ForgettingFactor float64

	// Regularization is the RLS delta (P starts at I/delta). Zero selects
	// DefaultRegularization.
	Regularization float64

	// ProjectionOrder is the APA K. Zero selects DefaultProjectionOrder.
	ProjectionOrder int

	// Epsilon is the energy floor of NLMS, APA and FDNLMS. Zero selects 1e-6.
	Epsilon float64

	// PowerSmoothing is the FDNLMS per-bin power forgetting factor in
	// [0, 1). Zero selects 0.9.
	PowerSmoothing float64

	// SampleRate in Hz, used for convergence time. Zero selects DefaultSampleRate.
	SampleRate float64

	// Convergence configures convergence-time detection. Zero fields take
	// the metrics package defaults.
	Convergence metrics.Convergence

	// DisableSIMD runs the filter loops on the pure-Go kernels.
	DisableSIMD bool

	// Seed makes the weight initialisation reproducible. Zero draws fresh
	// random weights on every run.
	Seed uint64
}

// DefaultConfig returns a configuration for alg with every parameter at its
// default.
func DefaultConfig(alg Algorithm) *Config {
	c := &Config{
		Algorithm:   alg,
		Order:       DefaultOrder,
		StepSize:    DefaultStepSize,
		SampleRate:  DefaultSampleRate,
		Convergence: metrics.DefaultConvergence(),
	}
	switch alg {
	case RLS:
		c.ForgettingFactor = DefaultForgettingFactor
		c.Regularization = DefaultRegularization
	case APA:
		c.ProjectionOrder = DefaultProjectionOrder
	case FDLMS, FDNLMS:
		c.BlockSize = DefaultBlockSize
	}
	return c
}

// Validate checks the configuration. Zero-valued optional fields are valid
// and take their defaults in New.
func (c *Config) Validate() error {
	if _, err := ParseAlgorithm(string(c.Algorithm)); err != nil {
		return err
	}

	if c.Order < 1 || c.Order > maxOrder {
		return fmt.Errorf("%w: filter order must be in [1, %d], got %d", ErrConfiguration, maxOrder, c.Order)
	}

	if math.IsNaN(c.StepSize) || math.IsInf(c.StepSize, 0) {
		return fmt.Errorf("%w: step size must be finite", ErrConfiguration)
	}

	if c.BlockSize < 0 {
		return fmt.Errorf("%w: block size must be positive, got %d", ErrConfiguration, c.BlockSize)
	}

	if c.ForgettingFactor != 0 && !(c.ForgettingFactor > 0 && c.ForgettingFactor <= 1) {
		return fmt.Errorf("%w: forgetting factor must be in (0, 1], got %v", ErrConfiguration, c.ForgettingFactor)
	}

	if c.Regularization < 0 || math.IsInf(c.Regularization, 0) || math.IsNaN(c.Regularization) {
		return fmt.Errorf("%w: regularization must be positive and finite", ErrConfiguration)
	}

	if c.ProjectionOrder < 0 {
		return fmt.Errorf("%w: projection order must be positive, got %d", ErrConfiguration, c.ProjectionOrder)
	}

	if !(c.Epsilon >= 0) || math.IsInf(c.Epsilon, 0) {
		return fmt.Errorf("%w: epsilon must be non-negative and finite, got %v", ErrConfiguration, c.Epsilon)
	}

	if !(c.PowerSmoothing >= 0 && c.PowerSmoothing < 1) {
		return fmt.Errorf("%w: power smoothing must be in [0, 1), got %v", ErrConfiguration, c.PowerSmoothing)
	}

	if c.SampleRate < 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive", ErrConfiguration)
	}

	conv := c.convergence()
	if err := conv.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return nil
}

// convergence returns the detection parameters with defaults applied.
func (c *Config) convergence() metrics.Convergence {
	conv := c.Convergence
	def := metrics.DefaultConvergence()
	if conv.SteadyWindow == 0 {
		conv.SteadyWindow = def.SteadyWindow
	}
	if conv.RelativeTolerance == 0 {
		conv.RelativeTolerance = def.RelativeTolerance
	}
	if conv.ConsecutiveWindows == 0 {
		conv.ConsecutiveWindows = def.ConsecutiveWindows
	}
	return conv
}

func (c *Config) sampleRate() float64 {
	if c.SampleRate == 0 {
		return DefaultSampleRate
	}
	return c.SampleRate
}

// New creates a filter for config. The configuration is copied; later
// changes to config do not affect the filter.
func New(config *Config) (Filter, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrConfiguration)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := *config
	cfg.Algorithm, _ = ParseAlgorithm(string(config.Algorithm))
	cfg.SampleRate = config.sampleRate()
	cfg.Convergence = config.convergence()

	core, err := newCore(&cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return &adaptiveFilter{config: cfg, core: core}, nil
}

// newCore builds the streaming or block engine for cfg.
func newCore(cfg *Config) (runner, error) {
	if cfg.Algorithm.IsBlock() {
		return newBlockCore(cfg)
	}

	var rule engine.Rule
	switch cfg.Algorithm {
	case LMS:
		rule = engine.LMS{Mu: cfg.StepSize}

	case NLMS:
		rule = engine.NLMS{Mu: cfg.StepSize, Eps: cfg.Epsilon}

	case RLS:
		lambda := cfg.ForgettingFactor
		if lambda == 0 {
			lambda = DefaultForgettingFactor
		}
		delta := cfg.Regularization
		if delta == 0 {
			delta = DefaultRegularization
		}
		rule = engine.RLS{Lambda: lambda, Delta: delta}

	case APA:
		k := cfg.ProjectionOrder
		if k == 0 {
			k = DefaultProjectionOrder
		}
		rule = engine.APA{Mu: cfg.StepSize, Eps: cfg.Epsilon, Order: k}

	default:
		return nil, fmt.Errorf("unknown algorithm %q", cfg.Algorithm)
	}

	f, err := engine.NewStreamingFilter(cfg.Order, rule, cfg.Seed)
	if err != nil {
		return nil, err
	}
	f.UseSIMD(!cfg.DisableSIMD)
	return f, nil
}

func newBlockCore(cfg *Config) (runner, error) {
	b := cfg.BlockSize
	if b == 0 {
		b = DefaultBlockSize
	}
	variant := engine.BlockLMS
	if cfg.Algorithm == FDNLMS {
		variant = engine.BlockNLMS
	}

	f, err := engine.NewBlockFilter(cfg.Order, engine.BlockParams{
		Variant:        variant,
		Mu:             cfg.StepSize,
		BlockSize:      b,
		Eps:            cfg.Epsilon,
		PowerSmoothing: cfg.PowerSmoothing,
	}, cfg.Seed)
	if err != nil {
		return nil, err
	}
	f.UseSIMD(!cfg.DisableSIMD)
	return f, nil
}
