package main

import (
	"fmt"
	"os"

	adaptive "github.com/tphakala/go-adaptive-filter"
	"gopkg.in/yaml.v3"
)

// Config is the experiment file.
type Config struct {
	DataDir      string `yaml:"data_dir"`
	ResultsDir   string `yaml:"results_dir"`
	ProcessedDir string `yaml:"processed_dir"`

	Filter    FilterConfig    `yaml:"filter"`
	Reference ReferenceConfig `yaml:"reference"`

	// Noise lists noise types to evaluate; "all" selects every type.
	Noise      []string `yaml:"noise"`
	SNRLevels  int      `yaml:"snr_levels"`
	SaveResult bool     `yaml:"save_result"`
	Workers    int      `yaml:"workers"`
}

// FilterConfig mirrors adaptive.Config.
type FilterConfig struct {
	Algorithm        string  `yaml:"algorithm"`
	Order            int     `yaml:"order"`
	StepSize         float64 `yaml:"mu"`
	BlockSize        int     `yaml:"block_size"`
	ForgettingFactor float64 `yaml:"forgetting_factor"`
	Regularization   float64 `yaml:"regularization"`
	ProjectionOrder  int     `yaml:"projection_order"`
	Epsilon          float64 `yaml:"epsilon"`
	PowerSmoothing   float64 `yaml:"power_smoothing"`
	SampleRate       float64 `yaml:"sample_rate"`
	Seed             uint64  `yaml:"seed"`
	DisableSIMD      bool    `yaml:"disable_simd"`

	Convergence ConvergenceConfig `yaml:"convergence"`
}

// ConvergenceConfig configures convergence-time detection.
type ConvergenceConfig struct {
	SteadyWindow       int     `yaml:"steady_window"`
	RelativeTolerance  float64 `yaml:"relative_tolerance"`
	ConsecutiveWindows int     `yaml:"consecutive_windows"`
}

// ReferenceConfig selects how the noise reference is produced.
type ReferenceConfig struct {
	// DelayMs and MicSNR shape the simulated reference microphone.
	DelayMs float64 `yaml:"delay_ms"`
	MicSNR  float64 `yaml:"mic_snr"`

	// ALE derives the reference from the noisy signal instead.
	ALE      bool `yaml:"ale"`
	ALEDelay int  `yaml:"ale_delay"`
}

// DefaultConfig returns the standard experiment: NLMS, 32 taps, mu 0.001,
// a 2 ms delayed reference at 35 dB mic SNR, every noise type.
func DefaultConfig() *Config {
	return &Config{
		DataDir:      "./data/evaluation_data",
		ResultsDir:   "./data/tabular_results",
		ProcessedDir: "./data/processed_data",
		Filter: FilterConfig{
			Algorithm:  string(adaptive.NLMS),
			Order:      adaptive.DefaultOrder,
			StepSize:   adaptive.DefaultStepSize,
			SampleRate: adaptive.DefaultSampleRate,
		},
		Reference: ReferenceConfig{
			DelayMs:  adaptive.DefaultReferenceDelayMs,
			MicSNR:   adaptive.DefaultMicSNR,
			ALEDelay: adaptive.DefaultLineEnhancerDelay,
		},
		Noise:     []string{"all"},
		SNRLevels: 1,
	}
}

// LoadConfig reads an experiment file over DefaultConfig. Keys missing from
// the file keep their defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	return config, nil
}

// Validate checks the experiment settings and the filter configuration.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.ResultsDir == "" {
		return fmt.Errorf("results_dir is required")
	}
	if c.SaveResult && c.ProcessedDir == "" {
		return fmt.Errorf("processed_dir is required when save_result is set")
	}
	if c.SNRLevels < 1 {
		return fmt.Errorf("snr_levels must be at least 1, got %d", c.SNRLevels)
	}
	if c.Reference.DelayMs < 0 {
		return fmt.Errorf("reference.delay_ms must be non-negative")
	}
	if c.Reference.ALE && c.Reference.ALEDelay < 1 {
		return fmt.Errorf("reference.ale_delay must be positive")
	}

	fc, err := c.FilterConfig()
	if err != nil {
		return err
	}
	return fc.Validate()
}

// FilterConfig converts the filter section to an adaptive.Config.
func (c *Config) FilterConfig() (*adaptive.Config, error) {
	alg, err := adaptive.ParseAlgorithm(c.Filter.Algorithm)
	if err != nil {
		return nil, err
	}

	fc := adaptive.DefaultConfig(alg)
	fc.Order = c.Filter.Order
	fc.StepSize = c.Filter.StepSize
	fc.Seed = c.Filter.Seed
	fc.DisableSIMD = c.Filter.DisableSIMD
	if c.Filter.BlockSize != 0 {
		fc.BlockSize = c.Filter.BlockSize
	}
	if c.Filter.ForgettingFactor != 0 {
		fc.ForgettingFactor = c.Filter.ForgettingFactor
	}
	if c.Filter.Regularization != 0 {
		fc.Regularization = c.Filter.Regularization
	}
	if c.Filter.ProjectionOrder != 0 {
		fc.ProjectionOrder = c.Filter.ProjectionOrder
	}
	if c.Filter.SampleRate != 0 {
		fc.SampleRate = c.Filter.SampleRate
	}
	fc.Epsilon = c.Filter.Epsilon
	fc.PowerSmoothing = c.Filter.PowerSmoothing

	conv := c.Filter.Convergence
	if conv.SteadyWindow != 0 {
		fc.Convergence.SteadyWindow = conv.SteadyWindow
	}
	if conv.RelativeTolerance != 0 {
		fc.Convergence.RelativeTolerance = conv.RelativeTolerance
	}
	if conv.ConsecutiveWindows != 0 {
		fc.Convergence.ConsecutiveWindows = conv.ConsecutiveWindows
	}
	return fc, nil
}
