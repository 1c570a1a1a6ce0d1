package adaptive

import (
	"time"

	"github.com/tphakala/go-adaptive-filter/internal/engine"
	"github.com/tphakala/go-adaptive-filter/internal/metrics"
)

// Metrics scores one run against the clean signal.
type Metrics struct {
	// AdaptionMSE compares the desired signal with the noise estimate,
	// measuring what the filter minimised.
	AdaptionMSE float64

	// SpeechMSE compares the clean signal with the filter error output.
	SpeechMSE float64

	// SpeechSquaredError is the conventional mean((clean - e)²), reported
	// next to SpeechMSE, whose squared-mean formula lets zero-mean errors
	// score zero.
	SpeechSquaredError float64

	// SNR of the clean signal against the error output, in dB.
	SNR float64

	// DeltaSNR is SNR minus the SNR of the clean signal against d.
	DeltaSNR float64

	// Elapsed is the wall-clock time of the filtering loop alone.
	Elapsed time.Duration

	// ConvergenceTime in seconds. NaN when Converged is false.
	ConvergenceTime float64

	// Converged reports whether the error trace settled.
	Converged bool
}

// Both MSE fields use metrics.MSE, the squared mean of the differences.
func evaluate(cfg *Config, d, clean []float64, run *engine.Run) *Metrics {
	m := &Metrics{
		AdaptionMSE:        metrics.MSE(d, run.NoiseEstimate),
		SpeechMSE:          metrics.MSE(clean, run.Error),
		SpeechSquaredError: metrics.MeanSquaredError(clean, run.Error),
		SNR:                metrics.SNR(clean, run.Error),
		DeltaSNR:           metrics.DeltaSNR(clean, run.Error, d),
		Elapsed:            run.Elapsed,
	}
	m.ConvergenceTime, m.Converged = metrics.ConvergenceTime(run.Error, cfg.SampleRate, cfg.Convergence)
	return m
}

// MSE is the squared mean of a-b over their common length. See
// metrics.MSE for why this is not the mean of squared differences.
func MSE(a, b []float64) float64 {
	return metrics.MSE(a, b)
}

// SNR returns the ratio of mean(desired²) to mean(noisy²) in dB, floored so
// silent or identical inputs give a finite value.
func SNR(desired, noisy []float64) float64 {
	return metrics.SNR(desired, noisy)
}

// DeltaSNR returns SNR(clean, filtered) - SNR(clean, noisy).
func DeltaSNR(clean, filtered, noisy []float64) float64 {
	return metrics.DeltaSNR(clean, filtered, noisy)
}

// Power returns mean(s²), or 0 for an empty signal.
func Power(s []float64) float64 {
	return metrics.Power(s)
}
