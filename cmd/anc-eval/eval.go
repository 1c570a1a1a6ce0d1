package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	adaptive "github.com/tphakala/go-adaptive-filter"
	"github.com/tphakala/go-adaptive-filter/internal/dataset"
	"github.com/tphakala/go-adaptive-filter/internal/report"
	"github.com/tphakala/go-adaptive-filter/internal/wavio"
)

const dirPerm = 0o755

// evaluator runs one algorithm over the configured noise types.
type evaluator struct {
	cfg    *Config
	filter *adaptive.Config
	logger *slog.Logger
}

func newEvaluator(cfg *Config, logger *slog.Logger) (*evaluator, error) {
	fc, err := cfg.FilterConfig()
	if err != nil {
		return nil, err
	}
	return &evaluator{cfg: cfg, filter: fc, logger: logger}, nil
}

// run evaluates every noise type and writes one CSV per type.
func (e *evaluator) run(ctx context.Context) ([]report.Summary, error) {
	noises, err := dataset.ResolveNoiseTypes(e.cfg.Noise)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	summaries := make([]report.Summary, 0, len(noises))
	for _, noise := range noises {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}

		e.logger.Info("starting noise type", "noise", noise, "algorithm", e.filter.Algorithm)
		s, err := e.evaluateNoise(ctx, noise)
		if err != nil {
			return summaries, fmt.Errorf("noise type %s: %w", noise, err)
		}

		path, err := report.Save(e.cfg.ResultsDir, s, e.cfg.Reference.ALE)
		if err != nil {
			return summaries, err
		}
		e.logger.Info("results written",
			"noise", noise,
			"path", path,
			"runs", s.Runs,
			"converged", s.Converged,
			"adaption_mse", s.AdaptionMSE,
			"speech_mse", s.SpeechMSE,
			"mean_snr", s.SNR,
			"mean_delta_snr", s.DeltaSNR,
			"mean_clock_time", s.ClockTime,
			"mean_convergence_time", s.ConvergenceTime)
		summaries = append(summaries, s)
	}

	e.logger.Info("evaluation completed", "elapsed", time.Since(start).Round(time.Millisecond))
	return summaries, nil
}

// evaluateNoise filters every sample of one noise type and averages the metrics.
func (e *evaluator) evaluateNoise(ctx context.Context, noise string) (report.Summary, error) {
	samples, err := dataset.Load(e.cfg.DataDir, noise, e.cfg.SNRLevels)
	if err != nil {
		return report.Summary{}, err
	}
	e.logger.Debug("dataset loaded", "noise", noise, "samples", len(samples))

	jobs := make([]adaptive.Job, len(samples))
	for i, s := range samples {
		ref, err := e.reference(s, uint64(i)+1)
		if err != nil {
			return report.Summary{}, fmt.Errorf("%s: %w", s.Name, err)
		}
		jobs[i] = adaptive.Job{Name: s.Name, D: s.Noisy, X: ref, Clean: s.Clean}
	}

	results, err := adaptive.RunBatch(ctx, e.filter, jobs, e.cfg.Workers)
	if err != nil {
		return report.Summary{}, err
	}

	metrics := make([]*adaptive.Metrics, len(results))
	for i, r := range results {
		if r.Err != nil {
			e.logger.Warn("run failed, skipping", "file", r.Name, "err", r.Err)
			continue
		}
		if err := r.Result.Stability(); err != nil {
			e.logger.Warn("run diverged", "file", r.Name, "err", err)
		}

		m := r.Result.Metrics
		metrics[i] = m
		e.logger.Debug("run finished",
			"file", r.Name,
			"delta_snr", m.DeltaSNR,
			"converged", m.Converged,
			"convergence_time", m.ConvergenceTime)

		if e.cfg.SaveResult {
			if err := e.save(noise, i, samples[i], r.Result); err != nil {
				return report.Summary{}, err
			}
		}
	}

	return report.Summarize(string(e.filter.Algorithm), noise, metrics), nil
}

// reference builds the noise reference for one sample: line-enhanced from
// the noisy signal, or simulated from the noise recording.
func (e *evaluator) reference(s dataset.Sample, seed uint64) ([]float64, error) {
	ref := e.cfg.Reference
	if ref.ALE {
		return adaptive.LineEnhance(s.Noisy, ref.ALEDelay, &adaptive.LineEnhancerOptions{Seed: seed})
	}
	return adaptive.SimulateReference(s.Noise, ref.MicSNR, ref.DelayMs, float64(s.SampleRate), seed)
}

// save writes clean, noisy and filtered audio for listening tests.
func (e *evaluator) save(noise string, i int, s dataset.Sample, res *adaptive.Result) error {
	dir := filepath.Join(e.cfg.ProcessedDir, noise, string(e.filter.Algorithm))
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []struct {
		name    string
		samples []float64
	}{
		{fmt.Sprintf("clean%d.wav", i), s.Clean},
		{fmt.Sprintf("noisy_speech%d.wav", i), s.Noisy},
		{fmt.Sprintf("result%d.wav", i), res.Error},
	}
	for _, f := range files {
		if err := wavio.Write(filepath.Join(dir, f.name), f.samples, s.SampleRate, 0); err != nil {
			return err
		}
	}
	return nil
}
