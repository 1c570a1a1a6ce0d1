// Command anc-eval runs an adaptive filter over the per-noise-type
// evaluation corpus and writes averaged metrics as CSV.
//
// Usage:
//
//	anc-eval -config experiment.yaml
//	anc-eval -config experiment.yaml -alg FDNLMS -noise cafe,babble -workers 4
//
// Without -config the built-in defaults are used (NLMS, 32 taps, mu 0.001,
// every noise type under ./data/evaluation_data).
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
)

func main() {
	configPath := flag.String("config", "", "YAML experiment file")
	alg := flag.String("alg", "", "Override filter.algorithm")
	noise := flag.String("noise", "", "Override noise types (comma separated, or all)")
	workers := flag.Int("workers", -1, "Override worker count (0 = all CPUs)")
	ale := flag.Bool("ale", false, "Use the adaptive line enhancer for the reference")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			slog.Error("load config", "err", err)
			os.Exit(1)
		}
	}
	applyOverrides(cfg, *alg, *noise, *workers, *ale)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ev, err := newEvaluator(cfg, logger)
	if err != nil {
		slog.Error("create evaluator", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting evaluation",
		"algorithm", cfg.Filter.Algorithm,
		"order", cfg.Filter.Order,
		"mu", cfg.Filter.StepSize,
		"noise", strings.Join(cfg.Noise, ","),
		"ale", cfg.Reference.ALE)

	if _, err := ev.run(ctx); err != nil {
		slog.Error("evaluation failed", "err", err)
		stop()
		os.Exit(1)
	}
}

// applyOverrides applies non-empty command-line values over the file config.
func applyOverrides(cfg *Config, alg, noise string, workers int, ale bool) {
	if alg != "" {
		cfg.Filter.Algorithm = alg
	}
	if noise != "" {
		cfg.Noise = strings.Split(noise, ",")
	}
	if workers >= 0 {
		cfg.Workers = workers
	}
	if ale {
		cfg.Reference.ALE = true
	}
}
