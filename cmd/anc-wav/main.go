// Command anc-wav removes noise from a mono WAV recording with an adaptive
// filter driven by a noise reference.
//
// Usage:
//
//	anc-wav -ref noise.wav noisy.wav cleaned.wav
//	anc-wav -alg RLS -order 16 -ref noise.wav -clean speech.wav noisy.wav cleaned.wav
//	anc-wav -ref noise.wav -simulate -delay 2 -mic-snr 35 noisy.wav cleaned.wav
//	anc-wav -ale -ale-delay 1 noisy.wav cleaned.wav   # reference from the noisy file itself
//
// With -clean the run is scored and the metrics are printed.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	adaptive "github.com/tphakala/go-adaptive-filter"
)

const (
	minRequiredArgs = 2

	defaultAlgorithm = "NLMS"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	alg := flag.String("alg", defaultAlgorithm, "Algorithm: LMS, NLMS, RLS, APA, FDLMS, FDNLMS")
	order := flag.Int("order", adaptive.DefaultOrder, "Filter order (number of taps)")
	mu := flag.Float64("mu", adaptive.DefaultStepSize, "Step size")
	blockSize := flag.Int("block", adaptive.DefaultBlockSize, "Block size for FDLMS/FDNLMS")
	lambda := flag.Float64("lambda", adaptive.DefaultForgettingFactor, "RLS forgetting factor in (0, 1]")
	projection := flag.Int("k", adaptive.DefaultProjectionOrder, "APA projection order")
	seed := flag.Uint64("seed", 0, "Weight initialisation seed (0 = random)")
	refPath := flag.String("ref", "", "Noise reference WAV")
	cleanPath := flag.String("clean", "", "Clean speech WAV; enables metrics")
	simulate := flag.Bool("simulate", false, "Treat -ref as a raw noise recording: add mic noise and delay")
	delayMs := flag.Float64("delay", adaptive.DefaultReferenceDelayMs, "Simulated reference delay in ms")
	micSNR := flag.Float64("mic-snr", adaptive.DefaultMicSNR, "Simulated reference mic SNR in dB")
	ale := flag.Bool("ale", false, "Derive the reference from the noisy signal with a line enhancer")
	aleDelay := flag.Int("ale-delay", adaptive.DefaultLineEnhancerDelay, "Line enhancer delay in samples")
	noSIMD := flag.Bool("no-simd", false, "Disable SIMD kernels")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs || (*refPath == "" && !*ale) {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] noisy.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -ref noise.wav noisy.wav out.wav               # NLMS, 32 taps\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -alg FDNLMS -block 64 -ref noise.wav in.wav out.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -ale noisy.wav out.wav                         # no reference mic\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	algorithm, err := adaptive.ParseAlgorithm(*alg)
	if err != nil {
		return err
	}

	cfg := adaptive.DefaultConfig(algorithm)
	cfg.Order = *order
	cfg.StepSize = *mu
	cfg.BlockSize = *blockSize
	cfg.ForgettingFactor = *lambda
	cfg.ProjectionOrder = *projection
	cfg.Seed = *seed
	cfg.DisableSIMD = *noSIMD

	opts := options{
		noisyPath:  args[0],
		outputPath: args[1],
		refPath:    *refPath,
		cleanPath:  *cleanPath,
		simulate:   *simulate,
		delayMs:    *delayMs,
		micSNR:     *micSNR,
		ale:        *ale,
		aleDelay:   *aleDelay,
		seed:       *seed,
		verbose:    *verbose,
	}

	if *verbose {
		log.Printf("Noisy: %s", opts.noisyPath)
		log.Printf("Output: %s", opts.outputPath)
		log.Printf("Algorithm: %s, order %d, mu %g", algorithm, cfg.Order, cfg.StepSize)
		switch {
		case opts.ale:
			log.Printf("Reference: line enhancer, delay %d samples", opts.aleDelay)
		case opts.simulate:
			log.Printf("Reference: %s simulated (%.1f ms, %.0f dB)", opts.refPath, opts.delayMs, opts.micSNR)
		default:
			log.Printf("Reference: %s", opts.refPath)
		}
	}

	start := time.Now()
	stats, err := cancelWAV(cfg, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Filtered %s -> %s\n", filepath.Base(opts.noisyPath), filepath.Base(opts.outputPath))
	fmt.Printf("  %s, %d taps, %d Hz, %d samples\n", algorithm, cfg.Order, stats.sampleRate, stats.samples)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.samples)/float64(stats.sampleRate)/elapsed.Seconds())
	if stats.result.Unstable {
		fmt.Printf("  WARNING: %v\n", stats.result.Stability())
	}
	if m := stats.result.Metrics; m != nil {
		printMetrics(os.Stdout, m)
	}

	return nil
}
