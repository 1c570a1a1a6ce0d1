package main

import (
	"fmt"
	"io"
	"log"

	adaptive "github.com/tphakala/go-adaptive-filter"
	"github.com/tphakala/go-adaptive-filter/internal/wavio"
)

// options holds the file and reference settings of one run.
type options struct {
	noisyPath  string
	outputPath string
	refPath    string
	cleanPath  string

	simulate bool
	delayMs  float64
	micSNR   float64

	ale      bool
	aleDelay int

	seed    uint64
	verbose bool
}

type cancelStats struct {
	sampleRate int
	bitDepth   int
	samples    int
	result     *adaptive.Result
}

// inputs are the decoded signals of one run.
type inputs struct {
	noisy      []float64
	reference  []float64
	clean      []float64
	sampleRate int
	bitDepth   int
}

// loadInputs reads the noisy file and builds the reference and optional
// clean signal.
func loadInputs(opts options) (*inputs, error) {
	noisy, err := wavio.Read(opts.noisyPath)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		log.Printf("Input format: %d Hz, %d-bit, %d samples", noisy.SampleRate, noisy.BitDepth, len(noisy.Samples))
	}

	in := &inputs{
		noisy:      noisy.Samples,
		sampleRate: noisy.SampleRate,
		bitDepth:   noisy.BitDepth,
	}

	if in.reference, err = buildReference(opts, noisy); err != nil {
		return nil, err
	}

	if opts.cleanPath != "" {
		clean, err := wavio.Read(opts.cleanPath)
		if err != nil {
			return nil, err
		}
		if clean.SampleRate != noisy.SampleRate {
			return nil, fmt.Errorf("clean file is %d Hz, noisy file is %d Hz", clean.SampleRate, noisy.SampleRate)
		}
		in.clean = clean.Samples
	}

	return in, nil
}

// buildReference returns the noise reference: line-enhanced from the noisy
// signal, simulated from a raw noise file, or the reference file as is.
func buildReference(opts options, noisy *wavio.Audio) ([]float64, error) {
	if opts.ale {
		return adaptive.LineEnhance(noisy.Samples, opts.aleDelay, &adaptive.LineEnhancerOptions{Seed: opts.seed})
	}

	ref, err := wavio.Read(opts.refPath)
	if err != nil {
		return nil, err
	}
	if ref.SampleRate != noisy.SampleRate {
		return nil, fmt.Errorf("reference file is %d Hz, noisy file is %d Hz", ref.SampleRate, noisy.SampleRate)
	}

	if !opts.simulate {
		return ref.Samples, nil
	}
	return adaptive.SimulateReference(ref.Samples, opts.micSNR, opts.delayMs, float64(ref.SampleRate), opts.seed)
}

// cancelWAV runs the filter over the input files and writes the error signal.
func cancelWAV(cfg *adaptive.Config, opts options) (*cancelStats, error) {
	in, err := loadInputs(opts)
	if err != nil {
		return nil, err
	}

	cfg.SampleRate = float64(in.sampleRate)
	f, err := adaptive.New(cfg)
	if err != nil {
		return nil, err
	}

	res, err := f.Filter(in.noisy, in.reference, in.clean)
	if err != nil {
		return nil, err
	}

	if err := wavio.Write(opts.outputPath, res.Error, in.sampleRate, in.bitDepth); err != nil {
		return nil, err
	}

	return &cancelStats{
		sampleRate: in.sampleRate,
		bitDepth:   in.bitDepth,
		samples:    len(res.Error),
		result:     res,
	}, nil
}

// printMetrics writes a human-readable metrics block.
func printMetrics(w io.Writer, m *adaptive.Metrics) {
	fmt.Fprintf(w, "  Adaption MSE:     %.6g\n", m.AdaptionMSE)
	fmt.Fprintf(w, "  Speech MSE:       %.6g\n", m.SpeechMSE)
	fmt.Fprintf(w, "  Mean sq. error:   %.6g\n", m.SpeechSquaredError)
	fmt.Fprintf(w, "  SNR:              %.2f dB\n", m.SNR)
	fmt.Fprintf(w, "  Delta SNR:        %.2f dB\n", m.DeltaSNR)
	fmt.Fprintf(w, "  Clock-time:       %.3fs\n", m.Elapsed.Seconds())
	if m.Converged {
		fmt.Fprintf(w, "  Convergence-time: %.3fs\n", m.ConvergenceTime)
	} else {
		fmt.Fprintf(w, "  Convergence-time: not converged\n")
	}
}
