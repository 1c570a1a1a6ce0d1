// Package report aggregates per-file metrics for one noise type and writes
// them as a single-row CSV with one fixed header per metric.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	adaptive "github.com/tphakala/go-adaptive-filter"
	"gonum.org/v1/gonum/stat"
)

const (
	resultsSuffix    = "_results.csv"
	aleResultsSuffix = "_ALE_results.csv"

	dirPerm = 0o755
)

// Summary holds the mean metrics of one algorithm over one noise type.
type Summary struct {
	Algorithm string
	Noise     string

	AdaptionMSE float64
	SpeechMSE   float64
	SNR         float64
	DeltaSNR    float64

	// ClockTime is the mean filtering loop time in seconds.
	ClockTime float64

	// ConvergenceTime is the mean over converged runs only, NaN if none
	// converged.
	ConvergenceTime float64

	Runs      int
	Converged int
}

// Summarize averages the metrics of every run. Nil entries (failed runs) are
// skipped.
func Summarize(algorithm, noise string, runs []*adaptive.Metrics) Summary {
	s := Summary{Algorithm: algorithm, Noise: noise}

	var adapt, speech, snr, delta, clock, conv []float64
	for _, m := range runs {
		if m == nil {
			continue
		}
		s.Runs++
		adapt = append(adapt, m.AdaptionMSE)
		speech = append(speech, m.SpeechMSE)
		snr = append(snr, m.SNR)
		delta = append(delta, m.DeltaSNR)
		clock = append(clock, m.Elapsed.Seconds())
		if m.Converged {
			s.Converged++
			conv = append(conv, m.ConvergenceTime)
		}
	}

	s.AdaptionMSE = mean(adapt)
	s.SpeechMSE = mean(speech)
	s.SNR = mean(snr)
	s.DeltaSNR = mean(delta)
	s.ClockTime = mean(clock)
	s.ConvergenceTime = mean(conv)
	return s
}

// Headers returns the CSV column names.
func (s Summary) Headers() []string {
	return []string{
		fmt.Sprintf("%s Adaption MSE: %s noise", s.Algorithm, s.Noise),
		fmt.Sprintf("%s Speech MSE: %s noise", s.Algorithm, s.Noise),
		fmt.Sprintf("%s Mean SNR: %s noise", s.Algorithm, s.Noise),
		fmt.Sprintf("%s Mean Delta SNR: %s noise", s.Algorithm, s.Noise),
		fmt.Sprintf("%s Mean Clock-time: %s noise", s.Algorithm, s.Noise),
		fmt.Sprintf("%s Mean Convergence-time: %s noise", s.Algorithm, s.Noise),
	}
}

// Values returns the row matching Headers.
func (s Summary) Values() []string {
	return []string{
		formatFloat(s.AdaptionMSE),
		formatFloat(s.SpeechMSE),
		formatFloat(s.SNR),
		formatFloat(s.DeltaSNR),
		formatFloat(s.ClockTime),
		formatFloat(s.ConvergenceTime),
	}
}

// WriteCSV writes the header line and the single value row.
func WriteCSV(w io.Writer, s Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Headers()); err != nil {
		return err
	}
	if err := cw.Write(s.Values()); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// FileName returns "<alg>_results.csv", or "<alg>_ALE_results.csv" when the
// reference came from the line enhancer.
func FileName(algorithm string, ale bool) string {
	if ale {
		return algorithm + aleResultsSuffix
	}
	return algorithm + resultsSuffix
}

// Save writes s to <dir>/<noise>/FileName(...) and returns the path.
func Save(dir string, s Summary, ale bool) (path string, err error) {
	noiseDir := filepath.Join(dir, s.Noise)
	if err := os.MkdirAll(noiseDir, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	path = filepath.Join(noiseDir, FileName(s.Algorithm, ale))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create results file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	if err := WriteCSV(f, s); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}
	return stat.Mean(v, nil)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
