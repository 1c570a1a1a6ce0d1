// Package dataset loads the per-noise-type evaluation corpus:
//
//	<root>/<noise>/Noise_training/*.wav
//	<root>/<noise>/NoisySpeech_training/*.wav
//	<root>/<noise>/CleanSpeech_training/*.wav
//
// Files in each directory are paired by sorted name. Each clean file serves
// SNRLevels consecutive noisy mixtures.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tphakala/go-adaptive-filter/internal/wavio"
)

// Directory names inside a noise-type folder.
const (
	NoiseDir       = "Noise_training"
	NoisySpeechDir = "NoisySpeech_training"
	CleanSpeechDir = "CleanSpeech_training"

	wavExt = ".wav"
)

// AllNoiseTypes is the full evaluation set, selected with the name "all".
var AllNoiseTypes = []string{
	"air_conditioner",
	"babble",
	"cafe",
	"munching",
	"typing",
	"washer_dryer",
}

// ResolveNoiseTypes expands "all" and checks every name is known.
func ResolveNoiseTypes(names []string) ([]string, error) {
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "all" {
			return slices.Clone(AllNoiseTypes), nil
		}
		if !slices.Contains(AllNoiseTypes, n) {
			return nil, fmt.Errorf("unknown noise type %q (valid: %s, all)", n, strings.Join(AllNoiseTypes, ", "))
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no noise types selected")
	}
	return out, nil
}

// Sample is one evaluation triple.
type Sample struct {
	Name       string // noisy file base name
	Noise      []float64
	Noisy      []float64
	Clean      []float64
	SampleRate int
}

// Files lists the sorted WAV files of one noise type.
type Files struct {
	Noise []string
	Noisy []string
	Clean []string
}

// List returns the sorted file lists for noise under root.
func List(root, noise string) (*Files, error) {
	base := filepath.Join(root, noise)
	var f Files
	var err error
	if f.Noise, err = listWAV(filepath.Join(base, NoiseDir)); err != nil {
		return nil, err
	}
	if f.Noisy, err = listWAV(filepath.Join(base, NoisySpeechDir)); err != nil {
		return nil, err
	}
	if f.Clean, err = listWAV(filepath.Join(base, CleanSpeechDir)); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads every sample of noise under root. snrLevels is how many noisy
// mixtures share one clean file; values below 1 are treated as 1.
func Load(root, noise string, snrLevels int) ([]Sample, error) {
	files, err := List(root, noise)
	if err != nil {
		return nil, err
	}

	clean := expandClean(files.Clean, max(snrLevels, 1))
	n := min(len(files.Noise), len(files.Noisy), len(clean))
	if n == 0 {
		return nil, fmt.Errorf("no complete samples for noise type %q in %s", noise, root)
	}

	samples := make([]Sample, 0, n)
	for i := range n {
		s, err := loadSample(files.Noise[i], files.Noisy[i], clean[i])
		if err != nil {
			return nil, err
		}
		samples = append(samples, *s)
	}
	return samples, nil
}

// expandClean repeats each clean file snrLevels times, keeping order.
func expandClean(clean []string, snrLevels int) []string {
	out := make([]string, 0, len(clean)*snrLevels)
	for _, c := range clean {
		for range snrLevels {
			out = append(out, c)
		}
	}
	return out
}

func loadSample(noisePath, noisyPath, cleanPath string) (*Sample, error) {
	noise, err := wavio.Read(noisePath)
	if err != nil {
		return nil, err
	}
	noisy, err := wavio.Read(noisyPath)
	if err != nil {
		return nil, err
	}
	clean, err := wavio.Read(cleanPath)
	if err != nil {
		return nil, err
	}

	if noise.SampleRate != noisy.SampleRate || clean.SampleRate != noisy.SampleRate {
		return nil, fmt.Errorf("sample rate mismatch for %s: noise %d Hz, noisy %d Hz, clean %d Hz",
			filepath.Base(noisyPath), noise.SampleRate, noisy.SampleRate, clean.SampleRate)
	}

	return &Sample{
		Name:       strings.TrimSuffix(filepath.Base(noisyPath), filepath.Ext(noisyPath)),
		Noise:      noise.Samples,
		Noisy:      noisy.Samples,
		Clean:      clean.Samples,
		SampleRate: noisy.SampleRate,
	}, nil
}

func listWAV(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), wavExt) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	slices.Sort(out)
	return out, nil
}
