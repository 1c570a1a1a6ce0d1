// Package wavio reads and writes mono PCM WAV files as normalised float64
// samples.
package wavio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	monoChannels = 1
	pcmFormat    = 1

	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// DefaultBitDepth is used by Write when bitDepth is zero.
	DefaultBitDepth = bitsPerSample16
)

// ErrNotMono is returned for files with more than one channel. Noise
// cancellation works on one-dimensional signals only.
var ErrNotMono = errors.New("WAV file is not mono")

// Audio is a decoded mono signal.
type Audio struct {
	Samples    []float64 // normalised to [-1, 1]
	SampleRate int
	BitDepth   int
}

// Read decodes a mono PCM WAV file.
func Read(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data from %s: %w", path, err)
	}

	format := buf.Format
	if format == nil {
		format = decoder.Format()
	}
	if format.NumChannels != monoChannels {
		return nil, fmt.Errorf("%w: %s has %d channels", ErrNotMono, path, format.NumChannels)
	}

	bitDepth := int(decoder.BitDepth)
	return &Audio{
		Samples:    normalize(buf.Data, maxValue(bitDepth)),
		SampleRate: format.SampleRate,
		BitDepth:   bitDepth,
	}, nil
}

// Write encodes samples as a mono PCM WAV file. Samples are clamped to
// [-1, 1]. A zero bitDepth selects DefaultBitDepth.
func Write(path string, samples []float64, sampleRate, bitDepth int) (err error) {
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		return fmt.Errorf("unsupported bit depth %d", bitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	encoder := wav.NewEncoder(f, sampleRate, bitDepth, monoChannels, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: monoChannels, SampleRate: sampleRate},
		Data:           denormalize(samples, maxValue(bitDepth)),
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}

	// Close finalises the RIFF header sizes.
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalise WAV file: %w", err)
	}
	return nil
}

func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

func normalize(data []int, maxVal float64) []float64 {
	inv := 1.0 / maxVal
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v) * inv
	}
	return out
}

func denormalize(samples []float64, maxVal float64) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		out[i] = int(max(-1.0, min(1.0, s)) * maxVal)
	}
	return out
}
