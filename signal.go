package adaptive

import "fmt"

// Flatten converts framed input to a one-dimensional signal. Only a single
// row (1×M) or a single column (M×1) is accepted; any other shape is an
// ErrValidation.
func Flatten(frames [][]float64) ([]float64, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrValidation)
	}

	if len(frames) == 1 {
		if len(frames[0]) == 0 {
			return nil, fmt.Errorf("%w: empty frame", ErrValidation)
		}
		out := make([]float64, len(frames[0]))
		copy(out, frames[0])
		return out, nil
	}

	out := make([]float64, len(frames))
	for i, row := range frames {
		if len(row) != 1 {
			return nil, fmt.Errorf("%w: shape %dx%d is not one-dimensional (row %d has %d columns)",
				ErrValidation, len(frames), len(frames[0]), i, len(row))
		}
		out[i] = row[0]
	}
	return out, nil
}

// ToFloat64 converts float32 samples to float64.
func ToFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// ToFloat32 converts float64 samples to float32.
func ToFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
