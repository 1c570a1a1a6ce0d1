package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTapWindowNewestFirst(t *testing.T) {
	w := NewTapWindow(3)
	assert.Equal(t, []float64{0, 0, 0}, w.View())

	w.Push(1)
	assert.Equal(t, []float64{1, 0, 0}, w.View())

	w.Push(2)
	w.Push(3)
	assert.Equal(t, []float64{3, 2, 1}, w.View())

	w.Push(4)
	assert.Equal(t, []float64{4, 3, 2}, w.View())
}

func TestTapWindowMatchesShiftRegister(t *testing.T) {
	const order = 5
	w := NewTapWindow(order)
	shift := make([]float64, order)

	for i := range 37 {
		x := float64(i*i%11) - 3
		copy(shift[1:], shift[:order-1])
		shift[0] = x
		w.Push(x)
		assert.Equal(t, shift, w.View(), "sample %d", i)
	}
}

func TestTapWindowReset(t *testing.T) {
	w := NewTapWindow(2)
	w.Push(1)
	w.Push(2)
	w.Reset()
	assert.Equal(t, []float64{0, 0}, w.View())
	assert.Equal(t, 2, w.Order())
}
