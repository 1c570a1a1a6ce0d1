package engine

// TapWindow holds the most recent N reference samples, newest first.
//
// Samples are written twice, at pos and pos+N, so View always returns a
// contiguous slice without shifting: View()[0] is the newest sample and
// View()[N-1] the oldest. Push is O(1).
type TapWindow struct {
	data  []float64
	order int
	pos   int
}

// NewTapWindow creates a zero-filled window of the given order.
func NewTapWindow(order int) *TapWindow {
	if order < 1 {
		order = 1
	}
	return &TapWindow{
		data:  make([]float64, windowMirror*order),
		order: order,
	}
}

// Push inserts x as the newest tap, dropping the oldest.
func (w *TapWindow) Push(x float64) {
	w.pos--
	if w.pos < 0 {
		w.pos = w.order - 1
	}
	w.data[w.pos] = x
	w.data[w.pos+w.order] = x
}

// View returns the current window, newest first. The slice aliases the
// window storage and is only valid until the next Push.
func (w *TapWindow) View() []float64 {
	return w.data[w.pos : w.pos+w.order]
}

// Order returns the window length.
func (w *TapWindow) Order() int {
	return w.order
}

// Reset zeroes the window.
func (w *TapWindow) Reset() {
	clear(w.data)
	w.pos = 0
}
