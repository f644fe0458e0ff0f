package util

import "github.com/noriah/showcqt/dsp"

// History is a fixed size ring of rows, newest first.
//
// Rows are copied into a pool allocated up front. Once the ring is full the
// oldest row is overwritten.
type History struct {
	pool [][]dsp.Power

	// head is the slot of the newest row
	head   int
	length int
	width  int
}

// NewHistory returns a History holding size rows of width bins.
func NewHistory(size, width int) *History {
	h := &History{
		pool:  make([][]dsp.Power, size),
		head:  -1,
		width: width,
	}

	for x := range h.pool {
		h.pool[x] = make([]dsp.Power, width)
	}

	return h
}

// Push copies row in as the newest entry.
func (h *History) Push(row []dsp.Power) {
	if len(h.pool) == 0 {
		return
	}

	h.head++
	if h.head == len(h.pool) {
		h.head = 0
	}

	copy(h.pool[h.head], row)

	if h.length < len(h.pool) {
		h.length++
	}
}

// Row returns the entry age rows back, 0 being the newest. It returns nil
// past the oldest row.
func (h *History) Row(age int) []dsp.Power {
	if age < 0 || age >= h.length {
		return nil
	}

	idx := h.head - age
	if idx < 0 {
		idx += len(h.pool)
	}

	return h.pool[idx]
}

// Len returns how many rows are held.
func (h *History) Len() int {
	return h.length
}

// Cap returns the most rows held at once.
func (h *History) Cap() int {
	return len(h.pool)
}

// Width returns the row width.
func (h *History) Width() int {
	return h.width
}
