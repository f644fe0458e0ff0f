package processor

// Buffer is the sliding transform buffer. Interleaved stereo pairs are packed
// as complex values, left in the real part and right in the imaginary part.
//
// The tail of the buffer fills up until a step is ready, then the contents
// move left by the hop size. It starts half full of silence so the first
// step sees the first samples at its center.
type Buffer struct {
	data      []complex128
	step      int
	remaining int
}

// NewBuffer returns a Buffer of size pairs that steps every step pairs.
func NewBuffer(size, step int) *Buffer {
	return &Buffer{
		data:      make([]complex128, size),
		step:      step,
		remaining: size / 2,
	}
}

// Fill writes interleaved pairs from samples into the buffer until it is
// ready or samples runs out. It returns the number of samples consumed.
func (b *Buffer) Fill(samples []float64) int {
	pairs := min(len(samples)/2, b.remaining)
	pos := len(b.data) - b.remaining

	for x := 0; x < pairs; x++ {
		b.data[pos+x] = complex(samples[2*x], samples[2*x+1])
	}

	b.remaining -= pairs

	return pairs * 2
}

// Ready reports whether a step is due.
func (b *Buffer) Ready() bool {
	return b.remaining == 0
}

// Data returns the buffer contents.
func (b *Buffer) Data() []complex128 {
	return b.data
}

// Shift moves the contents left by one hop.
func (b *Buffer) Shift() {
	copy(b.data, b.data[b.step:])
	b.remaining += b.step
}

// Pad zeroes the unfilled tail.
func (b *Buffer) Pad() {
	clear(b.data[len(b.data)-b.remaining:])
}

// Draining reports whether the buffer center still holds input that has not
// been analyzed.
func (b *Buffer) Draining() bool {
	return b.remaining < len(b.data)/2
}

// Remaining is the number of pairs until the next step.
func (b *Buffer) Remaining() int {
	return b.remaining
}
