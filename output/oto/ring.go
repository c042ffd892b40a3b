// SPDX-License-Identifier: EPL-2.0

package oto

// ring is a fixed capacity FIFO of samples. It is not synchronised.
type ring struct {
	buf  []float32
	head int
	size int
}

func newRing(capacity int) ring {
	return ring{buf: make([]float32, capacity)}
}

func (r *ring) free() int { return len(r.buf) - r.size }

// write queues as much of src as fits and returns the count.
func (r *ring) write(src []float32) int {
	n := min(len(src), r.free())
	tail := (r.head + r.size) % len(r.buf)

	first := copy(r.buf[tail:], src[:n])
	copy(r.buf, src[first:n])

	r.size += n
	return n
}

// read dequeues up to len(dst) samples and returns the count.
func (r *ring) read(dst []float32) int {
	n := min(len(dst), r.size)

	first := copy(dst[:n], r.buf[r.head:])
	copy(dst[first:n], r.buf)

	r.head = (r.head + n) % len(r.buf)
	r.size -= n
	return n
}
