// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"slices"
	"sync"
)

// ErrClosed is returned by RecordingSink after Close.
var ErrClosed = errors.New("recording sink closed")

// RecordingSink keeps every buffer pushed into it. It implements the
// audio.Sink interface and is safe for concurrent use.
type RecordingSink struct {
	mtx     sync.Mutex
	samples []float32
	chunks  []int
	closed  bool

	// FailAfter makes WriteSamples fail once this many chunks were accepted.
	// Zero disables the failure.
	FailAfter int
}

func (s *RecordingSink) WriteSamples(src []float32) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.FailAfter > 0 && len(s.chunks) >= s.FailAfter {
		return errors.New("recording sink: injected failure")
	}

	s.samples = append(s.samples, src...)
	s.chunks = append(s.chunks, len(src))
	return nil
}

func (s *RecordingSink) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.closed = true
	return nil
}

// Samples returns a copy of everything written so far.
func (s *RecordingSink) Samples() []float32 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return slices.Clone(s.samples)
}

// Chunks returns the length of every buffer written, in order.
func (s *RecordingSink) Chunks() []int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return slices.Clone(s.chunks)
}

// Closed reports whether Close was called.
func (s *RecordingSink) Closed() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.closed
}
