// SPDX-License-Identifier: EPL-2.0

package grain

import (
	"fmt"

	"github.com/mjibson/go-dsp/window"
)

// WindowShape selects the amplitude envelope applied to a grain.
type WindowShape int

const (
	// WindowUnset means no shape was chosen; the renderer falls back to
	// Rectangular.
	WindowUnset WindowShape = iota
	// Rectangular leaves the grain untouched.
	Rectangular
	// Hanning is the symmetric raised cosine, zero at both ends.
	Hanning
	// Percussive is a short linear attack followed by a linear decay.
	Percussive
)

func (s WindowShape) String() string {
	switch s {
	case WindowUnset:
		return "unset"
	case Rectangular:
		return "rectangular"
	case Hanning:
		return "hanning"
	case Percussive:
		return "percussive"
	default:
		return fmt.Sprintf("WindowShape(%d)", int(s))
	}
}

// ParseWindowShape maps a shape name, as returned by String, to its value.
func ParseWindowShape(name string) (WindowShape, error) {
	for _, s := range []WindowShape{WindowUnset, Rectangular, Hanning, Percussive} {
		if s.String() == name {
			return s, nil
		}
	}

	return WindowUnset, fmt.Errorf("%w: window %q", ErrUnknownShape, name)
}

// PercussiveAttack returns the attack length, in samples, of a percussive
// envelope of the given length: length/50 + 1, but never less than 2.
func PercussiveAttack(length int) int {
	return max(2, length/50+1)
}

// Envelope returns an amplitude window of the given shape and length.
//
// Percussive windows need room for the decay as well as the attack, so
// length must exceed PercussiveAttack(length)+1.
func Envelope(shape WindowShape, length int) ([]float32, error) {
	if length < 2 {
		return nil, fmt.Errorf("%w: envelope length %d", ErrLengthTooShort, length)
	}

	switch shape {
	case Rectangular:
		env := make([]float32, length)
		for i := range env {
			env[i] = 1
		}
		return env, nil

	case Hanning:
		w := window.Hann(length)
		env := make([]float32, length)
		for i, v := range w {
			env[i] = float32(v)
		}
		return env, nil

	case Percussive:
		n := PercussiveAttack(length)
		if length <= n+1 {
			return nil, fmt.Errorf("%w: percussive envelope of %d samples needs more than %d",
				ErrLengthTooShort, length, n+1)
		}

		up := 1 / float32(n-1)
		down := 1 / float32(length-n-1)

		env := make([]float32, length)
		for i := range env {
			if i < n {
				env[i] = up * float32(i)
			} else {
				env[i] = 1 - down*float32(i-n)
			}
		}
		return env, nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownShape, shape)
	}
}
