// SPDX-License-Identifier: EPL-2.0

package grain

import (
	"fmt"
	"math"
)

// DefaultTableLength is the oscillator table size used for synthetic grains
// when the caller has no reason to pick another.
const DefaultTableLength = 4096

// WaveShape selects the waveform stored in an oscillator table.
type WaveShape int

const (
	// Sine is a single sine cycle spanning the whole table.
	Sine WaveShape = iota
)

func (s WaveShape) String() string {
	switch s {
	case Sine:
		return "sine"
	default:
		return fmt.Sprintf("WaveShape(%d)", int(s))
	}
}

// Table returns an oscillator lookup table of the given shape and length.
//
// For Sine, sample i is sin(2π·i/(length-1)), so both the first and the last
// entries are zero. The result is never modified by this package and may be
// shared freely between goroutines.
func Table(shape WaveShape, length int) ([]float32, error) {
	if length < 2 {
		return nil, fmt.Errorf("%w: table length %d", ErrLengthTooShort, length)
	}

	switch shape {
	case Sine:
		t := make([]float32, length)
		last := float64(length - 1)
		for i := range t {
			t[i] = float32(math.Sin(2 * math.Pi * float64(i) / last))
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownShape, shape)
	}
}
