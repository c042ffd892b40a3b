// SPDX-License-Identifier: EPL-2.0

package engine

import "fmt"

// Mode selects where grains take their sound from.
type Mode int

const (
	// ModeSampled cuts grains out of a pre-loaded mono buffer.
	ModeSampled Mode = iota
	// ModeSynthetic reads grains from an oscillator table; the drawn speed
	// is the oscillator frequency in Hz.
	ModeSynthetic
	// ModeLive regranulates every incoming input frame.
	ModeLive
)

func (m Mode) String() string {
	switch m {
	case ModeSampled:
		return "sampled"
	case ModeSynthetic:
		return "synthetic"
	case ModeLive:
		return "live"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a mode name, as returned by String, to its value.
func ParseMode(name string) (Mode, error) {
	for _, m := range []Mode{ModeSampled, ModeSynthetic, ModeLive} {
		if m.String() == name {
			return m, nil
		}
	}

	return ModeSampled, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}
