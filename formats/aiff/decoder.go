// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/granular/audio"
	"github.com/ik5/granular/internal/pcm"
)

type Decoder struct{}

// Decode reads the AIFF header from r and returns a Source of its sound
// data. go-audio needs to seek, so other readers are buffered in memory.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := audio.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	depth := int(dec.BitDepth)
	switch depth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	// AIFF stores signed samples at every depth
	return pcm.NewSource(dec, dec.SampleRate, int(dec.NumChans), depth, false), nil
}
