// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer decoders to audio.Source.
package pcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/granular/utils"
)

// Reader is the part of the go-audio WAV and AIFF decoders a Source needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM from a Reader into float32 samples.
type Source struct {
	dec      Reader
	rate     int
	channels int
	bitDepth int
	// unsigned 8-bit data is centred on 128
	offset int

	buf *goaudio.IntBuffer
}

// NewSource wraps dec. Set unsigned for formats that store 8-bit samples
// without a sign, as WAV does.
func NewSource(dec Reader, rate, channels, bitDepth int, unsigned bool) *Source {
	s := &Source{
		dec:      dec,
		rate:     rate,
		channels: channels,
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
			Data:           make([]int, 4096),
			SourceBitDepth: bitDepth,
		},
	}
	if unsigned && bitDepth == 8 {
		s.offset = 128
	}

	return s
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return cap(s.buf.Data) }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	n = min(n, len(dst))

	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.IntToFloat32(v-s.offset, s.bitDepth)
	}

	switch {
	case err == io.EOF:
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("decoding pcm: %w", err)
	case n == 0:
		return 0, io.EOF
	}

	return n, nil
}
