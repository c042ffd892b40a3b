// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/granular/audio"
	"github.com/ik5/granular/utils"
)

// Sink encodes pushed float32 samples as a 16-bit PCM WAV stream.
// The header is finalised on Close, so the destination must be seekable.
type Sink struct {
	enc      *wav.Encoder
	closer   io.Closer // set when the sink owns the file
	channels int
	buf      *goaudio.IntBuffer
	closed   bool
}

// NewSink writes a WAV stream to w. Closing the sink finishes the stream
// but leaves w open.
func NewSink(w io.WriteSeeker, sampleRate, channels int) (*Sink, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", audio.ErrInvalidRate, sampleRate)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrPartialFrame, channels)
	}

	return &Sink{
		enc:      wav.NewEncoder(w, sampleRate, 16, channels, formatPCM),
		channels: channels,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}, nil
}

// Create opens path for writing and returns a sink that closes the file
// along with itself.
func Create(path string, sampleRate, channels int) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating wav output: %w", err)
	}

	s, err := NewSink(f, sampleRate, channels)
	if err != nil {
		return nil, errors.Join(err, f.Close())
	}
	s.closer = f

	return s, nil
}

func (s *Sink) WriteSamples(src []float32) error {
	if s.closed {
		return audio.ErrSinkClosed
	}
	if len(src)%s.channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrPartialFrame, len(src), s.channels)
	}
	if len(src) == 0 {
		return nil
	}

	if cap(s.buf.Data) < len(src) {
		s.buf.Data = make([]int, len(src))
	}
	s.buf.Data = s.buf.Data[:len(src)]
	utils.Float32sToInts(s.buf.Data, src)

	if err := s.enc.Write(s.buf); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}

	return nil
}

// Close writes the final chunk sizes. Closing twice is a no-op.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.enc.Close()
	if err != nil {
		err = fmt.Errorf("finishing wav: %w", err)
	}
	if s.closer != nil {
		err = errors.Join(err, s.closer.Close())
	}

	return err
}
