// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	resampling "github.com/tphakala/go-audio-resampler"
)

// maxEmptyReads bounds how often a source may answer (0, nil) in a row.
const maxEmptyReads = 100

// converter is one channel's streaming rate converter.
type converter interface {
	Process(in []float32) ([]float32, error)
	Flush() ([]float32, error)
}

// Resampler streams src at another sample rate. Each channel runs through
// its own polyphase FIR engine from go-audio-resampler; frames stay
// interleaved on both sides. A source already at the target rate passes
// through untouched.
type Resampler struct {
	src      Source
	dstRate  int
	channels int

	conv    []converter // nil when the rates match
	in      []float32
	plane   []float32
	pending [][]float32 // converted samples per channel not yet returned

	eof     bool
	flushed bool
}

// NewResampler converts src to dstRate at high quality.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 {
		return nil, fmt.Errorf("%w: target %d", ErrInvalidRate, dstRate)
	}
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: source reports %d", ErrInvalidRate, src.SampleRate())
	}

	channels := max(src.Channels(), 1)

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		channels: channels,
	}
	if src.SampleRate() == dstRate {
		return r, nil
	}

	r.in = make([]float32, size)
	r.plane = make([]float32, size/channels)
	r.pending = make([][]float32, channels)
	r.conv = make([]converter, channels)

	for c := range r.conv {
		eng, err := resampling.NewEngineFloat32(float64(src.SampleRate()), float64(dstRate), resampling.QualityHigh)
		if err != nil {
			return nil, fmt.Errorf("creating resampler %d->%d Hz: %w", src.SampleRate(), dstRate, err)
		}
		r.conv[c] = eng
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler input: %w", err)
	}
	return nil
}

// ready returns how many whole frames are waiting in pending.
func (r *Resampler) ready() int {
	n := len(r.pending[0])
	for _, p := range r.pending[1:] {
		n = min(n, len(p))
	}
	return n
}

// fill reads one block from the source and converts it, flushing the
// engines once the source ends.
func (r *Resampler) fill() error {
	if r.eof {
		for c, conv := range r.conv {
			tail, err := conv.Flush()
			if err != nil {
				return fmt.Errorf("flushing resampler: %w", err)
			}
			r.pending[c] = append(r.pending[c], tail...)
		}
		r.flushed = true

		return nil
	}

	for empty := 0; ; empty++ {
		if empty >= maxEmptyReads {
			return io.ErrNoProgress
		}

		n, err := r.src.ReadSamples(r.in)
		frames := n / r.channels

		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return fmt.Errorf("reading resampler input: %w", err)
		}

		if frames > 0 {
			return r.convert(frames)
		}
		if r.eof {
			return nil
		}
	}
}

func (r *Resampler) convert(frames int) error {
	plane := r.plane[:frames]

	for c, conv := range r.conv {
		for f := range plane {
			plane[f] = r.in[f*r.channels+c]
		}

		out, err := conv.Process(plane)
		if err != nil {
			return fmt.Errorf("resampling: %w", err)
		}
		r.pending[c] = append(r.pending[c], out...)
	}

	return nil
}

// ReadSamples produces dst samples at the destination rate.
// dst length should be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.conv == nil {
		return r.src.ReadSamples(dst)
	}

	frames := len(dst) / r.channels
	for r.ready() < frames && !r.flushed {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}

	n := min(frames, r.ready())
	for c := range r.pending {
		for f, v := range r.pending[c][:n] {
			dst[f*r.channels+c] = v
		}
		// keep the backing array from growing without bound
		rest := copy(r.pending[c], r.pending[c][n:])
		r.pending[c] = r.pending[c][:rest]
	}

	if n == 0 && r.flushed {
		return 0, io.EOF
	}

	return n * r.channels, nil
}
