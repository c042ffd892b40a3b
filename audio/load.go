// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"fmt"
	"io"
)

// LoadMono drains src into a single mono buffer at rate Hz, resampling and
// folding channels as needed. The result is ready to be granulated. src is
// not closed.
//
// A source that yields fewer than 2 samples is reported as ErrEmptySource.
func LoadMono(src Source, rate int) ([]float32, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: source reports %d", ErrInvalidRate, src.SampleRate())
	}

	var s Source = src
	if s.SampleRate() != rate {
		r, err := NewResampler(s, rate)
		if err != nil {
			return nil, err
		}
		s = r
	}
	mono := NewMonoMixer(s)

	size := src.BufSize()
	if size <= 0 {
		size = 4096
	}
	buf := make([]float32, size)

	var out []float32
	for empty := 0; ; {
		n, err := mono.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loading samples: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		} else {
			empty = 0
		}
	}

	if len(out) < 2 {
		return nil, ErrEmptySource
	}

	return out, nil
}

// Copy pushes samples from src to dst in chunks of bufSize until src ends,
// limit samples have been copied (rounded up to a whole frame; limit <= 0
// means no limit) or ctx is done. It returns the number of samples delivered to dst. Reaching the end
// of src is not an error.
//
// bufSize is rounded down to a whole number of frames, so every chunk dst
// sees holds complete frames.
func Copy(ctx context.Context, dst Sink, src Source, bufSize, limit int) (int, error) {
	channels := max(src.Channels(), 1)
	bufSize -= bufSize % channels
	if bufSize <= 0 {
		return 0, fmt.Errorf("%w: buffer of %d for %d channels", ErrInvalidDstSize, bufSize, channels)
	}

	buf := make([]float32, bufSize)
	total := 0
	empty := 0

	for limit <= 0 || total < limit {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		chunk := buf
		if limit > 0 && limit-total < len(chunk) {
			rest := limit - total
			rest += (channels - rest%channels) % channels
			chunk = buf[:min(rest, len(buf))]
		}

		n, err := src.ReadSamples(chunk)
		if n > 0 {
			empty = 0
			if werr := dst.WriteSamples(chunk[:n]); werr != nil {
				return total, fmt.Errorf("writing samples: %w", werr)
			}
			total += n
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				return total, io.ErrNoProgress
			}
		}

		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("reading samples: %w", err)
		}
	}

	return total, nil
}
