// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/granular/audio"
	"github.com/ik5/granular/grain"
)

// FrameGranulator regranulates a live mono input one frame at a time.
//
// A grain cycle covers a whole number of frames: the drawn duration is
// rounded up to a multiple of the frame size and shaped by a Hanning window
// spanning the cycle. During the cycle every input frame is itself rendered
// as a grain (with the current speed, time position, reverse flag, pan and
// amplitude) and multiplied by its slice of the window. The cycle is
// followed by enough silent frames to cover the drawn delay, after which the
// sequencer advances and the next cycle begins.
//
// Process is meant to be called from a single audio callback. The
// Sequencer may be advanced concurrently by another goroutine; each frame
// reads one consistent snapshot.
type FrameGranulator struct {
	seq       *grain.Sequencer
	frameSize int
	rate      int

	cycle   int // grain length rounded up to whole frames
	window  []float32
	hop     int
	silence int // silent frames owed after the cycle
	silent  int
}

// NewFrameGranulator prepares the first grain cycle for frames of
// frameSize samples.
func NewFrameGranulator(seq *grain.Sequencer, frameSize int) (*FrameGranulator, error) {
	if frameSize < 2 {
		return nil, fmt.Errorf("%w: frame size %d", ErrFrameSize, frameSize)
	}

	f := &FrameGranulator{
		seq:       seq,
		frameSize: frameSize,
		rate:      seq.Settings().SampleRate(),
	}
	if err := f.plan(seq.Params()); err != nil {
		return nil, err
	}

	return f, nil
}

// FrameSize returns the input frame length in samples.
func (f *FrameGranulator) FrameSize() int { return f.frameSize }

// plan sets up a grain cycle from p.
func (f *FrameGranulator) plan(p grain.Params) error {
	frames := int(math.Ceil(float64(p.Length) / float64(f.frameSize)))
	f.cycle = max(frames, 1) * f.frameSize

	window, err := grain.Envelope(grain.Hanning, f.cycle)
	if err != nil {
		return err
	}
	f.window = window

	f.silence = int(math.Ceil(float64(p.Delay) * float64(f.rate) / float64(f.frameSize)))
	f.hop = 0
	f.silent = 0

	return nil
}

// Process renders one input frame into dst as interleaved stereo.
// len(frame) must equal FrameSize and len(dst) must be twice that.
func (f *FrameGranulator) Process(dst, frame []float32) error {
	if len(frame) != f.frameSize {
		return fmt.Errorf("%w: got %d samples, want %d", ErrFrameSize, len(frame), f.frameSize)
	}
	if len(dst) != 2*f.frameSize {
		return fmt.Errorf("%w: dst holds %d samples, want %d", ErrFrameSize, len(dst), 2*f.frameSize)
	}

	if f.hop < f.cycle {
		p := f.seq.Params()

		g, err := grain.New(f.frameSize, p.Amplitude, p.Pan, grain.Rectangular)
		if err != nil {
			return fmt.Errorf("building frame grain: %w", err)
		}
		stereo, err := g.RenderFromBuffer(frame, p.TimePosition, p.Speed, p.Reverse)
		if err != nil {
			return err
		}

		w := f.window[f.hop : f.hop+f.frameSize]
		for i, gain := range w {
			dst[2*i] = stereo[2*i] * gain
			dst[2*i+1] = stereo[2*i+1] * gain
		}

		f.hop += f.frameSize
		return nil
	}

	clear(dst)

	if f.silent < f.silence {
		f.silent++
		return nil
	}

	return f.plan(f.seq.Advance())
}

// LiveSource drives a FrameGranulator from an input Source, producing the
// granulated stereo stream as a Source of its own. Inputs with more than
// one channel are folded to mono; the input must already run at the
// sequencer's sample rate.
type LiveSource struct {
	in   audio.Source
	gran *FrameGranulator

	frame   []float32
	out     []float32
	outPos  int
	outLen  int
	drained bool
}

// NewLiveSource connects in to gran.
func NewLiveSource(in audio.Source, gran *FrameGranulator) (*LiveSource, error) {
	if in.SampleRate() != gran.rate {
		return nil, fmt.Errorf("%w: input runs at %d Hz, granulator at %d Hz",
			audio.ErrInvalidRate, in.SampleRate(), gran.rate)
	}
	if in.Channels() != 1 {
		in = audio.NewMonoMixer(in)
	}

	return &LiveSource{
		in:    in,
		gran:  gran,
		frame: make([]float32, gran.frameSize),
		out:   make([]float32, 2*gran.frameSize),
	}, nil
}

func (l *LiveSource) SampleRate() int { return l.gran.rate }
func (l *LiveSource) Channels() int   { return 2 }
func (l *LiveSource) BufSize() int    { return 2 * l.gran.frameSize }

func (l *LiveSource) Close() error {
	if err := l.in.Close(); err != nil {
		return fmt.Errorf("closing live input: %w", err)
	}
	return nil
}

// next pulls one input frame, zero padding a short final frame.
func (l *LiveSource) next() error {
	filled := 0
	for filled < len(l.frame) && !l.drained {
		n, err := l.in.ReadSamples(l.frame[filled:])
		filled += n

		if err == io.EOF {
			l.drained = true
		} else if err != nil {
			return fmt.Errorf("reading input: %w", err)
		} else if n == 0 {
			return io.ErrNoProgress
		}
	}
	if filled == 0 {
		return io.EOF
	}
	clear(l.frame[filled:])

	if err := l.gran.Process(l.out, l.frame); err != nil {
		return err
	}
	l.outPos, l.outLen = 0, len(l.out)

	return nil
}

func (l *LiveSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		if l.outPos >= l.outLen {
			if err := l.next(); err != nil {
				return written, err
			}
		}

		n := copy(dst[written:], l.out[l.outPos:l.outLen])
		l.outPos += n
		written += n
	}

	return written, nil
}
