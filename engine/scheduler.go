// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"io"

	"github.com/ik5/granular/audio"
	"github.com/ik5/granular/grain"
)

const (
	// DefaultFrameSize is the number of stereo frames per processing block.
	DefaultFrameSize = 4096
	// DefaultMaxVoices is how many grains may sound at once.
	DefaultMaxVoices = 64
	// MaxVoicesLimit is the largest accepted MaxVoices.
	MaxVoicesLimit = 1024
)

// Options configures a Scheduler.
type Options struct {
	// Mode is ModeSampled or ModeSynthetic.
	Mode Mode
	// Buffer is the mono source for ModeSampled.
	Buffer []float32
	// Table is the oscillator for ModeSynthetic. Nil selects a sine table
	// of grain.DefaultTableLength samples.
	Table []float32
	// FrameSize is the block size reported by BufSize, in frames.
	// Zero selects DefaultFrameSize.
	FrameSize int
	// MaxVoices caps overlapping grains. Zero selects DefaultMaxVoices.
	MaxVoices int
	// Frames ends the stream after this many stereo frames. Zero streams
	// until Close.
	Frames int
}

type voice struct {
	data []float32 // interleaved stereo
	pos  int
}

// Stats counts grain onsets.
type Stats struct {
	Spawned int
	// Dropped onsets arrived while every voice was busy.
	Dropped int
}

// Scheduler turns a Sequencer into a continuous stereo stream.
//
// It emits a grain from the current parameters, waits the drawn delay,
// advances the sequencer and emits the next grain. Grains that overlap are
// summed. The delay is counted in output samples, so the result does not
// depend on how fast the stream is read.
//
// Scheduler implements audio.Source with two channels. It is meant to be
// driven by a single consumer and is not safe for concurrent use; the
// Sequencer it reads from may be shared.
type Scheduler struct {
	seq  *grain.Sequencer
	mode Mode
	rate int

	buffer []float32
	table  []float32

	frameSize int
	maxVoices int
	frames    int

	voices []voice
	wait   int // frames until the next onset
	done   int
	closed bool
	stats  Stats
}

// NewScheduler validates opts against the mode and returns a scheduler
// whose first grain starts at frame zero.
func NewScheduler(seq *grain.Sequencer, opts Options) (*Scheduler, error) {
	s := &Scheduler{
		seq:       seq,
		mode:      opts.Mode,
		rate:      seq.Settings().SampleRate(),
		frameSize: opts.FrameSize,
		maxVoices: opts.MaxVoices,
		frames:    opts.Frames,
	}

	if s.frameSize == 0 {
		s.frameSize = DefaultFrameSize
	}
	if s.frameSize < 2 {
		return nil, fmt.Errorf("%w: %d", ErrFrameSize, s.frameSize)
	}
	if s.maxVoices == 0 {
		s.maxVoices = DefaultMaxVoices
	}
	if s.maxVoices < 1 || s.maxVoices > MaxVoicesLimit {
		return nil, fmt.Errorf("%w: %d", ErrTooManyVoices, s.maxVoices)
	}
	if s.frames < 0 {
		return nil, fmt.Errorf("%w: negative frame count %d", ErrFrameSize, s.frames)
	}

	switch opts.Mode {
	case ModeSampled:
		if len(opts.Buffer) < 2 {
			return nil, fmt.Errorf("%w: %v needs a buffer of at least 2 samples", ErrNoSource, opts.Mode)
		}
		s.buffer = opts.Buffer

	case ModeSynthetic:
		s.table = opts.Table
		if s.table == nil {
			table, err := grain.Table(grain.Sine, grain.DefaultTableLength)
			if err != nil {
				return nil, err
			}
			s.table = table
		}
		if len(s.table) < 2 {
			return nil, fmt.Errorf("%w: %v needs a table of at least 2 samples", ErrNoSource, opts.Mode)
		}

	case ModeLive:
		return nil, fmt.Errorf("%w: %v is driven by input frames, use a FrameGranulator", ErrUnknownMode, opts.Mode)

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, opts.Mode)
	}

	s.voices = make([]voice, 0, s.maxVoices)

	return s, nil
}

func (s *Scheduler) SampleRate() int { return s.rate }
func (s *Scheduler) Channels() int   { return 2 }
func (s *Scheduler) BufSize() int    { return s.frameSize * 2 }

// Close ends the stream; further reads return io.EOF.
func (s *Scheduler) Close() error {
	s.closed = true
	s.voices = s.voices[:0]
	return nil
}

// Stats returns onset counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// Active returns the number of grains currently sounding.
func (s *Scheduler) Active() int { return len(s.voices) }

// ReadSamples mixes the next len(dst)/2 frames into dst.
func (s *Scheduler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if s.closed {
		return 0, io.EOF
	}

	frames := len(dst) / 2
	if s.frames > 0 {
		frames = min(frames, s.frames-s.done)
		if frames == 0 {
			return 0, io.EOF
		}
	}

	out := dst[:frames*2]
	clear(out)

	for f := 0; f < frames; {
		if s.wait == 0 {
			if err := s.spawn(); err != nil {
				s.done += f
				return f * 2, err
			}
		}

		run := min(frames-f, s.wait)
		s.mix(out[f*2 : (f+run)*2])
		f += run
		s.wait -= run
	}

	s.done += frames
	if s.frames > 0 && s.done >= s.frames {
		return frames * 2, io.EOF
	}

	return frames * 2, nil
}

// spawn starts a grain from the current parameters, schedules the next
// onset and advances the sequencer.
func (s *Scheduler) spawn() error {
	p := s.seq.Params()

	// a zero delay still moves time forward by one frame
	s.wait = max(1, p.DelaySamples(s.rate))
	defer s.seq.Advance()

	if len(s.voices) >= s.maxVoices {
		s.stats.Dropped++
		return nil
	}

	data, err := s.render(p)
	if err != nil {
		return err
	}

	s.voices = append(s.voices, voice{data: data})
	s.stats.Spawned++

	return nil
}

func (s *Scheduler) render(p grain.Params) ([]float32, error) {
	g, err := grain.FromParams(p)
	if err != nil {
		return nil, fmt.Errorf("building grain: %w", err)
	}

	switch s.mode {
	case ModeSampled:
		return g.RenderFromBuffer(s.buffer, p.TimePosition, p.Speed, p.Reverse)
	case ModeSynthetic:
		mono, err := g.RenderSynthetic(s.table, p.Speed, s.rate)
		if err != nil {
			return nil, err
		}
		return g.Interleave(mono), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, s.mode)
	}
}

// mix adds every active voice into out and retires finished voices.
func (s *Scheduler) mix(out []float32) {
	live := s.voices[:0]
	for _, v := range s.voices {
		n := min(len(out), len(v.data)-v.pos)
		for i, x := range v.data[v.pos : v.pos+n] {
			out[i] += x
		}
		v.pos += n

		if v.pos < len(v.data) {
			live = append(live, v)
		}
	}

	clear(s.voices[len(live):])
	s.voices = live
}
