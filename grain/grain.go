// SPDX-License-Identifier: EPL-2.0

package grain

import (
	"fmt"
	"math"
	"slices"

	"github.com/ik5/granular/utils"
)

// Grain renders a single grain. It holds the grain's length, amplitude,
// envelope and equal-power pan gains, and keeps no state between renders,
// so one Grain may render concurrently from several goroutines.
type Grain struct {
	length int
	amp    float32
	env    []float32
	left   float32
	right  float32
}

// New builds a grain of length samples. pan must lie in [0, 1]; the gains
// follow the equal-power law left = sqrt(pan), right = sqrt(1-pan).
// WindowUnset selects a rectangular envelope.
func New(length int, amplitude, pan float32, shape WindowShape) (*Grain, error) {
	if length < 2 {
		return nil, fmt.Errorf("%w: grain length %d", ErrLengthTooShort, length)
	}
	if !finite(amplitude) {
		return nil, fmt.Errorf("%w: amplitude %v", ErrInvalidArgument, amplitude)
	}
	if !(pan >= 0 && pan <= 1) {
		return nil, fmt.Errorf("%w: pan %v outside [0, 1]", ErrInvalidArgument, pan)
	}

	if shape == WindowUnset {
		shape = Rectangular
	}
	env, err := Envelope(shape, length)
	if err != nil {
		return nil, err
	}

	return &Grain{
		length: length,
		amp:    amplitude,
		env:    env,
		left:   float32(math.Sqrt(float64(pan))),
		right:  float32(math.Sqrt(float64(1 - pan))),
	}, nil
}

// FromParams builds the grain described by a sequencer snapshot.
func FromParams(p Params) (*Grain, error) {
	return New(p.Length, p.Amplitude, p.Pan, p.Window)
}

// Len returns the grain length in samples (frames, for stereo output).
func (g *Grain) Len() int { return g.length }

// Gains returns the left and right pan gains.
func (g *Grain) Gains() (left, right float32) { return g.left, g.right }

// Envelope returns a copy of the grain's envelope.
func (g *Grain) Envelope() []float32 { return slices.Clone(g.env) }

// RenderFromBuffer resamples src into an interleaved stereo grain of
// 2*Len() samples.
//
// Reading starts at startFraction*len(src) (0 when startFraction is
// negative), wrapped to the buffer. Output sample i reads the source at
// offset i*speed; once that offset reaches Len()-1 it is pulled back by
// Len(), which couples the wrap to the grain rather than to the source and
// gives the characteristic stretched repeat at high speeds. Source indices
// wrap modulo len(src)-1 so the interpolation partner is always in range.
//
// When reverse is set the whole interleaved buffer is reversed, which also
// exchanges the left and right samples of every frame.
//
// A start or speed that is not finite, or that overflows float32 once scaled
// by the source or grain length, is reported as ErrInvalidArgument.
func (g *Grain) RenderFromBuffer(src []float32, startFraction, speed float32, reverse bool) ([]float32, error) {
	size := len(src)
	if size < 2 {
		return nil, fmt.Errorf("%w: source has %d samples", ErrBufferTooShort, size)
	}
	if !finite(startFraction) || !finite(speed) {
		return nil, fmt.Errorf("%w: start %v, speed %v", ErrInvalidArgument, startFraction, speed)
	}

	last := float32(g.length - 1)
	if !finite(last * speed) {
		return nil, fmt.Errorf("%w: speed %v overflows a %d sample grain", ErrInvalidArgument, speed, g.length)
	}

	var phase float32
	if startFraction >= 0 {
		phase = startFraction * float32(size)
	}
	if !finite(phase) {
		return nil, fmt.Errorf("%w: start %v overflows a %d sample source", ErrInvalidArgument, startFraction, size)
	}
	phase = float32(math.Mod(float64(phase), float64(size)))
	span := size - 1

	out := make([]float32, g.length*2)
	for i := range g.length {
		step := float32(i) * speed
		if step >= last {
			step -= float32(g.length)
		}

		whole := float32(math.Floor(float64(step)))
		frac := step - whole

		idx := int(phase+whole) % span
		if idx < 0 {
			idx = 0
		}

		s := utils.LinearInterpolate(src[idx], src[idx+1], frac) * g.env[i] * g.amp
		out[i*2] = s * g.left
		out[i*2+1] = s * g.right
	}

	if reverse {
		slices.Reverse(out)
	}

	return out, nil
}

// RenderFromFrame regranulates a live input frame from its first sample.
func (g *Grain) RenderFromFrame(frame []float32, speed float32, reverse bool) ([]float32, error) {
	return g.RenderFromBuffer(frame, 0, speed, reverse)
}

// RenderSynthetic reads an oscillator table at the given frequency and
// returns a mono grain of Len() samples. Panning is not applied; use
// Interleave to place the result in the stereo field.
//
// The table phase advances by frequency*Len()/sampleRate per sample and
// wraps by the table length.
func (g *Grain) RenderSynthetic(table []float32, frequency float32, sampleRate int) ([]float32, error) {
	size := len(table)
	if size < 2 {
		return nil, fmt.Errorf("%w: table has %d samples", ErrBufferTooShort, size)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidArgument, sampleRate)
	}
	if !finite(frequency) {
		return nil, fmt.Errorf("%w: frequency %v", ErrInvalidArgument, frequency)
	}

	inc := frequency * float32(g.length) / float32(sampleRate)
	if !finite(inc) {
		return nil, fmt.Errorf("%w: frequency %v overflows the phase increment", ErrInvalidArgument, frequency)
	}
	top := float32(size - 1)

	out := make([]float32, g.length)
	var phase float32
	for i := range out {
		if phase >= top {
			phase -= float32(size)
			if phase >= top {
				// increments larger than the table fold back in one step
				phase = float32(math.Mod(float64(phase), float64(size)))
				if phase >= top {
					phase -= float32(size)
				}
			}
		}

		whole := float32(math.Floor(float64(phase)))
		frac := phase - whole

		// just after a wrap the phase sits in [-1, 0); read from the start
		idx := max(int(whole), 0)

		out[i] = utils.LinearInterpolate(table[idx], table[idx+1], frac) * g.env[i] * g.amp
		phase += inc
	}

	return out, nil
}

// Interleave spreads a mono buffer across two channels with the grain's pan
// gains and returns 2*len(mono) samples.
func (g *Grain) Interleave(mono []float32) []float32 {
	out := make([]float32, len(mono)*2)
	for i, s := range mono {
		out[i*2] = s * g.left
		out[i*2+1] = s * g.right
	}

	return out
}
