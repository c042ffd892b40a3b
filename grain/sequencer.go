// SPDX-License-Identifier: EPL-2.0

package grain

import (
	"math"
	"math/rand/v2"
	"sync"
)

// Params is one complete draw of per-grain parameters.
type Params struct {
	// Length of the grain in samples.
	Length       int
	Speed        float32
	Reverse      bool
	Pan          float32
	Amplitude    float32
	TimePosition float32
	// Delay before the next grain, in seconds.
	Delay  float32
	Window WindowShape
}

// DelaySamples returns Delay as a whole number of samples at sampleRate,
// rounded up so a non-zero delay never collapses to zero.
func (p Params) DelaySamples(sampleRate int) int {
	return int(math.Ceil(float64(p.Delay) * float64(sampleRate)))
}

// Sequencer draws per-grain parameters from shared Settings.
//
// A Sequencer owns its random source; the source is never copied or handed
// out. All methods take the same lock, so a timer goroutine may call Advance
// while an audio callback reads Params and the callback always sees a
// complete set.
type Sequencer struct {
	settings *Settings

	mtx *sync.Mutex
	rnd *rand.Rand
	cur Params
}

// NewSequencer returns a sequencer with an initial draw already made.
// If src is nil a randomly seeded PCG source is used. The sequencer takes
// ownership of src.
func NewSequencer(settings *Settings, src rand.Source) *Sequencer {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	s := &Sequencer{
		settings: settings,
		mtx:      &sync.Mutex{},
		rnd:      rand.New(src),
	}
	s.cur = s.draw()

	return s
}

// Settings returns the shared configuration the sequencer draws from.
func (s *Sequencer) Settings() *Settings { return s.settings }

// Params returns a snapshot of the current draw.
func (s *Sequencer) Params() Params {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.cur
}

// Advance replaces every parameter with a fresh draw and returns it.
func (s *Sequencer) Advance() Params {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.cur = s.draw()
	return s.cur
}

// draw must be called with mtx held.
func (s *Sequencer) draw() Params {
	cfg := s.settings

	p := Params{
		Length:       durationSamples(s.value(cfg.duration), cfg.sampleRate),
		TimePosition: s.value(cfg.timePosition),
		Delay:        s.value(cfg.delay),
		Speed:        s.value(cfg.speed),
		Pan:          s.value(cfg.pan),
		Amplitude:    s.value(cfg.amplitude),
		Window:       cfg.window,
	}

	switch cfg.reverse {
	case ReverseAlways:
		p.Reverse = true
	case ReverseRandom:
		p.Reverse = s.rnd.IntN(2) == 1
	default:
		p.Reverse = false
	}

	return p
}

// value draws uniformly from [r.Min, r.Max), or returns r.Min for a fixed range.
func (s *Sequencer) value(r ParamRange) float32 {
	if r.IsFixed() {
		return r.Min
	}

	v := r.Min + float32(s.rnd.Float64())*(r.Max-r.Min)
	if v >= r.Max {
		// float32 rounding can land on the open end
		v = math.Nextafter32(r.Max, r.Min)
	}

	return v
}
