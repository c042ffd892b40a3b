// SPDX-License-Identifier: EPL-2.0

package grain

import (
	"fmt"
	"math"
)

const (
	// MaxGrainSeconds is the longest grain Config accepts.
	MaxGrainSeconds = 60
	// MaxDelaySeconds is the longest gap between onsets Config accepts.
	MaxDelaySeconds = 3600

	// maxSamples bounds any length or delay in samples.
	maxSamples = math.MaxInt32
)

// ParamRange is the closed interval a per-grain parameter is drawn from.
// Min == Max pins the parameter to that value.
type ParamRange struct {
	Min float32
	Max float32
}

// Fixed returns a range that always yields v.
func Fixed(v float32) ParamRange {
	return ParamRange{Min: v, Max: v}
}

// IsFixed reports whether the range always yields the same value.
func (r ParamRange) IsFixed() bool { return r.Min == r.Max }

// Validate reports an error wrapping ErrInvalidRange if Min > Max or either
// bound is NaN or infinite.
func (r ParamRange) Validate() error {
	if !finite(r.Min) || !finite(r.Max) {
		return fmt.Errorf("%w: [%v, %v] is not finite", ErrInvalidRange, r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %v > max %v", ErrInvalidRange, r.Min, r.Max)
	}

	return nil
}

// within reports whether the range lies inside [lo, hi].
func (r ParamRange) within(lo, hi float32) bool {
	return r.Min >= lo && r.Max <= hi
}

// ReversePolicy decides whether sampled grains play backwards.
type ReversePolicy int

const (
	// ReverseNever plays every grain forwards.
	ReverseNever ReversePolicy = iota
	// ReverseAlways plays every grain backwards.
	ReverseAlways
	// ReverseRandom flips a fair coin for every grain.
	ReverseRandom
)

func (p ReversePolicy) String() string {
	switch p {
	case ReverseNever:
		return "never"
	case ReverseAlways:
		return "always"
	case ReverseRandom:
		return "random"
	default:
		return fmt.Sprintf("ReversePolicy(%d)", int(p))
	}
}

// ParseReversePolicy maps a policy name, as returned by String, to its value.
func ParseReversePolicy(name string) (ReversePolicy, error) {
	for _, p := range []ReversePolicy{ReverseNever, ReverseAlways, ReverseRandom} {
		if p.String() == name {
			return p, nil
		}
	}

	return ReverseNever, fmt.Errorf("%w: reverse policy %q", ErrInvalidConfig, name)
}

// Config is the caller-facing description of a grain stream. It is checked
// and frozen by NewSettings.
type Config struct {
	// Duration of a grain in seconds.
	Duration ParamRange
	// Speed is the playback rate for sampled grains and the oscillator
	// frequency in Hz for synthetic grains.
	Speed ParamRange
	// Pan position, 0 is fully right and 1 is fully left.
	Pan ParamRange
	// Amplitude multiplier.
	Amplitude ParamRange
	// TimePosition is the read offset as a fraction of the source length.
	TimePosition ParamRange
	// Delay between grain onsets, in seconds.
	Delay ParamRange

	Reverse    ReversePolicy
	SampleRate int
	// Window is the envelope for every grain. WindowUnset leaves the choice
	// to whoever renders the grain.
	Window WindowShape
}

// DefaultConfig returns a configuration producing 0.1–1 s grains at unity
// speed, centered, every 100 ms, at 44.1 kHz.
func DefaultConfig() Config {
	return Config{
		Duration:     ParamRange{Min: 0.1, Max: 1.0},
		Speed:        Fixed(1.0),
		Pan:          Fixed(0.5),
		Amplitude:    Fixed(0.707),
		TimePosition: Fixed(0),
		Delay:        Fixed(0.1),
		Reverse:      ReverseNever,
		SampleRate:   44100,
		Window:       WindowUnset,
	}
}

// Settings is a validated, immutable grain configuration. A single
// *Settings may back any number of sequencers on any number of goroutines.
type Settings struct {
	duration     ParamRange
	speed        ParamRange
	pan          ParamRange
	amplitude    ParamRange
	timePosition ParamRange
	delay        ParamRange
	reverse      ReversePolicy
	sampleRate   int
	window       WindowShape
}

// NewSettings validates cfg and freezes it. Every returned error wraps
// ErrInvalidConfig and names the offending field.
func NewSettings(cfg Config) (*Settings, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Settings{
		duration:     cfg.Duration,
		speed:        cfg.Speed,
		pan:          cfg.Pan,
		amplitude:    cfg.Amplitude,
		timePosition: cfg.TimePosition,
		delay:        cfg.Delay,
		reverse:      cfg.Reverse,
		sampleRate:   cfg.SampleRate,
		window:       cfg.Window,
	}, nil
}

// Validate checks cfg without building Settings.
func (cfg Config) Validate() error {
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfig, cfg.SampleRate)
	}

	ranges := []struct {
		name string
		r    ParamRange
	}{
		{"duration", cfg.Duration},
		{"speed", cfg.Speed},
		{"pan", cfg.Pan},
		{"amplitude", cfg.Amplitude},
		{"time position", cfg.TimePosition},
		{"delay", cfg.Delay},
	}
	for _, nr := range ranges {
		if err := nr.r.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, nr.name, err)
		}
	}

	if cfg.Duration.Min <= 0 {
		return fmt.Errorf("%w: duration: min %v must be positive", ErrInvalidConfig, cfg.Duration.Min)
	}
	if n := durationSamples(cfg.Duration.Min, cfg.SampleRate); n < 2 {
		return fmt.Errorf("%w: duration: min %v s is %d samples at %d Hz, need at least 2",
			ErrInvalidConfig, cfg.Duration.Min, n, cfg.SampleRate)
	}
	if cfg.Duration.Max > MaxGrainSeconds || float64(cfg.Duration.Max)*float64(cfg.SampleRate) > maxSamples {
		return fmt.Errorf("%w: duration: max %v s at %d Hz exceeds %d s",
			ErrInvalidConfig, cfg.Duration.Max, cfg.SampleRate, MaxGrainSeconds)
	}
	// both renderers scale the longest grain by the speed in float32
	peak := max(float32(math.Abs(float64(cfg.Speed.Min))), float32(math.Abs(float64(cfg.Speed.Max))))
	if span := peak * float32(durationSamples(cfg.Duration.Max, cfg.SampleRate)); !finite(span) {
		return fmt.Errorf("%w: speed: %v overflows a %v s grain", ErrInvalidConfig, peak, cfg.Duration.Max)
	}
	if !cfg.Pan.within(0, 1) {
		return fmt.Errorf("%w: pan: [%v, %v] outside [0, 1]", ErrInvalidConfig, cfg.Pan.Min, cfg.Pan.Max)
	}
	if !cfg.TimePosition.within(0, 1) || (cfg.TimePosition.IsFixed() && cfg.TimePosition.Min == 1) {
		return fmt.Errorf("%w: time position: [%v, %v] outside [0, 1)",
			ErrInvalidConfig, cfg.TimePosition.Min, cfg.TimePosition.Max)
	}
	if cfg.Amplitude.Min < 0 {
		return fmt.Errorf("%w: amplitude: min %v is negative", ErrInvalidConfig, cfg.Amplitude.Min)
	}
	if cfg.Delay.Min < 0 {
		return fmt.Errorf("%w: delay: min %v is negative", ErrInvalidConfig, cfg.Delay.Min)
	}
	if cfg.Delay.Max > MaxDelaySeconds || float64(cfg.Delay.Max)*float64(cfg.SampleRate) > maxSamples {
		return fmt.Errorf("%w: delay: max %v s at %d Hz exceeds %d s",
			ErrInvalidConfig, cfg.Delay.Max, cfg.SampleRate, MaxDelaySeconds)
	}

	switch cfg.Reverse {
	case ReverseNever, ReverseAlways, ReverseRandom:
	default:
		return fmt.Errorf("%w: %v", ErrInvalidConfig, cfg.Reverse)
	}

	switch cfg.Window {
	case WindowUnset, Rectangular, Hanning:
	case Percussive:
		// the shortest grain must still fit attack and decay
		n := durationSamples(cfg.Duration.Min, cfg.SampleRate)
		if n <= PercussiveAttack(n)+1 {
			return fmt.Errorf("%w: duration: %d samples is too short for a percussive window",
				ErrInvalidConfig, n)
		}
	default:
		return fmt.Errorf("%w: %w: %v", ErrInvalidConfig, ErrUnknownShape, cfg.Window)
	}

	return nil
}

func (s *Settings) Duration() ParamRange     { return s.duration }
func (s *Settings) Speed() ParamRange        { return s.speed }
func (s *Settings) Pan() ParamRange          { return s.pan }
func (s *Settings) Amplitude() ParamRange    { return s.amplitude }
func (s *Settings) TimePosition() ParamRange { return s.timePosition }
func (s *Settings) Delay() ParamRange        { return s.delay }
func (s *Settings) Reverse() ReversePolicy   { return s.reverse }
func (s *Settings) SampleRate() int          { return s.sampleRate }
func (s *Settings) Window() WindowShape      { return s.window }

// Config returns a copy of the configuration s was built from.
func (s *Settings) Config() Config {
	return Config{
		Duration:     s.duration,
		Speed:        s.speed,
		Pan:          s.pan,
		Amplitude:    s.amplitude,
		TimePosition: s.timePosition,
		Delay:        s.delay,
		Reverse:      s.reverse,
		SampleRate:   s.sampleRate,
		Window:       s.window,
	}
}

// durationSamples converts seconds to a whole number of samples, truncating.
func durationSamples(seconds float32, sampleRate int) int {
	return int(seconds * float32(sampleRate))
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
