// SPDX-License-Identifier: EPL-2.0

// Package grain implements the building blocks of granular synthesis.
//
// A grain is a short, enveloped snippet of sound. This package generates the
// tables grains are made from, draws randomized per-grain parameters, and
// renders individual grains.
//
// # Tables and Envelopes
//
// Table builds an oscillator lookup table and Envelope builds an amplitude
// window:
//
//	table, _ := grain.Table(grain.Sine, grain.DefaultTableLength)
//	env, _ := grain.Envelope(grain.Hanning, 1024)
//
// Both are pure functions of their arguments and reject lengths below 2.
//
// # Settings and Sequencers
//
// A Config describes the ranges every grain parameter is drawn from.
// NewSettings validates it and returns an immutable *Settings that can be
// shared by any number of sequencers:
//
//	cfg := grain.DefaultConfig()
//	cfg.Duration = grain.ParamRange{Min: 0.01, Max: 0.7}
//	cfg.Reverse = grain.ReverseRandom
//	cfg.Window = grain.Hanning
//
//	settings, err := grain.NewSettings(cfg)
//	if err != nil {
//	    // errors.Is(err, grain.ErrInvalidConfig)
//	}
//
//	seq := grain.NewSequencer(settings, nil)
//	p := seq.Params()  // current draw
//	p = seq.Advance()  // next draw
//
// A Sequencer serializes its own state, so one goroutine may call Advance
// while another reads Params.
//
// # Rendering
//
// A Grain is built from a parameter snapshot and renders from a sampled
// buffer or from an oscillator table:
//
//	g, _ := grain.FromParams(p)
//	stereo, _ := g.RenderFromBuffer(samples, p.TimePosition, p.Speed, p.Reverse)
//	mono, _ := g.RenderSynthetic(table, p.Speed, settings.SampleRate())
//
// RenderFromBuffer returns interleaved stereo (L,R,L,R,...) of 2*g.Len()
// samples. RenderSynthetic returns g.Len() mono samples; Interleave pans
// them into stereo.
package grain
