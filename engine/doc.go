// SPDX-License-Identifier: EPL-2.0

// Package engine schedules grains over time.
//
// A Scheduler pulls parameters from a grain.Sequencer, renders each grain
// from a sample buffer (ModeSampled) or an oscillator table
// (ModeSynthetic), and overlap-adds the results into a stereo audio.Source.
// Onsets are spaced by the drawn delay, counted in output frames:
//
//	seq := grain.NewSequencer(settings, nil)
//	sched, err := engine.NewScheduler(seq, engine.Options{
//	    Mode:   engine.ModeSampled,
//	    Buffer: samples,
//	    Frames: 10 * settings.SampleRate(),
//	})
//	n, err := audio.Copy(ctx, sink, sched, sched.BufSize(), 0)
//
// ModeLive regranulates an input stream frame by frame through a
// FrameGranulator; LiveSource wraps one around any audio.Source.
package engine
