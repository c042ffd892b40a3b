// SPDX-License-Identifier: EPL-2.0

// Package granular is a granular synthesis toolkit.
//
// A granulator cuts short windowed slices, grains, out of a source sound or
// an oscillator and scatters them in time and across the stereo field.
// Every grain draws its length, playback speed, pan, amplitude, start
// position, direction and the gap to the next grain from user-configured
// ranges.
//
// The work is split across packages:
//   - grain: waveform tables, envelopes, settings, the parameter sequencer
//     and the grain renderer
//   - engine: the overlap-add scheduler and the live frame granulator
//   - audio: sources, sinks, resampling and mono folding
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders,
//     plus a WAV writer
//   - output/oto: playback on the system audio device
//
// This package ties them together for the common case:
//
//	reg := granular.NewRegistry()
//	buffers, err := granular.LoadFiles(ctx, reg, 44100, "voice.wav")
//	if err != nil {
//	    return err
//	}
//
//	settings, err := grain.NewSettings(grain.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//
//	sched, err := engine.NewScheduler(grain.NewSequencer(settings, nil), engine.Options{
//	    Mode:   engine.ModeSampled,
//	    Buffer: buffers[0],
//	    Frames: 5 * 44100,
//	})
//	if err != nil {
//	    return err
//	}
//
//	pcm, err := granular.Render16(ctx, sched, 0, sched.BufSize())
//
// Samples are float32 in [-1, 1] throughout; Render16 and the WAV sink
// clip to 16-bit PCM on the way out.
package granular
