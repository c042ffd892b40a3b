// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample plumbing around the grain engine.
//
// This package contains:
//   - Source, a pull stream of interleaved float32 samples
//   - Sink, a push consumer of interleaved float32 buffers
//   - Resampler for sample rate conversion
//   - MonoMixer for folding channels to mono
//   - LoadMono, which turns any Source into a mono buffer for granulation
//   - Copy, which pumps a Source into a Sink
//   - a decoder Registry
//
// # Sources and Sinks
//
// Decoders and the grain scheduler produce audio as a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Output devices and files consume it as a Sink:
//
//	type Sink interface {
//	    WriteSamples(src []float32) error
//	    Close() error
//	}
//
// Copy connects the two, stopping at the end of the source, after a sample
// limit, or when the context is cancelled:
//
//	n, err := audio.Copy(ctx, sink, scheduler, 4096, 10*44100*2)
//
// # Loading Buffers
//
// Granulation reads from an in-memory mono buffer. LoadMono resamples and
// folds a decoded file in one call:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	samples, err := audio.LoadMono(src, 44100)
//
// # Resampling
//
// The Resampler changes the sample rate with the polyphase FIR engines of
// github.com/tphakala/go-audio-resampler, one per channel:
//
//	resampler, err := audio.NewResampler(source, 16000)
//	buf := make([]float32, 4096)
//	n, err := resampler.ReadSamples(buf)
//
// # Format Registry
//
// The registry maps format names, and file extensions, to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("voice.WAV")
//
// # Sample Format
//
// Samples are float32 in the range [-1.0, 1.0], interleaved by frame.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
