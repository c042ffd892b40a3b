// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// The Decoder accepts integer PCM at 8, 16, 24 or 32 bits and any channel
// count, returning an audio.Source of float32 samples:
//
//	f, _ := os.Open("voice.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// The Sink is the other direction: an audio.Sink that encodes everything
// pushed into it as 16-bit PCM. Rendered grain streams are usually written
// with Create and audio.Copy:
//
//	sink, err := wav.Create("out.wav", 44100, 2)
//	if err != nil {
//	    return err
//	}
//	defer sink.Close()
//
//	_, err = audio.Copy(ctx, sink, scheduler, 4096, 10*44100*2)
//
// Samples outside [-1, 1] are clipped on write.
package wav
