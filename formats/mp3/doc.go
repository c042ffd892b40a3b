// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with
// github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo at the file's sample rate,
// even for mono files, so granulating an MP3 usually goes through
// audio.LoadMono:
//
//	f, _ := os.Open("field-recording.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	samples, err := audio.LoadMono(src, 44100)
package mp3
