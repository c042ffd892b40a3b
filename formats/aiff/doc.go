// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// Any channel count and sample rate is accepted, at 8, 16, 24 or 32 bits
// per sample. Samples are big-endian on disk and come out as float32 in
// [-1, 1]:
//
//	f, _ := os.Open("loop.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	samples, err := audio.LoadMono(src, 44100)
package aiff
