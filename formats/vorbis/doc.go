// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with
// github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes straight to float32, so samples pass through without
// conversion. Reads are trimmed to whole frames; a destination shorter
// than one frame reads nothing.
//
//	f, _ := os.Open("pad.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
package vorbis
