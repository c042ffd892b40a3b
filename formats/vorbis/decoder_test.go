// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"
)

// fakeOgg serves interleaved values the way oggvorbis.Reader does: whole
// frames only, io.EOF once drained.
type fakeOgg struct {
	channels int
	data     []float32
	err      error
}

func (f *fakeOgg) Read(p []float32) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(f.data) == 0 {
		return 0, io.EOF
	}

	n := copy(p[:len(p)-len(p)%f.channels], f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3, 0.4, -0.4}
	src := &source{dec: &fakeOgg{channels: 2, data: slices.Clone(data)}, sampleRate: 48000, channels: 2}

	var got []float32
	// 3 is trimmed to a single stereo frame
	buf := make([]float32, 3)
	for {
		n, err := src.ReadSamples(buf)
		if n%2 != 0 {
			t.Fatalf("ReadSamples() returned %d values, not whole frames", n)
		}
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if !slices.Equal(got, data) {
		t.Errorf("got %v, want %v", got, data)
	}
}

func TestSource_ShortDestination(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeOgg{channels: 2, data: []float32{1, 1}}, sampleRate: 48000, channels: 2}

	if n, err := src.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(1) = %d, %v, want 0, nil", n, err)
	}
}

func TestSource_Error(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeOgg{channels: 1, err: io.ErrUnexpectedEOF}, sampleRate: 8000, channels: 1}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("error = %v, want wrapped io.ErrUnexpectedEOF", err)
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeOgg{channels: 2}, sampleRate: 44100, channels: 2}

	if src.SampleRate() != 44100 || src.Channels() != 2 || src.BufSize() != 8192 {
		t.Errorf("metadata = %d Hz, %d ch, %d buf", src.SampleRate(), src.Channels(), src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"empty": nil,
		"text":  []byte("OggS is not enough for a header"),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}
