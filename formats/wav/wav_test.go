// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/granular/audio"
)

func sine(frames, channels int) []float32 {
	out := make([]float32, frames*channels)
	for f := range frames {
		v := float32(0.8 * math.Sin(float64(f)*0.07))
		for ch := range channels {
			out[f*channels+ch] = v / float32(ch+1)
		}
	}
	return out
}

func writeFile(t *testing.T, rate, channels int, chunks ...[]float32) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	sink, err := Create(path, rate, channels)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for _, c := range chunks {
		if err := sink.WriteSamples(c); err != nil {
			t.Fatalf("WriteSamples() error = %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	return path
}

func decodeAll(t *testing.T, r io.Reader) (audio.Source, []float32) {
	t.Helper()

	src, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	var out []float32
	buf := make([]float32, 300)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return src, out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestSink_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		frames   int
	}{
		{name: "mono", rate: 8000, channels: 1, frames: 1000},
		{name: "stereo", rate: 44100, channels: 2, frames: 2048},
		{name: "four channels", rate: 22050, channels: 4, frames: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := sine(tt.frames, tt.channels)
			half := (tt.frames / 2) * tt.channels
			path := writeFile(t, tt.rate, tt.channels, want[:half], want[half:])

			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			src, got := decodeAll(t, f)
			if src.SampleRate() != tt.rate || src.Channels() != tt.channels {
				t.Errorf("decoded %d Hz, %d ch, want %d Hz, %d ch",
					src.SampleRate(), src.Channels(), tt.rate, tt.channels)
			}

			if len(got) != len(want) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(want))
			}
			for i := range want {
				if math.Abs(float64(got[i]-want[i])) > 2.0/32768 {
					t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	path := writeFile(t, 16000, 1, sine(500, 1))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// MultiReader hides the Seek method of bytes.Reader
	_, got := decodeAll(t, io.MultiReader(bytes.NewReader(data)))
	if len(got) != 500 {
		t.Errorf("decoded %d samples, want 500", len(got))
	}
}

func TestSink_Clipping(t *testing.T) {
	t.Parallel()

	path := writeFile(t, 8000, 1, []float32{2, -2, 0.5})
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, got := decodeAll(t, f)
	want := []float32{32767.0 / 32768, -32767.0 / 32768, 16383.0 / 32768}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "text", data: []byte("definitely not a RIFF stream")},
		{name: "riff without wave", data: append([]byte("RIFF\x04\x00\x00\x00AVI "), make([]byte, 32)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSink_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Create(filepath.Join(t.TempDir(), "x.wav"), 0, 2); !errors.Is(err, audio.ErrInvalidRate) {
		t.Errorf("zero rate: error = %v, want audio.ErrInvalidRate", err)
	}
	if _, err := Create(filepath.Join(t.TempDir(), "missing", "x.wav"), 8000, 2); err == nil {
		t.Error("Create() in a missing directory: error = nil")
	}

	sink, err := Create(filepath.Join(t.TempDir(), "x.wav"), 8000, 2)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := sink.WriteSamples(make([]float32, 3)); !errors.Is(err, ErrPartialFrame) {
		t.Errorf("odd stereo buffer: error = %v, want ErrPartialFrame", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := sink.WriteSamples(make([]float32, 2)); !errors.Is(err, audio.ErrSinkClosed) {
		t.Errorf("write after Close: error = %v, want audio.ErrSinkClosed", err)
	}
}

func TestSink_CopyFromSource(t *testing.T) {
	t.Parallel()

	path := writeFile(t, 8000, 2, sine(10, 2))
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	src, err := Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	out := filepath.Join(t.TempDir(), "copy.wav")
	sink, err := Create(out, src.SampleRate(), src.Channels())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	n, err := audio.Copy(t.Context(), sink, src, 8, 0)
	if err != nil || n != 20 {
		t.Errorf("Copy() = %d, %v, want 20, nil", n, err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func BenchmarkSink_WriteSamples(b *testing.B) {
	sink, err := Create(filepath.Join(b.TempDir(), "bench.wav"), 44100, 2)
	if err != nil {
		b.Fatal(err)
	}
	defer sink.Close()

	buf := sine(4096, 2)

	b.ReportAllocs()

	for range b.N {
		if err := sink.WriteSamples(buf); err != nil {
			b.Fatal(err)
		}
	}
}
