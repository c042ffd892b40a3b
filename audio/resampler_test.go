// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/granular/internal/audiotest"
)

func drain(t testing.TB, src Source, bufSize int) []float32 {
	t.Helper()

	buf := make([]float32, bufSize)
	var out []float32

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

// steady returns the middle of out, away from the filter's edge
// transients.
func steady(out []float32) []float32 {
	return out[len(out)/10 : len(out)*9/10]
}

func mustResampler(t testing.TB, src Source, rate int) *Resampler {
	t.Helper()

	r, err := NewResampler(src, rate)
	if err != nil {
		t.Fatalf("NewResampler() error = %v", err)
	}
	return r
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := mustResampler(t, audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		frames   int
		want     int
	}{
		{name: "same rate", from: 8000, to: 8000, frames: 8000, want: 8000},
		{name: "downsample", from: 44100, to: 16000, frames: 44100, want: 16000},
		{name: "upsample", from: 8000, to: 48000, frames: 8000, want: 48000},
		{name: "cd to dat", from: 44100, to: 48000, frames: 4410, want: 4800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.from, 1, tt.frames, 220)
			got := len(drain(t, mustResampler(t, src, tt.to), 1024))

			if math.Abs(float64(got-tt.want)) > float64(tt.want)/100 {
				t.Errorf("got %d samples, want ≈%d", got, tt.want)
			}
		})
	}
}

func TestResampler_ConstantIsPreserved(t *testing.T) {
	t.Parallel()

	for _, to := range []int{8000, 16000, 96000} {
		src := audiotest.NewConstantSource(44100, 2, 8820, 0.25)
		out := drain(t, mustResampler(t, src, to), 512)

		for i, v := range steady(out) {
			if math.Abs(float64(v-0.25)) > 1e-3 {
				t.Fatalf("rate %d: steady[%d] = %v, want 0.25", to, i, v)
			}
		}
	}
}

func TestResampler_StereoChannelsStaySeparate(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 8820, func(sample, channel int) float32 {
		if channel == 0 {
			return -0.5
		}
		return 0.5
	})
	out := drain(t, mustResampler(t, src, 22050), 400)

	if len(out)%2 != 0 {
		t.Fatalf("odd output length %d", len(out))
	}

	frames := len(out) / 2
	for f := frames / 10; f < frames*9/10; f++ {
		l, r := out[2*f], out[2*f+1]
		if math.Abs(float64(l+0.5)) > 1e-3 || math.Abs(float64(r-0.5)) > 1e-3 {
			t.Fatalf("frame %d = (%v, %v), want (-0.5, 0.5)", f, l, r)
		}
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 100)
	out := drain(t, mustResampler(t, src, 8000), 64)

	if len(out) != 100 {
		t.Fatalf("len = %d, want 100", len(out))
	}
	for i, v := range out {
		if math.Abs(float64(v)-float64(i)/100) > 1e-6 {
			t.Fatalf("out[%d] = %v, want %v", i, v, float64(i)/100)
		}
	}
}

func TestResampler_Empty(t *testing.T) {
	t.Parallel()

	r := mustResampler(t, audiotest.NewSilentSource(44100, 1, 0), 8000)

	// drain fails the test unless the stream ends with io.EOF
	for i, v := range drain(t, r, 16) {
		if v != 0 {
			t.Fatalf("out[%d] = %v from an empty source", i, v)
		}
	}
}

func TestResampler_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewResampler(audiotest.NewSilentSource(44100, 1, 10), 0); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("target 0: error = %v, want ErrInvalidRate", err)
	}
	if _, err := NewResampler(audiotest.NewSilentSource(0, 1, 10), 8000); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("source 0: error = %v, want ErrInvalidRate", err)
	}

	r := mustResampler(t, audiotest.NewSilentSource(44100, 2, 100), 8000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}

	failing := mustResampler(t, failingSource{}, 16000)
	if _, err := failing.ReadSamples(make([]float32, 8)); !errors.Is(err, errBroken) {
		t.Errorf("failing source: error = %v, want errBroken", err)
	}

	stalled := mustResampler(t, stallingSource{}, 16000)
	if _, err := stalled.ReadSamples(make([]float32, 8)); !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("stalled source: error = %v, want io.ErrNoProgress", err)
	}
}

func TestResampler_CloseWrapsSourceError(t *testing.T) {
	t.Parallel()

	for _, to := range []int{44100, 16000} {
		src := audiotest.NewSilentSource(44100, 1, 10)
		src.FailClose(errBroken)

		if err := mustResampler(t, src, to).Close(); !errors.Is(err, errBroken) {
			t.Errorf("rate %d: Close() error = %v, want errBroken", to, err)
		}
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for range b.N {
		r, err := NewResampler(audiotest.NewSineSource(44100, 2, 44100, 440), 16000)
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
