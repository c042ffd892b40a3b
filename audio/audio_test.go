// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/ik5/granular/internal/audiotest"
)

type stubDecoder struct{ name string }

func (d *stubDecoder) Decode(r io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 1, 16), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wav := &stubDecoder{name: "wav"}
	ogg := &stubDecoder{name: "ogg"}

	registry.Register("wav", wav)
	registry.Register("OGG", ogg)

	if got, ok := registry.Get("wav"); !ok || got != wav {
		t.Errorf("Get(wav) = %v, %v", got, ok)
	}
	if got, ok := registry.Get("ogg"); !ok || got != ogg {
		t.Errorf("Get(ogg) = %v, %v; keys should ignore case", got, ok)
	}
	if _, ok := registry.Get("mp3"); ok {
		t.Error("Get(mp3) reported a decoder that was never registered")
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	first := &stubDecoder{name: "first"}
	second := &stubDecoder{name: "second"}

	registry.Register("wav", first)
	registry.Register("wav", second)

	if got, _ := registry.Get("wav"); got != second {
		t.Error("Register() did not replace the existing decoder")
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wav := &stubDecoder{name: "wav"}
	registry.Register("wav", wav)

	got, err := registry.ForPath("/tmp/samples/Voice.WAV")
	if err != nil {
		t.Fatalf("ForPath() error = %v", err)
	}
	if got != wav {
		t.Error("ForPath() returned the wrong decoder")
	}

	for _, path := range []string{"loop.flac", "no-extension", ""} {
		_, err := registry.ForPath(path)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ForPath(%q) error = %v, want ErrUnsupportedFormat", path, err)
		}

		var fe *FormatError
		if !errors.As(err, &fe) || fe.Path != path {
			t.Errorf("ForPath(%q) error = %#v, want *FormatError for the path", path, err)
		}
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &stubDecoder{name: "test"}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register("format", decoder)
		}()
		go func() {
			defer wg.Done()
			_, _ = registry.Get("format")
		}()
	}
	wg.Wait()

	if got, ok := registry.Get("format"); !ok || got != decoder {
		t.Error("decoder missing after concurrent registration")
	}
}

func TestFormatError_Message(t *testing.T) {
	t.Parallel()

	err := &FormatError{Path: "a.xyz", Format: "xyz"}
	want := `a.xyz: unsupported format "xyz"`

	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
