// SPDX-License-Identifier: EPL-2.0

package granular

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/granular/audio"
	"github.com/ik5/granular/formats/aiff"
	"github.com/ik5/granular/formats/mp3"
	"github.com/ik5/granular/formats/vorbis"
	"github.com/ik5/granular/formats/wav"
	"github.com/ik5/granular/utils"
)

// NewRegistry returns a registry holding every bundled decoder, keyed by
// the usual file extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

// LoadFile decodes path with the decoder registered for its extension and
// returns its content as a mono buffer at rate, ready for granulation.
func LoadFile(reg *audio.Registry, path string, rate int) ([]float32, error) {
	dec, err := reg.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	samples, err := audio.LoadMono(src, rate)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return samples, nil
}

// LoadFiles runs LoadFile for every path concurrently. The buffers come
// back in the order of paths; the first failure cancels the files that
// have not started yet.
func LoadFiles(ctx context.Context, reg *audio.Registry, rate int, paths ...string) ([][]float32, error) {
	out := make([][]float32, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			samples, err := LoadFile(reg, path, rate)
			if err != nil {
				return err
			}
			out[i] = samples

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// pcm16 collects pushed samples as 16-bit PCM.
type pcm16 struct {
	data []int16
}

func (p *pcm16) WriteSamples(src []float32) error {
	for _, s := range src {
		p.data = append(p.data, utils.Float32ToInt16(s))
	}
	return nil
}

func (p *pcm16) Close() error { return nil }

// Render16 reads src until it ends or limit samples have been produced
// and returns them as interleaved 16-bit PCM. A limit of zero reads to
// the end, so it must not be used with endless sources such as a
// Scheduler without a frame count.
func Render16(ctx context.Context, src audio.Source, limit, bufSize int) ([]int16, error) {
	sink := &pcm16{data: make([]int16, 0, max(limit, 0))}

	if _, err := audio.Copy(ctx, sink, src, bufSize, limit); err != nil {
		return sink.data, err
	}

	return sink.data, nil
}
