// SPDX-License-Identifier: EPL-2.0

package oto

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebioto "github.com/ebitengine/oto/v3"

	"github.com/ik5/granular/audio"
)

const (
	// DefaultQueue is the queue length in frames.
	DefaultQueue = 8192
	// DefaultDeviceBuffer is the latency requested from the driver.
	DefaultDeviceBuffer = 40 * time.Millisecond
)

// Options configures New.
type Options struct {
	SampleRate int
	Channels   int
	// Queue is how many frames WriteSamples may run ahead of the device.
	// Zero selects DefaultQueue.
	Queue int
	// DeviceBuffer is passed to oto as the driver buffer size. Zero selects
	// DefaultDeviceBuffer.
	DeviceBuffer time.Duration
}

// Player is an audio.Sink that plays pushed samples on the default output
// device. WriteSamples blocks while the queue is full, which paces the
// producer at the device's rate. When the producer falls behind, the
// device hears silence and Underruns counts the missing samples.
type Player struct {
	channels int

	mtx       sync.Mutex
	cond      *sync.Cond
	queue     ring
	closed    bool
	underruns int
	scratch   []float32

	ctx    *ebioto.Context
	player *ebioto.Player
}

func newPlayer(channels, frames int) *Player {
	p := &Player{
		channels: channels,
		queue:    newRing(channels * frames),
	}
	p.cond = sync.NewCond(&p.mtx)

	return p
}

// New opens the output device and starts playback. oto allows one context
// per process, so at most one Player can be live at a time.
func New(opts Options) (*Player, error) {
	if opts.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidOptions, opts.SampleRate)
	}
	if opts.Channels < 1 || opts.Channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidOptions, opts.Channels)
	}
	if opts.Queue < 0 || opts.DeviceBuffer < 0 {
		return nil, fmt.Errorf("%w: negative buffer size", ErrInvalidOptions)
	}
	if opts.Queue == 0 {
		opts.Queue = DefaultQueue
	}
	if opts.DeviceBuffer == 0 {
		opts.DeviceBuffer = DefaultDeviceBuffer
	}

	ctx, ready, err := ebioto.NewContext(&ebioto.NewContextOptions{
		SampleRate:   opts.SampleRate,
		ChannelCount: opts.Channels,
		Format:       ebioto.FormatFloat32LE,
		BufferSize:   opts.DeviceBuffer,
	})
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	p := newPlayer(opts.Channels, opts.Queue)
	p.ctx = ctx
	p.player = ctx.NewPlayer(p)
	p.player.Play()

	return p, nil
}

// WriteSamples queues src, waiting for room as needed.
func (p *Player) WriteSamples(src []float32) error {
	if len(src)%p.channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrPartialFrame, len(src), p.channels)
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()

	for len(src) > 0 {
		if p.closed {
			return audio.ErrSinkClosed
		}

		n := p.queue.write(src)
		src = src[n:]

		if len(src) > 0 {
			p.cond.Wait()
		}
	}

	return nil
}

// Read implements io.Reader for oto, encoding queued samples as float32
// little endian. Missing samples are played as silence until the player
// is closed and drained, after which Read returns io.EOF.
func (p *Player) Read(buf []byte) (int, error) {
	want := len(buf) / 4

	p.mtx.Lock()
	if p.closed && p.queue.size == 0 {
		p.mtx.Unlock()
		return 0, io.EOF
	}

	if cap(p.scratch) < want {
		p.scratch = make([]float32, want)
	}
	samples := p.scratch[:want]
	got := p.queue.read(samples)
	if !p.closed {
		p.underruns += want - got
	}
	p.cond.Broadcast()
	p.mtx.Unlock()

	clear(samples[got:])
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(s))
	}

	return want * 4, nil
}

// Underruns returns how many samples were replaced by silence.
func (p *Player) Underruns() int {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.underruns
}

// Buffered returns the number of queued samples.
func (p *Player) Buffered() int {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.queue.size
}

// Close stops accepting samples, lets the device play what is queued and
// releases it.
func (p *Player) Close() error {
	p.mtx.Lock()
	if p.closed {
		p.mtx.Unlock()
		return nil
	}
	p.closed = true
	p.cond.Broadcast()

	if p.player != nil {
		for p.queue.size > 0 {
			p.cond.Wait()
		}
	}
	p.mtx.Unlock()

	if p.player == nil {
		return nil
	}

	// let the driver buffer play out
	for p.player.IsPlaying() && p.player.BufferedSize() > 0 {
		time.Sleep(5 * time.Millisecond)
	}

	return errors.Join(p.player.Close(), p.ctx.Err())
}
