// SPDX-License-Identifier: EPL-2.0

// Package oto plays audio through the system output device using
// github.com/ebitengine/oto/v3.
//
// A Player is an audio.Sink: grain streams are pushed into it with
// audio.Copy, and oto pulls them out on its own goroutine through a
// bounded queue.
//
//	player, err := oto.New(oto.Options{SampleRate: 44100, Channels: 2})
//	if err != nil {
//	    return err
//	}
//	defer player.Close()
//
//	_, err = audio.Copy(ctx, player, scheduler, scheduler.BufSize(), 0)
package oto
