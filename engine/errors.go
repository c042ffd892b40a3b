// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	// ErrFrameSize indicates a live frame whose length differs from the
	// configured frame size, or a frame size below 2.
	ErrFrameSize = errors.New("frame size mismatch")

	// ErrNoSource indicates a mode whose grain source (buffer or oscillator
	// table) was not supplied.
	ErrNoSource = errors.New("no grain source for mode")

	// ErrTooManyVoices indicates a voice limit outside [1, MaxVoicesLimit].
	ErrTooManyVoices = errors.New("invalid voice limit")

	// ErrUnknownMode indicates a Mode value that is not defined.
	ErrUnknownMode = errors.New("unknown mode")
)
