// SPDX-License-Identifier: EPL-2.0

package grain

import "errors"

var (
	// ErrInvalidConfig is wrapped by every error NewSettings returns.
	ErrInvalidConfig = errors.New("invalid grain configuration")

	// ErrInvalidRange indicates a ParamRange with Min > Max or a non-finite bound.
	ErrInvalidRange = errors.New("invalid parameter range")

	// ErrLengthTooShort indicates a table, envelope or grain length that
	// leaves no room for the requested shape.
	ErrLengthTooShort = errors.New("length too short")

	// ErrBufferTooShort indicates a source buffer or oscillator table with
	// fewer than two samples.
	ErrBufferTooShort = errors.New("buffer must hold at least 2 samples")

	// ErrUnknownShape indicates a waveform or window shape that is not defined.
	ErrUnknownShape = errors.New("unknown shape")

	// ErrInvalidArgument indicates a non-finite or out of range render argument.
	ErrInvalidArgument = errors.New("invalid argument")
)
