// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidRate indicates a non-positive sample rate.
	ErrInvalidRate = errors.New("sample rate must be positive")

	// ErrEmptySource indicates a source that ended before yielding enough
	// samples to granulate.
	ErrEmptySource = errors.New("source holds fewer than 2 samples")

	// ErrUnsupportedFormat is matched by every FormatError.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrSinkClosed is returned when writing to a closed sink.
	ErrSinkClosed = errors.New("sink is closed")
)

// FormatError reports a path whose extension has no registered decoder.
type FormatError struct {
	Path   string
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v %q", e.Path, ErrUnsupportedFormat, e.Format)
}

func (e *FormatError) Unwrap() error { return ErrUnsupportedFormat }
