// SPDX-License-Identifier: EPL-2.0

package oto

import "errors"

var (
	ErrInvalidOptions = errors.New("invalid player options")
	ErrPartialFrame   = errors.New("buffer does not hold whole frames")
)
