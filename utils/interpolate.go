// SPDX-License-Identifier: EPL-2.0

package utils

// LinearInterpolate blends y0 and y1 by frac, where frac=0 yields y0 and
// frac=1 yields y1.
func LinearInterpolate(y0, y1, frac float32) float32 {
	return (1-frac)*y0 + frac*y1
}
