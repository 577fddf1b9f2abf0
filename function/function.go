// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package function implements the PDF numeric function types (sampled,
// exponential, stitching and PostScript calculator), used by shadings,
// separation and DeviceN color spaces, and soft masks to map a vector of
// input values to a vector of output values.
package function

import "math"

// isRange reports whether [x, y] is a valid PDF range, i.e. x <= y and both
// bounds are finite.
func isRange(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return false
	}
	return x <= y
}

// clip restricts x to the interval [lo, hi].
func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// interpolate maps x linearly from [xMin, xMax] to [yMin, yMax], per the
// "interpolate" function of the PDF specification (7.10.5).
func interpolate(x, xMin, xMax, yMin, yMax float64) float64 {
	if xMax == xMin {
		return yMin
	}
	return yMin + (x-xMin)*(yMax-yMin)/(xMax-xMin)
}

// clipToDomain clips each input value against the function's declared
// Domain, as required before evaluating any PDF function.
func clipToDomain(domain []float64, in []float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		if 2*i+1 < len(domain) {
			out[i] = clip(x, domain[2*i], domain[2*i+1])
		} else {
			out[i] = x
		}
	}
	return out
}

// isFinite reports whether x is neither NaN nor infinite.
func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// clipToRange clips each output value against the function's declared
// Range, if one was given.
func clipToRange(rng []float64, out []float64) {
	if rng == nil {
		return
	}
	for i := range out {
		if 2*i+1 < len(rng) {
			out[i] = clip(out[i], rng[2*i], rng[2*i+1])
		}
	}
}
