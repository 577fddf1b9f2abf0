// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package shading

import (
	"fmt"
	"log/slog"
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics/color"
)

// gradientSamples is the number of equal steps into which an axial or
// radial shading's domain is divided; its colour function is sampled at
// the gradientSamples+1 step boundaries to build a
// renderer-friendly stop list (PDF 2.0, 8.7.4.5.3/8.7.4.5.4 describe F as
// continuous; a renderer wants a discrete gradient ramp instead).
const gradientSamples = 10

// extendEpsilon nudges the offset of the gradient's original first/last
// stop when a synthetic background stop is inserted for Extend = false,
// so the two stops at t = 0 (or t = 1) do not coincide.
const extendEpsilon = 1e-6

// ColorStop is one entry of a [GradientIR] colour ramp.
type ColorStop struct {
	// Offset is the position of this stop along the gradient, in [0, 1].
	Offset float64

	// Color is the stop's colour as a "#RRGGBB" hex string, or the zero
	// value together with Transparent set to true.
	Color string

	// Transparent marks a synthetic stop inserted where a shading with
	// Extend = false has no Background: nothing is painted beyond it.
	Transparent bool
}

func hexColor(rgb [3]byte) string {
	return fmt.Sprintf("#%02X%02X%02X", rgb[0], rgb[1], rgb[2])
}

// backgroundStop builds the synthetic stop inserted when Extend is false:
// the shading's Background colour if it has one, otherwise transparent.
func backgroundStop(offset float64, background []float64, cs color.Space) (ColorStop, error) {
	if background == nil {
		return ColorStop{Offset: offset, Transparent: true}, nil
	}
	c, err := cs.NewColor(background)
	if err != nil {
		return ColorStop{}, err
	}
	r, g, b, _ := c.RGBA()
	return ColorStop{Offset: offset, Color: hexColor([3]byte{byte(r >> 8), byte(g >> 8), byte(b >> 8)})}, nil
}

// sampleGradientStops evaluates fn at gradientSamples+1 equally spaced
// points of [tMin, tMax] and converts each to an 8-bit sRGB colour stop,
// then inserts a synthetic stop at either end where Extend is false.
func sampleGradientStops(fn pdf.Function, cs color.Space, tMin, tMax float64, extendStart, extendEnd bool, background []float64) ([]ColorStop, error) {
	if !(tMin < tMax) {
		// An empty domain paints nothing; emit an empty ramp rather than
		// failing the whole shading.
		slog.Warn("shading: empty gradient domain", "tMin", tMin, "tMax", tMax)
		return nil, nil
	}

	convert := colorConverter(cs, fn)

	stops := make([]ColorStop, 0, gradientSamples+3)
	for i := 0; i <= gradientSamples; i++ {
		t := tMin + float64(i)*(tMax-tMin)/gradientSamples
		rgb, err := convert([]float64{t})
		if err != nil {
			return nil, err
		}
		stops = append(stops, ColorStop{Offset: float64(i) / gradientSamples, Color: hexColor(rgb)})
	}

	if !extendEnd {
		bg, err := backgroundStop(1, background, cs)
		if err != nil {
			return nil, err
		}
		stops[len(stops)-1].Offset = 1 - extendEpsilon
		stops = append(stops, bg)
	}
	if !extendStart {
		bg, err := backgroundStop(0, background, cs)
		if err != nil {
			return nil, err
		}
		stops[0].Offset = extendEpsilon
		stops = append([]ColorStop{bg}, stops...)
	}

	return stops, nil
}

// checkRadialCircles detects the radial configuration a renderer's
// two-circle gradient primitive cannot express: neither circle contains
// the other.  Circle i contains circle j when ri >= rj + d, with d the
// distance between the centres.  The shading is still emitted; downstream
// rendering is best-effort.
func checkRadialCircles(c1 vec.Vec2, r1 float64, c2 vec.Vec2, r2 float64) error {
	if r1 < 0 || r2 < 0 {
		return fmt.Errorf("shading: negative radial shading radius")
	}
	d := math.Hypot(c1.X-c2.X, c1.Y-c2.Y)
	if r1 < r2+d && r2 < r1+d {
		return fmt.Errorf("shading: unsupported radial gradient, neither circle contains the other")
	}
	return nil
}
