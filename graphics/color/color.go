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

// Package color implements the PDF colour spaces (PDF 2.0, 8.6) and the
// colours within them.  This is the collaborator the shading package uses
// to turn decoded component tuples into displayable sRGB triples.
package color

import "math"

// Color represents a single colour value in some PDF colour space.
//
// Every Color can report its position in CIE 1931 XYZ space (relative to
// the D50 reference white used as the PDF profile connection space) and can
// convert itself to 16-bit sRGB, the same contract as [image/color.Color].
type Color interface {
	// RGBA returns alpha-premultiplied sRGB components in the range
	// [0, 0xffff], together with the alpha value.  Colours defined by this
	// package are always fully opaque.
	RGBA() (r, g, b, a uint32)

	// ToXYZ converts the colour to CIE 1931 XYZ coordinates relative to
	// the D50 white point.
	ToXYZ() (X, Y, Z float64)
}

// genericRGBA implements RGBA() for colour types that only know how to
// compute CIE XYZ coordinates.
func genericRGBA(c Color) (r, g, b, a uint32) {
	X, Y, Z := c.ToXYZ()
	rf, gf, bf := xyzToSRGB(X, Y, Z)
	return toUint32(rf), toUint32(gf), toUint32(bf), 0xffff
}

// DeviceGray is a colour in the PDF DeviceGray colour space (PDF 2.0,
// 8.6.5.2): a single value from 0 (black) to 1 (white).
type DeviceGray float64

// Black and White are convenience DeviceGray colours.
var (
	Black Color = DeviceGray(0)
	White Color = DeviceGray(1)
)

func (c DeviceGray) RGBA() (r, g, b, a uint32) {
	v := toUint32(clip01(float64(c)))
	return v, v, v, 0xffff
}

func (c DeviceGray) ToXYZ() (X, Y, Z float64) {
	return srgbToXYZD50(float64(c), float64(c), float64(c))
}

// DeviceRGB is a colour in the PDF DeviceRGB colour space (PDF 2.0, 8.6.5.3).
type DeviceRGB struct {
	R, G, B float64
}

func (c DeviceRGB) RGBA() (r, g, b, a uint32) {
	return toUint32(clip01(c.R)), toUint32(clip01(c.G)), toUint32(clip01(c.B)), 0xffff
}

func (c DeviceRGB) ToXYZ() (X, Y, Z float64) {
	return srgbToXYZD50(c.R, c.G, c.B)
}

// SRGB creates a colour from sRGB-encoded components; this is an alias of
// [DeviceRGB], since DeviceRGB values are, in this implementation, treated
// as already being sRGB-encoded.
func SRGB(r, g, b float64) Color {
	return DeviceRGB{R: r, G: g, B: b}
}

// DeviceCMYK is a colour in the PDF DeviceCMYK colour space (PDF 2.0,
// 8.6.5.4).
type DeviceCMYK struct {
	C, M, Y, K float64
}

// toRGB converts the naive way: R = (1-C)*(1-K), and similarly for G, B.
func (c DeviceCMYK) toRGB() (r, g, b float64) {
	k := clip01(c.K)
	r = (1 - clip01(c.C)) * (1 - k)
	g = (1 - clip01(c.M)) * (1 - k)
	b = (1 - clip01(c.Y)) * (1 - k)
	return r, g, b
}

func (c DeviceCMYK) RGBA() (r, g, b, a uint32) {
	rf, gf, bf := c.toRGB()
	return toUint32(rf), toUint32(gf), toUint32(bf), 0xffff
}

func (c DeviceCMYK) ToXYZ() (X, Y, Z float64) {
	r, g, b := c.toRGB()
	return srgbToXYZD50(r, g, b)
}

func clip01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func toUint32(x float64) uint32 {
	x = clip01(x)
	return uint32(math.Round(x * 65535))
}

// --- sRGB <-> linear <-> CIE XYZ ------------------------------------------

// srgbEncode applies the sRGB opto-electronic transfer function to a
// linear-light value.
func srgbEncode(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

// srgbDecode applies the sRGB electro-optical transfer function, turning a
// gamma-encoded value back into linear light.
func srgbDecode(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// linearSRGBToXYZD65 is the standard matrix mapping linear sRGB primaries
// to CIE XYZ relative to the D65 white point.
var linearSRGBToXYZD65 = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

// xyzD65ToLinearSRGB is the inverse of linearSRGBToXYZD65.
var xyzD65ToLinearSRGB = [3][3]float64{
	{3.2404542, -1.5371385, -0.4985314},
	{-0.9692660, 1.8760108, 0.0415560},
	{0.0556434, -0.2040259, 1.0572252},
}

func mulMatVec(m [3][3]float64, x, y, z float64) (float64, float64, float64) {
	return m[0][0]*x + m[0][1]*y + m[0][2]*z,
		m[1][0]*x + m[1][1]*y + m[1][2]*z,
		m[2][0]*x + m[2][1]*y + m[2][2]*z
}

// srgbToXYZD50 converts gamma-encoded sRGB components to CIE XYZ relative
// to the D50 white point, the profile connection space used throughout
// this package.
func srgbToXYZD50(r, g, b float64) (X, Y, Z float64) {
	lr, lg, lb := srgbDecode(clip01(r)), srgbDecode(clip01(g)), srgbDecode(clip01(b))
	X, Y, Z = mulMatVec(linearSRGBToXYZD65, lr, lg, lb)
	return bradfordAdapt(X, Y, Z, WhitePointD65, WhitePointD50)
}

// xyzToSRGB converts CIE XYZ coordinates (relative to D50) to gamma-encoded
// sRGB components.  Out-of-gamut values are clipped.
func xyzToSRGB(X, Y, Z float64) (r, g, b float64) {
	X, Y, Z = bradfordAdapt(X, Y, Z, WhitePointD50, WhitePointD65)
	lr, lg, lb := mulMatVec(xyzD65ToLinearSRGB, X, Y, Z)
	return srgbEncode(clip01(lr)), srgbEncode(clip01(lg)), srgbEncode(clip01(lb))
}
