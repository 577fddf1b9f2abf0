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

package color

import (
	"fmt"
	"math"

	"seehuhn.de/go/pdf"
)

// WhitePointD65 and WhitePointD50 are the CIE 1931 XYZ coordinates of the
// two reference illuminants used by the CIE-based PDF colour spaces.  D50
// is also the profile connection space used throughout this package.
var (
	WhitePointD65 = [3]float64{0.95047, 1.0, 1.08883}
	WhitePointD50 = [3]float64{0.96422, 1.0, 0.82521}
)

// bradfordMa is the Bradford cone-response matrix.
var bradfordMa = [3][3]float64{
	{0.8951, 0.2664, -0.1614},
	{-0.7502, 1.7135, 0.0367},
	{0.0389, -0.0685, 1.0296},
}

var bradfordMaInv = [3][3]float64{
	{0.9869929, -0.1470543, 0.1599627},
	{0.4323053, 0.5183603, 0.0492912},
	{-0.0085287, 0.0400428, 0.9684867},
}

// bradfordAdapt chromatically adapts the XYZ triple (X,Y,Z) from the "from"
// reference white to the "to" reference white, using the Bradford method.
func bradfordAdapt(X, Y, Z float64, from, to [3]float64) (float64, float64, float64) {
	if from == to {
		return X, Y, Z
	}
	srcRho, srcGamma, srcBeta := mulMatVec(bradfordMa, from[0], from[1], from[2])
	dstRho, dstGamma, dstBeta := mulMatVec(bradfordMa, to[0], to[1], to[2])

	cr, cg, cb := mulMatVec(bradfordMa, X, Y, Z)
	if srcRho != 0 {
		cr *= dstRho / srcRho
	}
	if srcGamma != 0 {
		cg *= dstGamma / srcGamma
	}
	if srcBeta != 0 {
		cb *= dstBeta / srcBeta
	}
	return mulMatVec(bradfordMaInv, cr, cg, cb)
}

// --- CalGray ---------------------------------------------------------------

// SpaceCalGray is a CIE-based calibrated grey colour space (PDF 2.0, 8.6.5.2).
type SpaceCalGray struct {
	WhitePoint [3]float64
	BlackPoint []float64 // optional, 3 values
	Gamma      float64
}

// CalGray creates a calibrated grey colour space.  blackPoint may be nil;
// gamma defaults to 1 when zero.
func CalGray(whitePoint [3]float64, blackPoint []float64, gamma float64) (*SpaceCalGray, error) {
	if whitePoint[1] <= 0 {
		return nil, fmt.Errorf("color: invalid CalGray white point")
	}
	if blackPoint != nil && len(blackPoint) != 3 {
		return nil, fmt.Errorf("color: CalGray black point must have 3 components")
	}
	if gamma == 0 {
		gamma = 1
	}
	return &SpaceCalGray{WhitePoint: whitePoint, BlackPoint: blackPoint, Gamma: gamma}, nil
}

func (s *SpaceCalGray) Family() pdf.Name    { return "CalGray" }
func (s *SpaceCalGray) NumComponents() int  { return 1 }
func (s *SpaceCalGray) defaultColor() Color { return s.New(0) }

func (s *SpaceCalGray) NewColor(values []float64) (Color, error) {
	if len(values) != 1 {
		return nil, fmt.Errorf("color: CalGray needs 1 component, got %d", len(values))
	}
	return s.New(values[0]), nil
}

// New returns the grey colour for the given component value (0 to 1).
func (s *SpaceCalGray) New(value float64) Color {
	return colorCalGray{Value: value, space: s}
}

// FromXYZ constructs the grey value whose CIE XYZ representation is
// (X,Y,Z), relative to the D50 white point.
func (s *SpaceCalGray) FromXYZ(X, Y, Z float64) Color {
	_, Yn, _ := bradfordAdapt(X, Y, Z, WhitePointD50, s.WhitePoint)
	ag := Yn / s.WhitePoint[1]
	if ag < 0 {
		ag = 0
	}
	value := math.Pow(ag, 1/s.Gamma)
	return s.New(value)
}

type colorCalGray struct {
	Value float64
	space *SpaceCalGray
}

func (c colorCalGray) ToXYZ() (X, Y, Z float64) {
	s := c.space
	ag := math.Pow(clip01(c.Value), s.Gamma)
	X = s.WhitePoint[0] * ag
	Y = s.WhitePoint[1] * ag
	Z = s.WhitePoint[2] * ag
	return bradfordAdapt(X, Y, Z, s.WhitePoint, WhitePointD50)
}

func (c colorCalGray) RGBA() (r, g, b, a uint32) { return genericRGBA(c) }

// --- CalRGB ------------------------------------------------------------

// SpaceCalRGB is a CIE-based calibrated RGB colour space (PDF 2.0, 8.6.5.3).
type SpaceCalRGB struct {
	WhitePoint [3]float64
	BlackPoint []float64 // optional, 3 values
	Gamma      [3]float64
	Matrix     [9]float64
}

// CalRGB creates a calibrated RGB colour space.  blackPoint, gamma and
// matrix may be nil, in which case they default to (0,0,0), (1,1,1), and
// the identity matrix respectively.
func CalRGB(whitePoint [3]float64, blackPoint, gamma, matrix []float64) (*SpaceCalRGB, error) {
	if whitePoint[1] <= 0 {
		return nil, fmt.Errorf("color: invalid CalRGB white point")
	}
	if blackPoint != nil && len(blackPoint) != 3 {
		return nil, fmt.Errorf("color: CalRGB black point must have 3 components")
	}
	if gamma != nil && len(gamma) != 3 {
		return nil, fmt.Errorf("color: CalRGB gamma must have 3 components")
	}
	if matrix != nil && len(matrix) != 9 {
		return nil, fmt.Errorf("color: CalRGB matrix must have 9 components")
	}

	s := &SpaceCalRGB{WhitePoint: whitePoint, BlackPoint: blackPoint}
	if gamma == nil {
		s.Gamma = [3]float64{1, 1, 1}
	} else {
		copy(s.Gamma[:], gamma)
	}
	if matrix == nil {
		s.Matrix = [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	} else {
		copy(s.Matrix[:], matrix)
	}
	return s, nil
}

func (s *SpaceCalRGB) Family() pdf.Name   { return "CalRGB" }
func (s *SpaceCalRGB) NumComponents() int { return 3 }

func (s *SpaceCalRGB) NewColor(values []float64) (Color, error) {
	if len(values) != 3 {
		return nil, fmt.Errorf("color: CalRGB needs 3 components, got %d", len(values))
	}
	return s.New(values[0], values[1], values[2]), nil
}

// New returns the colour for the given RGB component values (each 0 to 1,
// before the space's own gamma and matrix are applied).
func (s *SpaceCalRGB) New(r, g, b float64) Color {
	return colorCalRGB{Values: [3]float64{r, g, b}, space: s}
}

// FromXYZ constructs the RGB value whose CIE XYZ representation is
// (X,Y,Z), relative to the D50 white point.
func (s *SpaceCalRGB) FromXYZ(X, Y, Z float64) Color {
	Xn, Yn, Zn := bradfordAdapt(X, Y, Z, WhitePointD50, s.WhitePoint)
	m := s.Matrix
	det := m[0]*(m[4]*m[8]-m[5]*m[7]) - m[1]*(m[3]*m[8]-m[5]*m[6]) + m[2]*(m[3]*m[7]-m[4]*m[6])
	var A, B, C float64
	if det != 0 {
		inv := [9]float64{
			(m[4]*m[8] - m[5]*m[7]) / det, (m[2]*m[7] - m[1]*m[8]) / det, (m[1]*m[5] - m[2]*m[4]) / det,
			(m[5]*m[6] - m[3]*m[8]) / det, (m[0]*m[8] - m[2]*m[6]) / det, (m[2]*m[3] - m[0]*m[5]) / det,
			(m[3]*m[7] - m[4]*m[6]) / det, (m[1]*m[6] - m[0]*m[7]) / det, (m[0]*m[4] - m[1]*m[3]) / det,
		}
		A = inv[0]*Xn + inv[1]*Yn + inv[2]*Zn
		B = inv[3]*Xn + inv[4]*Yn + inv[5]*Zn
		C = inv[6]*Xn + inv[7]*Yn + inv[8]*Zn
	}
	r := math.Pow(clampNonNeg(A), 1/nonZero(s.Gamma[0]))
	g := math.Pow(clampNonNeg(B), 1/nonZero(s.Gamma[1]))
	b := math.Pow(clampNonNeg(C), 1/nonZero(s.Gamma[2]))
	return s.New(r, g, b)
}

func clampNonNeg(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

func nonZero(x float64) float64 {
	if x == 0 {
		return 1
	}
	return x
}

type colorCalRGB struct {
	Values [3]float64
	space  *SpaceCalRGB
}

func (c colorCalRGB) ToXYZ() (X, Y, Z float64) {
	s := c.space
	a := math.Pow(clip01(c.Values[0]), s.Gamma[0])
	b := math.Pow(clip01(c.Values[1]), s.Gamma[1])
	cc := math.Pow(clip01(c.Values[2]), s.Gamma[2])
	m := s.Matrix
	X = m[0]*a + m[3]*b + m[6]*cc
	Y = m[1]*a + m[4]*b + m[7]*cc
	Z = m[2]*a + m[5]*b + m[8]*cc
	return bradfordAdapt(X, Y, Z, s.WhitePoint, WhitePointD50)
}

func (c colorCalRGB) RGBA() (r, g, b, a uint32) { return genericRGBA(c) }

// --- Lab -----------------------------------------------------------------

// SpaceLab is a CIE-based L*a*b* colour space (PDF 2.0, 8.6.5.4).
type SpaceLab struct {
	WhitePoint [3]float64
	BlackPoint []float64 // optional, 3 values
	Range      [4]float64
}

// Lab creates an L*a*b* colour space.  blackPoint and rng may be nil;
// rng defaults to [-100, 100, -100, 100].
func Lab(whitePoint [3]float64, blackPoint, rng []float64) (*SpaceLab, error) {
	if whitePoint[1] <= 0 {
		return nil, fmt.Errorf("color: invalid Lab white point")
	}
	if blackPoint != nil && len(blackPoint) != 3 {
		return nil, fmt.Errorf("color: Lab black point must have 3 components")
	}
	if rng != nil && len(rng) != 4 {
		return nil, fmt.Errorf("color: Lab range must have 4 components")
	}
	s := &SpaceLab{WhitePoint: whitePoint, BlackPoint: blackPoint}
	if rng == nil {
		s.Range = [4]float64{-100, 100, -100, 100}
	} else {
		copy(s.Range[:], rng)
	}
	return s, nil
}

func (s *SpaceLab) Family() pdf.Name   { return "Lab" }
func (s *SpaceLab) NumComponents() int { return 3 }

func (s *SpaceLab) NewColor(values []float64) (Color, error) {
	if len(values) != 3 {
		return nil, fmt.Errorf("color: Lab needs 3 components, got %d", len(values))
	}
	return s.New(values[0], values[1], values[2])
}

// New returns the colour with the given L*, a* and b* values.  L* must lie
// in [0, 100]; a* and b* are clipped to the space's Range.
func (s *SpaceLab) New(l, a, b float64) (Color, error) {
	if l < 0 || l > 100 {
		return nil, fmt.Errorf("color: Lab L* out of range: %g", l)
	}
	a = clipTo(a, s.Range[0], s.Range[1])
	b = clipTo(b, s.Range[2], s.Range[3])
	return colorLab{Values: [3]float64{l, a, b}, space: s}, nil
}

func clipTo(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

const labDelta = 6.0 / 29.0

func labFInv(t float64) float64 {
	if t > labDelta {
		return t * t * t
	}
	return 3 * labDelta * labDelta * (t - 4.0/29.0)
}

func labF(t float64) float64 {
	if t > labDelta*labDelta*labDelta {
		return math.Cbrt(t)
	}
	return t/(3*labDelta*labDelta) + 4.0/29.0
}

// FromXYZ constructs the Lab value whose CIE XYZ representation is
// (X,Y,Z), relative to the D50 white point.
func (s *SpaceLab) FromXYZ(X, Y, Z float64) Color {
	Xn, Yn, Zn := bradfordAdapt(X, Y, Z, WhitePointD50, s.WhitePoint)
	fx := labF(Xn / s.WhitePoint[0])
	fy := labF(Yn / s.WhitePoint[1])
	fz := labF(Zn / s.WhitePoint[2])
	l := 116*fy - 16
	a := 500 * (fx - fy)
	b := 200 * (fy - fz)
	return colorLab{Values: [3]float64{l, a, b}, space: s}
}

type colorLab struct {
	Values [3]float64
	space  *SpaceLab
}

func (c colorLab) ToXYZ() (X, Y, Z float64) {
	s := c.space
	l, a, b := c.Values[0], c.Values[1], c.Values[2]
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200
	X = s.WhitePoint[0] * labFInv(fx)
	Y = s.WhitePoint[1] * labFInv(fy)
	Z = s.WhitePoint[2] * labFInv(fz)
	return bradfordAdapt(X, Y, Z, s.WhitePoint, WhitePointD50)
}

func (c colorLab) RGBA() (r, g, b, a uint32) { return genericRGBA(c) }
