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
	"reflect"

	"seehuhn.de/go/pdf"
)

// Space represents a PDF colour space (PDF 2.0, 8.6).
type Space interface {
	pdf.Embedder

	// Family returns the name of the colour space family, e.g. "DeviceRGB"
	// or "ICCBased".
	Family() pdf.Name

	// NumComponents returns the number of colour components used by
	// colours in this space.
	NumComponents() int

	// NewColor constructs a colour from its raw component values.
	NewColor(values []float64) (Color, error)
}

func floatsToArray(vals []float64) pdf.Array {
	arr := make(pdf.Array, len(vals))
	for i, v := range vals {
		arr[i] = pdf.Real(v)
	}
	return arr
}

// --- device colour spaces ---------------------------------------------

type spaceDeviceGray struct{}

func (spaceDeviceGray) Family() pdf.Name   { return "DeviceGray" }
func (spaceDeviceGray) NumComponents() int { return 1 }
func (spaceDeviceGray) NewColor(values []float64) (Color, error) {
	if len(values) != 1 {
		return nil, fmt.Errorf("color: DeviceGray needs 1 component, got %d", len(values))
	}
	return DeviceGray(values[0]), nil
}
func (spaceDeviceGray) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	return pdf.Name("DeviceGray"), pdf.Unused{}, nil
}

type spaceDeviceRGB struct{}

func (spaceDeviceRGB) Family() pdf.Name   { return "DeviceRGB" }
func (spaceDeviceRGB) NumComponents() int { return 3 }
func (spaceDeviceRGB) NewColor(values []float64) (Color, error) {
	if len(values) != 3 {
		return nil, fmt.Errorf("color: DeviceRGB needs 3 components, got %d", len(values))
	}
	return DeviceRGB{R: values[0], G: values[1], B: values[2]}, nil
}
func (spaceDeviceRGB) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	return pdf.Name("DeviceRGB"), pdf.Unused{}, nil
}

type spaceDeviceCMYK struct{}

func (spaceDeviceCMYK) Family() pdf.Name   { return "DeviceCMYK" }
func (spaceDeviceCMYK) NumComponents() int { return 4 }
func (spaceDeviceCMYK) NewColor(values []float64) (Color, error) {
	if len(values) != 4 {
		return nil, fmt.Errorf("color: DeviceCMYK needs 4 components, got %d", len(values))
	}
	return DeviceCMYK{C: values[0], M: values[1], Y: values[2], K: values[3]}, nil
}
func (spaceDeviceCMYK) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	return pdf.Name("DeviceCMYK"), pdf.Unused{}, nil
}

// SpaceDeviceGray, SpaceDeviceRGB and SpaceDeviceCMYK are the three PDF
// device colour spaces.
var (
	SpaceDeviceGray Space = spaceDeviceGray{}
	SpaceDeviceRGB  Space = spaceDeviceRGB{}
	SpaceDeviceCMYK Space = spaceDeviceCMYK{}
)

// Embed methods for the CIE-based spaces defined in cie.go.

func (s *SpaceCalGray) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	dict := pdf.Dict{
		"WhitePoint": floatsToArray(s.WhitePoint[:]),
	}
	if s.BlackPoint != nil {
		dict["BlackPoint"] = floatsToArray(s.BlackPoint)
	}
	if s.Gamma != 1 {
		dict["Gamma"] = pdf.Real(s.Gamma)
	}
	arr := pdf.Array{pdf.Name("CalGray"), dict}
	return arr, pdf.Unused{}, nil
}

func (s *SpaceCalRGB) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	dict := pdf.Dict{
		"WhitePoint": floatsToArray(s.WhitePoint[:]),
	}
	if s.BlackPoint != nil {
		dict["BlackPoint"] = floatsToArray(s.BlackPoint)
	}
	if s.Gamma != [3]float64{1, 1, 1} {
		dict["Gamma"] = floatsToArray(s.Gamma[:])
	}
	if s.Matrix != [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1} {
		dict["Matrix"] = floatsToArray(s.Matrix[:])
	}
	arr := pdf.Array{pdf.Name("CalRGB"), dict}
	return arr, pdf.Unused{}, nil
}

func (s *SpaceLab) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	dict := pdf.Dict{
		"WhitePoint": floatsToArray(s.WhitePoint[:]),
	}
	if s.BlackPoint != nil {
		dict["BlackPoint"] = floatsToArray(s.BlackPoint)
	}
	if s.Range != [4]float64{-100, 100, -100, 100} {
		dict["Range"] = floatsToArray(s.Range[:])
	}
	arr := pdf.Array{pdf.Name("Lab"), dict}
	return arr, pdf.Unused{}, nil
}

// ExtractSpace reads a PDF colour space object (PDF 2.0, 8.6).
func ExtractSpace(x *pdf.Extractor, obj pdf.Object) (Space, error) {
	native, err := pdf.Resolve(x.R, obj)
	if err != nil {
		return nil, err
	}

	switch v := native.(type) {
	case pdf.Name:
		return extractNamedSpace(v)
	case pdf.Array:
		if len(v) == 0 {
			return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: empty colour space array")}
		}
		family, err := pdf.GetName(x.R, v[0])
		if err != nil {
			return nil, err
		}
		return extractFamily(x, family, v)
	default:
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("color: expected name or array, got %T", native),
		}
	}
}

func extractNamedSpace(name pdf.Name) (Space, error) {
	switch name {
	case "DeviceGray", "CalGray", "G":
		return SpaceDeviceGray, nil
	case "DeviceRGB", "RGB":
		return SpaceDeviceRGB, nil
	case "DeviceCMYK", "CMYK":
		return SpaceDeviceCMYK, nil
	case "Pattern":
		return spacePatternColored{}, nil
	default:
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("color: unknown colour space %q", name),
		}
	}
}

func extractFamily(x *pdf.Extractor, family pdf.Name, arr pdf.Array) (Space, error) {
	switch family {
	case "CalGray":
		return extractCalGray(x, arr)
	case "CalRGB":
		return extractCalRGB(x, arr)
	case "Lab":
		return extractLab(x, arr)
	case "ICCBased":
		return extractICCBased(x, arr)
	case "Indexed":
		return extractIndexed(x, arr)
	case "Separation":
		return extractSeparation(x, arr)
	case "DeviceN":
		return extractDeviceN(x, arr)
	case "Pattern":
		return extractPattern(x, arr)
	default:
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("color: unsupported colour space family %q", family),
		}
	}
}

func extractCalGray(x *pdf.Extractor, arr pdf.Array) (Space, error) {
	if len(arr) < 2 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: malformed CalGray")}
	}
	dict, err := pdf.GetDict(x.R, arr[1])
	if err != nil {
		return nil, err
	}
	wp, err := pdf.GetFloatArray(x.R, dict["WhitePoint"])
	if err != nil {
		return nil, err
	}
	if len(wp) != 3 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: CalGray WhitePoint must have 3 components")}
	}
	bp, err := pdf.GetFloatArray(x.R, dict["BlackPoint"])
	if err != nil {
		return nil, err
	}
	gamma := 1.0
	if g, ok := dict["Gamma"]; ok {
		v, err := pdf.GetNumber(x.R, g)
		if err != nil {
			return nil, err
		}
		gamma = float64(v)
	}
	return CalGray([3]float64{wp[0], wp[1], wp[2]}, bp, gamma)
}

func extractCalRGB(x *pdf.Extractor, arr pdf.Array) (Space, error) {
	if len(arr) < 2 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: malformed CalRGB")}
	}
	dict, err := pdf.GetDict(x.R, arr[1])
	if err != nil {
		return nil, err
	}
	wp, err := pdf.GetFloatArray(x.R, dict["WhitePoint"])
	if err != nil {
		return nil, err
	}
	if len(wp) != 3 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: CalRGB WhitePoint must have 3 components")}
	}
	bp, err := pdf.GetFloatArray(x.R, dict["BlackPoint"])
	if err != nil {
		return nil, err
	}
	gamma, err := pdf.GetFloatArray(x.R, dict["Gamma"])
	if err != nil {
		return nil, err
	}
	matrix, err := pdf.GetFloatArray(x.R, dict["Matrix"])
	if err != nil {
		return nil, err
	}
	return CalRGB([3]float64{wp[0], wp[1], wp[2]}, bp, gamma, matrix)
}

func extractLab(x *pdf.Extractor, arr pdf.Array) (Space, error) {
	if len(arr) < 2 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: malformed Lab")}
	}
	dict, err := pdf.GetDict(x.R, arr[1])
	if err != nil {
		return nil, err
	}
	wp, err := pdf.GetFloatArray(x.R, dict["WhitePoint"])
	if err != nil {
		return nil, err
	}
	if len(wp) != 3 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: Lab WhitePoint must have 3 components")}
	}
	bp, err := pdf.GetFloatArray(x.R, dict["BlackPoint"])
	if err != nil {
		return nil, err
	}
	rng, err := pdf.GetFloatArray(x.R, dict["Range"])
	if err != nil {
		return nil, err
	}
	return Lab([3]float64{wp[0], wp[1], wp[2]}, bp, rng)
}

// SpacesEqual reports whether a and b describe the same colour space.
func SpacesEqual(a, b Space) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Family() != b.Family() {
		return false
	}
	return reflect.DeepEqual(a, b)
}
