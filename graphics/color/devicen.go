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

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/function"
)

// SpaceDeviceN is a DeviceN colour space (PDF 2.0, 8.6.6.5): an arbitrary
// number of named colorants, mapped into an alternate space by a
// tint-transform function.
type SpaceDeviceN struct {
	Names         []pdf.Name
	Alternate     Space
	TintTransform pdf.Function
	Attributes    pdf.Object // optional
}

// DeviceN creates a DeviceN colour space.  attributes may be nil.
func DeviceN(names []pdf.Name, alternate Space, tintTransform pdf.Function, attributes pdf.Object) (*SpaceDeviceN, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("color: DeviceN requires at least one colorant name")
	}
	if alternate == nil {
		return nil, fmt.Errorf("color: DeviceN requires an alternate colour space")
	}
	if tintTransform == nil {
		return nil, fmt.Errorf("color: DeviceN requires a tint transform function")
	}
	m, n := tintTransform.Shape()
	if m != len(names) {
		return nil, fmt.Errorf("color: DeviceN tint transform takes %d inputs, need %d", m, len(names))
	}
	if n != alternate.NumComponents() {
		return nil, fmt.Errorf("color: DeviceN tint transform produces %d outputs, alternate space needs %d", n, alternate.NumComponents())
	}
	return &SpaceDeviceN{
		Names:         append([]pdf.Name(nil), names...),
		Alternate:     alternate,
		TintTransform: tintTransform,
		Attributes:    attributes,
	}, nil
}

func (s *SpaceDeviceN) Family() pdf.Name   { return "DeviceN" }
func (s *SpaceDeviceN) NumComponents() int { return len(s.Names) }

func (s *SpaceDeviceN) NewColor(values []float64) (Color, error) {
	if len(values) != len(s.Names) {
		return nil, fmt.Errorf("color: DeviceN needs %d components, got %d", len(s.Names), len(values))
	}
	return colorDeviceN{Values: append([]float64(nil), values...), space: s}, nil
}

func (s *SpaceDeviceN) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	altObj, err := rm.Embed(s.Alternate)
	if err != nil {
		return nil, pdf.Unused{}, err
	}
	fnObj, err := rm.Embed(s.TintTransform)
	if err != nil {
		return nil, pdf.Unused{}, err
	}
	names := make(pdf.Array, len(s.Names))
	for i, n := range s.Names {
		names[i] = n
	}
	arr := pdf.Array{pdf.Name("DeviceN"), names, altObj, fnObj}
	if s.Attributes != nil {
		arr = append(arr, s.Attributes)
	}
	return arr, pdf.Unused{}, nil
}

type colorDeviceN struct {
	Values []float64
	space  *SpaceDeviceN
}

func (c colorDeviceN) underlying() Color {
	n := c.space.Alternate.NumComponents()
	out := make([]float64, n)
	c.space.TintTransform.Apply(out, c.Values...)
	col, err := c.space.Alternate.NewColor(out)
	if err != nil {
		return Black
	}
	return col
}

func (c colorDeviceN) ToXYZ() (X, Y, Z float64)  { return c.underlying().ToXYZ() }
func (c colorDeviceN) RGBA() (r, g, b, a uint32) { return c.underlying().RGBA() }

func extractDeviceN(x *pdf.Extractor, arr pdf.Array) (Space, error) {
	if len(arr) < 4 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: malformed DeviceN")}
	}
	nameArr, err := pdf.GetArray(x.R, arr[1])
	if err != nil {
		return nil, err
	}
	names := make([]pdf.Name, len(nameArr))
	for i, obj := range nameArr {
		n, err := pdf.GetName(x.R, obj)
		if err != nil {
			return nil, err
		}
		names[i] = n
	}
	alternate, err := ExtractSpace(x, arr[2])
	if err != nil {
		return nil, err
	}
	fn, err := function.Extract(x, arr[3])
	if err != nil {
		return nil, err
	}
	var attrs pdf.Object
	if len(arr) > 4 {
		attrs = arr[4]
	}
	return DeviceN(names, alternate, fn, attrs)
}
