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

// SpaceSeparation is a Separation colour space (PDF 2.0, 8.6.6.4): a single
// named colorant, mapped into an alternate space by a tint-transform
// function.
type SpaceSeparation struct {
	Name       pdf.Name
	Alternate  Space
	TintTransform pdf.Function
}

// Separation creates a Separation colour space.
func Separation(name pdf.Name, alternate Space, tintTransform pdf.Function) (*SpaceSeparation, error) {
	if name == "" {
		return nil, fmt.Errorf("color: Separation requires a non-empty colorant name")
	}
	if alternate == nil {
		return nil, fmt.Errorf("color: Separation requires an alternate colour space")
	}
	if tintTransform == nil {
		return nil, fmt.Errorf("color: Separation requires a tint transform function")
	}
	m, n := tintTransform.Shape()
	if m != 1 {
		return nil, fmt.Errorf("color: Separation tint transform must take 1 input, takes %d", m)
	}
	if n != alternate.NumComponents() {
		return nil, fmt.Errorf("color: Separation tint transform produces %d outputs, alternate space needs %d", n, alternate.NumComponents())
	}
	return &SpaceSeparation{Name: name, Alternate: alternate, TintTransform: tintTransform}, nil
}

func (s *SpaceSeparation) Family() pdf.Name   { return "Separation" }
func (s *SpaceSeparation) NumComponents() int { return 1 }

func (s *SpaceSeparation) NewColor(values []float64) (Color, error) {
	if len(values) != 1 {
		return nil, fmt.Errorf("color: Separation needs 1 component, got %d", len(values))
	}
	return s.New(values[0]), nil
}

// New returns the colour for the given tint (0 to 1).
func (s *SpaceSeparation) New(tint float64) Color {
	return colorSeparation{Tint: tint, space: s}
}

func (s *SpaceSeparation) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	altObj, err := rm.Embed(s.Alternate)
	if err != nil {
		return nil, pdf.Unused{}, err
	}
	fnObj, err := rm.Embed(s.TintTransform)
	if err != nil {
		return nil, pdf.Unused{}, err
	}
	arr := pdf.Array{pdf.Name("Separation"), s.Name, altObj, fnObj}
	return arr, pdf.Unused{}, nil
}

type colorSeparation struct {
	Tint  float64
	space *SpaceSeparation
}

func (c colorSeparation) underlying() Color {
	n := c.space.Alternate.NumComponents()
	out := make([]float64, n)
	c.space.TintTransform.Apply(out, c.Tint)
	col, err := c.space.Alternate.NewColor(out)
	if err != nil {
		return Black
	}
	return col
}

func (c colorSeparation) ToXYZ() (X, Y, Z float64)  { return c.underlying().ToXYZ() }
func (c colorSeparation) RGBA() (r, g, b, a uint32) { return c.underlying().RGBA() }

func extractSeparation(x *pdf.Extractor, arr pdf.Array) (Space, error) {
	if len(arr) < 4 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: malformed Separation")}
	}
	name, err := pdf.GetName(x.R, arr[1])
	if err != nil {
		return nil, err
	}
	alternate, err := ExtractSpace(x, arr[2])
	if err != nil {
		return nil, err
	}
	fn, err := function.Extract(x, arr[3])
	if err != nil {
		return nil, err
	}
	return Separation(name, alternate, fn)
}
