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
)

// Pattern is the subset of the tiling- and shading-pattern contract that
// the colour package needs: every pattern is itself embeddable as a PDF
// object.  The concrete pattern types (tiling patterns, shading patterns)
// live outside this package to avoid an import cycle.
type Pattern interface {
	pdf.Embedder
}

// spacePatternColored is the colour space named by the bare name /Pattern,
// used for coloured tiling and shading patterns (PDF 2.0, 8.7.3.3).
type spacePatternColored struct{}

func (spacePatternColored) Family() pdf.Name   { return "Pattern" }
func (spacePatternColored) NumComponents() int { return 0 }
func (spacePatternColored) NewColor(values []float64) (Color, error) {
	if len(values) != 0 {
		return nil, fmt.Errorf("color: colored Pattern takes no underlying components")
	}
	return colorColoredPattern{}, nil
}
func (spacePatternColored) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	return pdf.Name("Pattern"), pdf.Unused{}, nil
}

// NewPattern returns the colour selecting the given pattern.
func (spacePatternColored) NewPattern(pat Pattern) Color {
	return colorColoredPattern{Pat: pat}
}

// spacePatternUncolored is a [/Pattern base] colour space array, used for
// uncoloured tiling patterns painted with a separately-specified colour
// in the given base space (PDF 2.0, 8.7.3.3).
type spacePatternUncolored struct {
	base Space
}

func (s spacePatternUncolored) Family() pdf.Name   { return "Pattern" }
func (s spacePatternUncolored) NumComponents() int { return s.base.NumComponents() }
func (s spacePatternUncolored) NewColor(values []float64) (Color, error) {
	under, err := s.base.NewColor(values)
	if err != nil {
		return nil, err
	}
	return colorUncoloredPattern{Under: under}, nil
}
func (s spacePatternUncolored) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	baseObj, err := rm.Embed(s.base)
	if err != nil {
		return nil, pdf.Unused{}, err
	}
	arr := pdf.Array{pdf.Name("Pattern"), baseObj}
	return arr, pdf.Unused{}, nil
}

// NewPattern returns the colour painting pat with the given underlying
// colour.
func (s spacePatternUncolored) NewPattern(pat Pattern, under Color) Color {
	return colorUncoloredPattern{Pat: pat, Under: under}
}

// colorColoredPattern selects a coloured pattern; the pattern supplies its
// own colours, so there is no underlying colour to report.
type colorColoredPattern struct {
	Pat Pattern
}

func (c colorColoredPattern) ToXYZ() (X, Y, Z float64) { return 0, 0, 0 }
func (c colorColoredPattern) RGBA() (r, g, b, a uint32) {
	return 0, 0, 0, 0xffff
}

// colorUncoloredPattern selects an uncoloured pattern, painted with the
// Under colour.
type colorUncoloredPattern struct {
	Pat   Pattern
	Under Color
}

func (c colorUncoloredPattern) ToXYZ() (X, Y, Z float64) {
	if c.Under == nil {
		return 0, 0, 0
	}
	return c.Under.ToXYZ()
}
func (c colorUncoloredPattern) RGBA() (r, g, b, a uint32) {
	if c.Under == nil {
		return 0, 0, 0, 0xffff
	}
	return c.Under.RGBA()
}

func extractPattern(x *pdf.Extractor, arr pdf.Array) (Space, error) {
	if len(arr) == 1 {
		return spacePatternColored{}, nil
	}
	base, err := ExtractSpace(x, arr[1])
	if err != nil {
		return nil, err
	}
	return spacePatternUncolored{base: base}, nil
}
