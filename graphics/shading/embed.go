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

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics/color"
)

func floatsToArray(vals []float64) pdf.Array {
	arr := make(pdf.Array, len(vals))
	for i, v := range vals {
		arr[i] = pdf.Number(v)
	}
	return arr
}

// checkColorSpace rejects the colour-space families the PDF spec does not
// allow in shadings (PDF 2.0, Table 77): Pattern everywhere, and Indexed
// in the function-driven types 1-3.
func checkColorSpace(cs color.Space, allowIndexed bool) error {
	if cs == nil {
		return pdf.Error("invalid ColorSpace")
	}
	switch cs.Family() {
	case "Pattern":
		return pdf.Error("invalid ColorSpace")
	case "Indexed":
		if !allowIndexed {
			return pdf.Error("invalid ColorSpace")
		}
	}
	return nil
}

// validBitsPerCoordinate and friends are the sample widths the PDF spec
// permits in mesh shading streams (PDF 2.0, Table 81).
func validBitsPerCoordinate(n int) bool {
	switch n {
	case 1, 2, 4, 8, 12, 16, 24, 32:
		return true
	}
	return false
}

func validBitsPerComponent(n int) bool {
	switch n {
	case 1, 2, 4, 8, 12, 16:
		return true
	}
	return false
}

func validBitsPerFlag(n int) bool {
	switch n {
	case 2, 4, 8:
		return true
	}
	return false
}

// checkMeshParams validates the sample-encoding entries shared by the mesh
// shading types.  bitsPerFlag < 0 marks a type without edge flags.
func checkMeshParams(cs color.Space, fn pdf.Function, bitsPerCoordinate, bitsPerComponent, bitsPerFlag int, decode []float64) error {
	if err := checkColorSpace(cs, true); err != nil {
		return err
	}
	if !validBitsPerCoordinate(bitsPerCoordinate) {
		return fmt.Errorf("shading: invalid BitsPerCoordinate %d", bitsPerCoordinate)
	}
	if !validBitsPerComponent(bitsPerComponent) {
		return fmt.Errorf("shading: invalid BitsPerComponent %d", bitsPerComponent)
	}
	if bitsPerFlag >= 0 && !validBitsPerFlag(bitsPerFlag) {
		return fmt.Errorf("shading: invalid BitsPerFlag %d", bitsPerFlag)
	}
	if want := 4 + 2*numComponents(cs, fn); len(decode) != want {
		return fmt.Errorf("shading: Decode must have %d elements, got %d", want, len(decode))
	}
	return nil
}

// commonDict assembles the dictionary entries shared by all shading types.
func commonDict(rm *pdf.ResourceManager, shadingType int, cs color.Space, background []float64, bbox *pdf.Rectangle, antiAlias bool) (pdf.Dict, error) {
	csObj, err := rm.Embed(cs)
	if err != nil {
		return nil, err
	}
	dict := pdf.Dict{
		"ShadingType": pdf.Integer(shadingType),
		"ColorSpace":  csObj,
	}
	if background != nil {
		dict["Background"] = floatsToArray(background)
	}
	if bbox != nil {
		dict["BBox"] = bbox
	}
	if antiAlias {
		dict["AntiAlias"] = pdf.Boolean(true)
	}
	return dict, nil
}

func addFunction(rm *pdf.ResourceManager, dict pdf.Dict, fn pdf.Function) error {
	if fn == nil {
		return nil
	}
	embedded, err := rm.Embed(fn)
	if err != nil {
		return err
	}
	dict["Function"] = embedded
	return nil
}

// addDomainExtend writes the optional Domain and Extend entries of an
// axial or radial shading.  TMin = TMax = 0 encodes the default domain
// [0, 1] and writes no Domain entry, so that the defaulted and the
// explicit form survive a round trip unchanged.
func addDomainExtend(dict pdf.Dict, tMin, tMax float64, extendStart, extendEnd bool) {
	if tMin != 0 || tMax != 0 {
		dict["Domain"] = floatsToArray([]float64{tMin, tMax})
	}
	if extendStart || extendEnd {
		dict["Extend"] = pdf.Array{pdf.Boolean(extendStart), pdf.Boolean(extendEnd)}
	}
}

// embedMeshStream writes a mesh shading's dictionary and encoded sample
// data as an indirect stream object and returns the reference.
func embedMeshStream(rm *pdf.ResourceManager, dict pdf.Dict, data []byte) (pdf.Native, pdf.Unused, error) {
	ref := rm.Out.Alloc()
	w, err := rm.Out.OpenStream(ref, dict)
	if err != nil {
		return nil, pdf.Unused{}, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, pdf.Unused{}, err
	}
	if err := w.Close(); err != nil {
		return nil, pdf.Unused{}, err
	}
	return ref, pdf.Unused{}, nil
}

// Embed implements the [graphics.Shading] interface.
func (s *Type1) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	var zero pdf.Unused
	if err := checkColorSpace(s.ColorSpace, false); err != nil {
		return nil, zero, err
	}
	if s.F == nil {
		return nil, zero, pdf.Error("missing Function")
	}
	dict, err := commonDict(rm, 1, s.ColorSpace, s.Background, s.BBox, s.AntiAlias)
	if err != nil {
		return nil, zero, err
	}
	if s.Domain != nil {
		dict["Domain"] = floatsToArray(s.Domain)
	}
	if s.Matrix != nil {
		dict["Matrix"] = floatsToArray(s.Matrix)
	}
	if err := addFunction(rm, dict, s.F); err != nil {
		return nil, zero, err
	}
	return dict, zero, nil
}

// Embed implements the [graphics.Shading] interface.
func (s *Type2) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	var zero pdf.Unused
	if err := checkColorSpace(s.ColorSpace, false); err != nil {
		return nil, zero, err
	}
	if s.F == nil {
		return nil, zero, pdf.Error("missing Function")
	}
	dict, err := commonDict(rm, 2, s.ColorSpace, s.Background, s.BBox, s.AntiAlias)
	if err != nil {
		return nil, zero, err
	}
	dict["Coords"] = floatsToArray([]float64{s.P0.X, s.P0.Y, s.P1.X, s.P1.Y})
	addDomainExtend(dict, s.TMin, s.TMax, s.ExtendStart, s.ExtendEnd)
	if err := addFunction(rm, dict, s.F); err != nil {
		return nil, zero, err
	}
	return dict, zero, nil
}

// Embed implements the [graphics.Shading] interface.
func (s *Type3) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	var zero pdf.Unused
	if err := checkColorSpace(s.ColorSpace, false); err != nil {
		return nil, zero, err
	}
	if s.F == nil {
		return nil, zero, pdf.Error("missing Function")
	}
	if s.R1 < 0 || s.R2 < 0 {
		return nil, zero, pdf.Error("negative radius")
	}
	dict, err := commonDict(rm, 3, s.ColorSpace, s.Background, s.BBox, s.AntiAlias)
	if err != nil {
		return nil, zero, err
	}
	dict["Coords"] = floatsToArray([]float64{s.Center1.X, s.Center1.Y, s.R1, s.Center2.X, s.Center2.Y, s.R2})
	addDomainExtend(dict, s.TMin, s.TMax, s.ExtendStart, s.ExtendEnd)
	if err := addFunction(rm, dict, s.F); err != nil {
		return nil, zero, err
	}
	return dict, zero, nil
}

// Embed implements the [graphics.Shading] interface.
func (s *Type4) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	var zero pdf.Unused
	if err := checkMeshParams(s.ColorSpace, s.F, s.BitsPerCoordinate, s.BitsPerComponent, s.BitsPerFlag, s.Decode); err != nil {
		return nil, zero, err
	}
	dict, err := commonDict(rm, 4, s.ColorSpace, s.Background, s.BBox, s.AntiAlias)
	if err != nil {
		return nil, zero, err
	}
	dict["BitsPerCoordinate"] = pdf.Integer(s.BitsPerCoordinate)
	dict["BitsPerComponent"] = pdf.Integer(s.BitsPerComponent)
	dict["BitsPerFlag"] = pdf.Integer(s.BitsPerFlag)
	dict["Decode"] = floatsToArray(s.Decode)
	if err := addFunction(rm, dict, s.F); err != nil {
		return nil, zero, err
	}
	numComps := numComponents(s.ColorSpace, s.F)
	data := encodeType4Vertices(s.Vertices, s.BitsPerCoordinate, s.BitsPerComponent, s.BitsPerFlag, numComps, s.Decode)
	return embedMeshStream(rm, dict, data)
}

// Embed implements the [graphics.Shading] interface.
func (s *Type5) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	var zero pdf.Unused
	if err := checkMeshParams(s.ColorSpace, s.F, s.BitsPerCoordinate, s.BitsPerComponent, -1, s.Decode); err != nil {
		return nil, zero, err
	}
	if s.VerticesPerRow < 2 {
		return nil, zero, fmt.Errorf("shading: VerticesPerRow must be at least 2, got %d", s.VerticesPerRow)
	}
	dict, err := commonDict(rm, 5, s.ColorSpace, s.Background, s.BBox, s.AntiAlias)
	if err != nil {
		return nil, zero, err
	}
	dict["BitsPerCoordinate"] = pdf.Integer(s.BitsPerCoordinate)
	dict["BitsPerComponent"] = pdf.Integer(s.BitsPerComponent)
	dict["VerticesPerRow"] = pdf.Integer(s.VerticesPerRow)
	dict["Decode"] = floatsToArray(s.Decode)
	if err := addFunction(rm, dict, s.F); err != nil {
		return nil, zero, err
	}
	numComps := numComponents(s.ColorSpace, s.F)
	data := encodeType5Vertices(s.Vertices, s.BitsPerCoordinate, s.BitsPerComponent, numComps, s.Decode)
	return embedMeshStream(rm, dict, data)
}

// Embed implements the [graphics.Shading] interface.
func (s *Type6) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	var zero pdf.Unused
	if err := checkMeshParams(s.ColorSpace, s.F, s.BitsPerCoordinate, s.BitsPerComponent, s.BitsPerFlag, s.Decode); err != nil {
		return nil, zero, err
	}
	dict, err := commonDict(rm, 6, s.ColorSpace, s.Background, s.BBox, s.AntiAlias)
	if err != nil {
		return nil, zero, err
	}
	dict["BitsPerCoordinate"] = pdf.Integer(s.BitsPerCoordinate)
	dict["BitsPerComponent"] = pdf.Integer(s.BitsPerComponent)
	dict["BitsPerFlag"] = pdf.Integer(s.BitsPerFlag)
	dict["Decode"] = floatsToArray(s.Decode)
	if err := addFunction(rm, dict, s.F); err != nil {
		return nil, zero, err
	}
	numComps := numComponents(s.ColorSpace, s.F)
	data := encodeType6Patches(s.Patches, s.BitsPerCoordinate, s.BitsPerComponent, s.BitsPerFlag, numComps, s.Decode)
	return embedMeshStream(rm, dict, data)
}

// Embed implements the [graphics.Shading] interface.
func (s *Type7) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	var zero pdf.Unused
	if err := checkMeshParams(s.ColorSpace, s.F, s.BitsPerCoordinate, s.BitsPerComponent, s.BitsPerFlag, s.Decode); err != nil {
		return nil, zero, err
	}
	dict, err := commonDict(rm, 7, s.ColorSpace, s.Background, s.BBox, s.AntiAlias)
	if err != nil {
		return nil, zero, err
	}
	dict["BitsPerCoordinate"] = pdf.Integer(s.BitsPerCoordinate)
	dict["BitsPerComponent"] = pdf.Integer(s.BitsPerComponent)
	dict["BitsPerFlag"] = pdf.Integer(s.BitsPerFlag)
	dict["Decode"] = floatsToArray(s.Decode)
	if err := addFunction(rm, dict, s.F); err != nil {
		return nil, zero, err
	}
	numComps := numComponents(s.ColorSpace, s.F)
	data := encodeType7Patches(s.Patches, s.BitsPerCoordinate, s.BitsPerComponent, s.BitsPerFlag, numComps, s.Decode)
	return embedMeshStream(rm, dict, data)
}
