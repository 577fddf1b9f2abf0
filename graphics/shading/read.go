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
	"io"
	"log/slog"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/function"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
)

func vec2(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// Extract reads a shading object, dispatching on its ShadingType entry
// (PDF 2.0, 8.7.4.5).  Shading types 1-3 are plain dictionaries; the mesh
// types 4-7 are streams whose body holds the packed vertex or patch data,
// which is decoded eagerly.
//
// If a mesh stream ends in the middle of a vertex or patch, the returned
// error satisfies [IsMissingData]; all other failures indicate a malformed
// file.
func Extract(r pdf.Getter, obj pdf.Object) (graphics.Shading, error) {
	native, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	var dict pdf.Dict
	var body io.Reader
	switch o := native.(type) {
	case pdf.Dict:
		dict = o
	case *pdf.Stream:
		dict = o.Dict
		br, err := pdf.DecodeStream(r, o, 0)
		if err != nil {
			return nil, err
		}
		defer br.Close()
		body = br
	default:
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("shading: expected dict or stream, got %T", native),
		}
	}

	st, err := pdf.GetInteger(r, dict["ShadingType"])
	if err != nil {
		return nil, err
	}

	x := pdf.NewExtractor(r)

	switch st {
	case 1:
		return extractType1(x, dict)
	case 2:
		return extractType2(x, dict)
	case 3:
		return extractType3(x, dict)
	case 4:
		return extractType4(x, dict, body)
	case 5:
		return extractType5(x, dict, body)
	case 6:
		return extractType6(x, dict, body)
	case 7:
		return extractType7(x, dict, body)
	default:
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("shading: invalid ShadingType %d", st),
		}
	}
}

// commonFields holds the entries shared by all seven shading types
// (PDF 2.0, Table 77).
type commonFields struct {
	ColorSpace color.Space
	Background []float64
	BBox       *pdf.Rectangle
	AntiAlias  bool
}

func extractCommon(x *pdf.Extractor, dict pdf.Dict) (c commonFields, err error) {
	if dict["ColorSpace"] == nil {
		return c, &pdf.MalformedFileError{
			Err: fmt.Errorf("shading: missing ColorSpace"),
		}
	}
	c.ColorSpace, err = color.ExtractSpace(x, dict["ColorSpace"])
	if err != nil {
		return c, err
	}
	c.Background, err = pdf.GetFloatArray(x.R, dict["Background"])
	if err != nil {
		return c, err
	}
	c.BBox, err = pdf.GetRectangle(x.R, dict["BBox"])
	if err != nil {
		return c, err
	}
	aa, err := pdf.GetBoolean(x.R, dict["AntiAlias"])
	if err != nil {
		return c, err
	}
	c.AntiAlias = bool(aa)
	return c, nil
}

func extractShadingFunction(x *pdf.Extractor, dict pdf.Dict, required bool) (pdf.Function, error) {
	obj, present := dict["Function"]
	if !present || obj == nil {
		if required {
			return nil, &pdf.MalformedFileError{
				Err: fmt.Errorf("shading: missing Function"),
			}
		}
		return nil, nil
	}
	return function.Extract(x, obj)
}

// extractExtend reads the optional two-element Extend array of an axial or
// radial shading.  A missing entry means [false false].
func extractExtend(r pdf.Getter, obj pdf.Object) (start, end bool, err error) {
	arr, err := pdf.GetArray(r, obj)
	if err != nil || len(arr) != 2 {
		return false, false, err
	}
	s, err := pdf.GetBoolean(r, arr[0])
	if err != nil {
		return false, false, err
	}
	e, err := pdf.GetBoolean(r, arr[1])
	if err != nil {
		return false, false, err
	}
	return bool(s), bool(e), nil
}

func extractType1(x *pdf.Extractor, dict pdf.Dict) (graphics.Shading, error) {
	common, err := extractCommon(x, dict)
	if err != nil {
		return nil, err
	}
	fn, err := extractShadingFunction(x, dict, true)
	if err != nil {
		return nil, err
	}
	domain, err := pdf.GetFloatArray(x.R, dict["Domain"])
	if err != nil {
		return nil, err
	}
	m, err := pdf.GetFloatArray(x.R, dict["Matrix"])
	if err != nil {
		return nil, err
	}
	return &Type1{
		ColorSpace: common.ColorSpace,
		F:          fn,
		Domain:     domain,
		Matrix:     m,
		Background: common.Background,
		BBox:       common.BBox,
		AntiAlias:  common.AntiAlias,
	}, nil
}

func extractType2(x *pdf.Extractor, dict pdf.Dict) (graphics.Shading, error) {
	common, err := extractCommon(x, dict)
	if err != nil {
		return nil, err
	}
	coords, err := pdf.GetFloatArray(x.R, dict["Coords"])
	if err != nil {
		return nil, err
	}
	if len(coords) != 4 {
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("shading: axial Coords must have 4 elements, got %d", len(coords)),
		}
	}
	fn, err := extractShadingFunction(x, dict, true)
	if err != nil {
		return nil, err
	}
	tMin, tMax, err := extractDomain(x.R, dict["Domain"])
	if err != nil {
		return nil, err
	}
	extendStart, extendEnd, err := extractExtend(x.R, dict["Extend"])
	if err != nil {
		return nil, err
	}
	return &Type2{
		ColorSpace:  common.ColorSpace,
		P0:          vec2(coords[0], coords[1]),
		P1:          vec2(coords[2], coords[3]),
		F:           fn,
		TMin:        tMin,
		TMax:        tMax,
		ExtendStart: extendStart,
		ExtendEnd:   extendEnd,
		Background:  common.Background,
		BBox:        common.BBox,
		AntiAlias:   common.AntiAlias,
	}, nil
}

func extractType3(x *pdf.Extractor, dict pdf.Dict) (graphics.Shading, error) {
	common, err := extractCommon(x, dict)
	if err != nil {
		return nil, err
	}
	coords, err := pdf.GetFloatArray(x.R, dict["Coords"])
	if err != nil {
		return nil, err
	}
	if len(coords) != 6 {
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("shading: radial Coords must have 6 elements, got %d", len(coords)),
		}
	}
	fn, err := extractShadingFunction(x, dict, true)
	if err != nil {
		return nil, err
	}
	tMin, tMax, err := extractDomain(x.R, dict["Domain"])
	if err != nil {
		return nil, err
	}
	extendStart, extendEnd, err := extractExtend(x.R, dict["Extend"])
	if err != nil {
		return nil, err
	}
	return &Type3{
		ColorSpace:  common.ColorSpace,
		Center1:     vec2(coords[0], coords[1]),
		R1:          coords[2],
		Center2:     vec2(coords[3], coords[4]),
		R2:          coords[5],
		F:           fn,
		TMin:        tMin,
		TMax:        tMax,
		ExtendStart: extendStart,
		ExtendEnd:   extendEnd,
		Background:  common.Background,
		BBox:        common.BBox,
		AntiAlias:   common.AntiAlias,
	}, nil
}

// extractDomain reads the optional two-element Domain array of an axial or
// radial shading.  A missing entry maps to TMin = TMax = 0, the in-memory
// encoding of the default range [0, 1].
func extractDomain(r pdf.Getter, obj pdf.Object) (tMin, tMax float64, err error) {
	domain, err := pdf.GetFloatArray(r, obj)
	if err != nil || len(domain) != 2 {
		return 0, 0, err
	}
	return domain[0], domain[1], nil
}

// meshParams holds the sample-encoding entries shared by the mesh shading
// types (PDF 2.0, Tables 81-84).
type meshParams struct {
	bitsPerCoordinate int
	bitsPerComponent  int
	bitsPerFlag       int
	decode            []float64
	fn                pdf.Function
	numComps          int
}

func extractMeshParams(x *pdf.Extractor, dict pdf.Dict, cs color.Space, hasFlags bool) (p meshParams, err error) {
	bpc, err := pdf.GetInteger(x.R, dict["BitsPerCoordinate"])
	if err != nil {
		return p, err
	}
	bpcomp, err := pdf.GetInteger(x.R, dict["BitsPerComponent"])
	if err != nil {
		return p, err
	}
	p.bitsPerCoordinate = int(bpc)
	p.bitsPerComponent = int(bpcomp)
	if hasFlags {
		bpf, err := pdf.GetInteger(x.R, dict["BitsPerFlag"])
		if err != nil {
			return p, err
		}
		p.bitsPerFlag = int(bpf)
		switch p.bitsPerFlag {
		case 2, 4, 8:
		default:
			slog.Warn("shading: unusual BitsPerFlag", "bits", p.bitsPerFlag)
		}
	}
	p.decode, err = pdf.GetFloatArray(x.R, dict["Decode"])
	if err != nil {
		return p, err
	}
	if p.decode == nil {
		return p, &pdf.MalformedFileError{
			Err: fmt.Errorf("shading: missing Decode"),
		}
	}
	p.fn, err = extractShadingFunction(x, dict, false)
	if err != nil {
		return p, err
	}
	p.numComps = numComponents(cs, p.fn)
	return p, nil
}

func readMeshData(body io.Reader, shadingType int) ([]byte, error) {
	if body == nil {
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("shading: type %d shading requires a stream", shadingType),
		}
	}
	return io.ReadAll(body)
}

func extractType4(x *pdf.Extractor, dict pdf.Dict, body io.Reader) (graphics.Shading, error) {
	common, err := extractCommon(x, dict)
	if err != nil {
		return nil, err
	}
	p, err := extractMeshParams(x, dict, common.ColorSpace, true)
	if err != nil {
		return nil, err
	}
	data, err := readMeshData(body, 4)
	if err != nil {
		return nil, err
	}
	vertices, err := decodeType4Vertices(data, p.bitsPerCoordinate, p.bitsPerComponent, p.bitsPerFlag, p.numComps, p.decode)
	if err != nil {
		return nil, err
	}
	return &Type4{
		ColorSpace:        common.ColorSpace,
		BitsPerCoordinate: p.bitsPerCoordinate,
		BitsPerComponent:  p.bitsPerComponent,
		BitsPerFlag:       p.bitsPerFlag,
		Decode:            p.decode,
		F:                 p.fn,
		Vertices:          vertices,
		Background:        common.Background,
		BBox:              common.BBox,
		AntiAlias:         common.AntiAlias,
	}, nil
}

func extractType5(x *pdf.Extractor, dict pdf.Dict, body io.Reader) (graphics.Shading, error) {
	common, err := extractCommon(x, dict)
	if err != nil {
		return nil, err
	}
	p, err := extractMeshParams(x, dict, common.ColorSpace, false)
	if err != nil {
		return nil, err
	}
	perRow, err := pdf.GetInteger(x.R, dict["VerticesPerRow"])
	if err != nil {
		return nil, err
	}
	if perRow < 2 {
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("shading: VerticesPerRow must be at least 2, got %d", perRow),
		}
	}
	data, err := readMeshData(body, 5)
	if err != nil {
		return nil, err
	}
	vertices, err := decodeType5Vertices(data, p.bitsPerCoordinate, p.bitsPerComponent, p.numComps, p.decode)
	if err != nil {
		return nil, err
	}
	return &Type5{
		ColorSpace:        common.ColorSpace,
		BitsPerCoordinate: p.bitsPerCoordinate,
		BitsPerComponent:  p.bitsPerComponent,
		VerticesPerRow:    int(perRow),
		Decode:            p.decode,
		F:                 p.fn,
		Vertices:          vertices,
		Background:        common.Background,
		BBox:              common.BBox,
		AntiAlias:         common.AntiAlias,
	}, nil
}

func extractType6(x *pdf.Extractor, dict pdf.Dict, body io.Reader) (graphics.Shading, error) {
	common, err := extractCommon(x, dict)
	if err != nil {
		return nil, err
	}
	p, err := extractMeshParams(x, dict, common.ColorSpace, true)
	if err != nil {
		return nil, err
	}
	data, err := readMeshData(body, 6)
	if err != nil {
		return nil, err
	}
	patches, err := decodeType6Patches(data, p.bitsPerCoordinate, p.bitsPerComponent, p.bitsPerFlag, p.numComps, p.decode)
	if err != nil {
		return nil, err
	}
	return &Type6{
		ColorSpace:        common.ColorSpace,
		BitsPerCoordinate: p.bitsPerCoordinate,
		BitsPerComponent:  p.bitsPerComponent,
		BitsPerFlag:       p.bitsPerFlag,
		Decode:            p.decode,
		F:                 p.fn,
		Patches:           patches,
		Background:        common.Background,
		BBox:              common.BBox,
		AntiAlias:         common.AntiAlias,
	}, nil
}

func extractType7(x *pdf.Extractor, dict pdf.Dict, body io.Reader) (graphics.Shading, error) {
	common, err := extractCommon(x, dict)
	if err != nil {
		return nil, err
	}
	p, err := extractMeshParams(x, dict, common.ColorSpace, true)
	if err != nil {
		return nil, err
	}
	data, err := readMeshData(body, 7)
	if err != nil {
		return nil, err
	}
	patches, err := decodeType7Patches(data, p.bitsPerCoordinate, p.bitsPerComponent, p.bitsPerFlag, p.numComps, p.decode)
	if err != nil {
		return nil, err
	}
	return &Type7{
		ColorSpace:        common.ColorSpace,
		BitsPerCoordinate: p.bitsPerCoordinate,
		BitsPerComponent:  p.bitsPerComponent,
		BitsPerFlag:       p.bitsPerFlag,
		Decode:            p.decode,
		F:                 p.fn,
		Patches:           patches,
		Background:        common.Background,
		BBox:              common.BBox,
		AntiAlias:         common.AntiAlias,
	}, nil
}
