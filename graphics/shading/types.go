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

// Package shading implements PDF shading dictionaries (PDF 2.0, 8.7.4.5):
// function-based, axial and radial gradients (shading types 1-3), and
// triangle- and patch-mesh shadings (types 4-7).
//
// Besides the PDF object-model reader and writer, the package contains the
// tessellation pipeline that turns a mesh shading's packed vertex or patch
// stream into flat, renderer-ready triangle data: [bitReader]/[bitWriter]
// for the variable-width sample encoding, the per-type mesh decoders, a
// patch tessellator ([tessellatePatch]) that subdivides Coons and
// tensor-product patches into triangles, and a packer ([meshBuilder.pack])
// that flattens the result into contiguous buffers. [BuildIR] ties these together with the axial/radial gradient
// sampler into the intermediate representation consumed by a renderer.
package shading

import (
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics/color"
)

// Type1 represents a function-based shading (PDF 2.0, 8.7.4.5.2): a colour
// defined directly as a function of two spatial coordinates.
type Type1 struct {
	ColorSpace color.Space
	F          pdf.Function

	// Domain restricts the (x, y) inputs passed to F.  If nil, the default
	// [0, 1, 0, 1] is used.
	Domain []float64

	// Matrix maps the domain rectangle into the target coordinate space.
	// If nil, the identity matrix is used.
	Matrix []float64

	Background []float64
	BBox       *pdf.Rectangle
	AntiAlias  bool
}

func (s *Type1) ShadingType() int { return 1 }

// Type2 represents an axial (linear) gradient shading (PDF 2.0, 8.7.4.5.3).
type Type2 struct {
	ColorSpace color.Space
	P0, P1     vec.Vec2
	F          pdf.Function

	// TMin and TMax give the limits of the parametric variable t passed to
	// F.  The zero value of both fields selects the default range [0, 1].
	TMin, TMax float64

	ExtendStart, ExtendEnd bool

	Background []float64
	BBox       *pdf.Rectangle
	AntiAlias  bool
}

func (s *Type2) ShadingType() int { return 2 }

// Type3 represents a radial gradient shading (PDF 2.0, 8.7.4.5.4): a
// gradient between two circles.
type Type3 struct {
	ColorSpace  color.Space
	Center1     vec.Vec2
	R1          float64
	Center2     vec.Vec2
	R2          float64
	F           pdf.Function
	TMin, TMax  float64
	ExtendStart bool
	ExtendEnd   bool

	Background []float64
	BBox       *pdf.Rectangle
	AntiAlias  bool
}

func (s *Type3) ShadingType() int { return 3 }

// Type4Vertex is one vertex of a free-form Gouraud-shaded triangle mesh
// (PDF 2.0, 8.7.4.5.5).
type Type4Vertex struct {
	X, Y  float64
	Flag  uint8
	Color []float64
}

// Type4 represents a free-form Gouraud-shaded triangle mesh shading.
type Type4 struct {
	ColorSpace        color.Space
	BitsPerCoordinate int
	BitsPerComponent  int
	BitsPerFlag       int
	Decode            []float64
	F                 pdf.Function
	Vertices          []Type4Vertex

	Background []float64
	BBox       *pdf.Rectangle
	AntiAlias  bool
}

func (s *Type4) ShadingType() int { return 4 }

// Type5Vertex is one vertex of a lattice-form Gouraud-shaded triangle mesh.
type Type5Vertex struct {
	X, Y  float64
	Color []float64
}

// Type5 represents a lattice-form Gouraud-shaded triangle mesh shading
// (PDF 2.0, 8.7.4.5.6): vertices are implicitly connected into triangles
// by their position in a row-major grid, VerticesPerRow wide.
type Type5 struct {
	ColorSpace        color.Space
	BitsPerCoordinate int
	BitsPerComponent  int
	VerticesPerRow    int
	Decode            []float64
	F                 pdf.Function
	Vertices          []Type5Vertex

	Background []float64
	BBox       *pdf.Rectangle
	AntiAlias  bool
}

func (s *Type5) ShadingType() int { return 5 }

// Type6Patch is one Coons patch (PDF 2.0, 8.7.4.5.7, Table 85).
//
// ControlPoints holds the 12 boundary Bezier control points in the stream
// order defined by the spec: for a new patch (Flag == 0) all 12 are
// explicit; for Flag in {1, 2, 3} the first 4 are inherited from the
// shared edge of the previous patch and only the remaining 8 are read from
// the stream. CornerColors holds all 4 corner colours in the same way (2
// inherited, 2 explicit, for Flag != 0).
type Type6Patch struct {
	Flag          uint8
	ControlPoints [12]vec.Vec2
	CornerColors  [][]float64
}

// Type6 represents a Coons-patch mesh shading.
type Type6 struct {
	ColorSpace        color.Space
	BitsPerCoordinate int
	BitsPerComponent  int
	BitsPerFlag       int
	Decode            []float64
	F                 pdf.Function
	Patches           []Type6Patch

	Background []float64
	BBox       *pdf.Rectangle
	AntiAlias  bool
}

func (s *Type6) ShadingType() int { return 6 }

// Type7Patch is one tensor-product patch (PDF 2.0, 8.7.4.5.7, Table 86):
// like Type6Patch, but with all 16 control points given explicitly (4 of
// them describe the patch's interior rather than being derived from the
// boundary).
type Type7Patch struct {
	Flag          uint8
	ControlPoints [16]vec.Vec2
	CornerColors  [][]float64
}

// Type7 represents a tensor-product patch mesh shading.
type Type7 struct {
	ColorSpace        color.Space
	BitsPerCoordinate int
	BitsPerComponent  int
	BitsPerFlag       int
	Decode            []float64
	F                 pdf.Function
	Patches           []Type7Patch

	Background []float64
	BBox       *pdf.Rectangle
	AntiAlias  bool
}

func (s *Type7) ShadingType() int { return 7 }
