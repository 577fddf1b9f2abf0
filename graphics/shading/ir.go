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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
)

// IRKind tags the variant carried by an [IR] value.
type IRKind int

const (
	IRDummy IRKind = iota
	IRRadialAxial
	IRMesh
)

// IR is the serializable intermediate representation that [BuildIR]
// produces from a shading: either a gradient, a tessellated mesh, or a
// placeholder for a shading that failed to decode.
type IR struct {
	Kind        IRKind
	RadialAxial *RadialAxialIR
	Mesh        *MeshIR
}

// RadialAxialIR is the IR for an axial or radial gradient shading.
type RadialAxialIR struct {
	Radial bool // false for axial, true for radial
	BBox   *pdf.Rectangle

	ColorStops []ColorStop

	P0, P1 vec.Vec2
	R0, R1 float64

	Matrix matrix.Matrix
}

// MeshIR is the IR for a tessellated mesh shading (types 4-7).
type MeshIR struct {
	ShadingType int

	Coords  []float32
	Colors  []uint8
	Figures []FigureIR
	Bounds  [4]float64

	Matrix     matrix.Matrix
	BBox       *pdf.Rectangle
	Background []float64
}

// DiagnosticHandler is the one-way side channel [BuildIR] uses to report
// recoverable problems without failing the whole parse.
type DiagnosticHandler interface {
	Send(event string, payload map[string]any)
}

// discardHandler is the [DiagnosticHandler] used when the caller supplies
// none.
type discardHandler struct{}

func (discardHandler) Send(string, map[string]any) {}

// BuildIR converts a decoded shading into its intermediate
// representation. Any failure other than a [IsMissingData] error is
// caught and turned into a Dummy IR plus an "UnsupportedFeature"
// diagnostic; a missing-data error propagates so the caller can retry
// once more bytes are available.
func BuildIR(s graphics.Shading, m matrix.Matrix, handler DiagnosticHandler) (*IR, error) {
	if handler == nil {
		handler = discardHandler{}
	}

	ir, err := buildIR(s, m)
	if err != nil {
		if IsMissingData(err) {
			return nil, err
		}
		slog.Warn("shading: failed to build IR, emitting dummy", "shadingType", s.ShadingType(), "error", err)
		handler.Send("UnsupportedFeature", map[string]any{"featureId": "shadingPattern"})
		return &IR{Kind: IRDummy}, nil
	}
	return ir, nil
}

// ParseShading reads a shading object from a PDF file and converts it to
// its intermediate representation in a single step.  Like [BuildIR], every
// failure except missing data degrades to a Dummy IR plus an
// "UnsupportedFeature" diagnostic; missing data propagates so the caller
// can retry after more of the file has arrived.
func ParseShading(r pdf.Getter, obj pdf.Object, m matrix.Matrix, handler DiagnosticHandler) (*IR, error) {
	if handler == nil {
		handler = discardHandler{}
	}
	s, err := Extract(r, obj)
	if err != nil {
		if IsMissingData(err) {
			return nil, err
		}
		slog.Warn("shading: cannot read shading, emitting dummy", "error", err)
		handler.Send("UnsupportedFeature", map[string]any{"featureId": "shadingPattern"})
		return &IR{Kind: IRDummy}, nil
	}
	return BuildIR(s, m, handler)
}

func buildIR(s graphics.Shading, m matrix.Matrix) (*IR, error) {
	switch sh := s.(type) {
	case *Type2:
		return buildAxialIR(sh, m)
	case *Type3:
		return buildRadialIR(sh, m)
	case *Type4:
		return buildMeshIR(4, sh.Background, sh.BBox, m, func(b *meshBuilder) error {
			return b.buildType4(sh.Vertices, colorConverter(sh.ColorSpace, sh.F))
		})
	case *Type5:
		return buildMeshIR(5, sh.Background, sh.BBox, m, func(b *meshBuilder) error {
			return b.buildType5(sh.Vertices, sh.VerticesPerRow, colorConverter(sh.ColorSpace, sh.F))
		})
	case *Type6:
		return buildMeshIR(6, sh.Background, sh.BBox, m, func(b *meshBuilder) error {
			return b.buildType6(sh.Patches, colorConverter(sh.ColorSpace, sh.F))
		})
	case *Type7:
		return buildMeshIR(7, sh.Background, sh.BBox, m, func(b *meshBuilder) error {
			return b.buildType7(sh.Patches, colorConverter(sh.ColorSpace, sh.F))
		})
	default:
		return nil, fmt.Errorf("shading: unsupported shading type %d", s.ShadingType())
	}
}

func buildAxialIR(s *Type2, m matrix.Matrix) (*IR, error) {
	tMin, tMax := s.TMin, s.TMax
	if tMin == 0 && tMax == 0 {
		tMax = 1
	}
	stops, err := sampleGradientStops(s.F, s.ColorSpace, tMin, tMax, s.ExtendStart, s.ExtendEnd, s.Background)
	if err != nil {
		return nil, err
	}
	return &IR{Kind: IRRadialAxial, RadialAxial: &RadialAxialIR{
		Radial:     false,
		BBox:       s.BBox,
		ColorStops: stops,
		P0:         s.P0,
		P1:         s.P1,
		Matrix:     m,
	}}, nil
}

func buildRadialIR(s *Type3, m matrix.Matrix) (*IR, error) {
	tMin, tMax := s.TMin, s.TMax
	if tMin == 0 && tMax == 0 {
		tMax = 1
	}
	if err := checkRadialCircles(s.Center1, s.R1, s.Center2, s.R2); err != nil {
		slog.Warn("shading: degenerate radial gradient", "error", err)
	}
	stops, err := sampleGradientStops(s.F, s.ColorSpace, tMin, tMax, s.ExtendStart, s.ExtendEnd, s.Background)
	if err != nil {
		return nil, err
	}
	return &IR{Kind: IRRadialAxial, RadialAxial: &RadialAxialIR{
		Radial:     true,
		BBox:       s.BBox,
		ColorStops: stops,
		P0:         s.Center1,
		P1:         s.Center2,
		R0:         s.R1,
		R1:         s.R2,
		Matrix:     m,
	}}, nil
}

func buildMeshIR(shadingType int, background []float64, bbox *pdf.Rectangle, m matrix.Matrix, fill func(*meshBuilder) error) (*IR, error) {
	var b meshBuilder
	if err := fill(&b); err != nil {
		return nil, err
	}
	packed := b.pack()
	return &IR{Kind: IRMesh, Mesh: &MeshIR{
		ShadingType: shadingType,
		Coords:      packed.Coords,
		Colors:      packed.Colors,
		Figures:     packed.Figures,
		Bounds:      packed.Bounds,
		Matrix:      m,
		BBox:        bbox,
		Background:  background,
	}}, nil
}
