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
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics/color"
)

// rawFigureKind tags the figure variants a [meshBuilder] accumulates
// before packing. Unlike the PDF-level "patch" figure, every figure that
// reaches a meshBuilder is already tessellated: patches are converted to
// lattices inline, as soon as their 4 corners are known.
type rawFigureKind int

const (
	rawTriangles rawFigureKind = iota
	rawLattice
)

// rawFigure references vertices by index into the owning meshBuilder's
// coords/colors slices; [meshBuilder.pack] rewrites these to byte offsets.
type rawFigure struct {
	kind           rawFigureKind
	vertIdx        []int
	verticesPerRow int // rawLattice only
}

// meshBuilder accumulates a mesh shading's decoded vertices and figures in
// insertion order, the representation the patch tessellator
// ([tessellatePatch]) and packer ([meshBuilder.pack]) steps operate on
// before the final IR is emitted.
type meshBuilder struct {
	coords []vec.Vec2
	colors [][3]byte

	figures []rawFigure

	minX, minY, maxX, maxY float64
}

func (b *meshBuilder) addVertex(p vec.Vec2, rgb [3]byte) int {
	idx := len(b.coords)
	if idx == 0 {
		b.minX, b.maxX = p.X, p.X
		b.minY, b.maxY = p.Y, p.Y
	} else {
		b.minX = math.Min(b.minX, p.X)
		b.maxX = math.Max(b.maxX, p.X)
		b.minY = math.Min(b.minY, p.Y)
		b.maxY = math.Max(b.maxY, p.Y)
	}
	b.coords = append(b.coords, p)
	b.colors = append(b.colors, rgb)
	return idx
}

func (b *meshBuilder) bounds() [4]float64 {
	return [4]float64{b.minX, b.minY, b.maxX, b.maxY}
}

// colorConverter returns the function that turns a mesh vertex's raw,
// decode-scaled component tuple into an 8-bit sRGB triple: if a colour
// function is present its single input selects a point on the colour
// space, otherwise the components are interpreted directly (PDF 2.0,
// 8.7.4.5.5, "Color").
func colorConverter(cs color.Space, fn pdf.Function) func([]float64) ([3]byte, error) {
	return func(raw []float64) ([3]byte, error) {
		vals := raw
		if fn != nil {
			_, n := fn.Shape()
			out := make([]float64, n)
			fn.Apply(out, raw...)
			vals = out
		}
		c, err := cs.NewColor(vals)
		if err != nil {
			return [3]byte{}, err
		}
		r, g, b, _ := c.RGBA()
		return [3]byte{byte(r >> 8), byte(g >> 8), byte(b >> 8)}, nil
	}
}

// numComponents returns the number of raw component samples a mesh vertex
// carries: one if a colour function maps them into the colour space,
// otherwise one per colour-space component.
func numComponents(cs color.Space, fn pdf.Function) int {
	if fn != nil {
		return 1
	}
	return cs.NumComponents()
}

// buildType4 implements the free-form triangle mesh vertex-to-triangle
// grouping of PDF 2.0, 8.7.4.5.5: a flag-0 vertex begins a new triangle
// together with the next two vertices in the stream; flag 1 and 2 reuse
// two vertices from the previous triangle.
func (b *meshBuilder) buildType4(vertices []Type4Vertex, convert func([]float64) ([3]byte, error)) error {
	var idxs []int
	var triangle [3]int
	pending := 0

	for _, v := range vertices {
		rgb, err := convert(v.Color)
		if err != nil {
			return err
		}
		idx := b.addVertex(vec.Vec2{X: v.X, Y: v.Y}, rgb)

		switch {
		case pending > 0:
			triangle[3-pending] = idx
			pending--
			if pending == 0 {
				idxs = append(idxs, triangle[0], triangle[1], triangle[2])
			}
		case v.Flag == 0:
			triangle[0] = idx
			pending = 2
		case v.Flag == 1:
			triangle = [3]int{triangle[1], triangle[2], idx}
			idxs = append(idxs, triangle[0], triangle[1], triangle[2])
		case v.Flag == 2:
			triangle = [3]int{triangle[0], triangle[2], idx}
			idxs = append(idxs, triangle[0], triangle[1], triangle[2])
		default:
			return fmt.Errorf("shading: invalid type 4 edge flag %d", v.Flag)
		}
	}

	if len(idxs) > 0 {
		b.figures = append(b.figures, rawFigure{kind: rawTriangles, vertIdx: idxs})
	}
	return nil
}

// buildType5 implements the lattice-form triangle mesh of PDF 2.0,
// 8.7.4.5.6: vertices connect implicitly by row-major position.
func (b *meshBuilder) buildType5(vertices []Type5Vertex, verticesPerRow int, convert func([]float64) ([3]byte, error)) error {
	idxs := make([]int, 0, len(vertices))
	for _, v := range vertices {
		rgb, err := convert(v.Color)
		if err != nil {
			return err
		}
		idxs = append(idxs, b.addVertex(vec.Vec2{X: v.X, Y: v.Y}, rgb))
	}
	if len(idxs) > 0 {
		b.figures = append(b.figures, rawFigure{kind: rawLattice, vertIdx: idxs, verticesPerRow: verticesPerRow})
	}
	return nil
}

func patchCorners6(p Type6Patch) [4]vec.Vec2 {
	return [4]vec.Vec2{p.ControlPoints[0], p.ControlPoints[3], p.ControlPoints[6], p.ControlPoints[9]}
}

func patchCorners7(p Type7Patch) [4]vec.Vec2 {
	return [4]vec.Vec2{p.ControlPoints[0], p.ControlPoints[3], p.ControlPoints[6], p.ControlPoints[9]}
}

// meshBoundsFromCorners computes the bounding box [tessellatePatch]
// compares each patch's own extent against, from every patch's 4 corner
// control points. This must be known before any patch is tessellated, so
// it is computed in a pass over corners alone. It is also the bounds a
// patch mesh reports.
func meshBoundsFromCorners(all [][4]vec.Vec2) [4]float64 {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c4 := range all {
		for _, p := range c4 {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
	}
	return [4]float64{minX, minY, maxX, maxY}
}

// buildType6 tessellates every Coons patch into a lattice figure.
func (b *meshBuilder) buildType6(patches []Type6Patch, convert func([]float64) ([3]byte, error)) error {
	corners := make([][4]vec.Vec2, len(patches))
	for i, p := range patches {
		corners[i] = patchCorners6(p)
	}
	bounds := meshBoundsFromCorners(corners)

	for _, p := range patches {
		grid := buildGridFromType6(p)
		cornerRGB, err := cornerColors(p.CornerColors, convert)
		if err != nil {
			return err
		}
		b.appendLattice(tessellatePatch(grid, cornerRGB, bounds))
	}
	// Report the corner extents, not the extent of the lattice points.
	if len(patches) > 0 {
		b.minX, b.minY, b.maxX, b.maxY = bounds[0], bounds[1], bounds[2], bounds[3]
	}
	return nil
}

// buildType7 tessellates every tensor-product patch into a lattice figure.
func (b *meshBuilder) buildType7(patches []Type7Patch, convert func([]float64) ([3]byte, error)) error {
	corners := make([][4]vec.Vec2, len(patches))
	for i, p := range patches {
		corners[i] = patchCorners7(p)
	}
	bounds := meshBoundsFromCorners(corners)

	for _, p := range patches {
		grid := buildGridFromType7(p)
		cornerRGB, err := cornerColors(p.CornerColors, convert)
		if err != nil {
			return err
		}
		b.appendLattice(tessellatePatch(grid, cornerRGB, bounds))
	}
	// Report the corner extents, not the extent of the lattice points.
	if len(patches) > 0 {
		b.minX, b.minY, b.maxX, b.maxY = bounds[0], bounds[1], bounds[2], bounds[3]
	}
	return nil
}

func cornerColors(raw [][]float64, convert func([]float64) ([3]byte, error)) (out [4][3]byte, err error) {
	for i := 0; i < 4 && i < len(raw); i++ {
		out[i], err = convert(raw[i])
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func (b *meshBuilder) appendLattice(verts []latticeVertex, splitX, splitY int) {
	if len(verts) != (splitX+1)*(splitY+1) {
		panic("shading: lattice size mismatch")
	}
	idxs := make([]int, len(verts))
	for i, v := range verts {
		idxs[i] = b.addVertex(v.pos, v.color)
	}
	b.figures = append(b.figures, rawFigure{kind: rawLattice, vertIdx: idxs, verticesPerRow: splitX + 1})
}
