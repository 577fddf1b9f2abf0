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

// FigureKind identifies the tessellated figure variants that survive into
// a packed mesh IR. The transient patch representation never reaches
// this stage: [meshBuilder.buildType6] and [meshBuilder.buildType7]
// replace every patch with a lattice before packing runs.
type FigureKind int

const (
	FigureTriangles FigureKind = iota
	FigureLattice
)

// FigureIR is one figure's contribution to a packed mesh: Coords and
// Colors are byte offsets into the mesh's flattened coordinate and
// colour buffers (stride 2 and 3 respectively), not vertex numbers.
type FigureIR struct {
	Kind           FigureKind
	Coords         []int32
	Colors         []int32
	VerticesPerRow int // only meaningful for FigureLattice
}

// PackedMesh is the flattened, renderer-ready form of a decoded mesh
// shading: contiguous Float32 coordinate and Uint8 colour buffers, with
// every figure's vertex indices rewritten to byte offsets into them.
type PackedMesh struct {
	Coords  []float32
	Colors  []uint8
	Figures []FigureIR
	Bounds  [4]float64
}

// pack flattens b's vertex lists into contiguous buffers and rewrites
// every figure's vertex indices to byte offsets in place of the vertex
// numbers used while decoding.
func (b *meshBuilder) pack() PackedMesh {
	coords := make([]float32, 2*len(b.coords))
	for i, p := range b.coords {
		coords[2*i] = float32(p.X)
		coords[2*i+1] = float32(p.Y)
	}
	colors := make([]uint8, 3*len(b.colors))
	for i, c := range b.colors {
		colors[3*i], colors[3*i+1], colors[3*i+2] = c[0], c[1], c[2]
	}

	figures := make([]FigureIR, len(b.figures))
	for fi, f := range b.figures {
		out := FigureIR{VerticesPerRow: f.verticesPerRow}
		if f.kind == rawLattice {
			out.Kind = FigureLattice
		} else {
			out.Kind = FigureTriangles
		}
		out.Coords = make([]int32, len(f.vertIdx))
		out.Colors = make([]int32, len(f.vertIdx))
		for i, v := range f.vertIdx {
			out.Coords[i] = int32(2 * v)
			out.Colors[i] = int32(3 * v)
		}
		figures[fi] = out
	}

	return PackedMesh{Coords: coords, Colors: colors, Figures: figures, Bounds: b.bounds()}
}
