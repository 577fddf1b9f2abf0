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
	"math"
	"sync"

	"seehuhn.de/go/geom/vec"
)

// triangleDensity controls how finely a patch is subdivided relative to
// its share of the overall mesh extent; splitX/splitY are clamped to
// [minSplit, maxSplit] regardless of the computed density.
const (
	triangleDensity = 20.0
	minSplit        = 3
	maxSplit        = 20
)

// bernsteinCache holds lazily computed, immutable cubic Bernstein basis
// tables keyed by subdivision count. A handful of split counts recur
// across a page's patches, so entries are kept for the process lifetime
// rather than evicted.
var bernsteinCache sync.Map // map[int][][4]float64

// bernsteinTable returns the n+1 rows of cubic Bernstein weights for a
// subdivision into n equal steps; row r holds the weights for parameter
// t = r/n.
func bernsteinTable(n int) [][4]float64 {
	if v, ok := bernsteinCache.Load(n); ok {
		return v.([][4]float64)
	}
	table := make([][4]float64, n+1)
	for r := 0; r <= n; r++ {
		t := float64(r) / float64(n)
		u := 1 - t
		table[r] = [4]float64{u * u * u, 3 * t * u * u, 3 * t * t * u, t * t * t}
	}
	actual, _ := bernsteinCache.LoadOrStore(n, table)
	return actual.([][4]float64)
}

func clampSplit(n int) int {
	if n < minSplit {
		return minSplit
	}
	if n > maxSplit {
		return maxSplit
	}
	return n
}

// streamToGrid maps the 12 boundary control points, in patch-stream
// order, to their slot in the canonical row-major 4x4 Bezier control
// grid (corners at slots 0, 3, 12, 15).
var streamToGrid = [12]int{0, 1, 2, 3, 7, 11, 15, 14, 13, 12, 8, 4}

// interiorStreamSlots gives the grid slots of a type 7 patch's 4 explicit
// interior control points, in the order they appear in the stream.
var interiorStreamSlots = [4]int{5, 6, 10, 9}

// buildGridFromType6 lays out a Coons patch's 12 boundary points on the
// canonical grid and synthesizes the 4 interior points (PDF 2.0,
// 8.7.4.5.7: a Coons patch has no interior control points of its own).
func buildGridFromType6(p Type6Patch) (grid [16]vec.Vec2) {
	for i, slot := range streamToGrid {
		grid[slot] = p.ControlPoints[i]
	}
	grid[5], grid[6], grid[9], grid[10] = coonsInterior(grid)
	return grid
}

// buildGridFromType7 lays out a tensor-product patch's 16 explicit
// control points on the canonical grid.
func buildGridFromType7(p Type7Patch) (grid [16]vec.Vec2) {
	for i, slot := range streamToGrid {
		grid[slot] = p.ControlPoints[i]
	}
	for i, slot := range interiorStreamSlots {
		grid[slot] = p.ControlPoints[12+i]
	}
	return grid
}

// coonsInterior derives a Coons patch's 4 interior control points from its
// 12 boundary points, by the standard bilinear-blend construction used to
// turn a Coons patch into an equivalent tensor-product patch.
func coonsInterior(p [16]vec.Vec2) (p5, p6, p9, p10 vec.Vec2) {
	c00, c03, c30, c33 := p[0], p[3], p[12], p[15]

	blend := func(corner, opposite, edgeA, edgeB, otherA, otherB, adjA, adjB vec.Vec2) vec.Vec2 {
		return vec.Vec2{
			X: (-4*corner.X - opposite.X + 6*(edgeA.X+edgeB.X) - 2*(otherA.X+otherB.X) + 3*(adjA.X+adjB.X)) / 9,
			Y: (-4*corner.Y - opposite.Y + 6*(edgeA.Y+edgeB.Y) - 2*(otherA.Y+otherB.Y) + 3*(adjA.Y+adjB.Y)) / 9,
		}
	}

	p5 = blend(c00, c33, p[1], p[4], c03, c30, p[7], p[13])
	p6 = blend(c03, c30, p[2], p[7], c00, c33, p[4], p[14])
	p9 = blend(c30, c03, p[13], p[8], c33, c00, p[1], p[11])
	p10 = blend(c33, c00, p[14], p[11], c30, c03, p[2], p[8])
	return p5, p6, p9, p10
}

// latticeVertex is one row-major vertex produced by [tessellatePatch].
type latticeVertex struct {
	pos   vec.Vec2
	color [3]byte
}

// tessellatePatch subdivides a 16-point Bezier patch grid, with corner
// colours cornerRGB[0..3] at grid slots 0, 3, 15, 12 respectively, into a
// row-major lattice of (splitX+1) x (splitY+1) vertices. meshBounds is the
// bounding box of every patch's corners in the mesh, used to scale this
// patch's subdivision density to its share of the whole.
func tessellatePatch(grid [16]vec.Vec2, cornerRGB [4][3]byte, meshBounds [4]float64) (verts []latticeVertex, splitX, splitY int) {
	minX, maxX := grid[0].X, grid[0].X
	minY, maxY := grid[0].Y, grid[0].Y
	for _, idx := range [4]int{0, 3, 12, 15} {
		minX = math.Min(minX, grid[idx].X)
		maxX = math.Max(maxX, grid[idx].X)
		minY = math.Min(minY, grid[idx].Y)
		maxY = math.Max(maxY, grid[idx].Y)
	}

	meshDX := meshBounds[2] - meshBounds[0]
	meshDY := meshBounds[3] - meshBounds[1]
	splitX, splitY = minSplit, minSplit
	if meshDX > 0 {
		splitX = clampSplit(int(math.Ceil(triangleDensity * (maxX - minX) / meshDX)))
	}
	if meshDY > 0 {
		splitY = clampSplit(int(math.Ceil(triangleDensity * (maxY - minY) / meshDY)))
	}

	bx := bernsteinTable(splitX)
	by := bernsteinTable(splitY)

	verts = make([]latticeVertex, (splitX+1)*(splitY+1))
	for row := 0; row <= splitY; row++ {
		left := lerpColorTrunc(cornerRGB[0], cornerRGB[3], row, splitY)
		right := lerpColorTrunc(cornerRGB[1], cornerRGB[2], row, splitY)
		for col := 0; col <= splitX; col++ {
			// accumulated in float32 so the interpolated position matches
			// the packed IR's Float32 coordinate buffer bit-for-bit.
			var x, y float32
			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					w := float32(by[row][i] * bx[col][j])
					if w == 0 {
						continue
					}
					pt := grid[4*i+j]
					x += w * float32(pt.X)
					y += w * float32(pt.Y)
				}
			}
			v := latticeVertex{pos: vec.Vec2{X: float64(x), Y: float64(y)}, color: lerpColorTrunc(left, right, col, splitX)}

			// the four corners reuse the original control point and
			// colour verbatim rather than the (mathematically
			// equivalent, but not bit-identical) Bernstein evaluation.
			switch {
			case row == 0 && col == 0:
				v = latticeVertex{pos: grid[0], color: cornerRGB[0]}
			case row == 0 && col == splitX:
				v = latticeVertex{pos: grid[3], color: cornerRGB[1]}
			case row == splitY && col == splitX:
				v = latticeVertex{pos: grid[15], color: cornerRGB[2]}
			case row == splitY && col == 0:
				v = latticeVertex{pos: grid[12], color: cornerRGB[3]}
			}
			verts[row*(splitX+1)+col] = v
		}
	}
	return verts, splitX, splitY
}

// lerpColorTrunc linearly interpolates between a and b at step i of n,
// truncating each channel toward zero.
func lerpColorTrunc(a, b [3]byte, i, n int) [3]byte {
	if n == 0 {
		return a
	}
	var out [3]byte
	for k := 0; k < 3; k++ {
		av, bv := float64(a[k]), float64(b[k])
		out[k] = byte(int(av + (bv-av)*float64(i)/float64(n)))
	}
	return out
}
