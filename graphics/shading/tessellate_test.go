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
	"testing"

	"seehuhn.de/go/geom/vec"
)

func TestBernsteinRowsSumToOne(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 10, 20} {
		table := bernsteinTable(n)
		if len(table) != n+1 {
			t.Fatalf("bernsteinTable(%d) has %d rows, want %d", n, len(table), n+1)
		}
		for r, row := range table {
			sum := row[0] + row[1] + row[2] + row[3]
			if math.Abs(sum-1) > 1e-12 {
				t.Errorf("n=%d, row %d: weights sum to %g", n, r, sum)
			}
		}
	}
}

func TestBernsteinEndpoints(t *testing.T) {
	table := bernsteinTable(7)
	if table[0] != [4]float64{1, 0, 0, 0} {
		t.Errorf("row 0 = %v, want [1 0 0 0]", table[0])
	}
	if table[7] != [4]float64{0, 0, 0, 1} {
		t.Errorf("row n = %v, want [0 0 0 1]", table[7])
	}
}

func TestBernsteinCacheReuse(t *testing.T) {
	a := bernsteinTable(13)
	b := bernsteinTable(13)
	if &a[0] != &b[0] {
		t.Error("bernsteinTable(13) built the same table twice")
	}
}

func TestClampSplit(t *testing.T) {
	cases := []struct{ in, want int }{
		{-5, minSplit},
		{0, minSplit},
		{3, 3},
		{7, 7},
		{20, 20},
		{100, maxSplit},
	}
	for _, c := range cases {
		if got := clampSplit(c.in); got != c.want {
			t.Errorf("clampSplit(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

// flatSquareGrid is the control grid of an undistorted unit square: all
// edges are straight lines with evenly spaced control points.
func flatSquareGrid() [16]vec.Vec2 {
	var grid [16]vec.Vec2
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			grid[4*i+j] = vec.Vec2{X: float64(j) / 3, Y: float64(i) / 3}
		}
	}
	return grid
}

func TestCoonsInteriorFlatPatch(t *testing.T) {
	// For a flat patch the Coons construction must reproduce the bilinear
	// interior points exactly.
	grid := flatSquareGrid()
	p5, p6, p9, p10 := coonsInterior(grid)

	check := func(name string, got, want vec.Vec2) {
		if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
			t.Errorf("%s = (%g, %g), want (%g, %g)", name, got.X, got.Y, want.X, want.Y)
		}
	}
	check("p5", p5, vec.Vec2{X: 1.0 / 3, Y: 1.0 / 3})
	check("p6", p6, vec.Vec2{X: 2.0 / 3, Y: 1.0 / 3})
	check("p9", p9, vec.Vec2{X: 1.0 / 3, Y: 2.0 / 3})
	check("p10", p10, vec.Vec2{X: 2.0 / 3, Y: 2.0 / 3})
}

func TestTessellateCornerPreservation(t *testing.T) {
	grid := flatSquareGrid()
	cornerRGB := [4][3]byte{
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
		{255, 255, 255},
	}
	meshBounds := [4]float64{0, 0, 1, 1}

	verts, splitX, splitY := tessellatePatch(grid, cornerRGB, meshBounds)

	// the patch spans the whole mesh, so the density is maximal
	if splitX != maxSplit || splitY != maxSplit {
		t.Fatalf("splitX, splitY = %d, %d, want %d, %d", splitX, splitY, maxSplit, maxSplit)
	}
	if len(verts) != (splitX+1)*(splitY+1) {
		t.Fatalf("got %d vertices, want %d", len(verts), (splitX+1)*(splitY+1))
	}

	corners := []struct {
		idx   int
		pos   vec.Vec2
		color [3]byte
	}{
		{0, grid[0], cornerRGB[0]},
		{splitX, grid[3], cornerRGB[1]},
		{splitY*(splitX+1) + splitX, grid[15], cornerRGB[2]},
		{splitY * (splitX + 1), grid[12], cornerRGB[3]},
	}
	for _, c := range corners {
		v := verts[c.idx]
		if v.pos != c.pos {
			t.Errorf("vertex %d at (%g, %g), want (%g, %g)", c.idx, v.pos.X, v.pos.Y, c.pos.X, c.pos.Y)
		}
		if v.color != c.color {
			t.Errorf("vertex %d has colour %v, want %v", c.idx, v.color, c.color)
		}
	}
}

func TestTessellateSplitScaling(t *testing.T) {
	// a patch covering a tenth of the mesh in x gets a tenth of the
	// subdivision density, clamped from below
	grid := flatSquareGrid()
	for i := range grid {
		grid[i].X *= 0.1
	}
	meshBounds := [4]float64{0, 0, 1, 1}
	_, splitX, splitY := tessellatePatch(grid, [4][3]byte{}, meshBounds)
	if splitX != 3 {
		t.Errorf("splitX = %d, want 3", splitX)
	}
	if splitY != maxSplit {
		t.Errorf("splitY = %d, want %d", splitY, maxSplit)
	}
}

func TestTessellateDegeneratePatch(t *testing.T) {
	// all control points on one line
	var grid [16]vec.Vec2
	for i := range grid {
		grid[i] = vec.Vec2{X: float64(i), Y: float64(i)}
	}
	verts, _, _ := tessellatePatch(grid, [4][3]byte{}, [4]float64{0, 0, 15, 15})
	for i, v := range verts {
		if math.IsNaN(v.pos.X) || math.IsNaN(v.pos.Y) {
			t.Fatalf("vertex %d is NaN", i)
		}
	}
}

func TestLerpColorTrunc(t *testing.T) {
	a := [3]byte{0, 100, 255}
	b := [3]byte{255, 0, 255}

	if got := lerpColorTrunc(a, b, 0, 3); got != a {
		t.Errorf("step 0 = %v, want %v", got, a)
	}
	if got := lerpColorTrunc(a, b, 3, 3); got != b {
		t.Errorf("step 3 = %v, want %v", got, b)
	}

	// intermediate channels truncate toward zero: 255/3 = 85,
	// 100 - 100/3 = 66.66 -> 66
	want := [3]byte{85, 66, 255}
	if got := lerpColorTrunc(a, b, 1, 3); got != want {
		t.Errorf("step 1 = %v, want %v", got, want)
	}

	if got := lerpColorTrunc(a, b, 0, 0); got != a {
		t.Errorf("n=0 = %v, want %v", got, a)
	}
}

func TestStreamToGridLayout(t *testing.T) {
	// the 12 boundary slots and 4 interior slots must cover all 16 grid
	// positions exactly once
	var seen [16]bool
	for _, slot := range streamToGrid {
		if seen[slot] {
			t.Fatalf("grid slot %d assigned twice", slot)
		}
		seen[slot] = true
	}
	for _, slot := range interiorStreamSlots {
		if seen[slot] {
			t.Fatalf("grid slot %d assigned twice", slot)
		}
		seen[slot] = true
	}
	for slot, ok := range seen {
		if !ok {
			t.Errorf("grid slot %d never assigned", slot)
		}
	}
}
