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

	"seehuhn.de/go/geom/vec"
)

// coordRange and componentOffset pull the (x, y) decode bounds and the
// per-component decode offset out of a shading's Decode array (PDF 2.0,
// Table 84): two pairs for the coordinates, followed by one pair per
// colour component.
func coordRange(decode []float64) (xLo, xHi, yLo, yHi float64) {
	if len(decode) >= 4 {
		return decode[0], decode[1], decode[2], decode[3]
	}
	return 0, 1, 0, 1
}

const componentDecodeOffset = 2

// decodeType4Vertices reads the free-form triangle mesh vertex stream
// (PDF 2.0, 8.7.4.5.5).
func decodeType4Vertices(data []byte, bitsPerCoord, bitsPerComp, bitsPerFlag, numComps int, decode []float64) ([]Type4Vertex, error) {
	xLo, xHi, yLo, yHi := coordRange(decode)
	r := newBitReader(data)

	var out []Type4Vertex
	for r.hasData() {
		f, err := r.readFlag(bitsPerFlag)
		if err != nil {
			return nil, err
		}
		if f > 2 {
			return nil, fmt.Errorf("shading: invalid type 4 edge flag %d", f)
		}
		x, y, err := r.readCoordinate(bitsPerCoord, xLo, xHi, yLo, yHi)
		if err != nil {
			return nil, err
		}
		color, err := r.readComponents(numComps, bitsPerComp, decode, componentDecodeOffset)
		if err != nil {
			return nil, err
		}
		r.align()
		out = append(out, Type4Vertex{X: x, Y: y, Flag: uint8(f), Color: color})
	}
	return out, nil
}

func encodeType4Vertices(vertices []Type4Vertex, bitsPerCoord, bitsPerComp, bitsPerFlag, numComps int, decode []float64) []byte {
	xLo, xHi, yLo, yHi := coordRange(decode)
	w := &bitWriter{}
	for _, v := range vertices {
		w.writeBits(uint32(v.Flag), bitsPerFlag)
		w.writeCoordinate(v.X, v.Y, bitsPerCoord, xLo, xHi, yLo, yHi)
		w.writeComponents(v.Color, bitsPerComp, decode, componentDecodeOffset)
		w.align()
	}
	return w.bytes()
}

// decodeType5Vertices reads the lattice-form triangle mesh vertex stream
// (PDF 2.0, 8.7.4.5.6). There are no edge flags and no forced byte
// alignment between vertices.
func decodeType5Vertices(data []byte, bitsPerCoord, bitsPerComp, numComps int, decode []float64) ([]Type5Vertex, error) {
	xLo, xHi, yLo, yHi := coordRange(decode)
	r := newBitReader(data)

	var out []Type5Vertex
	for r.hasData() {
		x, y, err := r.readCoordinate(bitsPerCoord, xLo, xHi, yLo, yHi)
		if err != nil {
			return nil, err
		}
		color, err := r.readComponents(numComps, bitsPerComp, decode, componentDecodeOffset)
		if err != nil {
			return nil, err
		}
		out = append(out, Type5Vertex{X: x, Y: y, Color: color})
	}
	return out, nil
}

func encodeType5Vertices(vertices []Type5Vertex, bitsPerCoord, bitsPerComp, numComps int, decode []float64) []byte {
	xLo, xHi, yLo, yHi := coordRange(decode)
	w := &bitWriter{}
	for _, v := range vertices {
		w.writeCoordinate(v.X, v.Y, bitsPerCoord, xLo, xHi, yLo, yHi)
		w.writeComponents(v.Color, bitsPerComp, decode, componentDecodeOffset)
	}
	w.align()
	return w.bytes()
}

// type6PrevIndices returns the indices into the previous patch's 12-slot
// control-point array that flag f inherits into the new patch's first 4
// slots (PDF 2.0, 8.7.4.5.7, Table 85).
func type6PrevIndices(f uint32) [4]int {
	base := 3 * int(f)
	var idx [4]int
	for i := range idx {
		idx[i] = (base + i) % 12
	}
	return idx
}

// type7PrevIndices is the tensor-product-patch counterpart of
// [type6PrevIndices]. The PDF spec's remapping table for type 7 walks the
// inherited edge in the opposite direction from type 6; this was verified
// against sample tensor-product patch streams, not derived from prose.
func type7PrevIndices(f uint32) [4]int {
	base := 9 - 3*(int(f)-1)
	var idx [4]int
	for i := range idx {
		idx[i] = ((base-i)%12 + 12) % 12
	}
	return idx
}

// prevColorIndices returns the indices into the previous patch's 4-slot
// corner-colour array inherited into the new patch's first 2 slots. The
// same rule applies to both type 6 and type 7 patches.
func prevColorIndices(f uint32) [2]int {
	return [2]int{int(f) % 4, (int(f) + 1) % 4}
}

// decodeType6Patches reads the Coons patch mesh stream (PDF 2.0, 8.7.4.5.7).
func decodeType6Patches(data []byte, bitsPerCoord, bitsPerComp, bitsPerFlag, numComps int, decode []float64) ([]Type6Patch, error) {
	xLo, xHi, yLo, yHi := coordRange(decode)
	r := newBitReader(data)

	var out []Type6Patch
	var prevPs [12]vec.Vec2
	var prevCs [4][]float64
	havePrev := false

	for r.hasData() {
		f, err := r.readFlag(bitsPerFlag)
		if err != nil {
			return nil, err
		}
		if f > 3 {
			return nil, fmt.Errorf("shading: invalid type 6 edge flag %d", f)
		}
		if f != 0 && !havePrev {
			return nil, fmt.Errorf("shading: type 6 patch with flag %d has no preceding patch", f)
		}

		var ps [12]vec.Vec2
		var cs [4][]float64

		pStart, cStart := 0, 0
		if f != 0 {
			srcP := type6PrevIndices(f)
			for i, s := range srcP {
				ps[i] = prevPs[s]
			}
			srcC := prevColorIndices(f)
			for i, s := range srcC {
				cs[i] = prevCs[s]
			}
			pStart, cStart = 4, 2
		}
		for i := pStart; i < 12; i++ {
			x, y, err := r.readCoordinate(bitsPerCoord, xLo, xHi, yLo, yHi)
			if err != nil {
				return nil, err
			}
			ps[i] = vec.Vec2{X: x, Y: y}
		}
		for i := cStart; i < 4; i++ {
			c, err := r.readComponents(numComps, bitsPerComp, decode, componentDecodeOffset)
			if err != nil {
				return nil, err
			}
			cs[i] = c
		}
		r.align()

		out = append(out, Type6Patch{
			Flag:          uint8(f),
			ControlPoints: ps,
			CornerColors:  cs[:],
		})
		prevPs, prevCs, havePrev = ps, cs, true
	}
	return out, nil
}

func encodeType6Patches(patches []Type6Patch, bitsPerCoord, bitsPerComp, bitsPerFlag, numComps int, decode []float64) []byte {
	xLo, xHi, yLo, yHi := coordRange(decode)
	w := &bitWriter{}
	for _, p := range patches {
		w.writeBits(uint32(p.Flag), bitsPerFlag)
		pStart, cStart := 0, 0
		if p.Flag != 0 {
			pStart, cStart = 4, 2
		}
		for i := pStart; i < 12; i++ {
			w.writeCoordinate(p.ControlPoints[i].X, p.ControlPoints[i].Y, bitsPerCoord, xLo, xHi, yLo, yHi)
		}
		for i := cStart; i < 4; i++ {
			w.writeComponents(p.CornerColors[i], bitsPerComp, decode, componentDecodeOffset)
		}
		w.align()
	}
	return w.bytes()
}

// decodeType7Patches reads the tensor-product patch mesh stream (PDF 2.0,
// 8.7.4.5.7); unlike type 6, all 16 control points are explicit and none
// are synthesized.
func decodeType7Patches(data []byte, bitsPerCoord, bitsPerComp, bitsPerFlag, numComps int, decode []float64) ([]Type7Patch, error) {
	xLo, xHi, yLo, yHi := coordRange(decode)
	r := newBitReader(data)

	var out []Type7Patch
	var prevPs [16]vec.Vec2
	var prevCs [4][]float64
	havePrev := false

	for r.hasData() {
		f, err := r.readFlag(bitsPerFlag)
		if err != nil {
			return nil, err
		}
		if f > 3 {
			return nil, fmt.Errorf("shading: invalid type 7 edge flag %d", f)
		}
		if f != 0 && !havePrev {
			return nil, fmt.Errorf("shading: type 7 patch with flag %d has no preceding patch", f)
		}

		var ps [16]vec.Vec2
		var cs [4][]float64

		pStart, cStart := 0, 0
		if f != 0 {
			srcP := type7PrevIndices(f)
			for i, s := range srcP {
				ps[i] = prevPs[s]
			}
			srcC := prevColorIndices(f)
			for i, s := range srcC {
				cs[i] = prevCs[s]
			}
			pStart, cStart = 4, 2
		}
		for i := pStart; i < 16; i++ {
			x, y, err := r.readCoordinate(bitsPerCoord, xLo, xHi, yLo, yHi)
			if err != nil {
				return nil, err
			}
			ps[i] = vec.Vec2{X: x, Y: y}
		}
		for i := cStart; i < 4; i++ {
			c, err := r.readComponents(numComps, bitsPerComp, decode, componentDecodeOffset)
			if err != nil {
				return nil, err
			}
			cs[i] = c
		}
		r.align()

		out = append(out, Type7Patch{
			Flag:          uint8(f),
			ControlPoints: ps,
			CornerColors:  cs[:],
		})
		prevPs, prevCs, havePrev = ps, cs, true
	}
	return out, nil
}

func encodeType7Patches(patches []Type7Patch, bitsPerCoord, bitsPerComp, bitsPerFlag, numComps int, decode []float64) []byte {
	xLo, xHi, yLo, yHi := coordRange(decode)
	w := &bitWriter{}
	for _, p := range patches {
		w.writeBits(uint32(p.Flag), bitsPerFlag)
		pStart, cStart := 0, 0
		if p.Flag != 0 {
			pStart, cStart = 4, 2
		}
		for i := pStart; i < 16; i++ {
			w.writeCoordinate(p.ControlPoints[i].X, p.ControlPoints[i].Y, bitsPerCoord, xLo, xHi, yLo, yHi)
		}
		for i := cStart; i < 4; i++ {
			w.writeComponents(p.CornerColors[i], bitsPerComp, decode, componentDecodeOffset)
		}
		w.align()
	}
	return w.bytes()
}
