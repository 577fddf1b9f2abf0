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
	"math/rand"
	"testing"
)

func TestReadBitsMSBFirst(t *testing.T) {
	r := newBitReader([]byte{0b10110011, 0b01000001})

	got, err := r.readBits(3)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0b101 {
		t.Errorf("readBits(3) = %#b, want 0b101", got)
	}

	got, err = r.readBits(6)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0b100110 {
		t.Errorf("readBits(6) = %#b, want 0b100110", got)
	}

	got, err = r.readBits(7)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0b1000001 {
		t.Errorf("readBits(7) = %#b, want 0b1000001", got)
	}
}

func TestReadBitsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, width := range []int{1, 3, 5, 7, 8, 11, 12, 16, 17, 23, 24, 31, 32} {
		mask := uint32(1)<<uint(width) - 1
		if width == 32 {
			mask = 0xFFFFFFFF
		}

		const count = 13
		vals := make([]uint32, count)
		w := &bitWriter{}
		for i := range vals {
			vals[i] = uint32(rng.Uint64()) & mask
			w.writeBits(vals[i], width)
		}
		w.align()

		r := newBitReader(w.bytes())
		for i, want := range vals {
			got, err := r.readBits(width)
			if err != nil {
				t.Fatalf("width %d, value %d: %v", width, i, err)
			}
			if got != want {
				t.Errorf("width %d, value %d: got %d, want %d", width, i, got, want)
			}
		}
	}
}

func TestReadBitsInvalidWidth(t *testing.T) {
	r := newBitReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	for _, n := range []int{0, -1, 33} {
		if _, err := r.readBits(n); err == nil {
			t.Errorf("readBits(%d) succeeded, expected error", n)
		}
	}
}

func TestReadBitsMissingData(t *testing.T) {
	r := newBitReader([]byte{0xFF})
	if _, err := r.readBits(8); err != nil {
		t.Fatal(err)
	}
	_, err := r.readBits(1)
	if !IsMissingData(err) {
		t.Errorf("expected missing data error, got %v", err)
	}
}

func TestAlign(t *testing.T) {
	r := newBitReader([]byte{0xAB, 0xCD})
	if _, err := r.readBits(4); err != nil {
		t.Fatal(err)
	}
	r.align()
	got, err := r.readBits(8)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xCD {
		t.Errorf("readBits(8) after align = %#x, want 0xCD", got)
	}
	if r.hasData() {
		t.Error("hasData is true on an exhausted reader")
	}
}

func TestHasData(t *testing.T) {
	r := newBitReader([]byte{0x80})
	if !r.hasData() {
		t.Error("hasData is false on a fresh reader")
	}
	if _, err := r.readBits(2); err != nil {
		t.Fatal(err)
	}
	// 6 bits left in the partial byte
	if !r.hasData() {
		t.Error("hasData is false with buffered bits remaining")
	}
	if _, err := r.readBits(6); err != nil {
		t.Fatal(err)
	}
	if r.hasData() {
		t.Error("hasData is true after the last bit was consumed")
	}
}

func TestBitScale(t *testing.T) {
	if got := bitScale(8); got != 1.0/255 {
		t.Errorf("bitScale(8) = %g, want 1/255", got)
	}
	if got := bitScale(32); got != 2.3283064365386963e-10 {
		t.Errorf("bitScale(32) = %g, want 2^-32", got)
	}
}

func TestReadCoordinate(t *testing.T) {
	// raw bytes 0x00 and 0xFF map to the ends of the decode range
	r := newBitReader([]byte{0x00, 0xFF})
	x, y, err := r.readCoordinate(8, 0, 100, -50, 50)
	if err != nil {
		t.Fatal(err)
	}
	if x != 0 {
		t.Errorf("x = %g, want 0", x)
	}
	if y != 50 {
		t.Errorf("y = %g, want 50", y)
	}
}

func TestReadComponents(t *testing.T) {
	decode := []float64{0, 1, 0, 1, 0, 2, 1, 3}
	w := &bitWriter{}
	w.writeComponents([]float64{1, 2}, 8, decode, componentDecodeOffset)
	w.align()

	r := newBitReader(w.bytes())
	got, err := r.readComponents(2, 8, decode, componentDecodeOffset)
	if err != nil {
		t.Fatal(err)
	}
	// 8-bit quantization leaves an error of at most half a step per range
	for i, want := range []float64{1, 2} {
		if math.Abs(got[i]-want) > 2.0/255 {
			t.Errorf("component %d = %g, want %g", i, got[i], want)
		}
	}
}
