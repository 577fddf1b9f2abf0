// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
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

package pdf_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/function"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/shading"
	"seehuhn.de/go/pdf/internal/debug/memfile"
)

func TestCopyReference(t *testing.T) {
	// build a chain of references: c -> b -> a -> 42
	orig, _ := memfile.NewPDFWriter(pdf.V2_0, nil)
	a := orig.Alloc()
	err := orig.Put(a, pdf.Integer(42))
	if err != nil {
		t.Fatal(err)
	}
	b := orig.Alloc()
	err = orig.Put(b, a)
	if err != nil {
		t.Fatal(err)
	}
	c := orig.Alloc()
	err = orig.Put(c, b)
	if err != nil {
		t.Fatal(err)
	}

	// copy the chain
	dest, _ := memfile.NewPDFWriter(pdf.V2_0, nil)
	copier := pdf.NewCopier(dest, orig)
	copiedC, err := copier.CopyReference(c)
	if err != nil {
		t.Fatal(err)
	}

	// check that copied reference points to the correct object
	obj, err := dest.Get(copiedC, true)
	if err != nil {
		t.Fatal(err)
	}
	if obj != pdf.Integer(42) {
		t.Fatalf("expected 42, got %v", obj)
	}
}

// TestCopyShading copies an embedded mesh shading, including its sample
// stream and colour function, into a second document and reads it back.
func TestCopyShading(t *testing.T) {
	src, _ := memfile.NewPDFWriter(pdf.V2_0, nil)
	rm := pdf.NewResourceManager(src)

	orig := &shading.Type4{
		ColorSpace:        color.SpaceDeviceRGB,
		BitsPerCoordinate: 16,
		BitsPerComponent:  8,
		BitsPerFlag:       8,
		Decode:            []float64{0, 100, 0, 100, 0, 1},
		F: &function.Type2{
			XMin: 0, XMax: 1,
			C0: []float64{1, 0, 0},
			C1: []float64{0, 0, 1},
			N:  1,
		},
		Vertices: []shading.Type4Vertex{
			{X: 0, Y: 0, Flag: 0, Color: []float64{0}},
			{X: 100, Y: 0, Flag: 0, Color: []float64{0.5}},
			{X: 50, Y: 100, Flag: 0, Color: []float64{1}},
		},
	}
	embedded, _, err := orig.Embed(rm)
	if err != nil {
		t.Fatal(err)
	}
	ref, ok := embedded.(pdf.Reference)
	if !ok {
		t.Fatalf("expected an indirect object, got %T", embedded)
	}

	dest, _ := memfile.NewPDFWriter(pdf.V2_0, nil)
	copier := pdf.NewCopier(dest, src)
	newRef, err := copier.CopyReference(ref)
	if err != nil {
		t.Fatal(err)
	}

	copied, err := shading.Extract(dest, newRef)
	if err != nil {
		t.Fatal(err)
	}

	opts := []cmp.Option{
		// compare field by field instead of calling the exact Equal method
		cmp.Transformer("fields", func(s *shading.Type4) shading.Type4 { return *s }),
		cmpopts.EquateApprox(0, 0.01), // allow for sample quantization
	}
	if diff := cmp.Diff(orig, copied, opts...); diff != "" {
		t.Errorf("copied shading differs (-want +got):\n%s", diff)
	}
}
