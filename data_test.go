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

package pdf

import (
	"bytes"
	"io"
	"testing"
)

func TestDataObjects(t *testing.T) {
	d := NewData(V1_7)

	ref := d.Alloc()
	if err := d.Put(ref, Dict{"A": Integer(1)}); err != nil {
		t.Fatal(err)
	}
	if err := d.Put(ref, Integer(2)); err == nil {
		t.Error("duplicate Put succeeded")
	}

	obj, err := d.Get(ref, true)
	if err != nil {
		t.Fatal(err)
	}
	dict, ok := obj.(Dict)
	if !ok {
		t.Fatalf("got %T, want Dict", obj)
	}

	// Get returns a copy, so the stored object must be unaffected
	dict["A"] = Integer(99)
	obj, err = d.Get(ref, true)
	if err != nil {
		t.Fatal(err)
	}
	if n := obj.(Dict)["A"]; n != Integer(1) {
		t.Errorf("stored object was mutated through the copy: %v", n)
	}
}

func TestDataStream(t *testing.T) {
	d := NewData(V1_7)

	ref := d.Alloc()
	w, err := d.OpenStream(ref, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "stream data"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	obj, err := d.Get(ref, true)
	if err != nil {
		t.Fatal(err)
	}
	stm, ok := obj.(*Stream)
	if !ok {
		t.Fatalf("got %T, want *Stream", obj)
	}
	body, err := io.ReadAll(stm.R)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "stream data" {
		t.Errorf("stream body = %q", body)
	}

	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("%PDF-1.7")) {
		t.Error("output is missing the PDF header")
	}
}
