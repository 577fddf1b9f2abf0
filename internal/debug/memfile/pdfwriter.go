// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

// Package memfile provides an in-memory byte sink for tests that need a
// [pdf.Writer] without touching the filesystem.
package memfile

import "seehuhn.de/go/pdf"

// Buffer is an io.Writer that accumulates everything written to it.
type Buffer struct {
	Data []byte
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.Data = append(b.Data, p...)
	return len(p), nil
}

// NewPDFWriter creates a [pdf.Writer] of the given version which writes into
// a freshly allocated Buffer.
func NewPDFWriter(v pdf.Version, opt *pdf.WriterOptions) (*pdf.Writer, *Buffer) {
	buf := New()
	w, err := pdf.NewWriter(buf, v, opt)
	if err != nil {
		panic(err)
	}
	return w, buf
}

// AddBlankPage adds a minimal page tree with a single empty page to w, so
// that generated test files have the document structure readers expect.
func AddBlankPage(w *pdf.Writer) error {
	pagesRef := w.Alloc()
	pageRef := w.Alloc()

	page := pdf.Dict{
		"Type":     pdf.Name("Page"),
		"Parent":   pagesRef,
		"MediaBox": &pdf.Rectangle{URx: 612, URy: 792},
	}
	if err := w.Put(pageRef, page); err != nil {
		return err
	}
	pages := pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  pdf.Array{pageRef},
		"Count": pdf.Integer(1),
	}
	if err := w.Put(pagesRef, pages); err != nil {
		return err
	}
	w.GetMeta().Catalog.Pages = pagesRef
	return nil
}
