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

package pdf

import "fmt"

// pdfDocEncoding maps the code points 0-255 of PDFDocEncoding to Unicode
// runes.  Every code point maps to the rune of the same value; the code
// points where PDFDocEncoding differs from Latin-1 are not remapped.
var pdfDocEncoding = func() [256]rune {
	var tbl [256]rune
	for i := range tbl {
		tbl[i] = rune(i)
	}
	return tbl
}()

// PDFDocEncode tries to encode s using PDFDocEncoding.  It fails (ok=false)
// if s contains a rune outside the encodable range.
func PDFDocEncode(s string) (buf []byte, ok bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 255 {
			return nil, false
		}
		out = append(out, byte(r))
	}
	return out, true
}

// PDFDocDecode decodes a string encoded using PDFDocEncoding.
func PDFDocDecode(s String) string {
	rr := make([]rune, len(s))
	for i, b := range s {
		rr[i] = pdfDocEncoding[b]
	}
	return string(rr)
}

// Wrap annotates err with the name of the operation during which it
// occurred, unless err is nil.
func Wrap(err error, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// checkCompressed validates the arguments to [Data.WriteCompressed]: there
// must be exactly one reference per object, and the references must be
// distinct.
func checkCompressed(refs []Reference, objects []Object) error {
	if len(refs) != len(objects) {
		return fmt.Errorf("pdf: %d references but %d objects", len(refs), len(objects))
	}
	seen := make(map[Reference]bool, len(refs))
	for _, ref := range refs {
		if seen[ref] {
			return fmt.Errorf("pdf: duplicate reference %s", ref)
		}
		seen[ref] = true
	}
	return nil
}
