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

// Package graphics collects the shared interfaces used by the PDF graphics
// subsystem (shadings, patterns and the content-stream machinery built on
// top of them).
package graphics

import "seehuhn.de/go/pdf"

// Shading represents a PDF shading dictionary (PDF 2.0, 8.7.4.5): a smooth
// colour field defined either by a gradient function (types 1-3) or by a
// mesh of triangles or bicubic patches (types 4-7).
type Shading interface {
	pdf.Embedder

	// ShadingType returns the value of the shading's /ShadingType entry,
	// an integer between 1 and 7.
	ShadingType() int

	// Equal reports whether other describes the same shading.
	Equal(other Shading) bool
}
