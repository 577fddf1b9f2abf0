// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

// Package pdf provides support for reading and writing PDF files.
//
// This package treats PDF files as containers holding a sequence of objects
// (typically dictionaries and streams).  Objects are written sequentially,
// but can be read in any order.
//
// A [Writer] writes a new PDF document one indirect object at a time; a
// [Reader] gives access to the objects of an existing document.  Both
// implement the [Getter] interface, which the extraction helpers
// ([GetDict], [GetArray], [GetFloatArray], ...) and the higher-level
// subpackages use to resolve indirect references.
//
// The following types represent the native PDF objects which can be stored
// in PDF files.  All of these implement the [Object] interface:
//
//	Array
//	Boolean
//	Dict
//	Integer
//	Name
//	Real
//	*Stream
//	String
//	Reference
//
// Subpackages implement PDF functions (seehuhn.de/go/pdf/function), colour
// spaces (seehuhn.de/go/pdf/graphics/color) and shadings
// (seehuhn.de/go/pdf/graphics/shading).
package pdf
