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
	"reflect"

	"seehuhn.de/go/pdf/graphics"
)

func (s *Type1) Equal(other graphics.Shading) bool {
	o, ok := other.(*Type1)
	return ok && reflect.DeepEqual(s, o)
}

func (s *Type2) Equal(other graphics.Shading) bool {
	o, ok := other.(*Type2)
	return ok && reflect.DeepEqual(s, o)
}

func (s *Type3) Equal(other graphics.Shading) bool {
	o, ok := other.(*Type3)
	return ok && reflect.DeepEqual(s, o)
}

func (s *Type4) Equal(other graphics.Shading) bool {
	o, ok := other.(*Type4)
	return ok && reflect.DeepEqual(s, o)
}

func (s *Type5) Equal(other graphics.Shading) bool {
	o, ok := other.(*Type5)
	return ok && reflect.DeepEqual(s, o)
}

func (s *Type6) Equal(other graphics.Shading) bool {
	o, ok := other.(*Type6)
	return ok && reflect.DeepEqual(s, o)
}

func (s *Type7) Equal(other graphics.Shading) bool {
	o, ok := other.(*Type7)
	return ok && reflect.DeepEqual(s, o)
}
