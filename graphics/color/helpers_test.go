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

package color

// mustColor panics if constructing a colour failed; used in tests that
// build colour literals from fallible constructors.
func mustColor(c Color, err error) Color {
	if err != nil {
		panic(err)
	}
	return c
}

// isValues reports whether got matches want element by element.
func isValues(got []float64, want ...float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i, v := range want {
		if got[i] != v {
			return false
		}
	}
	return true
}
