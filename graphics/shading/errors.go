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

import "errors"

// errMissingData marks a truncated mesh stream: the decoder ran out of
// bytes in the middle of a vertex or patch.  Unlike a malformed stream
// (bad flag value, inconsistent bit widths), this failure is retryable by
// a caller that is still receiving the underlying content stream, so it
// is kept distinct from the other decode errors.
var errMissingData = errors.New("shading: missing data")

// IsMissingData reports whether err (or a wrapped error) indicates that a
// mesh stream ended before a complete vertex or patch could be read.
func IsMissingData(err error) bool {
	return errors.Is(err, errMissingData)
}
