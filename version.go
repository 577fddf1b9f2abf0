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

package pdf

import (
	"errors"
	"fmt"
)

// Version represents a PDF version number.
type Version int

const (
	V1_0 Version = iota
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6
	V1_7
	V2_0
)

func (v Version) String() string {
	if v < V1_0 || v > V2_0 {
		return fmt.Sprintf("pdf.Version(%d)", int(v))
	}
	if v == V2_0 {
		return "2.0"
	}
	return fmt.Sprintf("1.%d", int(v))
}

// ParseVersion parses a PDF version string such as "1.7" or "2.0".
func ParseVersion(s string) (Version, error) {
	for v := V1_0; v <= V2_0; v++ {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, errVersion
}

// CheckVersion reports whether the writer's PDF version is at least
// `earliest`.  If not, it returns a [VersionError] describing `operation`.
func (w *Writer) CheckVersion(operation string, earliest Version) error {
	if w.GetMeta().Version < earliest {
		return &VersionError{Operation: operation, Earliest: earliest}
	}
	return nil
}

// IsWrongVersion reports whether err is a [VersionError], i.e. whether an
// operation failed because the document's PDF version is too old.
func IsWrongVersion(err error) bool {
	var verr *VersionError
	return errors.As(err, &verr)
}
