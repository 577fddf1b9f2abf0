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

// Extractor gives read access to a [Getter] together with a cache of
// already-decoded resources, so that a resource referenced from multiple
// places in a file is only decoded once.
//
// Packages which decode shared resources (functions, color spaces,
// patterns, shadings, ...) define their own typed accessors on top of
// Extractor; see for example the shading, color and function packages.
type Extractor struct {
	R Getter

	cache map[Reference]any
}

// NewExtractor creates an Extractor reading from r.
func NewExtractor(r Getter) *Extractor {
	return &Extractor{
		R:     r,
		cache: map[Reference]any{},
	}
}

// GetCached returns a previously cached value for ref and reports whether
// one was found.
func (x *Extractor) GetCached(ref Reference) (any, bool) {
	v, ok := x.cache[ref]
	return v, ok
}

// PutCached records v as the decoded value for ref.
func (x *Extractor) PutCached(ref Reference, v any) {
	x.cache[ref] = v
}

// resolveCached decodes obj using decode, unless obj is a reference to an
// object that has already been decoded and cached, in which case the
// cached value is returned.  This is a helper for package-level Extract
// functions that take an [*Extractor].
func resolveCached[T any](x *Extractor, obj Object, decode func(*Extractor, Native) (T, error)) (T, error) {
	var zero T
	if ref, ok := obj.(Reference); ok {
		if cached, ok := x.GetCached(ref); ok {
			if t, ok := cached.(T); ok {
				return t, nil
			}
		}
		native, err := Resolve(x.R, ref)
		if err != nil {
			return zero, err
		}
		v, err := decode(x, native)
		if err != nil {
			return zero, err
		}
		x.PutCached(ref, v)
		return v, nil
	}

	native, err := Resolve(x.R, obj)
	if err != nil {
		return zero, err
	}
	return decode(x, native)
}
