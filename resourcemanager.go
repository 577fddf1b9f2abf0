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

// Unused is returned alongside an embedded object by [Embedder.Embed].  It
// exists so that callers which need to release a partially-embedded
// resource on a later error have something to call Close on; the zero value
// does nothing.
type Unused struct {
	closeFn func() error
}

// Close releases any resources associated with an object that was embedded
// but never used in the final document.  Most embedders never allocate
// anything that needs releasing, so the zero Unused is a no-op.
func (u Unused) Close() error {
	if u.closeFn == nil {
		return nil
	}
	return u.closeFn()
}

// Embedder is implemented by values which know how to write themselves into
// a PDF file as an indirect (or sometimes direct) object.
type Embedder interface {
	// Embed writes the receiver to rm.Out and returns the resulting PDF
	// representation.  Repeated calls with equal receivers are not
	// required to return identical references: use [ResourceManager.Embed]
	// for that.
	Embed(rm *ResourceManager) (Native, Unused, error)
}

// ResourceManager coordinates embedding of shared resources (functions,
// color spaces, patterns, shadings, ...) into a single [Writer], making
// sure that identical resources are only written once.
type ResourceManager struct {
	Out *Writer

	cache  map[any]Native
	closed bool
}

// NewResourceManager creates a ResourceManager that embeds resources into w.
func NewResourceManager(w *Writer) *ResourceManager {
	return &ResourceManager{
		Out:   w,
		cache: map[any]Native{},
	}
}

// Embed embeds x into rm.Out.  If an identical value (compared using Go
// equality, which requires x to be comparable) has already been embedded
// through this manager, the cached result is returned instead.
func (rm *ResourceManager) Embed(x Embedder) (Native, error) {
	if key, ok := cacheKey(x); ok {
		if cached, ok := rm.cache[key]; ok {
			return cached, nil
		}
		embedded, _, err := x.Embed(rm)
		if err != nil {
			return nil, err
		}
		rm.cache[key] = embedded
		return embedded, nil
	}

	embedded, _, err := x.Embed(rm)
	return embedded, err
}

// cacheKey returns a value suitable for use as a map key representing x, if
// x's dynamic type is comparable.
func cacheKey(x any) (key any, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_ = x == x
	return x, true
}

// Close finishes all pending writes started by this resource manager.
func (rm *ResourceManager) Close() error {
	rm.closed = true
	return nil
}
