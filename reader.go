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
	"bytes"
	"errors"
	"io"
)

// ReaderOptions controls the behaviour of [NewReader].
type ReaderOptions struct {
	// ReadPassword is a callback for obtaining the password of an encrypted
	// document; attempt counts from 0.  NewReader stores it but does not
	// call it.
	ReadPassword func(ID []byte, attempt int) string

	// ErrorHandling selects how the reader reacts to problems in a
	// malformed file.
	ErrorHandling ErrorHandling
}

// ErrorHandling names a policy for recoverable problems in a malformed PDF
// file.  [NewReader] stores the selected value in the [Reader], which does
// not consult it.
type ErrorHandling int

const (
	// ErrorHandlingStrict aborts reading at the first problem found.
	ErrorHandlingStrict ErrorHandling = iota

	// ErrorHandlingReport continues reading where possible, substituting
	// null objects for unreadable data.
	ErrorHandlingReport
)

type xrefEntry struct {
	Offset     int64
	Generation uint16
	InStream   Reference
}

func (e xrefEntry) IsFree() bool {
	return e.Offset == 0 && e.InStream == 0
}

// Reader gives read access to an existing PDF document.
//
// The zero value *Reader (a nil pointer) is valid for use with
// [Reader.DecodeStream], matching the in-memory, not-yet-decrypted case.
type Reader struct {
	data []byte
	meta MetaInfo
	xref map[uint32]xrefEntry
	opt  ReaderOptions

	cache   *lruCache
	reading map[Reference]bool
}

// NewReader reads the cross-reference information of a PDF document and
// returns a [Reader] which gives access to its objects.
func NewReader(r io.ReadSeeker, opt *ReaderOptions) (*Reader, error) {
	if opt == nil {
		opt = &ReaderOptions{}
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < 8 || string(data[:5]) != "%PDF-" {
		return nil, &MalformedFileError{Err: errors.New("missing %PDF- header")}
	}
	v, err := ParseVersion(string(data[5:8]))
	if err != nil {
		v = V1_7
	}

	pdf := &Reader{
		data: data,
		meta: MetaInfo{
			Version: v,
			Catalog: &Catalog{},
			Trailer: Dict{},
		},
		xref:    map[uint32]xrefEntry{},
		opt:     *opt,
		cache:   newCache(64),
		reading: map[Reference]bool{},
	}
	if err := pdf.readXRef(); err != nil {
		return nil, err
	}

	// The document catalog is optional for the object-level access this
	// reader provides; a missing or broken one is not fatal.
	if root := pdf.meta.Trailer["Root"]; root != nil {
		if catalog, err := ExtractCatalog(pdf, root); err == nil {
			pdf.meta.Catalog = catalog
		}
	}

	return pdf, nil
}

// maxXRefEntries bounds the size of a cross-reference subsection, so that
// a corrupt count cannot make the reader allocate without limit.
const maxXRefEntries = 1 << 22

// readXRef locates the final startxref pointer and parses the classic
// cross-reference table and trailer dictionary it points to.
func (r *Reader) readXRef() error {
	tailStart := len(r.data) - 1024
	if tailStart < 0 {
		tailStart = 0
	}
	idx := bytes.LastIndex(r.data[tailStart:], []byte("startxref"))
	if idx < 0 {
		return &MalformedFileError{Err: errors.New("startxref not found")}
	}

	s := newScanner(r.data)
	s.pos = tailStart + idx + len("startxref")
	xrefPos, err := s.readInt()
	if err != nil {
		return err
	}
	if xrefPos < 0 || xrefPos >= int64(len(r.data)) {
		return &MalformedFileError{Err: errors.New("invalid startxref offset")}
	}

	s.pos = int(xrefPos)
	if err := s.expectKeyword("xref"); err != nil {
		return err
	}

	for !s.peekKeyword("trailer") {
		first, err := s.readInt()
		if err != nil {
			return err
		}
		count, err := s.readInt()
		if err != nil {
			return err
		}
		if first < 0 || count < 0 || count > maxXRefEntries {
			return s.malformed("invalid xref subsection %d %d", first, count)
		}
		for i := int64(0); i < count; i++ {
			offset, err := s.readInt()
			if err != nil {
				return err
			}
			gen, err := s.readInt()
			if err != nil {
				return err
			}
			s.skipWhiteSpace()
			kind := s.readKeyword()
			if kind != "n" && kind != "f" {
				return s.malformed("invalid xref entry type %q", kind)
			}
			num := uint32(first + i)
			if kind == "n" && gen >= 0 && gen <= 0xFFFF {
				if _, seen := r.xref[num]; !seen {
					r.xref[num] = xrefEntry{Offset: offset, Generation: uint16(gen)}
				}
			}
		}
	}

	if err := s.expectKeyword("trailer"); err != nil {
		return err
	}
	obj, err := s.ReadObject()
	if err != nil {
		return err
	}
	trailer, ok := obj.(Dict)
	if !ok {
		return s.malformed("expected trailer dictionary, got %T", obj)
	}
	r.meta.Trailer = trailer
	return nil
}

func (r *Reader) GetMeta() *MetaInfo {
	return &r.meta
}

// Get implements the [Getter] interface.
func (r *Reader) Get(ref Reference, canObjStm bool) (Native, error) {
	if obj, ok := r.cache.Get(ref); ok {
		native, _ := obj.(Native)
		return native, nil
	}

	entry, ok := r.xref[ref.Number()]
	if !ok || entry.IsFree() || entry.Generation != ref.Generation() {
		return nil, nil
	}

	// a stream's /Length may itself be indirect; refuse cycles
	if r.reading[ref] {
		return nil, &MalformedFileError{
			Err: errors.New("circular object definition"),
			Loc: []string{"object " + ref.String()},
		}
	}
	r.reading[ref] = true
	defer delete(r.reading, ref)

	obj, err := r.readObjectAt(entry.Offset, ref)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		r.cache.Put(ref, obj)
	}
	return obj, nil
}

// readObjectAt parses the indirect object stored at the given byte offset.
func (r *Reader) readObjectAt(offset int64, ref Reference) (Native, error) {
	if offset < 0 || offset >= int64(len(r.data)) {
		return nil, &MalformedFileError{
			Err: errors.New("object offset out of range"),
			Loc: []string{"object " + ref.String()},
		}
	}
	s := newScanner(r.data)
	s.pos = int(offset)

	num, err := s.readInt()
	if err != nil {
		return nil, err
	}
	gen, err := s.readInt()
	if err != nil {
		return nil, err
	}
	if err := s.expectKeyword("obj"); err != nil {
		return nil, err
	}
	if uint32(num) != ref.Number() || uint16(gen) != ref.Generation() {
		return nil, s.malformed("object %d %d found in place of %s", num, gen, ref)
	}

	obj, err := s.ReadObject()
	if err != nil {
		return nil, err
	}

	dict, isDict := obj.(Dict)
	if !isDict || !s.peekKeyword("stream") {
		return obj, nil
	}

	// the keyword is followed by CRLF or LF, then the stream data
	if err := s.expectKeyword("stream"); err != nil {
		return nil, err
	}
	if s.pos < len(s.data) && s.data[s.pos] == '\r' {
		s.pos++
	}
	if s.pos < len(s.data) && s.data[s.pos] == '\n' {
		s.pos++
	}
	length, err := GetInteger(r, dict["Length"])
	if err != nil {
		return nil, err
	}
	if length < 0 || int64(s.pos)+int64(length) > int64(len(s.data)) {
		return nil, s.malformed("invalid stream length %d", length)
	}
	body := s.data[s.pos : s.pos+int(length)]
	return &Stream{Dict: dict, R: bytes.NewReader(body)}, nil
}

// DecodeStream returns a reader for the decoded contents of x, applying at
// most numFilters filters (or all filters, if numFilters is 0).
//
// This method is safe to call on a nil *Reader, in which case the document
// is assumed to use PDF version 1.2 and no decryption is applied.
func (r *Reader) DecodeStream(x *Stream, numFilters int) (io.ReadCloser, error) {
	if r == nil {
		return DecodeStream(nil, x, numFilters)
	}
	return DecodeStream(r, x, numFilters)
}
