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
	"fmt"
	"io"
	"sort"
)

// WriterOptions controls the behaviour of [NewWriter].
type WriterOptions struct {
	// ID is the file identifier stored in the writer's [MetaInfo].  No
	// identifier is generated when ID is nil, and [Writer.Close] writes no
	// /ID trailer entry from it.
	ID [][]byte

	// HumanReadable is kept with the writer's options; the output of
	// [Writer.Close] is the same whether or not it is set.
	HumanReadable bool
}

// Writer writes a PDF document to an io.Writer, one indirect object at a
// time.
type Writer struct {
	w    io.Writer
	meta MetaInfo
	opt  WriterOptions

	objects map[Reference]Object
	lastRef uint32
	written map[Reference]bool
	closed  bool
}

// NewWriter creates a Writer that writes a new PDF document of the given
// version to w.
func NewWriter(w io.Writer, v Version, opt *WriterOptions) (*Writer, error) {
	if opt == nil {
		opt = &WriterOptions{}
	}
	pdf := &Writer{
		w: w,
		meta: MetaInfo{
			Version: v,
			Catalog: &Catalog{},
			Trailer: Dict{},
			ID:      opt.ID,
		},
		opt:     *opt,
		objects: map[Reference]Object{},
		written: map[Reference]bool{},
	}
	return pdf, nil
}

func (pdf *Writer) GetMeta() *MetaInfo {
	return &pdf.meta
}

// GetOptions returns the output options in effect for this writer, derived
// from its PDF version.
func (pdf *Writer) GetOptions() OutputOptions {
	var opt OutputOptions
	if pdf.meta.Version >= V2_0 {
		opt |= OptTextStringUtf8
	}
	return opt
}

// Alloc allocates a new, unused object number.
func (pdf *Writer) Alloc() Reference {
	for {
		pdf.lastRef++
		ref := NewReference(pdf.lastRef, 0)
		if _, used := pdf.objects[ref]; !used {
			return ref
		}
	}
}

// Put stores obj under the indirect reference ref.
func (pdf *Writer) Put(ref Reference, obj Object) error {
	if pdf.closed {
		return fmt.Errorf("pdf: writer is closed")
	}
	pdf.objects[ref] = obj
	return nil
}

// Get implements the [Getter] interface, so that a [Writer] in progress can
// be used to resolve references to objects already written.
func (pdf *Writer) Get(ref Reference, _ bool) (Native, error) {
	obj, ok := pdf.objects[ref]
	if !ok || obj == nil {
		return nil, nil
	}
	return obj.AsPDF(0), nil
}

// OpenStream starts writing a new stream object under ref, applying the
// given filters in order.
func (pdf *Writer) OpenStream(ref Reference, dict Dict, filters ...Filter) (io.WriteCloser, error) {
	streamDict := Dict{}
	for k, v := range dict {
		streamDict[k] = v
	}

	s := &Stream{Dict: streamDict}
	pdf.objects[ref] = s

	var w io.WriteCloser = &writerStreamBuf{s: s}
	for _, f := range filters {
		var err error
		w, err = f.Encode(pdf.meta.Version, w)
		if err != nil {
			return nil, err
		}
		name, parms, err := f.Info(pdf.meta.Version)
		if err != nil {
			return nil, err
		}
		appendFilter(streamDict, name, parms)
	}
	return w, nil
}

type writerStreamBuf struct {
	buf []byte
	s   *Stream
}

func (w *writerStreamBuf) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func (w *writerStreamBuf) Close() error {
	w.s.R = bytes.NewReader(w.buf)
	w.s.Dict["Length"] = Integer(len(w.buf))
	return nil
}

// Close finishes writing the document: it writes out every stored object
// in increasing object-number order, followed by the cross-reference table
// and the trailer.  After Close returns, [Writer.Put] reports an error;
// objects already stored can still be retrieved with [Writer.Get].
func (pdf *Writer) Close() error {
	if pdf.closed {
		return nil
	}
	pdf.closed = true

	w := &countingWriter{w: pdf.w}
	io.WriteString(w, "%PDF-"+pdf.meta.Version.String()+"\n")

	if pdf.meta.Catalog != nil && pdf.meta.Trailer["Root"] == nil {
		rootRef := pdf.Alloc()
		pdf.objects[rootRef] = AsDict(pdf.meta.Catalog)
		pdf.meta.Trailer["Root"] = rootRef
	}

	refs := make([]Reference, 0, len(pdf.objects))
	for ref := range pdf.objects {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Number() < refs[j].Number()
	})

	offsets := make(map[Reference]int64, len(refs))
	for _, ref := range refs {
		offsets[ref] = w.n
		if err := pdf.writeObject(w, ref, pdf.objects[ref]); err != nil {
			return err
		}
	}

	xrefPos := w.n
	io.WriteString(w, "xref\n")
	io.WriteString(w, "0 1\n0000000000 65535 f \n")
	maxNum := uint32(0)
	for i := 0; i < len(refs); {
		// one subsection per run of consecutive object numbers
		j := i
		for j+1 < len(refs) && refs[j+1].Number() == refs[j].Number()+1 {
			j++
		}
		fmt.Fprintf(w, "%d %d\n", refs[i].Number(), j-i+1)
		for _, ref := range refs[i : j+1] {
			fmt.Fprintf(w, "%010d %05d n \n", offsets[ref], ref.Generation())
			if ref.Number() > maxNum {
				maxNum = ref.Number()
			}
		}
		i = j + 1
	}

	trailer := Dict{}
	for key, val := range pdf.meta.Trailer {
		trailer[key] = val
	}
	trailer["Size"] = Integer(maxNum + 1)
	io.WriteString(w, "trailer\n")
	if err := trailer.PDF(w); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nstartxref\n%d\n%%%%EOF\n", xrefPos)
	return nil
}

// countingWriter tracks the current byte offset for the xref table.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func (pdf *Writer) writeObject(w io.Writer, ref Reference, obj Object) error {
	fmt.Fprintf(w, "%d %d obj\n", ref.Number(), ref.Generation())
	var native Native
	if obj != nil {
		native = obj.AsPDF(0)
	}
	if native == nil {
		io.WriteString(w, "null")
	} else if err := native.PDF(w); err != nil {
		return err
	}
	if s, ok := native.(*Stream); ok {
		if seeker, ok := s.R.(io.Seeker); ok {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return err
			}
		}
		io.WriteString(w, "\nstream\n")
		data, err := io.ReadAll(s.R)
		if err != nil {
			return err
		}
		w.Write(data)
		io.WriteString(w, "\nendstream")
	}
	io.WriteString(w, "\nendobj\n")
	return nil
}
