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

import (
	"fmt"
	"io"
	"math"

	"seehuhn.de/go/pdf"
)

// SpaceIndexed is the PDF Indexed colour space (PDF 2.0, 8.6.6.3): colours
// are selected by integer index from a fixed palette in some base space.
type SpaceIndexed struct {
	Base   Space
	Lookup [][]float64 // one entry per palette index, in Base's components
}

// Indexed creates an indexed colour space from a palette of up to 256
// colours.  All palette entries must belong to the same "natural" colour
// space (DeviceGray, DeviceRGB, DeviceCMYK, CalGray, CalRGB, Lab or
// ICCBased); mixing families is rejected.
func Indexed(palette []Color) (*SpaceIndexed, error) {
	if len(palette) == 0 {
		return nil, fmt.Errorf("color: Indexed palette must not be empty")
	}
	if len(palette) > 256 {
		return nil, fmt.Errorf("color: Indexed palette too large: %d entries", len(palette))
	}

	base, first, err := colorSpaceOf(palette[0])
	if err != nil {
		return nil, err
	}
	lookup := make([][]float64, len(palette))
	lookup[0] = first
	for i := 1; i < len(palette); i++ {
		s, vals, err := colorSpaceOf(palette[i])
		if err != nil {
			return nil, err
		}
		if s.Family() != base.Family() {
			return nil, fmt.Errorf("color: Indexed palette mixes colour space families %q and %q", base.Family(), s.Family())
		}
		lookup[i] = vals
	}
	return &SpaceIndexed{Base: base, Lookup: lookup}, nil
}

// colorSpaceOf returns the natural colour space and raw component values
// of a colour produced by this package's own constructors.
func colorSpaceOf(c Color) (Space, []float64, error) {
	switch v := c.(type) {
	case DeviceGray:
		return SpaceDeviceGray, []float64{float64(v)}, nil
	case DeviceRGB:
		return SpaceDeviceRGB, []float64{v.R, v.G, v.B}, nil
	case DeviceCMYK:
		return SpaceDeviceCMYK, []float64{v.C, v.M, v.Y, v.K}, nil
	case colorCalGray:
		return v.space, []float64{v.Value}, nil
	case colorCalRGB:
		return v.space, append([]float64(nil), v.Values[:]...), nil
	case colorLab:
		return v.space, append([]float64(nil), v.Values[:]...), nil
	case colorICCBased:
		return v.space, append([]float64(nil), v.Values...), nil
	default:
		return nil, nil, fmt.Errorf("color: %T cannot be used as an Indexed palette entry", c)
	}
}

func (s *SpaceIndexed) Family() pdf.Name   { return "Indexed" }
func (s *SpaceIndexed) NumComponents() int { return 1 }

func (s *SpaceIndexed) NewColor(values []float64) (Color, error) {
	if len(values) != 1 {
		return nil, fmt.Errorf("color: Indexed needs 1 component, got %d", len(values))
	}
	return s.New(int(math.Round(values[0])))
}

// New returns the palette colour at the given index.
func (s *SpaceIndexed) New(index int) (Color, error) {
	if index < 0 || index >= len(s.Lookup) {
		return nil, fmt.Errorf("color: Indexed index %d out of range [0, %d)", index, len(s.Lookup))
	}
	return colorIndexed{Index: index, space: s}, nil
}

type colorIndexed struct {
	Index int
	space *SpaceIndexed
}

func (c colorIndexed) resolve() Color {
	col, err := c.space.Base.NewColor(c.space.Lookup[c.Index])
	if err != nil {
		return Black
	}
	return col
}

func (c colorIndexed) ToXYZ() (X, Y, Z float64)  { return c.resolve().ToXYZ() }
func (c colorIndexed) RGBA() (r, g, b, a uint32) { return c.resolve().RGBA() }

// componentRange returns the default Decode range of the given base space,
// as pairs (min, max) per component.
func componentRange(s Space) []float64 {
	if lab, ok := s.(*SpaceLab); ok {
		return []float64{0, 100, lab.Range[0], lab.Range[1], lab.Range[2], lab.Range[3]}
	}
	n := s.NumComponents()
	rng := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		rng[2*i] = 0
		rng[2*i+1] = 1
	}
	return rng
}

func (s *SpaceIndexed) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	baseObj, err := rm.Embed(s.Base)
	if err != nil {
		return nil, pdf.Unused{}, err
	}

	rng := componentRange(s.Base)
	n := s.Base.NumComponents()
	data := make([]byte, len(s.Lookup)*n)
	for i, vals := range s.Lookup {
		for j := 0; j < n; j++ {
			lo, hi := rng[2*j], rng[2*j+1]
			t := 0.0
			if hi != lo {
				t = (vals[j] - lo) / (hi - lo)
			}
			data[i*n+j] = byte(math.Round(clip01(t) * 255))
		}
	}

	ref := rm.Out.Alloc()
	w, err := rm.Out.OpenStream(ref, pdf.Dict{})
	if err != nil {
		return nil, pdf.Unused{}, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, pdf.Unused{}, err
	}
	if err := w.Close(); err != nil {
		return nil, pdf.Unused{}, err
	}

	arr := pdf.Array{pdf.Name("Indexed"), baseObj, pdf.Integer(len(s.Lookup) - 1), ref}
	return arr, pdf.Unused{}, nil
}

func extractIndexed(x *pdf.Extractor, arr pdf.Array) (Space, error) {
	if len(arr) < 4 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: malformed Indexed")}
	}
	base, err := ExtractSpace(x, arr[1])
	if err != nil {
		return nil, err
	}
	hival, err := pdf.GetInteger(x.R, arr[2])
	if err != nil {
		return nil, err
	}

	native, err := pdf.Resolve(x.R, arr[3])
	if err != nil {
		return nil, err
	}
	var data []byte
	switch v := native.(type) {
	case pdf.String:
		data = []byte(v)
	case *pdf.Stream:
		r, err := pdf.DecodeStream(x.R, v, 0)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		data, err = io.ReadAll(r)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: Indexed lookup must be string or stream, got %T", native)}
	}

	n := base.NumComponents()
	count := int(hival) + 1
	if len(data) < count*n {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: Indexed lookup table too short")}
	}
	rng := componentRange(base)
	lookup := make([][]float64, count)
	for i := 0; i < count; i++ {
		vals := make([]float64, n)
		for j := 0; j < n; j++ {
			lo, hi := rng[2*j], rng[2*j+1]
			b := data[i*n+j]
			vals[j] = lo + float64(b)/255*(hi-lo)
		}
		lookup[i] = vals
	}
	return &SpaceIndexed{Base: base, Lookup: lookup}, nil
}
