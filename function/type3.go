// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

package function

import (
	"fmt"

	"seehuhn.de/go/pdf"
)

// Type3 is a stitching function (PDF 2.0, 7.10.4): it partitions its domain
// into contiguous sub-domains, each mapped to a different 1-input function.
type Type3 struct {
	XMin, XMax float64
	Range      []float64 // optional
	Functions  []pdf.Function
	Bounds     []float64 // len(Functions)-1 interior boundaries
	Encode     []float64 // 2*len(Functions)
}

var _ pdf.Function = (*Type3)(nil)

func (f *Type3) FunctionType() int { return 3 }

func (f *Type3) Shape() (m, n int) {
	if len(f.Functions) > 0 {
		_, n = f.Functions[0].Shape()
	} else {
		n = 1
	}
	return 1, n
}

func (f *Type3) GetDomain() []float64 { return []float64{f.XMin, f.XMax} }

func (f *Type3) validate() error {
	if !isRange(f.XMin, f.XMax) {
		return fmt.Errorf("function: invalid Type3 domain")
	}
	k := len(f.Functions)
	if k == 0 {
		return fmt.Errorf("function: Type3 requires at least one sub-function")
	}
	if len(f.Bounds) != k-1 {
		return fmt.Errorf("function: Type3 Bounds length mismatch")
	}
	if len(f.Encode) != 2*k {
		return fmt.Errorf("function: Type3 Encode length mismatch")
	}
	prev := f.XMin
	for _, b := range f.Bounds {
		if b < prev || b > f.XMax {
			return fmt.Errorf("function: Type3 Bounds must be sorted within the domain")
		}
		prev = b
	}
	return nil
}

// subDomain returns the i-th sub-domain's bounds [lo, hi].
func (f *Type3) subDomain(i int) (lo, hi float64) {
	if i == 0 {
		lo = f.XMin
	} else {
		lo = f.Bounds[i-1]
	}
	if i == len(f.Functions)-1 {
		hi = f.XMax
	} else {
		hi = f.Bounds[i]
	}
	return lo, hi
}

// findSubdomain returns the index of the sub-function responsible for x
// together with the boundaries of its sub-domain.  Sub-domain i is half
// open, [lo, hi), except that the last one includes its upper boundary.
// As a special case, if Bounds[0] equals XMin the first sub-domain is the
// single point XMin (PDF 2.0, 7.10.4).
func (f *Type3) findSubdomain(x float64) (int, float64, float64) {
	k := len(f.Functions)
	if k > 1 && x == f.XMin && f.Bounds[0] == f.XMin {
		return 0, f.XMin, f.XMin
	}
	idx := k - 1
	for i := 0; i < k-1; i++ {
		if x < f.Bounds[i] {
			idx = i
			break
		}
	}
	lo, hi := f.subDomain(idx)
	return idx, lo, hi
}

func (f *Type3) Apply(out []float64, in ...float64) {
	x := clip(in[0], f.XMin, f.XMax)
	idx, lo, hi := f.findSubdomain(x)
	arg := interpolate(x, lo, hi, f.Encode[2*idx], f.Encode[2*idx+1])
	f.Functions[idx].Apply(out, arg)
	clipToRange(f.Range, out)
}

func (f *Type3) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	if err := f.validate(); err != nil {
		return nil, pdf.Unused{}, err
	}

	fnArr := make(pdf.Array, len(f.Functions))
	for i, sub := range f.Functions {
		embedded, err := rm.Embed(sub)
		if err != nil {
			return nil, pdf.Unused{}, err
		}
		fnArr[i] = embedded
	}

	dict := pdf.Dict{
		"FunctionType": pdf.Integer(3),
		"Domain":       floatsToArray([]float64{f.XMin, f.XMax}),
		"Functions":    fnArr,
		"Bounds":       floatsToArray(f.Bounds),
		"Encode":       floatsToArray(f.Encode),
	}
	if f.Range != nil {
		dict["Range"] = floatsToArray(f.Range)
	}
	return dict, pdf.Unused{}, nil
}
